//go:build !debug
// +build !debug

package ppu

// logBadObserve is a no-op in release builds; recordBadObserve still
// records the condition on the PPU itself regardless of this tag.
func logBadObserve(err *ErrBadObserve) {}
