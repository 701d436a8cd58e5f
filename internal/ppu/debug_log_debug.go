//go:build debug
// +build debug

package ppu

import "log"

// logBadObserve reports a bad-observe condition when built with the debug
// tag, matching the gated diagnostic logging convention carried over from
// the emulator's debug tooling (spec §7).
func logBadObserve(err *ErrBadObserve) {
	log.Printf("%v", err)
}
