package ppu

import "fmt"

// ErrBadObserve reports a silent peek of a side-effectful register
// ($2002/$2004/$2007): the active read would have cleared vblank,
// auto-incremented OAMADDR, or advanced the VRAM read pointer, so
// PeekRegister cannot honor it without side effects and instead records
// this condition and returns open-bus zero (§7).
type ErrBadObserve struct {
	Addr uint16
}

func (e *ErrBadObserve) Error() string {
	return fmt.Sprintf("ppu: bad observe of side-effectful register $%04X", e.Addr)
}
