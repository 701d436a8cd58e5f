// Package apu is a register-level stub for the NES Audio Processing Unit.
// Audio synthesis is explicitly out of scope (spec Non-goals); what's kept
// is the register surface the CPU bus must route to so that games which
// poll $4015 or depend on the frame counter's IRQ inhibit bit behave
// consistently. Reduced from a full channel-level implementation
// (envelope/sweep/LFSR/length-counter synthesis is out of scope here).
package apu

// APU is the register-only stub. Writes to $4000-$4013 are retained
// verbatim (a later, synthesizing APU would decode them) but produce no
// audio; only the two bits a correct program can observe without sound
// output are modeled: the frame counter mode and its IRQ inhibit flag.
type APU struct {
	registers [0x14]uint8

	frameCounterMode uint8 // 0 = 4-step, 1 = 5-step ($4017 bit 7)
	frameIRQInhibit  bool  // $4017 bit 6
	frameIRQFlag     bool  // latched by the (unimplemented) frame sequencer
}

// New returns a freshly power-on APU stub.
func New() *APU {
	return &APU{}
}

// WriteRegister handles writes to $4000-$4013, $4015, and $4017.
func (a *APU) WriteRegister(address uint16, value uint8) {
	switch {
	case address >= 0x4000 && address <= 0x4013:
		a.registers[address-0x4000] = value
	case address == 0x4015:
		// Channel enable bits; retained but inert with no channels to gate.
	case address == 0x4017:
		a.frameCounterMode = (value >> 7) & 1
		a.frameIRQInhibit = value&0x40 != 0
		if a.frameIRQInhibit {
			a.frameIRQFlag = false
		}
	}
}

// ReadStatus handles a read of $4015. Bits 0-4 (channel length-counter
// nonzero flags) and bit 7 (DMC IRQ) are always 0 since neither channels
// nor DMC run; bit 6 reports the frame IRQ flag and clears it, matching
// hardware's read-clears-flag behavior.
func (a *APU) ReadStatus() uint8 {
	var status uint8
	if a.frameIRQFlag {
		status |= 0x40
	}
	a.frameIRQFlag = false
	return status
}

// PeekStatus is the side-effect-free counterpart used by the CPU bus's
// Peek path: it reports the frame IRQ flag without clearing it.
func (a *APU) PeekStatus() uint8 {
	var status uint8
	if a.frameIRQFlag {
		status |= 0x40
	}
	return status
}

// FrameCounterMode and FrameIRQInhibit expose the two observable frame
// counter bits for save-state serialization (§10.5).
func (a *APU) FrameCounterMode() uint8 { return a.frameCounterMode }
func (a *APU) FrameIRQInhibit() bool   { return a.frameIRQInhibit }

// Restore writes back the two observable frame counter bits captured by
// FrameCounterMode/FrameIRQInhibit, completing the save-state round trip
// (§10.5/I8). frameIRQFlag is not restored: it is a transient latch the
// (unimplemented) frame sequencer would have already cleared by the time
// any program reads $4015 again.
func (a *APU) Restore(frameCounterMode uint8, frameIRQInhibit bool) {
	a.frameCounterMode = frameCounterMode
	a.frameIRQInhibit = frameIRQInhibit
}
