package ppu

// Snapshot is the complete PPU state needed to resume rendering exactly
// where it left off: the register file, loopy scroll registers, VRAM/OAM/
// palette contents, and the in-flight background/sprite pipeline latches.
// Used by internal/state for save-state round trips (spec §10.5/I8).
type Snapshot struct {
	Ctrl    uint8
	Mask    uint8
	Status  uint8
	OAMAddr uint8

	V, T uint16
	X    uint8
	W    bool

	DataBus    uint8
	ReadBuffer uint8

	Palette [32]uint8
	VRAM    [2048]uint8
	OAM     [256]uint8

	Scanline int
	Dot      int
	OddFrame bool

	BGShiftPatternLo, BGShiftPatternHi uint16
	BGShiftAttribLo, BGShiftAttribHi   uint16
	BGNextTile, BGNextAttrib           uint8
	BGNextPatternLo, BGNextPatternHi   uint8

	NMIPending bool
	FrameReady bool
}

// Snapshot captures the PPU's complete state.
func (p *PPU) Snapshot() Snapshot {
	return Snapshot{
		Ctrl: p.ctrl, Mask: p.mask, Status: p.status, OAMAddr: p.oamAddr,
		V: p.v, T: p.t, X: p.x, W: p.w,
		DataBus: p.dataBus, ReadBuffer: p.readBuffer,
		Palette: p.palette, VRAM: p.vram, OAM: p.oam,
		Scanline: p.scanline, Dot: p.dot, OddFrame: p.oddFrame,
		BGShiftPatternLo: p.bgShiftPatternLo, BGShiftPatternHi: p.bgShiftPatternHi,
		BGShiftAttribLo: p.bgShiftAttribLo, BGShiftAttribHi: p.bgShiftAttribHi,
		BGNextTile: p.bgNextTile, BGNextAttrib: p.bgNextAttrib,
		BGNextPatternLo: p.bgNextPatternLo, BGNextPatternHi: p.bgNextPatternHi,
		NMIPending: p.nmiPending, FrameReady: p.frameReady,
	}
}

// Restore replaces the PPU's state with a previously captured Snapshot.
// The bound mapper is left untouched; callers must SetMapper separately.
func (p *PPU) Restore(s Snapshot) {
	p.ctrl, p.mask, p.status, p.oamAddr = s.Ctrl, s.Mask, s.Status, s.OAMAddr
	p.v, p.t, p.x, p.w = s.V, s.T, s.X, s.W
	p.dataBus, p.readBuffer = s.DataBus, s.ReadBuffer
	p.palette, p.vram, p.oam = s.Palette, s.VRAM, s.OAM
	p.scanline, p.dot, p.oddFrame = s.Scanline, s.Dot, s.OddFrame
	p.bgShiftPatternLo, p.bgShiftPatternHi = s.BGShiftPatternLo, s.BGShiftPatternHi
	p.bgShiftAttribLo, p.bgShiftAttribHi = s.BGShiftAttribLo, s.BGShiftAttribHi
	p.bgNextTile, p.bgNextAttrib = s.BGNextTile, s.BGNextAttrib
	p.bgNextPatternLo, p.bgNextPatternHi = s.BGNextPatternLo, s.BGNextPatternHi
	p.nmiPending, p.frameReady = s.NMIPending, s.FrameReady
}
