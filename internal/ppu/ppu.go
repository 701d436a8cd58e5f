// Package ppu implements the NES 2C02 Picture Processing Unit: the
// register file the CPU bus exposes at $2000-$2007, and the dot-driven
// rendering pipeline that produces one 256x240 frame of palette indices
// every 89341 PPU dots (the idle dot at the start of scanline 0 is skipped
// on every frame).
//
// Grounded on fancy-nes-core/src/ppu.rs's NESPpu (the "loopy" scroll
// register arithmetic, the background shift-register fetch pipeline, and
// the sprite evaluation/fetch sub-state machines), adapted to idiomatic
// Go: explicit struct fields instead of a monolithic tick() switch, the
// Rust source's stage 1-4 sprite evaluation walk (diagonal overflow bug
// included) run to completion once per scanline instead of dot by dot, and a
// genuine sprite-0-hit implementation where the Rust ancestor only left a
// comment (see DESIGN.md).
package ppu

import "github.com/benjaminmordaunt/fancy-nes/internal/cartridge"

// Mapper is the PPU-side half of the cartridge contract.
type Mapper interface {
	ReadCHR(addr uint16) cartridge.CHRResult
	WriteCHR(addr uint16, value uint8) cartridge.CHRResult
}

const (
	ctrlNMIEnable      uint8 = 1 << 7
	ctrlSpriteHeight   uint8 = 1 << 5
	ctrlBGPatternTable uint8 = 1 << 4
	ctrlSpritePattern  uint8 = 1 << 3
	ctrlIncrement32    uint8 = 1 << 2

	maskShowBackground uint8 = 1 << 3
	maskShowSprites    uint8 = 1 << 4
	maskBGLeftCol      uint8 = 1 << 1
	maskSpriteLeftCol  uint8 = 1 << 2

	statusOverflow uint8 = 1 << 5
	statusSprite0  uint8 = 1 << 6
	statusVBlank   uint8 = 1 << 7
)

// PPU is the 2C02 core.
type PPU struct {
	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	v, t uint16
	x    uint8
	w    bool

	dataBus    uint8
	readBuffer uint8

	palette [32]uint8
	vram    [2048]uint8
	oam     [256]uint8

	mapper Mapper

	scanline int
	dot      int
	oddFrame bool

	bgShiftPatternLo, bgShiftPatternHi uint16
	bgShiftAttribLo, bgShiftAttribHi   uint16
	bgNextTile, bgNextAttrib           uint8
	bgNextPatternLo, bgNextPatternHi   uint8

	spriteCount          uint8
	spritePatternLo      [8]uint8
	spritePatternHi      [8]uint8
	spriteAttrib         [8]uint8
	spriteX              [8]uint8
	spriteIsZero         [8]bool
	spriteZeroOnScanline bool

	frame      [256 * 240]uint8
	frameReady bool

	nmiPending bool

	lastBadObserve *ErrBadObserve
}

// New returns a PPU with no cartridge bound; call SetMapper before Tick.
func New() *PPU {
	p := &PPU{scanline: 261}
	return p
}

// SetMapper binds the cartridge mapper this PPU reads CHR/nametable data
// through.
func (p *PPU) SetMapper(mapper Mapper) {
	p.mapper = mapper
}

// Reset returns the PPU to its post-power-on register state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status, p.oamAddr = 0, 0, 0, 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.dataBus, p.readBuffer = 0, 0
	p.scanline, p.dot, p.oddFrame = 261, 0, false
	p.spriteCount = 0
	p.nmiPending = false
	p.frameReady = false
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBackground|maskShowSprites) != 0
}

// ReadRegister performs an active (side-effecting) read of a CPU-visible
// register ($2000-$2007, already folded to that range by the bus).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 7 {
	case 2:
		value := (p.status & 0xE0) | (p.dataBus & 0x1F)
		p.status &^= statusVBlank
		p.w = false
		p.dataBus = value
		return value
	case 4:
		value := p.oam[p.oamAddr]
		if p.oamAddr&3 == 2 {
			value &= 0xE3
		}
		p.dataBus = value
		return value
	case 7:
		address := p.v & 0x3FFF
		var value uint8
		if address < 0x3F00 {
			value = p.readBuffer
			p.readBuffer = p.ppuRead(address)
		} else {
			value = p.readPalette(address)
			p.readBuffer = p.ppuRead(address - 0x1000)
		}
		p.incrementV()
		p.dataBus = value
		return value
	default:
		return p.dataBus
	}
}

// PeekRegister is the non-mutating counterpart of ReadRegister, used by
// the CPU bus's Peek path (opcode/operand fetches, indirect addressing).
// $2002/$2004/$2007 are side-effectful on a real read (vblank clear, OAM
// address advance, VRAM pointer increment); silently observing them has
// no hardware equivalent, so a peek of one records an ErrBadObserve and
// returns open-bus zero instead of the register's real value (§7).
func (p *PPU) PeekRegister(addr uint16) uint8 {
	switch addr & 7 {
	case 2, 4, 7:
		p.recordBadObserve(addr)
		return 0
	default:
		return p.dataBus
	}
}

// recordBadObserve latches the most recent bad-observe condition (visible
// via LastBadObserve for debug tooling/tests) and logs it when built with
// the debug tag.
func (p *PPU) recordBadObserve(addr uint16) {
	err := &ErrBadObserve{Addr: addr}
	p.lastBadObserve = err
	logBadObserve(err)
}

// LastBadObserve returns the most recent ErrBadObserve recorded by
// PeekRegister, or nil if none has occurred since the PPU was created.
func (p *PPU) LastBadObserve() *ErrBadObserve {
	return p.lastBadObserve
}

// WriteRegister handles a write to a CPU-visible register.
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	p.dataBus = value
	switch addr & 7 {
	case 0:
		p.ctrl = value
		p.t = (p.t &^ 0x0C00) | (uint16(value)&0x03)<<10
	case 1:
		p.mask = value
	case 3:
		p.oamAddr = value
	case 4:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 5:
		if !p.w {
			p.t = (p.t &^ 0x001F) | uint16(value)>>3
			p.x = value & 0x07
		} else {
			p.t = (p.t &^ 0x73E0) | (uint16(value)&0x07)<<12 | (uint16(value)&0xF8)<<2
		}
		p.w = !p.w
	case 6:
		if !p.w {
			p.t = (p.t &^ 0x7F00) | (uint16(value)&0x3F)<<8
		} else {
			p.t = (p.t &^ 0x00FF) | uint16(value)
			p.v = p.t
		}
		p.w = !p.w
	case 7:
		address := p.v & 0x3FFF
		p.ppuWrite(address, value)
		p.incrementV()
	}
}

func (p *PPU) incrementV() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
}

// TakeNMI reports and clears the edge-triggered NMI request raised when
// vblank begins with NMI enabled in PPUCTRL. The coordinator calls this
// once per dot to decide whether to assert the CPU's NMI line (§4.4/§6).
func (p *PPU) TakeNMI() bool {
	if p.nmiPending {
		p.nmiPending = false
		return true
	}
	return false
}

// TakeFrame returns the completed frame as 256*240 palette indices (0-63)
// and clears the ready flag. Returns ok=false if no new frame is ready.
func (p *PPU) TakeFrame() (frame []uint8, ok bool) {
	if !p.frameReady {
		return nil, false
	}
	p.frameReady = false
	return p.frame[:], true
}

// ppuRead resolves a PPU-internal address ($0000-$3EFF) through the
// mapper's tagged CHR contract.
func (p *PPU) ppuRead(address uint16) uint8 {
	res := p.mapper.ReadCHR(address)
	if res.IsNameTable {
		return p.vram[res.NameTableIndex&0x7FF]
	}
	return res.Byte
}

func (p *PPU) ppuWrite(address uint16, value uint8) {
	if address >= 0x3F00 {
		p.writePalette(address, value)
		return
	}
	res := p.mapper.WriteCHR(address, value)
	if res.IsNameTable {
		p.vram[res.NameTableIndex&0x7FF] = value
	}
}

func (p *PPU) readPalette(address uint16) uint8 {
	index := address & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	return p.palette[index]
}

func (p *PPU) writePalette(address uint16, value uint8) {
	index := address & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	p.palette[index] = value & 0x3F
}
