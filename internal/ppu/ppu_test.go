package ppu

import (
	"testing"

	"github.com/benjaminmordaunt/fancy-nes/internal/cartridge"
)

// fakeMapper is a flat 8KiB CHR RAM with horizontal-mirroring nametable
// folding, enough to exercise the PPU without pulling in a real mapper.
type fakeMapper struct {
	chr [0x2000]uint8
}

func (m *fakeMapper) ReadCHR(addr uint16) cartridge.CHRResult {
	if addr < 0x2000 {
		return cartridge.CHRResult{Byte: m.chr[addr]}
	}
	offset := (addr - 0x2000) & 0x0FFF
	table := offset / 0x400
	index := (table/2)*0x400 + offset%0x400
	return cartridge.CHRResult{IsNameTable: true, NameTableIndex: index}
}

func (m *fakeMapper) WriteCHR(addr uint16, value uint8) cartridge.CHRResult {
	if addr < 0x2000 {
		m.chr[addr] = value
		return cartridge.CHRResult{Byte: value}
	}
	offset := (addr - 0x2000) & 0x0FFF
	table := offset / 0x400
	index := (table/2)*0x400 + offset%0x400
	return cartridge.CHRResult{IsNameTable: true, NameTableIndex: index}
}

func newTestPPU() (*PPU, *fakeMapper) {
	p := New()
	m := &fakeMapper{}
	p.SetMapper(m)
	return p, m
}

func TestPPUSTATUSClearsVBlankAndLatch(t *testing.T) {
	p, _ := newTestPPU()
	p.status = statusVBlank
	p.w = true
	got := p.ReadRegister(0x2002)
	if got&statusVBlank == 0 {
		t.Errorf("PPUSTATUS read = %#x, want vblank bit set in returned value", got)
	}
	if p.status&statusVBlank != 0 {
		t.Error("reading PPUSTATUS must clear the vblank flag")
	}
	if p.w {
		t.Error("reading PPUSTATUS must clear the address latch")
	}
}

func TestPeekRegisterDoesNotClearVBlank(t *testing.T) {
	p, _ := newTestPPU()
	p.status = statusVBlank
	p.PeekRegister(0x2002)
	if p.status&statusVBlank == 0 {
		t.Error("PeekRegister must not clear vblank")
	}
}

func TestPeekRegisterRecordsBadObserveOnSideEffectfulRegisters(t *testing.T) {
	for _, addr := range []uint16{0x2002, 0x2004, 0x2007} {
		p, _ := newTestPPU()
		if got := p.PeekRegister(addr); got != 0 {
			t.Errorf("PeekRegister(%#04x) = %#02x, want open-bus 0", addr, got)
		}
		bad := p.LastBadObserve()
		if bad == nil {
			t.Fatalf("PeekRegister(%#04x): expected LastBadObserve to be recorded", addr)
		}
		if bad.Addr != addr {
			t.Errorf("LastBadObserve.Addr = %#04x, want %#04x", bad.Addr, addr)
		}
	}
}

func TestPeekRegisterWriteOnlyRegistersUnaffected(t *testing.T) {
	p, _ := newTestPPU()
	p.dataBus = 0x5A
	if got := p.PeekRegister(0x2000); got != 0x5A {
		t.Errorf("PeekRegister(0x2000) = %#02x, want dataBus 0x5A", got)
	}
	if p.LastBadObserve() != nil {
		t.Error("write-only register peek must not record a bad observe")
	}
}

func TestScrollAndAddrLatchSequencing(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2005, 0x7D) // coarse X = 15, fine X = 5
	p.WriteRegister(0x2005, 0x5E) // coarse Y = 11, fine Y = 6

	if p.t&0x001F != 15 {
		t.Errorf("coarse X in t = %d, want 15", p.t&0x001F)
	}
	if p.x != 5 {
		t.Errorf("fine X = %d, want 5", p.x)
	}
	if (p.t>>5)&0x1F != 11 {
		t.Errorf("coarse Y in t = %d, want 11", (p.t>>5)&0x1F)
	}
	if (p.t>>12)&0x07 != 6 {
		t.Errorf("fine Y in t = %d, want 6", (p.t>>12)&0x07)
	}

	p.WriteRegister(0x2006, 0x3D)
	p.WriteRegister(0x2006, 0xF0)
	if p.v != 0x3DF0 {
		t.Errorf("v after PPUADDR pair = %#04x, want 0x3DF0", p.v)
	}
}

func TestPPUDATAReadIsBufferedExceptPalette(t *testing.T) {
	p, m := newTestPPU()
	m.chr[0x0010] = 0xAB
	p.v = 0x0010
	first := p.ReadRegister(0x2007)
	if first != 0 {
		t.Errorf("first buffered read = %#x, want 0 (stale buffer)", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0xAB {
		t.Errorf("second read = %#x, want 0xAB", second)
	}

	p.v = 0x3F05
	p.palette[5] = 0x22
	direct := p.ReadRegister(0x2007)
	if direct != 0x22 {
		t.Errorf("palette read = %#x, want 0x22 (unbuffered)", direct)
	}
}

func TestPPUDATAIncrementsByStepFromCtrl(t *testing.T) {
	p, _ := newTestPPU()
	p.v = 0x2000
	p.WriteRegister(0x2007, 0x11)
	if p.v != 0x2001 {
		t.Errorf("v after write with increment=1 = %#04x, want 0x2001", p.v)
	}
	p.ctrl = ctrlIncrement32
	p.WriteRegister(0x2007, 0x22)
	if p.v != 0x2021 {
		t.Errorf("v after write with increment=32 = %#04x, want 0x2021", p.v)
	}
}

func TestOAMDATAMasksAttributeBits(t *testing.T) {
	p, _ := newTestPPU()
	p.oamAddr = 2
	p.oam[2] = 0xFF
	got := p.ReadRegister(0x2004)
	if got != 0xE3 {
		t.Errorf("OAMDATA attribute read = %#x, want 0xE3 (unimplemented bits masked)", got)
	}
}

func TestPaletteMirrorsSpritePaletteZeroToBackground(t *testing.T) {
	p, _ := newTestPPU()
	p.writePalette(0x3F00, 0x0F)
	if got := p.readPalette(0x3F10); got != 0x0F {
		t.Errorf("readPalette(0x3F10) = %#x, want 0x0F (mirrors universal background)", got)
	}
}

func TestIncrementCoarseXWrapsIntoNametableBit(t *testing.T) {
	p, _ := newTestPPU()
	p.v = 0x001F
	p.incrementCoarseX()
	if p.v&0x001F != 0 {
		t.Errorf("coarse X = %d, want 0 after wrap", p.v&0x001F)
	}
	if p.v&0x0400 == 0 {
		t.Error("expected horizontal nametable bit to toggle on coarse X wrap")
	}
}

func TestIncrementFineYWrapsAtRow29(t *testing.T) {
	p, _ := newTestPPU()
	p.v = 29 << 5
	p.v |= 0x7000
	p.incrementFineY()
	if (p.v>>5)&0x1F != 0 {
		t.Errorf("coarse Y = %d, want 0", (p.v>>5)&0x1F)
	}
	if p.v&0x0800 == 0 {
		t.Error("expected vertical nametable bit to toggle at row 29 wrap")
	}
}

func runDots(p *PPU, n int) {
	for i := 0; i < n; i++ {
		p.Tick()
	}
}

func TestVBlankSetsStatusAndRequestsNMI(t *testing.T) {
	p, _ := newTestPPU()
	p.ctrl = ctrlNMIEnable
	p.scanline, p.dot = 240, 340
	runDots(p, 3) // run through scanline 241 dot 1
	if p.status&statusVBlank == 0 {
		t.Error("expected vblank flag set at scanline 241 dot 1")
	}
	if !p.TakeNMI() {
		t.Error("expected NMI request pending after vblank start with NMI enabled")
	}
	if p.TakeNMI() {
		t.Error("TakeNMI must clear after being taken (edge-triggered)")
	}
}

func TestFrameReadyAfterVBlankStart(t *testing.T) {
	p, _ := newTestPPU()
	p.scanline, p.dot = 240, 340
	runDots(p, 3) // run through scanline 241 dot 1
	frame, ok := p.TakeFrame()
	if !ok {
		t.Fatal("expected frame to be ready at vblank start")
	}
	if len(frame) != 256*240 {
		t.Errorf("frame length = %d, want %d", len(frame), 256*240)
	}
	if _, ok := p.TakeFrame(); ok {
		t.Error("TakeFrame must not report ready twice")
	}
}

func TestPreRenderLineClearsStatusFlags(t *testing.T) {
	p, _ := newTestPPU()
	p.status = statusVBlank | statusSprite0 | statusOverflow
	p.scanline, p.dot = 261, 0
	runDots(p, 2) // run through pre-render dot 1
	if p.status != 0 {
		t.Errorf("status after pre-render dot 1 = %#x, want 0", p.status)
	}
}

func TestSpriteZeroHitDetected(t *testing.T) {
	p, m := newTestPPU()
	p.mask = maskShowBackground | maskShowSprites | maskBGLeftCol | maskSpriteLeftCol
	// Background tile 0 everywhere in nametable 0, fully opaque (low plane
	// set on every row); the sprite uses the same tile.
	for i := 0; i < 8; i++ {
		m.chr[i] = 0xFF
	}
	p.oam[0] = 0   // Y (sprite visible starting scanline 1)
	p.oam[1] = 0   // tile 0
	p.oam[2] = 0   // attrib, priority in front
	p.oam[3] = 0   // X

	p.scanline, p.dot = 261, 0
	// Run through pre-render, scanline 0, and scanline 1 dot 1.
	for p.scanline != 1 || p.dot < 2 {
		p.Tick()
	}
	if p.status&statusSprite0 == 0 {
		t.Error("expected sprite-0 hit when opaque background and sprite overlap at (0,1)")
	}
}

func TestSpriteEvaluationOverflowSetsStatusBit(t *testing.T) {
	p, _ := newTestPPU()
	for i := 0; i < 64; i++ {
		p.oam[i*4] = 10 // all on screen at row 10, all within an 8px sprite height starting line 11
	}
	p.evaluateSpritesForScanline(11)
	if p.status&statusOverflow == 0 {
		t.Error("expected sprite overflow flag when more than 8 sprites occupy a scanline")
	}
	if p.spriteCount != 8 {
		t.Errorf("spriteCount = %d, want 8 (capped)", p.spriteCount)
	}
}

func TestReverseBitsForHorizontalFlip(t *testing.T) {
	if got := reverseBits(0b10000001); got != 0b10000001 {
		t.Errorf("reverseBits(0x81) = %#08b, want 0b10000001", got)
	}
	if got := reverseBits(0b11000000); got != 0b00000011 {
		t.Errorf("reverseBits(0xC0) = %#08b, want 0b00000011", got)
	}
}
