package memory

import "testing"

type fakePPU struct {
	lastReadReg  uint16
	lastWriteReg uint16
	lastWriteVal uint8
	readValue    uint8
}

func (p *fakePPU) ReadRegister(addr uint16) uint8 {
	p.lastReadReg = addr
	return p.readValue
}
func (p *fakePPU) PeekRegister(addr uint16) uint8 { return p.readValue }
func (p *fakePPU) WriteRegister(addr uint16, value uint8) {
	p.lastWriteReg = addr
	p.lastWriteVal = value
}

type fakeAPU struct {
	lastWriteAddr uint16
	lastWriteVal  uint8
	status        uint8
}

func (a *fakeAPU) WriteRegister(addr uint16, value uint8) {
	a.lastWriteAddr = addr
	a.lastWriteVal = value
}
func (a *fakeAPU) ReadStatus() uint8  { return a.status }
func (a *fakeAPU) PeekStatus() uint8  { return a.status }

type fakeInput struct {
	readValue uint8
	strobed   bool
}

func (i *fakeInput) Read(addr uint16) uint8 { return i.readValue }
func (i *fakeInput) Peek(addr uint16) uint8 { return i.readValue }
func (i *fakeInput) Write(addr uint16, value uint8) {
	i.strobed = value&1 != 0
}

type fakeCart struct {
	ram  [0x2000]uint8
	rom  [0x8000]uint8
}

func (c *fakeCart) ReadPRG(addr uint16) uint8 {
	if addr < 0x8000 {
		return c.ram[addr-0x6000]
	}
	return c.rom[addr-0x8000]
}
func (c *fakeCart) WritePRG(addr uint16, value uint8) {
	if addr < 0x8000 {
		c.ram[addr-0x6000] = value
	}
}

func newTestBus() (*Bus, *fakePPU, *fakeAPU, *fakeInput, *fakeCart) {
	ppu, apu, input, cart := &fakePPU{}, &fakeAPU{}, &fakeInput{}, &fakeCart{}
	b := New(ppu, apu, cart)
	b.SetInput(input)
	return b, ppu, apu, input, cart
}

func TestRAMMirroring(t *testing.T) {
	b, _, _, _, _ := newTestBus()
	b.Write(0x0000, 0x42)
	if got := b.Read(0x0800); got != 0x42 {
		t.Errorf("$0800 = %#x, want 0x42 (RAM mirror of $0000)", got)
	}
	if got := b.Read(0x1800); got != 0x42 {
		t.Errorf("$1800 = %#x, want 0x42 (RAM mirror of $0000)", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b, ppu, _, _, _ := newTestBus()
	b.Write(0x2008, 0x11) // mirrors $2000
	if ppu.lastWriteReg != 0x2000 {
		t.Errorf("PPU write address = %#04x, want 0x2000", ppu.lastWriteReg)
	}
	b.Read(0x3FFF) // mirrors $2007
	if ppu.lastReadReg != 0x2007 {
		t.Errorf("PPU read address = %#04x, want 0x2007", ppu.lastReadReg)
	}
}

func TestPeekDoesNotTriggerActiveRead(t *testing.T) {
	b, ppu, _, _, _ := newTestBus()
	ppu.readValue = 0x99
	if got := b.Peek(0x2002); got != 0x99 {
		t.Errorf("Peek($2002) = %#x, want 0x99", got)
	}
	if ppu.lastReadReg != 0 {
		t.Error("Peek must not call the active ReadRegister path")
	}
}

func TestControllerRouting(t *testing.T) {
	b, _, _, input, _ := newTestBus()
	b.Write(0x4016, 1)
	if !input.strobed {
		t.Error("expected $4016 write to strobe the controller")
	}
	input.readValue = 1
	if got := b.Read(0x4016); got != 1 {
		t.Errorf("$4016 read = %d, want 1", got)
	}
}

func TestAPUStatusRouting(t *testing.T) {
	b, _, apu, _, _ := newTestBus()
	apu.status = 0x40
	if got := b.Read(0x4015); got != 0x40 {
		t.Errorf("$4015 read = %#x, want 0x40", got)
	}
	b.Write(0x4000, 0x7F)
	if apu.lastWriteAddr != 0x4000 || apu.lastWriteVal != 0x7F {
		t.Errorf("APU write = (%#04x, %#x), want (0x4000, 0x7F)", apu.lastWriteAddr, apu.lastWriteVal)
	}
}

func TestCartridgeSRAMAndROMRouting(t *testing.T) {
	b, _, _, _, cart := newTestBus()
	b.Write(0x6123, 0x55)
	if cart.ram[0x123] != 0x55 {
		t.Errorf("SRAM[0x123] = %#x, want 0x55", cart.ram[0x123])
	}
	if got := b.Read(0x6123); got != 0x55 {
		t.Errorf("$6123 read = %#x, want 0x55", got)
	}
	cart.rom[0] = 0xAB
	if got := b.Read(0x8000); got != 0xAB {
		t.Errorf("$8000 read = %#x, want 0xAB", got)
	}
}

func TestUnmappedExpansionAreaReturnsOpenBus(t *testing.T) {
	b, _, _, _, _ := newTestBus()
	b.Read(0x00FF) // seed open bus with a known value
	b.ram[0xFF] = 0x77
	b.Read(0x00FF)
	if got := b.Read(0x5000); got != 0x77 {
		t.Errorf("$5000 (unmapped) = %#x, want open bus value 0x77", got)
	}
}
