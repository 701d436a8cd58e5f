package cartridge

import "testing"

func TestMapper000PRGMirroring16K(t *testing.T) {
	m := NewMapper000(MirrorHorizontal)
	prg := make([]uint8, 16384)
	prg[0] = 0x11
	prg[0x3FFF] = 0x22
	if err := m.LoadPRG(prg); err != nil {
		t.Fatalf("LoadPRG: %v", err)
	}
	if got := m.ReadPRG(0x8000); got != 0x11 {
		t.Errorf("ReadPRG(0x8000) = %#x, want 0x11", got)
	}
	if got := m.ReadPRG(0xC000); got != 0x11 {
		t.Errorf("ReadPRG(0xC000) = %#x, want 0x11 (16K mirror)", got)
	}
	if got := m.ReadPRG(0xFFFF); got != 0x22 {
		t.Errorf("ReadPRG(0xFFFF) = %#x, want 0x22", got)
	}
}

func TestMapper000PRG32KNotMirrored(t *testing.T) {
	m := NewMapper000(MirrorHorizontal)
	prg := make([]uint8, 32768)
	prg[0] = 0xAA
	prg[0x4000] = 0xBB
	if err := m.LoadPRG(prg); err != nil {
		t.Fatalf("LoadPRG: %v", err)
	}
	if got := m.ReadPRG(0x8000); got != 0xAA {
		t.Errorf("ReadPRG(0x8000) = %#x, want 0xAA", got)
	}
	if got := m.ReadPRG(0xC000); got != 0xBB {
		t.Errorf("ReadPRG(0xC000) = %#x, want 0xBB", got)
	}
}

func TestMapper000SRAMPersists(t *testing.T) {
	m := NewMapper000(MirrorHorizontal)
	m.WritePRG(0x6123, 0x7E)
	if got := m.ReadPRG(0x6123); got != 0x7E {
		t.Errorf("SRAM readback = %#x, want 0x7E", got)
	}
	if got := m.SRAM()[0x123]; got != 0x7E {
		t.Errorf("SRAM()[0x123] = %#x, want 0x7E", got)
	}
}

func TestMapper000WriteToROMIgnored(t *testing.T) {
	m := NewMapper000(MirrorHorizontal)
	prg := make([]uint8, 16384)
	if err := m.LoadPRG(prg); err != nil {
		t.Fatalf("LoadPRG: %v", err)
	}
	m.WritePRG(0x8000, 0xFF)
	if got := m.ReadPRG(0x8000); got != 0 {
		t.Errorf("ReadPRG(0x8000) after write = %#x, want 0 (writes to ROM ignored)", got)
	}
}

func TestMapper000LoadPRGRejectsBadSize(t *testing.T) {
	m := NewMapper000(MirrorHorizontal)
	if err := m.LoadPRG(make([]uint8, 100)); err == nil {
		t.Fatal("expected error for invalid PRG size")
	}
}

func TestMapper000CHRPatternTable(t *testing.T) {
	m := NewMapper000(MirrorHorizontal)
	chr := make([]uint8, 8192)
	chr[0x0123] = 0x9A
	m.LoadCHR(chr)
	res := m.ReadCHR(0x0123)
	if res.IsNameTable {
		t.Fatal("pattern-table read should not report IsNameTable")
	}
	if res.Byte != 0x9A {
		t.Errorf("ReadCHR(0x0123).Byte = %#x, want 0x9A", res.Byte)
	}
}

func TestMapper000HorizontalMirroring(t *testing.T) {
	// Horizontal mirroring: $2000 and $2400 share storage; $2800 and $2C00
	// share storage (the vertical nametable is "stacked" on the horizontal
	// axis), per fancy-nes-core/src/cpu/mapper000.rs.
	m := NewMapper000(MirrorHorizontal)
	m.LoadCHR(make([]uint8, 8192))

	a := m.ReadCHR(0x2000)
	b := m.ReadCHR(0x2400)
	if !a.IsNameTable || !b.IsNameTable || a.NameTableIndex != b.NameTableIndex {
		t.Errorf("horizontal mirroring: $2000 -> %+v, $2400 -> %+v, want equal indices", a, b)
	}

	c := m.ReadCHR(0x2800)
	d := m.ReadCHR(0x2C00)
	if !c.IsNameTable || !d.IsNameTable || c.NameTableIndex != d.NameTableIndex {
		t.Errorf("horizontal mirroring: $2800 -> %+v, $2C00 -> %+v, want equal indices", c, d)
	}
	if a.NameTableIndex == c.NameTableIndex {
		t.Errorf("$2000 and $2800 must map to distinct nametable halves under horizontal mirroring")
	}
}

func TestMapper000VerticalMirroring(t *testing.T) {
	// Vertical mirroring: $2000 and $2800 share storage; $2400 and $2C00
	// share storage.
	m := NewMapper000(MirrorVertical)
	m.LoadCHR(make([]uint8, 8192))

	a := m.ReadCHR(0x2000)
	c := m.ReadCHR(0x2800)
	if !a.IsNameTable || !c.IsNameTable || a.NameTableIndex != c.NameTableIndex {
		t.Errorf("vertical mirroring: $2000 -> %+v, $2800 -> %+v, want equal indices", a, c)
	}

	b := m.ReadCHR(0x2400)
	d := m.ReadCHR(0x2C00)
	if !b.IsNameTable || !d.IsNameTable || b.NameTableIndex != d.NameTableIndex {
		t.Errorf("vertical mirroring: $2400 -> %+v, $2C00 -> %+v, want equal indices", b, d)
	}
	if a.NameTableIndex == b.NameTableIndex {
		t.Errorf("$2000 and $2400 must map to distinct nametable halves under vertical mirroring")
	}
}

func TestMapper000NameTableMirrorRegion(t *testing.T) {
	// $3000-$3EFF mirrors $2000-$2EFF (spec §4.1).
	m := NewMapper000(MirrorHorizontal)
	m.LoadCHR(make([]uint8, 8192))

	a := m.ReadCHR(0x2123)
	b := m.ReadCHR(0x3123)
	if !a.IsNameTable || !b.IsNameTable || a.NameTableIndex != b.NameTableIndex {
		t.Errorf("$3000 region mirror: $2123 -> %+v, $3123 -> %+v, want equal", a, b)
	}
}
