package graphics

import "testing"

func TestConvertPaletteFrameMapsIndices(t *testing.T) {
	indices := make([]uint8, 256*240)
	indices[0] = 0x0F // black entry
	indices[1] = 0x30 // white entry

	out := ConvertPaletteFrame(indices)

	if out[0] != nesPalette[0x0F] {
		t.Errorf("out[0] = %#06x, want %#06x", out[0], nesPalette[0x0F])
	}
	if out[1] != nesPalette[0x30] {
		t.Errorf("out[1] = %#06x, want %#06x", out[1], nesPalette[0x30])
	}
}

func TestConvertPaletteFrameMasksOutOfRangeIndices(t *testing.T) {
	indices := make([]uint8, 256*240)
	indices[5] = 0x7F // top bit set, should mask down to 0x3F

	out := ConvertPaletteFrame(indices)

	if out[5] != nesPalette[0x3F] {
		t.Errorf("out[5] = %#06x, want %#06x", out[5], nesPalette[0x3F])
	}
}

func TestConvertPaletteFrameShorterSliceLeavesRestZero(t *testing.T) {
	indices := []uint8{0x01, 0x02}
	out := ConvertPaletteFrame(indices)

	if out[0] != nesPalette[0x01] || out[1] != nesPalette[0x02] {
		t.Fatal("first two entries not converted")
	}
	if out[2] != 0 {
		t.Errorf("out[2] = %#06x, want 0", out[2])
	}
}
