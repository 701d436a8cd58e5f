package graphics

// nesPalette is the standard 64-entry NTSC NES palette (0xRRGGBB per
// index), the same public-domain table used by most NES emulators
// (FCEUX's default palette). core.Core emits palette indices rather than
// RGB (spec §10.3), so this table lives here, next to the one place that
// expands indices for display.
var nesPalette = [64]uint32{
	0x666666, 0x002A88, 0x1412A7, 0x3B00A4, 0x5C007E, 0x6E0040, 0x6C0600, 0x561D00,
	0x333500, 0x0B4800, 0x005200, 0x004F08, 0x00404D, 0x000000, 0x000000, 0x000000,
	0xADADAD, 0x155FD9, 0x4240FF, 0x7527FE, 0xA01ACC, 0xB71E7B, 0xB53120, 0x994E00,
	0x6B6D00, 0x388700, 0x0C9300, 0x008F32, 0x007C8D, 0x000000, 0x000000, 0x000000,
	0xFFFEFF, 0x64B0FF, 0x9290FF, 0xC676FF, 0xF36AFF, 0xFE6ECC, 0xFE8170, 0xEA9E22,
	0xBCBE00, 0x88D800, 0x5CE430, 0x45E082, 0x48CDDE, 0x4F4F4F, 0x000000, 0x000000,
	0xFFFEFF, 0xC0DFFF, 0xD3D2FF, 0xE8C8FF, 0xFBC2FF, 0xFEC4EA, 0xFECCC5, 0xF7D8A5,
	0xE4E594, 0xCFEF96, 0xBDF4AB, 0xB3F3CC, 0xB5EBF2, 0xB8B8B8, 0x000000, 0x000000,
}

// ConvertPaletteFrame expands a 256*240 slice of NES palette indices (as
// produced by core.Core.TakeFrame) into the packed-RGB array the
// graphics.Window.RenderFrame contract expects. indices values above 0x3F
// are masked, matching the PPU's 6-bit color index.
func ConvertPaletteFrame(indices []uint8) [256 * 240]uint32 {
	var out [256 * 240]uint32
	for i, idx := range indices {
		if i >= len(out) {
			break
		}
		out[i] = nesPalette[idx&0x3F]
	}
	return out
}
