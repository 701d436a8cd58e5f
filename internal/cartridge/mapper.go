package cartridge

import "fmt"

// CHRResult is the tagged result of a PPU-side mapper access (spec §4.1). A
// mapper either answers directly from CHR storage (Byte) or redirects the PPU
// to its own nametable RAM, having already applied the cartridge's hardwired
// mirroring rule to produce a 0-2047 index.
type CHRResult struct {
	Byte           uint8
	IsNameTable    bool
	NameTableIndex uint16
}

// Mapper is the two-sided cartridge adapter contract. The taxonomy is open:
// Mapper000 (NROM) is the only implementation here, but later mappers add
// bank switching, CHR banking, and IRQ sources behind the same interface.
type Mapper interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
	ReadCHR(addr uint16) CHRResult
	WriteCHR(addr uint16, value uint8) CHRResult
	LoadPRG(data []uint8) error
	LoadCHR(data []uint8)
}

// ErrUnsupportedMapper is returned by NewMapper for unrecognised mapper ids.
type ErrUnsupportedMapper struct {
	ID uint8
}

func (e *ErrUnsupportedMapper) Error() string {
	return fmt.Sprintf("unsupported mapper id: %d", e.ID)
}

// NewMapper constructs the mapper identified by id, applying the cartridge's
// hardwired mirroring mode.
func NewMapper(id uint8, mirror MirrorMode) (Mapper, error) {
	switch id {
	case 0:
		return NewMapper000(mirror), nil
	default:
		return nil, &ErrUnsupportedMapper{ID: id}
	}
}

// foldNameTableIndex applies the cartridge's hardwired nametable mirroring to
// a 12-bit PPU nametable-window offset (0x000-0xFFF), producing a 0-2047
// index into the PPU's own 2KB nametable RAM. Grounded on
// fancy-nes-core/src/cpu/mapper000.rs PPUMapper000::read/write.
func foldNameTableIndex(offset uint16, mirror MirrorMode) uint16 {
	switch mirror {
	case MirrorHorizontal:
		offset &^= 1 << 10
		if offset&0x800 != 0 {
			offset -= 0x400
		}
	case MirrorVertical:
		offset &^= 1 << 11
	default:
		// FourScreen and single-screen are not wired up by NROM; fold to
		// vertical mirroring as a safe default for an unsupported mode.
		offset &^= 1 << 11
	}
	return offset & 0x7FF
}
