// Package memory implements the CPU-side memory bus: the single address
// space the 6502 core sees, routing $0000-$FFFF to internal RAM, the PPU
// register file, APU/IO registers, the controller ports, and the
// cartridge mapper (spec §4.2). Built around a Read/Write address switch,
// extended with the Peek (silent) / Read (active) distinction the CPU
// core depends on.
package memory

// PPUInterface is the subset of the PPU the CPU bus needs: register
// read/write at $2000-$2007 (mirrored through $3FFF), plus a
// non-side-effecting peek for debug/indirect-addressing reads.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	PeekRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface is the subset of the APU stub the CPU bus needs.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
	PeekStatus() uint8
}

// InputInterface is the subset of the controller ports the CPU bus needs.
type InputInterface interface {
	Read(address uint16) uint8
	Peek(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is the CPU-side half of the Mapper contract
// (cartridge.Mapper satisfies this structurally; PRG reads have no side
// effects, so Peek and Read share an implementation).
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
}

// Bus is the NES's CPU-visible address space.
type Bus struct {
	ram [0x800]uint8

	ppu   PPUInterface
	apu   APUInterface
	input InputInterface
	cart  CartridgeInterface

	openBus uint8
}

// New wires a Bus to its PPU, APU, and cartridge. SetInput attaches the
// controller ports (optional, separated so a headless test bus can omit
// them).
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface) *Bus {
	return &Bus{ppu: ppu, apu: apu, cart: cart}
}

// SetInput attaches the controller port multiplexer.
func (b *Bus) SetInput(input InputInterface) {
	b.input = input
}

// RAM returns a copy of the 2KiB internal work RAM, used by save states
// (§10.5) and debug inspection.
func (b *Bus) RAM() [0x800]uint8 {
	return b.ram
}

// SetRAM replaces the internal work RAM wholesale, used when restoring a
// save state.
func (b *Bus) SetRAM(data [0x800]uint8) {
	b.ram = data
}

// Read performs an active bus read: register reads that have side
// effects (PPU STATUS clearing vblank, the controller shift register
// advancing, $4015 clearing the frame IRQ flag) take them here.
func (b *Bus) Read(address uint16) uint8 {
	value := b.readUnlatched(address, true)
	b.openBus = value
	return value
}

// Peek performs a silent read: the same address decoding as Read, but
// routed through each component's non-side-effecting accessor. Used for
// operand fetches, pointer resolution and debugger/save-state inspection
// (§4.2); the CPU fetches opcodes with Read.
func (b *Bus) Peek(address uint16) uint8 {
	return b.readUnlatched(address, false)
}

func (b *Bus) readUnlatched(address uint16, active bool) uint8 {
	switch {
	case address < 0x2000:
		return b.ram[address&0x07FF]

	case address < 0x4000:
		reg := 0x2000 + address&0x0007
		if active {
			return b.ppu.ReadRegister(reg)
		}
		return b.ppu.PeekRegister(reg)

	case address < 0x4020:
		switch {
		case address == 0x4015:
			if active {
				return b.apu.ReadStatus()
			}
			return b.apu.PeekStatus()
		case address == 0x4016 || address == 0x4017:
			if b.input == nil {
				return b.openBus
			}
			if active {
				return b.input.Read(address)
			}
			return b.input.Peek(address)
		default:
			// Other APU/IO registers are write-only; reads see open bus.
			return b.openBus
		}

	case address >= 0x6000:
		if b.cart == nil {
			return b.openBus
		}
		return b.cart.ReadPRG(address)

	default:
		// $4020-$5FFF: unmapped cartridge expansion area.
		return b.openBus
	}
}

// Write performs a bus write, routing to the addressed component. OAM DMA
// ($4014) is handled by the CPU core itself (it owns the DMA-stall
// latch); the bus only needs to forward the plain register writes.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		b.ram[address&0x07FF] = value

	case address < 0x4000:
		b.ppu.WriteRegister(0x2000+address&0x0007, value)

	case address < 0x4020:
		switch {
		case address == 0x4016:
			if b.input != nil {
				b.input.Write(address, value)
			}
		case address >= 0x4000 && address <= 0x4013, address == 0x4015, address == 0x4017:
			b.apu.WriteRegister(address, value)
		// $4014 (OAM DMA) and $4018-$401F (disabled test registers) are
		// intentionally not handled here.
		default:
		}

	case address >= 0x6000:
		if b.cart != nil {
			b.cart.WritePRG(address, value)
		}

	default:
		// $4020-$5FFF: unmapped, writes discarded.
	}
}
