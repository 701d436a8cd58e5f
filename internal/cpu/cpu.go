// Package cpu implements the cycle-accurate 6502 core: per-tick
// fetch/decode/execute, OAM DMA stalling, and level-triggered NMI entry.
// Grounded on fancy-nes-core/src/cpu.rs (NESCpu::tick/nmi/reset).
package cpu

// Bus is the CPU-facing memory contract. Read performs a full bus access
// with whatever side effects the target register has (e.g. clearing PPU
// STATUS bit 7); Peek must never trigger those side effects and is used
// for operand fetches and pointer resolution. Opcode fetches use Read.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	Peek(addr uint16) uint8
}

const (
	flagC uint8 = 1 << 0
	flagZ uint8 = 1 << 1
	flagI uint8 = 1 << 2
	flagD uint8 = 1 << 3
	flagB uint8 = 1 << 4
	flagU uint8 = 1 << 5
	flagV uint8 = 1 << 6
	flagN uint8 = 1 << 7
)

// CPU holds all 6502 register and latch state plus the extra latches the
// NES wraps around it (OAM DMA stall, the level-triggered NMI line).
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16

	Carry, Zero, InterruptDisable, Decimal, Overflow, Negative bool

	// WaitCycles is the number of ticks still owed to the instruction in
	// flight; Tick decrements it instead of fetching a new opcode.
	WaitCycles uint16

	// DMAHalt/NextDMAAddr model OAM DMA ($4014): one byte copied per tick
	// until the low byte of NextDMAAddr wraps from 0xFF to 0x00.
	DMAHalt     bool
	NextDMAAddr uint16

	// DoNMI is the level-triggered NMI latch; the PPU's owner asserts it
	// once per vblank edge and the next Tick that is not a DMA stall cycle
	// consumes it, ahead of any WaitCycles the previous instruction still
	// owes (that instruction's effects were all applied on its first tick;
	// nmi replaces the owed count with its own six cycles).
	DoNMI bool

	Cycle uint64
}

// New returns a CPU with registers zeroed; callers must call Reset before
// the first Tick to load the reset vector.
func New() *CPU {
	return &CPU{}
}

// Reset loads PC from the reset vector ($FFFC/$FFFD) and establishes the
// power-on/reset register state.
func (c *CPU) Reset(bus Bus) {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.Carry, c.Zero, c.Decimal, c.Overflow, c.Negative = false, false, false, false, false
	c.InterruptDisable = true
	lo := bus.Peek(0xFFFC)
	hi := bus.Peek(0xFFFD)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.WaitCycles = 0
	c.DMAHalt = false
	c.DoNMI = false
}

// AssertNMI raises the level-triggered NMI line. The owning coordinator
// calls this once per PPU vblank edge (§4.4); it is consumed by the next
// Tick that is not a DMA stall cycle.
func (c *CPU) AssertNMI() {
	c.DoNMI = true
}

// Tick advances the CPU by exactly one CPU cycle.
func (c *CPU) Tick(bus Bus) error {
	c.Cycle++

	if c.DMAHalt {
		value := bus.Read(c.NextDMAAddr)
		bus.Write(0x2004, value)
		if c.NextDMAAddr&0xFF == 0xFF {
			c.DMAHalt = false
		}
		c.NextDMAAddr++
		return nil
	}

	if c.DoNMI {
		c.DoNMI = false
		return c.nmi(bus)
	}

	if c.WaitCycles > 0 {
		c.WaitCycles--
		return nil
	}

	opcodePC := c.PC
	opcode := bus.Read(c.PC)
	c.PC++

	entry := opcodeTable[opcode]
	if entry == nil {
		return &DecodeError{PC: opcodePC, Opcode: opcode}
	}

	addr, pageCrossed := c.resolveAddress(bus, entry.Mode)

	cycles := entry.Cycles
	if entry.PageCross && pageCrossed {
		cycles++
	}

	if err := entry.Exec(c, bus, addr, entry.Mode, pageCrossed); err != nil {
		return err
	}

	c.WaitCycles += uint16(cycles) - 1
	return nil
}

// nmi pushes PC/status and vectors through $FFFA/$FFFB. The push/vector
// fetch occupies this tick; the remaining six cycles of the seven-cycle
// sequence are charged to WaitCycles, matching NESCpu::nmi.
func (c *CPU) nmi(bus Bus) error {
	if err := c.push(bus, uint8(c.PC>>8)); err != nil {
		return err
	}
	if err := c.push(bus, uint8(c.PC)); err != nil {
		return err
	}
	if err := c.push(bus, c.statusByte(false)); err != nil {
		return err
	}
	c.InterruptDisable = true
	lo := bus.Peek(0xFFFA)
	hi := bus.Peek(0xFFFB)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.WaitCycles = 6
	return nil
}

// push writes value to the page-1 stack at the current SP and decrements
// SP. Returns StackUnderflowError instead of wrapping SP from $00 to $FF
// (§7).
func (c *CPU) push(bus Bus, value uint8) error {
	if c.SP == 0x00 {
		return &StackUnderflowError{PC: c.PC}
	}
	bus.Write(0x0100+uint16(c.SP), value)
	c.SP--
	return nil
}

func (c *CPU) pull(bus Bus) uint8 {
	c.SP++
	return bus.Read(0x0100 + uint16(c.SP))
}

func (c *CPU) setZN(v uint8) {
	c.Zero = v == 0
	c.Negative = v&0x80 != 0
}

func (c *CPU) statusByte(brk bool) uint8 {
	b := flagU
	if c.Carry {
		b |= flagC
	}
	if c.Zero {
		b |= flagZ
	}
	if c.InterruptDisable {
		b |= flagI
	}
	if c.Decimal {
		b |= flagD
	}
	if brk {
		b |= flagB
	}
	if c.Overflow {
		b |= flagV
	}
	if c.Negative {
		b |= flagN
	}
	return b
}

func (c *CPU) setStatusByte(b uint8) {
	c.Carry = b&flagC != 0
	c.Zero = b&flagZ != 0
	c.InterruptDisable = b&flagI != 0
	c.Decimal = b&flagD != 0
	c.Overflow = b&flagV != 0
	c.Negative = b&flagN != 0
}

// StatusByte and SetStatusByte expose the packed status register for
// save-state serialization (§10.5); B/unused bits are not stored in the
// CPU's own fields so a round trip always emits brk=false.
func (c *CPU) StatusByte() uint8        { return c.statusByte(false) }
func (c *CPU) SetStatusByte(value uint8) { c.setStatusByte(value) }
