package cpu

// AddressingMode identifies one of the 6502's 13 addressing modes.
type AddressingMode uint8

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// resolveAddress decodes the operand bytes following the opcode and
// returns the effective address plus whether a page boundary was crossed
// while indexing. All operand/pointer bytes are fetched with Peek: they
// are instruction-stream reads, never the side-effecting data read/write
// the instruction itself performs. Grounded on NESCpu::resolve_address.
func (c *CPU) resolveAddress(bus Bus, mode AddressingMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false

	case Immediate:
		addr = c.PC
		c.PC++
		return addr, false

	case ZeroPage:
		addr = uint16(bus.Peek(c.PC))
		c.PC++
		return addr, false

	case ZeroPageX:
		base := bus.Peek(c.PC)
		c.PC++
		return uint16(base + c.X), false

	case ZeroPageY:
		base := bus.Peek(c.PC)
		c.PC++
		return uint16(base + c.Y), false

	case Relative:
		offset := int8(bus.Peek(c.PC))
		c.PC++
		addr = uint16(int32(c.PC) + int32(offset))
		pageCrossed = addr&0xFF00 != c.PC&0xFF00
		return addr, pageCrossed

	case Absolute:
		lo := bus.Peek(c.PC)
		hi := bus.Peek(c.PC + 1)
		c.PC += 2
		return uint16(hi)<<8 | uint16(lo), false

	case AbsoluteX:
		lo := bus.Peek(c.PC)
		hi := bus.Peek(c.PC + 1)
		c.PC += 2
		base := uint16(hi)<<8 | uint16(lo)
		addr = base + uint16(c.X)
		return addr, base&0xFF00 != addr&0xFF00

	case AbsoluteY:
		lo := bus.Peek(c.PC)
		hi := bus.Peek(c.PC + 1)
		c.PC += 2
		base := uint16(hi)<<8 | uint16(lo)
		addr = base + uint16(c.Y)
		return addr, base&0xFF00 != addr&0xFF00

	case Indirect:
		lo := bus.Peek(c.PC)
		hi := bus.Peek(c.PC + 1)
		c.PC += 2
		ptr := uint16(hi)<<8 | uint16(lo)
		// Hardware bug: if the pointer's low byte is 0xFF, the high byte
		// wraps to the start of the same page instead of crossing it.
		hiPtr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
		addrLo := bus.Peek(ptr)
		addrHi := bus.Peek(hiPtr)
		return uint16(addrHi)<<8 | uint16(addrLo), false

	case IndexedIndirect:
		base := bus.Peek(c.PC)
		c.PC++
		ptr := base + c.X
		lo := bus.Peek(uint16(ptr))
		hi := bus.Peek(uint16(ptr + 1))
		return uint16(hi)<<8 | uint16(lo), false

	case IndirectIndexed:
		base := bus.Peek(c.PC)
		c.PC++
		lo := bus.Peek(uint16(base))
		hi := bus.Peek(uint16(base + 1))
		baseAddr := uint16(hi)<<8 | uint16(lo)
		addr = baseAddr + uint16(c.Y)
		return addr, baseAddr&0xFF00 != addr&0xFF00
	}
	return 0, false
}
