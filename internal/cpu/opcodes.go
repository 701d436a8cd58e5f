package cpu

// instrFunc executes a decoded instruction. addr is pre-resolved by
// resolveAddress (meaningless for Implied/Accumulator); pageCrossed is
// passed through for the branch instructions, which charge their own
// extra-cycle penalty instead of the generic PageCross mechanism.
type instrFunc func(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error

type opcodeEntry struct {
	Mnemonic string
	Mode     AddressingMode
	Cycles   uint8
	// PageCross charges one extra cycle when resolveAddress crossed a
	// page boundary. Only set for read instructions in indexed/indirect
	// modes; stores and read-modify-write instructions always take their
	// listed worst-case cycle count.
	PageCross bool
	Exec      instrFunc
}

var opcodeTable [256]*opcodeEntry

func op(code uint8, mnemonic string, mode AddressingMode, cycles uint8, pageCross bool, exec instrFunc) {
	opcodeTable[code] = &opcodeEntry{Mnemonic: mnemonic, Mode: mode, Cycles: cycles, PageCross: pageCross, Exec: exec}
}

func init() {
	op(0x69, "ADC", Immediate, 2, false, opADC)
	op(0x65, "ADC", ZeroPage, 3, false, opADC)
	op(0x75, "ADC", ZeroPageX, 4, false, opADC)
	op(0x6D, "ADC", Absolute, 4, false, opADC)
	op(0x7D, "ADC", AbsoluteX, 4, true, opADC)
	op(0x79, "ADC", AbsoluteY, 4, true, opADC)
	op(0x61, "ADC", IndexedIndirect, 6, false, opADC)
	op(0x71, "ADC", IndirectIndexed, 5, true, opADC)

	op(0x29, "AND", Immediate, 2, false, opAND)
	op(0x25, "AND", ZeroPage, 3, false, opAND)
	op(0x35, "AND", ZeroPageX, 4, false, opAND)
	op(0x2D, "AND", Absolute, 4, false, opAND)
	op(0x3D, "AND", AbsoluteX, 4, true, opAND)
	op(0x39, "AND", AbsoluteY, 4, true, opAND)
	op(0x21, "AND", IndexedIndirect, 6, false, opAND)
	op(0x31, "AND", IndirectIndexed, 5, true, opAND)

	op(0x0A, "ASL", Accumulator, 2, false, opASL)
	op(0x06, "ASL", ZeroPage, 5, false, opASL)
	op(0x16, "ASL", ZeroPageX, 6, false, opASL)
	op(0x0E, "ASL", Absolute, 6, false, opASL)
	op(0x1E, "ASL", AbsoluteX, 7, false, opASL)

	op(0x90, "BCC", Relative, 2, false, opBCC)
	op(0xB0, "BCS", Relative, 2, false, opBCS)
	op(0xF0, "BEQ", Relative, 2, false, opBEQ)
	op(0x24, "BIT", ZeroPage, 3, false, opBIT)
	op(0x2C, "BIT", Absolute, 4, false, opBIT)
	op(0x30, "BMI", Relative, 2, false, opBMI)
	op(0xD0, "BNE", Relative, 2, false, opBNE)
	op(0x10, "BPL", Relative, 2, false, opBPL)
	op(0x00, "BRK", Implied, 7, false, opBRK)
	op(0x50, "BVC", Relative, 2, false, opBVC)
	op(0x70, "BVS", Relative, 2, false, opBVS)

	op(0x18, "CLC", Implied, 2, false, opCLC)
	op(0xD8, "CLD", Implied, 2, false, opCLD)
	op(0x58, "CLI", Implied, 2, false, opCLI)
	op(0xB8, "CLV", Implied, 2, false, opCLV)

	op(0xC9, "CMP", Immediate, 2, false, opCMP)
	op(0xC5, "CMP", ZeroPage, 3, false, opCMP)
	op(0xD5, "CMP", ZeroPageX, 4, false, opCMP)
	op(0xCD, "CMP", Absolute, 4, false, opCMP)
	op(0xDD, "CMP", AbsoluteX, 4, true, opCMP)
	op(0xD9, "CMP", AbsoluteY, 4, true, opCMP)
	op(0xC1, "CMP", IndexedIndirect, 6, false, opCMP)
	op(0xD1, "CMP", IndirectIndexed, 5, true, opCMP)

	op(0xE0, "CPX", Immediate, 2, false, opCPX)
	op(0xE4, "CPX", ZeroPage, 3, false, opCPX)
	op(0xEC, "CPX", Absolute, 4, false, opCPX)

	op(0xC0, "CPY", Immediate, 2, false, opCPY)
	op(0xC4, "CPY", ZeroPage, 3, false, opCPY)
	op(0xCC, "CPY", Absolute, 4, false, opCPY)

	op(0xC6, "DEC", ZeroPage, 5, false, opDEC)
	op(0xD6, "DEC", ZeroPageX, 6, false, opDEC)
	op(0xCE, "DEC", Absolute, 6, false, opDEC)
	op(0xDE, "DEC", AbsoluteX, 7, false, opDEC)
	op(0xCA, "DEX", Implied, 2, false, opDEX)
	op(0x88, "DEY", Implied, 2, false, opDEY)

	op(0x49, "EOR", Immediate, 2, false, opEOR)
	op(0x45, "EOR", ZeroPage, 3, false, opEOR)
	op(0x55, "EOR", ZeroPageX, 4, false, opEOR)
	op(0x4D, "EOR", Absolute, 4, false, opEOR)
	op(0x5D, "EOR", AbsoluteX, 4, true, opEOR)
	op(0x59, "EOR", AbsoluteY, 4, true, opEOR)
	op(0x41, "EOR", IndexedIndirect, 6, false, opEOR)
	op(0x51, "EOR", IndirectIndexed, 5, true, opEOR)

	op(0xE6, "INC", ZeroPage, 5, false, opINC)
	op(0xF6, "INC", ZeroPageX, 6, false, opINC)
	op(0xEE, "INC", Absolute, 6, false, opINC)
	op(0xFE, "INC", AbsoluteX, 7, false, opINC)
	op(0xE8, "INX", Implied, 2, false, opINX)
	op(0xC8, "INY", Implied, 2, false, opINY)

	op(0x4C, "JMP", Absolute, 3, false, opJMP)
	op(0x6C, "JMP", Indirect, 5, false, opJMP)
	op(0x20, "JSR", Absolute, 6, false, opJSR)

	op(0xA9, "LDA", Immediate, 2, false, opLDA)
	op(0xA5, "LDA", ZeroPage, 3, false, opLDA)
	op(0xB5, "LDA", ZeroPageX, 4, false, opLDA)
	op(0xAD, "LDA", Absolute, 4, false, opLDA)
	op(0xBD, "LDA", AbsoluteX, 4, true, opLDA)
	op(0xB9, "LDA", AbsoluteY, 4, true, opLDA)
	op(0xA1, "LDA", IndexedIndirect, 6, false, opLDA)
	op(0xB1, "LDA", IndirectIndexed, 5, true, opLDA)

	op(0xA2, "LDX", Immediate, 2, false, opLDX)
	op(0xA6, "LDX", ZeroPage, 3, false, opLDX)
	op(0xB6, "LDX", ZeroPageY, 4, false, opLDX)
	op(0xAE, "LDX", Absolute, 4, false, opLDX)
	op(0xBE, "LDX", AbsoluteY, 4, true, opLDX)

	op(0xA0, "LDY", Immediate, 2, false, opLDY)
	op(0xA4, "LDY", ZeroPage, 3, false, opLDY)
	op(0xB4, "LDY", ZeroPageX, 4, false, opLDY)
	op(0xAC, "LDY", Absolute, 4, false, opLDY)
	op(0xBC, "LDY", AbsoluteX, 4, true, opLDY)

	op(0x4A, "LSR", Accumulator, 2, false, opLSR)
	op(0x46, "LSR", ZeroPage, 5, false, opLSR)
	op(0x56, "LSR", ZeroPageX, 6, false, opLSR)
	op(0x4E, "LSR", Absolute, 6, false, opLSR)
	op(0x5E, "LSR", AbsoluteX, 7, false, opLSR)

	op(0xEA, "NOP", Implied, 2, false, opNOP)

	op(0x09, "ORA", Immediate, 2, false, opORA)
	op(0x05, "ORA", ZeroPage, 3, false, opORA)
	op(0x15, "ORA", ZeroPageX, 4, false, opORA)
	op(0x0D, "ORA", Absolute, 4, false, opORA)
	op(0x1D, "ORA", AbsoluteX, 4, true, opORA)
	op(0x19, "ORA", AbsoluteY, 4, true, opORA)
	op(0x01, "ORA", IndexedIndirect, 6, false, opORA)
	op(0x11, "ORA", IndirectIndexed, 5, true, opORA)

	op(0x48, "PHA", Implied, 3, false, opPHA)
	op(0x08, "PHP", Implied, 3, false, opPHP)
	op(0x68, "PLA", Implied, 4, false, opPLA)
	op(0x28, "PLP", Implied, 4, false, opPLP)

	op(0x2A, "ROL", Accumulator, 2, false, opROL)
	op(0x26, "ROL", ZeroPage, 5, false, opROL)
	op(0x36, "ROL", ZeroPageX, 6, false, opROL)
	op(0x2E, "ROL", Absolute, 6, false, opROL)
	op(0x3E, "ROL", AbsoluteX, 7, false, opROL)

	op(0x6A, "ROR", Accumulator, 2, false, opROR)
	op(0x66, "ROR", ZeroPage, 5, false, opROR)
	op(0x76, "ROR", ZeroPageX, 6, false, opROR)
	op(0x6E, "ROR", Absolute, 6, false, opROR)
	op(0x7E, "ROR", AbsoluteX, 7, false, opROR)

	op(0x40, "RTI", Implied, 6, false, opRTI)
	op(0x60, "RTS", Implied, 6, false, opRTS)

	op(0xE9, "SBC", Immediate, 2, false, opSBC)
	op(0xE5, "SBC", ZeroPage, 3, false, opSBC)
	op(0xF5, "SBC", ZeroPageX, 4, false, opSBC)
	op(0xED, "SBC", Absolute, 4, false, opSBC)
	op(0xFD, "SBC", AbsoluteX, 4, true, opSBC)
	op(0xF9, "SBC", AbsoluteY, 4, true, opSBC)
	op(0xE1, "SBC", IndexedIndirect, 6, false, opSBC)
	op(0xF1, "SBC", IndirectIndexed, 5, true, opSBC)

	op(0x38, "SEC", Implied, 2, false, opSEC)
	op(0xF8, "SED", Implied, 2, false, opSED)
	op(0x78, "SEI", Implied, 2, false, opSEI)

	op(0x85, "STA", ZeroPage, 3, false, opSTA)
	op(0x95, "STA", ZeroPageX, 4, false, opSTA)
	op(0x8D, "STA", Absolute, 4, false, opSTA)
	op(0x9D, "STA", AbsoluteX, 5, false, opSTA)
	op(0x99, "STA", AbsoluteY, 5, false, opSTA)
	op(0x81, "STA", IndexedIndirect, 6, false, opSTA)
	op(0x91, "STA", IndirectIndexed, 6, false, opSTA)

	op(0x86, "STX", ZeroPage, 3, false, opSTX)
	op(0x96, "STX", ZeroPageY, 4, false, opSTX)
	op(0x8E, "STX", Absolute, 4, false, opSTX)

	op(0x84, "STY", ZeroPage, 3, false, opSTY)
	op(0x94, "STY", ZeroPageX, 4, false, opSTY)
	op(0x8C, "STY", Absolute, 4, false, opSTY)

	op(0xAA, "TAX", Implied, 2, false, opTAX)
	op(0xA8, "TAY", Implied, 2, false, opTAY)
	op(0xBA, "TSX", Implied, 2, false, opTSX)
	op(0x8A, "TXA", Implied, 2, false, opTXA)
	op(0x9A, "TXS", Implied, 2, false, opTXS)
	op(0x98, "TYA", Implied, 2, false, opTYA)
}

func opADC(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	value := bus.Read(addr)
	sum := uint16(c.A) + uint16(value)
	if c.Carry {
		sum++
	}
	result := uint8(sum)
	c.Overflow = (c.A^value)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.Carry = sum > 0xFF
	c.A = result
	c.setZN(c.A)
	return nil
}

func opSBC(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	value := bus.Read(addr) ^ 0xFF
	sum := uint16(c.A) + uint16(value)
	if c.Carry {
		sum++
	}
	result := uint8(sum)
	c.Overflow = (c.A^value)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.Carry = sum > 0xFF
	c.A = result
	c.setZN(c.A)
	return nil
}

func opAND(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.A &= bus.Read(addr)
	c.setZN(c.A)
	return nil
}

func opORA(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.A |= bus.Read(addr)
	c.setZN(c.A)
	return nil
}

func opEOR(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.A ^= bus.Read(addr)
	c.setZN(c.A)
	return nil
}

func opASL(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	if mode == Accumulator {
		c.Carry = c.A&0x80 != 0
		c.A <<= 1
		c.setZN(c.A)
		return nil
	}
	value := bus.Read(addr)
	c.Carry = value&0x80 != 0
	value <<= 1
	bus.Write(addr, value)
	c.setZN(value)
	return nil
}

func opLSR(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	if mode == Accumulator {
		c.Carry = c.A&0x01 != 0
		c.A >>= 1
		c.setZN(c.A)
		return nil
	}
	value := bus.Read(addr)
	c.Carry = value&0x01 != 0
	value >>= 1
	bus.Write(addr, value)
	c.setZN(value)
	return nil
}

func opROL(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	oldCarry := c.Carry
	if mode == Accumulator {
		c.Carry = c.A&0x80 != 0
		c.A <<= 1
		if oldCarry {
			c.A |= 0x01
		}
		c.setZN(c.A)
		return nil
	}
	value := bus.Read(addr)
	c.Carry = value&0x80 != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	bus.Write(addr, value)
	c.setZN(value)
	return nil
}

func opROR(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	oldCarry := c.Carry
	if mode == Accumulator {
		c.Carry = c.A&0x01 != 0
		c.A >>= 1
		if oldCarry {
			c.A |= 0x80
		}
		c.setZN(c.A)
		return nil
	}
	value := bus.Read(addr)
	c.Carry = value&0x01 != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	bus.Write(addr, value)
	c.setZN(value)
	return nil
}

func opBIT(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	value := bus.Read(addr)
	c.Zero = (c.A & value) == 0
	c.Overflow = value&0x40 != 0
	c.Negative = value&0x80 != 0
	return nil
}

func branch(c *CPU, addr uint16, pageCrossed bool, taken bool) {
	if !taken {
		return
	}
	c.WaitCycles++
	if pageCrossed {
		c.WaitCycles++
	}
	c.PC = addr
}

func opBCC(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	branch(c, addr, pageCrossed, !c.Carry)
	return nil
}
func opBCS(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	branch(c, addr, pageCrossed, c.Carry)
	return nil
}
func opBEQ(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	branch(c, addr, pageCrossed, c.Zero)
	return nil
}
func opBNE(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	branch(c, addr, pageCrossed, !c.Zero)
	return nil
}
func opBMI(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	branch(c, addr, pageCrossed, c.Negative)
	return nil
}
func opBPL(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	branch(c, addr, pageCrossed, !c.Negative)
	return nil
}
func opBVC(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	branch(c, addr, pageCrossed, !c.Overflow)
	return nil
}
func opBVS(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	branch(c, addr, pageCrossed, c.Overflow)
	return nil
}

// opBRK resolves through the IRQ/BRK vector ($FFFE/$FFFF). The fancy-nes
// Rust ancestor vectors BRK through $FFFA (the NMI vector) by mistake;
// SPEC_FULL.md §9 resolves this in favor of the hardware-correct vector.
func opBRK(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.PC++ // BRK's second byte is a padding/signature byte, still consumed
	if err := c.push(bus, uint8(c.PC>>8)); err != nil {
		return err
	}
	if err := c.push(bus, uint8(c.PC)); err != nil {
		return err
	}
	if err := c.push(bus, c.statusByte(true)); err != nil {
		return err
	}
	c.InterruptDisable = true
	lo := bus.Peek(0xFFFE)
	hi := bus.Peek(0xFFFF)
	c.PC = uint16(hi)<<8 | uint16(lo)
	return nil
}

func opCLC(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.Carry = false
	return nil
}
func opCLD(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.Decimal = false
	return nil
}
func opCLI(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.InterruptDisable = false
	return nil
}
func opCLV(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.Overflow = false
	return nil
}
func opSEC(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.Carry = true
	return nil
}
func opSED(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.Decimal = true
	return nil
}
func opSEI(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.InterruptDisable = true
	return nil
}

func compare(c *CPU, reg uint8, value uint8) {
	c.Carry = reg >= value
	c.setZN(reg - value)
}

func opCMP(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	compare(c, c.A, bus.Read(addr))
	return nil
}
func opCPX(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	compare(c, c.X, bus.Read(addr))
	return nil
}
func opCPY(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	compare(c, c.Y, bus.Read(addr))
	return nil
}

func opDEC(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	v := bus.Read(addr) - 1
	bus.Write(addr, v)
	c.setZN(v)
	return nil
}
func opINC(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	v := bus.Read(addr) + 1
	bus.Write(addr, v)
	c.setZN(v)
	return nil
}
func opDEX(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.X--
	c.setZN(c.X)
	return nil
}
func opDEY(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.Y--
	c.setZN(c.Y)
	return nil
}
func opINX(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.X++
	c.setZN(c.X)
	return nil
}
func opINY(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.Y++
	c.setZN(c.Y)
	return nil
}

func opJMP(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.PC = addr
	return nil
}

func opJSR(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	ret := c.PC - 1
	if err := c.push(bus, uint8(ret>>8)); err != nil {
		return err
	}
	if err := c.push(bus, uint8(ret)); err != nil {
		return err
	}
	c.PC = addr
	return nil
}

func opRTS(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	lo := c.pull(bus)
	hi := c.pull(bus)
	c.PC = (uint16(hi)<<8 | uint16(lo)) + 1
	return nil
}

func opRTI(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.setStatusByte(c.pull(bus))
	lo := c.pull(bus)
	hi := c.pull(bus)
	c.PC = uint16(hi)<<8 | uint16(lo)
	return nil
}

func opLDA(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.A = bus.Read(addr)
	c.setZN(c.A)
	return nil
}
func opLDX(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.X = bus.Read(addr)
	c.setZN(c.X)
	return nil
}
func opLDY(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.Y = bus.Read(addr)
	c.setZN(c.Y)
	return nil
}

// maybeTriggerOAMDMA arms the CPU's own DMA-stall state on any write to
// $4014. Intercepting the special address here, rather than threading a
// CPU back-reference through the bus, keeps Bus a one-way dependency.
func (c *CPU) maybeTriggerOAMDMA(addr uint16, value uint8) {
	if addr == 0x4014 {
		c.DMAHalt = true
		c.NextDMAAddr = uint16(value) << 8
	}
}

func opSTA(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	bus.Write(addr, c.A)
	c.maybeTriggerOAMDMA(addr, c.A)
	return nil
}
func opSTX(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	bus.Write(addr, c.X)
	c.maybeTriggerOAMDMA(addr, c.X)
	return nil
}
func opSTY(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	bus.Write(addr, c.Y)
	c.maybeTriggerOAMDMA(addr, c.Y)
	return nil
}

func opNOP(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	return nil
}

func opPHA(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	return c.push(bus, c.A)
}
func opPHP(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	return c.push(bus, c.statusByte(true))
}
func opPLA(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.A = c.pull(bus)
	c.setZN(c.A)
	return nil
}
func opPLP(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.setStatusByte(c.pull(bus))
	return nil
}

func opTAX(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.X = c.A
	c.setZN(c.X)
	return nil
}
func opTAY(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.Y = c.A
	c.setZN(c.Y)
	return nil
}
func opTSX(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.X = c.SP
	c.setZN(c.X)
	return nil
}
func opTXA(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.A = c.X
	c.setZN(c.A)
	return nil
}
func opTXS(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.SP = c.X
	return nil
}
func opTYA(c *CPU, bus Bus, addr uint16, mode AddressingMode, pageCrossed bool) error {
	c.A = c.Y
	c.setZN(c.A)
	return nil
}
