package cpu

import "testing"

// flatBus is a flat 64KiB RAM used to test CPU semantics in isolation from
// the real memory map; Peek and Read are identical since plain RAM has no
// read side effects.
type flatBus struct {
	mem [65536]uint8
}

func (b *flatBus) Read(addr uint16) uint8        { return b.mem[addr] }
func (b *flatBus) Peek(addr uint16) uint8        { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, value uint8) { b.mem[addr] = value }

func newTestCPU(resetVector uint16) (*CPU, *flatBus) {
	bus := &flatBus{}
	bus.mem[0xFFFC] = uint8(resetVector)
	bus.mem[0xFFFD] = uint8(resetVector >> 8)
	c := New()
	c.Reset(bus)
	return c, bus
}

func runTicks(c *CPU, bus Bus, n int) error {
	for i := 0; i < n; i++ {
		if err := c.Tick(bus); err != nil {
			return err
		}
	}
	return nil
}

func TestResetLoadsVectorAndRegisters(t *testing.T) {
	c, _ := newTestCPU(0x8000)
	if c.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP = %#02x, want 0xFD", c.SP)
	}
	if !c.InterruptDisable {
		t.Error("InterruptDisable should be set after reset")
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0xA9 // LDA #$00
	bus.mem[0x8001] = 0x00
	if err := runTicks(c, bus, 2); err != nil {
		t.Fatal(err)
	}
	if c.A != 0 || !c.Zero || c.Negative {
		t.Errorf("A=%#x Zero=%v Negative=%v, want A=0 Zero=true Negative=false", c.A, c.Zero, c.Negative)
	}
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	c.A = 0x7F
	bus.mem[0x8000] = 0x69 // ADC #$01
	bus.mem[0x8001] = 0x01
	if err := runTicks(c, bus, 2); err != nil {
		t.Fatal(err)
	}
	if c.A != 0x80 || !c.Overflow || !c.Negative || c.Carry {
		t.Errorf("A=%#x Overflow=%v Negative=%v Carry=%v", c.A, c.Overflow, c.Negative, c.Carry)
	}
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	c.X = 0xFF
	bus.mem[0x8000] = 0xBD // LDA $8001,X -> crosses page
	bus.mem[0x8001] = 0x01
	bus.mem[0x8002] = 0x80
	bus.mem[0x8100] = 0x42
	// Base cycles 4 + 1 page-cross = 5: the first tick executes the load
	// and the remaining four are owed as WaitCycles.
	if err := runTicks(c, bus, 1); err != nil {
		t.Fatal(err)
	}
	if c.WaitCycles != 4 {
		t.Fatalf("WaitCycles = %d, want 4 (5 cycles with page cross, 1 consumed)", c.WaitCycles)
	}
	if err := runTicks(c, bus, 4); err != nil {
		t.Fatal(err)
	}
	if c.A != 0x42 {
		t.Errorf("A = %#x, want 0x42 after page-cross cycle", c.A)
	}
}

func TestBranchTakenAndPageCrossExtraCycles(t *testing.T) {
	c, bus := newTestCPU(0x80F0)
	c.Carry = false
	bus.mem[0x80F0] = 0x90 // BCC forward, crosses into next page
	bus.mem[0x80F1] = 0x20
	if err := runTicks(c, bus, 1); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x8112 {
		t.Errorf("PC = %#04x, want 0x8112", c.PC)
	}
	// Base 2 cycles + 1 taken + 1 page-cross = 4 total; 1 already consumed.
	if c.WaitCycles != 3 {
		t.Errorf("WaitCycles = %d, want 3", c.WaitCycles)
	}
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x20 // JSR $9000
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x90
	bus.mem[0x9000] = 0x60 // RTS
	if err := runTicks(c, bus, 6); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x9000 {
		t.Errorf("PC after JSR = %#04x, want 0x9000", c.PC)
	}
	if err := runTicks(c, bus, 6); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x8003 {
		t.Errorf("PC after RTS = %#04x, want 0x8003", c.PC)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x6C // JMP ($80FF)
	bus.mem[0x8001] = 0xFF
	bus.mem[0x8002] = 0x80
	bus.mem[0x80FF] = 0x00
	bus.mem[0x8100] = 0x12 // a non-wrapping fetch would wrongly read the high byte from here
	if err := runTicks(c, bus, 5); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x6C00 {
		t.Errorf("PC = %#04x, want 0x6c00 (high byte must be fetched from $8000, which holds the opcode $6C, not $8100)", c.PC)
	}
}

func TestBRKVectorsThroughFFFE(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0xFFFE] = 0x34
	bus.mem[0xFFFF] = 0x12
	bus.mem[0x8000] = 0x00 // BRK
	if err := runTicks(c, bus, 7); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x1234 {
		t.Errorf("PC after BRK = %#04x, want 0x1234 (IRQ/BRK vector)", c.PC)
	}
}

func TestAssertNMIEntersAtInstructionBoundary(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0x90
	bus.mem[0x8000] = 0xEA // NOP
	c.AssertNMI()
	if err := runTicks(c, bus, 1); err != nil { // no instruction in flight after reset: NMI entry
		t.Fatal(err)
	}
	if err := runTicks(c, bus, 6); err != nil { // remaining six cycles of the seven-cycle sequence
		t.Fatal(err)
	}
	if c.PC != 0x9000 {
		t.Errorf("PC after NMI = %#04x, want 0x9000", c.PC)
	}
}

func TestOAMDMAStallsCPU(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x0200] = 0xAB
	c.DMAHalt = true
	c.NextDMAAddr = 0x0200
	if err := runTicks(c, bus, 255); err != nil {
		t.Fatal(err)
	}
	if !c.DMAHalt {
		t.Fatal("DMA ended too early")
	}
	if err := runTicks(c, bus, 1); err != nil {
		t.Fatal(err)
	}
	if c.DMAHalt {
		t.Error("DMA should end after 256 byte copies")
	}
}

func TestDecodeErrorOnIllegalOpcode(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x02 // unofficial/illegal opcode, not in the table
	err := c.Tick(bus)
	if err == nil {
		t.Fatal("expected a DecodeError")
	}
	if _, ok := err.(*DecodeError); !ok {
		t.Errorf("error type = %T, want *DecodeError", err)
	}
}

func TestStackPushPullRoundTrips(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	c.SP = 0x80
	if err := c.push(bus, 0x42); err != nil {
		t.Fatalf("push: %v", err)
	}
	if c.SP != 0x7F {
		t.Errorf("SP after push = %#02x, want 0x7F", c.SP)
	}
	if got := c.pull(bus); got != 0x42 {
		t.Errorf("pull = %#x, want 0x42", got)
	}
}

func TestStackUnderflowOnPushAtZero(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	c.SP = 0x00
	err := c.push(bus, 0x42)
	if err == nil {
		t.Fatal("expected a StackUnderflowError")
	}
	if _, ok := err.(*StackUnderflowError); !ok {
		t.Errorf("error type = %T, want *StackUnderflowError", err)
	}
	if c.SP != 0x00 {
		t.Errorf("SP after rejected push = %#02x, want unchanged 0x00", c.SP)
	}
}

func TestJSRPropagatesStackUnderflow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.mem[0x8000] = 0x20 // JSR
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x90
	c.SP = 0x00
	if err := c.Tick(bus); err == nil {
		t.Fatal("expected JSR to propagate a StackUnderflowError")
	}
}
