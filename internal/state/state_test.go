package state

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/benjaminmordaunt/fancy-nes/internal/cartridge"
	"github.com/benjaminmordaunt/fancy-nes/internal/core"
)

// buildROM assembles a minimal 32KiB NROM iNES image with prg placed at
// $8000 and the reset vector at the top of the bank.
func buildROM(t *testing.T, prg []uint8, resetVector uint16) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := []byte{'N', 'E', 'S', 0x1A, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	buf.Write(header)

	prgROM := make([]byte, 32768)
	copy(prgROM, prg)
	binary.LittleEndian.PutUint16(prgROM[32768-6:], 0xABCD) // NMI
	binary.LittleEndian.PutUint16(prgROM[32768-4:], resetVector)
	binary.LittleEndian.PutUint16(prgROM[32768-2:], 0x5678) // IRQ
	buf.Write(prgROM)

	buf.Write(make([]byte, 8192)) // CHR ROM, all zero
	return buf.Bytes()
}

func newTestCore(t *testing.T) *core.Core {
	t.Helper()
	prg := []uint8{0xA9, 0x7F, 0x8D, 0x00, 0x06} // LDA #$7F; STA $0600
	rom := buildROM(t, prg, 0x8000)
	cart, err := cartridge.LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	c := core.New(0, cartridge.MirrorHorizontal)
	if err := c.LoadCartridge(cart); err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	return c
}

func TestSaveLoadRoundTripsCPUState(t *testing.T) {
	c := newTestCore(t)
	for i := 0; i < 4; i++ {
		if err := c.StepTick(); err != nil {
			t.Fatalf("StepTick: %v", err)
		}
	}

	wantA, wantPC := c.CPU.A, c.CPU.PC

	m := NewManager(t.TempDir())
	romPath := "test.nes"
	if err := m.Save(c, 0, romPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !m.HasSave(0, romPath) {
		t.Fatalf("HasSave: expected true after Save")
	}

	// Diverge the running core, then restore and check it reverts.
	for i := 0; i < 4; i++ {
		c.StepTick()
	}

	if err := m.Load(c, 0, romPath); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.CPU.A != wantA {
		t.Errorf("A after Load = %#02x, want %#02x", c.CPU.A, wantA)
	}
	if c.CPU.PC != wantPC {
		t.Errorf("PC after Load = %#04x, want %#04x", c.CPU.PC, wantPC)
	}
}

func TestSaveLoadRoundTripsAPUFrameCounterState(t *testing.T) {
	c := newTestCore(t)
	c.APU.WriteRegister(0x4017, 0xC0) // 5-step mode, IRQ inhibit set

	m := NewManager(t.TempDir())
	romPath := "test.nes"
	if err := m.Save(c, 0, romPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Diverge, then restore and check the frame counter bits revert.
	c.APU.WriteRegister(0x4017, 0x00)
	if c.APU.FrameCounterMode() != 0 || c.APU.FrameIRQInhibit() {
		t.Fatal("test setup: expected divergent APU state before Load")
	}

	if err := m.Load(c, 0, romPath); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.APU.FrameCounterMode() != 1 {
		t.Errorf("FrameCounterMode after Load = %d, want 1", c.APU.FrameCounterMode())
	}
	if !c.APU.FrameIRQInhibit() {
		t.Error("FrameIRQInhibit after Load = false, want true")
	}
}

func TestLoadRejectsMismatchedROM(t *testing.T) {
	c := newTestCore(t)
	m := NewManager(t.TempDir())
	if err := m.Save(c, 0, "game-a.nes"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Load(c, 0, "game-b.nes"); err == nil {
		t.Fatal("Load: expected error for mismatched ROM path, got nil")
	}
}

func TestSaveRejectsOutOfRangeSlot(t *testing.T) {
	c := newTestCore(t)
	m := NewManager(t.TempDir())
	if err := m.Save(c, 99, "game.nes"); err == nil {
		t.Fatal("Save: expected error for out-of-range slot, got nil")
	}
}

func TestSlotPathUsesROMBasename(t *testing.T) {
	m := NewManager(t.TempDir())
	got := m.slotPath(2, "/roms/sub/mario.nes")
	want := filepath.Join(m.saveDirectory, "mario_slot_2.save")
	if got != want {
		t.Errorf("slotPath = %q, want %q", got, want)
	}
}
