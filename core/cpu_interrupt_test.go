// cpu_interrupt_test.go - Tests for interrupt dispatch: stack frame shapes,
// mask behavior, priorities, and the CWAI/SYNC halt states.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

import "testing"

// lineState is a settable stand-in for the VIA's IRQ/FIRQ lines.
type lineState struct{ asserted bool }

func (l *lineState) line() func() bool { return func() bool { return l.asserted } }

// interruptEmulator builds a test emulator whose CPU polls controllable
// IRQ/FIRQ lines instead of the VIA's.
func interruptEmulator(t *testing.T, program ...byte) (*Emulator, *lineState, *lineState) {
	t.Helper()
	e := testEmulator(t, program...)
	irq := &lineState{}
	firq := &lineState{}
	cpu := NewCPU(e.Errs, e.Bus, irq.line(), firq.line())
	cpu.Reg = e.CPU.Reg
	e.CPU = cpu
	return e, irq, firq
}

// TestIRQFullFrame verifies IRQ pushes the entire machine state with
// Entire set, masks IRQ only, and jumps through $FFF8.
func TestIRQFullFrame(t *testing.T) {
	e, irq, _ := interruptEmulator(t, 0x12) // NOP
	e.CPU.Reg.CC = 0                        // unmask
	e.CPU.Reg.A = 0xAA
	e.CPU.Reg.B = 0xBB
	e.CPU.Reg.DP = 0xDD
	e.CPU.Reg.X = 0x1111
	e.CPU.Reg.Y = 0x2222
	e.CPU.Reg.U = 0x3333
	s0 := e.CPU.Reg.S
	irq.asserted = true

	cycles := e.CPU.ExecuteInstruction()

	if cycles != 19 {
		t.Errorf("IRQ service cost %d cycles, expected 19", cycles)
	}
	if e.CPU.Reg.PC != testIRQTarget {
		t.Fatalf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testIRQTarget)
	}
	if e.CPU.Reg.S != s0-12 {
		t.Fatalf("S moved %d bytes, expected 12", int(s0)-int(e.CPU.Reg.S))
	}
	checkFlag(t, e.CPU.Reg.CC, ccIRQMask, "InterruptMask", true)
	checkFlag(t, e.CPU.Reg.CC, ccFIRQMask, "FastInterruptMask", false)

	// Stacked CC is the bottom byte of the frame and must carry Entire.
	stackedCC := CC(e.Bus.Read(e.CPU.Reg.S))
	checkFlag(t, stackedCC, ccEntire, "Entire", true)
	if a := e.Bus.Read(e.CPU.Reg.S + 1); a != 0xAA {
		t.Errorf("stacked A = $%02X, expected $AA", a)
	}
	if pc := e.Bus.Read16(e.CPU.Reg.S + 10); pc != testEntry {
		t.Errorf("stacked PC = $%04X, expected $%04X", pc, testEntry)
	}
}

// TestFIRQShortFrame verifies FIRQ pushes only PC and CC with Entire clear
// and masks both interrupt lines.
func TestFIRQShortFrame(t *testing.T) {
	e, _, firq := interruptEmulator(t, 0x12)
	e.CPU.Reg.CC = 0
	s0 := e.CPU.Reg.S
	firq.asserted = true

	cycles := e.CPU.ExecuteInstruction()

	if cycles != 10 {
		t.Errorf("FIRQ service cost %d cycles, expected 10", cycles)
	}
	if e.CPU.Reg.PC != testFIRQTarget {
		t.Fatalf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testFIRQTarget)
	}
	if e.CPU.Reg.S != s0-3 {
		t.Fatalf("S moved %d bytes, expected 3", int(s0)-int(e.CPU.Reg.S))
	}
	stackedCC := CC(e.Bus.Read(e.CPU.Reg.S))
	checkFlag(t, stackedCC, ccEntire, "Entire", false)
	checkFlag(t, e.CPU.Reg.CC, ccIRQMask, "InterruptMask", true)
	checkFlag(t, e.CPU.Reg.CC, ccFIRQMask, "FastInterruptMask", true)
}

// TestMaskedInterruptIgnored verifies a masked IRQ executes the next
// instruction instead of being serviced.
func TestMaskedInterruptIgnored(t *testing.T) {
	e, irq, _ := interruptEmulator(t, 0x12)
	e.CPU.Reg.CC = ccIRQMask
	irq.asserted = true

	e.CPU.ExecuteInstruction()

	if e.CPU.Reg.PC != testEntry+1 {
		t.Errorf("PC = $%04X, expected NOP at $%04X to have executed", e.CPU.Reg.PC, testEntry+1)
	}
}

// TestFIRQPriorityOverIRQ verifies FIRQ wins when both lines are asserted.
func TestFIRQPriorityOverIRQ(t *testing.T) {
	e, irq, firq := interruptEmulator(t, 0x12)
	e.CPU.Reg.CC = 0
	irq.asserted = true
	firq.asserted = true

	e.CPU.ExecuteInstruction()

	if e.CPU.Reg.PC != testFIRQTarget {
		t.Errorf("PC = $%04X, expected FIRQ target $%04X", e.CPU.Reg.PC, testFIRQTarget)
	}
}

// TestNMIEdgeSensitive verifies NMI fires once per RaiseNMI regardless of
// the mask bits.
func TestNMIEdgeSensitive(t *testing.T) {
	e, _, _ := interruptEmulator(t, 0x12, 0x12)
	e.CPU.Reg.CC = ccIRQMask | ccFIRQMask
	e.CPU.RaiseNMI()

	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.PC != testNMITarget {
		t.Fatalf("PC = $%04X, expected NMI target $%04X", e.CPU.Reg.PC, testNMITarget)
	}

	// Plant a NOP at the NMI handler; the next step must execute it, not
	// re-service the NMI.
	loadProgram(e, testNMITarget, 0x12)
	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.PC != testNMITarget+1 {
		t.Errorf("PC = $%04X, NMI serviced twice", e.CPU.Reg.PC)
	}
}

// TestSWIFamilyVectors verifies SWI masks both interrupts while SWI2/SWI3
// leave the masks alone, each through its own vector.
func TestSWIFamilyVectors(t *testing.T) {
	t.Run("SWI", func(t *testing.T) {
		e := testEmulator(t, 0x3F)
		e.CPU.Reg.CC = 0
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.PC != testSWITarget {
			t.Fatalf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testSWITarget)
		}
		checkFlag(t, e.CPU.Reg.CC, ccIRQMask, "InterruptMask", true)
		checkFlag(t, e.CPU.Reg.CC, ccFIRQMask, "FastInterruptMask", true)
		stackedCC := CC(e.Bus.Read(e.CPU.Reg.S))
		checkFlag(t, stackedCC, ccEntire, "Entire", true)
	})

	t.Run("SWI2", func(t *testing.T) {
		e := testEmulator(t, 0x10, 0x3F)
		e.CPU.Reg.CC = 0
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.PC != testSWI2Target {
			t.Fatalf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testSWI2Target)
		}
		checkFlag(t, e.CPU.Reg.CC, ccIRQMask, "InterruptMask", false)
	})

	t.Run("SWI3", func(t *testing.T) {
		e := testEmulator(t, 0x11, 0x3F)
		e.CPU.Reg.CC = 0
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.PC != testSWI3Target {
			t.Fatalf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testSWI3Target)
		}
	})
}

// TestRTIRestoresFullFrame verifies RTI after an IRQ returns to the
// interrupted instruction with every register intact.
func TestRTIRestoresFullFrame(t *testing.T) {
	e, irq, _ := interruptEmulator(t, 0x12)
	e.CPU.Reg.CC = 0
	e.CPU.Reg.A = 0x5E
	e.CPU.Reg.X = 0xBEEF
	irq.asserted = true
	e.CPU.ExecuteInstruction()
	irq.asserted = false

	loadProgram(e, testIRQTarget, 0x3B) // RTI
	e.CPU.Reg.A = 0
	e.CPU.Reg.X = 0
	e.CPU.ExecuteInstruction()

	if e.CPU.Reg.PC != testEntry {
		t.Errorf("PC = $%04X after RTI, expected $%04X", e.CPU.Reg.PC, testEntry)
	}
	if e.CPU.Reg.A != 0x5E || e.CPU.Reg.X != 0xBEEF {
		t.Errorf("A=%02X X=%04X after RTI, expected A=5E X=BEEF", e.CPU.Reg.A, e.CPU.Reg.X)
	}
}

// TestCWAIStacksThenWaits verifies CWAI ANDs CC, pre-stacks the full frame,
// and services a later IRQ without re-stacking.
func TestCWAIStacksThenWaits(t *testing.T) {
	e, irq, _ := interruptEmulator(t, 0x3C, 0xEF) // CWAI #$EF clears IRQ mask
	e.CPU.Reg.CC = ccIRQMask
	s0 := e.CPU.Reg.S

	e.CPU.ExecuteInstruction()
	if !e.CPU.Halted {
		t.Fatal("CPU not halted after CWAI")
	}
	if e.CPU.Reg.S != s0-12 {
		t.Fatalf("S moved %d bytes after CWAI, expected 12", int(s0)-int(e.CPU.Reg.S))
	}

	// Idle step while nothing is pending.
	if cycles := e.CPU.ExecuteInstruction(); cycles != 1 {
		t.Errorf("halted idle step cost %d cycles, expected 1", cycles)
	}

	irq.asserted = true
	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.PC != testIRQTarget {
		t.Fatalf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testIRQTarget)
	}
	// The frame was stacked by CWAI itself; dispatch must not push again.
	if e.CPU.Reg.S != s0-12 {
		t.Errorf("S moved %d bytes total, expected 12", int(s0)-int(e.CPU.Reg.S))
	}
}

// TestSYNCWakesWithoutStacking verifies SYNC halts until a line is
// asserted, then dispatches through the normal masked path.
func TestSYNCWakesWithoutStacking(t *testing.T) {
	e, irq, _ := interruptEmulator(t, 0x13, 0x12) // SYNC; NOP
	e.CPU.Reg.CC = ccIRQMask                      // masked: wake but don't service

	e.CPU.ExecuteInstruction()
	if !e.CPU.Halted {
		t.Fatal("CPU not halted after SYNC")
	}

	irq.asserted = true
	e.CPU.ExecuteInstruction()
	// Masked: SYNC falls through to the next instruction.
	if e.CPU.Reg.PC != testEntry+2 {
		t.Errorf("PC = $%04X, expected NOP after SYNC to have executed", e.CPU.Reg.PC)
	}
}
