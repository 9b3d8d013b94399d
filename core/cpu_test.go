// cpu_test.go - Tests for the MC68A09: reset, instruction semantics,
// condition-code flags, stack round trips, and interrupt dispatch.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

import "testing"

// TestResetVector verifies reset loads PC from $FFFE big-endian and sets
// both interrupt masks.
func TestResetVector(t *testing.T) {
	e := NewEmulator(PolicyIgnore)
	bios := make([]byte, BIOSSize)
	bios[0x1FFE] = 0xF0
	bios[0x1FFF] = 0x00
	if err := e.Init(bios); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	e.Reset()

	if e.CPU.Reg.PC != 0xF000 {
		t.Fatalf("PC = $%04X after reset, expected $F000", e.CPU.Reg.PC)
	}
	checkFlag(t, e.CPU.Reg.CC, ccIRQMask, "InterruptMask", true)
	checkFlag(t, e.CPU.Reg.CC, ccFIRQMask, "FastInterruptMask", true)
	if d := e.CPU.Reg.D(); d != 0 {
		t.Errorf("D = $%04X after reset, expected 0", d)
	}
}

// TestLDAImmediate verifies the basic fetch/decode/execute contract: LDA
// #$42 loads A, advances PC by 2, and costs 2 cycles.
func TestLDAImmediate(t *testing.T) {
	e := testEmulator(t, 0x86, 0x42)

	cycles := e.CPU.ExecuteInstruction()

	if e.CPU.Reg.A != 0x42 {
		t.Errorf("A = $%02X, expected $42", e.CPU.Reg.A)
	}
	if e.CPU.Reg.PC != testEntry+2 {
		t.Errorf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testEntry+2)
	}
	if cycles != 2 {
		t.Errorf("elapsed %d cycles, expected 2", cycles)
	}
	checkFlag(t, e.CPU.Reg.CC, ccNegative, "Negative", false)
	checkFlag(t, e.CPU.Reg.CC, ccZero, "Zero", false)
}

// TestADDAOverflow verifies the signed-overflow and half-carry flags on
// $7F + 1.
func TestADDAOverflow(t *testing.T) {
	e := testEmulator(t, 0x8B, 0x01)
	e.CPU.Reg.A = 0x7F

	e.CPU.ExecuteInstruction()

	if e.CPU.Reg.A != 0x80 {
		t.Errorf("A = $%02X, expected $80", e.CPU.Reg.A)
	}
	checkFlag(t, e.CPU.Reg.CC, ccNegative, "Negative", true)
	checkFlag(t, e.CPU.Reg.CC, ccOverflow, "Overflow", true)
	checkFlag(t, e.CPU.Reg.CC, ccCarry, "Carry", false)
	checkFlag(t, e.CPU.Reg.CC, ccHalfCarry, "HalfCarry", true)
}

// TestBSRRTSRoundTrip verifies BSR pushes the return address big-endian and
// RTS restores PC and S.
func TestBSRRTSRoundTrip(t *testing.T) {
	e := testEmulator(t, 0x8D, 0x02, 0x12, 0x12, 0x39) // BSR +2; NOP; NOP; RTS
	s0 := e.CPU.Reg.S

	e.CPU.ExecuteInstruction()

	if e.CPU.Reg.PC != testEntry+4 {
		t.Fatalf("BSR target PC = $%04X, expected $%04X", e.CPU.Reg.PC, testEntry+4)
	}
	if e.CPU.Reg.S != s0-2 {
		t.Fatalf("S = $%04X after BSR, expected $%04X", e.CPU.Reg.S, s0-2)
	}
	ret := e.Bus.Read16(e.CPU.Reg.S)
	if ret != testEntry+2 {
		t.Fatalf("pushed return address $%04X, expected $%04X", ret, testEntry+2)
	}

	e.CPU.ExecuteInstruction() // RTS

	if e.CPU.Reg.PC != testEntry+2 {
		t.Errorf("PC = $%04X after RTS, expected $%04X", e.CPU.Reg.PC, testEntry+2)
	}
	if e.CPU.Reg.S != s0 {
		t.Errorf("S = $%04X after RTS, expected $%04X", e.CPU.Reg.S, s0)
	}
}

// TestPSHSPULSRoundTrip verifies every register-subset mask round-trips
// through the hardware stack with zero net stack movement.
func TestPSHSPULSRoundTrip(t *testing.T) {
	for mask := 1; mask < 0x80; mask++ { // PC in the mask would redirect flow
		e := testEmulator(t, 0x34, uint8(mask), 0x35, uint8(mask))
		e.CPU.Reg.A = 0x12
		e.CPU.Reg.B = 0x34
		e.CPU.Reg.DP = 0x56
		e.CPU.Reg.X = 0x789A
		e.CPU.Reg.Y = 0xBCDE
		e.CPU.Reg.U = 0x1357
		e.CPU.Reg.CC = ccCarry | ccZero
		before := e.CPU.Reg
		s0 := e.CPU.Reg.S

		e.CPU.ExecuteInstruction() // PSHS
		e.CPU.ExecuteInstruction() // PULS

		after := e.CPU.Reg
		if after.S != s0 {
			t.Fatalf("mask %02X: net stack movement %d", mask, int(after.S)-int(s0))
		}
		before.PC, after.PC = 0, 0
		if before != after {
			t.Fatalf("mask %02X: registers %+v, expected %+v", mask, after, before)
		}
	}
}

// referenceAdd computes the expected N, Z, V, C, H flags for a+b+carry the
// way the 6809 datasheet defines them.
func referenceAdd(a, b uint8, carry bool) (result uint8, n, z, v, c, h bool) {
	cin := uint16(0)
	if carry {
		cin = 1
	}
	sum := uint16(a) + uint16(b) + cin
	result = uint8(sum)
	n = result&0x80 != 0
	z = result == 0
	c = sum > 0xFF
	v = (a&0x80 == b&0x80) && (result&0x80 != a&0x80)
	h = (a&0xF)+(b&0xF)+uint8(cin) > 0xF
	return
}

// TestADCAFlagsAgainstReference sweeps (A, operand, carry) tuples and
// checks all five arithmetic flags against an independent reference.
func TestADCAFlagsAgainstReference(t *testing.T) {
	e := testEmulator(t)
	for a := 0; a < 256; a += 5 {
		for b := 0; b < 256; b += 7 {
			for _, carry := range []bool{false, true} {
				loadProgram(e, testEntry, 0x89, uint8(b)) // ADCA #b
				e.CPU.Reg.PC = testEntry
				e.CPU.Reg.A = uint8(a)
				e.CPU.Reg.CC.set(ccCarry, carry)

				e.CPU.ExecuteInstruction()

				result, n, z, v, c, h := referenceAdd(uint8(a), uint8(b), carry)
				if e.CPU.Reg.A != result {
					t.Fatalf("ADCA %02X+%02X carry=%v: A=%02X, expected %02X", a, b, carry, e.CPU.Reg.A, result)
				}
				cc := e.CPU.Reg.CC
				if cc.has(ccNegative) != n || cc.has(ccZero) != z || cc.has(ccOverflow) != v ||
					cc.has(ccCarry) != c || cc.has(ccHalfCarry) != h {
					t.Fatalf("ADCA %02X+%02X carry=%v: CC=%02X, expected N=%v Z=%v V=%v C=%v H=%v",
						a, b, carry, uint8(cc), n, z, v, c, h)
				}
			}
		}
	}
}

// TestSUBBorrowFlags verifies the carry flag holds the borrow on SUBA and
// CMPA leaves the destination untouched.
func TestSUBBorrowFlags(t *testing.T) {
	cases := []struct {
		a, b       uint8
		c, n, z, v bool
	}{
		{0x10, 0x20, true, true, false, false},
		{0x20, 0x10, false, false, false, false},
		{0x42, 0x42, false, false, true, false},
		{0x80, 0x01, false, false, false, true},
	}
	for _, tc := range cases {
		e := testEmulator(t, 0x81, tc.b) // CMPA #b
		e.CPU.Reg.A = tc.a
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.A != tc.a {
			t.Errorf("CMPA %02X-%02X wrote A=%02X", tc.a, tc.b, e.CPU.Reg.A)
		}
		checkFlag(t, e.CPU.Reg.CC, ccCarry, "Carry", tc.c)
		checkFlag(t, e.CPU.Reg.CC, ccNegative, "Negative", tc.n)
		checkFlag(t, e.CPU.Reg.CC, ccZero, "Zero", tc.z)
		checkFlag(t, e.CPU.Reg.CC, ccOverflow, "Overflow", tc.v)
	}
}

// TestIndexedAddressingModes exercises the main postbyte variants through
// LDA indexed.
func TestIndexedAddressingModes(t *testing.T) {
	t.Run("auto-increment ,X+", func(t *testing.T) {
		e := testEmulator(t, 0xA6, 0x80) // LDA ,X+
		e.Bus.Write(0xC880, 0x5A)
		e.CPU.Reg.X = 0xC880
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.A != 0x5A {
			t.Errorf("A = $%02X, expected $5A", e.CPU.Reg.A)
		}
		if e.CPU.Reg.X != 0xC881 {
			t.Errorf("X = $%04X, expected $C881", e.CPU.Reg.X)
		}
	})

	t.Run("auto-decrement ,--Y", func(t *testing.T) {
		e := testEmulator(t, 0xA6, 0xA3) // LDA ,--Y
		e.Bus.Write(0xC880, 0x77)
		e.CPU.Reg.Y = 0xC882
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.A != 0x77 {
			t.Errorf("A = $%02X, expected $77", e.CPU.Reg.A)
		}
		if e.CPU.Reg.Y != 0xC880 {
			t.Errorf("Y = $%04X, expected $C880", e.CPU.Reg.Y)
		}
	})

	t.Run("5-bit constant offset", func(t *testing.T) {
		e := testEmulator(t, 0xA6, 0x1F) // LDA -1,X
		e.Bus.Write(0xC87F, 0x33)
		e.CPU.Reg.X = 0xC880
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.A != 0x33 {
			t.Errorf("A = $%02X, expected $33", e.CPU.Reg.A)
		}
	})

	t.Run("accumulator offset B,X", func(t *testing.T) {
		e := testEmulator(t, 0xA6, 0x85) // LDA B,X
		e.Bus.Write(0xC884, 0x44)
		e.CPU.Reg.X = 0xC880
		e.CPU.Reg.B = 0x04
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.A != 0x44 {
			t.Errorf("A = $%02X, expected $44", e.CPU.Reg.A)
		}
	})

	t.Run("extended indirect", func(t *testing.T) {
		e := testEmulator(t, 0xA6, 0x9F, 0xC8, 0x80) // LDA [$C880]
		e.Bus.Write(0xC880, 0xC8)
		e.Bus.Write(0xC881, 0x90)
		e.Bus.Write(0xC890, 0x66)
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.A != 0x66 {
			t.Errorf("A = $%02X, expected $66", e.CPU.Reg.A)
		}
	})

	t.Run("16-bit offset,R", func(t *testing.T) {
		e := testEmulator(t, 0xA6, 0x89, 0x00, 0x10) // LDA $10,X (16-bit)
		e.Bus.Write(0xC890, 0x99)
		e.CPU.Reg.X = 0xC880
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.A != 0x99 {
			t.Errorf("A = $%02X, expected $99", e.CPU.Reg.A)
		}
	})
}

// TestDirectPageAddressing verifies the DP register forms the effective
// address's high byte.
func TestDirectPageAddressing(t *testing.T) {
	e := testEmulator(t, 0x96, 0x80) // LDA <$80
	e.CPU.Reg.DP = 0xC8
	e.Bus.Write(0xC880, 0xAB)
	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.A != 0xAB {
		t.Errorf("A = $%02X, expected $AB", e.CPU.Reg.A)
	}
}

// TestEXGIllegalCombination verifies an 8/16-bit mismatch sets the
// destination to all-ones rather than silently succeeding.
func TestEXGIllegalCombination(t *testing.T) {
	e := testEmulator(t, 0x1E, 0x81) // EXG A,X: 8-bit source, 16-bit dest
	e.CPU.Reg.X = 0x1234
	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.X != 0xFFFF {
		t.Errorf("X = $%04X after illegal EXG, expected $FFFF", e.CPU.Reg.X)
	}
}

// TestEXGAndTFR verifies legal same-size exchanges and transfers.
func TestEXGAndTFR(t *testing.T) {
	e := testEmulator(t, 0x1E, 0x89, 0x1F, 0x12) // EXG A,B; TFR X,Y
	e.CPU.Reg.A = 0x11
	e.CPU.Reg.B = 0x22
	e.CPU.Reg.X = 0x3344

	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.A != 0x22 || e.CPU.Reg.B != 0x11 {
		t.Errorf("EXG A,B: A=%02X B=%02X, expected A=22 B=11", e.CPU.Reg.A, e.CPU.Reg.B)
	}

	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.Y != 0x3344 {
		t.Errorf("TFR X,Y: Y=%04X, expected 3344", e.CPU.Reg.Y)
	}
}

// TestBranchesTakenAndNot verifies conditional branch truth tests and that
// LBRN consumes its operand without ever branching.
func TestBranchesTakenAndNot(t *testing.T) {
	t.Run("BEQ taken", func(t *testing.T) {
		e := testEmulator(t, 0x27, 0x10)
		e.CPU.Reg.CC.set(ccZero, true)
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.PC != testEntry+2+0x10 {
			t.Errorf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testEntry+2+0x10)
		}
	})

	t.Run("BEQ not taken", func(t *testing.T) {
		e := testEmulator(t, 0x27, 0x10)
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.PC != testEntry+2 {
			t.Errorf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testEntry+2)
		}
	})

	t.Run("BRA backward", func(t *testing.T) {
		e := testEmulator(t, 0x20, 0xFE) // BRA self
		e.CPU.ExecuteInstruction()
		if e.CPU.Reg.PC != testEntry {
			t.Errorf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testEntry)
		}
	})

	t.Run("LBRN never branches", func(t *testing.T) {
		e := testEmulator(t, 0x10, 0x21, 0x01, 0x00)
		cycles := e.CPU.ExecuteInstruction()
		if e.CPU.Reg.PC != testEntry+4 {
			t.Errorf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testEntry+4)
		}
		if cycles == 0 {
			t.Error("LBRN consumed no cycles")
		}
	})
}

// TestIllegalOpcodeAdvances verifies an illegal opcode advances PC by one
// byte and costs one cycle, so the emulator cannot livelock.
func TestIllegalOpcodeAdvances(t *testing.T) {
	e := testEmulator(t, 0x01)
	cycles := e.CPU.ExecuteInstruction()
	if cycles != 1 {
		t.Errorf("illegal opcode cost %d cycles, expected 1", cycles)
	}
	if e.CPU.Reg.PC != testEntry+1 {
		t.Errorf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testEntry+1)
	}
}

// TestHCFLocksUntilReset verifies the undocumented jam opcodes halt the
// CPU in a state only reset clears.
func TestHCFLocksUntilReset(t *testing.T) {
	e := testEmulator(t, 0x14)
	e.CPU.ExecuteInstruction()
	if !e.CPU.Locked {
		t.Fatal("HCF did not lock the CPU")
	}

	pc := e.CPU.Reg.PC
	e.CPU.RaiseNMI()
	if cycles := e.CPU.ExecuteInstruction(); cycles != 1 || e.CPU.Reg.PC != pc {
		t.Fatal("locked CPU serviced an interrupt")
	}

	e.CPU.Reset()
	if e.CPU.Locked {
		t.Fatal("reset did not clear the lock")
	}
}

// TestDAA verifies BCD adjustment after an 8-bit add.
func TestDAA(t *testing.T) {
	// 0x19 + 0x28 = 0x41 binary, 47 BCD.
	e := testEmulator(t, 0x8B, 0x28, 0x19) // ADDA #$28; DAA
	e.CPU.Reg.A = 0x19
	e.CPU.ExecuteInstruction()
	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.A != 0x47 {
		t.Errorf("A = $%02X after DAA, expected $47", e.CPU.Reg.A)
	}
}

// TestMUL verifies the unsigned multiply result lands in D with the carry
// mirroring bit 7 of the low byte.
func TestMUL(t *testing.T) {
	e := testEmulator(t, 0x3D)
	e.CPU.Reg.A = 0x20
	e.CPU.Reg.B = 0x40
	e.CPU.ExecuteInstruction()
	if d := e.CPU.Reg.D(); d != 0x0800 {
		t.Errorf("D = $%04X, expected $0800", d)
	}
	checkFlag(t, e.CPU.Reg.CC, ccCarry, "Carry", false)
	checkFlag(t, e.CPU.Reg.CC, ccZero, "Zero", false)
}

// TestSEXAndABX verifies sign extension and the unsigned B-to-X add.
func TestSEXAndABX(t *testing.T) {
	e := testEmulator(t, 0x1D, 0x3A) // SEX; ABX
	e.CPU.Reg.B = 0x85
	e.CPU.Reg.X = 0x1000
	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.A != 0xFF {
		t.Errorf("A = $%02X after SEX, expected $FF", e.CPU.Reg.A)
	}
	e.CPU.ExecuteInstruction()
	if e.CPU.Reg.X != 0x1085 {
		t.Errorf("X = $%04X after ABX, expected $1085", e.CPU.Reg.X)
	}
}

// TestLEAFlagBehavior verifies LEAX touches Z while LEAS does not.
func TestLEAFlagBehavior(t *testing.T) {
	e := testEmulator(t, 0x30, 0x00, 0x32, 0x61) // LEAX ,X; LEAS 1,S... postbytes below
	// LEAX ,X with X = 0 must set Z.
	e.CPU.Reg.X = 0
	// Rewrite the postbytes to known forms: LEAX ,X = 0x84; LEAS 1,S = 0x61.
	loadProgram(e, testEntry, 0x30, 0x84, 0x32, 0x61)
	e.CPU.Reg.CC.set(ccZero, false)
	e.CPU.ExecuteInstruction()
	checkFlag(t, e.CPU.Reg.CC, ccZero, "Zero", true)

	e.CPU.Reg.CC.set(ccZero, false)
	e.CPU.ExecuteInstruction()
	checkFlag(t, e.CPU.Reg.CC, ccZero, "Zero", false)
}
