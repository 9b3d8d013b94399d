// errors_test.go - Tests for the error classification and policy reactions.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

import (
	"strings"
	"testing"
)

// TestKindStrings verifies the four classifications render by name.
func TestKindStrings(t *testing.T) {
	cases := map[ErrorKind]string{
		Unmapped:    "Unmapped",
		Undefined:   "Undefined",
		Illegal:     "Illegal",
		Unsupported: "Unsupported",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Errorf("kind %d = %q, expected %q", kind, kind.String(), want)
		}
	}
}

// TestFailPolicyPanicsWithEmuError verifies Fail aborts with the
// classified error value.
func TestFailPolicyPanicsWithEmuError(t *testing.T) {
	h := NewErrorHandler(PolicyFail)
	defer func() {
		r := recover()
		err, ok := r.(*EmuError)
		if !ok {
			t.Fatalf("recovered %v, expected *EmuError", r)
		}
		if err.Kind != Illegal || !strings.Contains(err.Error(), "opcode") {
			t.Fatalf("error = %v, expected Illegal opcode message", err)
		}
	}()
	h.Illegal("illegal opcode %#x", 0x01)
}

// TestIgnorePolicyContinues verifies Ignore swallows every report.
func TestIgnorePolicyContinues(t *testing.T) {
	h := NewErrorHandler(PolicyIgnore)
	h.Unmapped("unmapped address: $%04x", 0x1234)
	h.Undefined("write to ROM")
	h.Unsupported("mode")
}

// TestEmulatorLiveUnderIgnorePolicy verifies an emulator stepping through
// garbage stays live: illegal opcodes advance and unmapped-style accesses
// return conservative values.
func TestEmulatorLiveUnderIgnorePolicy(t *testing.T) {
	e := testEmulator(t, 0x01, 0x02, 0x05, 0x12)
	for i := 0; i < 4; i++ {
		if cycles := e.Step(); cycles < 1 {
			t.Fatalf("step %d returned %d cycles; livelock risk", i, cycles)
		}
	}
	if e.CPU.Reg.PC != testEntry+4 {
		t.Errorf("PC = $%04X, expected $%04X", e.CPU.Reg.PC, testEntry+4)
	}
}
