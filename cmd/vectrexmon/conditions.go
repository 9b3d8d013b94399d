// conditions.go - Lua breakpoint conditions: an expression evaluated
// against the CPU register snapshot and memory each time its breakpoint
// address is hit.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/intuitionamiga/vectrexcore/core"
)

// Condition is a compiled Lua expression. Registers are exposed as the
// globals A, B, D, X, Y, U, S, PC, DP and CC; peek(addr) reads memory
// without disturbing emulation state. An empty condition always holds.
type Condition struct {
	source string
	state  *lua.LState
	fn     *lua.LFunction
}

// CompileCondition parses source as a Lua expression. A nil Condition (from
// empty source) is valid and always true.
func CompileCondition(source string, emu *core.Emulator) (*Condition, error) {
	if source == "" {
		return nil, nil
	}
	state := lua.NewState(lua.Options{SkipOpenLibs: true})

	state.SetGlobal("peek", state.NewFunction(func(l *lua.LState) int {
		addr := uint16(l.CheckInt(1))
		l.Push(lua.LNumber(emu.Bus.ReadRaw(addr)))
		return 1
	}))

	fn, err := state.LoadString("return (" + source + ")")
	if err != nil {
		state.Close()
		return nil, fmt.Errorf("bad condition %q: %w", source, err)
	}
	return &Condition{source: source, state: state, fn: fn}, nil
}

// Eval reports whether the condition holds for the given register snapshot.
// A condition that errors at runtime reports false rather than halting the
// emulation.
func (c *Condition) Eval(reg core.Registers) bool {
	if c == nil {
		return true
	}
	l := c.state
	l.SetGlobal("A", lua.LNumber(reg.A))
	l.SetGlobal("B", lua.LNumber(reg.B))
	l.SetGlobal("D", lua.LNumber(reg.D()))
	l.SetGlobal("X", lua.LNumber(reg.X))
	l.SetGlobal("Y", lua.LNumber(reg.Y))
	l.SetGlobal("U", lua.LNumber(reg.U))
	l.SetGlobal("S", lua.LNumber(reg.S))
	l.SetGlobal("PC", lua.LNumber(reg.PC))
	l.SetGlobal("DP", lua.LNumber(reg.DP))
	l.SetGlobal("CC", lua.LNumber(uint8(reg.CC)))

	l.Push(c.fn)
	if err := l.PCall(0, 1, nil); err != nil {
		return false
	}
	result := l.Get(-1)
	l.Pop(1)
	return lua.LVAsBool(result)
}

// Close releases the condition's Lua state.
func (c *Condition) Close() {
	if c != nil {
		c.state.Close()
	}
}

func (c *Condition) String() string {
	if c == nil {
		return "<always>"
	}
	return c.source
}
