// main.go - vectrexmon: a raw-mode terminal monitor over the emulation
// core. Single-keystroke stepping with per-instruction trace lines,
// conditional breakpoints, and register/memory inspection.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/intuitionamiga/vectrexcore/core"
)

type breakpoint struct {
	addr uint16
	cond *Condition
	hits int
}

type monitor struct {
	emu         *core.Emulator
	tracer      *core.Tracer
	breakpoints []*breakpoint
	tracing     bool
}

func main() {
	biosPath := flag.String("bios", "bios.bin", "path to the 8 KiB BIOS ROM image")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [cartridge.bin]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	emu := core.NewEmulator(core.PolicyLogOnce)
	biosImage, err := os.ReadFile(*biosPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read BIOS: %v\n", err)
		os.Exit(1)
	}
	if err := emu.Init(biosImage); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if cartPath := flag.Arg(0); cartPath != "" {
		cartImage, err := os.ReadFile(cartPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read cartridge: %v\n", err)
			os.Exit(1)
		}
		if err := emu.LoadCartridge(cartImage); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load cartridge: %v\n", err)
			os.Exit(1)
		}
	}
	emu.Reset()

	m := &monitor{emu: emu, tracer: core.NewTracer(emu)}
	if err := m.run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run drives the raw-mode key loop. Commands that need an argument line
// (breakpoints, memory dumps) temporarily restore the terminal.
func (m *monitor) run() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("vectrexmon needs an interactive terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	m.printRegisters()
	m.printHelp()

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return nil
		}
		switch buf[0] {
		case 's', ' ':
			m.step()
		case 'c':
			m.continueRun()
		case 'r':
			m.printRegisters()
		case 'b':
			m.withCookedTerminal(fd, oldState, m.addBreakpoint)
		case 'l':
			m.listBreakpoints()
		case 'x':
			m.clearBreakpoints()
		case 'm':
			m.withCookedTerminal(fd, oldState, m.dumpMemory)
		case 't':
			m.tracing = !m.tracing
			fmt.Printf("trace %v\r\n", m.tracing)
		case 'h', '?':
			m.printHelp()
		case 'q', 3: // 3 = Ctrl-C in raw mode
			return nil
		}
	}
}

// withCookedTerminal restores normal line editing for fn, then returns to
// raw mode.
func (m *monitor) withCookedTerminal(fd int, oldState *term.State, fn func(r *bufio.Reader)) {
	term.Restore(fd, oldState)
	fn(bufio.NewReader(os.Stdin))
	term.MakeRaw(fd)
}

func (m *monitor) step() {
	ti := m.tracer.Step()
	m.emu.Bus.AddSyncCycles(ti.Cycles)
	m.emu.Bus.Sync()
	m.printTrace(ti)
}

// continueRun steps until a breakpoint whose condition holds, or a safety
// bound of instructions elapses.
func (m *monitor) continueRun() {
	const maxInstructions = 2_000_000
	for i := 0; i < maxInstructions; i++ {
		ti := m.tracer.Step()
		m.emu.Bus.AddSyncCycles(ti.Cycles)
		m.emu.Bus.Sync()
		if m.tracing {
			m.printTrace(ti)
		}
		for _, bp := range m.breakpoints {
			if m.emu.CPU.Reg.PC == bp.addr && bp.cond.Eval(m.emu.CPU.Reg) {
				bp.hits++
				fmt.Printf("breakpoint at $%04X (hit %d)\r\n", bp.addr, bp.hits)
				m.printRegisters()
				return
			}
		}
	}
	fmt.Printf("stopped after %d instructions with no breakpoint hit\r\n", maxInstructions)
}

func (m *monitor) addBreakpoint(r *bufio.Reader) {
	fmt.Print("break <hex addr> [lua condition]: ")
	line, err := r.ReadString('\n')
	if err != nil {
		return
	}
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
	addr, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "$"), 16, 16)
	if err != nil {
		fmt.Printf("bad address %q\n", fields[0])
		return
	}
	var cond *Condition
	if len(fields) == 2 {
		cond, err = CompileCondition(fields[1], m.emu)
		if err != nil {
			fmt.Printf("%v\n", err)
			return
		}
	}
	m.breakpoints = append(m.breakpoints, &breakpoint{addr: uint16(addr), cond: cond})
	fmt.Printf("breakpoint %d set at $%04X when %s\n", len(m.breakpoints), addr, cond)
}

func (m *monitor) listBreakpoints() {
	if len(m.breakpoints) == 0 {
		fmt.Print("no breakpoints\r\n")
		return
	}
	for i, bp := range m.breakpoints {
		fmt.Printf("%d: $%04X when %s (%d hits)\r\n", i+1, bp.addr, bp.cond, bp.hits)
	}
}

func (m *monitor) clearBreakpoints() {
	for _, bp := range m.breakpoints {
		bp.cond.Close()
	}
	m.breakpoints = nil
	fmt.Print("breakpoints cleared\r\n")
}

func (m *monitor) dumpMemory(r *bufio.Reader) {
	fmt.Print("dump <hex addr>: ")
	line, err := r.ReadString('\n')
	if err != nil {
		return
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(line), "$"), 16, 16)
	if err != nil {
		fmt.Printf("bad address %q\n", line)
		return
	}
	for row := 0; row < 8; row++ {
		base := uint16(addr) + uint16(row*16)
		fmt.Printf("$%04X:", base)
		for col := 0; col < 16; col++ {
			fmt.Printf(" %02X", m.emu.Bus.ReadRaw(base+uint16(col)))
		}
		fmt.Println()
	}
}

func (m *monitor) printTrace(ti core.TraceInfo) {
	op := ti.Opcode
	fmt.Printf("$%04X  %-5s %-28s %2d cycles  hash %08X\r\n",
		ti.Before.PC, op.Mnemonic, op.Description(), ti.Cycles, core.HashTraceInfo(ti))
}

func (m *monitor) printRegisters() {
	r := m.emu.CPU.Reg
	fmt.Printf("A=%02X B=%02X X=%04X Y=%04X U=%04X S=%04X PC=%04X DP=%02X CC=%02X\r\n",
		r.A, r.B, r.X, r.Y, r.U, r.S, r.PC, r.DP, uint8(r.CC))
}

func (m *monitor) printHelp() {
	fmt.Print("s step  c continue  r registers  b breakpoint  l list  x clear  m memory  t trace  q quit\r\n")
}
