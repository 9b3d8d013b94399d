// trace.go - per-instruction trace records and their deterministic hash, the
// contract the debugger and golden-trace regression tooling consume.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

import (
	"encoding/binary"
	"hash/crc32"
)

const (
	maxTraceBytes    = 5
	maxTraceAccesses = 16
)

// MemAccessKind distinguishes a recorded bus access direction.
type MemAccessKind uint8

const (
	MemRead MemAccessKind = iota
	MemWrite
)

// MemAccess is one recorded bus read or write.
type MemAccess struct {
	Addr  uint16
	Value uint8
	Kind  MemAccessKind
}

// TraceInfo is the snapshot of one executed instruction: the decoded opcode
// entry, page number, the instruction's raw bytes, pre- and post-execution
// register files, elapsed cycles, and every bus access observed during the
// step, each field truncated to the bound the field itself documents.
type TraceInfo struct {
	Page   int
	Opcode OpcodeEntry

	Bytes     [maxTraceBytes]uint8
	ByteCount int

	Before Registers
	After  Registers

	Cycles int

	Accesses    [maxTraceAccesses]MemAccess
	AccessCount int
}

// Tracer brackets Emulator.Step with a Bus read/write observer pair,
// assembling one TraceInfo per instruction. Installing a Tracer replaces
// whatever observers were previously registered on the bus; only one Tracer
// should be active on a given Bus at a time.
type Tracer struct {
	emu *Emulator
	cur TraceInfo
}

// NewTracer builds a Tracer over emu, installing its bus observers
// immediately.
func NewTracer(emu *Emulator) *Tracer {
	t := &Tracer{emu: emu}
	emu.Bus.RegisterObservers(t.onRead, t.onWrite)
	return t
}

// Detach clears this Tracer's observers from the bus.
func (t *Tracer) Detach() {
	t.emu.Bus.RegisterObservers(nil, nil)
}

func (t *Tracer) onRead(addr uint16, value uint8) {
	t.record(addr, value, MemRead)
}

func (t *Tracer) onWrite(addr uint16, value uint8) {
	t.record(addr, value, MemWrite)
}

func (t *Tracer) record(addr uint16, value uint8, kind MemAccessKind) {
	if t.cur.AccessCount >= maxTraceAccesses {
		return
	}
	t.cur.Accesses[t.cur.AccessCount] = MemAccess{Addr: addr, Value: value, Kind: kind}
	t.cur.AccessCount++
}

// Step executes one instruction through the emulator's CPU and returns its
// TraceInfo. The instruction's raw bytes are read back (without disturbing
// machine state, via Bus.ReadRaw) from the pre-step PC; pages and
// multi-byte operands beyond maxTraceBytes are simply truncated, matching
// the "up to 5" bound on the trace record.
func (t *Tracer) Step() TraceInfo {
	before := t.emu.CPU.Reg
	page, opcode := t.decodeAt(before.PC)

	t.cur = TraceInfo{Page: page, Opcode: lookupOpcode(page, opcode), Before: before}
	for i := 0; i < maxTraceBytes; i++ {
		t.cur.Bytes[i] = t.emu.Bus.ReadRaw(before.PC + uint16(i))
	}
	t.cur.ByteCount = maxTraceBytes

	t.cur.Cycles = t.emu.CPU.ExecuteInstruction()
	t.cur.After = t.emu.CPU.Reg
	return t.cur
}

// decodeAt peeks the page prefix and opcode byte at addr without advancing
// PC, so Step can pre-populate Page/Opcode before executing.
func (t *Tracer) decodeAt(addr uint16) (page int, opcode uint8) {
	b := t.emu.Bus.ReadRaw(addr)
	switch b {
	case 0x10:
		return 1, t.emu.Bus.ReadRaw(addr + 1)
	case 0x11:
		return 2, t.emu.Bus.ReadRaw(addr + 1)
	default:
		return 0, b
	}
}

// HashTraceInfo computes a CRC-32C (Castagnoli) hash of ti's fields in the
// documented order: opcode entry, page, raw bytes, pre/post register
// snapshots, elapsed cycles, memory accesses. Two TraceInfo values built
// from identical initial state and input sequence hash identically.
func HashTraceInfo(ti TraceInfo) uint32 {
	buf := make([]byte, 0, 128)

	buf = append(buf, []byte(ti.Opcode.Mnemonic)...)
	buf = append(buf, byte(ti.Opcode.Mode), byte(ti.Opcode.Cycles))
	buf = append(buf, byte(ti.Page))
	buf = append(buf, ti.Bytes[:ti.ByteCount]...)
	buf = appendRegisters(buf, ti.Before)
	buf = appendRegisters(buf, ti.After)
	buf = binary.BigEndian.AppendUint32(buf, uint32(ti.Cycles))
	for i := 0; i < ti.AccessCount; i++ {
		a := ti.Accesses[i]
		buf = binary.BigEndian.AppendUint16(buf, a.Addr)
		buf = append(buf, a.Value, byte(a.Kind))
	}

	return crc32.Checksum(buf, crc32.MakeTable(crc32.Castagnoli))
}

func appendRegisters(buf []byte, r Registers) []byte {
	buf = append(buf, r.A, r.B)
	buf = binary.BigEndian.AppendUint16(buf, r.X)
	buf = binary.BigEndian.AppendUint16(buf, r.Y)
	buf = binary.BigEndian.AppendUint16(buf, r.U)
	buf = binary.BigEndian.AppendUint16(buf, r.S)
	buf = binary.BigEndian.AppendUint16(buf, r.PC)
	buf = append(buf, r.DP, byte(r.CC))
	return buf
}
