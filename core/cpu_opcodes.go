// cpu_opcodes.go - the three opcode-page tables and the Exec closures that
// implement each mnemonic's semantics.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

// execFunc implements one opcode's semantics against the already-resolved
// operand.
type execFunc func(c *CPU, op operand)

// OpcodeEntry is one opcode-table row: mnemonic, addressing mode, base
// cycle count, minimum instruction byte size (excluding any page prefix),
// and the semantic action. Pages 1 and 2 entries that are not defined are
// left as the zero value, whose Mode is ModeIllegal.
type OpcodeEntry struct {
	Mnemonic string
	Mode     AddrMode
	Cycles   int
	Size     int
	Exec     execFunc
}

// Description returns the human-readable operation summary shared by every
// addressing-mode variant of this entry's mnemonic.
func (e OpcodeEntry) Description() string {
	name := e.Mnemonic
	if d, ok := opcodeDescriptions[name]; ok {
		return d
	}
	// Accumulator-suffixed forms (NEGA, TSTB, ...) share the base entry.
	if len(name) > 1 {
		if d, ok := opcodeDescriptions[name[:len(name)-1]]; ok {
			return d
		}
	}
	return ""
}

var opcodeDescriptions = map[string]string{
	"ABX": "Add B to X", "ADC": "Add with carry", "ADD": "Add",
	"ADDD": "Add to D", "AND": "Logical AND", "ANDCC": "AND condition codes",
	"ASL": "Arithmetic shift left", "ASR": "Arithmetic shift right",
	"BCC": "Branch if carry clear", "BCS": "Branch if carry set",
	"BEQ": "Branch if equal", "BGE": "Branch if greater or equal",
	"BGT": "Branch if greater", "BHI": "Branch if higher",
	"BIT": "Bit test", "BLE": "Branch if less or equal",
	"BLS": "Branch if lower or same", "BLT": "Branch if less than",
	"BMI": "Branch if minus", "BNE": "Branch if not equal",
	"BPL": "Branch if plus", "BRA": "Branch always",
	"BRN": "Branch never", "BSR": "Branch to subroutine",
	"BVC": "Branch if overflow clear", "BVS": "Branch if overflow set",
	"CLR": "Clear", "CMP": "Compare", "CMPD": "Compare D",
	"CMPS": "Compare S", "CMPU": "Compare U", "CMPX": "Compare X",
	"CMPY": "Compare Y", "COM": "Complement", "CWAI": "Clear CC and wait",
	"DAA": "Decimal adjust A", "DEC": "Decrement", "EOR": "Exclusive OR",
	"EXG": "Exchange registers", "HCF": "Halt and catch fire",
	"INC": "Increment", "JMP": "Jump",
	"JSR": "Jump to subroutine", "LBCC": "Long branch if carry clear",
	"LBCS": "Long branch if carry set", "LBEQ": "Long branch if equal",
	"LBGE": "Long branch if greater or equal", "LBGT": "Long branch if greater",
	"LBHI": "Long branch if higher", "LBLE": "Long branch if less or equal",
	"LBLS": "Long branch if lower or same", "LBLT": "Long branch if less than",
	"LBMI": "Long branch if minus", "LBNE": "Long branch if not equal",
	"LBPL": "Long branch if plus", "LBRA": "Long branch always",
	"LBRN": "Long branch never", "LBSR": "Long branch to subroutine",
	"LBVC": "Long branch if overflow clear", "LBVS": "Long branch if overflow set",
	"LD": "Load", "LDD": "Load D", "LDS": "Load S", "LDU": "Load U",
	"LDX": "Load X", "LDY": "Load Y", "LEAS": "Load effective address into S",
	"LEAU": "Load effective address into U", "LEAX": "Load effective address into X",
	"LEAY": "Load effective address into Y", "LSR": "Logical shift right",
	"MUL": "Multiply A by B", "NEG": "Negate", "NOP": "No operation",
	"OR": "Logical OR", "ORCC": "OR condition codes",
	"PSHS": "Push onto hardware stack", "PSHU": "Push onto user stack",
	"PULS": "Pull from hardware stack", "PULU": "Pull from user stack",
	"ROL": "Rotate left", "ROR": "Rotate right",
	"RTI": "Return from interrupt", "RTS": "Return from subroutine",
	"SBC": "Subtract with borrow", "SEX": "Sign extend B into A",
	"ST": "Store", "STD": "Store D", "STS": "Store S", "STU": "Store U",
	"STX": "Store X", "STY": "Store Y", "SUB": "Subtract",
	"SUBD": "Subtract from D", "SWI": "Software interrupt",
	"SWI2": "Software interrupt 2", "SWI3": "Software interrupt 3",
	"SYNC": "Synchronize with interrupt", "TFR": "Transfer register",
	"TST": "Test",
}

// instrSize is the minimum instruction length for a mode, excluding any
// 0x10/0x11 page prefix; indexed instructions may consume further postbyte
// operand bytes at decode time.
func instrSize(mode AddrMode) int {
	switch mode {
	case ModeImmediate8, ModeDirect, ModeIndexed, ModeRelative8:
		return 2
	case ModeImmediate16, ModeExtended, ModeRelative16:
		return 3
	default:
		return 1
	}
}

var page0Table [256]OpcodeEntry
var page1Table [256]OpcodeEntry
var page2Table [256]OpcodeEntry

func lookupOpcode(page int, opcode uint8) OpcodeEntry {
	switch page {
	case 1:
		return page1Table[opcode]
	case 2:
		return page2Table[opcode]
	default:
		return page0Table[opcode]
	}
}

func set(table *[256]OpcodeEntry, opcode uint8, mnemonic string, mode AddrMode, cycles int, exec execFunc) {
	table[opcode] = OpcodeEntry{Mnemonic: mnemonic, Mode: mode, Cycles: cycles, Size: instrSize(mode), Exec: exec}
}

// --- operand access helpers -------------------------------------------------

func (c *CPU) readOperand8(mode AddrMode, op operand) uint8 {
	if mode == ModeImmediate8 {
		return op.value8
	}
	return c.bus.Read(op.addr)
}

func (c *CPU) writeOperand8(op operand, v uint8) {
	c.bus.Write(op.addr, v)
}

func (c *CPU) readOperand16(mode AddrMode, op operand) uint16 {
	if mode == ModeImmediate16 {
		return op.value16
	}
	return c.bus.Read16(op.addr)
}

func (c *CPU) writeOperand16(op operand, v uint16) {
	c.bus.Write(op.addr, uint8(v>>8))
	c.bus.Write(op.addr+1, uint8(v))
}

// --- 8-bit load/store/arithmetic generators ---------------------------------

// regRef fetches a pointer to one of the CPU's own A/B accumulator fields,
// late-bound at call time so a single opcode-table entry works against
// whichever *CPU instance executes it.
type regRef func(c *CPU) *uint8

func accA(c *CPU) *uint8 { return &c.Reg.A }
func accB(c *CPU) *uint8 { return &c.Reg.B }

func mkLoad8(reg regRef, mode AddrMode) execFunc {
	return func(c *CPU, op operand) {
		v := c.readOperand8(mode, op)
		*reg(c) = v
		c.Reg.CC.set(ccOverflow, false)
		c.setNZ8(v)
	}
}

func mkStore8(reg regRef, mode AddrMode) execFunc {
	return func(c *CPU, op operand) {
		v := *reg(c)
		c.Reg.CC.set(ccOverflow, false)
		c.setNZ8(v)
		c.writeOperand8(op, v)
	}
}

type binOp8 func(c *CPU, a, b uint8) uint8

func mkBin8(reg regRef, mode AddrMode, op binOp8) execFunc {
	return func(c *CPU, operandVal operand) {
		v := c.readOperand8(mode, operandVal)
		p := reg(c)
		*p = op(c, *p, v)
	}
}

func mkCmp8(reg regRef, mode AddrMode) execFunc {
	return func(c *CPU, operandVal operand) {
		v := c.readOperand8(mode, operandVal)
		c.sub8(*reg(c), v, false)
	}
}

func mkBit8(reg regRef, mode AddrMode) execFunc {
	return func(c *CPU, operandVal operand) {
		v := c.readOperand8(mode, operandVal)
		c.and8(*reg(c), v)
	}
}

// --- 16-bit load/store/arithmetic generators --------------------------------

func mkLoad16Bound(set func(c *CPU, v uint16), mode AddrMode) execFunc {
	return func(c *CPU, op operand) {
		v := c.readOperand16(mode, op)
		set(c, v)
		c.Reg.CC.set(ccOverflow, false)
		c.setNZ16(v)
	}
}

func mkStore16Bound(get func(c *CPU) uint16, mode AddrMode) execFunc {
	return func(c *CPU, op operand) {
		v := get(c)
		c.Reg.CC.set(ccOverflow, false)
		c.setNZ16(v)
		c.writeOperand16(op, v)
	}
}

func mkCmp16Bound(get func(c *CPU) uint16, mode AddrMode) execFunc {
	return func(c *CPU, op operand) {
		v := c.readOperand16(mode, op)
		c.sub16(get(c), v)
	}
}

func mkAddD(mode AddrMode) execFunc {
	return func(c *CPU, op operand) {
		v := c.readOperand16(mode, op)
		c.Reg.SetD(c.add16(c.Reg.D(), v))
	}
}

func mkSubD(mode AddrMode) execFunc {
	return func(c *CPU, op operand) {
		v := c.readOperand16(mode, op)
		c.Reg.SetD(c.sub16(c.Reg.D(), v))
	}
}

// --- memory/accumulator read-modify-write generators ------------------------

type unOp8 func(c *CPU, a uint8) uint8

func mkRMWMem(mode AddrMode, op unOp8) execFunc {
	return func(c *CPU, operandVal operand) {
		v := c.bus.Read(operandVal.addr)
		c.writeOperand8(operandVal, op(c, v))
	}
}

func mkRMWAcc(reg regRef, op unOp8) execFunc {
	return func(c *CPU, _ operand) {
		p := reg(c)
		*p = op(c, *p)
	}
}

func mkTstMem(mode AddrMode) execFunc {
	return func(c *CPU, op operand) {
		v := c.bus.Read(op.addr)
		c.Reg.CC.set(ccOverflow, false)
		c.setNZ8(v)
	}
}

func mkTstAcc(reg regRef) execFunc {
	return func(c *CPU, _ operand) {
		c.Reg.CC.set(ccOverflow, false)
		c.setNZ8(*reg(c))
	}
}

func mkClrMem(mode AddrMode) execFunc {
	return func(c *CPU, op operand) {
		c.writeOperand8(op, 0)
		c.Reg.CC.set(ccCarry, false)
		c.Reg.CC.set(ccOverflow, false)
		c.Reg.CC.set(ccZero, true)
		c.Reg.CC.set(ccNegative, false)
	}
}

func mkClrAcc(reg regRef) execFunc {
	return func(c *CPU, _ operand) {
		*reg(c) = 0
		c.Reg.CC.set(ccCarry, false)
		c.Reg.CC.set(ccOverflow, false)
		c.Reg.CC.set(ccZero, true)
		c.Reg.CC.set(ccNegative, false)
	}
}

// --- control flow ------------------------------------------------------------

func execJMP(c *CPU, op operand) { c.Reg.PC = op.addr }

func execJSR(c *CPU, op operand) {
	c.push16(&c.Reg.S, c.Reg.PC)
	c.Reg.PC = op.addr
}

func execBSR(c *CPU, op operand) {
	c.push16(&c.Reg.S, c.Reg.PC)
	c.Reg.PC = op.addr
}

func mkBranch(test func(c *CPU) bool) execFunc {
	return func(c *CPU, op operand) {
		if test(c) {
			c.Reg.PC = op.addr
		}
	}
}

func execRTS(c *CPU, _ operand) {
	c.Reg.PC = c.pull16(&c.Reg.S)
}

func execRTI(c *CPU, _ operand) {
	c.Reg.CC = CC(c.pull8(&c.Reg.S))
	if c.Reg.CC.has(ccEntire) {
		c.Reg.A = c.pull8(&c.Reg.S)
		c.Reg.B = c.pull8(&c.Reg.S)
		c.Reg.DP = c.pull8(&c.Reg.S)
		c.Reg.X = c.pull16(&c.Reg.S)
		c.Reg.Y = c.pull16(&c.Reg.S)
		c.Reg.U = c.pull16(&c.Reg.S)
	}
	c.Reg.PC = c.pull16(&c.Reg.S)
}

// --- stack operations --------------------------------------------------------

// stackMask bit order, high to low, matching push order PC,U/S,Y,X,DP,B,A,CC.
const (
	stackMaskCC = 1 << iota
	stackMaskA
	stackMaskB
	stackMaskDP
	stackMaskX
	stackMaskY
	stackMaskUS
	stackMaskPC
)

func execPSHS(c *CPU, op operand) { c.pushMasked(&c.Reg.S, c.Reg.U, op.value8) }
func execPSHU(c *CPU, op operand) { c.pushMasked(&c.Reg.U, c.Reg.S, op.value8) }

func (c *CPU) pushMasked(sp *uint16, other uint16, mask uint8) {
	if mask&stackMaskPC != 0 {
		c.push16(sp, c.Reg.PC)
	}
	if mask&stackMaskUS != 0 {
		c.push16(sp, other)
	}
	if mask&stackMaskY != 0 {
		c.push16(sp, c.Reg.Y)
	}
	if mask&stackMaskX != 0 {
		c.push16(sp, c.Reg.X)
	}
	if mask&stackMaskDP != 0 {
		c.push8(sp, c.Reg.DP)
	}
	if mask&stackMaskB != 0 {
		c.push8(sp, c.Reg.B)
	}
	if mask&stackMaskA != 0 {
		c.push8(sp, c.Reg.A)
	}
	if mask&stackMaskCC != 0 {
		c.push8(sp, uint8(c.Reg.CC))
	}
}

func execPULS(c *CPU, op operand) { c.Reg.U = c.pullMasked(&c.Reg.S, c.Reg.U, op.value8) }
func execPULU(c *CPU, op operand) { c.Reg.S = c.pullMasked(&c.Reg.U, c.Reg.S, op.value8) }

func (c *CPU) pullMasked(sp *uint16, other uint16, mask uint8) uint16 {
	if mask&stackMaskCC != 0 {
		c.Reg.CC = CC(c.pull8(sp))
	}
	if mask&stackMaskA != 0 {
		c.Reg.A = c.pull8(sp)
	}
	if mask&stackMaskB != 0 {
		c.Reg.B = c.pull8(sp)
	}
	if mask&stackMaskDP != 0 {
		c.Reg.DP = c.pull8(sp)
	}
	if mask&stackMaskX != 0 {
		c.Reg.X = c.pull16(sp)
	}
	if mask&stackMaskY != 0 {
		c.Reg.Y = c.pull16(sp)
	}
	if mask&stackMaskUS != 0 {
		other = c.pull16(sp)
	}
	if mask&stackMaskPC != 0 {
		c.Reg.PC = c.pull16(sp)
	}
	return other
}

// --- exchange/transfer --------------------------------------------------------

// exgTfrRegValue resolves register r (a 4-bit EXG/TFR nibble) to its current
// 16-bit value (8-bit registers are sign-extended into the low byte only,
// high byte zero, matching a real 6809's internal bus behavior) and
// reports whether r names an 8-bit register.
func (c *CPU) exgTfrRegValue(r uint8) (value uint16, is8 bool, valid bool) {
	switch r {
	case 0x0:
		return c.Reg.D(), false, true
	case 0x1:
		return c.Reg.X, false, true
	case 0x2:
		return c.Reg.Y, false, true
	case 0x3:
		return c.Reg.U, false, true
	case 0x4:
		return c.Reg.S, false, true
	case 0x5:
		return c.Reg.PC, false, true
	case 0x8:
		return uint16(c.Reg.A), true, true
	case 0x9:
		return uint16(c.Reg.B), true, true
	case 0xA:
		return uint16(c.Reg.CC), true, true
	case 0xB:
		return uint16(c.Reg.DP), true, true
	default:
		return 0, false, false
	}
}

func (c *CPU) exgTfrSetReg(r uint8, value uint16) {
	switch r {
	case 0x0:
		c.Reg.SetD(value)
	case 0x1:
		c.Reg.X = value
	case 0x2:
		c.Reg.Y = value
	case 0x3:
		c.Reg.U = value
	case 0x4:
		c.Reg.S = value
	case 0x5:
		c.Reg.PC = value
	case 0x8:
		c.Reg.A = uint8(value)
	case 0x9:
		c.Reg.B = uint8(value)
	case 0xA:
		c.Reg.CC = CC(value)
	case 0xB:
		c.Reg.DP = uint8(value)
	}
}

func execEXG(c *CPU, op operand) {
	src, dst := op.value8>>4, op.value8&0xF
	sv, sIs8, sValid := c.exgTfrRegValue(src)
	dv, dIs8, dValid := c.exgTfrRegValue(dst)
	if !sValid || !dValid || sIs8 != dIs8 {
		c.errs.Illegal("CPU: illegal EXG register combination %#x", op.value8)
		c.exgTfrSetReg(dst, 0xFFFF)
		return
	}
	c.exgTfrSetReg(dst, sv)
	c.exgTfrSetReg(src, dv)
}

func execTFR(c *CPU, op operand) {
	src, dst := op.value8>>4, op.value8&0xF
	sv, sIs8, sValid := c.exgTfrRegValue(src)
	_, dIs8, dValid := c.exgTfrRegValue(dst)
	if !sValid || !dValid || sIs8 != dIs8 {
		c.errs.Illegal("CPU: illegal TFR register combination %#x", op.value8)
		c.exgTfrSetReg(dst, 0xFFFF)
		return
	}
	c.exgTfrSetReg(dst, sv)
}

// --- misc inherent instructions ------------------------------------------------

func execNOP(c *CPU, _ operand) {}

func execHCF(c *CPU, _ operand) {
	c.errs.Illegal("CPU: HCF opcode at PC %#x", c.Reg.PC-1)
	c.Locked = true
}

func execSYNC(c *CPU, _ operand) {
	c.Halted = true
	c.waitingCWAI = false
}

func execCWAI(c *CPU, op operand) {
	c.Reg.CC &= CC(op.value8)
	c.Reg.CC |= ccEntire
	c.pushFull(&c.Reg.S)
	c.Halted = true
	c.waitingCWAI = true
}

func execSWI(c *CPU, _ operand) {
	c.Reg.CC |= ccEntire
	c.pushFull(&c.Reg.S)
	c.Reg.CC.set(ccIRQMask, true)
	c.Reg.CC.set(ccFIRQMask, true)
	c.Reg.PC = c.bus.Read16(0xFFFA)
}

func execSWI2(c *CPU, _ operand) {
	c.Reg.CC |= ccEntire
	c.pushFull(&c.Reg.S)
	c.Reg.PC = c.bus.Read16(0xFFF4)
}

func execSWI3(c *CPU, _ operand) {
	c.Reg.CC |= ccEntire
	c.pushFull(&c.Reg.S)
	c.Reg.PC = c.bus.Read16(0xFFF2)
}

func execORCC(c *CPU, op operand) { c.Reg.CC |= CC(op.value8) }
func execANDCC(c *CPU, op operand) { c.Reg.CC &= CC(op.value8) }

func execSEX(c *CPU, _ operand) {
	c.Reg.A = 0
	if c.Reg.B&0x80 != 0 {
		c.Reg.A = 0xFF
	}
	c.setNZ16(c.Reg.D())
}

func execABX(c *CPU, _ operand) { c.Reg.X += uint16(c.Reg.B) }

func execDAA(c *CPU, _ operand) {
	a := c.Reg.A
	correction := uint16(0)
	halfCarry := c.Reg.CC.has(ccHalfCarry)
	carry := c.Reg.CC.has(ccCarry)
	if halfCarry || a&0x0F > 0x09 {
		correction |= 0x06
	}
	if carry || a > 0x99 || (a > 0x8F && a&0x0F > 0x09) {
		correction |= 0x60
	}
	sum := uint16(a) + correction
	c.Reg.CC.set(ccCarry, carry || sum > 0xFF)
	c.Reg.A = uint8(sum)
	c.setNZ8(c.Reg.A)
}

func execMUL(c *CPU, _ operand) {
	result := uint16(c.Reg.A) * uint16(c.Reg.B)
	c.Reg.SetD(result)
	c.Reg.CC.set(ccZero, result == 0)
	c.Reg.CC.set(ccCarry, result&0x80 != 0)
}

func mkLEA(reg func(c *CPU) *uint16, affectsZ bool) execFunc {
	return func(c *CPU, op operand) {
		*reg(c) = op.addr
		if affectsZ {
			c.Reg.CC.set(ccZero, op.addr == 0)
		}
	}
}

func init() {
	initPage0()
	initPage1()
	initPage2()
}

func initPage0() {
	t := &page0Table

	memOps := []struct {
		base uint8
		name string
		op   unOp8
	}{
		{0x00, "NEG", (*CPU).neg8}, {0x03, "COM", (*CPU).com8}, {0x04, "LSR", (*CPU).lsr8},
		{0x06, "ROR", (*CPU).ror8}, {0x07, "ASR", (*CPU).asr8}, {0x08, "ASL", (*CPU).asl8},
		{0x09, "ROL", (*CPU).rol8}, {0x0A, "DEC", (*CPU).dec8}, {0x0C, "INC", (*CPU).inc8},
	}
	for _, m := range memOps {
		op := m.op
		set(t, m.base, m.name, ModeDirect, 6, mkRMWMem(ModeDirect, op))
		set(t, m.base+0x60, m.name, ModeIndexed, 6, mkRMWMem(ModeIndexed, op))
		set(t, m.base+0x70, m.name, ModeExtended, 7, mkRMWMem(ModeExtended, op))
	}
	set(t, 0x0D, "TST", ModeDirect, 6, mkTstMem(ModeDirect))
	set(t, 0x6D, "TST", ModeIndexed, 6, mkTstMem(ModeIndexed))
	set(t, 0x7D, "TST", ModeExtended, 7, mkTstMem(ModeExtended))
	set(t, 0x0E, "JMP", ModeDirect, 3, execJMP)
	set(t, 0x6E, "JMP", ModeIndexed, 3, execJMP)
	set(t, 0x7E, "JMP", ModeExtended, 4, execJMP)
	set(t, 0x0F, "CLR", ModeDirect, 6, mkClrMem(ModeDirect))
	set(t, 0x6F, "CLR", ModeIndexed, 6, mkClrMem(ModeIndexed))
	set(t, 0x7F, "CLR", ModeExtended, 7, mkClrMem(ModeExtended))

	set(t, 0x12, "NOP", ModeInherent, 2, execNOP)
	set(t, 0x13, "SYNC", ModeInherent, 2, execSYNC)
	// Undocumented halt-and-catch-fire opcodes: jam the bus until RESET,
	// distinct from the plain illegal path that advances and continues.
	set(t, 0x14, "HCF", ModeInherent, 1, execHCF)
	set(t, 0x15, "HCF", ModeInherent, 1, execHCF)
	set(t, 0x16, "LBRA", ModeRelative16, 5, mkBranch(func(*CPU) bool { return true }))
	set(t, 0x17, "LBSR", ModeRelative16, 9, execBSR)
	set(t, 0x19, "DAA", ModeInherent, 2, execDAA)
	set(t, 0x1A, "ORCC", ModeImmediate8, 3, execORCC)
	set(t, 0x1C, "ANDCC", ModeImmediate8, 3, execANDCC)
	set(t, 0x1D, "SEX", ModeInherent, 2, execSEX)
	set(t, 0x1E, "EXG", ModeImmediate8, 8, execEXG)
	set(t, 0x1F, "TFR", ModeImmediate8, 6, execTFR)

	branches := []struct {
		op   uint8
		name string
		test func(c *CPU) bool
	}{
		{0x20, "BRA", func(*CPU) bool { return true }},
		{0x21, "BRN", func(*CPU) bool { return false }},
		{0x22, "BHI", func(c *CPU) bool { return !c.Reg.CC.has(ccCarry) && !c.Reg.CC.has(ccZero) }},
		{0x23, "BLS", func(c *CPU) bool { return c.Reg.CC.has(ccCarry) || c.Reg.CC.has(ccZero) }},
		{0x24, "BCC", func(c *CPU) bool { return !c.Reg.CC.has(ccCarry) }},
		{0x25, "BCS", func(c *CPU) bool { return c.Reg.CC.has(ccCarry) }},
		{0x26, "BNE", func(c *CPU) bool { return !c.Reg.CC.has(ccZero) }},
		{0x27, "BEQ", func(c *CPU) bool { return c.Reg.CC.has(ccZero) }},
		{0x28, "BVC", func(c *CPU) bool { return !c.Reg.CC.has(ccOverflow) }},
		{0x29, "BVS", func(c *CPU) bool { return c.Reg.CC.has(ccOverflow) }},
		{0x2A, "BPL", func(c *CPU) bool { return !c.Reg.CC.has(ccNegative) }},
		{0x2B, "BMI", func(c *CPU) bool { return c.Reg.CC.has(ccNegative) }},
		{0x2C, "BGE", func(c *CPU) bool { return c.Reg.CC.has(ccNegative) == c.Reg.CC.has(ccOverflow) }},
		{0x2D, "BLT", func(c *CPU) bool { return c.Reg.CC.has(ccNegative) != c.Reg.CC.has(ccOverflow) }},
		{0x2E, "BGT", func(c *CPU) bool {
			return !c.Reg.CC.has(ccZero) && c.Reg.CC.has(ccNegative) == c.Reg.CC.has(ccOverflow)
		}},
		{0x2F, "BLE", func(c *CPU) bool {
			return c.Reg.CC.has(ccZero) || c.Reg.CC.has(ccNegative) != c.Reg.CC.has(ccOverflow)
		}},
	}
	for _, b := range branches {
		set(t, b.op, b.name, ModeRelative8, 3, mkBranch(b.test))
	}

	// LEAX/LEAY affect Z; LEAS/LEAU do not.
	set(t, 0x30, "LEAX", ModeIndexed, 4, mkLEA(func(c *CPU) *uint16 { return &c.Reg.X }, true))
	set(t, 0x31, "LEAY", ModeIndexed, 4, mkLEA(func(c *CPU) *uint16 { return &c.Reg.Y }, true))
	set(t, 0x32, "LEAS", ModeIndexed, 4, mkLEA(func(c *CPU) *uint16 { return &c.Reg.S }, false))
	set(t, 0x33, "LEAU", ModeIndexed, 4, mkLEA(func(c *CPU) *uint16 { return &c.Reg.U }, false))

	set(t, 0x34, "PSHS", ModeImmediate8, 5, execPSHS)
	set(t, 0x35, "PULS", ModeImmediate8, 5, execPULS)
	set(t, 0x36, "PSHU", ModeImmediate8, 5, execPSHU)
	set(t, 0x37, "PULU", ModeImmediate8, 5, execPULU)
	set(t, 0x39, "RTS", ModeInherent, 5, execRTS)
	set(t, 0x3A, "ABX", ModeInherent, 3, execABX)
	set(t, 0x3B, "RTI", ModeInherent, 6, execRTI)
	set(t, 0x3C, "CWAI", ModeImmediate8, 20, execCWAI)
	set(t, 0x3D, "MUL", ModeInherent, 11, execMUL)
	set(t, 0x3F, "SWI", ModeInherent, 19, execSWI)

	accOps := []struct {
		baseA, baseB uint8
		name         string
		op           unOp8
	}{
		{0x40, 0x50, "NEG", (*CPU).neg8}, {0x43, 0x53, "COM", (*CPU).com8},
		{0x44, 0x54, "LSR", (*CPU).lsr8}, {0x46, 0x56, "ROR", (*CPU).ror8},
		{0x47, 0x57, "ASR", (*CPU).asr8}, {0x48, 0x58, "ASL", (*CPU).asl8},
		{0x49, 0x59, "ROL", (*CPU).rol8}, {0x4A, 0x5A, "DEC", (*CPU).dec8},
		{0x4C, 0x5C, "INC", (*CPU).inc8},
	}
	for _, a := range accOps {
		set(t, a.baseA, a.name+"A", ModeInherent, 2, mkRMWAcc(accA, a.op))
		set(t, a.baseB, a.name+"B", ModeInherent, 2, mkRMWAcc(accB, a.op))
	}

	set(t, 0x4D, "TSTA", ModeInherent, 2, mkTstAcc(accA))
	set(t, 0x5D, "TSTB", ModeInherent, 2, mkTstAcc(accB))
	set(t, 0x4F, "CLRA", ModeInherent, 2, mkClrAcc(accA))
	set(t, 0x5F, "CLRB", ModeInherent, 2, mkClrAcc(accB))

	subOp := func(c *CPU, a, b uint8) uint8 { return c.sub8(a, b, false) }
	sbcOp := func(c *CPU, a, b uint8) uint8 { return c.sub8(a, b, c.Reg.CC.has(ccCarry)) }
	andOp := func(c *CPU, a, b uint8) uint8 { return c.and8(a, b) }
	eorOp := func(c *CPU, a, b uint8) uint8 { return c.eor8(a, b) }
	adcOp := func(c *CPU, a, b uint8) uint8 { return c.add8(a, b, c.Reg.CC.has(ccCarry), true) }
	orOp := func(c *CPU, a, b uint8) uint8 { return c.or8(a, b) }
	addOp := func(c *CPU, a, b uint8) uint8 { return c.add8(a, b, false, true) }

	// kind selects which generator builds the instruction's execFunc: "bin"
	// runs op and stores into the accumulator, "cmp"/"bit" only set flags,
	// "ld" loads into the accumulator.
	for _, variant := range []struct {
		immOp, dirOp, idxOp, extOp uint8
		name                       string
		kind                       string
		bin                        binOp8
	}{
		{0x80, 0x90, 0xA0, 0xB0, "SUBA", "bin", subOp}, {0x81, 0x91, 0xA1, 0xB1, "CMPA", "cmp", nil},
		{0x82, 0x92, 0xA2, 0xB2, "SBCA", "bin", sbcOp}, {0x84, 0x94, 0xA4, 0xB4, "ANDA", "bin", andOp},
		{0x85, 0x95, 0xA5, 0xB5, "BITA", "bit", nil}, {0x86, 0x96, 0xA6, 0xB6, "LDA", "ld", nil},
		{0x88, 0x98, 0xA8, 0xB8, "EORA", "bin", eorOp}, {0x89, 0x99, 0xA9, 0xB9, "ADCA", "bin", adcOp},
		{0x8A, 0x9A, 0xAA, 0xBA, "ORA", "bin", orOp}, {0x8B, 0x9B, 0xAB, 0xBB, "ADDA", "bin", addOp},
		{0xC0, 0xD0, 0xE0, 0xF0, "SUBB", "bin", subOp}, {0xC1, 0xD1, 0xE1, 0xF1, "CMPB", "cmp", nil},
		{0xC2, 0xD2, 0xE2, 0xF2, "SBCB", "bin", sbcOp}, {0xC4, 0xD4, 0xE4, 0xF4, "ANDB", "bin", andOp},
		{0xC5, 0xD5, 0xE5, 0xF5, "BITB", "bit", nil}, {0xC6, 0xD6, 0xE6, 0xF6, "LDB", "ld", nil},
		{0xC8, 0xD8, 0xE8, 0xF8, "EORB", "bin", eorOp}, {0xC9, 0xD9, 0xE9, 0xF9, "ADCB", "bin", adcOp},
		{0xCA, 0xDA, 0xEA, 0xFA, "ORB", "bin", orOp}, {0xCB, 0xDB, 0xEB, 0xFB, "ADDB", "bin", addOp},
	} {
		reg := accA
		if variant.name[len(variant.name)-1] == 'B' {
			reg = accB
		}
		modes := []struct {
			opcode uint8
			mode   AddrMode
			cycles int
		}{
			{variant.immOp, ModeImmediate8, 2},
			{variant.dirOp, ModeDirect, 4},
			{variant.idxOp, ModeIndexed, 4},
			{variant.extOp, ModeExtended, 5},
		}
		for _, m := range modes {
			var fn execFunc
			switch variant.kind {
			case "bin":
				fn = mkBin8(reg, m.mode, variant.bin)
			case "cmp":
				fn = mkCmp8(reg, m.mode)
			case "bit":
				fn = mkBit8(reg, m.mode)
			case "ld":
				fn = mkLoad8(reg, m.mode)
			}
			set(t, m.opcode, variant.name, m.mode, m.cycles, fn)
		}
	}

	set(t, 0x97, "STA", ModeDirect, 4, mkStore8(accA, ModeDirect))
	set(t, 0xA7, "STA", ModeIndexed, 4, mkStore8(accA, ModeIndexed))
	set(t, 0xB7, "STA", ModeExtended, 5, mkStore8(accA, ModeExtended))
	set(t, 0xD7, "STB", ModeDirect, 4, mkStore8(accB, ModeDirect))
	set(t, 0xE7, "STB", ModeIndexed, 4, mkStore8(accB, ModeIndexed))
	set(t, 0xF7, "STB", ModeExtended, 5, mkStore8(accB, ModeExtended))

	set(t, 0x83, "SUBD", ModeImmediate16, 4, mkSubD(ModeImmediate16))
	set(t, 0x93, "SUBD", ModeDirect, 6, mkSubD(ModeDirect))
	set(t, 0xA3, "SUBD", ModeIndexed, 6, mkSubD(ModeIndexed))
	set(t, 0xB3, "SUBD", ModeExtended, 7, mkSubD(ModeExtended))
	set(t, 0xC3, "ADDD", ModeImmediate16, 4, mkAddD(ModeImmediate16))
	set(t, 0xD3, "ADDD", ModeDirect, 6, mkAddD(ModeDirect))
	set(t, 0xE3, "ADDD", ModeIndexed, 6, mkAddD(ModeIndexed))
	set(t, 0xF3, "ADDD", ModeExtended, 7, mkAddD(ModeExtended))

	bindCmp16 := func(imm, dir, idx, ext uint8, name string, get func(c *CPU) uint16) {
		set(t, imm, name, ModeImmediate16, 4, mkCmp16Bound(get, ModeImmediate16))
		set(t, dir, name, ModeDirect, 6, mkCmp16Bound(get, ModeDirect))
		set(t, idx, name, ModeIndexed, 6, mkCmp16Bound(get, ModeIndexed))
		set(t, ext, name, ModeExtended, 7, mkCmp16Bound(get, ModeExtended))
	}
	bindCmp16(0x8C, 0x9C, 0xAC, 0xBC, "CMPX", func(c *CPU) uint16 { return c.Reg.X })

	set(t, 0x8D, "BSR", ModeRelative8, 7, execBSR)
	bindLoad16 := func(imm, dir, idx, ext uint8, name string, set16 func(c *CPU, v uint16)) {
		set(t, imm, name, ModeImmediate16, 3, mkLoad16Bound(set16, ModeImmediate16))
		set(t, dir, name, ModeDirect, 5, mkLoad16Bound(set16, ModeDirect))
		set(t, idx, name, ModeIndexed, 5, mkLoad16Bound(set16, ModeIndexed))
		set(t, ext, name, ModeExtended, 6, mkLoad16Bound(set16, ModeExtended))
	}
	bindStore16 := func(dir, idx, ext uint8, name string, get func(c *CPU) uint16) {
		set(t, dir, name, ModeDirect, 5, mkStore16Bound(get, ModeDirect))
		set(t, idx, name, ModeIndexed, 5, mkStore16Bound(get, ModeIndexed))
		set(t, ext, name, ModeExtended, 6, mkStore16Bound(get, ModeExtended))
	}
	bindLoad16(0x8E, 0x9E, 0xAE, 0xBE, "LDX", func(c *CPU, v uint16) { c.Reg.X = v })
	bindStore16(0x9F, 0xAF, 0xBF, "STX", func(c *CPU) uint16 { return c.Reg.X })
	set(t, 0x9D, "JSR", ModeDirect, 7, execJSR)
	set(t, 0xAD, "JSR", ModeIndexed, 7, execJSR)
	set(t, 0xBD, "JSR", ModeExtended, 8, execJSR)

	bindLoad16(0xCC, 0xDC, 0xEC, 0xFC, "LDD", func(c *CPU, v uint16) { c.Reg.SetD(v) })
	bindStore16(0xDD, 0xED, 0xFD, "STD", func(c *CPU) uint16 { return c.Reg.D() })
	bindLoad16(0xCE, 0xDE, 0xEE, 0xFE, "LDU", func(c *CPU, v uint16) { c.Reg.U = v })
	bindStore16(0xDF, 0xEF, 0xFF, "STU", func(c *CPU) uint16 { return c.Reg.U })
}

func initPage1() {
	t := &page1Table
	lbranches := []struct {
		op   uint8
		name string
		test func(c *CPU) bool
	}{
		{0x21, "LBRN", func(*CPU) bool { return false }},
		{0x22, "LBHI", func(c *CPU) bool { return !c.Reg.CC.has(ccCarry) && !c.Reg.CC.has(ccZero) }},
		{0x23, "LBLS", func(c *CPU) bool { return c.Reg.CC.has(ccCarry) || c.Reg.CC.has(ccZero) }},
		{0x24, "LBCC", func(c *CPU) bool { return !c.Reg.CC.has(ccCarry) }},
		{0x25, "LBCS", func(c *CPU) bool { return c.Reg.CC.has(ccCarry) }},
		{0x26, "LBNE", func(c *CPU) bool { return !c.Reg.CC.has(ccZero) }},
		{0x27, "LBEQ", func(c *CPU) bool { return c.Reg.CC.has(ccZero) }},
		{0x28, "LBVC", func(c *CPU) bool { return !c.Reg.CC.has(ccOverflow) }},
		{0x29, "LBVS", func(c *CPU) bool { return c.Reg.CC.has(ccOverflow) }},
		{0x2A, "LBPL", func(c *CPU) bool { return !c.Reg.CC.has(ccNegative) }},
		{0x2B, "LBMI", func(c *CPU) bool { return c.Reg.CC.has(ccNegative) }},
		{0x2C, "LBGE", func(c *CPU) bool { return c.Reg.CC.has(ccNegative) == c.Reg.CC.has(ccOverflow) }},
		{0x2D, "LBLT", func(c *CPU) bool { return c.Reg.CC.has(ccNegative) != c.Reg.CC.has(ccOverflow) }},
		{0x2E, "LBGT", func(c *CPU) bool {
			return !c.Reg.CC.has(ccZero) && c.Reg.CC.has(ccNegative) == c.Reg.CC.has(ccOverflow)
		}},
		{0x2F, "LBLE", func(c *CPU) bool {
			return c.Reg.CC.has(ccZero) || c.Reg.CC.has(ccNegative) != c.Reg.CC.has(ccOverflow)
		}},
	}
	for _, b := range lbranches {
		set(t, b.op, b.name, ModeRelative16, 6, mkBranch(b.test))
	}
	set(t, 0x3F, "SWI2", ModeInherent, 20, execSWI2)

	set(t, 0x83, "CMPD", ModeImmediate16, 5, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.D() }, ModeImmediate16))
	set(t, 0x93, "CMPD", ModeDirect, 7, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.D() }, ModeDirect))
	set(t, 0xA3, "CMPD", ModeIndexed, 7, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.D() }, ModeIndexed))
	set(t, 0xB3, "CMPD", ModeExtended, 8, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.D() }, ModeExtended))

	set(t, 0x8C, "CMPY", ModeImmediate16, 5, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.Y }, ModeImmediate16))
	set(t, 0x9C, "CMPY", ModeDirect, 7, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.Y }, ModeDirect))
	set(t, 0xAC, "CMPY", ModeIndexed, 7, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.Y }, ModeIndexed))
	set(t, 0xBC, "CMPY", ModeExtended, 8, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.Y }, ModeExtended))

	set(t, 0x8E, "LDY", ModeImmediate16, 4, mkLoad16Bound(func(c *CPU, v uint16) { c.Reg.Y = v }, ModeImmediate16))
	set(t, 0x9E, "LDY", ModeDirect, 6, mkLoad16Bound(func(c *CPU, v uint16) { c.Reg.Y = v }, ModeDirect))
	set(t, 0xAE, "LDY", ModeIndexed, 6, mkLoad16Bound(func(c *CPU, v uint16) { c.Reg.Y = v }, ModeIndexed))
	set(t, 0xBE, "LDY", ModeExtended, 7, mkLoad16Bound(func(c *CPU, v uint16) { c.Reg.Y = v }, ModeExtended))
	set(t, 0x9F, "STY", ModeDirect, 6, mkStore16Bound(func(c *CPU) uint16 { return c.Reg.Y }, ModeDirect))
	set(t, 0xAF, "STY", ModeIndexed, 6, mkStore16Bound(func(c *CPU) uint16 { return c.Reg.Y }, ModeIndexed))
	set(t, 0xBF, "STY", ModeExtended, 7, mkStore16Bound(func(c *CPU) uint16 { return c.Reg.Y }, ModeExtended))

	set(t, 0xCE, "LDS", ModeImmediate16, 4, mkLoad16Bound(func(c *CPU, v uint16) { c.Reg.S = v }, ModeImmediate16))
	set(t, 0xDE, "LDS", ModeDirect, 6, mkLoad16Bound(func(c *CPU, v uint16) { c.Reg.S = v }, ModeDirect))
	set(t, 0xEE, "LDS", ModeIndexed, 6, mkLoad16Bound(func(c *CPU, v uint16) { c.Reg.S = v }, ModeIndexed))
	set(t, 0xFE, "LDS", ModeExtended, 7, mkLoad16Bound(func(c *CPU, v uint16) { c.Reg.S = v }, ModeExtended))
	set(t, 0xDF, "STS", ModeDirect, 6, mkStore16Bound(func(c *CPU) uint16 { return c.Reg.S }, ModeDirect))
	set(t, 0xEF, "STS", ModeIndexed, 6, mkStore16Bound(func(c *CPU) uint16 { return c.Reg.S }, ModeIndexed))
	set(t, 0xFF, "STS", ModeExtended, 7, mkStore16Bound(func(c *CPU) uint16 { return c.Reg.S }, ModeExtended))
}

func initPage2() {
	t := &page2Table
	set(t, 0x3F, "SWI3", ModeInherent, 20, execSWI3)
	set(t, 0x83, "CMPU", ModeImmediate16, 5, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.U }, ModeImmediate16))
	set(t, 0x93, "CMPU", ModeDirect, 7, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.U }, ModeDirect))
	set(t, 0xA3, "CMPU", ModeIndexed, 7, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.U }, ModeIndexed))
	set(t, 0xB3, "CMPU", ModeExtended, 8, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.U }, ModeExtended))
	set(t, 0x8C, "CMPS", ModeImmediate16, 5, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.S }, ModeImmediate16))
	set(t, 0x9C, "CMPS", ModeDirect, 7, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.S }, ModeDirect))
	set(t, 0xAC, "CMPS", ModeIndexed, 7, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.S }, ModeIndexed))
	set(t, 0xBC, "CMPS", ModeExtended, 8, mkCmp16Bound(func(c *CPU) uint16 { return c.Reg.S }, ModeExtended))
}
