// via.go - the 6522 VIA: register decode, port A/B I/O, peripheral control,
// interrupt aggregation, and per-cycle sync of its sub-devices.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

// VIA register offsets within the CPU-visible 16-byte window the 6522
// decodes its registers into.
const (
	viaRegPortB       = 0x0
	viaRegPortA       = 0x1
	viaRegDDRB        = 0x2
	viaRegDDRA        = 0x3
	viaRegT1CounterLo = 0x4
	viaRegT1CounterHi = 0x5
	viaRegT1LatchLo   = 0x6
	viaRegT1LatchHi   = 0x7
	viaRegT2CounterLo = 0x8
	viaRegT2CounterHi = 0x9
	viaRegShift       = 0xA
	viaRegAuxCtl      = 0xB
	viaRegPeriphCtl   = 0xC
	viaRegIFR         = 0xD
	viaRegIER         = 0xE
	viaRegPortANoHS   = 0xF
)

// IFR/IER bit assignments, per the 6522's documented interrupt-flag layout.
const (
	viaIRQCA2 = 1 << 0
	viaIRQCA1 = 1 << 1
	viaIRQSR  = 1 << 2
	viaIRQCB2 = 1 << 3
	viaIRQCB1 = 1 << 4
	viaIRQT2  = 1 << 5
	viaIRQT1  = 1 << 6
	viaIRQAny = 1 << 7
)

// Port B bit assignments driving the Vectrex's DAC/mux/sound-chip bus.
const (
	portBMuxMask  = 0x03
	portBMuxY     = 0
	portBMuxOff   = 1
	portBMuxZ     = 2
	portBMuxSound = 3

	portBCompareStrobe = 1 << 2
	portBSoundBC1      = 1 << 3
	portBSoundBDIR     = 1 << 4
)

// Via is the VIA component: its own register file plus the Timer1, Timer2,
// ShiftRegister, PSG and Beam sub-devices it synchronizes every cycle.
type Via struct {
	errs *ErrorHandler

	portA, portB uint8
	ddrA, ddrB   uint8
	auxCtl       uint8
	periphCtl    uint8
	ier          uint8

	ca1Flag        bool
	psgSelectedReg uint8
	// portAInput holds the externally driven port A bits, latched by the
	// last sound-chip read strobe.
	portAInput uint8

	joystickPot   int8
	syncInput     Input
	renderContext *RenderContext

	Timer1        *Timer1
	Timer2        *Timer2
	ShiftRegister *ShiftRegister
	PSG           *PSG
	Beam          *Beam
}

// NewVia wires a Via's sub-devices together; psg, beam and renderContext are
// owned by the Emulator composition root and passed in so the Via can reach
// them during Sync without the Bus's generic Syncer interface needing to
// carry per-call context. renderContext is the same object for the Via's
// whole lifetime; the per-frame Input snapshot is installed separately via
// SetInput from the Emulator's frame hook.
func NewVia(errs *ErrorHandler, psg *PSG, beam *Beam, renderContext *RenderContext) *Via {
	return &Via{
		errs:          errs,
		Timer1:        NewTimer1(errs),
		Timer2:        NewTimer2(errs),
		ShiftRegister: NewShiftRegister(),
		PSG:           psg,
		Beam:          beam,
		renderContext: renderContext,
	}
}

// SetInput installs the Input snapshot consulted by the joystick-pot
// comparator strobe during the next Sync calls, until replaced again.
func (v *Via) SetInput(input Input) { v.syncInput = input }

// Reset clears all latches and sub-device counters to power-on state.
func (v *Via) Reset() {
	v.portA, v.portB = 0, 0
	v.ddrA, v.ddrB = 0, 0
	v.auxCtl, v.periphCtl = 0, 0
	v.ier = 0
	v.ca1Flag = false
	v.psgSelectedReg = 0
	v.portAInput = 0
	v.joystickPot = 0
	v.Timer1 = NewTimer1(v.errs)
	v.Timer2 = NewTimer2(v.errs)
	v.ShiftRegister = NewShiftRegister()
	v.Beam.ZeroBeam()
}

// FrameUpdate is the Via's per-host-frame hook, called by the composition
// root once per video frame between stepping batches. Input capture and
// debugger overlays live with the host, so the Via's own frame work is
// propagating the hook to the beam, where re-tuned parameters take effect.
func (v *Via) FrameUpdate(dt float64) {
	v.Beam.FrameUpdate(dt)
}

// Init connects the Via to bus at its fixed, 128-way mirrored 16-byte
// register window, as a sync-enabled device.
func (v *Via) Init(bus *Bus) {
	bus.Connect(v, MapVIA.First, MapVIA.Last, true)
}

// Read folds addr down to its 0-15 register offset via the shadow mapping
// and decodes it.
func (v *Via) Read(addr uint16) uint8 {
	offset := MapVIA.MapAddress(addr)
	switch offset & 0xF {
	case viaRegPortB:
		return v.readPortB()
	case viaRegPortA, viaRegPortANoHS:
		if offset&0xF == viaRegPortA {
			v.ca1Flag = false
		}
		return v.readPortA()
	case viaRegDDRB:
		return v.ddrB
	case viaRegDDRA:
		return v.ddrA
	case viaRegT1CounterLo:
		return v.Timer1.ReadCounterLow()
	case viaRegT1CounterHi:
		return v.Timer1.ReadCounterHigh()
	case viaRegT1LatchLo:
		return v.Timer1.ReadLatchLow()
	case viaRegT1LatchHi:
		return v.Timer1.ReadLatchHigh()
	case viaRegT2CounterLo:
		return v.Timer2.ReadCounterLow()
	case viaRegT2CounterHi:
		return v.Timer2.ReadCounterHigh()
	case viaRegShift:
		return v.ShiftRegister.ReadValue()
	case viaRegAuxCtl:
		return v.auxCtl
	case viaRegPeriphCtl:
		return v.periphCtl
	case viaRegIFR:
		return v.ifrValue()
	case viaRegIER:
		return v.ier | viaIRQAny
	default:
		v.errs.Undefined("VIA: read from undecoded offset %#x", offset)
		return 0xFF
	}
}

// Write folds addr down to its 0-15 register offset via the shadow mapping
// and applies value, triggering the documented side effects (DAC strobes,
// latch loads, flag clears).
func (v *Via) Write(addr uint16, value uint8) {
	offset := MapVIA.MapAddress(addr)
	switch offset & 0xF {
	case viaRegPortB:
		v.portB = value
		v.strobe()
	case viaRegPortA, viaRegPortANoHS:
		v.portA = value
		v.Beam.SetIntegratorX(int8(v.portA))
		if offset&0xF == viaRegPortA {
			v.ca1Flag = false
		}
	case viaRegDDRB:
		v.ddrB = value
	case viaRegDDRA:
		v.ddrA = value
	case viaRegT1CounterLo, viaRegT1LatchLo:
		v.Timer1.WriteCounterLow(value)
	case viaRegT1CounterHi:
		v.Timer1.WriteCounterHigh(value)
	case viaRegT1LatchHi:
		v.Timer1.WriteLatchHigh(value)
	case viaRegT2CounterLo:
		v.Timer2.WriteCounterLow(value)
	case viaRegT2CounterHi:
		v.Timer2.WriteCounterHigh(value)
	case viaRegShift:
		v.ShiftRegister.SetValue(value)
	case viaRegAuxCtl:
		v.auxCtl = value
		v.applyAuxCtl(value)
	case viaRegPeriphCtl:
		v.periphCtl = value
		v.applyPeriphCtl(value)
	case viaRegIFR:
		v.clearFlags(value)
	case viaRegIER:
		if value&viaIRQAny != 0 {
			v.ier |= value &^ viaIRQAny
		} else {
			v.ier &^= value
		}
	default:
		v.errs.Undefined("VIA: write to undecoded offset %#x", offset)
	}
}

// applyAuxCtl decodes the auxiliary control register's timer and
// shift-register mode fields.
func (v *Via) applyAuxCtl(value uint8) {
	v.Timer1.SetPB7Enabled(value&0x80 != 0)

	t1Mode := TimerOneShot
	if value&0x40 != 0 {
		t1Mode = TimerFreeRunning
	}
	v.Timer1.SetMode(t1Mode)

	t2Mode := TimerOneShot
	if value&0x20 != 0 {
		t2Mode = TimerPulseCounting
	}
	v.Timer2.SetMode(t2Mode)

	shiftBits := (value >> 2) & 0x7
	switch shiftBits {
	case 0:
		v.ShiftRegister.SetMode(ShiftDisabled)
	case 4:
		v.ShiftRegister.SetMode(ShiftOutUnderPhase2)
	default:
		v.errs.Unsupported("VIA: unsupported shift register mode %#x", shiftBits)
	}
}

// applyPeriphCtl decodes the peripheral control register's CA2/CB2 output
// modes. All eight mode combinations are accepted; the ones with hardware
// effect on a Vectrex are CA2 manual-low (asserts ~ZERO, snapping the beam
// to the origin) and the CB2 manual modes (overriding the shift register's
// blanking output, applied during Sync). The handshake and pulse modes
// latch no state here since nothing on the Vectrex board consumes them.
func (v *Via) applyPeriphCtl(value uint8) {
	if (value>>1)&0x7 == 0x6 {
		v.Beam.ZeroBeam()
	}
}

// clearFlags acknowledges the interrupt sources whose IFR bits are written
// as 1, clearing the underlying device flags.
func (v *Via) clearFlags(mask uint8) {
	if mask&viaIRQCA1 != 0 {
		v.ca1Flag = false
	}
	if mask&viaIRQT1 != 0 {
		v.Timer1.SetInterruptFlag(false)
	}
	if mask&viaIRQT2 != 0 {
		v.Timer2.SetInterruptFlag(false)
	}
	if mask&viaIRQSR != 0 {
		v.ShiftRegister.SetInterruptFlag(false)
	}
}

// pb7High reports the current level of PB7, multiplexed between the port B
// output latch and Timer1's square-wave output.
func (v *Via) pb7High() bool {
	if v.Timer1.PB7Enabled() {
		return !v.Timer1.PB7SignalLow()
	}
	return v.portB&0x80 != 0
}

// cb2High reports the current level of CB2: the shift register's outgoing
// bit unless the peripheral control register forces a manual level.
func (v *Via) cb2High() bool {
	switch v.periphCtl >> 5 {
	case 0x6:
		return false
	case 0x7:
		return true
	default:
		return v.ShiftRegister.CB2Active()
	}
}

// readPortB combines the output latch (for DDR=1 bits) with PB7's optional
// Timer1-square-wave override.
func (v *Via) readPortB() uint8 {
	out := v.portB & v.ddrB
	if v.Timer1.PB7Enabled() {
		out &^= 0x80
		if !v.Timer1.PB7SignalLow() {
			out |= 0x80
		}
	}
	return out
}

// readPortA returns the output latch under DDR, with the externally driven
// bits (the sound chip's data bus from the last read strobe, and the
// joystick-pot comparator on bit 7) folded into the input portion.
func (v *Via) readPortA() uint8 {
	out := v.portA & v.ddrA
	in := v.portAInput
	if v.joystickPot >= 0 {
		in |= 0x80
	} else {
		in &^= 0x80
	}
	return out | in&^v.ddrA
}

// strobe routes the value latched on Port A to whichever target Port B's
// mux bits select.
func (v *Via) strobe() {
	switch v.portB & portBMuxMask {
	case portBMuxY:
		v.Beam.SetIntegratorY(int8(v.portA))
	case portBMuxOff:
		v.Beam.SetIntegratorXYOffset(int8(v.portA))
	case portBMuxZ:
		v.Beam.SetBrightness(v.portA)
	case portBMuxSound:
		v.strobeSound()
	}
	if v.portB&portBCompareStrobe != 0 {
		v.strobeComparator()
	}
}

// strobeSound implements the AY-3-8912's BDIR/BC1 bus protocol: latch
// address, write data, read data onto port A, or idle.
func (v *Via) strobeSound() {
	bdir := v.portB&portBSoundBDIR != 0
	bc1 := v.portB&portBSoundBC1 != 0
	switch {
	case bdir && bc1:
		v.psgSelectedReg = v.portA & 0x0F
	case bdir && !bc1:
		v.PSG.WriteRegister(v.psgSelectedReg, v.portA)
	case !bdir && bc1:
		v.portAInput = v.PSG.ReadRegister(v.psgSelectedReg)
	}
}

// strobeComparator compares the DAC value latched on port A against the
// mux-selected joystick axis, modeling the pot comparator's
// strobe-triggered sample-and-hold. BIOS pot-scan routines walk the DAC
// value until the comparator flips, so the output must track elapsed DAC
// level rather than a static bit.
func (v *Via) strobeComparator() {
	axis := v.syncInput.Axis[v.portB&portBMuxMask]
	dac := float32(int8(v.portA))
	if axis*127 > dac {
		v.joystickPot = 1
	} else {
		v.joystickPot = -1
	}
}

func (v *Via) ifrValue() uint8 {
	flags := uint8(0)
	if v.ca1Flag {
		flags |= viaIRQCA1
	}
	if v.Timer1.InterruptFlag() {
		flags |= viaIRQT1
	}
	if v.Timer2.InterruptFlag() {
		flags |= viaIRQT2
	}
	if v.ShiftRegister.InterruptFlag() {
		flags |= viaIRQSR
	}
	if flags&v.ier != 0 {
		flags |= viaIRQAny
	}
	return flags
}

// IrqEnabled reports whether the aggregated IFR/IER pair currently demands
// an IRQ line assertion (everything but shift-register completion, which
// can instead be routed to FIRQ).
func (v *Via) IrqEnabled() bool {
	return v.ifrValue()&viaIRQAny != 0
}

// FirqEnabled reports whether shift-register completion is both flagged
// and enabled.
func (v *Via) FirqEnabled() bool {
	return v.ShiftRegister.InterruptFlag() && v.ier&viaIRQSR != 0
}

// Sync ticks every sub-device by cycles cycles in the documented order:
// Timer1, Timer2, shift register, PSG, beam. It implements the Bus's
// Syncer interface; the Input snapshot it reads was last installed by
// SetInput and the RenderContext it draws into was fixed at construction.
func (v *Via) Sync(cycles int) {
	// Buttons reach the CPU through the PSG's IO port (register 14),
	// active low.
	buttons := uint8(0xFF)
	for i, pressed := range v.syncInput.Button {
		if pressed {
			buttons &^= 1 << uint(i)
		}
	}
	v.PSG.SetIOPortA(buttons)

	v.Timer1.Update(cycles)
	v.Timer2.Update(cycles)
	v.ShiftRegister.Update(cycles)
	// RAMP (PB7) is active low; CB2 high means the beam is unblanked.
	v.Beam.SetIntegratorsEnabled(!v.pb7High())
	v.Beam.SetBlankEnabled(!v.cb2High())
	if v.PSG != nil {
		v.PSG.Tick(cycles)
	}
	v.Beam.Update(cycles, v.renderContext)
}
