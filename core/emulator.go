// emulator.go - the composition root: owns every device, wires them onto
// the bus in memory-map order, and exposes Init/Reset/FrameUpdate/Step to
// the host.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

import "time"

// CPUClockHz is the Vectrex's 1.5 MHz CPU clock.
const CPUClockHz = 1500000

// CyclesPerFrame is the nominal CPU cycle budget for one 50 Hz video frame,
// the batch size a host typically steps by.
const CyclesPerFrame = CPUClockHz / 50

// AudioSampleRate is the host sample rate the PSG mixer converts its
// clock-rate tick into.
const AudioSampleRate = 44100

// Emulator is the composition root: it owns the CPU, VIA and its
// sub-devices, RAM, BIOS ROM, cartridge, the development/unmapped window,
// and the bus connecting them, plus the external collaborators (RenderContext,
// AudioContext) the host reads from.
type Emulator struct {
	Errs *ErrorHandler
	Bus  *Bus

	CPU       *CPU
	Via       *Via
	RAM       *RAM
	BIOS      *BIOSRom
	Cartridge *Cartridge
	Unmapped  *UnmappedDevice
	Illegal   *IllegalDevice

	Render *RenderContext
	Audio  *AudioContext

	resetSeed int64
}

// NewEmulator builds an Emulator reacting to core errors per policy. Devices
// are constructed but not yet connected to the bus; call Init to wire them
// and load the BIOS image.
func NewEmulator(policy Policy) *Emulator {
	errs := NewErrorHandler(policy)
	bus := NewBus(errs)
	render := &RenderContext{}
	audio := NewAudioContext(AudioSampleRate)

	beam := NewBeam()
	psg := NewPSG(errs, audio, AudioSampleRate, PSGClockHz)
	via := NewVia(errs, psg, beam, render)

	e := &Emulator{
		Errs:      errs,
		Bus:       bus,
		Via:       via,
		RAM:       NewRAM(),
		BIOS:      NewBIOSRom(errs),
		Cartridge: NewCartridge(errs),
		Unmapped:  NewUnmappedDevice(errs),
		Illegal:   NewIllegalDevice(errs),
		Render:    render,
		Audio:     audio,
	}
	e.CPU = NewCPU(errs, bus, via.IrqEnabled, via.FirqEnabled)
	return e
}

// Init connects every device to the bus in memory-map order (cartridge, the
// unmapped window, RAM, VIA, the illegal combined window, BIOS) and loads
// biosImage into the BIOS ROM. Each device's own Init registers it on the
// bus at its fixed range.
func (e *Emulator) Init(biosImage []byte) error {
	e.Cartridge.Init(e.Bus)
	e.Unmapped.Init(e.Bus)
	e.RAM.Init(e.Bus)
	e.Via.Init(e.Bus)
	e.Illegal.Init(e.Bus)
	e.BIOS.Init(e.Bus)

	return e.BIOS.Load(biosImage)
}

// LoadCartridge installs a cartridge ROM image, up to CartridgeMaxSize bytes.
func (e *Emulator) LoadCartridge(data []byte) error {
	return e.Cartridge.Load(data)
}

// Reset randomizes RAM from a fresh seed, then resets the CPU and VIA. The
// CPU reset reads the reset vector out of the now-loaded BIOS.
func (e *Emulator) Reset() {
	e.resetSeed = time.Now().UnixNano()
	e.RAM.Randomize(e.resetSeed)
	e.CPU.Reset()
	e.Via.Reset()
}

// SetInput installs the Input snapshot the VIA consults during the next
// Sync calls, until replaced again.
func (e *Emulator) SetInput(input Input) {
	e.Via.SetInput(input)
}

// Step executes one CPU instruction, feeding its elapsed cycles to the bus's
// sync accounting, and returns the elapsed cycle count.
func (e *Emulator) Step() int {
	cycles := e.CPU.ExecuteInstruction()
	e.Bus.AddSyncCycles(cycles)
	e.Bus.Sync()
	return cycles
}

// StepCycles runs Step repeatedly until at least budget cycles have
// elapsed, returning the total consumed (which may overshoot budget by up
// to one instruction's cycle count, since instructions are not
// interruptible mid-execution).
func (e *Emulator) StepCycles(budget int) int {
	total := 0
	for total < budget {
		total += e.Step()
	}
	return total
}

// FrameUpdate invokes the VIA's per-frame hook. It runs no CPU stepping of
// its own — stepping is driven by the caller, typically in
// CyclesPerFrame-sized batches between FrameUpdate calls.
func (e *Emulator) FrameUpdate(dt float64) {
	e.Via.FrameUpdate(dt)
}
