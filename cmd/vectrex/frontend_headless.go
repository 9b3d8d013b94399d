//go:build headless

// frontend_headless.go - headless frontend: steps a fixed number of frames
// with no window or sound device, reporting beam output to stdout. Used in
// CI and for profiling the core without a display.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package main

import (
	"fmt"

	"github.com/intuitionamiga/vectrexcore/core"
	"github.com/intuitionamiga/vectrexcore/internal/overlay"
)

const headlessFrames = 500

func runFrontend(emu *core.Emulator, bezel *overlay.Overlay) error {
	_ = bezel

	totalLines := 0
	totalCycles := 0
	for frame := 0; frame < headlessFrames; frame++ {
		emu.SetInput(core.Input{})
		emu.Render.Clear()
		totalCycles += emu.StepCycles(core.CyclesPerFrame)
		totalLines += len(emu.Render.Lines)
		emu.FrameUpdate(1.0 / 50)
	}

	fmt.Printf("headless: %d frames, %d cycles, %d line segments, %d audio samples\n",
		headlessFrames, totalCycles, totalLines, emu.Audio.Pending())
	return nil
}
