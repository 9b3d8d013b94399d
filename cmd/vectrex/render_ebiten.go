//go:build !headless

// render_ebiten.go - Ebiten render/input frontend: draws the beam's line
// list once per frame and samples keyboard/gamepad state into the Input
// snapshot the VIA consumes during sync.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/intuitionamiga/vectrexcore/core"
	"github.com/intuitionamiga/vectrexcore/internal/overlay"
)

const (
	windowWidth  = 660
	windowHeight = 820
)

type ebitenFrontend struct {
	emu      *core.Emulator
	bezel    *ebiten.Image
	audio    *otoOutput
	phosphor color.RGBA
}

func runFrontend(emu *core.Emulator, bezel *overlay.Overlay) error {
	f := &ebitenFrontend{
		emu:      emu,
		phosphor: color.RGBA{R: 0x60, G: 0xC0, B: 0xFF, A: 0xFF},
	}
	if bezel != nil {
		f.bezel = ebiten.NewImageFromImage(bezel.Scaled(windowWidth, windowHeight))
	}

	audio, err := newOtoOutput(emu.Audio)
	if err != nil {
		return err
	}
	f.audio = audio

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Vectrex")
	ebiten.SetTPS(50)
	return ebiten.RunGame(f)
}

// Update samples input, clears last frame's line list, and steps one
// frame's worth of CPU cycles.
func (f *ebitenFrontend) Update() error {
	f.emu.SetInput(sampleInput())
	f.emu.Render.Clear()
	f.emu.StepCycles(core.CyclesPerFrame)
	return nil
}

func (f *ebitenFrontend) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	cx := float32(windowWidth) / 2
	cy := float32(windowHeight) / 2
	// The beam's coordinate space is the analog +/-128 grid scaled down to
	// roughly unit range; spread it across the shorter window axis.
	scale := float32(windowWidth) * 0.9

	for _, line := range f.emu.Render.Lines {
		c := f.phosphor
		c.A = uint8(255 * line.Brightness)
		vector.StrokeLine(screen,
			cx+line.P1.X*scale, cy-line.P1.Y*scale,
			cx+line.P2.X*scale, cy-line.P2.Y*scale,
			1.5, c, true)
	}

	if f.bezel != nil {
		screen.DrawImage(f.bezel, nil)
	}
}

func (f *ebitenFrontend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

// sampleInput maps keyboard and gamepad state onto the two controllers:
// arrows + ASDF for player one, a connected gamepad's left stick and face
// buttons for player two.
func sampleInput() core.Input {
	var in core.Input

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.Axis[0] = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.Axis[0] = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.Axis[1] = -1
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.Axis[1] = 1
	}

	keys := []ebiten.Key{ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF}
	for i, k := range keys {
		in.Button[i] = ebiten.IsKeyPressed(k)
	}

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		id := ids[0]
		in.Axis[2] = float32(ebiten.GamepadAxisValue(id, 0))
		in.Axis[3] = float32(-ebiten.GamepadAxisValue(id, 1))
	}

	return in
}
