// beam.go - the analog integrator-driven vector CRT beam model: converts
// X/Y velocity, offset, blank and brightness inputs into drawn line
// segments.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

import "math"

const (
	rampUpDelay    = 5
	rampDownDelay  = 10
	velocityXDelay = 6 // X velocity lags Y velocity by this many cycles
	lineDrawScale  = 0.85
)

// RampPhase models the CRT's beam-deflection charging curve.
type RampPhase int

const (
	RampOff RampPhase = iota
	RampUp
	RampOn
	RampDown
)

// delayedValue holds a value that is only observed cyclesToUpdate cycles
// after being set, modeling the integrator's input latency as a small FIFO.
type delayedValue struct {
	CyclesToUpdate int

	cyclesLeft int
	next       float32
	value      float32
}

func (d *delayedValue) Set(v float32) {
	d.next = v
	d.cyclesLeft = d.CyclesToUpdate
	if d.cyclesLeft == 0 {
		d.value = v
	}
}

func (d *delayedValue) Update(cycles int) {
	if d.cyclesLeft <= 0 {
		return
	}
	d.cyclesLeft -= cycles
	if d.cyclesLeft <= 0 {
		d.value = d.next
	}
}

func (d *delayedValue) Value() float32 { return d.value }

// Beam is the Screen component: the beam position, ramp state machine, and
// the line list it emits into a RenderContext.
type Beam struct {
	integratorsEnabled bool
	pos                Point

	lastDrawingEnabled bool
	lastDir            Point

	velocityX delayedValue
	velocityY delayedValue
	xyOffset  float32
	// brightness is in the raw [0, 128] hardware range.
	brightness float32
	blank      bool

	rampPhase RampPhase
	rampDelay int

	brightnessCurve float32
	// velocityXLatency is the host-tunable latency applied to the X
	// velocity input at the next frame boundary.
	velocityXLatency int
}

// NewBeam builds a Beam with its default input latencies.
func NewBeam() *Beam {
	b := &Beam{velocityXLatency: velocityXDelay}
	b.velocityX.CyclesToUpdate = b.velocityXLatency
	return b
}

func (b *Beam) SetBlankEnabled(v bool)       { b.blank = v }
func (b *Beam) SetIntegratorsEnabled(v bool) { b.integratorsEnabled = v }
func (b *Beam) SetIntegratorX(v int8)        { b.velocityX.Set(float32(v)) }
func (b *Beam) SetIntegratorY(v int8)        { b.velocityY.Set(float32(v)) }
func (b *Beam) SetIntegratorXYOffset(v int8) { b.xyOffset = float32(v) }
func (b *Beam) SetBrightness(v uint8)        { b.brightness = float32(v) }
func (b *Beam) SetBrightnessCurve(v float32) { b.brightnessCurve = v }

// SetVelocityXLatency adjusts the X-velocity input lag. The new value takes
// effect at the next FrameUpdate, not mid-frame.
func (b *Beam) SetVelocityXLatency(cycles int) { b.velocityXLatency = cycles }

// FrameUpdate is the once-per-host-frame hook: it applies any re-tuned
// input latency so a change never lands between two instruction steps of
// the same frame.
func (b *Beam) FrameUpdate(dt float64) {
	b.velocityX.CyclesToUpdate = b.velocityXLatency
}

func normalized(p Point) Point {
	mag := float32(math.Sqrt(float64(p.X)*float64(p.X) + float64(p.Y)*float64(p.Y)))
	if mag == 0 {
		return Point{}
	}
	return Point{X: p.X / mag, Y: p.Y / mag}
}

// Update advances the ramp state machine and integrates beam position by
// cycles cycles, appending at most one line segment to renderContext;
// consecutive colinear drawing steps extend the previous segment instead.
func (b *Beam) Update(cycles int, renderContext *RenderContext) {
	b.velocityX.Update(cycles)
	b.velocityY.Update(cycles)

	switch b.rampPhase {
	case RampOff, RampDown:
		if b.integratorsEnabled {
			b.rampPhase = RampUp
			b.rampDelay = rampUpDelay
		}
	case RampOn, RampUp:
		if !b.integratorsEnabled {
			b.rampPhase = RampDown
			b.rampDelay = rampDownDelay
		}
	}

	switch b.rampPhase {
	case RampUp:
		b.rampDelay -= cycles
		if b.rampDelay <= 0 {
			b.rampPhase = RampOn
		}
	case RampDown:
		b.rampDelay -= cycles
		if b.rampDelay <= 0 {
			b.rampPhase = RampOff
		}
	}

	lastPos := b.pos
	currDir := normalized(Point{X: b.velocityX.Value(), Y: b.velocityY.Value()})

	switch b.rampPhase {
	case RampOn, RampDown:
		vx := b.velocityX.Value() + b.xyOffset
		vy := b.velocityY.Value() + b.xyOffset
		scale := float32(cycles) / 128 * lineDrawScale
		b.pos.X += vx * scale
		b.pos.Y += vy * scale
	}

	drawingEnabled := !b.blank && b.brightness > 0 && b.brightness <= 128
	if drawingEnabled {
		extending := b.lastDrawingEnabled &&
			(currDir.X != 0 || currDir.Y != 0) &&
			currDir == b.lastDir &&
			len(renderContext.Lines) > 0
		if extending {
			renderContext.Lines[len(renderContext.Lines)-1].P2 = b.pos
		} else {
			brightness := b.brightness / 128
			brightness = lerp(brightness, easeOut(brightness), b.brightnessCurve)
			renderContext.Lines = append(renderContext.Lines, LineSegment{
				P1:         lastPos,
				P2:         b.pos,
				Brightness: brightness,
			})
		}
	}

	b.lastDrawingEnabled = drawingEnabled
	b.lastDir = currDir
}

func lerp(a, bv, t float32) float32 { return a + t*(bv-a) }

func easeOut(v float32) float32 {
	return 1 - float32(math.Pow(float64(1-v), 5))
}

// ZeroBeam moves the position to the origin and clears the drawing-enabled
// latch so the next drawn segment does not extend across the jump.
func (b *Beam) ZeroBeam() {
	b.pos = Point{}
	b.lastDrawingEnabled = false
}

func (b *Beam) Position() Point { return b.pos }
