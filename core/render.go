// render.go - RenderContext: the handoff point to the external renderer.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/vectrexcore
License: GPLv3 or later
*/

package core

// Point is a 2-D beam position in the Vectrex's normalized screen space.
type Point struct {
	X float32
	Y float32
}

// LineSegment is one drawn vector stroke, with brightness normalized to
// [0, 1].
type LineSegment struct {
	P1         Point
	P2         Point
	Brightness float32
}

// RenderContext is the ordered list of line segments produced by a stepping
// batch. The external renderer owns clearing it at the start of each frame;
// the core only appends.
type RenderContext struct {
	Lines []LineSegment
}

// Clear empties the line list. Called by the renderer at frame boundaries,
// not by the core itself.
func (r *RenderContext) Clear() {
	r.Lines = r.Lines[:0]
}
