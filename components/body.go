package components

import "github.com/lixenwraith/flag-arena/vmath"

// Body is a single flag disc in the arena
// Radius is fixed at creation; escape is one-way
type Body struct {
	Position vmath.Vec2
	Velocity vmath.Vec2
	Radius   float64

	Code   string // Asset code (upper-case file stem)
	Label  string // Display name, resolved once at spawn
	Handle int    // Opaque visual handle (index into the asset catalog)

	escaped bool
}

// NewBody creates a contained body
func NewBody(code, label string, handle int, pos, vel vmath.Vec2, radius float64) *Body {
	return &Body{
		Position: pos,
		Velocity: vel,
		Radius:   radius,
		Code:     code,
		Label:    label,
		Handle:   handle,
	}
}

// Escaped reports whether the body has passed through a ring gap
func (b *Body) Escaped() bool {
	return b.escaped
}

// Escape marks the body as free; there is no way back
func (b *Body) Escape() {
	b.escaped = true
}

// Contained filters bodies still inside the ring, preserving order
func Contained(bodies []*Body) []*Body {
	inside := make([]*Body, 0, len(bodies))
	for _, b := range bodies {
		if !b.escaped {
			inside = append(inside, b)
		}
	}
	return inside
}

// CountContained returns the number of bodies still inside the ring
func CountContained(bodies []*Body) int {
	n := 0
	for _, b := range bodies {
		if !b.escaped {
			n++
		}
	}
	return n
}
