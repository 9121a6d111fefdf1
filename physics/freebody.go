package physics

import (
	"math"

	"github.com/lixenwraith/flag-arena/components"
)

// FreeBody holds the gravity and wall parameters for escaped bodies
type FreeBody struct {
	Gravity       float64 // downward acceleration (units/s²)
	Damping       float64 // per-frame velocity retention (< 1)
	Restitution   float64 // velocity retention on a bounce (< 1)
	StopSpeed     float64 // floor impacts slower than this settle
	FloorFriction float64 // per-frame horizontal retention while on the floor

	Left, Right, Top, Floor float64
}

// Step advances one escaped body by dt; contained bodies are ignored
func (f *FreeBody) Step(b *components.Body, dt float64) {
	if !b.Escaped() {
		return
	}

	b.Velocity.Y += f.Gravity * dt
	b.Velocity = b.Velocity.Scale(f.Damping)

	f.bounceWalls(b)
	f.bounceFloor(b)
}

// StepAll advances every escaped body
func (f *FreeBody) StepAll(bodies []*components.Body, dt float64) {
	for _, b := range bodies {
		f.Step(b, dt)
	}
}

// bounceWalls reflects velocity components heading into the left, right or top wall
func (f *FreeBody) bounceWalls(b *components.Body) {
	if b.Position.X-b.Radius <= f.Left && b.Velocity.X < 0 {
		b.Position.X = f.Left + b.Radius
		b.Velocity.X = -b.Velocity.X * f.Restitution
	}
	if b.Position.X+b.Radius >= f.Right && b.Velocity.X > 0 {
		b.Position.X = f.Right - b.Radius
		b.Velocity.X = -b.Velocity.X * f.Restitution
	}
	if b.Position.Y-b.Radius <= f.Top && b.Velocity.Y < 0 {
		b.Position.Y = f.Top + b.Radius
		b.Velocity.Y = -b.Velocity.Y * f.Restitution
	}
}

// bounceFloor clamps to the floor and either bounces or settles
func (f *FreeBody) bounceFloor(b *components.Body) {
	if b.Position.Y+b.Radius < f.Floor {
		return
	}
	b.Position.Y = f.Floor - b.Radius
	if math.Abs(b.Velocity.Y) > f.StopSpeed {
		b.Velocity.Y = -b.Velocity.Y * f.Restitution
	} else {
		b.Velocity.Y = 0
	}
	b.Velocity.X *= f.FloorFriction
}

// Resting reports whether the body sits on the floor with no vertical motion
func (f *FreeBody) Resting(b *components.Body) bool {
	return b.Escaped() && b.Velocity.Y == 0 && b.Position.Y+b.Radius >= f.Floor
}
