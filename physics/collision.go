package physics

import (
	"github.com/lixenwraith/flag-arena/components"
)

// Overlapping reports whether two discs interpenetrate
func Overlapping(a, b *components.Body) bool {
	d := b.Position.Dist(a.Position)
	return d < a.Radius+b.Radius
}

// ResolvePair separates two overlapping discs and exchanges their velocities
// Each body moves half the penetration depth along the center line
// Returns false when the pair does not overlap or the centers coincide
func ResolvePair(a, b *components.Body) bool {
	if !Overlapping(a, b) {
		return false
	}
	delta := b.Position.Sub(a.Position)
	dist := delta.Norm()
	reach := a.Radius + b.Radius

	n, err := delta.Unit()
	if err != nil {
		// Coincident centers have no normal; left for a later frame
		return false
	}

	half := (reach - dist) / 2
	a.Position = a.Position.Sub(n.Scale(half))
	b.Position = b.Position.Add(n.Scale(half))

	// Swap, not a momentum exchange
	a.Velocity, b.Velocity = b.Velocity, a.Velocity
	return true
}

// ResolvePairs resolves every overlapping unordered pair among bodies
// Pairs are visited sequentially in slice order using the state current at visit time
// Returns the number of resolved pairs
func ResolvePairs(bodies []*components.Body) int {
	resolved := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if ResolvePair(bodies[i], bodies[j]) {
				resolved++
			}
		}
	}
	return resolved
}
