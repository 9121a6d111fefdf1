package physics

import (
	"math"

	"github.com/lixenwraith/flag-arena/components"
	"github.com/lixenwraith/flag-arena/vmath"
)

// RingOutcome is the result of testing one body against the ring
type RingOutcome uint8

const (
	RingInside  RingOutcome = iota // Not touching the wall
	RingEscaped                    // Passed through a gap, now free
	RingBounced                    // Reflected off the wall
)

func (o RingOutcome) String() string {
	switch o {
	case RingInside:
		return "inside"
	case RingEscaped:
		return "escaped"
	case RingBounced:
		return "bounced"
	}
	return "unknown"
}

// RingGeometry is the process-wide shape of the containing ring
type RingGeometry struct {
	Center        vmath.Vec2
	Radius        float64
	GapHalfWidth  float64 // radians
	RotationSpeed float64 // radians per second, shared by every gap
}

// Ring is the per-round boundary: geometry plus initial gap angles
type Ring struct {
	RingGeometry
	Gaps []float64 // initial gap center angles in radians
}

// NewRing draws gapCount initial gap angles uniformly in [0, 2π)
func NewRing(geom RingGeometry, gapCount int, rnd func() float64) Ring {
	gaps := make([]float64, gapCount)
	for i := range gaps {
		gaps[i] = rnd() * vmath.TwoPi
	}
	return Ring{RingGeometry: geom, Gaps: gaps}
}

// GapCenter returns the current center angle of gap i at round time t, in [0, 2π)
func (r *Ring) GapCenter(i int, t float64) float64 {
	return vmath.WrapAngle(r.Gaps[i] + r.RotationSpeed*t)
}

// GapCenters returns every gap center at round time t
func (r *Ring) GapCenters(t float64) []float64 {
	centers := make([]float64, len(r.Gaps))
	for i := range r.Gaps {
		centers[i] = r.GapCenter(i, t)
	}
	return centers
}

// InGap reports whether the given angle falls strictly inside any gap window at time t
func (r *Ring) InGap(angle, t float64) bool {
	for i := range r.Gaps {
		if math.Abs(vmath.AngleDiff(angle, r.GapCenter(i, t))) < r.GapHalfWidth {
			return true
		}
	}
	return false
}

// Period returns the time for a full gap revolution, +Inf when the ring does not rotate
func (r *Ring) Period() float64 {
	if r.RotationSpeed == 0 {
		return math.Inf(1)
	}
	return vmath.TwoPi / math.Abs(r.RotationSpeed)
}

// Touching reports whether the disc edge reaches the ring radius
func (r *Ring) Touching(b *components.Body) bool {
	return b.Position.Dist(r.Center)+b.Radius >= r.Radius
}

// Resolve applies the ring to one contained body at round time t
// A body touching the wall inside a gap escapes with its velocity untouched
// Otherwise velocity is reflected about the radial normal and the edge is placed on the ring
func (r *Ring) Resolve(b *components.Body, t float64) RingOutcome {
	if b.Escaped() || !r.Touching(b) {
		return RingInside
	}

	offset := b.Position.Sub(r.Center)
	n, err := offset.Unit()
	if err != nil {
		// Centered body wider than the ring: no wall direction
		return RingInside
	}

	if r.InGap(offset.Angle(), t) {
		b.Escape()
		return RingEscaped
	}

	b.Velocity = b.Velocity.Reflect(n)
	b.Position = r.Center.Add(n.Scale(r.Radius - b.Radius))
	return RingBounced
}
