package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flag-arena/components"
	"github.com/lixenwraith/flag-arena/vmath"
)

const eps = 1e-9

func body(x, y, vx, vy, r float64) *components.Body {
	return components.NewBody("XX", "Test", 0, vmath.V2(x, y), vmath.V2(vx, vy), r)
}

func TestIntegrate(t *testing.T) {
	a := body(0, 0, 10, -20, 5)
	b := body(100, 100, 0, 0, 5)
	b.Escape()

	Integrate([]*components.Body{a, b}, 0.5)

	assert.Equal(t, vmath.V2(5, -10), a.Position)
	assert.Equal(t, vmath.V2(100, 100), b.Position)
}

func TestResolvePair_HeadOn(t *testing.T) {
	a := body(0, 0, 5, 0, 10)
	b := body(5, 0, -5, 0, 10)

	require.True(t, ResolvePair(a, b))

	assert.InDelta(t, 20.0, a.Position.Dist(b.Position), eps)
	assert.InDelta(t, -7.5, a.Position.X, eps)
	assert.InDelta(t, 12.5, b.Position.X, eps)
	assert.InDelta(t, 0.0, a.Position.Y, eps)
	assert.InDelta(t, 0.0, b.Position.Y, eps)
	assert.Equal(t, vmath.V2(-5, 0), a.Velocity)
	assert.Equal(t, vmath.V2(5, 0), b.Velocity)
}

func TestResolvePair_SwapsVelocitiesExactly(t *testing.T) {
	a := body(10, 10, 1.25, -3.5, 7)
	b := body(14, 13, -8, 2, 9)
	va, vb := a.Velocity, b.Velocity

	require.True(t, ResolvePair(a, b))

	assert.Equal(t, vb, a.Velocity)
	assert.Equal(t, va, b.Velocity)
	assert.InDelta(t, 16.0, a.Position.Dist(b.Position), 1e-9)
}

func TestResolvePair_Skips(t *testing.T) {
	t.Run("coincident centers", func(t *testing.T) {
		a := body(3, 3, 1, 0, 10)
		b := body(3, 3, -1, 0, 10)
		assert.False(t, ResolvePair(a, b))
		assert.Equal(t, vmath.V2(1, 0), a.Velocity)
		assert.Equal(t, vmath.V2(3, 3), b.Position)
	})

	t.Run("separated", func(t *testing.T) {
		a := body(0, 0, 1, 0, 10)
		b := body(20, 0, -1, 0, 10)
		assert.False(t, Overlapping(a, b))
		assert.False(t, ResolvePair(a, b))
		assert.Equal(t, vmath.V2(1, 0), a.Velocity)
	})
}

func TestResolvePairs_CountsEveryPair(t *testing.T) {
	bodies := []*components.Body{
		body(0, 0, 1, 0, 10),
		body(5, 0, 2, 0, 10),
		body(500, 500, 3, 0, 10),
		body(505, 500, 4, 0, 10),
	}
	assert.Equal(t, 2, ResolvePairs(bodies))
	assert.Equal(t, 0, ResolvePairs(bodies))
}

func testRing() Ring {
	return Ring{
		RingGeometry: RingGeometry{
			Center:        vmath.V2(270, 480),
			Radius:        178,
			GapHalfWidth:  vmath.Radians(15),
			RotationSpeed: vmath.Radians(20),
		},
		Gaps: []float64{vmath.Radians(90)},
	}
}

func TestRing_EscapeThroughGap(t *testing.T) {
	ring := testRing()
	const r = 16.0
	// 1° inside the edge of the 30° window centered on 90°
	angle := vmath.Radians(90 + 14)
	pos := ring.Center.Add(vmath.FromPolar(angle, ring.Radius-r+1))
	b := components.NewBody("IN", "India", 0, pos, vmath.V2(40, 60), r)

	out := ring.Resolve(b, 0)

	assert.Equal(t, RingEscaped, out)
	assert.True(t, b.Escaped())
	assert.Equal(t, vmath.V2(40, 60), b.Velocity)
	assert.Equal(t, pos, b.Position)
}

func TestRing_WallBounce(t *testing.T) {
	ring := testRing()
	const r = 16.0
	angle := vmath.Radians(270)
	pos := ring.Center.Add(vmath.FromPolar(angle, ring.Radius-r+4))
	vel := vmath.FromPolar(angle, 300)
	b := components.NewBody("FR", "France", 0, pos, vel, r)

	out := ring.Resolve(b, 0)

	require.Equal(t, RingBounced, out)
	assert.False(t, b.Escaped())
	assert.InDelta(t, ring.Radius, b.Position.Dist(ring.Center)+r, 1e-9)
	// Outward radial velocity is now inward with the same speed
	assert.InDelta(t, -300.0, b.Velocity.Dot(vmath.FromPolar(angle, 1)), 1e-9)
	assert.InDelta(t, 300.0, b.Velocity.Norm(), 1e-9)
}

func TestRing_InsideUntouched(t *testing.T) {
	ring := testRing()
	b := body(ring.Center.X+10, ring.Center.Y, 50, 0, 16)
	assert.Equal(t, RingInside, ring.Resolve(b, 0))
	assert.Equal(t, vmath.V2(50, 0), b.Velocity)
}

func TestRing_GapRotates(t *testing.T) {
	ring := testRing()
	// After 4.5s at 20°/s the gap center moved from 90° to 180°
	assert.InDelta(t, math.Pi, ring.GapCenter(0, 4.5), 1e-9)
	assert.True(t, ring.InGap(vmath.Radians(185), 4.5))
	assert.False(t, ring.InGap(vmath.Radians(90), 4.5))
}

func TestRing_GapPeriodicity(t *testing.T) {
	ring := testRing()
	ring.Gaps = append(ring.Gaps, 1.234)
	period := ring.Period()
	assert.InDelta(t, 18.0, period, 1e-9)

	for _, ts := range []float64{0, 0.7, 3.3, 11.9, 42} {
		for i := range ring.Gaps {
			a := ring.GapCenter(i, ts)
			b := ring.GapCenter(i, ts+period)
			assert.InDelta(t, 0.0, vmath.AngleDiff(a, b), 1e-9)
		}
	}
}

func TestNewRing(t *testing.T) {
	vals := []float64{0, 0.5, 0.999}
	i := 0
	ring := NewRing(testRing().RingGeometry, 3, func() float64 {
		v := vals[i]
		i++
		return v
	})
	require.Len(t, ring.Gaps, 3)
	assert.InDelta(t, math.Pi, ring.Gaps[1], eps)
	for _, g := range ring.Gaps {
		assert.GreaterOrEqual(t, g, 0.0)
		assert.Less(t, g, vmath.TwoPi)
	}
}

func testFreeBody() FreeBody {
	return FreeBody{
		Gravity:       260,
		Damping:       0.995,
		Restitution:   0.35,
		StopSpeed:     8,
		FloorFriction: 0.98,
		Left:          0,
		Right:         540,
		Top:           0,
		Floor:         920,
	}
}

func TestFreeBody_IgnoresContained(t *testing.T) {
	f := testFreeBody()
	b := body(270, 480, 10, 10, 16)
	f.Step(b, 0.1)
	assert.Equal(t, vmath.V2(10, 10), b.Velocity)
}

func TestFreeBody_GravityAndDamping(t *testing.T) {
	f := testFreeBody()
	b := body(270, 300, 100, 0, 16)
	b.Escape()

	f.Step(b, 0.1)

	assert.InDelta(t, 100*0.995, b.Velocity.X, eps)
	assert.InDelta(t, 26*0.995, b.Velocity.Y, eps)
}

func TestFreeBody_Walls(t *testing.T) {
	tests := []struct {
		name    string
		x, y    float64
		vx, vy  float64
		wantPos vmath.Vec2
		wantVX  float64
		wantVY  float64
	}{
		{"left", 5, 300, -100, 0, vmath.V2(16, 300), 100 * 0.995 * 0.35, 0},
		{"right", 535, 300, 100, 0, vmath.V2(524, 300), -100 * 0.995 * 0.35, 0},
		{"top", 270, 3, 0, -1000, vmath.V2(270, 16), 0, -(-1000*0.995 + 0) * 0.35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFreeBody()
			f.Gravity = 0
			b := body(tt.x, tt.y, tt.vx, tt.vy, 16)
			b.Escape()

			f.Step(b, 0.016)

			assert.InDelta(t, tt.wantPos.X, b.Position.X, eps)
			assert.InDelta(t, tt.wantPos.Y, b.Position.Y, eps)
			assert.InDelta(t, tt.wantVX, b.Velocity.X, eps)
			assert.InDelta(t, tt.wantVY, b.Velocity.Y, eps)
		})
	}
}

func TestFreeBody_WallIgnoresOutgoingVelocity(t *testing.T) {
	f := testFreeBody()
	f.Gravity = 0
	b := body(5, 300, 50, 0, 16)
	b.Escape()

	f.Step(b, 0.016)

	assert.InDelta(t, 5.0, b.Position.X, eps)
	assert.InDelta(t, 50*0.995, b.Velocity.X, eps)
}

func TestFreeBody_FloorBounce(t *testing.T) {
	f := testFreeBody()
	f.Gravity = 0
	b := body(270, 915, 100, 200, 16)
	b.Escape()

	f.Step(b, 0.016)

	assert.InDelta(t, 904.0, b.Position.Y, eps)
	assert.InDelta(t, -200*0.995*0.35, b.Velocity.Y, eps)
	assert.InDelta(t, 100*0.995*0.98, b.Velocity.X, eps)
	assert.False(t, f.Resting(b))
}

func TestFreeBody_FloorSettles(t *testing.T) {
	f := testFreeBody()
	f.Gravity = 0
	b := body(270, 910, 10, 5, 16)
	b.Escape()

	f.Step(b, 0.016)

	assert.InDelta(t, 904.0, b.Position.Y, eps)
	assert.Equal(t, 0.0, b.Velocity.Y)
	assert.InDelta(t, 10*0.995*0.98, b.Velocity.X, eps)
	assert.True(t, f.Resting(b))
}

func TestFreeBody_FloorJitterStaysBounded(t *testing.T) {
	f := testFreeBody()
	b := body(270, 400, 120, -50, 16)
	b.Escape()

	// At 60 fps gravity adds more than StopSpeed between impacts,
	// so the body keeps a small bounce cycle instead of settling
	const dt = 1.0 / 60
	bodies := []*components.Body{b}
	for i := 0; i < 60*30; i++ {
		Integrate(bodies, dt)
		f.StepAll(bodies, dt)

		if i >= 60*28 {
			assert.LessOrEqual(t, b.Position.Y, f.Floor-b.Radius, "frame %d", i)
			assert.GreaterOrEqual(t, b.Position.Y, f.Floor-b.Radius-0.1, "frame %d", i)
		}
	}

	assert.Less(t, math.Abs(b.Velocity.X), 1e-3)
	assert.GreaterOrEqual(t, b.Position.X-b.Radius, f.Left)
	assert.LessOrEqual(t, b.Position.X+b.Radius, f.Right)
}

func TestFreeBody_EventuallyRests(t *testing.T) {
	tests := []struct {
		name    string
		gravity float64
		dt      float64
	}{
		{"fine step", 260, 1.0 / 240},
		{"low gravity", 60, 1.0 / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFreeBody()
			f.Gravity = tt.gravity
			b := body(270, 400, 120, -50, 16)
			b.Escape()

			bodies := []*components.Body{b}
			steps := int(30 / tt.dt)
			for i := 0; i < steps; i++ {
				Integrate(bodies, tt.dt)
				f.StepAll(bodies, tt.dt)
			}

			assert.True(t, f.Resting(b))
			assert.InDelta(t, f.Floor-b.Radius, b.Position.Y, eps)

			// Resting persists
			Integrate(bodies, tt.dt)
			f.StepAll(bodies, tt.dt)
			assert.True(t, f.Resting(b))
		})
	}
}
