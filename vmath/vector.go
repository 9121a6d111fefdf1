package vmath

import (
	"errors"
	"math"
)

// ErrDegenerateVector is returned when a direction is requested from a zero-length vector
var ErrDegenerateVector = errors.New("vmath: degenerate vector")

// Vec2 is a float64 2D vector used by the arena physics
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// NormSq returns squared magnitude without sqrt
func (v Vec2) NormSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Norm returns the Euclidean length
func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between two points
func (v Vec2) Dist(w Vec2) float64 {
	return w.Sub(v).Norm()
}

// Unit returns the unit vector in the direction of v
// Zero-length input yields ErrDegenerateVector; callers treat it as a no-op
func (v Vec2) Unit() (Vec2, error) {
	n := v.Norm()
	if n == 0 {
		return Vec2{}, ErrDegenerateVector
	}
	inv := 1.0 / n
	return Vec2{v.X * inv, v.Y * inv}, nil
}

// Reflect returns v reflected off a surface with unit normal n
// v' = v - 2 * dot(v, n) * n
func (v Vec2) Reflect(n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Angle returns atan2(y, x)
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// FromPolar builds a vector of length r at angle a
func FromPolar(a, r float64) Vec2 {
	return Vec2{math.Cos(a) * r, math.Sin(a) * r}
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
