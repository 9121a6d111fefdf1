package physics

import "github.com/lixenwraith/flag-arena/components"

// Integrate performs explicit Euler position integration: p = p + v*dt
// Applies to every body, contained or escaped
func Integrate(bodies []*components.Body, dt float64) {
	for _, b := range bodies {
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}
}
