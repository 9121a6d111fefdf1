package engine

import (
	"errors"
	"math/rand/v2"

	"github.com/lixenwraith/flag-arena/components"
	"github.com/lixenwraith/flag-arena/constants"
	"github.com/lixenwraith/flag-arena/vmath"
)

// ErrNoBodies is returned when a round cannot be populated
var ErrNoBodies = errors.New("engine: no bodies to spawn")

// Template describes one flag available for spawning
type Template struct {
	Code   string
	Label  string
	Radius float64
	Handle int
}

// Spawner produces the bodies of a fresh round
type Spawner interface {
	Spawn(rng *rand.Rand) ([]*components.Body, error)
}

// SpawnerFunc adapts a function to Spawner
type SpawnerFunc func(rng *rand.Rand) ([]*components.Body, error)

func (f SpawnerFunc) Spawn(rng *rand.Rand) ([]*components.Body, error) {
	return f(rng)
}

// SpawnConfig controls initial placement and launch speed
type SpawnConfig struct {
	Center      vmath.Vec2
	SpawnRadius float64 // distance budget from center before subtracting body radius and margin
	Margin      float64
	MinSpeed    float64
	MaxSpeed    float64

	Width, Height float64 // play area a spawned disc must lie strictly inside
}

// TemplateSpawner places one body per template around the center
type TemplateSpawner struct {
	templates []Template
	cfg       SpawnConfig
}

func NewTemplateSpawner(templates []Template, cfg SpawnConfig) *TemplateSpawner {
	return &TemplateSpawner{templates: templates, cfg: cfg}
}

// Spawn creates a body for every template with random position and launch velocity
func (s *TemplateSpawner) Spawn(rng *rand.Rand) ([]*components.Body, error) {
	if len(s.templates) == 0 {
		return nil, ErrNoBodies
	}

	bodies := make([]*components.Body, 0, len(s.templates))
	for _, t := range s.templates {
		pos := s.place(rng, t.Radius)
		speed := uniform(rng, s.cfg.MinSpeed, s.cfg.MaxSpeed)
		vel := vmath.FromPolar(rng.Float64()*vmath.TwoPi, speed)
		bodies = append(bodies, components.NewBody(t.Code, t.Label, t.Handle, pos, vel, t.Radius))
	}
	return bodies, nil
}

// place searches for a position keeping the disc inside the play area
// Bounded by MaxPlacementAttempts; the last candidate is accepted on exhaustion
func (s *TemplateSpawner) place(rng *rand.Rand, r float64) vmath.Vec2 {
	var pos vmath.Vec2
	for range constants.MaxPlacementAttempts {
		angle := rng.Float64() * vmath.TwoPi
		dist := uniform(rng, 0, s.cfg.SpawnRadius-r-s.cfg.Margin)
		pos = s.cfg.Center.Add(vmath.FromPolar(angle, dist))
		if s.inBounds(pos, r) {
			break
		}
	}
	return pos
}

func (s *TemplateSpawner) inBounds(p vmath.Vec2, r float64) bool {
	return r < p.X && p.X < s.cfg.Width-r && r < p.Y && p.Y < s.cfg.Height-r
}

// uniform returns a value between lo and hi; hi may be below lo
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
