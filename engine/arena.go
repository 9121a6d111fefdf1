package engine

import (
	"github.com/lixenwraith/flag-arena/components"
	"github.com/lixenwraith/flag-arena/physics"
)

// Arena is the state of one round; a new Arena replaces it on restart
// Owned exclusively by the Controller and mutated only inside Tick
type Arena struct {
	Round  int
	Bodies []*components.Body
	Ring   physics.Ring

	Elapsed   float64 // round time in seconds, reset per round
	State     RoundState
	Winner    *components.Body
	WinTime   float64 // seconds spent in WIN
	Countdown float64 // seconds left in COUNTDOWN

	total         int
	lastAnnounced bool // "last N" fired this round
}

func newArena(round int, bodies []*components.Body, ring physics.Ring) *Arena {
	return &Arena{
		Round:  round,
		Bodies: bodies,
		Ring:   ring,
		State:  StatePlay,
		total:  len(bodies),
	}
}

// Contained returns the number of bodies still inside the ring
func (a *Arena) Contained() int {
	return components.CountContained(a.Bodies)
}

// Escaped returns the number of free bodies
func (a *Arena) Escaped() int {
	return len(a.Bodies) - a.Contained()
}

// Total returns the number of bodies spawned this round
func (a *Arena) Total() int {
	return a.total
}
