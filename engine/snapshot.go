package engine

import (
	"github.com/lixenwraith/flag-arena/vmath"
)

// BodyView is a read-only copy of one body for the render sink
type BodyView struct {
	Position vmath.Vec2
	Radius   float64
	Code     string
	Label    string
	Handle   int
	Escaped  bool
}

// Snapshot is the per-frame state handed to the render sink
// It shares no memory with the Arena
type Snapshot struct {
	Round     int
	State     RoundState
	Elapsed   float64
	Bodies    []BodyView
	Winner    int // index into Bodies, -1 when unset
	WinTime   float64
	Countdown int // display value, 0 outside COUNTDOWN

	Contained    int
	Total        int // bodies spawned this round
	Center       vmath.Vec2
	RingRadius   float64
	GapHalfWidth float64
	GapCenters   []float64
}

// WinnerView returns the winner and true when one is set
func (s *Snapshot) WinnerView() (BodyView, bool) {
	if s.Winner < 0 || s.Winner >= len(s.Bodies) {
		return BodyView{}, false
	}
	return s.Bodies[s.Winner], true
}

func (a *Arena) snapshot() Snapshot {
	s := Snapshot{
		Round:        a.Round,
		State:        a.State,
		Elapsed:      a.Elapsed,
		Bodies:       make([]BodyView, len(a.Bodies)),
		Winner:       -1,
		WinTime:      a.WinTime,
		Total:        a.Total(),
		Center:       a.Ring.Center,
		RingRadius:   a.Ring.Radius,
		GapHalfWidth: a.Ring.GapHalfWidth,
		GapCenters:   a.Ring.GapCenters(a.Elapsed),
	}
	for i, b := range a.Bodies {
		s.Bodies[i] = BodyView{
			Position: b.Position,
			Radius:   b.Radius,
			Code:     b.Code,
			Label:    b.Label,
			Handle:   b.Handle,
			Escaped:  b.Escaped(),
		}
		if !b.Escaped() {
			s.Contained++
		}
		if b == a.Winner {
			s.Winner = i
		}
	}
	if a.State == StateCountdown {
		s.Countdown = int(a.Countdown) + 1
	}
	return s
}
