package engine

// RoundState is the round life-cycle phase
type RoundState uint8

const (
	StatePlay      RoundState = iota // Bodies moving, ring active
	StateWin                         // Winner on display
	StateCountdown                   // Counting down to the next round
)

func (s RoundState) String() string {
	switch s {
	case StatePlay:
		return "PLAY"
	case StateWin:
		return "WIN"
	case StateCountdown:
		return "COUNTDOWN"
	}
	return "UNKNOWN"
}
