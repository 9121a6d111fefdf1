package events

// CollisionPayload counts the contacts resolved in one tick
type CollisionPayload struct {
	Count int
}

// RoundPayload describes a round boundary
type RoundPayload struct {
	Round  int
	Bodies int
}

// RemainingPayload carries the contained count that triggered an announcement
type RemainingPayload struct {
	Round     int
	Remaining int
}

// WinPayload identifies the last contained body
type WinPayload struct {
	Round   int
	Code    string
	Label   string
	Elapsed float64 // round time in seconds
}
