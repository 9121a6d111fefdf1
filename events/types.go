package events

import (
	"time"
)

// EventType represents the type of arena event
type EventType int

const (
	// EventCollision signals the frame's resolved pair overlaps and ring wall hits
	// Trigger: Controller, at most once per tick | Payload: *CollisionPayload
	// Consumer: SoundManager (rate-limited hit sound)
	EventCollision EventType = iota

	// EventRoundStart signals a freshly populated arena
	// Trigger: Controller on every round construction | Payload: *RoundPayload
	// Consumer: SoundManager (start voice), log handler
	EventRoundStart

	// EventLastRemaining signals the contained count first reaching the announce threshold
	// Fires at most once per round | Payload: *RemainingPayload
	EventLastRemaining

	// EventRoundWon signals exactly one contained body left | Payload: *WinPayload
	EventRoundWon

	// EventRoundAborted signals every body escaped before a winner emerged
	// Payload: *RoundPayload
	EventRoundAborted
)

func (t EventType) String() string {
	switch t {
	case EventCollision:
		return "collision"
	case EventRoundStart:
		return "roundStart"
	case EventLastRemaining:
		return "lastRemaining"
	case EventRoundWon:
		return "roundWon"
	case EventRoundAborted:
		return "roundAborted"
	}
	return "unknown"
}

// Droppable reports whether the queue may reject the event under load
// Collisions are cosmetic; round boundaries and announcements are not
func (t EventType) Droppable() bool {
	return t == EventCollision
}

// GameEvent represents a single arena event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64
	Timestamp time.Time
}

// Sink accepts events from the simulation core; implementations must not block
type Sink interface {
	Push(event GameEvent)
}

// Discard is a Sink that drops every event
var Discard Sink = discard{}

type discard struct{}

func (discard) Push(GameEvent) {}
