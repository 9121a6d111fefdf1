package events

import "github.com/rs/zerolog"

// LogHandler records round-level events; collisions are logged only at trace level
type LogHandler struct {
	logger zerolog.Logger
}

func NewLogHandler(logger zerolog.Logger) *LogHandler {
	return &LogHandler{logger: logger.With().Str("component", "events").Logger()}
}

func (h *LogHandler) EventTypes() []EventType {
	return []EventType{EventCollision, EventRoundStart, EventLastRemaining, EventRoundWon, EventRoundAborted}
}

func (h *LogHandler) HandleEvent(ev GameEvent) {
	var e *zerolog.Event
	if ev.Type == EventCollision {
		e = h.logger.Trace()
	} else {
		e = h.logger.Debug()
	}
	e = e.Str("event", ev.Type.String()).Int64("frame", ev.Frame)

	switch p := ev.Payload.(type) {
	case *CollisionPayload:
		e = e.Int("count", p.Count)
	case *RoundPayload:
		e = e.Int("round", p.Round).Int("bodies", p.Bodies)
	case *RemainingPayload:
		e = e.Int("round", p.Round).Int("remaining", p.Remaining)
	case *WinPayload:
		e = e.Int("round", p.Round).Str("code", p.Code).Str("label", p.Label).Float64("elapsed", p.Elapsed)
	}
	e.Msg("arena event")
}
