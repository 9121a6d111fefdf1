package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/flag-arena/components"
	"github.com/lixenwraith/flag-arena/events"
	"github.com/lixenwraith/flag-arena/physics"
)

// ControllerConfig is fixed for the life of the process
type ControllerConfig struct {
	Ring     physics.RingGeometry
	GapCount int
	Free     physics.FreeBody

	WinDuration       float64 // seconds in WIN before COUNTDOWN
	CountdownDuration float64 // seconds in COUNTDOWN before restart
	LastThreshold     int     // contained count announced once per round
}

// Controller drives rounds: physics order, termination and the PLAY/WIN/COUNTDOWN machine
// Not safe for concurrent use; Tick and Snapshot belong to the frame loop
type Controller struct {
	cfg     ControllerConfig
	spawner Spawner
	sink    events.Sink
	rng     *rand.Rand
	logger  zerolog.Logger
	meter   metric.Meter
	metrics *roundMetrics
	now     func() time.Time

	arena *Arena
	round int
	frame int64
}

// Option configures a Controller
type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

func WithMeter(m metric.Meter) Option {
	return func(c *Controller) { c.meter = m }
}

// WithTimeProvider stamps events with the given clock
func WithTimeProvider(p TimeProvider) Option {
	return func(c *Controller) { c.now = p.Now }
}

// NewController builds the controller and populates the first round
// Fails when the spawner produces no bodies
func NewController(cfg ControllerConfig, spawner Spawner, sink events.Sink, opts ...Option) (*Controller, error) {
	if sink == nil {
		sink = events.Discard
	}
	c := &Controller{
		cfg:     cfg,
		spawner: spawner,
		sink:    sink,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if c.meter == nil {
		c.meter = defaultMeter()
	}
	c.logger = c.logger.With().Str("component", "controller").Logger()

	m, err := newRoundMetrics(c.meter)
	if err != nil {
		return nil, err
	}
	c.metrics = m

	if err := c.startRound(); err != nil {
		return nil, err
	}
	return c, nil
}

// Arena exposes the current round state; callers must not retain bodies across ticks
func (c *Controller) Arena() *Arena {
	return c.arena
}

// Frame returns the number of ticks processed
func (c *Controller) Frame() int64 {
	return c.frame
}

// Snapshot returns a read-only copy of the current round for rendering
func (c *Controller) Snapshot() Snapshot {
	return c.arena.snapshot()
}

// Tick advances the simulation by dt seconds
// Returns an error only when a restart cannot populate the new round
func (c *Controller) Tick(dt float64) error {
	if dt < 0 {
		dt = 0
	}
	c.frame++
	a := c.arena
	a.Elapsed += dt

	// A transition hands the same dt to the next state within the tick
	switch a.State {
	case StatePlay:
		if err := c.stepPlay(dt); err != nil {
			return err
		}
		if c.arena != a || a.State != StateWin {
			return nil
		}
		fallthrough

	case StateWin:
		a.WinTime += dt
		if a.WinTime < c.cfg.WinDuration {
			return nil
		}
		a.State = StateCountdown
		a.Countdown = c.cfg.CountdownDuration
		c.logger.Debug().Int("round", a.Round).Msg("countdown started")
		fallthrough

	case StateCountdown:
		a.Countdown -= dt
		if a.Countdown <= 0 {
			return c.startRound()
		}
	}
	return nil
}

// stepPlay runs one physics frame in fixed order then evaluates termination
func (c *Controller) stepPlay(dt float64) error {
	a := c.arena

	physics.Integrate(a.Bodies, dt)

	inside := components.Contained(a.Bodies)
	hits := physics.ResolvePairs(inside)

	escapes := 0
	for _, b := range inside {
		switch a.Ring.Resolve(b, a.Elapsed) {
		case physics.RingEscaped:
			escapes++
			c.logger.Debug().Int("round", a.Round).Str("code", b.Code).Float64("elapsed", a.Elapsed).Msg("body escaped")
		case physics.RingBounced:
			hits++
		}
	}

	c.cfg.Free.StepAll(a.Bodies, dt)

	if hits > 0 {
		c.emit(events.EventCollision, &events.CollisionPayload{Count: hits})
	}
	c.metrics.add(c.metrics.collisions, hits)
	c.metrics.add(c.metrics.escapes, escapes)

	remaining := a.Contained()
	c.metrics.containedNow.Store(int64(remaining))

	if c.shouldAnnounce(remaining) {
		a.lastAnnounced = true
		c.emit(events.EventLastRemaining, &events.RemainingPayload{Round: a.Round, Remaining: remaining})
	}

	switch remaining {
	case 0:
		c.logger.Info().Int("round", a.Round).Float64("elapsed", a.Elapsed).Msg("round aborted, every body escaped")
		c.emit(events.EventRoundAborted, &events.RoundPayload{Round: a.Round, Bodies: a.total})
		c.metrics.add(c.metrics.aborted, 1)
		return c.startRound()

	case 1:
		w := components.Contained(a.Bodies)[0]
		a.Winner = w
		a.State = StateWin
		c.logger.Info().Int("round", a.Round).Str("code", w.Code).Str("label", w.Label).Float64("elapsed", a.Elapsed).Msg("round won")
		c.emit(events.EventRoundWon, &events.WinPayload{Round: a.Round, Code: w.Code, Label: w.Label, Elapsed: a.Elapsed})
		c.metrics.add(c.metrics.won, 1)
	}
	return nil
}

// shouldAnnounce fires once per round, the first frame the contained count is at or below the threshold
// Rounds that start with fewer bodies than the threshold never announce
func (c *Controller) shouldAnnounce(remaining int) bool {
	a := c.arena
	th := c.cfg.LastThreshold
	return th > 1 && !a.lastAnnounced && a.total >= th && remaining <= th && remaining > 1
}

// startRound replaces the arena with a freshly populated one
func (c *Controller) startRound() error {
	bodies, err := c.spawner.Spawn(c.rng)
	if err != nil {
		return fmt.Errorf("spawning round %d: %w", c.round+1, err)
	}
	if len(bodies) == 0 {
		return fmt.Errorf("spawning round %d: %w", c.round+1, ErrNoBodies)
	}

	c.round++
	ring := physics.NewRing(c.cfg.Ring, c.cfg.GapCount, c.rng.Float64)
	c.arena = newArena(c.round, bodies, ring)
	c.metrics.containedNow.Store(int64(len(bodies)))

	c.logger.Info().Int("round", c.round).Int("bodies", len(bodies)).Msg("round started")
	c.emit(events.EventRoundStart, &events.RoundPayload{Round: c.round, Bodies: len(bodies)})
	c.metrics.add(c.metrics.started, 1)
	return nil
}

func (c *Controller) emit(t events.EventType, payload any) {
	c.sink.Push(events.GameEvent{
		Type:      t,
		Payload:   payload,
		Frame:     c.frame,
		Timestamp: c.now(),
	})
}
