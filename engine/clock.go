package engine

import (
	"context"
	"time"
)

// Clock is the frame pacer: it waits for the next frame deadline and reports variable dt
// dt is capped at maxStep so a stalled frame cannot tunnel bodies through the ring
type Clock struct {
	provider TimeProvider
	interval time.Duration
	maxStep  float64
	last     time.Time
}

// NewClock creates a clock targeting fps frames per second
func NewClock(provider TimeProvider, fps int, maxStep float64) *Clock {
	if fps <= 0 {
		fps = 60
	}
	return &Clock{
		provider: provider,
		interval: time.Second / time.Duration(fps),
		maxStep:  maxStep,
		last:     provider.Now(),
	}
}

// Interval returns the target frame interval
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Step returns seconds since the previous step, clamped to [0, maxStep]
func (c *Clock) Step() float64 {
	now := c.provider.Now()
	dt := now.Sub(c.last).Seconds()
	c.last = now

	if dt < 0 {
		dt = 0
	}
	if c.maxStep > 0 && dt > c.maxStep {
		dt = c.maxStep
	}
	return dt
}

// Wait blocks until one interval after the previous step, then steps
// Returns ctx.Err() if cancelled first
func (c *Clock) Wait(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	wait := c.last.Add(c.interval).Sub(c.provider.Now())
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
	return c.Step(), nil
}
