package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/flag-arena/engine"

func defaultMeter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// roundMetrics holds OTel instruments for the round controller
// Instruments are no-ops unless a global provider is installed
type roundMetrics struct {
	started    metric.Int64Counter
	won        metric.Int64Counter
	aborted    metric.Int64Counter
	collisions metric.Int64Counter
	escapes    metric.Int64Counter
	contained  metric.Int64ObservableGauge

	// Written by Tick, read by the gauge callback on the exporter goroutine
	containedNow atomic.Int64
}

func newRoundMetrics(m metric.Meter) (*roundMetrics, error) {
	rm := &roundMetrics{}
	var err error

	if rm.started, err = m.Int64Counter("arena.rounds.started",
		metric.WithDescription("Rounds started")); err != nil {
		return nil, fmt.Errorf("creating rounds started counter: %w", err)
	}
	if rm.won, err = m.Int64Counter("arena.rounds.won",
		metric.WithDescription("Rounds ending with a single contained body")); err != nil {
		return nil, fmt.Errorf("creating rounds won counter: %w", err)
	}
	if rm.aborted, err = m.Int64Counter("arena.rounds.aborted",
		metric.WithDescription("Rounds where every body escaped")); err != nil {
		return nil, fmt.Errorf("creating rounds aborted counter: %w", err)
	}
	if rm.collisions, err = m.Int64Counter("arena.collisions",
		metric.WithDescription("Resolved pair overlaps and ring wall hits")); err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}
	if rm.escapes, err = m.Int64Counter("arena.escapes",
		metric.WithDescription("Bodies that left the ring through a gap")); err != nil {
		return nil, fmt.Errorf("creating escapes counter: %w", err)
	}
	if rm.contained, err = m.Int64ObservableGauge("arena.bodies.contained",
		metric.WithDescription("Bodies currently inside the ring")); err != nil {
		return nil, fmt.Errorf("creating contained gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			o.ObserveInt64(rm.contained, rm.containedNow.Load())
			return nil
		},
		rm.contained,
	)
	if err != nil {
		return nil, fmt.Errorf("registering contained callback: %w", err)
	}

	return rm, nil
}

func (rm *roundMetrics) add(c metric.Int64Counter, n int) {
	if n > 0 {
		c.Add(context.Background(), int64(n))
	}
}
