// Package driver runs a world in real time: it ticks at the configured rate,
// hands a snapshot to every sink after each tick and stops on cancellation,
// a tick budget or the end of a match.
package driver

import (
	"context"
	"errors"
	"time"

	"github.com/opd-ai/go-ringbounce/pkg/engine"
	"github.com/opd-ai/go-ringbounce/pkg/event"
	"github.com/opd-ai/go-ringbounce/pkg/logging"
	"github.com/opd-ai/go-ringbounce/pkg/match"
)

// ErrAlreadyRun is returned when Run is called a second time
var ErrAlreadyRun = errors.New("runner already used")

// Reasons a run stops
const (
	ReasonCancelled  = "cancelled"
	ReasonTickLimit  = "tick_limit"
	ReasonMatchEnded = "match_ended"
)

// Result summarises a finished run
type Result struct {
	Ticks   uint64
	Reason  string
	Outcome *match.Outcome
	Stats   engine.Stats
	Dropped uint64
	Elapsed time.Duration
}

// Runner drives a world and an optional match
type Runner struct {
	world    *engine.World
	match    *match.Match
	sinks    []*GuardedSink
	logger   *logging.Logger
	interval time.Duration
	maxTicks uint64
	headless bool
	ran      bool
}

// NewRunner creates a runner for world using the world's runtime settings.
// m may be nil. Every sink is wrapped in its own circuit breaker.
func NewRunner(world *engine.World, m *match.Match, logger *logging.Logger, sinks ...Sink) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	rt := world.Config().Runtime

	r := &Runner{
		world:    world,
		match:    m,
		logger:   logger,
		interval: rt.TickDuration(),
		maxTicks: uint64(rt.MaxTicks),
	}
	for _, s := range sinks {
		r.sinks = append(r.sinks, NewGuardedSink(s, rt.Breaker, logger))
	}
	return r
}

// SetHeadless makes Run tick as fast as possible instead of in real time
func (r *Runner) SetHeadless(headless bool) {
	r.headless = headless
}

// Sinks returns the guarded sinks in registration order
func (r *Runner) Sinks() []*GuardedSink {
	return r.sinks
}

// Run ticks the world until ctx is cancelled, the tick budget is spent or
// the match ends. Cancellation is a normal way to stop and is reported in
// the result rather than as an error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.ran {
		return Result{}, ErrAlreadyRun
	}
	r.ran = true

	ctx = logging.WithRunID(ctx, r.world.RunID())
	start := time.Now()
	bus := r.world.Bus()

	bus.Publish(event.NewLifecycleEvent(event.SimulationStarted, r, r.world.CurrentTick(), ""))
	r.logger.Info(ctx, "simulation started",
		"variant", string(r.world.Config().Variant),
		"seed", r.world.Seed(),
		"tick_rate", r.world.Config().Runtime.TickRate,
		"headless", r.headless,
		"sinks", len(r.sinks),
	)

	r.draw(ctx)

	var reason string
	if r.headless || r.interval <= 0 {
		reason = r.runHeadless(ctx)
	} else {
		reason = r.runPaced(ctx)
	}

	result := Result{
		Ticks:   r.world.CurrentTick(),
		Reason:  reason,
		Stats:   r.world.Stats(),
		Elapsed: time.Since(start),
	}
	if r.match != nil {
		if out, done := r.match.Outcome(); done {
			result.Outcome = &out
		}
	}
	for _, s := range r.sinks {
		result.Dropped += s.Dropped()
	}

	bus.Publish(event.NewLifecycleEvent(event.SimulationStopped, r, result.Ticks, reason))
	r.logger.Info(ctx, "simulation stopped",
		"reason", reason,
		"ticks", result.Ticks,
		"rings_destroyed", result.Stats.RingsDestroyed,
		"incompatible_bounces", result.Stats.IncompatibleBounces,
		"dropped_frames", result.Dropped,
		"elapsed", result.Elapsed.String(),
	)

	return result, nil
}

func (r *Runner) runPaced(ctx context.Context) string {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ReasonCancelled
		case <-ticker.C:
			if reason, stop := r.step(ctx); stop {
				return reason
			}
		}
	}
}

func (r *Runner) runHeadless(ctx context.Context) string {
	for {
		if ctx.Err() != nil {
			return ReasonCancelled
		}
		if reason, stop := r.step(ctx); stop {
			return reason
		}
	}
}

// step runs one tick and reports whether the run should stop
func (r *Runner) step(ctx context.Context) (string, bool) {
	r.world.Tick()

	matchOver := false
	if r.match != nil {
		_, matchOver = r.match.Update()
	}

	r.draw(ctx)

	switch {
	case matchOver:
		return ReasonMatchEnded, true
	case r.maxTicks > 0 && r.world.CurrentTick() >= r.maxTicks:
		return ReasonTickLimit, true
	}
	return "", false
}

// draw hands one snapshot to every sink. Sink errors are logged by the
// guard and never stop the simulation.
func (r *Runner) draw(ctx context.Context) {
	if len(r.sinks) == 0 {
		return
	}
	snap := r.world.Snapshot()
	for _, s := range r.sinks {
		_ = s.Draw(ctx, snap)
	}
}
