// pkg/driver/sink.go
package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-ringbounce/pkg/config"
	"github.com/opd-ai/go-ringbounce/pkg/engine"
	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/logging"
	"github.com/opd-ai/go-ringbounce/pkg/match"
	"github.com/opd-ai/go-ringbounce/pkg/render"
)

// ErrSinkUnavailable is returned when a sink's breaker is refusing frames
var ErrSinkUnavailable = errors.New("sink unavailable")

// Sink receives a snapshot of the world after every tick
type Sink interface {
	Name() string
	Draw(snap *engine.Snapshot) error
}

// SinkFunc adapts a function to a Sink
type SinkFunc struct {
	SinkName string
	Fn       func(snap *engine.Snapshot) error
}

// Name implements Sink
func (f SinkFunc) Name() string { return f.SinkName }

// Draw implements Sink
func (f SinkFunc) Draw(snap *engine.Snapshot) error { return f.Fn(snap) }

// RendererSink draws snapshots with an entity.Renderer. Renderers that show
// a status line get one per frame; renderers with an Err method can report
// that they stopped working.
type RendererSink struct {
	name     string
	renderer entity.Renderer
	match    *match.Match
}

// NewRendererSink creates a sink for renderer. m may be nil.
func NewRendererSink(name string, renderer entity.Renderer, m *match.Match) *RendererSink {
	return &RendererSink{name: name, renderer: renderer, match: m}
}

// Name implements Sink
func (s *RendererSink) Name() string { return s.name }

// Draw implements Sink
func (s *RendererSink) Draw(snap *engine.Snapshot) error {
	if st, ok := s.renderer.(render.Statuser); ok {
		st.SetStatus(render.FormatStatus(snap, s.match))
	}
	snap.Render(s.renderer)
	if e, ok := s.renderer.(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}

// GuardedSink runs a sink behind a circuit breaker. After enough
// consecutive failures the breaker opens and frames are dropped without
// calling the sink until the breaker's timeout lets a trial frame through.
type GuardedSink struct {
	sink    Sink
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
	dropped uint64
}

// NewGuardedSink wraps sink with a breaker configured from cfg
func NewGuardedSink(sink Sink, cfg config.BreakerConfig, logger *logging.Logger) *GuardedSink {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	settings := gobreaker.Settings{
		Name:        sink.Name(),
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxConsecutiveFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "sink breaker state changed",
				"sink", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &GuardedSink{
		sink:    sink,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Draw passes the snapshot to the sink through the breaker
func (g *GuardedSink) Draw(ctx context.Context, snap *engine.Snapshot) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		return nil, g.sink.Draw(snap)
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		g.dropped++
		g.logger.LogWithContext(ctx, slog.LevelDebug, "frame dropped",
			"sink", g.sink.Name(),
			"tick", snap.Tick,
			"state", g.breaker.State().String(),
		)
		return fmt.Errorf("%w: %s: %w", ErrSinkUnavailable, g.sink.Name(), err)
	}

	g.logger.LogWithContext(ctx, slog.LevelWarn, "sink failed",
		"sink", g.sink.Name(),
		"tick", snap.Tick,
		"error", err,
	)
	return fmt.Errorf("sink %s: %w", g.sink.Name(), err)
}

// Name returns the wrapped sink's name
func (g *GuardedSink) Name() string { return g.sink.Name() }

// State returns the current state of the breaker
func (g *GuardedSink) State() gobreaker.State { return g.breaker.State() }

// Counts returns the breaker's request counts for the current interval
func (g *GuardedSink) Counts() gobreaker.Counts { return g.breaker.Counts() }

// Dropped returns how many frames the open breaker refused
func (g *GuardedSink) Dropped() uint64 { return g.dropped }
