// pkg/match/match.go
package match

import (
	"context"
	"math/rand/v2"

	"github.com/opd-ai/go-ringbounce/pkg/config"
	"github.com/opd-ai/go-ringbounce/pkg/event"
	"github.com/opd-ai/go-ringbounce/pkg/logging"
)

// NoWinner is the Winner of an outcome nobody won
const NoWinner = -1

// Decision names how a match was settled
type Decision string

const (
	DecisionRegulation Decision = "regulation"
	DecisionStoppage   Decision = "stoppage"
	DecisionPenalties  Decision = "penalties"
	DecisionTimeLimit  Decision = "time_limit"
)

// Outcome is the final result of a match
type Outcome struct {
	Winner   int
	Decision Decision
	Scores   []int
}

// Resetter puts the bodies back at their launch positions
type Resetter interface {
	ResetBodies()
}

// Match referees a timed run. Without scoring it simply ends when the
// clock runs out.
type Match struct {
	cfg      config.MatchConfig
	clock    *Clock
	board    *Scoreboard
	resetter Resetter
	bus      *event.Bus
	rng      *rand.Rand
	logger   *logging.Logger
	ctx      context.Context
	outcome  *Outcome
}

// New creates a match. With cfg.Scoring a scoreboard for sides players is
// subscribed to bus. A nil logger discards output.
func New(ctx context.Context, cfg config.MatchConfig, tickRate, sides int, bus *event.Bus, rng *rand.Rand, resetter Resetter, logger *logging.Logger) *Match {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	m := &Match{
		cfg:      cfg,
		clock:    NewClock(cfg.Duration, cfg.StoppageTime, tickRate),
		resetter: resetter,
		bus:      bus,
		rng:      rng,
		logger:   logger,
		ctx:      ctx,
	}
	if cfg.Scoring {
		m.board = NewScoreboard(bus, sides, rng)
	}
	return m
}

// Clock returns the match clock
func (m *Match) Clock() *Clock { return m.clock }

// Scoreboard returns the scoreboard, or nil for an unscored match
func (m *Match) Scoreboard() *Scoreboard { return m.board }

// Outcome returns the result once the match has ended
func (m *Match) Outcome() (Outcome, bool) {
	if m.outcome == nil {
		return Outcome{}, false
	}
	return *m.outcome, true
}

// Update advances the clock by one tick and settles the match when a period
// ends. A tie at the end of regulation starts stoppage time and resets the
// bodies; a tie after stoppage goes to a coin flip.
func (m *Match) Update() (Outcome, bool) {
	if m.outcome != nil {
		return *m.outcome, true
	}
	if !m.clock.Tick() {
		return Outcome{}, false
	}

	if m.board == nil {
		return m.finish(NoWinner, DecisionTimeLimit), true
	}

	leader, tied := m.board.Leader()
	if !tied {
		decision := DecisionRegulation
		if m.clock.InStoppage() {
			decision = DecisionStoppage
		}
		return m.finish(leader, decision), true
	}

	if m.clock.StartStoppage() {
		m.board.EnterStoppage()
		if m.resetter != nil {
			m.resetter.ResetBodies()
		}
		m.logger.Info(m.ctx, "regulation ended level, starting stoppage time",
			"scores", m.board.Scores(),
		)
		return Outcome{}, false
	}

	return m.finish(m.rng.IntN(len(m.board.scores)), DecisionPenalties), true
}

func (m *Match) finish(winner int, decision Decision) Outcome {
	var scores []int
	if m.board != nil {
		scores = m.board.Scores()
	}

	m.outcome = &Outcome{Winner: winner, Decision: decision, Scores: scores}
	m.bus.Publish(event.NewMatchEvent(m, scores, winner, string(decision)))
	m.logger.Info(m.ctx, "match ended",
		"winner", winner,
		"decision", string(decision),
		"scores", scores,
	)

	return *m.outcome
}

// Close releases the scoreboard's subscription
func (m *Match) Close() {
	if m.board != nil {
		m.board.Close()
	}
}
