// pkg/match/scoreboard.go
package match

import (
	"math/rand/v2"

	"github.com/opd-ai/go-ringbounce/pkg/event"
)

// scoreTable is the weighted set of scores a regulation hit can draw
var scoreTable = []int{0, 1, 1, 1, 2, 2, 2, 2, 2, 2, 3, 3, 4, 5}

// stoppageSpread is how far above the tied score a stoppage hit can draw
const stoppageSpread = 3

// Scoreboard keeps one score per side. Every arena hit replaces the hitting
// side's score with a fresh draw rather than adding to it.
type Scoreboard struct {
	scores   []int
	tieScore int
	stoppage bool
	rng      *rand.Rand
	bus      *event.Bus
	sub      *event.Subscription
}

// NewScoreboard creates a scoreboard for the given number of sides and
// subscribes it to arena hits on bus.
func NewScoreboard(bus *event.Bus, sides int, rng *rand.Rand) *Scoreboard {
	s := &Scoreboard{
		scores: make([]int, sides),
		rng:    rng,
		bus:    bus,
	}
	s.sub = bus.Subscribe(event.ArenaHit, s.handleArenaHit)
	return s
}

func (s *Scoreboard) handleArenaHit(e event.Event) {
	hit, ok := e.(*event.ArenaHitEvent)
	if !ok {
		return
	}
	if hit.BodyIndex < 0 || hit.BodyIndex >= len(s.scores) {
		return
	}
	s.Score(hit.BodyIndex)
}

// Score draws a new score for side and returns it. Regulation draws use the
// weighted table; stoppage draws fall in [tie, tie+3].
func (s *Scoreboard) Score(side int) int {
	var points int
	if s.stoppage {
		points = s.tieScore + s.rng.IntN(stoppageSpread+1)
	} else {
		points = scoreTable[s.rng.IntN(len(scoreTable))]
	}

	s.scores[side] = points
	s.bus.Publish(event.NewScoreEvent(s, side, points))
	return points
}

// EnterStoppage records the tied score that stoppage draws start from
func (s *Scoreboard) EnterStoppage() {
	s.stoppage = true
	if len(s.scores) > 0 {
		s.tieScore = s.scores[0]
	}
}

// Scores returns a copy of the current scores
func (s *Scoreboard) Scores() []int {
	return append([]int(nil), s.scores...)
}

// Leader returns the side with the strictly highest score, or -1 and true
// when the top score is shared.
func (s *Scoreboard) Leader() (int, bool) {
	best, leader, tied := -1, -1, false
	for side, score := range s.scores {
		switch {
		case score > best:
			best, leader, tied = score, side, false
		case score == best:
			tied = true
		}
	}
	if tied {
		return NoWinner, true
	}
	return leader, false
}

// Close stops listening for arena hits
func (s *Scoreboard) Close() {
	s.sub.Cancel()
}
