// pkg/render/status.go
package render

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-ringbounce/pkg/engine"
	"github.com/opd-ai/go-ringbounce/pkg/match"
)

// Statuser is implemented by renderers that can show a line of text
// alongside the playfield.
type Statuser interface {
	SetStatus(status string)
}

// FormatStatus summarises a frame in one line: tick, live rings and
// counters, then the match clock and scores when a match is running.
func FormatStatus(snap *engine.Snapshot, m *match.Match) string {
	if snap == nil {
		return ""
	}

	live := 0
	for i := range snap.Rings {
		if snap.Rings[i].Collidable() {
			live++
		}
	}

	parts := []string{
		fmt.Sprintf("tick %d", snap.Tick),
		fmt.Sprintf("rings %d", live),
		fmt.Sprintf("destroyed %d", snap.Stats.RingsDestroyed),
	}
	if snap.Stats.IncompatibleBounces > 0 {
		parts = append(parts, fmt.Sprintf("deflected %d", snap.Stats.IncompatibleBounces))
	}

	if m != nil {
		parts = append(parts, m.Clock().String())
		if board := m.Scoreboard(); board != nil {
			scores := make([]string, 0, 2)
			for _, s := range board.Scores() {
				scores = append(scores, fmt.Sprint(s))
			}
			parts = append(parts, strings.Join(scores, " - "))
		}
		if out, done := m.Outcome(); done {
			parts = append(parts, describeOutcome(out))
		}
	}

	return " " + strings.Join(parts, " | ")
}

func describeOutcome(out match.Outcome) string {
	if out.Winner == match.NoWinner {
		return "time up"
	}
	return fmt.Sprintf("side %d wins (%s)", out.Winner+1, out.Decision)
}
