// pkg/render/status_test.go
package render

import (
	"context"
	"strings"
	"testing"

	"github.com/opd-ai/go-ringbounce/pkg/config"
	"github.com/opd-ai/go-ringbounce/pkg/engine"
	"github.com/opd-ai/go-ringbounce/pkg/event"
	"github.com/opd-ai/go-ringbounce/pkg/match"
)

func TestFormatStatus(t *testing.T) {
	cfg, err := config.Preset(config.VariantColiseum)
	if err != nil {
		t.Fatalf("Preset() error: %v", err)
	}
	cfg.Runtime.Seed = 7

	bus := event.NewEventBus()
	world, err := engine.NewWorld(cfg, bus, nil)
	if err != nil {
		t.Fatalf("NewWorld() error: %v", err)
	}
	m := match.New(context.Background(), cfg.Match, cfg.Runtime.TickRate, cfg.Bodies.Count, bus, world.Rand(), world, nil)
	defer m.Close()

	world.Tick()
	m.Update()

	tests := []struct {
		name     string
		snap     *engine.Snapshot
		m        *match.Match
		contains []string
		absent   []string
	}{
		{"nil_snapshot", nil, nil, nil, []string{"tick"}},
		{"world_only", world.Snapshot(), nil, []string{"tick 1", "rings 0", "destroyed 0"}, []string{"00:"}},
		{"with_match", world.Snapshot(), m, []string{"tick 1", "00:19", "0 - 0"}, []string{"wins"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatStatus(tt.snap, tt.m)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("FormatStatus() = %q, missing %q", got, want)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(got, unwanted) {
					t.Errorf("FormatStatus() = %q, should not contain %q", got, unwanted)
				}
			}
		})
	}
}

func TestDescribeOutcome(t *testing.T) {
	tests := []struct {
		name string
		out  match.Outcome
		want string
	}{
		{"time_limit", match.Outcome{Winner: match.NoWinner, Decision: match.DecisionTimeLimit}, "time up"},
		{"regulation", match.Outcome{Winner: 0, Decision: match.DecisionRegulation}, "side 1 wins (regulation)"},
		{"penalties", match.Outcome{Winner: 1, Decision: match.DecisionPenalties}, "side 2 wins (penalties)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeOutcome(tt.out); got != tt.want {
				t.Errorf("describeOutcome() = %q, want %q", got, tt.want)
			}
		})
	}
}
