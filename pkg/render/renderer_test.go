// pkg/render/renderer_test.go
package render

import (
	"bytes"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/logging"
	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

func newCapturingRenderer() (*NullRenderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewNullRenderer(logging.NewLoggerTo(&buf, slog.LevelDebug)), &buf
}

func TestNullRenderer_ClearAndPresent(t *testing.T) {
	renderer, buf := newCapturingRenderer()

	renderer.Clear()
	renderer.Present()
	renderer.Clear()
	renderer.Present()

	output := buf.String()
	if !strings.Contains(output, "clear called") || !strings.Contains(output, "present called") {
		t.Errorf("expected clear and present to be logged, got: %s", output)
	}
	if renderer.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", renderer.Frames())
	}
}

func TestNullRenderer_LogsEntities(t *testing.T) {
	ring := entity.NewRing(7, physics.Vector2D{X: 240, Y: 427}, 300, entity.Blue, 0)
	body := entity.NewBody(3, physics.Vector2D{X: 10, Y: 20}, 15, entity.Red)
	arena := entity.NewArenaRing(9, physics.Vector2D{X: 240, Y: 427}, 200)

	tests := []struct {
		name     string
		render   func(r *NullRenderer)
		expected []string
	}{
		{
			name:     "body",
			render:   func(r *NullRenderer) { r.RenderBody(body) },
			expected: []string{"render body", `"body_id":3`, `"category":"red"`},
		},
		{
			name:     "ring",
			render:   func(r *NullRenderer) { r.RenderRing(ring) },
			expected: []string{"render ring", `"ring_id":7`, `"radius":300`, `"state":"active"`},
		},
		{
			name:     "arena",
			render:   func(r *NullRenderer) { r.RenderArena(arena) },
			expected: []string{"render arena", `"arena_id":9`, `"pulsing":false`},
		},
		{
			name:     "nil_body",
			render:   func(r *NullRenderer) { r.RenderBody(nil) },
			expected: []string{"nil body"},
		},
		{
			name:     "nil_ring",
			render:   func(r *NullRenderer) { r.RenderRing(nil) },
			expected: []string{"nil ring"},
		},
		{
			name:     "nil_arena",
			render:   func(r *NullRenderer) { r.RenderArena(nil) },
			expected: []string{"nil arena"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer, buf := newCapturingRenderer()
			tt.render(renderer)

			for _, want := range tt.expected {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected log to contain %s, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestNullRenderer_InfoLevelIsSilent(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewNullRenderer(logging.NewLoggerTo(&buf, slog.LevelInfo))

	renderer.Clear()
	renderer.RenderBody(entity.NewBody(1, physics.Vector2D{}, 5, entity.Neutral))
	renderer.Present()

	if buf.Len() != 0 {
		t.Errorf("debug output leaked at info level: %s", buf.String())
	}
}

func TestNullRendererInstance_ImplementsRenderer(t *testing.T) {
	var renderer entity.Renderer = NullRendererInstance

	renderer.Clear()
	renderer.RenderBody(nil)
	renderer.RenderRing(nil)
	renderer.RenderArena(nil)
	renderer.Present()
}

func TestCategoryColor(t *testing.T) {
	tests := []struct {
		name     string
		category entity.Category
		want     color.RGBA
	}{
		{"red", entity.Red, color.RGBA{255, 0, 0, 255}},
		{"blue", entity.Blue, color.RGBA{0, 0, 255, 255}},
		{"unknown", entity.Category(200), color.RGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryColor(tt.category); got != tt.want {
				t.Errorf("CategoryColor(%v) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}

	seen := make(map[color.RGBA]entity.Category)
	for _, c := range entity.Categories() {
		rgba := CategoryColor(c)
		if other, dup := seen[rgba]; dup {
			t.Errorf("%v and %v share a color", c, other)
		}
		seen[rgba] = c
	}
}

func TestFaded(t *testing.T) {
	red := CategoryColor(entity.Red)

	tests := []struct {
		name    string
		opacity int
		wantA   uint8
	}{
		{"opaque", entity.MaxOpacity, 255},
		{"above_max", 400, 255},
		{"half", 51, 51},
		{"gone", 0, 0},
		{"negative", -15, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Faded(red, tt.opacity)
			if got.A != tt.wantA {
				t.Errorf("Faded(%d).A = %d, want %d", tt.opacity, got.A, tt.wantA)
			}
			if got.R != red.R || got.G != red.G || got.B != red.B {
				t.Error("Faded should only change alpha")
			}
		})
	}
}
