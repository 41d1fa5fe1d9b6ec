// pkg/render/terminal_test.go
package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// gridSurface records drawn cells so frames can be inspected
type gridSurface struct {
	cols, rows int
	cells      map[[2]int]rune
	shown      int
}

func newGridSurface(cols, rows int) *gridSurface {
	return &gridSurface{cols: cols, rows: rows, cells: make(map[[2]int]rune)}
}

func (g *gridSurface) SetContent(x, y int, primary rune, _ []rune, _ tcell.Style) {
	g.cells[[2]int{x, y}] = primary
}

func (g *gridSurface) Size() (int, int) { return g.cols, g.rows }

func (g *gridSurface) Clear() { g.cells = make(map[[2]int]rune) }

func (g *gridSurface) Show() { g.shown++ }

func (g *gridSurface) count(ch rune) int {
	n := 0
	for _, c := range g.cells {
		if c == ch {
			n++
		}
	}
	return n
}

func (g *gridSurface) line(y int) string {
	var b strings.Builder
	for x := 0; x < g.cols; x++ {
		if c, ok := g.cells[[2]int{x, y}]; ok {
			b.WriteRune(c)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func TestTerminalRenderer_Layout(t *testing.T) {
	tests := []struct {
		name     string
		cols     int
		rows     int
		wantUnit float64
	}{
		{"tall_world_limited_by_height", 80, 25, 854.0 / 48},
		{"wide_terminal", 200, 61, 854.0 / 120},
		{"narrow_terminal", 20, 100, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTerminalRenderer(newGridSurface(tt.cols, tt.rows), 480, 854)
			if diff := r.unit - tt.wantUnit; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("unit = %v, want %v", r.unit, tt.wantUnit)
			}

			x0, y0 := r.worldToScreen(physics.Vector2D{X: 0, Y: 0})
			x1, y1 := r.worldToScreen(physics.Vector2D{X: 479.9, Y: 853.9})
			if x0 < 0 || x1 >= tt.cols {
				t.Errorf("world spans columns %d..%d outside 0..%d", x0, x1, tt.cols-1)
			}
			if y0 < 1 || y1 >= tt.rows {
				t.Errorf("world spans rows %d..%d outside 1..%d", y0, y1, tt.rows-1)
			}
		})
	}
}

func TestTerminalRenderer_TinyScreenDrawsNothing(t *testing.T) {
	grid := newGridSurface(10, 1)
	r := newTerminalRenderer(grid, 480, 854)

	r.Clear()
	r.RenderBody(entity.NewBody(1, physics.Vector2D{X: 240, Y: 427}, 15, entity.Red))
	r.RenderRing(entity.NewRing(2, physics.Vector2D{X: 240, Y: 427}, 100, entity.Red, 0))

	if len(grid.cells) != 0 {
		t.Errorf("expected no cells on a screen without a playfield, got %d", len(grid.cells))
	}
}

func TestTerminalRenderer_DrawsFrame(t *testing.T) {
	grid := newGridSurface(80, 25)
	r := newTerminalRenderer(grid, 480, 854)
	center := physics.Vector2D{X: 240, Y: 427}

	r.SetStatus("tick 12")
	r.Clear()
	r.RenderArena(entity.NewArenaRing(1, center, 200))
	r.RenderRing(entity.NewRing(2, center, 300, entity.Blue, 0))
	r.RenderBody(entity.NewBody(3, center, 15, entity.Red))
	r.Present()

	if grid.shown != 1 {
		t.Errorf("Show called %d times, want 1", grid.shown)
	}
	if !strings.HasPrefix(grid.line(0), "tick 12") {
		t.Errorf("status line = %q", grid.line(0))
	}
	if grid.count(arenaGlyph) == 0 {
		t.Error("arena outline not drawn")
	}
	if grid.count(ringGlyph) == 0 {
		t.Error("ring outline not drawn")
	}

	cx, cy := r.worldToScreen(center)
	if grid.cells[[2]int{cx, cy}] != bodyCenterGlyph {
		t.Errorf("cell at body center = %q, want %q", grid.cells[[2]int{cx, cy}], bodyCenterGlyph)
	}
}

func TestTerminalRenderer_RingStates(t *testing.T) {
	center := physics.Vector2D{X: 240, Y: 427}

	fading := entity.NewRing(1, center, 200, entity.Red, 0)
	fading.Destroy()
	fading.Update(entity.RingParams{DecayRate: 1, MinRadius: 10, FadeRate: entity.DefaultFadeRate})

	gone := entity.NewRing(2, center, 200, entity.Red, 0)
	gone.Destroy()
	for i := 0; i < 20; i++ {
		gone.Update(entity.RingParams{DecayRate: 1, MinRadius: 10, FadeRate: entity.DefaultFadeRate})
	}

	tests := []struct {
		name  string
		ring  *entity.Ring
		glyph rune
		drawn bool
	}{
		{"active", entity.NewRing(3, center, 200, entity.Red, 0), ringGlyph, true},
		{"fading", fading, fadingRingGlyph, true},
		{"faded_out", gone, fadingRingGlyph, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := newGridSurface(80, 25)
			r := newTerminalRenderer(grid, 480, 854)
			r.Clear()
			r.RenderRing(tt.ring)

			if got := grid.count(tt.glyph) > 0; got != tt.drawn {
				t.Errorf("ring drawn = %v, want %v", got, tt.drawn)
			}
		})
	}
}

func TestTerminalRenderer_PulsingArena(t *testing.T) {
	grid := newGridSurface(80, 25)
	r := newTerminalRenderer(grid, 480, 854)

	arena := entity.NewArenaRing(1, physics.Vector2D{X: 240, Y: 427}, 200)
	arena.StartPulse()

	r.Clear()
	r.RenderArena(arena)

	if grid.count(pulseGlyph) == 0 || grid.count(arenaGlyph) != 0 {
		t.Error("a pulsing arena should be drawn with the pulse glyph")
	}
}

func TestTerminalRenderer_ClipsToPlayfield(t *testing.T) {
	grid := newGridSurface(40, 12)
	r := newTerminalRenderer(grid, 480, 854)

	r.Clear()
	r.RenderRing(entity.NewRing(1, physics.Vector2D{X: 240, Y: 0}, 2000, entity.Green, 0))
	r.RenderBody(entity.NewBody(2, physics.Vector2D{X: -50, Y: -50}, 15, entity.Red))

	for pos := range grid.cells {
		if pos[0] < 0 || pos[0] >= 40 || pos[1] < 1 || pos[1] >= 12 {
			t.Fatalf("cell %v drawn outside the playfield", pos)
		}
	}
}

func TestTerminalRenderer_StatusTruncated(t *testing.T) {
	grid := newGridSurface(10, 5)
	r := newTerminalRenderer(grid, 480, 854)

	r.SetStatus("a status line longer than the screen")
	r.Present()

	if got := grid.line(0); got != "a status l" {
		t.Errorf("status line = %q", got)
	}
}

func TestTerminalRenderer_SimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	screen.SetSize(80, 24)

	r := NewTerminalRendererOn(screen, 480, 854)
	if err := r.Err(); err != nil {
		t.Fatalf("Err() = %v before close", err)
	}

	r.Clear()
	r.RenderBody(entity.NewBody(1, physics.Vector2D{X: 240, Y: 427}, 15, entity.Red))
	r.Present()

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	if !errors.Is(r.Err(), ErrScreenClosed) {
		t.Errorf("Err() = %v after close, want ErrScreenClosed", r.Err())
	}

	// Presenting on a released screen is a no-op
	r.Present()
}

func TestIsQuitKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		want bool
	}{
		{"escape", tcell.KeyEscape, 0, true},
		{"ctrl_c", tcell.KeyCtrlC, 0, true},
		{"q", tcell.KeyRune, 'q', true},
		{"upper_q", tcell.KeyRune, 'Q', true},
		{"other_rune", tcell.KeyRune, 'x', false},
		{"enter", tcell.KeyEnter, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuitKey(tt.key, tt.ch); got != tt.want {
				t.Errorf("isQuitKey(%v, %q) = %v, want %v", tt.key, tt.ch, got, tt.want)
			}
		})
	}
}
