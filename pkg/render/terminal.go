// pkg/render/terminal.go
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// ErrScreenClosed is returned by Err once the terminal has been released
var ErrScreenClosed = errors.New("terminal screen closed")

const (
	bodyGlyph       = '█'
	bodyCenterGlyph = '●'
	ringGlyph       = 'o'
	fadingRingGlyph = '.'
	arenaGlyph      = '*'
	pulseGlyph      = '#'
)

// surface is the part of tcell.Screen the renderer draws on
type surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
	Clear()
	Show()
}

// TerminalRenderer draws the simulation into a terminal with tcell. The
// world is scaled to fit below a one-line status bar; a terminal cell is
// treated as twice as tall as it is wide.
type TerminalRenderer struct {
	screen  tcell.Screen
	surface surface

	worldWidth  float64
	worldHeight float64

	cols, rows       int
	unit             float64
	offsetX, offsetY int

	status string

	mu     sync.Mutex
	closed bool
	once   sync.Once
}

// NewTerminalRenderer takes over the terminal and returns a renderer for a
// world of the given size. Close must be called to restore the terminal.
func NewTerminalRenderer(worldWidth, worldHeight float64) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return NewTerminalRendererOn(screen, worldWidth, worldHeight), nil
}

// NewTerminalRendererOn draws on an already initialised screen, such as a
// tcell simulation screen.
func NewTerminalRendererOn(screen tcell.Screen, worldWidth, worldHeight float64) *TerminalRenderer {
	screen.HideCursor()
	r := newTerminalRenderer(screen, worldWidth, worldHeight)
	r.screen = screen
	return r
}

func newTerminalRenderer(s surface, worldWidth, worldHeight float64) *TerminalRenderer {
	r := &TerminalRenderer{
		surface:     s,
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
	}
	r.layout()
	return r
}

// layout fits the world into the current screen size
func (r *TerminalRenderer) layout() {
	r.cols, r.rows = r.surface.Size()
	avail := r.rows - 1
	if r.cols <= 0 || avail <= 0 {
		r.unit = 0
		return
	}

	r.unit = math.Max(r.worldWidth/float64(r.cols), r.worldHeight/(2*float64(avail)))
	drawnCols := int(r.worldWidth / r.unit)
	drawnRows := int(r.worldHeight / (2 * r.unit))
	r.offsetX = (r.cols - drawnCols) / 2
	r.offsetY = 1 + (avail-drawnRows)/2
}

// worldToScreen converts world coordinates to a cell position
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	x := r.offsetX + int(math.Floor(pos.X/r.unit))
	y := r.offsetY + int(math.Floor(pos.Y/(2*r.unit)))
	return x, y
}

// cellCenter returns the world position at the middle of a cell
func (r *TerminalRenderer) cellCenter(x, y int) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(x-r.offsetX) + 0.5) * r.unit,
		Y: (float64(y-r.offsetY) + 0.5) * 2 * r.unit,
	}
}

// setCell draws inside the playfield only; row 0 belongs to the status bar
func (r *TerminalRenderer) setCell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.cols || y < 1 || y >= r.rows {
		return
	}
	r.surface.SetContent(x, y, ch, nil, style)
}

// SetStatus sets the text shown on the top line at the next Present
func (r *TerminalRenderer) SetStatus(status string) {
	r.status = status
}

// Clear implements entity.Renderer.
func (r *TerminalRenderer) Clear() {
	r.layout()
	r.surface.Clear()
}

// RenderBody implements entity.Renderer.
func (r *TerminalRenderer) RenderBody(body *entity.Body) {
	if body == nil || r.unit == 0 {
		return
	}
	style := styleFor(CategoryColor(body.Category()), entity.MaxOpacity)
	radius := body.Radius()

	x0, y0 := r.worldToScreen(body.Position.Sub(physics.Vector2D{X: radius, Y: radius}))
	x1, y1 := r.worldToScreen(body.Position.Add(physics.Vector2D{X: radius, Y: radius}))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if r.cellCenter(x, y).Distance(body.Position) <= radius {
				r.setCell(x, y, bodyGlyph, style)
			}
		}
	}

	cx, cy := r.worldToScreen(body.Position)
	r.setCell(cx, cy, bodyCenterGlyph, style)
}

// RenderRing implements entity.Renderer.
func (r *TerminalRenderer) RenderRing(ring *entity.Ring) {
	if ring == nil || r.unit == 0 || ring.Opacity() <= 0 {
		return
	}
	glyph := ringGlyph
	style := styleFor(CategoryColor(ring.Category()), ring.Opacity())
	if ring.IsDestroyed() {
		glyph = fadingRingGlyph
		style = style.Dim(true)
	}
	r.drawCircle(ring.Position, ring.Radius(), glyph, style)
}

// RenderArena implements entity.Renderer.
func (r *TerminalRenderer) RenderArena(arena *entity.ArenaRing) {
	if arena == nil || r.unit == 0 {
		return
	}
	glyph := arenaGlyph
	style := styleFor(ArenaColor, entity.MaxOpacity)
	if arena.Pulsing() {
		glyph = pulseGlyph
		style = style.Bold(true)
	}
	r.drawCircle(arena.Position, arena.Radius(), glyph, style)
}

// drawCircle plots a circle outline by sampling it about once per cell
func (r *TerminalRenderer) drawCircle(center physics.Vector2D, radius float64, glyph rune, style tcell.Style) {
	if radius <= 0 {
		return
	}
	steps := int(2*math.Pi*radius/r.unit) + 8
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		p := physics.Vector2D{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
		x, y := r.worldToScreen(p)
		r.setCell(x, y, glyph, style)
	}
}

// Present implements entity.Renderer.
func (r *TerminalRenderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	col := 0
	for _, ch := range r.status {
		if col >= r.cols {
			break
		}
		r.surface.SetContent(col, 0, ch, nil, style)
		col++
	}
	for ; col < r.cols; col++ {
		r.surface.SetContent(col, 0, ' ', nil, style)
	}

	r.surface.Show()
}

// WatchInput polls terminal events in the background and calls quit when
// the user presses Escape, Ctrl-C or q. Resizes are handled by re-laying
// out the next frame.
func (r *TerminalRenderer) WatchInput(quit func()) {
	if r.screen == nil {
		return
	}
	go func() {
		for {
			switch ev := r.screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if isQuitKey(ev.Key(), ev.Rune()) {
					quit()
					return
				}
			case *tcell.EventResize:
				r.screen.Sync()
			}
		}
	}()
}

func isQuitKey(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ch == 'q' || ch == 'Q'
	}
	return false
}

// Err reports whether the renderer can still draw
func (r *TerminalRenderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrScreenClosed
	}
	return nil
}

// Close restores the terminal. It is safe to call more than once.
func (r *TerminalRenderer) Close() error {
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		if r.screen != nil {
			r.screen.Fini()
		}
	})
	return nil
}

// styleFor maps a color and opacity to a terminal style. Terminals have no
// alpha, so opacity darkens the color instead.
func styleFor(c color.RGBA, opacity int) tcell.Style {
	if opacity > entity.MaxOpacity {
		opacity = entity.MaxOpacity
	}
	if opacity < 0 {
		opacity = 0
	}
	scale := func(v uint8) int32 {
		return int32(int(v) * opacity / entity.MaxOpacity)
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(scale(c.R), scale(c.G), scale(c.B)))
}
