// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/physics"
	"github.com/opd-ai/go-ringbounce/pkg/render"
)

const (
	arenaZ float32 = iota
	ringZ
	bodyZ
)

// arenaBorder is the outline width of the coliseum arena in pixels
const arenaBorder = 4

// drawTarget is the part of common.RenderSystem the renderer feeds
type drawTarget interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

// sprite is one drawn circle, kept alive across frames while its entity exists
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
	seen bool
}

// EngoRenderer implements entity.Renderer on top of engo's render system.
// Each simulation entity maps to a circle sprite that is created on first
// sight and removed on the first frame it is missing from.
type EngoRenderer struct {
	target    drawTarget
	thickness float32
	sprites   map[entity.ID]*sprite
}

// NewEngoRenderer creates a renderer drawing rings with the given wall thickness
func NewEngoRenderer(target drawTarget, ringThickness float64) *EngoRenderer {
	return &EngoRenderer{
		target:    target,
		thickness: float32(ringThickness),
		sprites:   make(map[entity.ID]*sprite),
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements entity.Renderer. Sprites not drawn this frame are
// removed from the render system.
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !s.seen {
			r.target.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}

// RenderBody implements entity.Renderer
func (r *EngoRenderer) RenderBody(body *entity.Body) {
	if body == nil {
		return
	}
	s := r.getOrCreateSprite(body.ID, bodyZ)
	s.Drawable = common.Circle{}
	s.Color = render.CategoryColor(body.Category())
	r.place(s, body.Position, body.Radius())
}

// RenderRing implements entity.Renderer
func (r *EngoRenderer) RenderRing(ring *entity.Ring) {
	if ring == nil {
		return
	}
	s := r.getOrCreateSprite(ring.ID, ringZ)
	s.Drawable = common.Circle{
		BorderWidth: r.thickness,
		BorderColor: render.Faded(render.CategoryColor(ring.Category()), ring.Opacity()),
	}
	s.Color = color.Transparent
	s.Hidden = ring.Opacity() <= 0
	r.place(s, ring.Position, ring.Radius())
}

// RenderArena implements entity.Renderer
func (r *EngoRenderer) RenderArena(arena *entity.ArenaRing) {
	if arena == nil {
		return
	}
	border := float32(arenaBorder)
	if arena.Pulsing() {
		border *= 2
	}
	s := r.getOrCreateSprite(arena.ID, arenaZ)
	s.Drawable = common.Circle{BorderWidth: border, BorderColor: render.ArenaColor}
	s.Color = color.Transparent
	r.place(s, arena.Position, arena.Radius())
}

// getOrCreateSprite returns the sprite for id, registering a new one with
// the render system when needed
func (r *EngoRenderer) getOrCreateSprite(id entity.ID, z float32) *sprite {
	s, ok := r.sprites[id]
	if !ok {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent.SetZIndex(z)
		r.sprites[id] = s
		r.target.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	s.seen = true
	return s
}

// place sizes a sprite to the circle's bounding box. World and screen share
// the same coordinates; engo positions from the top-left corner.
func (r *EngoRenderer) place(s *sprite, center physics.Vector2D, radius float64) {
	s.Position = worldToScreen(center.Sub(physics.Vector2D{X: radius, Y: radius}))
	s.Width = float32(2 * radius)
	s.Height = float32(2 * radius)
}

func worldToScreen(p physics.Vector2D) engo.Point {
	return engo.Point{X: float32(p.X), Y: float32(p.Y)}
}

// Sprites returns how many sprites are currently registered
func (r *EngoRenderer) Sprites() int {
	return len(r.sprites)
}
