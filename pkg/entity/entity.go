// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

var lastID atomic.Uint64

// GenerateID returns a process-unique, monotonically increasing entity ID
func GenerateID() ID {
	return ID(lastID.Add(1))
}

// Entity is the base interface for all simulated objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	Render(r Renderer)
}

// BaseEntity contains the state shared by bodies and rings
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

func (b *Body) Render(r Renderer) {
	r.RenderBody(b)
}

func (rg *Ring) Render(r Renderer) {
	r.RenderRing(rg)
}

func (a *ArenaRing) Render(r Renderer) {
	r.RenderArena(a)
}
