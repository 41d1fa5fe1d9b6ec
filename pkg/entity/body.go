// pkg/entity/body.go
package entity

import (
	"math"

	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// DefaultBoostCap is the number of bounces that still receive the
// post-bounce acceleration.
const DefaultBoostCap = 15

// BounceBoost is the velocity multiplier applied after each of the first Cap bounces.
type BounceBoost struct {
	Factor float64
	Cap    int
}

// Body is a movable ball. Its radius and category are fixed at construction.
type Body struct {
	BaseEntity
	radius   float64
	category Category
	bounces  int
}

// NewBody creates a body at rest at the given position
func NewBody(id ID, position physics.Vector2D, radius float64, category Category) *Body {
	return &Body{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: position,
		},
		radius:   radius,
		category: category,
	}
}

// Radius returns the body's collision radius
func (b *Body) Radius() float64 {
	return b.radius
}

// Category returns the body's identity tag
func (b *Body) Category() Category {
	return b.category
}

// Bounces returns how many bounces the body has taken so far
func (b *Body) Bounces() int {
	return b.bounces
}

// GetCollider returns the body's collision shape
func (b *Body) GetCollider() physics.Circle {
	return physics.Circle{Center: b.Position, Radius: b.radius}
}

// Place moves the body and sets its velocity. The bounce counter is kept.
func (b *Body) Place(position, velocity physics.Vector2D) {
	b.Position = position
	b.Velocity = velocity
}

// Integrate advances the body by one tick: gravity, speed clamp, then position.
func (b *Body) Integrate(gravity, maxSpeed float64) {
	b.Velocity.Y += gravity
	b.Velocity = physics.ClampSpeed(b.Velocity, maxSpeed)
	b.Position = b.Position.Add(b.Velocity)
}

// ResolveBoundary keeps the body inside a width x height screen. Each axis is
// checked independently so a corner hit bounces on both. It returns the
// number of edges hit.
func (b *Body) ResolveBoundary(width, height, restitution float64, boost BounceBoost) int {
	hits := 0

	if b.Position.X-b.radius <= 0 {
		b.Position.X = b.radius
		b.Velocity.X = -b.Velocity.X * restitution
		b.PostBounceAccelerate(boost)
		hits++
	} else if b.Position.X+b.radius >= width {
		b.Position.X = width - b.radius
		b.Velocity.X = -b.Velocity.X * restitution
		b.PostBounceAccelerate(boost)
		hits++
	}

	if b.Position.Y-b.radius <= 0 {
		b.Position.Y = b.radius
		b.Velocity.Y = -b.Velocity.Y * restitution
		b.PostBounceAccelerate(boost)
		hits++
	} else if b.Position.Y+b.radius >= height {
		b.Position.Y = height - b.radius
		b.Velocity.Y = -b.Velocity.Y * restitution
		b.PostBounceAccelerate(boost)
		hits++
	}

	return hits
}

// ClampToScreen moves the body back inside a width x height screen without
// touching its velocity or bounce count. It reports whether it moved.
func (b *Body) ClampToScreen(width, height float64) bool {
	x := math.Min(math.Max(b.Position.X, b.radius), width-b.radius)
	y := math.Min(math.Max(b.Position.Y, b.radius), height-b.radius)
	moved := x != b.Position.X || y != b.Position.Y
	b.Position = physics.Vector2D{X: x, Y: y}
	return moved
}

// PostBounceAccelerate counts a bounce and, while the count is within the
// boost cap, multiplies the velocity by the boost factor. Growth past the
// cap is bounded by the speed clamp in Integrate.
func (b *Body) PostBounceAccelerate(boost BounceBoost) {
	b.bounces++
	if b.bounces <= boost.Cap {
		b.Velocity = b.Velocity.Scale(boost.Factor)
	}
}
