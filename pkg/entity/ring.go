// pkg/entity/ring.go
package entity

import (
	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

const (
	// MaxOpacity is the opacity of a ring that has not been destroyed
	MaxOpacity = 255
	// DefaultFadeRate is the opacity lost per tick once a ring is destroyed
	DefaultFadeRate = 15
	// MinSeekSpeed is the floor for a decelerating ring
	MinSeekSpeed = 0.5
	// seekArrivalDistance stops steering once the ring is this close to its target
	seekArrivalDistance = 5.0
)

// RingState is the lifecycle stage of a ring
type RingState int

const (
	RingActive RingState = iota
	RingDestroying
	RingExpired
)

func (s RingState) String() string {
	switch s {
	case RingActive:
		return "active"
	case RingDestroying:
		return "destroying"
	case RingExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// SeekParams steers a ring's center towards Target. Far from the target the
// ring speeds up by Accel (capped at twice InitialSpeed); within SlowRadius it
// slows by the multiplicative Decel factor, never below MinSeekSpeed.
type SeekParams struct {
	Enabled      bool
	Target       physics.Vector2D
	InitialSpeed float64
	Accel        float64
	Decel        float64
	SlowRadius   float64
}

// RingParams are the per-tick rules a ring is updated with
type RingParams struct {
	DecayRate float64
	MinRadius float64
	FadeRate  int
	Seek      SeekParams
}

// Ring is a shrinking circular obstacle. Bodies bounce on the inside of its outline.
type Ring struct {
	BaseEntity
	radius        float64
	initialRadius float64
	category      Category
	active        bool
	destroyed     bool
	opacity       int
	seekSpeed     float64
}

// NewRing creates an active, fully opaque ring. seekSpeed is the starting
// speed used when the ring is steered towards a target.
func NewRing(id ID, center physics.Vector2D, radius float64, category Category, seekSpeed float64) *Ring {
	return &Ring{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: center,
		},
		radius:        radius,
		initialRadius: radius,
		category:      category,
		active:        true,
		opacity:       MaxOpacity,
		seekSpeed:     seekSpeed,
	}
}

// Radius returns the current outline radius
func (r *Ring) Radius() float64 { return r.radius }

// InitialRadius returns the radius the ring was spawned with
func (r *Ring) InitialRadius() float64 { return r.initialRadius }

// Category returns the ring's identity tag
func (r *Ring) Category() Category { return r.category }

// IsActive reports whether the ring is still part of the world
func (r *Ring) IsActive() bool { return r.active }

// IsDestroyed reports whether Destroy has been called
func (r *Ring) IsDestroyed() bool { return r.destroyed }

// Opacity returns the fade level in the range 0-255
func (r *Ring) Opacity() int { return r.opacity }

// Collidable reports whether bodies can still hit the ring
func (r *Ring) Collidable() bool { return r.active && !r.destroyed }

// State returns the ring's lifecycle stage
func (r *Ring) State() RingState {
	switch {
	case !r.active:
		return RingExpired
	case r.destroyed:
		return RingDestroying
	default:
		return RingActive
	}
}

// GetCollider returns the disc enclosed by the ring
func (r *Ring) GetCollider() physics.Circle {
	return physics.Circle{Center: r.Position, Radius: r.radius}
}

// Outline returns the ring's wall for collision tests
func (r *Ring) Outline(thickness float64) physics.Annulus {
	return physics.Annulus{Center: r.Position, Radius: r.radius, Thickness: thickness}
}

// Destroy starts the fade-out. Radius and position are left untouched and
// repeated calls have no further effect.
func (r *Ring) Destroy() {
	r.destroyed = true
}

// Update advances the ring by one tick. A live ring moves and shrinks and
// expires at MinRadius; a destroyed ring fades and expires at zero opacity.
func (r *Ring) Update(p RingParams) {
	if !r.active {
		return
	}

	if r.destroyed {
		r.opacity -= p.FadeRate
		if r.opacity <= 0 {
			r.opacity = 0
			r.active = false
		}
		return
	}

	if p.Seek.Enabled {
		r.steer(p.Seek)
	}
	r.Position = r.Position.Add(r.Velocity)

	r.radius -= p.DecayRate
	if r.radius <= p.MinRadius {
		r.active = false
	}
}

func (r *Ring) steer(p SeekParams) {
	toTarget := p.Target.Sub(r.Position)
	distance := toTarget.Length()
	if distance <= seekArrivalDistance {
		return
	}

	if distance > p.SlowRadius {
		r.seekSpeed += p.Accel
		if limit := p.InitialSpeed * 2; r.seekSpeed > limit {
			r.seekSpeed = limit
		}
	} else {
		r.seekSpeed *= p.Decel
		if r.seekSpeed < MinSeekSpeed {
			r.seekSpeed = MinSeekSpeed
		}
	}

	r.Velocity = toTarget.Scale(r.seekSpeed / distance)
}
