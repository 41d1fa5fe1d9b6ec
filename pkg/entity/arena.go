package entity

import (
	"math"

	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// PulseParams shape the radius swell an arena ring plays after a hit
type PulseParams struct {
	Intensity float64
	Duration  int
}

// ArenaRing is a fixed ring that never shrinks or breaks. A hit makes it
// pulse outward along a half sine wave before settling back to its base radius.
type ArenaRing struct {
	BaseEntity
	baseRadius  float64
	radius      float64
	pulsing     bool
	pulseFrames int
}

// NewArenaRing creates a resting arena ring
func NewArenaRing(id ID, center physics.Vector2D, radius float64) *ArenaRing {
	return &ArenaRing{
		BaseEntity: BaseEntity{ID: id, Position: center},
		baseRadius: radius,
		radius:     radius,
	}
}

// Radius returns the current, possibly pulsing, radius
func (a *ArenaRing) Radius() float64 { return a.radius }

// BaseRadius returns the resting radius
func (a *ArenaRing) BaseRadius() float64 { return a.baseRadius }

// Pulsing reports whether a pulse is in progress
func (a *ArenaRing) Pulsing() bool { return a.pulsing }

// GetCollider returns the disc enclosed by the arena
func (a *ArenaRing) GetCollider() physics.Circle {
	return physics.Circle{Center: a.Position, Radius: a.radius}
}

// Outline returns the arena wall for collision tests
func (a *ArenaRing) Outline(thickness float64) physics.Annulus {
	return physics.Annulus{Center: a.Position, Radius: a.radius, Thickness: thickness}
}

// StartPulse restarts the pulse from its first frame
func (a *ArenaRing) StartPulse() {
	a.pulsing = true
	a.pulseFrames = 0
}

// Update advances the pulse animation by one tick
func (a *ArenaRing) Update(p PulseParams) {
	if !a.pulsing {
		return
	}

	a.pulseFrames++
	if p.Duration <= 0 {
		a.pulsing = false
		a.radius = a.baseRadius
		return
	}

	progress := float64(a.pulseFrames) / float64(p.Duration)
	if progress <= 1 {
		a.radius = a.baseRadius + p.Intensity*math.Sin(progress*math.Pi)
		return
	}

	a.pulsing = false
	a.radius = a.baseRadius
}
