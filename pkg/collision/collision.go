// Package collision resolves contacts between bodies, the screen, rings and
// the arena. Resolvers move and bounce bodies but never destroy rings or keep
// score: they report what happened and leave game rules to the caller.
package collision

import (
	"github.com/opd-ai/go-ringbounce/pkg/entity"
	"github.com/opd-ai/go-ringbounce/pkg/physics"
)

// Rules are the material constants shared by every resolver
type Rules struct {
	// Restitution scales reflected velocity; values above 1 inject energy.
	Restitution float64
	Boost       entity.BounceBoost
	// Thickness is the drawn width of ring outlines.
	Thickness float64
	// CategoryGating restricts ring destruction to bodies of the ring's category.
	CategoryGating bool
}

// BodyContact reports the outcome of a body-vs-body check
type BodyContact struct {
	Overlapped bool
	Impulse    float64
}

// RingContact reports the outcome of a body-vs-ring check
type RingContact struct {
	Hit             bool
	Reflected       bool
	DestroyEligible bool
}

// Incompatible reports a hit that bounced the body without qualifying to
// destroy the ring.
func (c RingContact) Incompatible() bool {
	return c.Hit && !c.DestroyEligible
}

// ResolveBodies separates two overlapping bodies and, when they are
// approaching, exchanges an equal and opposite impulse along the contact
// normal. Both bodies are treated as equal mass. Coincident centers are skipped.
func ResolveBodies(a, b *entity.Body, rules Rules) BodyContact {
	contact := physics.CheckCollision(a.GetCollider(), b.GetCollider())
	if !contact.Collided {
		return BodyContact{}
	}

	half := contact.Penetration / 2
	a.Position = a.Position.Sub(contact.Normal.Scale(half))
	b.Position = b.Position.Add(contact.Normal.Scale(half))

	vn := a.Velocity.Sub(b.Velocity).Dot(contact.Normal)
	if vn <= 0 {
		return BodyContact{Overlapped: true}
	}

	impulse := contact.Normal.Scale(vn * rules.Restitution)
	a.Velocity = a.Velocity.Sub(impulse)
	b.Velocity = b.Velocity.Add(impulse)
	a.PostBounceAccelerate(rules.Boost)
	b.PostBounceAccelerate(rules.Boost)

	return BodyContact{Overlapped: true, Impulse: vn * rules.Restitution}
}

// ResolveBodyRing bounces a body off the inside wall of a live ring and
// decides whether the hit qualifies to destroy it. With category gating only
// a body of the ring's category qualifies; without it any outward bounce does.
// Destroyed or expired rings are ignored.
func ResolveBodyRing(body *entity.Body, ring *entity.Ring, rules Rules) RingContact {
	if !ring.Collidable() {
		return RingContact{}
	}

	hit, reflected := bounceInside(body, ring.Outline(rules.Thickness), rules)
	if !hit {
		return RingContact{}
	}

	result := RingContact{Hit: true, Reflected: reflected}
	if rules.CategoryGating {
		result.DestroyEligible = body.Category() == ring.Category()
	} else {
		result.DestroyEligible = reflected
	}
	return result
}

// ResolveBodyArena bounces a body off the arena wall. It returns true only
// when the body was moving outward and got reflected, which is what counts
// as a scoring hit.
func ResolveBodyArena(body *entity.Body, arena *entity.ArenaRing, rules Rules) bool {
	_, reflected := bounceInside(body, arena.Outline(rules.Thickness), rules)
	return reflected
}

func bounceInside(body *entity.Body, wall physics.Annulus, rules Rules) (hit, reflected bool) {
	contact := wall.InnerContact(body.GetCollider())
	if !contact.Collided {
		return false, false
	}

	if rest := wall.RestDistance(body.Radius()); rest > 0 {
		body.Position = wall.Center.Add(contact.Normal.Scale(rest))
	}

	if body.Velocity.Dot(contact.Normal) > 0 {
		body.Velocity = physics.Reflect(body.Velocity, contact.Normal, rules.Restitution)
		body.PostBounceAccelerate(rules.Boost)
		reflected = true
	}
	return true, reflected
}
