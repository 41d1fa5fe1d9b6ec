// pkg/physics/collision.go
package physics

import "math"

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Overlaps reports whether two circles intersect. Touching circles do not overlap.
func (c Circle) Overlaps(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Contact describes the geometry of a detected collision. Normal is a unit
// vector at Angle; for circle pairs it points from the first circle to the
// second, for ring contacts from the ring center towards the body.
type Contact struct {
	Collided    bool
	Normal      Vector2D
	Angle       float64
	Distance    float64
	Penetration float64
}

// CheckCollision performs detailed collision detection between two circles.
// Coincident centers produce no contact because no direction can be derived.
func CheckCollision(a, b Circle) Contact {
	delta := b.Center.Sub(a.Center)
	distance := delta.Length()

	if distance <= 0 || distance >= a.Radius+b.Radius {
		return Contact{Distance: distance}
	}

	angle := delta.Angle()
	return Contact{
		Collided:    true,
		Normal:      FromAngle(angle, 1),
		Angle:       angle,
		Distance:    distance,
		Penetration: a.Radius + b.Radius - distance,
	}
}

// Annulus is the stroked outline of a ring obstacle: a circle of Radius drawn
// with a line of Thickness.
type Annulus struct {
	Center    Vector2D
	Radius    float64
	Thickness float64
}

// InnerContact tests a circle travelling inside the annulus against its wall.
// The circle collides when its center is inside the ring and within
// body radius + thickness of the outline. Penetration is left at zero; callers
// reposition using RestDistance instead.
func (a Annulus) InnerContact(body Circle) Contact {
	delta := body.Center.Sub(a.Center)
	distance := delta.Length()

	if distance >= a.Radius || math.Abs(distance-a.Radius) > body.Radius+a.Thickness {
		return Contact{Distance: distance}
	}
	if distance <= 0 {
		return Contact{Distance: distance}
	}

	angle := delta.Angle()
	return Contact{
		Collided: true,
		Normal:   FromAngle(angle, 1),
		Angle:    angle,
		Distance: distance,
	}
}

// RestDistance is the distance from the annulus center at which a circle of
// the given radius sits just clear of the wall.
func (a Annulus) RestDistance(bodyRadius float64) float64 {
	return a.Radius - bodyRadius - a.Thickness
}
