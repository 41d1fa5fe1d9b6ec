// pkg/physics/vector.go
package physics

import "math"

// Vector2D is a position or velocity in screen space. Y grows downwards, so a
// positive gravity pulls bodies towards the bottom edge.
type Vector2D struct {
	X float64
	Y float64
}

// Add returns v + other
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale multiplies both components by factor
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared magnitude
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction, or the zero vector
// when v has no length.
func (v Vector2D) Normalize() Vector2D {
	length := v.Length()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / length, Y: v.Y / length}
}

// Distance returns the euclidean distance between two points
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Angle returns the direction of the vector in radians
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleTo returns the direction from v towards other in radians
func (v Vector2D) AngleTo(other Vector2D) float64 {
	return other.Sub(v).Angle()
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// FromAngle builds a vector of the given magnitude pointing along angle
func FromAngle(angle float64, magnitude float64) Vector2D {
	return Vector2D{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// ApproxEqual reports whether both components differ by at most eps
func (v Vector2D) ApproxEqual(other Vector2D, eps float64) bool {
	return math.Abs(v.X-other.X) <= eps && math.Abs(v.Y-other.Y) <= eps
}
