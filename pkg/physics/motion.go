package physics

// ClampSpeed scales velocity down to maxSpeed while preserving its direction.
// Velocities at or under the limit are returned unchanged.
func ClampSpeed(velocity Vector2D, maxSpeed float64) Vector2D {
	speed := velocity.Length()
	if speed > maxSpeed && speed > 0 {
		factor := maxSpeed / speed
		return Vector2D{X: velocity.X * factor, Y: velocity.Y * factor}
	}
	return velocity
}

// Reflect removes twice the component of velocity along normal, scaled by
// restitution. normal must be a unit vector.
func Reflect(velocity, normal Vector2D, restitution float64) Vector2D {
	vn := velocity.Dot(normal)
	return velocity.Sub(normal.Scale(2 * vn * restitution))
}
