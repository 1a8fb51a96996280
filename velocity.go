package kinetic

import "math"

// VelocityTracker derives the instantaneous velocity of the virtual cursor
// from its two most recent samples.
type VelocityTracker struct {
	last    Vec2
	lastT   float64
	hasLast bool
	vel     Vec2
}

// Sample records the cursor position at time t (seconds) and returns the
// updated velocity. When the elapsed time is zero, negative or the result is
// not finite, the previous velocity is held.
func (v *VelocityTracker) Sample(p Vec2, t float64) Vec2 {
	if !v.hasLast {
		v.last, v.lastT, v.hasLast = p, t, true
		return v.vel
	}
	dt := t - v.lastT
	if dt <= 0 || !isFinite(dt) {
		return v.vel
	}
	vx := (p.X - v.last.X) / dt
	vy := (p.Y - v.last.Y) / dt
	if isFinite(vx) && isFinite(vy) {
		v.vel = Vec2{X: vx, Y: vy}
	}
	v.last, v.lastT = p, t
	return v.vel
}

// Velocity returns the most recent velocity in pixels per second.
func (v *VelocityTracker) Velocity() Vec2 {
	return v.vel
}

// Speed returns the velocity magnitude.
func (v *VelocityTracker) Speed() float64 {
	return v.vel.Len()
}

// Angle returns the direction of motion in degrees, measured clockwise from
// the positive X axis (Y grows downward).
func (v *VelocityTracker) Angle() float64 {
	return angleDeg(v.vel)
}

func angleDeg(v Vec2) float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

// Reset forgets all samples.
func (v *VelocityTracker) Reset() {
	*v = VelocityTracker{}
}
