package kinetic

import (
	"math"
	"testing"
)

func TestVelocityTracker_FirstSampleIsZero(t *testing.T) {
	var v VelocityTracker
	got := v.Sample(Vec2{100, 100}, 1)
	if got != (Vec2{}) {
		t.Errorf("first sample velocity = %v, want zero", got)
	}
}

func TestVelocityTracker_Derivative(t *testing.T) {
	var v VelocityTracker
	v.Sample(Vec2{0, 0}, 0)
	got := v.Sample(Vec2{30, -60}, 0.5)
	if !approxEqual(got.X, 60, epsilon) || !approxEqual(got.Y, -120, epsilon) {
		t.Errorf("velocity = %v, want (60, -120)", got)
	}
	if !approxEqual(v.Speed(), math.Hypot(60, 120), epsilon) {
		t.Errorf("Speed = %v", v.Speed())
	}
}

func TestVelocityTracker_HoldsOnBadElapsed(t *testing.T) {
	tests := []struct {
		name string
		t    float64
	}{
		{"zero elapsed", 1},
		{"negative elapsed", 0.5},
		{"nan time", math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v VelocityTracker
			v.Sample(Vec2{0, 0}, 0)
			v.Sample(Vec2{10, 0}, 1)
			held := v.Velocity()

			got := v.Sample(Vec2{500, 500}, tt.t)
			if got != held {
				t.Errorf("velocity = %v, want held %v", got, held)
			}
			if math.IsNaN(got.X) || math.IsInf(got.X, 0) {
				t.Errorf("velocity not finite: %v", got)
			}
		})
	}
}

func TestVelocityTracker_UsesTwoMostRecent(t *testing.T) {
	var v VelocityTracker
	v.Sample(Vec2{0, 0}, 0)
	v.Sample(Vec2{100, 0}, 1)
	got := v.Sample(Vec2{100, 50}, 2)
	if !approxEqual(got.X, 0, epsilon) || !approxEqual(got.Y, 50, epsilon) {
		t.Errorf("velocity = %v, want (0, 50)", got)
	}
}

func TestVelocityTracker_Angle(t *testing.T) {
	tests := []struct {
		name string
		to   Vec2
		want float64
	}{
		{"right", Vec2{1, 0}, 0},
		{"down", Vec2{0, 1}, 90},
		{"left", Vec2{-1, 0}, 180},
		{"up", Vec2{0, -1}, -90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v VelocityTracker
			v.Sample(Vec2{}, 0)
			v.Sample(tt.to, 1)
			if !approxEqual(v.Angle(), tt.want, 1e-9) {
				t.Errorf("Angle = %v, want %v", v.Angle(), tt.want)
			}
		})
	}
}

func TestVelocityTracker_Reset(t *testing.T) {
	var v VelocityTracker
	v.Sample(Vec2{}, 0)
	v.Sample(Vec2{5, 5}, 1)
	v.Reset()
	if v.Velocity() != (Vec2{}) {
		t.Errorf("velocity after reset = %v", v.Velocity())
	}
}
