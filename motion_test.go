package kinetic

import "testing"

func TestRelativeMotion(t *testing.T) {
	rect := Rect{X: 100, Y: 100, Width: 200, Height: 200}
	tests := []struct {
		name   string
		cursor Vec2
		want   Motion
	}{
		{"quarter point", Vec2{150, 150}, Motion{0.25, 0.25, true}},
		{"center", Vec2{200, 200}, Motion{0.5, 0.5, true}},
		{"left edge inclusive", Vec2{100, 200}, Motion{0, 0.5, true}},
		{"bottom-right inclusive", Vec2{300, 300}, Motion{1, 1, true}},
		{"far left clamps", Vec2{-500, 150}, Motion{0, 0.25, false}},
		{"far below clamps", Vec2{150, 9000}, Motion{0.25, 1, false}},
		{"just outside", Vec2{300.5, 200}, Motion{1, 0.5, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeMotion(tt.cursor, rect, true)
			if !approxEqual(got.RelX, tt.want.RelX, epsilon) ||
				!approxEqual(got.RelY, tt.want.RelY, epsilon) ||
				got.Over != tt.want.Over {
				t.Errorf("RelativeMotion(%v) = %+v, want %+v", tt.cursor, got, tt.want)
			}
		})
	}
}

func TestRelativeMotion_ClampedForAnyCursor(t *testing.T) {
	rect := Rect{X: -20, Y: 40, Width: 13, Height: 7}
	for x := -100.0; x <= 100; x += 7.5 {
		for y := -100.0; y <= 100; y += 7.5 {
			m := RelativeMotion(Vec2{x, y}, rect, true)
			if m.RelX < 0 || m.RelX > 1 || m.RelY < 0 || m.RelY > 1 {
				t.Fatalf("cursor (%v,%v): rel (%v,%v) outside [0,1]", x, y, m.RelX, m.RelY)
			}
			inside := x >= rect.X && x <= rect.X+rect.Width && y >= rect.Y && y <= rect.Y+rect.Height
			if m.Over != inside {
				t.Fatalf("cursor (%v,%v): Over = %v, want %v", x, y, m.Over, inside)
			}
		}
	}
}

func TestRelativeMotion_UnknownRectIsNeutral(t *testing.T) {
	got := RelativeMotion(Vec2{0, 0}, Rect{}, false)
	if got != NeutralMotion {
		t.Errorf("unknown rect = %+v, want %+v", got, NeutralMotion)
	}
	if got.OverValue() != 1 {
		t.Errorf("OverValue = %v, want 1 (optimistic hover)", got.OverValue())
	}
}

func TestRelativeMotion_ZeroSizedRect(t *testing.T) {
	got := RelativeMotion(Vec2{10, 10}, Rect{X: 10, Y: 0, Width: 0, Height: 20}, true)
	if got.RelX != 0.5 || got.RelY != 0.5 || !got.Over {
		t.Errorf("zero-width rect = %+v", got)
	}
}

func TestMotionTracker_HoverTransitions(t *testing.T) {
	tr := &MotionTracker{id: "a"}
	rect := Rect{0, 0, 100, 100}

	var changes int
	tr.OnChange = func(Motion) { changes++ }

	if enter, leave := tr.derive(Vec2{50, 50}, Rect{}, false); enter || leave {
		t.Error("unknown rect must not emit hover transitions")
	}
	if enter, _ := tr.derive(Vec2{50, 50}, rect, true); !enter {
		t.Error("expected enter once the rect is known and contains the cursor")
	}
	if enter, leave := tr.derive(Vec2{60, 50}, rect, true); enter || leave {
		t.Error("moving inside must not re-enter")
	}
	if _, leave := tr.derive(Vec2{160, 50}, rect, true); !leave {
		t.Error("expected leave")
	}
	tr.derive(Vec2{160, 50}, rect, true)
	if changes != 3 {
		// unknown->known keeps (0.5,0.5,over) so it is not a change
		t.Errorf("OnChange fired %d times, want 3", changes)
	}
}

func TestMotionTracker_CloseIdempotent(t *testing.T) {
	tr := &MotionTracker{id: "a"}
	tr.Close()
	tr.Close()
	if !tr.Closed() {
		t.Error("Closed = false after Close")
	}
}
