package kinetic

import "testing"

func TestHUDBarHeight(t *testing.T) {
	tests := []struct {
		speed float64
		want  float64
	}{
		{0, hudMinBar},
		{50, (hudMinBar + hudMaxBar) / 2},
		{100, hudMaxBar},
		{5000, hudMaxBar},
		{-10, hudMinBar},
	}
	for _, tt := range tests {
		n := NewHUDWidget("hud")
		n.HUD.update(tt.speed, testDT)
		if !approxEqual(n.HUD.BarHeight, tt.want, 1e-9) {
			t.Errorf("BarHeight(speed %v) = %v, want %v", tt.speed, n.HUD.BarHeight, tt.want)
		}
		if n.HUD.Speed != tt.speed {
			t.Errorf("Speed = %v, want %v", n.HUD.Speed, tt.speed)
		}
	}
}

func TestHUDOpacityRange(t *testing.T) {
	n := NewHUDWidget("hud")
	h := n.HUD
	for i := 0; i < hudBars; i++ {
		if h.BarOpacity(i) != 0.3 {
			t.Fatalf("bar %d initial opacity = %v", i, h.BarOpacity(i))
		}
	}
	varied := false
	for f := 0; f < 300; f++ {
		h.update(0, testDT)
		for i := 0; i < hudBars; i++ {
			o := h.BarOpacity(i)
			if o < 0.3-1e-9 || o > 1+1e-9 {
				t.Fatalf("bar %d opacity %v out of [0.3, 1]", i, o)
			}
			if o != h.BarOpacity(0) {
				varied = true
			}
		}
	}
	if !varied {
		t.Error("bars should pulse out of phase")
	}
}

func TestHUDStatsRefresh(t *testing.T) {
	n := NewHUDWidget("hud")
	h := n.HUD
	if !h.statsDirty {
		t.Fatal("new HUD should render stats on the first draw")
	}
	h.statsDirty = false
	h.update(0, 0.4)
	if h.statsDirty {
		t.Error("stats refreshed too early")
	}
	h.update(0, 0.1)
	if !h.statsDirty {
		t.Error("stats should refresh every half second")
	}
}

func TestHUDSize(t *testing.T) {
	n := NewHUDWidget("hud")
	if n.Width != hudBars*hudBarGap || n.Height != hudMaxBar {
		t.Errorf("size = %vx%v", n.Width, n.Height)
	}
}
