package kinetic

import "math"

// HUD layout constants.
const (
	hudBars       = 24
	hudBarWidth   = 1.2
	hudBarGap     = 8.0
	hudMinBar     = 2.0
	hudMaxBar     = 45.0
	hudMaxSpeed   = 100.0
	hudStatsEvery = 0.5 // seconds between stats text refreshes
)

// HUD is the behavior of a NodeTypeHUD node: a row of bars whose height
// follows cursor speed, each pulsing on its own period, plus a stats line.
type HUD struct {
	BarHeight float64
	Speed     float64

	opacity [hudBars]float64
	period  [hudBars]float64
	delay   [hudBars]float64
	elapsed float64

	sinceStats float64
	stats      string
	statsDirty bool
}

// NewHUDWidget creates a HUD node. Position it with SetPosition; bars grow
// upward from the node origin.
func NewHUDWidget(name string) *Node {
	n := NewContainer(name)
	n.Type = NodeTypeHUD
	h := &HUD{BarHeight: hudMinBar, statsDirty: true}
	for i := range h.period {
		// Spread the pulse periods over [0.7, 1.7) without a random source.
		h.period[i] = 0.7 + float64((i*37)%100)/100
		h.delay[i] = float64(i) * 0.015
		h.opacity[i] = 0.3
	}
	n.HUD = h
	n.Width = hudBars * hudBarGap
	n.Height = hudMaxBar
	return n
}

// BarOpacity returns the current pulse opacity of bar i.
func (h *HUD) BarOpacity(i int) float64 {
	return h.opacity[i]
}

// update maps speed to bar height and advances the pulses.
func (h *HUD) update(speed, dt float64) {
	h.Speed = speed
	h.BarHeight = MapRange(speed, 0, hudMaxSpeed, hudMinBar, hudMaxBar)
	h.elapsed += dt
	for i := range h.opacity {
		t := h.elapsed - h.delay[i]
		if t < 0 {
			h.opacity[i] = 0.3
			continue
		}
		// 0.3 -> 1 -> 0.3 over one period.
		phase := math.Mod(t, h.period[i]) / h.period[i]
		h.opacity[i] = 0.3 + 0.7*(0.5-0.5*math.Cos(2*math.Pi*phase))
	}
	h.sinceStats += dt
	if h.sinceStats >= hudStatsEvery {
		h.sinceStats = 0
		h.statsDirty = true
	}
}
