package kinetic

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Surface is the behavior of a NodeTypeSurface node: it tracks its own box,
// smooths the relative motion and publishes Params to its subtree.
type Surface struct {
	// ID is the registry id. NewSurface derives one from the node if empty.
	ID string
	// Strength is the maximum tilt in degrees.
	Strength float64
	// ShineIntensity scales the glow alpha.
	ShineIntensity float64

	smoothX *SpringValue
	smoothY *SpringValue

	glowFade  float32
	glowTween *gween.Tween
	glowValue float32
	glowOn    bool

	params  Params
	tracker *MotionTracker
	seen    uint64 // frame the scene phase last visited this surface
}

// NewSurface creates a w×h surface node. The engine registers it for
// measurement the first frame it is found in the scene and unregisters it
// once it leaves the scene or is disposed.
func NewSurface(name, id string, w, h float64, cfg Config) *Node {
	n := &Node{Name: name, Type: NodeTypeSurface, Width: w, Height: h}
	nodeDefaults(n)
	if id == "" {
		id = fmt.Sprintf("surface-%d", n.ID)
	}
	n.Surface = &Surface{
		ID:             id,
		Strength:       cfg.SurfaceStrength,
		ShineIntensity: cfg.ShineIntensity,
		smoothX:        NewSpringValue(cfg.SurfaceSpring, 0.5),
		smoothY:        NewSpringValue(cfg.SurfaceSpring, 0.5),
		glowFade:       cfg.GlowFade,
		params:         neutralParams,
	}
	return n
}

// Params returns the parameters published during the last frame.
func (s *Surface) Params() Params {
	return s.params
}

// Tracker returns the motion tracker, or nil before the surface was first
// visited by the engine.
func (s *Surface) Tracker() *MotionTracker {
	return s.tracker
}

// update steps the springs toward the tracked motion and republishes.
func (s *Surface) update(dt float64) {
	m := NeutralMotion
	if s.tracker != nil {
		m = s.tracker.Motion()
	}

	tx, ty := 0.5, 0.5
	if m.Over {
		tx, ty = m.RelX, m.RelY
	}
	sx := s.smoothX.Step(tx, dt)
	sy := s.smoothY.Step(ty, dt)

	s.updateGlow(m.Over, float32(dt))

	s.params = Params{
		RelX:    m.RelX,
		RelY:    m.RelY,
		Over:    m.Over,
		SmoothX: sx,
		SmoothY: sy,
		RX:      lerp(-1, 1, sx),
		RY:      lerp(-1, 1, sy),
		MX:      sx * 100,
		MY:      sy * 100,
		RotateX: lerp(s.Strength, -s.Strength, sy),
		RotateY: lerp(-s.Strength, s.Strength, sx),
		Glow:    float64(s.glowValue) * s.ShineIntensity,
	}
}

// updateGlow fades the highlight in while hovered and out otherwise,
// restarting the fade from the current value when hover flips mid-fade.
func (s *Surface) updateGlow(over bool, dt float32) {
	if over != s.glowOn {
		s.glowOn = over
		to := float32(0)
		if over {
			to = 1
		}
		if s.glowFade <= 0 {
			s.glowValue = to
			s.glowTween = nil
		} else {
			s.glowTween = gween.New(s.glowValue, to, s.glowFade, ease.InOutQuad)
		}
	}
	if s.glowTween == nil {
		return
	}
	v, done := s.glowTween.Update(dt)
	s.glowValue = v
	if done {
		s.glowTween = nil
	}
}
