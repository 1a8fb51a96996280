package kinetic

import "math"

// Ring geometry per device class.
const (
	ringBaseSize       = 125.0
	ringSizeStep       = 15.0
	ringZStep          = -30.0
	ringBaseSizeMobile = 85.0
	ringSizeStepMobile = 11.0
	ringZStepMobile    = -14.0

	// ringSpread scales each link's displacement by its index.
	ringSpread = 0.105
)

// RingState is the resolved placement of one ring for drawing.
type RingState struct {
	Offset  Vec2    // projected offset from the assembly origin
	RotZ    float64 // degrees
	Size    float64 // diameter
	Opacity float64
}

// RingAssembly is the behavior of a NodeTypeRings node: a chain of rings in
// which every ring chases the smoothed position of the ring before it,
// giving an elastic trailing tail behind the cursor.
type RingAssembly struct {
	chain  *SpringChain
	rotX   *SpringValue
	rotY   *SpringValue
	mobile bool

	target Vec2
	rings  []RingState
}

// NewRingAssembly creates a ring chain. It reads the raw relative motion of
// its nearest surface ancestor, or rests at the center without one.
func NewRingAssembly(name string, cfg Config, mobile bool) *Node {
	n := NewContainer(name)
	n.Type = NodeTypeRings
	count := cfg.RingCount
	if mobile {
		count = cfg.RingCountMobile
	}
	n.Rings = &RingAssembly{
		chain:  NewSpringChain(count, ChainLinkConfig),
		rotX:   NewSpringValue(cfg.MasterSpring, 0),
		rotY:   NewSpringValue(cfg.MasterSpring, 0),
		mobile: mobile,
		rings:  make([]RingState, count),
	}
	return n
}

// Len returns the number of rings.
func (r *RingAssembly) Len() int {
	return r.chain.Len()
}

// Chain exposes the underlying spring chain.
func (r *RingAssembly) Chain() *SpringChain {
	return r.chain
}

// Ring returns the placement of ring i computed in the last frame.
func (r *RingAssembly) Ring(i int) RingState {
	return r.rings[i]
}

// Core returns the unsmoothed chain target, where the central marker sits.
func (r *RingAssembly) Core() Vec2 {
	return r.target
}

// Tilt returns the smoothed master rotation in degrees.
func (r *RingAssembly) Tilt() (rotateX, rotateY float64) {
	return r.rotX.Value(), r.rotY.Value()
}

// Wander returns the slow idle drift at time ms.
func Wander(ms float64) Vec2 {
	return Vec2{X: math.Sin(ms/2200) * 4, Y: math.Cos(ms/2400) * 4}
}

// update steps the chain toward p and resolves every ring. clockMs is the
// engine clock in milliseconds.
func (r *RingAssembly) update(n *Node, p *Params, clockMs, dt float64) {
	relX, relY := 0.5, 0.5
	if p != nil {
		relX, relY = p.RelX, p.RelY
	}
	r.target = Vec2{
		X: MapRange(relX, 0, 1, -145, 145),
		Y: MapRange(relY, 0, 1, -105, 105),
	}
	rotZ := MapRange(relX, 0, 1, -45, 45)

	r.chain.Step(r.target.X, r.target.Y, rotZ, dt)
	rx := r.rotX.Step(MapRange(relY, 0, 1, 30, -30), dt)
	ry := r.rotY.Step(MapRange(relX, 0, 1, -30, 30), dt)

	n.setOffset(Wander(clockMs))

	base, step, zStep := ringBaseSize, ringSizeStep, ringZStep
	if r.mobile {
		base, step, zStep = ringBaseSizeMobile, ringSizeStepMobile, ringZStepMobile
	}
	sinX, cosX := math.Sincos(rx * math.Pi / 180)
	sinY, cosY := math.Sincos(ry * math.Pi / 180)
	total := float64(r.chain.Len())

	r.chain.Each(func(l *ChainLink) {
		i := float64(l.Index)
		x := l.X.Value() * i * ringSpread
		y := l.Y.Value() * i * ringSpread
		z := i * zStep
		// Orthographic projection of the tilted stack: rotate about Y,
		// then about X.
		px := x*cosY + z*sinY
		pz := -x*sinY + z*cosY
		py := y*cosX - pz*sinX
		r.rings[l.Index] = RingState{
			Offset:  Vec2{X: px, Y: py},
			RotZ:    l.RotZ.Value(),
			Size:    base + i*step,
			Opacity: 0.95 - i/total*0.6,
		}
	})
}
