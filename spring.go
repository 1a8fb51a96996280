package kinetic

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// defaultRestDelta is used when a SpringConfig leaves RestDelta at zero.
const defaultRestDelta = 0.01

// AngularFrequency returns √(k/m), the undamped angular frequency.
func (c SpringConfig) AngularFrequency() float64 {
	if c.Mass <= 0 {
		return math.Sqrt(c.Stiffness)
	}
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns c/(2√(km)). 1 is critical damping; above 1 the spring
// approaches its target without ever crossing it.
func (c SpringConfig) DampingRatio() float64 {
	m := c.Mass
	if m <= 0 {
		m = 1
	}
	denom := 2 * math.Sqrt(c.Stiffness*m)
	if denom == 0 {
		return 1
	}
	return c.Damping / denom
}

func (c SpringConfig) restDelta() float64 {
	if c.RestDelta > 0 {
		return c.RestDelta
	}
	return defaultRestDelta
}

// SpringValue is a single spring-filtered scalar. The zero value is not
// usable; create one with NewSpringValue.
type SpringValue struct {
	cfg    SpringConfig
	pos    float64
	vel    float64
	target float64
	atRest bool

	spring harmonica.Spring
	dt     float64 // step the cached harmonica coefficients were built for
}

// NewSpringValue creates a spring resting at initial.
func NewSpringValue(cfg SpringConfig, initial float64) *SpringValue {
	return &SpringValue{cfg: cfg, pos: initial, target: initial, atRest: true}
}

// Config returns the spring's configuration.
func (s *SpringValue) Config() SpringConfig {
	return s.cfg
}

// Value returns the current smoothed position.
func (s *SpringValue) Value() float64 {
	return s.pos
}

// Velocity returns the current spring velocity in units per second.
func (s *SpringValue) Velocity() float64 {
	return s.vel
}

// Target returns the most recent target.
func (s *SpringValue) Target() float64 {
	return s.target
}

// AtRest reports whether the spring has settled on its target.
func (s *SpringValue) AtRest() bool {
	return s.atRest
}

// SetTarget changes the equilibrium the spring moves toward.
func (s *SpringValue) SetTarget(target float64) {
	if !isFinite(target) {
		return
	}
	if target != s.target {
		s.target = target
		s.atRest = false
	}
}

// Jump moves the spring to v immediately and stops it there.
func (s *SpringValue) Jump(v float64) {
	s.pos = v
	s.target = v
	s.vel = 0
	s.atRest = true
}

// Step advances the spring by dt seconds toward target and returns the new
// position.
func (s *SpringValue) Step(target, dt float64) float64 {
	s.SetTarget(target)
	return s.Advance(dt)
}

// Advance advances the spring by dt seconds toward its current target.
func (s *SpringValue) Advance(dt float64) float64 {
	if s.atRest || dt <= 0 {
		return s.pos
	}
	if dt != s.dt {
		s.spring = harmonica.NewSpring(dt, s.cfg.AngularFrequency(), s.cfg.DampingRatio())
		s.dt = dt
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)

	rd := s.cfg.restDelta()
	if math.Abs(s.target-s.pos) < rd && math.Abs(s.vel) < rd {
		s.pos = s.target
		s.vel = 0
		s.atRest = true
	}
	return s.pos
}

// --- Spring chain ---

// ChainLink is one element of a SpringChain. Its springs target the
// previous link's output; the head link targets the chain input.
type ChainLink struct {
	Index int
	X     *SpringValue
	Y     *SpringValue
	RotZ  *SpringValue
	next  *ChainLink
}

// Next returns the following link, or nil at the tail.
func (l *ChainLink) Next() *ChainLink {
	return l.next
}

// SpringChain is a linked list of spring triples where each link chases the
// one before it, giving a trailing elastic motion.
type SpringChain struct {
	head *ChainLink
	n    int
}

// ChainLinkConfig returns the spring tuning of link i: stiffness falls and
// damping rises along the chain so the tail lags without overshoot.
func ChainLinkConfig(i int) SpringConfig {
	return SpringConfig{
		Stiffness: 1050 - float64(i)*25,
		Damping:   75 + float64(i)*1.5,
		Mass:      0.1,
		RestDelta: 0.001,
	}
}

// NewSpringChain builds a chain of n links using cfgFn for per-link tuning.
// A nil cfgFn uses ChainLinkConfig.
func NewSpringChain(n int, cfgFn func(i int) SpringConfig) *SpringChain {
	if n < 1 {
		panic("kinetic: spring chain needs at least one link")
	}
	if cfgFn == nil {
		cfgFn = ChainLinkConfig
	}
	c := &SpringChain{n: n}
	var tail *ChainLink
	for i := 0; i < n; i++ {
		cfg := cfgFn(i)
		l := &ChainLink{
			Index: i,
			X:     NewSpringValue(cfg, 0),
			Y:     NewSpringValue(cfg, 0),
			RotZ:  NewSpringValue(cfg, 0),
		}
		if tail == nil {
			c.head = l
		} else {
			tail.next = l
		}
		tail = l
	}
	return c
}

// Len returns the number of links.
func (c *SpringChain) Len() int {
	return c.n
}

// Head returns the first link.
func (c *SpringChain) Head() *ChainLink {
	return c.head
}

// Step advances every link once, head to tail. Each link targets the
// output its predecessor produced in this same pass.
func (c *SpringChain) Step(x, y, rotZ, dt float64) {
	for l := c.head; l != nil; l = l.next {
		x = l.X.Step(x, dt)
		y = l.Y.Step(y, dt)
		rotZ = l.RotZ.Step(rotZ, dt)
	}
}

// Each calls fn for every link in list order.
func (c *SpringChain) Each(fn func(l *ChainLink)) {
	for l := c.head; l != nil; l = l.next {
		fn(l)
	}
}
