package kinetic

import "math"

// Default magnet tuning.
const (
	DefaultMagnetRadius   = 180.0
	DefaultMagnetStrength = 0.35
)

// Magnet is the behavior of a NodeTypeMagnet node: within Radius of the
// cursor the node is pulled toward it, harder the closer the cursor gets.
type Magnet struct {
	Radius   float64
	Strength float64

	springX *SpringValue
	springY *SpringValue
	pull    Vec2
}

// NewMagnet creates a w×h magnetic node. Non-positive radius or strength
// use the defaults.
func NewMagnet(name string, w, h, radius, strength float64, cfg Config) *Node {
	n := &Node{Name: name, Type: NodeTypeMagnet, Width: w, Height: h}
	nodeDefaults(n)
	if radius <= 0 {
		radius = DefaultMagnetRadius
	}
	if strength <= 0 {
		strength = DefaultMagnetStrength
	}
	n.Magnet = &Magnet{
		Radius:   radius,
		Strength: strength,
		springX:  NewSpringValue(cfg.MagnetSpring, 0),
		springY:  NewSpringValue(cfg.MagnetSpring, 0),
	}
	return n
}

// MagnetPull returns the displacement toward cursor of a node whose rest
// center is at center: delta × strength × (1 − dist/radius) inside the
// radius, zero outside.
func MagnetPull(cursor, center Vec2, radius, strength float64) Vec2 {
	dx := cursor.X - center.X
	dy := cursor.Y - center.Y
	dist := math.Hypot(dx, dy)
	if dist >= radius || radius <= 0 {
		return Vec2{}
	}
	power := 1 - dist/radius
	return Vec2{X: dx * strength * power, Y: dy * strength * power}
}

// Pull returns the target displacement computed in the last frame.
func (m *Magnet) Pull() Vec2 {
	return m.pull
}

// update springs the node toward the pull computed from its rest center.
// The rest center excludes the node's own offset so the pull does not feed
// back into itself.
func (m *Magnet) update(n *Node, cursor Vec2, dt float64) {
	if !n.worldValid {
		return
	}
	b := n.WorldBounds()
	rest := b.Center()
	rest.X -= n.offset.X
	rest.Y -= n.offset.Y

	m.pull = MagnetPull(cursor, rest, m.Radius, m.Strength)
	n.setOffset(Vec2{X: m.springX.Step(m.pull.X, dt), Y: m.springY.Step(m.pull.Y, dt)})
}
