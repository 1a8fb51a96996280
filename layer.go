package kinetic

import "github.com/soninewmedia/kinetic/internal/log"

// Layer is the behavior of a NodeTypeLayer node: a passive consumer that
// translates by its ancestor surface's parallax parameters scaled by depth.
type Layer struct {
	// Depth sets the parallax leverage and the layer's Z.
	Depth float64

	leverageScale float64
	warned        bool
}

// NewLayer creates a parallax layer. It must sit below a surface to move.
func NewLayer(name string, depth float64, cfg Config) *Node {
	n := NewContainer(name)
	n.Type = NodeTypeLayer
	n.Layer = &Layer{Depth: depth, leverageScale: cfg.LeverageScale}
	return n
}

// Leverage returns the pixel displacement per unit of RX/RY.
func (l *Layer) Leverage() float64 {
	return l.Depth * l.leverageScale
}

// Z returns the layer's depth offset.
func (l *Layer) Z() float64 {
	return l.Depth
}

// update derives the layer offset from the inherited parameters.
func (l *Layer) update(n *Node, p *Params, debug bool) {
	if p == nil {
		if debug && !l.warned {
			log.Warn("layer has no surface ancestor; it stays inert", "node", n.Name)
			l.warned = true
		}
		n.setOffset(Vec2{})
		return
	}
	lev := l.Leverage()
	n.setOffset(Vec2{X: -p.RX * lev, Y: -p.RY * lev})
}
