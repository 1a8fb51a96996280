package kinetic

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Glow and aura drawing constants.
const (
	glowRadius      = 1000.0
	glowSteps       = 12
	auraSegments    = 24
	auraStroke      = 1.5
	ringStroke      = 1.0
	surfaceBorder   = 1.0
	hudStatsOffsetY = 14
)

// Draw renders the scene onto screen. World coordinates are document
// coordinates; the viewport scroll is subtracted here. Nodes draw in tree
// order, siblings ordered by ZIndex.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.closed {
		return
	}
	scroll := e.vp.Scroll()
	e.drawNode(screen, e.root, scroll)
	e.flushScreenshots(screen)
}

func (e *Engine) drawNode(dst *ebiten.Image, n *Node, scroll Vec2) {
	if !n.Visible || !n.worldValid {
		return
	}
	switch n.Type {
	case NodeTypeBox, NodeTypeMagnet:
		drawBox(dst, n, scroll)
	case NodeTypeSurface:
		drawSurface(dst, n, scroll)
	case NodeTypeRings:
		drawRings(dst, n, scroll)
	case NodeTypeCursor:
		drawCursor(dst, n, scroll)
	case NodeTypeHUD:
		drawHUD(dst, n)
	}
	for _, child := range n.drawOrder() {
		e.drawNode(dst, child, scroll)
	}
}

// tint returns c with its alpha scaled by the node's inherited alpha.
func tint(c Color, alpha float64) color.RGBA {
	c.A *= alpha
	return c.toRGBA()
}

func drawBox(dst *ebiten.Image, n *Node, scroll Vec2) {
	b := n.WorldBounds().Translate(-scroll.X, -scroll.Y)
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	vector.FillRect(dst, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height),
		tint(n.Color, n.worldAlpha), false)
}

func drawSurface(dst *ebiten.Image, n *Node, scroll Vec2) {
	b := n.WorldBounds().Translate(-scroll.X, -scroll.Y)
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	p := n.Surface.params
	vector.FillRect(dst, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height),
		tint(n.Color, n.worldAlpha), false)
	if p.Glow > 0 {
		drawGlow(dst, b, p)
	}
	border := Color{1, 1, 1, 0.1 + 0.2*p.Glow}
	vector.StrokeRect(dst, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height),
		surfaceBorder, tint(border, n.worldAlpha), true)
}

// drawGlow approximates a radial gradient centered at the smoothed cursor
// position with stacked translucent discs, clipped to the surface.
func drawGlow(dst *ebiten.Image, b Rect, p Params) {
	sub := dst.SubImage(rectImage(b)).(*ebiten.Image)
	cx := float32(b.X + b.Width*p.MX/100)
	cy := float32(b.Y + b.Height*p.MY/100)
	step := p.Glow * 0.15 / glowSteps
	for i := glowSteps; i >= 1; i-- {
		r := float32(glowRadius * float64(i) / glowSteps)
		vector.FillCircle(sub, cx, cy, r, tint(Color{1, 1, 1, step}, 1), true)
	}
}

// rectImage returns the pixel rectangle covering r.
func rectImage(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}

func drawRings(dst *ebiten.Image, n *Node, scroll Vec2) {
	r := n.Rings
	ox, oy := transformPoint(n.worldTransform, 0, 0)
	ox -= scroll.X
	oy -= scroll.Y
	for i := r.Len() - 1; i >= 0; i-- {
		s := r.rings[i]
		cx := float32(ox + s.Offset.X)
		cy := float32(oy + s.Offset.Y)
		radius := float32(s.Size / 2)
		c := tint(Color{1, 1, 1, s.Opacity}, n.worldAlpha)
		vector.StrokeCircle(dst, cx, cy, radius, ringStroke, c, true)
		// Orientation tick.
		sin, cos := math.Sincos(s.RotZ * math.Pi / 180)
		vector.StrokeLine(dst,
			cx+float32(cos)*radius, cy+float32(sin)*radius,
			cx+float32(cos)*(radius-6), cy+float32(sin)*(radius-6),
			ringStroke, c, true)
	}
	core := r.Core()
	vector.FillCircle(dst, float32(ox+core.X*ringSpread), float32(oy+core.Y*ringSpread), 3,
		tint(n.Color, n.worldAlpha), true)
}

func drawCursor(dst *ebiten.Image, n *Node, scroll Vec2) {
	c := n.Cursor
	if c.Hidden || !c.began {
		return
	}
	clr := tint(n.Color, n.worldAlpha)
	vector.FillCircle(dst, float32(c.Dot.X-scroll.X), float32(c.Dot.Y-scroll.Y), cursorDotRadius, clr, true)

	// Ellipse stretched along the direction of travel.
	ax, ay := c.Aura.X-scroll.X, c.Aura.Y-scroll.Y
	rx := cursorAuraRadius * c.StretchX
	ry := cursorAuraRadius * c.SquashY
	sinA, cosA := math.Sincos(c.Angle * math.Pi / 180)
	point := func(k int) (float32, float32) {
		t := 2 * math.Pi * float64(k) / auraSegments
		ex, ey := rx*math.Cos(t), ry*math.Sin(t)
		return float32(ax + ex*cosA - ey*sinA), float32(ay + ex*sinA + ey*cosA)
	}
	aura := tint(Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * 0.6}, n.worldAlpha)
	px, py := point(0)
	for k := 1; k <= auraSegments; k++ {
		x, y := point(k)
		vector.StrokeLine(dst, px, py, x, y, auraStroke, aura, true)
		px, py = x, y
	}
}

// drawHUD draws the speed bars and the stats line. HUD nodes are placed in
// viewport space and ignore scroll.
func drawHUD(dst *ebiten.Image, n *Node) {
	h := n.HUD
	ox, oy := transformPoint(n.worldTransform, 0, 0)
	for i := 0; i < hudBars; i++ {
		x := ox + float64(i)*hudBarGap
		c := tint(Color{n.Color.R, n.Color.G, n.Color.B, h.opacity[i]}, n.worldAlpha)
		vector.FillRect(dst, float32(x), float32(oy-h.BarHeight), hudBarWidth, float32(h.BarHeight), c, false)
	}
	if h.statsDirty {
		h.stats = fmt.Sprintf("FPS %.0f  TPS %.0f  V %.0fpx/s", ebiten.ActualFPS(), ebiten.ActualTPS(), h.Speed)
		h.statsDirty = false
	}
	ebitenutil.DebugPrintAt(dst, h.stats, int(ox), int(oy)+hudStatsOffsetY)
}
