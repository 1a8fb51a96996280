package kinetic

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA for ebiten drawing calls.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, velocities and sizes throughout
// the API.
type Vec2 struct {
	X, Y float64
}

// Len returns the Euclidean norm of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Inset grows the rectangle by m on every side. Negative margins shrink it.
func (r Rect) Inset(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, Width: r.Width + 2*m, Height: r.Height + 2*m}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// NodeType distinguishes update and rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no behavior of its own
	NodeTypeBox                       // solid rectangle, the basic visual leaf
	NodeTypeSurface                   // measured, spring-smoothed parameter publisher
	NodeTypeLayer                     // passive parallax consumer of ancestor params
	NodeTypeRings                     // chained-spring ring assembly
	NodeTypeCursor                    // custom pointer indicator
	NodeTypeMagnet                    // cursor-attracted node
	NodeTypeHUD                       // speed bars and frame stats overlay
)

// EventType identifies a kind of motion event.
type EventType uint8

const (
	EventHoverEnter    EventType = iota // cursor entered a tracked element's rect
	EventHoverLeave                     // cursor left a tracked element's rect
	EventRectMeasured                   // an element's rect was measured for the first time
	EventElementHidden                  // an element left the observed region
	EventElementShown                   // an element entered the observed region
)

// String returns a short name for the event type.
func (t EventType) String() string {
	switch t {
	case EventHoverEnter:
		return "hover-enter"
	case EventHoverLeave:
		return "hover-leave"
	case EventRectMeasured:
		return "rect-measured"
	case EventElementHidden:
		return "element-hidden"
	case EventElementShown:
		return "element-shown"
	default:
		return "unknown"
	}
}

// InputMode selects which raw source feeds the virtual cursor.
type InputMode uint8

const (
	InputPointer     InputMode = iota // fine pointer: cursor follows the mouse
	InputOrientation                  // coarse pointer: cursor follows device tilt
)

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// MapRange linearly maps v from [inMin, inMax] to [outMin, outMax], clamping
// to the output range. A degenerate input range maps everything to outMin.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	t := clamp01((v - inMin) / (inMax - inMin))
	return lerp(outMin, outMax, t)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
