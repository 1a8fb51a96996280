package kinetic

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the X and Y offsets.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport is the visible window onto the document: a scroll offset and a
// size. Document coordinates are viewport coordinates plus the scroll
// offset.
type Viewport struct {
	scrollX, scrollY float64
	width, height    float64

	// BoundsEnabled clamps the scroll offset so the view stays within
	// Document.
	BoundsEnabled bool
	// Document is the scrollable extent in document coordinates.
	Document Rect

	scrolled bool // scroll offset changed since the last consume
	resized  bool // size changed since the last consume

	scrollTween *scrollAnim
}

// NewViewport creates a viewport of the given size at scroll offset (0, 0).
func NewViewport(width, height float64) *Viewport {
	return &Viewport{width: width, height: height}
}

// Size returns the viewport width and height.
func (v *Viewport) Size() (w, h float64) {
	return v.width, v.height
}

// Center returns the viewport midpoint in viewport coordinates.
func (v *Viewport) Center() Vec2 {
	return Vec2{X: v.width / 2, Y: v.height / 2}
}

// Scroll returns the current scroll offset.
func (v *Viewport) Scroll() Vec2 {
	return Vec2{X: v.scrollX, Y: v.scrollY}
}

// Resize changes the viewport size. Returns true if the size changed.
func (v *Viewport) Resize(width, height float64) bool {
	if width == v.width && height == v.height {
		return false
	}
	v.width, v.height = width, height
	v.resized = true
	if v.BoundsEnabled {
		v.clampToBounds()
	}
	return true
}

// SetScroll jumps to the given scroll offset, cancelling any scroll
// animation.
func (v *Viewport) SetScroll(x, y float64) {
	v.scrollTween = nil
	v.setScroll(x, y)
}

// ScrollBy offsets the scroll position by (dx, dy).
func (v *Viewport) ScrollBy(dx, dy float64) {
	v.SetScroll(v.scrollX+dx, v.scrollY+dy)
}

func (v *Viewport) setScroll(x, y float64) {
	px, py := v.scrollX, v.scrollY
	v.scrollX, v.scrollY = x, y
	if v.BoundsEnabled {
		v.clampToBounds()
	}
	if v.scrollX != px || v.scrollY != py {
		v.scrolled = true
	}
}

// ScrollTo animates the scroll offset to (x, y) over duration seconds.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.scrollX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.scrollY), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// SetBounds enables scroll clamping to the given document extent.
func (v *Viewport) SetBounds(doc Rect) {
	v.BoundsEnabled = true
	v.Document = doc
	v.setScroll(v.scrollX, v.scrollY)
}

// ClearBounds disables scroll clamping.
func (v *Viewport) ClearBounds() {
	v.BoundsEnabled = false
}

// update advances the scroll animation. Called once per frame.
func (v *Viewport) update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	x, y := v.scrollX, v.scrollY
	if !v.scrollTween.doneX {
		val, done := v.scrollTween.tweenX.Update(dt)
		x = float64(val)
		v.scrollTween.doneX = done
	}
	if !v.scrollTween.doneY {
		val, done := v.scrollTween.tweenY.Update(dt)
		y = float64(val)
		v.scrollTween.doneY = done
	}
	if v.scrollTween.doneX && v.scrollTween.doneY {
		v.scrollTween = nil
	}
	v.setScroll(x, y)
}

// clampToBounds restricts the scroll offset so the view stays inside
// Document. A document smaller than the view pins the offset to its origin.
func (v *Viewport) clampToBounds() {
	maxX := v.Document.X + v.Document.Width - v.width
	maxY := v.Document.Y + v.Document.Height - v.height
	v.scrollX = math.Max(v.Document.X, math.Min(v.scrollX, math.Max(maxX, v.Document.X)))
	v.scrollY = math.Max(v.Document.Y, math.Min(v.scrollY, math.Max(maxY, v.Document.Y)))
}

// consumeChanges reports and clears the scroll and resize flags. The
// registry calls it once per read phase, which debounces any number of
// scroll or resize notifications within a frame into one measurement.
func (v *Viewport) consumeChanges() (scrolled, resized bool) {
	scrolled, resized = v.scrolled, v.resized
	v.scrolled, v.resized = false, false
	return
}

// DocumentToScreen converts document coordinates to viewport coordinates.
func (v *Viewport) DocumentToScreen(dx, dy float64) (sx, sy float64) {
	return dx - v.scrollX, dy - v.scrollY
}

// ScreenToDocument converts viewport coordinates to document coordinates.
func (v *Viewport) ScreenToDocument(sx, sy float64) (dx, dy float64) {
	return sx + v.scrollX, sy + v.scrollY
}

// VisibleBounds returns the visible area in document coordinates.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: v.scrollX, Y: v.scrollY, Width: v.width, Height: v.height}
}
