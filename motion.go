package kinetic

// Motion is the cursor position normalized to an element's bounds plus its
// hover flag.
type Motion struct {
	RelX, RelY float64 // [0, 1]
	Over       bool
}

// NeutralMotion is reported while an element has no measured rect: the
// midpoint, optimistically hovered.
var NeutralMotion = Motion{RelX: 0.5, RelY: 0.5, Over: true}

// OverValue returns Over as 0 or 1.
func (m Motion) OverValue() float64 {
	if m.Over {
		return 1
	}
	return 0
}

// RelativeMotion derives the motion of cursor relative to rect. Both are in
// document coordinates. When known is false the rect is ignored and
// NeutralMotion is returned. Hover bounds are inclusive. A zero-sized axis
// maps to the midpoint on that axis.
func RelativeMotion(cursor Vec2, rect Rect, known bool) Motion {
	if !known {
		return NeutralMotion
	}
	return Motion{
		RelX: relAxis(cursor.X, rect.X, rect.Width),
		RelY: relAxis(cursor.Y, rect.Y, rect.Height),
		Over: rect.Contains(cursor.X, cursor.Y),
	}
}

func relAxis(c, start, size float64) float64 {
	if size <= 0 {
		return 0.5
	}
	v := (c - start) / size
	if !isFinite(v) {
		return 0.5
	}
	return clamp01(v)
}

// MotionTracker is the live relative motion of one registered element. It is
// refreshed once per frame, after the read phase. Obtain one from
// Engine.TrackRelativeMotion and Close it when the consumer goes away.
type MotionTracker struct {
	id     string
	engine *Engine

	motion  Motion
	known   bool
	hovered bool // Over on a measured rect; drives enter/leave events
	rect    Rect // last measured rect, kept after the element is dropped
	closed  bool

	// OnChange, if set, fires after a frame in which the motion changed.
	OnChange func(Motion)
}

// ID returns the tracked element id.
func (t *MotionTracker) ID() string {
	return t.id
}

// Motion returns the most recent motion.
func (t *MotionTracker) Motion() Motion {
	return t.motion
}

// RelX returns the normalized horizontal position.
func (t *MotionTracker) RelX() float64 {
	return t.motion.RelX
}

// RelY returns the normalized vertical position.
func (t *MotionTracker) RelY() float64 {
	return t.motion.RelY
}

// IsOver reports the hover flag.
func (t *MotionTracker) IsOver() bool {
	return t.motion.Over
}

// Known reports whether the element's rect has been measured.
func (t *MotionTracker) Known() bool {
	return t.known
}

// Closed reports whether Close has been called.
func (t *MotionTracker) Closed() bool {
	return t.closed
}

// Close stops tracking. The element is unregistered once no other tracker
// references its id. Safe to call more than once.
func (t *MotionTracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	if t.engine != nil {
		t.engine.releaseTracker(t)
	}
	t.OnChange = nil
}

// derive recomputes the motion and reports hover transitions.
func (t *MotionTracker) derive(cursor Vec2, rect Rect, known bool) (entered, left bool) {
	m := RelativeMotion(cursor, rect, known)
	changed := m != t.motion
	t.motion = m
	t.known = known
	if known {
		t.rect = rect
	}

	hovered := known && m.Over
	entered = hovered && !t.hovered
	left = !hovered && t.hovered
	t.hovered = hovered

	if changed && t.OnChange != nil {
		t.OnChange(m)
	}
	return entered, left
}
