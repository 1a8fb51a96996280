package kinetic

// Element is anything whose layout box can be measured. Reading the box is
// assumed to be expensive: the registry only does it in its batched read
// phase.
type Element interface {
	// BoundingRect reports the element's box relative to the viewport's
	// top-left corner. ok is false while the element has no layout.
	BoundingRect(vp *Viewport) (r Rect, ok bool)
}

// ElementFunc adapts a function to the Element interface.
type ElementFunc func(vp *Viewport) (Rect, bool)

// BoundingRect calls f(vp).
func (f ElementFunc) BoundingRect(vp *Viewport) (Rect, bool) {
	return f(vp)
}

// StaticElement is an Element with a fixed document-space box, handy for
// elements laid out once and for tests.
type StaticElement Rect

// BoundingRect converts the fixed document box to viewport coordinates.
func (s StaticElement) BoundingRect(vp *Viewport) (Rect, bool) {
	r := Rect(s)
	sx, sy := vp.DocumentToScreen(r.X, r.Y)
	return Rect{X: sx, Y: sy, Width: r.Width, Height: r.Height}, true
}

// VisibilityChange reports that an observed element entered or left the
// observed region.
type VisibilityChange struct {
	ID      string
	Visible bool
}

// VisibilityObserver watches elements against the viewport grown by a
// margin and reports state changes. Implementations may be backed by the
// platform; RectObserver is the portable default.
type VisibilityObserver interface {
	Observe(id string, el Element)
	Unobserve(id string)
	// Poll appends the changes since the previous poll to buf. A newly
	// observed element always reports its initial state.
	Poll(vp *Viewport, margin float64, buf []VisibilityChange) []VisibilityChange
	Disconnect()
}

// RectCache is implemented by observers that keep the rects they read while
// polling. The registry reuses them instead of reading an element twice in
// one frame.
type RectCache interface {
	PolledRect(id string) (Rect, bool)
}

type observedState uint8

const (
	stateUnknown observedState = iota
	stateVisible
	stateHidden
)

type observed struct {
	id    string
	el    Element
	state observedState
	// retry re-checks the element on the next poll even when the view is
	// still: its last read failed or its element was swapped.
	retry bool

	rect     Rect // viewport coordinates, from the poll numbered rectPoll
	rectPoll int
}

// RectObserver is a VisibilityObserver that tests bounding rects against
// the margin-expanded viewport. It only re-reads rects when the visible
// region moves, an element is newly observed or swapped, its last read
// failed, or every Interval polls when Interval is positive.
type RectObserver struct {
	// Interval forces a full re-check every Interval polls so elements that
	// move without the viewport moving are noticed. Zero disables it.
	Interval int

	entries  []*observed
	index    map[string]*observed
	pollBuf  []*observed
	lastView Rect
	polled   bool
	polls    int
}

// NewRectObserver creates an empty RectObserver.
func NewRectObserver() *RectObserver {
	return &RectObserver{index: make(map[string]*observed)}
}

// Observe starts watching el under id. Observing an id again swaps the
// element without creating a second entry, and the next poll re-checks it.
func (o *RectObserver) Observe(id string, el Element) {
	if e, ok := o.index[id]; ok {
		e.el = el
		e.retry = true
		e.rectPoll = 0
		return
	}
	e := &observed{id: id, el: el}
	o.index[id] = e
	o.entries = append(o.entries, e)
}

// Unobserve stops watching id. No-op for unknown ids.
func (o *RectObserver) Unobserve(id string) {
	e, ok := o.index[id]
	if !ok {
		return
	}
	delete(o.index, id)
	for i, c := range o.entries {
		if c == e {
			copy(o.entries[i:], o.entries[i+1:])
			o.entries[len(o.entries)-1] = nil
			o.entries = o.entries[:len(o.entries)-1]
			return
		}
	}
}

// Len returns the number of observed elements.
func (o *RectObserver) Len() int {
	return len(o.entries)
}

// PolledRect returns the rect of id read during the most recent Poll, so a
// read phase in the same frame can reuse it instead of measuring again. ok is
// false if the element was not read successfully by that poll.
func (o *RectObserver) PolledRect(id string) (Rect, bool) {
	e, ok := o.index[id]
	if !ok || e.rectPoll == 0 || e.rectPoll != o.polls {
		return Rect{}, false
	}
	return e.rect, true
}

// Disconnect stops watching everything.
func (o *RectObserver) Disconnect() {
	for i := range o.entries {
		o.entries[i] = nil
	}
	o.entries = o.entries[:0]
	o.index = make(map[string]*observed)
}

// Poll implements VisibilityObserver.
func (o *RectObserver) Poll(vp *Viewport, margin float64, buf []VisibilityChange) []VisibilityChange {
	view := vp.VisibleBounds()
	o.polls++
	full := !o.polled || view != o.lastView || (o.Interval > 0 && o.polls%o.Interval == 0)
	o.polled = true
	o.lastView = view

	w, h := vp.Size()
	region := Rect{Width: w, Height: h}.Inset(margin)

	// Iterate a snapshot: reading a rect may unobserve elements.
	o.pollBuf = append(o.pollBuf[:0], o.entries...)
	for _, e := range o.pollBuf {
		if _, live := o.index[e.id]; !live {
			continue
		}
		if !full && !e.retry && e.state != stateUnknown {
			continue
		}
		// An element without layout reads as hidden but is retried every
		// poll until it measures.
		next := stateHidden
		r, ok := e.el.BoundingRect(vp)
		e.retry = !ok
		if ok {
			e.rect, e.rectPoll = r, o.polls
			if r.Intersects(region) {
				next = stateVisible
			}
		}
		if next != e.state {
			e.state = next
			buf = append(buf, VisibilityChange{ID: e.id, Visible: next == stateVisible})
		}
	}
	for i := range o.pollBuf {
		o.pollBuf[i] = nil
	}
	return buf
}
