package kinetic

import (
	"fmt"
	"testing"
)

// countingElement is a document-space box that counts reads and can be made
// to fail.
type countingElement struct {
	doc   Rect
	reads int
	fail  bool
}

func (c *countingElement) BoundingRect(vp *Viewport) (Rect, bool) {
	c.reads++
	if c.fail {
		return Rect{}, false
	}
	return StaticElement(c.doc).BoundingRect(vp)
}

func newTestRegistry() (*Registry, *Viewport) {
	vp := NewViewport(800, 600)
	return NewRegistry(vp, nil, 400), vp
}

func TestRegistry_NullBeforeFirstMeasurement(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register("card", &countingElement{doc: Rect{100, 100, 200, 200}})

	if _, ok := r.GetRect("card"); ok {
		t.Fatal("GetRect before any read phase should be unknown")
	}
	r.Flush()
	got, ok := r.GetRect("card")
	if !ok {
		t.Fatal("GetRect after read phase should be known")
	}
	if got != (Rect{100, 100, 200, 200}) {
		t.Errorf("rect = %v, want {100 100 200 200}", got)
	}
}

func TestRegistry_NeverRevertsToUnknown(t *testing.T) {
	r, vp := newTestRegistry()
	el := &countingElement{doc: Rect{10, 10, 50, 50}}
	r.Register("a", el)
	r.Flush()

	el.fail = true
	for i := 0; i < 5; i++ {
		vp.ScrollBy(0, 1)
		r.Flush()
		if _, ok := r.GetRect("a"); !ok {
			t.Fatalf("frame %d: rect reverted to unknown after failed read", i)
		}
	}
	if got, _ := r.GetRect("a"); got != (Rect{10, 10, 50, 50}) {
		t.Errorf("rect = %v, want last successful measurement", got)
	}
}

func TestRegistry_DocumentCoordinates(t *testing.T) {
	r, vp := newTestRegistry()
	vp.SetScroll(0, 500)
	r.Register("a", &countingElement{doc: Rect{20, 700, 100, 100}})
	r.Flush()
	got, ok := r.GetRect("a")
	if !ok || got != (Rect{20, 700, 100, 100}) {
		t.Errorf("rect = %v (ok %v), want document rect {20 700 100 100}", got, ok)
	}
}

func TestRegistry_RegisterIdempotent(t *testing.T) {
	vp := NewViewport(800, 600)
	obs := NewRectObserver()
	r := NewRegistry(vp, obs, 400)
	el := &countingElement{doc: Rect{0, 0, 10, 10}}
	for i := 0; i < 4; i++ {
		r.Register("dup", el)
	}
	if r.Len() != 1 {
		t.Errorf("registry Len = %d, want 1", r.Len())
	}
	if obs.Len() != 1 {
		t.Errorf("observer Len = %d, want 1", obs.Len())
	}
	r.Flush()
	if el.reads != 1 {
		// The read phase reuses the observer's rect.
		t.Errorf("reads = %d, want 1", el.reads)
	}
}

func TestRegistry_InvalidateReadsWithoutObserverRect(t *testing.T) {
	r, _ := newTestRegistry()
	el := &countingElement{doc: Rect{0, 0, 100, 100}}
	r.Register("a", el)
	r.Flush()

	// The view is still, so the observer does not read and the read phase
	// must measure the element itself.
	el.doc = Rect{0, 0, 140, 100}
	r.Invalidate()
	stats := r.Flush()
	if el.reads != 2 || stats.Reads != 1 {
		t.Errorf("reads = %d, stats.Reads = %d, want 2 and 1", el.reads, stats.Reads)
	}
	if got, _ := r.GetRect("a"); got.Width != 140 {
		t.Errorf("width = %v, want 140", got.Width)
	}
}

func TestRegistry_SwapHiddenToVisible(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register("a", &countingElement{doc: Rect{0, 5000, 100, 100}})
	r.Flush()
	r.Flush()
	if r.Visible("a") {
		t.Fatal("element far below the fold should be hidden")
	}

	r.Register("a", &countingElement{doc: Rect{100, 100, 200, 200}})
	r.Flush()
	got, ok := r.GetRect("a")
	if !ok {
		t.Fatal("swapped-in onscreen element should be measured")
	}
	if got != (Rect{100, 100, 200, 200}) {
		t.Errorf("rect = %v, want {100 100 200 200}", got)
	}
}

func TestRegistry_MeasuresOnceLayoutExists(t *testing.T) {
	r, _ := newTestRegistry()
	el := &countingElement{doc: Rect{100, 100, 50, 50}, fail: true}
	r.Register("late", el)
	r.Flush()
	r.Flush()
	if _, ok := r.GetRect("late"); ok {
		t.Fatal("element without layout should be unknown")
	}

	// Layout arrives while the view stays still.
	el.fail = false
	r.Flush()
	if _, ok := r.GetRect("late"); !ok {
		t.Error("element should be measured once it has layout")
	}
}

func TestRegistry_NilElementIgnored(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register("nil", nil)
	if r.Registered("nil") {
		t.Error("nil element should not be registered")
	}
}

func TestRegistry_NeverVisibleStaysUnknown(t *testing.T) {
	r, vp := newTestRegistry()
	el := &countingElement{doc: Rect{0, 10000, 100, 100}}
	r.Register("offscreen", el)
	for i := 0; i < 30; i++ {
		vp.ScrollBy(0, 5)
		r.Flush()
	}
	if _, ok := r.GetRect("offscreen"); ok {
		t.Error("element outside the observed region should never be measured")
	}
	if r.Visible("offscreen") {
		t.Error("element should not be visible")
	}
}

func TestRegistry_ScrollDebouncedPerFrame(t *testing.T) {
	r, vp := newTestRegistry()
	el := &countingElement{doc: Rect{0, 0, 100, 100}}
	r.Register("a", el)
	r.Flush()
	before := el.reads

	for i := 0; i < 20; i++ {
		vp.ScrollBy(0, 1)
	}
	vp.Resize(801, 600)
	stats := r.Flush()

	// One observer re-check (view moved), reused by the read phase.
	if el.reads-before != 1 {
		t.Errorf("reads for 20 scroll events = %d, want 1", el.reads-before)
	}
	if stats.Reads != 1 {
		t.Errorf("stats.Reads = %d, want 1", stats.Reads)
	}
}

func TestRegistry_IdleFrameDoesNotRead(t *testing.T) {
	r, _ := newTestRegistry()
	el := &countingElement{doc: Rect{0, 0, 100, 100}}
	r.Register("a", el)
	r.Flush()
	before := el.reads
	for i := 0; i < 10; i++ {
		r.Flush()
	}
	if el.reads != before {
		t.Errorf("idle frames read geometry %d times", el.reads-before)
	}
}

func TestRegistry_InvalidateRemeasures(t *testing.T) {
	r, _ := newTestRegistry()
	el := &countingElement{doc: Rect{0, 0, 100, 100}}
	r.Register("a", el)
	r.Flush()

	el.doc = Rect{0, 0, 120, 100} // fonts loaded, box grew
	r.Invalidate()
	r.Flush()
	if got, _ := r.GetRect("a"); got.Width != 120 {
		t.Errorf("width after invalidate = %v, want 120", got.Width)
	}
}

func TestRegistry_VisibilityTriggersMeasurement(t *testing.T) {
	r, vp := newTestRegistry()
	el := &countingElement{doc: Rect{0, 3000, 100, 100}}
	r.Register("below", el)
	r.Flush()
	if _, ok := r.GetRect("below"); ok {
		t.Fatal("should not be measured while far below the fold")
	}

	// Scroll so the element is inside the 400px look-ahead but not on screen.
	vp.SetScroll(0, 2100)
	r.Flush()
	got, ok := r.GetRect("below")
	if !ok {
		t.Fatal("element inside the look-ahead margin should be measured")
	}
	if got.Y != 3000 {
		t.Errorf("rect Y = %v, want 3000", got.Y)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	vp := NewViewport(800, 600)
	obs := NewRectObserver()
	r := NewRegistry(vp, obs, 400)
	for i := 0; i < 50; i++ {
		r.Register(fmt.Sprintf("el-%d", i), &countingElement{doc: Rect{0, 0, 10, 10}})
	}
	r.Flush()
	for i := 0; i < 50; i++ {
		r.Unregister(fmt.Sprintf("el-%d", i))
	}
	if r.Len() != 0 || obs.Len() != 0 {
		t.Errorf("after unregister: registry %d, observer %d, want 0/0", r.Len(), obs.Len())
	}
	if _, ok := r.GetRect("el-0"); ok {
		t.Error("unregistered element should be unknown")
	}
	r.Unregister("el-0") // no-op
}

func TestRegistry_UnregisterDuringRead(t *testing.T) {
	r, _ := newTestRegistry()
	victim := &countingElement{doc: Rect{0, 0, 10, 10}}
	calls := 0
	r.Register("killer", ElementFunc(func(vp *Viewport) (Rect, bool) {
		calls++
		if calls == 2 { // the invalidated read, after the observer's first read
			r.Unregister("killer")
			r.Unregister("victim")
		}
		return Rect{0, 0, 10, 10}, true
	}))
	r.Register("victim", victim)
	r.Flush()

	r.Invalidate()
	stats := r.Flush()
	if stats.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1 (the self-unregistering read)", stats.Dropped)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
	if _, ok := r.GetRect("killer"); ok {
		t.Error("stale read must not repopulate the cache")
	}
	if victim.reads != 1 {
		t.Errorf("victim reads = %d, want 1", victim.reads)
	}
}

func TestRegistry_Callbacks(t *testing.T) {
	r, vp := newTestRegistry()
	var measured []bool
	var shown, hidden int
	r.OnMeasured = func(id string, rect Rect, first bool) { measured = append(measured, first) }
	r.OnVisibility = func(id string, visible bool) {
		if visible {
			shown++
		} else {
			hidden++
		}
	}
	r.Register("a", &countingElement{doc: Rect{0, 0, 10, 10}})
	r.Flush()
	r.MeasureNow()
	vp.SetScroll(0, 5000)
	r.Flush()

	if len(measured) != 2 || !measured[0] || measured[1] {
		t.Errorf("measured firsts = %v, want [true false]", measured)
	}
	if shown != 1 || hidden != 1 {
		t.Errorf("shown=%d hidden=%d, want 1/1", shown, hidden)
	}
}

func TestRegistry_Close(t *testing.T) {
	r, _ := newTestRegistry()
	r.Register("a", &countingElement{doc: Rect{0, 0, 10, 10}})
	r.Close()
	if r.Len() != 0 {
		t.Errorf("Len after Close = %d", r.Len())
	}
	r.Flush() // must not panic
}
