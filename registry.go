package kinetic

import "time"

// registryEntry is one tracked element and its cached geometry.
type registryEntry struct {
	id       string
	el       Element
	rect     Rect // document coordinates; valid only when measured
	measured bool
	visible  bool
	pending  bool
}

// RegistryStats describes the most recent read phase.
type RegistryStats struct {
	Entries  int
	Visible  int
	Reads    int
	Dropped  int
	ReadTime time.Duration
}

// Registry maps element ids to cached document-space rects. Rects are read
// in one batched phase per frame, and only for elements the visibility
// observer reports as inside the margin-expanded viewport.
type Registry struct {
	vp       *Viewport
	observer VisibilityObserver
	margin   float64

	entries     map[string]*registryEntry
	order       []*registryEntry // registration order, iterated by the read phase
	invalidated bool

	changeBuf []VisibilityChange
	readBuf   []*registryEntry
	stats     RegistryStats

	// OnMeasured fires after a successful read. first is true for the
	// element's first measurement.
	OnMeasured func(id string, r Rect, first bool)
	// OnVisibility fires when the observer reports a state change.
	OnVisibility func(id string, visible bool)
}

// NewRegistry creates a registry reading geometry relative to vp. A nil
// observer uses a RectObserver.
func NewRegistry(vp *Viewport, observer VisibilityObserver, margin float64) *Registry {
	if observer == nil {
		observer = NewRectObserver()
	}
	return &Registry{
		vp:       vp,
		observer: observer,
		margin:   margin,
		entries:  make(map[string]*registryEntry),
	}
}

// Register starts tracking el under id and schedules a measurement for the
// next read phase. Registering an id again swaps its element without
// creating a second entry or observer. A nil element is ignored.
func (r *Registry) Register(id string, el Element) {
	if el == nil {
		return
	}
	if e, ok := r.entries[id]; ok {
		e.el = el
		e.pending = true
		r.observer.Observe(id, el)
		return
	}
	e := &registryEntry{id: id, el: el, pending: true}
	r.entries[id] = e
	r.order = append(r.order, e)
	r.observer.Observe(id, el)
}

// Unregister stops observing id and drops its cache entry. A read of the
// element already in progress is discarded.
func (r *Registry) Unregister(id string) {
	e, ok := r.entries[id]
	if !ok {
		return
	}
	delete(r.entries, id)
	r.observer.Unobserve(id)
	for i, c := range r.order {
		if c == e {
			copy(r.order[i:], r.order[i+1:])
			r.order[len(r.order)-1] = nil
			r.order = r.order[:len(r.order)-1]
			break
		}
	}
	e.el = nil
}

// Registered reports whether id is tracked.
func (r *Registry) Registered(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Len returns the number of tracked elements.
func (r *Registry) Len() int {
	return len(r.entries)
}

// GetRect returns the last successful measurement of id in document
// coordinates. ok is false until the first measurement, and for unknown
// ids; callers must treat that as "not yet known", not as zero geometry.
func (r *Registry) GetRect(id string) (Rect, bool) {
	e, ok := r.entries[id]
	if !ok || !e.measured {
		return Rect{}, false
	}
	return e.rect, true
}

// Visible reports whether the observer last saw id inside the region.
func (r *Registry) Visible(id string) bool {
	e, ok := r.entries[id]
	return ok && e.visible
}

// Invalidate schedules every visible element for the next read phase. Use it
// when layout may have shifted, e.g. after web fonts finish loading.
func (r *Registry) Invalidate() {
	r.invalidated = true
}

// Stats returns figures from the most recent Flush.
func (r *Registry) Stats() RegistryStats {
	return r.stats
}

// Flush runs one frame of the registry: it applies visibility changes,
// folds scroll/resize/invalidate notifications into one pass, then reads
// every pending visible element. Reads are never interleaved with writes to
// anything other than the cache itself.
func (r *Registry) Flush() RegistryStats {
	r.changeBuf = r.observer.Poll(r.vp, r.margin, r.changeBuf[:0])
	for _, c := range r.changeBuf {
		e, ok := r.entries[c.ID]
		if !ok {
			continue
		}
		e.visible = c.Visible
		if c.Visible {
			e.pending = true
		}
		if r.OnVisibility != nil {
			r.OnVisibility(c.ID, c.Visible)
		}
	}

	scrolled, resized := r.vp.consumeChanges()
	if scrolled || resized || r.invalidated {
		for _, e := range r.order {
			if e.visible {
				e.pending = true
			}
		}
		r.invalidated = false
	}

	return r.readPhase()
}

// readPhase measures every pending visible entry in registration order. A
// rect the observer already read this frame is reused, not read again.
func (r *Registry) readPhase() RegistryStats {
	t0 := time.Now()
	stats := RegistryStats{Entries: len(r.entries)}

	// Iterate a snapshot: a read may unregister elements.
	r.readBuf = append(r.readBuf[:0], r.order...)
	scroll := r.vp.Scroll()
	for _, e := range r.readBuf {
		if e.visible {
			stats.Visible++
		}
		if !e.pending || !e.visible || e.el == nil {
			continue
		}
		br, ok := r.cachedRect(e.id)
		if !ok {
			br, ok = e.el.BoundingRect(r.vp)
		}
		stats.Reads++
		if r.entries[e.id] != e {
			// Unregistered while reading.
			stats.Dropped++
			continue
		}
		e.pending = false
		if !ok || !isFinite(br.X) || !isFinite(br.Y) || !isFinite(br.Width) || !isFinite(br.Height) {
			continue
		}
		first := !e.measured
		e.rect = br.Translate(scroll.X, scroll.Y)
		e.measured = true
		if r.OnMeasured != nil {
			r.OnMeasured(e.id, e.rect, first)
		}
	}
	for i := range r.readBuf {
		r.readBuf[i] = nil
	}
	stats.ReadTime = time.Since(t0)
	r.stats = stats
	return stats
}

// cachedRect returns the rect the observer read for id during this frame's
// poll, if the observer keeps one.
func (r *Registry) cachedRect(id string) (Rect, bool) {
	c, ok := r.observer.(RectCache)
	if !ok {
		return Rect{}, false
	}
	return c.PolledRect(id)
}

// MeasureNow forces a read of every visible element outside the normal
// frame cadence.
func (r *Registry) MeasureNow() RegistryStats {
	r.Invalidate()
	return r.Flush()
}

// Close disconnects the observer and forgets every element.
func (r *Registry) Close() {
	r.observer.Disconnect()
	for _, e := range r.order {
		e.el = nil
	}
	r.order = r.order[:0]
	r.entries = make(map[string]*registryEntry)
}
