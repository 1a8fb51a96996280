package kinetic

// handlerRemover is implemented by everything that hands out CallbackHandles.
type handlerRemover interface {
	removeHandler(event EventType, id uint32)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   handlerRemover
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.removeHandler(h.event, h.id)
}

type signalSub[T any] struct {
	id uint32
	fn func(T)
}

// Signal is a reactive value owned by the Engine. Readers call Get at any
// time; subscribers are notified once per frame, at the end of Update, if
// the value changed during that frame.
type Signal[T comparable] struct {
	value  T
	dirty  bool
	subs   []signalSub[T]
	nextID uint32
}

func newSignal[T comparable](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	return s.value
}

// Subscribe registers fn to be called with the new value after each frame
// in which it changed.
func (s *Signal[T]) Subscribe(fn func(T)) CallbackHandle {
	s.nextID++
	s.subs = append(s.subs, signalSub[T]{id: s.nextID, fn: fn})
	return CallbackHandle{id: s.nextID, reg: s}
}

func (s *Signal[T]) removeHandler(_ EventType, id uint32) {
	for i := range s.subs {
		if s.subs[i].id == id {
			copy(s.subs[i:], s.subs[i+1:])
			s.subs[len(s.subs)-1] = signalSub[T]{}
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// set stores v and marks the signal dirty if it differs.
func (s *Signal[T]) set(v T) {
	if v == s.value {
		return
	}
	s.value = v
	s.dirty = true
}

// notify delivers a pending change to subscribers.
func (s *Signal[T]) notify() {
	if !s.dirty {
		return
	}
	s.dirty = false
	v := s.value
	for i := 0; i < len(s.subs); i++ {
		s.subs[i].fn(v)
	}
}

// --- Engine-level event handlers ---

type motionHandler struct {
	id uint32
	fn func(MotionEvent)
}

const numEventTypes = int(EventElementShown) + 1

// handlerRegistry holds scene-level callbacks per event type.
type handlerRegistry struct {
	byType [numEventTypes][]motionHandler
	nextID uint32
}

func (r *handlerRegistry) add(event EventType, fn func(MotionEvent)) CallbackHandle {
	r.nextID++
	r.byType[event] = append(r.byType[event], motionHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

func (r *handlerRegistry) removeHandler(event EventType, id uint32) {
	if int(event) >= numEventTypes {
		return
	}
	s := r.byType[event]
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = motionHandler{}
			r.byType[event] = s[:len(s)-1]
			return
		}
	}
}

func (r *handlerRegistry) fire(ev MotionEvent) {
	if int(ev.Type) >= numEventTypes {
		return
	}
	hs := r.byType[ev.Type]
	for i := 0; i < len(hs); i++ {
		hs[i].fn(ev)
	}
}
