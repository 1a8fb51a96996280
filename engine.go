package kinetic

import (
	"context"
	"time"

	"github.com/soninewmedia/kinetic/internal/log"
)

// EntityStore is the interface for optional ECS integration.
// When set on an Engine, motion events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event MotionEvent)
}

// MotionEvent carries a hover, measurement or visibility change for the
// event handlers and the ECS bridge.
type MotionEvent struct {
	Type      EventType
	ElementID string
	Frame     uint64
	// Cursor in document coordinates when the event fired.
	CursorX, CursorY float64
	// Relative motion for hover events.
	RelX, RelY float64
	// Rect for hover and measurement events.
	Rect Rect
}

// permissionRequest is the one-shot orientation permission exchange. granted
// is written before done is closed.
type permissionRequest struct {
	done    chan struct{}
	granted bool
}

// Engine owns the virtual cursor, the element registry, the motion trackers
// and the scene graph, and runs the whole pipeline once per Update. Create
// one per application and pass it to whatever needs it. All methods must be
// called from the goroutine that calls Update.
type Engine struct {
	cfg   Config
	root  *Node
	store EntityStore
	debug bool

	vp       *Viewport
	registry *Registry
	fusion   *InputFusion
	velocity VelocityTracker

	host        Host
	orientation OrientationSource
	requester   PermissionRequester
	lastHost    Vec2
	hostPolled  bool

	ctx         context.Context
	cancel      context.CancelFunc
	perm        *permissionRequest
	permApplied bool

	cursor *Signal[Vec2]
	vel    *Signal[Vec2]
	mobile *Signal[bool]

	trackers    []*MotionTracker
	trackerBuf  []*MotionTracker
	trackerRefs map[string]int
	surfaces    map[*Surface]struct{}

	handlers    handlerRegistry
	tweens      []*TweenGroup
	injectQueue []syntheticEvent
	testRunner  *TestRunner

	// ScreenshotDir is where Screenshot writes PNGs. Empty means
	// "screenshots" in the working directory.
	ScreenshotDir   string
	screenshotQueue []string

	clock  float64 // seconds
	frame  uint64
	closed bool
}

// NewEngine creates an engine for a width×height viewport. An invalid cfg
// is replaced by DefaultConfig and logged.
func NewEngine(cfg Config, width, height float64) *Engine {
	if err := cfg.Validate(); err != nil {
		log.Warn("invalid engine config, using defaults", "err", err)
		cfg = DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())
	vp := NewViewport(width, height)
	e := &Engine{
		cfg:         cfg,
		root:        NewContainer("root"),
		vp:          vp,
		registry:    NewRegistry(vp, nil, cfg.RootMargin),
		fusion:      NewInputFusion(cfg, width, height, InputPointer),
		ctx:         ctx,
		cancel:      cancel,
		trackerRefs: make(map[string]int),
		surfaces:    make(map[*Surface]struct{}),
	}
	// Without a requester the platform does not gate orientation access.
	e.fusion.SetOrientationAllowed(true)

	center := vp.Center()
	e.cursor = newSignal(center)
	e.vel = newSignal(Vec2{})
	e.mobile = newSignal(false)

	e.registry.OnMeasured = func(id string, r Rect, first bool) {
		if first {
			c := e.cursor.Get()
			e.emit(MotionEvent{Type: EventRectMeasured, ElementID: id, CursorX: c.X, CursorY: c.Y, Rect: r})
		}
	}
	e.registry.OnVisibility = func(id string, visible bool) {
		t := EventElementHidden
		if visible {
			t = EventElementShown
		}
		c := e.cursor.Get()
		e.emit(MotionEvent{Type: t, ElementID: id, CursorX: c.X, CursorY: c.Y})
	}
	return e
}

// Root returns the scene's root container node.
func (e *Engine) Root() *Node {
	return e.root
}

// Config returns the engine's tuning.
func (e *Engine) Config() Config {
	return e.cfg
}

// Viewport returns the viewport the engine measures against.
func (e *Engine) Viewport() *Viewport {
	return e.vp
}

// Registry returns the element registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Fusion returns the input fusion source.
func (e *Engine) Fusion() *InputFusion {
	return e.fusion
}

// Time returns the engine clock in seconds.
func (e *Engine) Time() float64 {
	return e.clock
}

// Frame returns the number of completed Update calls.
func (e *Engine) Frame() uint64 {
	return e.frame
}

// SetHost sets the platform polled for pointer and touch input. The input
// mode follows the host's pointer coarseness.
func (e *Engine) SetHost(h Host) {
	e.host = h
	e.hostPolled = false
	if h != nil {
		e.SetInputMode(modeFor(h.CoarsePointer()))
	}
}

// SetOrientationSource sets where orientation readings are polled from.
func (e *Engine) SetOrientationSource(s OrientationSource) {
	e.orientation = s
}

// SetPermissionRequester installs the platform permission prompt. With a
// requester set, orientation readings are ignored until access is granted.
func (e *Engine) SetPermissionRequester(fn PermissionRequester) {
	e.requester = fn
	if e.perm == nil {
		e.fusion.SetOrientationAllowed(fn == nil)
	}
}

// SetInputMode selects the cursor source explicitly.
func (e *Engine) SetInputMode(m InputMode) {
	e.fusion.SetMode(m)
	e.mobile.set(m == InputOrientation)
}

func modeFor(coarse bool) InputMode {
	if coarse {
		return InputOrientation
	}
	return InputPointer
}

// SetEntityStore sets the optional ECS bridge.
func (e *Engine) SetEntityStore(store EntityStore) {
	e.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are logged, and per-frame phase
// timings are logged at debug level.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Engine debug flag so that node
// operations (which lack an Engine pointer) can check it cheaply.
var globalDebug bool

// --- Registry ---

// RegisterElement starts tracking el under id. Idempotent per id; a nil
// element is ignored. The first measurement happens in the next read phase
// in which the element is inside the look-ahead region.
func (e *Engine) RegisterElement(id string, el Element) {
	if e.closed {
		return
	}
	e.registry.Register(id, el)
}

// UnregisterElement stops tracking id. Trackers for id fall back to
// NeutralMotion.
func (e *Engine) UnregisterElement(id string) {
	e.registry.Unregister(id)
}

// GetRect returns the cached document-space rect of id. ok is false until
// the element has been measured.
func (e *Engine) GetRect(id string) (Rect, bool) {
	return e.registry.GetRect(id)
}

// NotifyFontsReady schedules every visible element for re-measurement, for
// use once late-loading resources have changed layout.
func (e *Engine) NotifyFontsReady() {
	e.registry.Invalidate()
}

// --- Relative motion ---

// TrackRelativeMotion registers el under id and returns a tracker whose
// motion is refreshed every frame after the read phase. Until the element is
// measured the tracker reports NeutralMotion.
func (e *Engine) TrackRelativeMotion(id string, el Element) *MotionTracker {
	t := &MotionTracker{id: id, engine: e}
	if e.closed {
		t.closed = true
		t.motion = NeutralMotion
		return t
	}
	e.registry.Register(id, el)
	rect, ok := e.registry.GetRect(id)
	t.motion = RelativeMotion(e.cursor.Get(), rect, ok)
	t.known = ok
	t.rect = rect
	t.hovered = ok && t.motion.Over
	e.trackers = append(e.trackers, t)
	e.trackerRefs[id]++
	return t
}

// releaseTracker drops t and unregisters its element when no tracker
// references it any longer.
func (e *Engine) releaseTracker(t *MotionTracker) {
	for i, c := range e.trackers {
		if c == t {
			copy(e.trackers[i:], e.trackers[i+1:])
			e.trackers[len(e.trackers)-1] = nil
			e.trackers = e.trackers[:len(e.trackers)-1]
			break
		}
	}
	if n := e.trackerRefs[t.id] - 1; n > 0 {
		e.trackerRefs[t.id] = n
		return
	}
	delete(e.trackerRefs, t.id)
	e.registry.Unregister(t.id)
}

// Trackers returns the number of live motion trackers.
func (e *Engine) Trackers() int {
	return len(e.trackers)
}

// --- Signals ---

// CursorPosition is the virtual cursor in document coordinates.
func (e *Engine) CursorPosition() *Signal[Vec2] {
	return e.cursor
}

// Velocity is the cursor velocity in pixels per second.
func (e *Engine) Velocity() *Signal[Vec2] {
	return e.vel
}

// IsMobileInput reports whether the cursor is driven by device tilt.
func (e *Engine) IsMobileInput() *Signal[bool] {
	return e.mobile
}

// --- Event handlers ---

// OnHoverEnter registers a callback for the cursor entering a tracked
// element's measured rect.
func (e *Engine) OnHoverEnter(fn func(MotionEvent)) CallbackHandle {
	return e.handlers.add(EventHoverEnter, fn)
}

// OnHoverLeave registers a callback for the cursor leaving a tracked
// element's measured rect.
func (e *Engine) OnHoverLeave(fn func(MotionEvent)) CallbackHandle {
	return e.handlers.add(EventHoverLeave, fn)
}

// OnRectMeasured registers a callback for an element's first measurement.
func (e *Engine) OnRectMeasured(fn func(MotionEvent)) CallbackHandle {
	return e.handlers.add(EventRectMeasured, fn)
}

// OnElementShown registers a callback for an element entering the
// look-ahead region.
func (e *Engine) OnElementShown(fn func(MotionEvent)) CallbackHandle {
	return e.handlers.add(EventElementShown, fn)
}

// OnElementHidden registers a callback for an element leaving the
// look-ahead region.
func (e *Engine) OnElementHidden(fn func(MotionEvent)) CallbackHandle {
	return e.handlers.add(EventElementHidden, fn)
}

// emit stamps the frame number and dispatches ev. Callers fill the cursor.
func (e *Engine) emit(ev MotionEvent) {
	ev.Frame = e.frame
	e.handlers.fire(ev)
	if e.store != nil {
		e.store.EmitEvent(ev)
	}
}

// --- Permission ---

// RequestOrientationAccess asks the platform for device-orientation access.
// The request is issued at most once per engine; later calls report the
// same outcome. The channel receives exactly one value. Denial, errors and
// cancellation of ctx all report false, and the cursor then stays
// center-anchored. The first touch issues this request automatically.
func (e *Engine) RequestOrientationAccess(ctx context.Context) <-chan bool {
	out := make(chan bool, 1)
	if e.perm == nil {
		p := &permissionRequest{done: make(chan struct{})}
		e.perm = p
		if e.requester == nil {
			p.granted = true
			close(p.done)
		} else {
			req := e.requester
			go func() {
				granted, err := req(ctx)
				if err != nil {
					log.Warn("orientation permission request failed", "err", err)
					granted = false
				}
				p.granted = granted
				close(p.done)
			}()
		}
	}
	p := e.perm
	select {
	case <-p.done:
		out <- p.granted
		return out
	default:
	}
	go func() {
		select {
		case <-p.done:
			out <- p.granted
		case <-ctx.Done():
			out <- false
		}
	}()
	return out
}

// applyPermission hands a finished permission request to the fusion source.
func (e *Engine) applyPermission() {
	if e.perm == nil || e.permApplied {
		return
	}
	select {
	case <-e.perm.done:
	default:
		return
	}
	e.permApplied = true
	e.fusion.SetOrientationAllowed(e.perm.granted)
	if e.perm.granted {
		log.Debug("orientation access granted")
	} else {
		log.Warn("orientation access denied; cursor stays centered")
	}
}

// --- Frame ---

// Update runs one frame of the pipeline, dt seconds after the previous one:
// input, cursor, read, derive, scene and signal phases, in that order.
func (e *Engine) Update(dt float64) {
	if e.closed {
		return
	}
	if !isFinite(dt) || dt < 0 {
		dt = 0
	}
	e.frame++
	e.clock += dt

	var stats frameStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	// Input phase.
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInput()
	e.vp.update(float32(dt))

	// Cursor phase.
	screen := e.fusion.Step(dt)
	dx, dy := e.vp.ScreenToDocument(screen.X, screen.Y)
	doc := Vec2{X: dx, Y: dy}
	e.cursor.set(doc)
	e.vel.set(e.velocity.Sample(doc, e.clock))
	e.mobile.set(e.fusion.Mode() == InputOrientation)

	if e.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	// Read phase.
	stats.registry = e.registry.Flush()

	if e.debug {
		stats.readTime = time.Since(t0)
		t0 = time.Now()
	}

	// Derive phase.
	e.deriveMotion(doc)

	if e.debug {
		stats.deriveTime = time.Since(t0)
		t0 = time.Now()
	}

	// Scene phase.
	stats.nodes = e.updateScene(dt)

	if e.debug {
		stats.sceneTime = time.Since(t0)
	}

	// Signal phase.
	e.cursor.notify()
	e.vel.notify()
	e.mobile.notify()

	if e.debug {
		stats.trackers = len(e.trackers)
		e.debugLog(stats)
	}
}

// deriveMotion refreshes every tracker against the freshly read rects.
func (e *Engine) deriveMotion(cursor Vec2) {
	// Iterate a snapshot: OnChange callbacks may close trackers.
	e.trackerBuf = append(e.trackerBuf[:0], e.trackers...)
	for _, t := range e.trackerBuf {
		if t.closed {
			continue
		}
		rect, ok := e.registry.GetRect(t.id)
		entered, left := t.derive(cursor, rect, ok)
		if entered || left {
			typ := EventHoverEnter
			if left {
				typ = EventHoverLeave
			}
			e.emit(MotionEvent{
				Type:      typ,
				ElementID: t.id,
				CursorX:   cursor.X,
				CursorY:   cursor.Y,
				RelX:      t.motion.RelX,
				RelY:      t.motion.RelY,
				Rect:      t.rect, // last measured, even after the element was dropped
			})
		}
	}
	for i := range e.trackerBuf {
		e.trackerBuf[i] = nil
	}
}

// updateScene runs node behaviors top-down, handing each node the nearest
// surface's parameters, then refreshes world transforms. Surfaces no longer
// in the tree stop tracking. Returns the number of nodes visited.
func (e *Engine) updateScene(dt float64) int {
	e.updateTweens(dt)
	count := e.updateNode(e.root, nil, dt)
	updateWorldTransform(e.root, identityTransform, 1.0, false)

	for s := range e.surfaces {
		if s.seen != e.frame {
			if s.tracker != nil {
				s.tracker.Close()
			}
			delete(e.surfaces, s)
		}
	}
	return count
}

func (e *Engine) updateNode(n *Node, inherited *Params, dt float64) int {
	n.params = inherited
	childParams := inherited

	switch {
	case n.Surface != nil:
		s := n.Surface
		if s.tracker == nil || s.tracker.closed {
			s.tracker = e.TrackRelativeMotion(s.ID, n)
		}
		s.seen = e.frame
		e.surfaces[s] = struct{}{}
		s.update(dt)
		childParams = &s.params
	case n.Layer != nil:
		n.Layer.update(n, inherited, e.debug)
	case n.Rings != nil:
		n.Rings.update(n, inherited, e.clock*1000, dt)
	case n.Cursor != nil:
		n.Cursor.update(e.cursor.Get(), e.vel.Get(), e.mobile.Get(), dt)
	case n.Magnet != nil:
		n.Magnet.update(n, e.cursor.Get(), dt)
	case n.HUD != nil:
		n.HUD.update(e.vel.Get().Len(), dt)
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}

	count := 1
	for _, child := range n.children {
		count += e.updateNode(child, childParams, dt)
	}
	return count
}

// Resize changes the viewport size. On touch input the cursor recenters.
// The input mode is re-evaluated from the host.
func (e *Engine) Resize(width, height float64) {
	if !e.vp.Resize(width, height) {
		return
	}
	if e.host != nil {
		e.SetInputMode(modeFor(e.host.CoarsePointer()))
	}
	e.fusion.Resize(width, height)
}

// Close tears the engine down: pending permission requests are cancelled,
// every tracker is closed and the registry forgets every element.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.cancel()
	for len(e.trackers) > 0 {
		e.trackers[len(e.trackers)-1].Close()
	}
	e.registry.Close()
	e.closed = true
	e.injectQueue = nil
	e.tweens = nil
}
