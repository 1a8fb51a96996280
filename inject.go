package kinetic

// syntheticKind selects what an injected event does.
type syntheticKind uint8

const (
	synthMove syntheticKind = iota
	synthTilt
	synthTouch
	synthResize
	synthScroll
	synthFonts
)

// syntheticEvent is a single injected input event. Pointer coordinates are
// in viewport (screen) space, identical to real pointer input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
	tilt OrientationReading
}

// InjectMove queues a pointer move to the given viewport coordinates. The
// event is consumed on the next frame's input phase.
func (e *Engine) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectPath queues pointer moves from (fromX, fromY) to (toX, toY),
// linearly interpolated over the given number of frames. Minimum frames
// is 1 (a single move to the end point).
func (e *Engine) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	if frames == 1 {
		e.InjectMove(toX, toY)
		return
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectOrientation queues a device-orientation reading in degrees.
func (e *Engine) InjectOrientation(beta, gamma float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{
		kind: synthTilt,
		tilt: OrientationReading{Beta: beta, Gamma: gamma},
	})
}

// InjectTouch queues a touch, which issues the orientation permission
// request if none was issued yet.
func (e *Engine) InjectTouch() {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthTouch})
}

// InjectResize queues a viewport resize.
func (e *Engine) InjectResize(width, height float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthResize, x: width, y: height})
}

// InjectScroll queues an absolute scroll to the given document offset.
func (e *Engine) InjectScroll(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthScroll, x: x, y: y})
}

// InjectFontsReady queues a NotifyFontsReady call.
func (e *Engine) InjectFontsReady() {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthFonts})
}

// PendingInjections returns the number of queued synthetic events.
func (e *Engine) PendingInjections() int {
	return len(e.injectQueue)
}

// processInjectedInput pops one event from the inject queue and applies it.
// Returns true if a pointer move was consumed (host pointer input is skipped
// for that frame).
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case synthMove:
		e.fusion.PointerMove(evt.x, evt.y)
		return true
	case synthTilt:
		e.fusion.Orientation(evt.tilt)
	case synthTouch:
		if e.perm == nil {
			e.RequestOrientationAccess(e.ctx)
		}
	case synthResize:
		e.Resize(evt.x, evt.y)
	case synthScroll:
		e.vp.SetScroll(evt.x, evt.y)
	case synthFonts:
		e.NotifyFontsReady()
	}
	return false
}
