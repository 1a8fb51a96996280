package kinetic

// processInput runs the input phase: pending permission results, one
// injected event, then the host and orientation source.
func (e *Engine) processInput() {
	e.applyPermission()

	injected := e.processInjectedInput()
	if e.host != nil {
		e.pollHost(injected)
	}
	if e.orientation != nil {
		if r, ok := e.orientation.Orientation(); ok {
			e.fusion.Orientation(r)
		}
	}
}

// pollHost forwards host pointer movement to the fusion source. The host
// position only applies when it changed, so an injected position holds until
// the real pointer moves. The first touch requests orientation access.
func (e *Engine) pollHost(injected bool) {
	x, y := e.host.CursorPosition()
	p := Vec2{X: x, Y: y}
	if !injected && (!e.hostPolled || p != e.lastHost) {
		e.fusion.PointerMove(x, y)
	}
	e.lastHost = p
	e.hostPolled = true

	if e.perm == nil && e.host.Touching() {
		e.RequestOrientationAccess(e.ctx)
	}
}
