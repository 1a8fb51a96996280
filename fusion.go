package kinetic

import "math"

// OrientationReading is one device-orientation sample in degrees. Beta is the
// front-to-back tilt and drives the vertical axis; Gamma is the left-to-right
// tilt and drives the horizontal axis. NaN marks a missing angle.
type OrientationReading struct {
	Beta, Gamma float64
}

func (r OrientationReading) valid() bool {
	return isFinite(r.Beta) && isFinite(r.Gamma)
}

// InputFusion turns pointer coordinates or device tilt into one virtual
// cursor in viewport (screen) coordinates.
//
// In pointer mode the cursor is the raw pointer position. In orientation
// mode the first valid reading becomes the neutral anchor, each following
// reading pulls the anchor toward itself by DriftFactor, and the remaining
// delta maps linearly onto the viewport with ±MaxTilt reaching the edges. The
// mapped point is clamped and then smoothed by the gyro spring.
type InputFusion struct {
	cfg  Config
	mode InputMode

	width, height float64

	pointer Vec2

	allowed  bool // orientation access granted
	anchor   OrientationReading
	anchored bool
	delta    OrientationReading
	target   Vec2 // mapped, clamped, unsmoothed
	gyroX    *SpringValue
	gyroY    *SpringValue

	cursor Vec2
}

// NewInputFusion creates a fusion source for a width×height viewport. The
// cursor starts at the viewport center.
func NewInputFusion(cfg Config, width, height float64, mode InputMode) *InputFusion {
	f := &InputFusion{cfg: cfg, mode: mode, width: width, height: height}
	c := f.center()
	f.pointer = c
	f.target = c
	f.cursor = c
	f.gyroX = NewSpringValue(cfg.GyroSpring, c.X)
	f.gyroY = NewSpringValue(cfg.GyroSpring, c.Y)
	return f
}

func (f *InputFusion) center() Vec2 {
	return Vec2{X: f.width / 2, Y: f.height / 2}
}

// Mode returns the active input path.
func (f *InputFusion) Mode() InputMode {
	return f.mode
}

// SetMode switches the input path. Entering orientation mode recenters the
// cursor; the tilt anchor is kept.
func (f *InputFusion) SetMode(m InputMode) {
	if m == f.mode {
		return
	}
	f.mode = m
	if m == InputOrientation {
		f.recenter()
	} else {
		f.cursor = f.pointer
	}
}

// SetOrientationAllowed records whether orientation readings may be used.
// Until allowed, readings are dropped and the cursor holds the center.
func (f *InputFusion) SetOrientationAllowed(allowed bool) {
	f.allowed = allowed
}

// OrientationAllowed reports whether readings are being used.
func (f *InputFusion) OrientationAllowed() bool {
	return f.allowed
}

// PointerMove records a pointer position in viewport coordinates. It only
// drives the cursor in pointer mode.
func (f *InputFusion) PointerMove(x, y float64) {
	if !isFinite(x) || !isFinite(y) {
		return
	}
	f.pointer = Vec2{X: x, Y: y}
	if f.mode == InputPointer {
		f.cursor = f.pointer
	}
}

// Orientation feeds one device-orientation reading. A reading with a
// missing angle drops the anchor so the next valid reading becomes the new
// neutral instead of jumping.
func (f *InputFusion) Orientation(r OrientationReading) {
	if f.mode != InputOrientation || !f.allowed {
		return
	}
	if !r.valid() {
		f.anchored = false
		f.delta = OrientationReading{}
		return
	}
	if !f.anchored {
		f.anchor = r
		f.anchored = true
	} else {
		d := f.cfg.DriftFactor
		f.anchor.Beta += (r.Beta - f.anchor.Beta) * d
		f.anchor.Gamma += (r.Gamma - f.anchor.Gamma) * d
	}
	f.delta = OrientationReading{
		Beta:  r.Beta - f.anchor.Beta,
		Gamma: r.Gamma - f.anchor.Gamma,
	}

	hw, hh := f.width/2, f.height/2
	x := hw + f.delta.Gamma/f.cfg.MaxTilt*hw
	y := hh + f.delta.Beta/f.cfg.MaxTilt*hh
	f.target = Vec2{X: clamp(x, 0, f.width), Y: clamp(y, 0, f.height)}
}

// Anchor returns the current neutral tilt. ok is false before the first
// valid reading and after a gap.
func (f *InputFusion) Anchor() (OrientationReading, bool) {
	return f.anchor, f.anchored
}

// Delta returns the most recent reading minus the anchor.
func (f *InputFusion) Delta() OrientationReading {
	return f.delta
}

// Resize updates the viewport size. In orientation mode the cursor, the
// gyro springs and the mapped target all jump to the new center.
func (f *InputFusion) Resize(width, height float64) {
	f.width, f.height = width, height
	if f.mode == InputOrientation {
		f.recenter()
	}
}

func (f *InputFusion) recenter() {
	c := f.center()
	f.target = c
	f.cursor = c
	f.gyroX.Jump(c.X)
	f.gyroY.Jump(c.Y)
}

// Step advances the gyro spring by dt seconds and returns the cursor,
// rounded to the configured quantum.
func (f *InputFusion) Step(dt float64) Vec2 {
	if f.mode == InputOrientation {
		f.cursor = Vec2{
			X: f.gyroX.Step(f.target.X, dt),
			Y: f.gyroY.Step(f.target.Y, dt),
		}
	}
	return f.Cursor()
}

// Cursor returns the current cursor in viewport coordinates.
func (f *InputFusion) Cursor() Vec2 {
	return Vec2{X: quantize(f.cursor.X, f.cfg.Quantum), Y: quantize(f.cursor.Y, f.cfg.Quantum)}
}

// Target returns the mapped tilt position before smoothing.
func (f *InputFusion) Target() Vec2 {
	return f.target
}

func quantize(v, q float64) float64 {
	if q <= 0 {
		return v
	}
	return math.Round(v/q) * q
}
