package kinetic

// Params is the parameter channel a surface publishes to its subtree once
// per frame. Descendants read it through Node.Params and derive their own
// transforms from it; nothing below a surface measures or smooths again.
type Params struct {
	// RelX, RelY and Over are the surface's raw relative motion.
	RelX, RelY float64
	Over       bool

	// SmoothX and SmoothY are the spring-filtered position in [0, 1]. They
	// rest at 0.5 while the cursor is elsewhere.
	SmoothX, SmoothY float64

	// RX and RY remap the smoothed position to [-1, 1] for parallax.
	RX, RY float64

	// MX and MY are the smoothed position as percentages of the surface.
	MX, MY float64

	// RotateX and RotateY are the surface tilt in degrees.
	RotateX, RotateY float64

	// Glow is the current highlight alpha: the glow fade times the shine
	// intensity.
	Glow float64
}

// neutralParams is what consumers outside any surface fall back to.
var neutralParams = Params{RelX: 0.5, RelY: 0.5, SmoothX: 0.5, SmoothY: 0.5, MX: 50, MY: 50}
