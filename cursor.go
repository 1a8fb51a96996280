package kinetic

// Cursor shape constants.
const (
	cursorDotRadius  = 3.0
	cursorAuraRadius = 20.0
	cursorMaxSpeed   = 3000.0
)

// CursorFx is the behavior of a NodeTypeCursor node: a precision dot pinned
// to the virtual cursor and a spring-lagged aura stretched along the
// direction of travel. Hidden while input is mobile.
type CursorFx struct {
	auraX *SpringValue
	auraY *SpringValue
	began bool

	Dot      Vec2 // document coordinates
	Aura     Vec2
	Angle    float64 // degrees
	StretchX float64
	SquashY  float64
	Hidden   bool
}

// NewCursor creates a cursor node. Place it directly under the root.
func NewCursor(name string, cfg Config) *Node {
	n := NewContainer(name)
	n.Type = NodeTypeCursor
	n.Cursor = &CursorFx{
		auraX:    NewSpringValue(cfg.CursorSpring, 0),
		auraY:    NewSpringValue(cfg.CursorSpring, 0),
		StretchX: 1,
		SquashY:  1,
	}
	return n
}

// update follows cursor and reshapes the aura from vel.
func (c *CursorFx) update(cursor, vel Vec2, mobile bool, dt float64) {
	c.Hidden = mobile
	if !c.began {
		// Start the aura on the cursor instead of flying in from the origin.
		c.auraX.Jump(cursor.X)
		c.auraY.Jump(cursor.Y)
		c.began = true
	}
	c.Dot = cursor
	c.Aura = Vec2{X: c.auraX.Step(cursor.X, dt), Y: c.auraY.Step(cursor.Y, dt)}

	speed := vel.Len()
	c.StretchX = MapRange(speed, 0, cursorMaxSpeed, 1, 1.8)
	c.SquashY = MapRange(speed, 0, cursorMaxSpeed, 1, 0.6)
	c.Angle = angleDeg(vel)
}
