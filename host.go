package kinetic

import (
	"context"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
)

// Host is the platform the engine polls once per frame for raw input.
type Host interface {
	// CursorPosition returns the pointer in viewport coordinates.
	CursorPosition() (x, y float64)
	// Touching reports whether at least one touch is active.
	Touching() bool
	// CoarsePointer reports whether the primary pointer is a finger, which
	// selects orientation input and hides the custom cursor.
	CoarsePointer() bool
}

// OrientationSource supplies device-orientation readings. ok is false when
// no new reading arrived since the previous call.
type OrientationSource interface {
	Orientation() (r OrientationReading, ok bool)
}

// OrientationFunc adapts a function to OrientationSource.
type OrientationFunc func() (OrientationReading, bool)

// Orientation calls f.
func (f OrientationFunc) Orientation() (OrientationReading, bool) {
	return f()
}

// PermissionRequester asks the platform for orientation access. It runs on
// its own goroutine and may block until the user answers.
type PermissionRequester func(ctx context.Context) (granted bool, err error)

// EbitenHost reads input from Ebitengine.
type EbitenHost struct {
	touchBuf []ebiten.TouchID

	// Coarse overrides the platform guess when non-nil.
	Coarse *bool
}

// NewEbitenHost creates a host backed by the running Ebitengine game.
func NewEbitenHost() *EbitenHost {
	return &EbitenHost{}
}

// CursorPosition implements Host.
func (h *EbitenHost) CursorPosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// Touching implements Host.
func (h *EbitenHost) Touching() bool {
	h.touchBuf = ebiten.AppendTouchIDs(h.touchBuf[:0])
	return len(h.touchBuf) > 0
}

// CoarsePointer implements Host. Mobile platforms report a coarse pointer.
func (h *EbitenHost) CoarsePointer() bool {
	if h.Coarse != nil {
		return *h.Coarse
	}
	return coarsePlatform(runtime.GOOS)
}

func coarsePlatform(goos string) bool {
	return goos == "android" || goos == "ios"
}
