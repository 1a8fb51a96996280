package kinetic

import (
	"math"
	"testing"
)

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	n := NewContainer("test")
	assertMatrix(t, "identity", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 0, 0})
}

func TestLocalTransformTranslation(t *testing.T) {
	n := NewContainer("test")
	n.X = 10
	n.Y = 20
	assertMatrix(t, "translation", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformOffsetAddsToPosition(t *testing.T) {
	n := NewContainer("test")
	n.X = 10
	n.Y = 20
	n.setOffset(Vec2{X: -3, Y: 4})
	assertMatrix(t, "offset", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 7, 24})
	if n.X != 10 || n.Y != 20 {
		t.Error("offset must not change the authored position")
	}
}

func TestLocalTransformScale(t *testing.T) {
	n := NewContainer("test")
	n.ScaleX = 2
	n.ScaleY = 3
	assertMatrix(t, "scale", computeLocalTransform(n), [6]float64{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	n := NewContainer("test")
	n.Rotation = math.Pi / 2
	// cos(90)=0, sin(90)=1: a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", computeLocalTransform(n), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestLocalTransformPivot(t *testing.T) {
	n := NewContainer("test")
	n.X = 100
	n.Y = 200
	n.PivotX = 16
	n.PivotY = 16
	// T(100,200) * T(-16,-16)
	assertMatrix(t, "pivot", computeLocalTransform(n), [6]float64{1, 0, 0, 1, 84, 184})
}

func TestLocalTransformCombined(t *testing.T) {
	n := NewContainer("test")
	n.X = 50
	n.Y = 100
	n.ScaleX = 2
	n.ScaleY = 2
	n.Rotation = math.Pi / 2
	assertMatrix(t, "combined", computeLocalTransform(n), [6]float64{0, 2, -2, 0, 50, 100})
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "id*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*id", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	b := [6]float64{1, 0, 0, 1, 5, 3}
	assertMatrix(t, "translations", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 15, 23})
}

func TestInvertAffine(t *testing.T) {
	n := NewContainer("test")
	n.ScaleX = 2
	n.Rotation = math.Pi / 3
	n.X = 7
	m := computeLocalTransform(n)
	assertMatrix(t, "m*inv=id", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 1, 10, 20}), identityTransform)
	assertMatrix(t, "zero", invertAffine([6]float64{0, 0, 0, 0, 50, 100}), identityTransform)
}

// --- updateWorldTransform ---

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 100
	child.X = 10

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "parent.tx", parent.worldTransform[4], 100)
	assertNear(t, "child.tx", child.worldTransform[4], 110)
	if !child.worldValid {
		t.Error("child should have a valid world transform")
	}
}

func TestAlphaPropagation(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.Alpha = 0.5
	child.Alpha = 0.5

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "parent.worldAlpha", parent.worldAlpha, 0.5)
	assertNear(t, "child.worldAlpha", child.worldAlpha, 0.25)
}

func TestDirtyFlagSkipsClean(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 100
	child.X = 10
	updateWorldTransform(parent, identityTransform, 1.0, false)

	child.X = 999 // no setter: stays clean
	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "child.tx (stale)", child.worldTransform[4], 110)
}

func TestParentRecomputedPropagates(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 100
	child.X = 10
	updateWorldTransform(parent, identityTransform, 1.0, false)

	parent.SetPosition(200, 0)
	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "child.tx (from parent)", child.worldTransform[4], 210)
}

func TestOffsetMarksDirty(t *testing.T) {
	n := NewContainer("n")
	updateWorldTransform(n, identityTransform, 1.0, false)
	n.setOffset(Vec2{X: 5})
	updateWorldTransform(n, identityTransform, 1.0, false)
	assertNear(t, "tx", n.worldTransform[4], 5)

	// Same offset again leaves the node clean.
	n.setOffset(Vec2{X: 5})
	if n.transformDirty {
		t.Error("unchanged offset should not dirty the node")
	}
}

func TestDeepHierarchy(t *testing.T) {
	nodes := make([]*Node, 10)
	for i := range nodes {
		nodes[i] = NewContainer("")
		nodes[i].X = 10
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	updateWorldTransform(nodes[0], identityTransform, 1.0, false)
	assertNear(t, "deep.tx", nodes[9].worldTransform[4], 100)
}

// --- Coordinate conversion ---

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X, parent.Y = 100, 50
	child.X, child.Y = 10, 20
	child.ScaleX, child.ScaleY = 2, 3
	child.Rotation = math.Pi / 6
	updateWorldTransform(parent, identityTransform, 1.0, false)

	lx, ly := child.WorldToLocal(150, 80)
	wx, wy := child.LocalToWorld(lx, ly)
	assertNear(t, "roundtrip.x", wx, 150)
	assertNear(t, "roundtrip.y", wy, 80)
}

func TestWorldToLocalZeroScale(t *testing.T) {
	n := NewContainer("test")
	n.ScaleX = 0
	n.ScaleY = 0
	updateWorldTransform(n, identityTransform, 1.0, true)

	lx, ly := n.WorldToLocal(100, 200)
	assertNear(t, "lx", lx, 100)
	assertNear(t, "ly", ly, 200)
}

// --- Bounds ---

func TestWorldBounds(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
		want  Rect
	}{
		{"plain", func(n *Node) { n.X, n.Y = 10, 20 }, Rect{X: 10, Y: 20, Width: 100, Height: 50}},
		{"scaled", func(n *Node) { n.ScaleX, n.ScaleY = 2, 2 }, Rect{Width: 200, Height: 100}},
		{"rotated 90", func(n *Node) { n.Rotation = math.Pi / 2 }, Rect{X: -50, Y: 0, Width: 50, Height: 100}},
		{"offset", func(n *Node) { n.setOffset(Vec2{X: 5, Y: -5}) }, Rect{X: 5, Y: -5, Width: 100, Height: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewBox("b", 100, 50, ColorWhite)
			tt.setup(n)
			updateWorldTransform(n, identityTransform, 1.0, true)
			got := n.WorldBounds()
			if !approxEqual(got.X, tt.want.X, 1e-9) || !approxEqual(got.Y, tt.want.Y, 1e-9) ||
				!approxEqual(got.Width, tt.want.Width, 1e-9) || !approxEqual(got.Height, tt.want.Height, 1e-9) {
				t.Errorf("WorldBounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBoundingRectIsViewportRelative(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.SetScroll(0, 100)
	n := NewBox("b", 100, 50, ColorWhite)

	if _, ok := n.BoundingRect(vp); ok {
		t.Error("node without a world transform has no layout")
	}

	n.SetPosition(10, 300)
	updateWorldTransform(n, identityTransform, 1.0, false)
	r, ok := n.BoundingRect(vp)
	if !ok || r != (Rect{X: 10, Y: 200, Width: 100, Height: 50}) {
		t.Errorf("BoundingRect = %+v, %v", r, ok)
	}

	n.Dispose()
	if _, ok := n.BoundingRect(vp); ok {
		t.Error("disposed node has no layout")
	}
}

func TestSettersDirty(t *testing.T) {
	n := NewContainer("test")
	setters := []struct {
		name string
		fn   func()
	}{
		{"SetPosition", func() { n.SetPosition(1, 2) }},
		{"SetScale", func() { n.SetScale(2, 2) }},
		{"SetRotation", func() { n.SetRotation(1) }},
		{"SetPivot", func() { n.SetPivot(5, 5) }},
		{"SetAlpha", func() { n.SetAlpha(0.5) }},
		{"MarkDirty", func() { n.MarkDirty() }},
	}
	for _, s := range setters {
		n.transformDirty = false
		s.fn()
		if !n.transformDirty {
			t.Errorf("%s should set dirty", s.name)
		}
	}
}
