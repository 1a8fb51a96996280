package kinetic

import (
	"math"
	"sort"
)

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic: the engine is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a scene graph element. One flat struct serves every node type;
// behavior-specific state hangs off the typed pointer fields, of which at
// most one is set.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local, document pixels)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64 // radians
	PivotX   float64
	PivotY   float64

	// Size of the node's own box in local coordinates. Boxes and surfaces
	// draw and measure this area.
	Width, Height float64

	// offset is the translation written by the node's behavior (parallax,
	// magnet pull, wander). It is applied after X/Y so user positions are
	// never overwritten.
	offset Vec2

	// Computed during the scene phase
	worldTransform [6]float64
	worldAlpha     float64
	worldValid     bool
	transformDirty bool
	params         *Params // nearest ancestor surface's parameters, nil if none

	// Appearance
	Alpha   float64
	Visible bool
	Color   Color
	ZIndex  int

	// Metadata
	UserData any

	// Behaviors
	Surface *Surface
	Layer   *Layer
	Rings   *RingAssembly
	Cursor  *CursorFx
	Magnet  *Magnet
	HUD     *HUD

	// OnUpdate, if set, runs once per frame during the scene phase.
	OnUpdate func(dt float64)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a group node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewBox creates a solid rectangle of the given size.
func NewBox(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeBox, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("kinetic: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("kinetic: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("kinetic: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.sortedChildren = n.sortedChildren[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// drawOrder returns the children sorted by ZIndex, stable on insertion order.
func (n *Node) drawOrder() []*Node {
	if n.childrenSorted {
		if n.sortedChildren == nil {
			return n.children
		}
		return n.sortedChildren
	}
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	sort.SliceStable(n.sortedChildren, func(i, j int) bool {
		return n.sortedChildren[i].ZIndex < n.sortedChildren[j].ZIndex
	})
	n.childrenSorted = true
	return n.sortedChildren
}

// Params returns the parameters this node inherited from its nearest
// surface ancestor during the last frame, or nil outside any surface.
func (n *Node) Params() *Params {
	return n.params
}

// Offset returns the translation applied by the node's behavior.
func (n *Node) Offset() Vec2 {
	return n.offset
}

func (n *Node) setOffset(v Vec2) {
	if v == n.offset {
		return
	}
	n.offset = v
	n.transformDirty = true
}

// --- Element ---

// BoundingRect implements Element: the axis-aligned bounds of the node's
// Width×Height box under its world transform, in viewport coordinates.
// Rotations and layer depth are not projected in 3D, so the result is an
// approximation under tilted ancestors.
func (n *Node) BoundingRect(vp *Viewport) (Rect, bool) {
	if n.disposed || !n.worldValid {
		return Rect{}, false
	}
	r := n.WorldBounds()
	sx, sy := vp.DocumentToScreen(r.X, r.Y)
	return Rect{X: sx, Y: sy, Width: r.Width, Height: r.Height}, true
}

// WorldBounds returns the document-space AABB of the node's own box.
func (n *Node) WorldBounds() Rect {
	m := n.worldTransform
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {n.Width, 0}, {0, n.Height}, {n.Width, n.Height}} {
		x, y := transformPoint(m, c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Disposed surfaces stop tracking
// immediately.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	if n.Surface != nil && n.Surface.tracker != nil {
		n.Surface.tracker.Close()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.params = nil
	n.UserData = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
