package kinetic

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// maxTweenFields bounds how many node fields one group drives.
const maxTweenFields = 3

// TweenGroup animates a few float64 fields of a Node together. Hand it to
// Engine.Animate to have the scene phase advance it, or call Update
// yourself. The group stops as soon as its node is disposed.
type TweenGroup struct {
	tweens [maxTweenFields]*gween.Tween
	fields [maxTweenFields]*float64
	count  int
	target *Node
	Done   bool
}

func newTweenGroup(n *Node) *TweenGroup {
	return &TweenGroup{target: n}
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// Update advances the group by dt seconds and writes the values back.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	done := true
	for i := 0; i < g.count; i++ {
		v, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(v)
		done = done && finished
	}
	g.Done = done
	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition animates node.X and node.Y.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(node)
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(node)
	g.add(&node.ScaleX, toSX, duration, fn)
	g.add(&node.ScaleY, toSY, duration, fn)
	return g
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(node)
	g.add(&node.Alpha, to, duration, fn)
	return g
}

// FadeIn moves node up by rise pixels from below its current position while
// fading it in from transparent, ending at its current Y and full alpha.
func FadeIn(node *Node, rise float64, duration float32) *TweenGroup {
	endY := node.Y
	node.Y += rise
	node.Alpha = 0
	node.MarkDirty()
	g := newTweenGroup(node)
	g.add(&node.Y, endY, duration, ease.OutCubic)
	g.add(&node.Alpha, 1, duration, ease.OutCubic)
	return g
}

// Animate has the engine advance g at the start of every scene phase until
// it is done.
func (e *Engine) Animate(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	e.tweens = append(e.tweens, g)
}

// Animations returns the number of running tween groups.
func (e *Engine) Animations() int {
	return len(e.tweens)
}

// updateTweens advances every running group and drops finished ones.
func (e *Engine) updateTweens(dt float64) {
	live := e.tweens[:0]
	for _, g := range e.tweens {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(e.tweens); i++ {
		e.tweens[i] = nil
	}
	e.tweens = live
}
