// Package kinetic is a cursor-reactive motion engine for [Ebitengine].
//
// Kinetic turns a pointer, or the tilt of a handheld device, into one
// virtual cursor and derives per-element relative motion from it. Surfaces
// tilt and glow under the cursor, parallax layers slide by depth, a chain of
// rings trails the cursor elastically, magnetic nodes lean toward it, and a
// small HUD visualizes cursor speed.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	engine := kinetic.NewEngine(kinetic.DefaultConfig(), 960, 640)
//	card := kinetic.NewSurface("card", "hero", 320, 200, engine.Config())
//	card.SetPosition(320, 220)
//	engine.Root().AddChild(card)
//	kinetic.Run(engine, kinetic.RunConfig{Title: "Kinetic", ShowHUD: true})
//
// For full control, implement [ebiten.Game] yourself and call
// [Engine.Update] and [Engine.Draw] directly:
//
//	type Game struct{ engine *kinetic.Engine }
//
//	func (g *Game) Update() error        { g.engine.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.engine.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) {
//		g.engine.Resize(float64(w), float64(h))
//		return w, h
//	}
//
// Attach a [Host] with [Engine.SetHost] so the engine can poll the pointer.
//
// # Frame pipeline
//
// Every [Engine.Update] runs the same phases in order: input (injected
// events, host polling, orientation readings), cursor fusion, one batched
// read phase in the [Registry], motion derivation for every tracker, then
// node behaviors top-down and world transforms. Element geometry is only
// read in the read phase, so behaviors never force layout.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Engine.Root]. Children inherit their parent's transform and alpha. World
// coordinates are document coordinates; drawing subtracts the viewport
// scroll.
//
// A surface node publishes [Params] to its subtree each frame. Layers,
// rings and custom OnUpdate callbacks read them through [Node.Params]
// instead of measuring again.
//
// # Relative motion
//
// Code outside the scene graph can track any [Element]:
//
//	t := engine.TrackRelativeMotion("menu", kinetic.StaticElement(rect))
//	defer t.Close()
//	t.OnChange = func(m kinetic.Motion) { ... }
//
// Until an element is measured its tracker reports [NeutralMotion].
//
// # Configuration
//
// [DefaultConfig] holds the tuned springs and limits. [LoadConfig] reads a
// TOML document over those defaults.
//
// # Testing
//
// [Engine.InjectMove], [Engine.InjectOrientation] and friends queue
// synthetic input consumed one event per frame. [LoadTestScript] drives them
// from a JSON script and can capture screenshots along the way.
//
// [Ebitengine]: https://ebitengine.org
package kinetic
