package kinetic

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// wheelStep is the document scroll per mouse-wheel notch, in pixels.
const wheelStep = 40.0

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowHUD adds a speed HUD to the bottom-left corner.
	ShowHUD bool
	// Resizable lets the window be resized; the engine viewport follows.
	Resizable bool
	// Host overrides the default EbitenHost.
	Host Host
}

// game adapts an Engine to ebiten.Game.
type game struct {
	engine *Engine
	hud    *Node
}

func (g *game) Update() error {
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.engine.vp.ScrollBy(0, -wy*wheelStep)
	}
	g.engine.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.engine.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.engine.Resize(float64(outsideWidth), float64(outsideHeight))
	if g.hud != nil {
		g.hud.SetPosition(16, float64(outsideHeight)-40)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives engine until the window closes. The engine
// is closed when Run returns.
func Run(engine *Engine, cfg RunConfig) error {
	defer engine.Close()

	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := engine.vp.Size()
		cfg.Width, cfg.Height = int(w), int(h)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	host := cfg.Host
	if host == nil {
		host = NewEbitenHost()
	}
	engine.SetHost(host)
	if engine.fusion.Mode() == InputPointer && hasCursorNode(engine.Root()) {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}

	g := &game{engine: engine}
	if cfg.ShowHUD {
		g.hud = NewHUDWidget("hud")
		engine.Root().AddChild(g.hud)
		g.hud.SetZIndex(1 << 20)
	}
	return ebiten.RunGame(g)
}

// hasCursorNode reports whether the subtree contains a cursor effect that
// replaces the system pointer.
func hasCursorNode(n *Node) bool {
	if n.Type == NodeTypeCursor {
		return true
	}
	for _, c := range n.children {
		if hasCursorNode(c) {
			return true
		}
	}
	return false
}
