package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/keepsake"
)

// RunConfig configures Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS overlays FPS and TPS in the top-left corner.
	ShowFPS bool
	// Draw renders one frame from the scope's state.
	Draw func(screen *ebiten.Image)
	// Host overrides the default input host, e.g. to set ToScene.
	Host *Host
}

type game struct {
	scope *keepsake.Scope
	host  *Host
	cfg   RunConfig

	fpsImg     *ebiten.Image
	fpsElapsed float64
}

func (g *game) Update() error {
	if g.scope.IsDisposed() {
		return ebiten.Termination
	}
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.host.Poll()
	g.scope.Update(dt)
	if g.cfg.ShowFPS {
		g.updateFPS(float64(dt))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen)
	}
	g.host.flushScreenshots(screen)
	if g.fpsImg != nil {
		screen.DrawImage(g.fpsImg, nil)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// updateFPS redraws the overlay about twice a second.
func (g *game) updateFPS(dt float64) {
	if g.fpsImg == nil {
		g.fpsImg = ebiten.NewImage(100, 32)
		g.fpsElapsed = 0.5
	}
	g.fpsElapsed += dt
	if g.fpsElapsed < 0.5 {
		return
	}
	g.fpsElapsed = 0
	g.fpsImg.Clear()
	g.fpsImg.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(g.fpsImg, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// Run opens a window and drives scope until the window closes or the scope
// is disposed.
func Run(scope *keepsake.Scope, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("ebitenhost: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	host := cfg.Host
	if host == nil {
		host = NewHost(scope)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	err := ebiten.RunGame(&game{scope: scope, host: host, cfg: cfg})
	if err == ebiten.Termination {
		return nil
	}
	return err
}
