package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/decker502/portfolio/internal/particle"
	"github.com/decker502/portfolio/pkg/game"
	"github.com/decker502/portfolio/pkg/systems"
	"github.com/decker502/portfolio/pkg/utils"
)

// windowViewer 在 ebiten 窗口中渲染一个铺满窗口的粒子层
type windowViewer struct {
	theme *game.ThemeManager
	layer *systems.ParticleLayer
	log   *zap.Logger
}

func newWindowViewer(opts particle.Options, theme *game.ThemeManager, seed int64, log *zap.Logger) *windowViewer {
	v := &windowViewer{
		theme: theme,
		layer: systems.NewParticleLayer("viewer", opts, theme, palettes, seed, log),
		log:   log.Named("ParticleViewer"),
	}
	v.layer.SetBounds(windowWidth, windowHeight)
	v.layer.Start()
	return v
}

func runWindow(opts particle.Options, theme *game.ThemeManager, seed int64, log *zap.Logger) error {
	v := newWindowViewer(opts, theme, seed, log)
	defer v.layer.Stop()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Particle Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update 实现 ebiten.Game
func (v *windowViewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		v.theme.ToggleTheme()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.layer.Stop()
		v.layer.Start()
		v.log.Debug("field regenerated")
	}
	v.theme.Update()
	v.layer.Update(v.layer.PointerAt(utils.ReadPointer(), 0, 0))
	return nil
}

// Draw 实现 ebiten.Game
func (v *windowViewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgrounds[v.theme.Resolved()])
	v.layer.Draw(screen, 0, 0)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"particles: %d  theme: %s  TPS: %.0f\n[T] theme  [R] regenerate  [Esc] quit",
		len(v.layer.Field().Particles()), v.theme.Resolved(), ebiten.ActualTPS()))
}

// Layout 实现 ebiten.Game，粒子层跟随窗口尺寸
func (v *windowViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w, h := v.layer.Bounds(); w != outsideWidth || h != outsideHeight {
		v.layer.SetBounds(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
