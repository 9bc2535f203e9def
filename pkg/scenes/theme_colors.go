package scenes

import (
	"image/color"

	"github.com/decker502/portfolio/pkg/config"
	"github.com/decker502/portfolio/pkg/game"
	"github.com/decker502/portfolio/pkg/utils"
)

// themeTransitionTicks 主题切换时颜色过渡的帧数
const themeTransitionTicks = 18

// themeColors 浅色/深色界面配色
type themeColors struct {
	Light config.UIColors
	Dark  config.UIColors
}

func (tc themeColors) forTheme(t game.Theme) config.UIColors {
	if t == game.ThemeDark {
		return tc.Dark
	}
	return tc.Light
}

// colorTransition 在两套界面配色之间渐变
type colorTransition struct {
	from, to config.UIColors
	tween    *utils.Tween
}

func newColorTransition(initial config.UIColors) *colorTransition {
	return &colorTransition{from: initial, to: initial, tween: utils.NewTween(0, 1, 0, nil)}
}

// set 从当前颜色开始过渡到 to
func (c *colorTransition) set(to config.UIColors, ticks int) {
	c.from = c.current()
	c.to = to
	c.tween = utils.NewTween(0, 1, ticks, utils.EaseInOutCubic)
}

func (c *colorTransition) step() {
	c.tween.Step()
}

func (c *colorTransition) done() bool {
	return c.tween.Done()
}

func (c *colorTransition) current() config.UIColors {
	t := c.tween.Value()
	if t >= 1 {
		return c.to
	}
	return config.UIColors{
		Background: config.Mix(c.from.Background, c.to.Background, t),
		Surface:    config.Mix(c.from.Surface, c.to.Surface, t),
		Text:       config.Mix(c.from.Text, c.to.Text, t),
		Muted:      config.Mix(c.from.Muted, c.to.Muted, t),
		Accent:     config.Mix(c.from.Accent, c.to.Accent, t),
	}
}

// roleColor 按角色取颜色
func roleColor(ui config.UIColors, r colorRole) color.NRGBA {
	switch r {
	case roleMuted:
		return ui.Muted
	case roleAccent:
		return ui.Accent
	case roleSurface:
		return ui.Surface
	case roleOnAccent:
		return ui.Background
	}
	return ui.Text
}

// withAlpha 按比例缩放透明度
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(utils.Clamp01(a)*float64(c.A) + 0.5)
	return c
}
