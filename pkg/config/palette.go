package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/portfolio/internal/particle"
)

// PaletteConfig 调色板配置
//
// 颜色格式为 "#rrggbb" 或 "#rrggbb@alpha"（alpha ∈ [0,1]），例如：
//
//	primary: "#6366f1@0.6"
type PaletteConfig struct {
	Primary    string `mapstructure:"primary" yaml:"primary"`
	Secondary  string `mapstructure:"secondary" yaml:"secondary"`
	Tertiary   string `mapstructure:"tertiary" yaml:"tertiary"`
	Line       string `mapstructure:"line" yaml:"line"`
	Background string `mapstructure:"background" yaml:"background"`
	Surface    string `mapstructure:"surface" yaml:"surface"`
	Text       string `mapstructure:"text" yaml:"text"`
	Muted      string `mapstructure:"muted" yaml:"muted"`
	Accent     string `mapstructure:"accent" yaml:"accent"`
}

// UIColors 界面配色（背景、卡片、文字等）
type UIColors struct {
	Background color.NRGBA
	Surface    color.NRGBA
	Text       color.NRGBA
	Muted      color.NRGBA
	Accent     color.NRGBA
}

// Palette 解析为粒子调色板
func (p PaletteConfig) Palette() (particle.Palette, error) {
	var out particle.Palette
	var err error
	if out.Primary, err = ParseColor(p.Primary); err != nil {
		return out, fmt.Errorf("primary: %w", err)
	}
	if out.Secondary, err = ParseColor(p.Secondary); err != nil {
		return out, fmt.Errorf("secondary: %w", err)
	}
	if out.Tertiary, err = ParseColor(p.Tertiary); err != nil {
		return out, fmt.Errorf("tertiary: %w", err)
	}
	if out.Line, err = ParseColor(p.Line); err != nil {
		return out, fmt.Errorf("line: %w", err)
	}
	return out, nil
}

// UI 解析界面配色；未配置的项使用浅色默认值
func (p PaletteConfig) UI() (UIColors, error) {
	var ui UIColors
	fields := []struct {
		name string
		spec string
		dst  *color.NRGBA
		def  string
	}{
		{"background", p.Background, &ui.Background, "#f8fafc"},
		{"surface", p.Surface, &ui.Surface, "#ffffff"},
		{"text", p.Text, &ui.Text, "#0f172a"},
		{"muted", p.Muted, &ui.Muted, "#64748b"},
		{"accent", p.Accent, &ui.Accent, "#6366f1"},
	}

	for _, f := range fields {
		spec := f.spec
		if spec == "" {
			spec = f.def
		}
		c, err := ParseColor(spec)
		if err != nil {
			return ui, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return ui, nil
}

// ParseColor 解析 "#rrggbb[@alpha]" 颜色
func ParseColor(spec string) (color.NRGBA, error) {
	hex, alphaStr, hasAlpha := strings.Cut(strings.TrimSpace(spec), "@")
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q: %w", spec, err)
	}

	alpha := 1.0
	if hasAlpha {
		alpha, err = strconv.ParseFloat(alphaStr, 64)
		if err != nil || alpha < 0 || alpha > 1 {
			return color.NRGBA{}, fmt.Errorf("bad alpha in %q", spec)
		}
	}

	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}, nil
}

// Mix 在两个颜色之间按 t ∈ [0,1] 插值（Lab 空间），透明度线性插值
// 用于主题切换时的背景过渡
func Mix(a, b color.NRGBA, t float64) color.NRGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}
