package systems

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/portfolio/internal/particle"
	"github.com/decker502/portfolio/pkg/game"
	"github.com/decker502/portfolio/pkg/utils"
)

// ThemeSource 提供当前解析后的主题及其变化通知
type ThemeSource interface {
	Resolved() game.Theme
	SubscribeResolved(fn func(game.Theme)) (cancel func())
}

// Palettes 浅色/深色主题下的粒子调色板
type Palettes struct {
	Light particle.Palette
	Dark  particle.Palette
}

// For 返回主题对应的调色板
func (p Palettes) For(t game.Theme) particle.Palette {
	if t == game.ThemeDark {
		return p.Dark
	}
	return p.Light
}

// ParticleLayer 页面中的一个粒子网络层
//
// 负责粒子场与离屏图像的生命周期：Start 时按当前主题着色并订阅主题变化，
// Stop 时取消订阅并释放图像。Start/Stop 可重复调用。
type ParticleLayer struct {
	name     string
	field    *particle.Field
	surface  *particle.ImageSurface
	theme    ThemeSource
	palettes Palettes

	pointer particle.Pointer
	width   int
	height  int

	cleanup utils.Cleanup
	running bool
	log     *zap.Logger
}

// NewParticleLayer 创建粒子层
//
// 参数：
//   - name: 层名称，仅用于日志
//   - opts: 粒子参数
//   - theme: 主题来源，可为 nil（始终使用浅色调色板）
//   - seed: 随机种子
func NewParticleLayer(name string, opts particle.Options, theme ThemeSource, palettes Palettes, seed int64, log *zap.Logger) *ParticleLayer {
	if log == nil {
		log = zap.NewNop()
	}
	return &ParticleLayer{
		name:     name,
		field:    particle.NewField(opts, rand.New(rand.NewSource(seed))),
		theme:    theme,
		palettes: palettes,
		log:      log.Named("ParticleLayer").With(zap.String("layer", name)),
	}
}

// Start 启动粒子层
func (pl *ParticleLayer) Start() {
	if pl.running {
		return
	}
	pl.running = true

	pl.surface = particle.NewImageSurface(pl.width, pl.height)
	pl.cleanup.Add(func() {
		pl.surface.Dispose()
		pl.surface = nil
	})

	pl.field.Initialize(float64(pl.width), float64(pl.height), pl.palettes.For(pl.currentTheme()))

	if pl.theme != nil {
		pl.cleanup.Add(pl.theme.SubscribeResolved(func(t game.Theme) {
			pl.field.SetPalette(pl.palettes.For(t))
			pl.log.Debug("palette switched", zap.String("theme", string(t)))
		}))
	}
	pl.log.Debug("started", zap.Int("width", pl.width), zap.Int("height", pl.height))
}

// Stop 停止粒子层并释放资源
func (pl *ParticleLayer) Stop() {
	if !pl.running {
		return
	}
	pl.running = false
	pl.cleanup.Run()
	pl.log.Debug("stopped")
}

// Running 是否已启动
func (pl *ParticleLayer) Running() bool {
	return pl.running
}

func (pl *ParticleLayer) currentTheme() game.Theme {
	if pl.theme == nil {
		return game.ThemeLight
	}
	return pl.theme.Resolved()
}

// SetBounds 设置粒子层尺寸（像素）；尺寸变化时重新生成粒子
func (pl *ParticleLayer) SetBounds(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	pl.width, pl.height = width, height
	if !pl.running {
		return
	}
	pl.surface.SetSize(width, height)
	pl.field.Resize(float64(width), float64(height))
}

// Bounds 当前尺寸
func (pl *ParticleLayer) Bounds() (width, height int) {
	return pl.width, pl.height
}

// PointerAt 把屏幕坐标的指针转换为相对于层原点 (x, y) 的坐标
func (pl *ParticleLayer) PointerAt(ps utils.PointerState, x, y float64) particle.Pointer {
	px, py := ps.X-x, ps.Y-y
	over := px >= 0 && py >= 0 && px < float64(pl.width) && py < float64(pl.height)
	if ps.Touch && !ps.Pressed {
		over = false
	}
	return particle.Pointer{X: px, Y: py, Over: over}
}

// Update 推进一帧
func (pl *ParticleLayer) Update(p particle.Pointer) {
	if !pl.running {
		return
	}
	pl.pointer = p
	pl.field.Tick(p)
}

// Draw 渲染到离屏图像并绘制到 dst 的 (x, y) 处
func (pl *ParticleLayer) Draw(dst *ebiten.Image, x, y float64) {
	if !pl.running || pl.surface == nil {
		return
	}
	pl.field.Draw(pl.surface, pl.pointer)
	img := pl.surface.Image()
	if img == nil || dst == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	dst.DrawImage(img, op)
}

// Field 返回底层粒子场
func (pl *ParticleLayer) Field() *particle.Field {
	return pl.field
}
