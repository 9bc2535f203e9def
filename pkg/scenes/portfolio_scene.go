package scenes

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/decker502/portfolio/internal/particle"
	"github.com/decker502/portfolio/pkg/config"
	"github.com/decker502/portfolio/pkg/game"
	"github.com/decker502/portfolio/pkg/systems"
	"github.com/decker502/portfolio/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 粒子层随机种子（固定种子使每次启动的初始分布一致）
const (
	heroLayerSeed    = 1
	contactLayerSeed = 2
)

// frameInput 一帧的输入
type frameInput struct {
	Pointer utils.PointerState
	WheelY  float64      // 向下为正，单位为滚轮格
	Keys    []ebiten.Key // 本帧刚按下的键
	Repeat  []ebiten.Key // 持续按住且处于自动重复节拍的键
}

// platform 与 ebiten 运行时交互的钩子，测试中替换
type platform struct {
	readInput func() frameInput
	setCursor func(ebiten.CursorShapeType)
	openURL   func(string) error
}

// 按住方向键时的自动重复节奏（帧）
const (
	keyRepeatDelay    = 24
	keyRepeatInterval = 4
)

var repeatKeys = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowUp}

func ebitenPlatform() platform {
	p := platform{
		readInput: func() frameInput {
			in := frameInput{
				Pointer: utils.ReadPointer(),
				WheelY:  utils.WheelDeltaY(),
				Keys:    inpututil.AppendJustPressedKeys(nil),
			}
			for _, k := range repeatKeys {
				d := inpututil.KeyPressDuration(k)
				if d > keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0 {
					in.Repeat = append(in.Repeat, k)
				}
			}
			return in
		},
	}
	// 移动端没有鼠标指针，也没有可调用的桌面浏览器
	if !utils.IsMobile() {
		p.setCursor = ebiten.SetCursorShape
		p.openURL = browser.OpenURL
	}
	return p
}

// PortfolioSceneConfig 作品集场景依赖
type PortfolioSceneConfig struct {
	Site     *config.SiteConfig
	Theme    *game.ThemeManager
	Language *game.LanguageManager
	Logger   *zap.Logger
}

// PortfolioScene 单页作品集
//
// 页面垂直排列各区块，导航栏固定在顶部。场景持有滚动跟踪器、头像插值器、
// 跑马灯、打字机以及两个粒子层，并把输入转发给它们。
type PortfolioScene struct {
	site     *config.SiteConfig
	theme    *game.ThemeManager
	language *game.LanguageManager
	fonts    *fontSet
	measure  Measurer
	platform platform
	colors   themeColors

	width, height int
	layout        *pageLayout

	scroll      *game.ScrollTracker
	scrollTween *utils.Tween
	drag        *utils.DragScroller

	interpolator *systems.PositionInterpolator
	marquee      *systems.Marquee
	typewriter   *systems.Typewriter
	backdrop     *systems.NavbarBackdrop
	heroLayer    *systems.ParticleLayer
	contactLayer *systems.ParticleLayer
	transition   *colorTransition

	pointer utils.PointerState
	cleanup utils.Cleanup
	running bool
	quit    bool
	log     *zap.Logger
}

// NewPortfolioScene 创建作品集场景
//
// 场景在 Start 之前不订阅任何事件，也不运行粒子层。
func NewPortfolioScene(cfg PortfolioSceneConfig) (*PortfolioScene, error) {
	if cfg.Site == nil || cfg.Theme == nil || cfg.Language == nil {
		return nil, errors.New("portfolio scene requires site config, theme and language managers")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}

	site := cfg.Site
	light, err := site.Palettes.Light.UI()
	if err != nil {
		return nil, fmt.Errorf("light palette: %w", err)
	}
	dark, err := site.Palettes.Dark.UI()
	if err != nil {
		return nil, fmt.Errorf("dark palette: %w", err)
	}
	lightParticles, err := site.Palettes.Light.Palette()
	if err != nil {
		return nil, fmt.Errorf("light palette: %w", err)
	}
	darkParticles, err := site.Palettes.Dark.Palette()
	if err != nil {
		return nil, fmt.Errorf("dark palette: %w", err)
	}
	palettes := systems.Palettes{Light: lightParticles, Dark: darkParticles}

	s := &PortfolioScene{
		site:     site,
		theme:    cfg.Theme,
		language: cfg.Language,
		fonts:    fonts,
		measure:  fonts.measurer(),
		platform: ebitenPlatform(),
		colors:   themeColors{Light: light, Dark: dark},
		scroll:   game.NewScrollTracker(site.Scroll.Threshold, site.Scroll.ScrolledOffset),
		drag:     utils.NewDragScroller(),
		marquee:  systems.NewMarquee(site.Marquee.MaxSpeed, site.Marquee.Acceleration),
		typewriter: systems.NewTypewriter(
			cfg.Language.Strings().Hero.Phrases,
			site.Typewriter.TypeTicks,
			site.Typewriter.DeleteTicks,
			site.Typewriter.HoldTicks,
			site.Typewriter.BlinkPeriod,
		),
		backdrop: systems.NewNavbarBackdrop(),
		log:      log.Named("PortfolioScene"),
	}
	s.interpolator = systems.NewPositionInterpolator(s, site.Profile.SettleTicks, log)
	s.heroLayer = systems.NewParticleLayer("hero", mergeOptions(site.Particles.Hero, particle.HeroOptions()), cfg.Theme, palettes, heroLayerSeed, log)
	s.contactLayer = systems.NewParticleLayer("contact", mergeOptions(site.Particles.Background, particle.DefaultOptions()), cfg.Theme, palettes, contactLayerSeed, log)
	s.transition = newColorTransition(s.colors.forTheme(cfg.Theme.Resolved()))
	return s, nil
}

// mergeOptions 用预设补全未配置的粒子参数
func mergeOptions(o, preset particle.Options) particle.Options {
	if o.Count <= 0 {
		o.Count = preset.Count
	}
	if o.ConnectionDistance <= 0 {
		o.ConnectionDistance = preset.ConnectionDistance
	}
	if o.MouseRadius <= 0 {
		o.MouseRadius = preset.MouseRadius
	}
	if o.Opacity <= 0 {
		o.Opacity = preset.Opacity
	}
	return o
}

// Start 订阅主题和语言变化，启动跑马灯与粒子层
func (s *PortfolioScene) Start() {
	if s.running {
		return
	}
	s.running = true

	s.cleanup.Add(s.theme.SubscribeResolved(s.onThemeChanged))
	s.cleanup.Add(s.language.Subscribe(s.onLanguageChanged))

	s.heroLayer.Start()
	s.cleanup.Add(s.heroLayer.Stop)
	s.contactLayer.Start()
	s.cleanup.Add(s.contactLayer.Stop)

	s.marquee.Start()
	s.cleanup.Add(s.marquee.Stop)

	s.relayout()
	s.interpolator.RequestRemeasure()
	s.log.Info("scene started",
		zap.String("theme", string(s.theme.Resolved())),
		zap.String("language", string(s.language.Language())))
}

// Stop 取消 Start 中注册的所有订阅并停止子系统
func (s *PortfolioScene) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.cleanup.Run()
	s.log.Info("scene stopped")
}

// Running 场景是否已启动
func (s *PortfolioScene) Running() bool {
	return s.running
}

// QuitRequested 是否按下了 Esc
func (s *PortfolioScene) QuitRequested() bool {
	return s.quit
}

// Resize 窗口逻辑尺寸变化
func (s *PortfolioScene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.relayout()
	s.interpolator.RequestRemeasure()
	s.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// relayout 重新计算布局并同步依赖布局的子系统
func (s *PortfolioScene) relayout() {
	strs := s.language.Strings()
	s.layout = buildLayout(layoutInput{
		Width:      float64(s.width),
		Height:     float64(s.height),
		Strings:    strs,
		Profile:    s.site.Profile,
		Language:   s.language.Language(),
		ThemeLabel: strs.Navbar.Theme,
		Year:       time.Now().Year(),
		Measure:    s.measure,
	})

	s.marquee.SetContentWidth(2 * s.layout.MarqueeWidth)

	if hero, ok := s.layout.section(sectionHero); ok {
		s.heroLayer.SetBounds(s.width, int(hero.Height))
	}
	if contact, ok := s.layout.section(sectionContact); ok {
		s.contactLayer.SetBounds(s.width, int(contact.Height))
	}
	s.setScroll(s.scroll.Offset())
}

func (s *PortfolioScene) onThemeChanged(t game.Theme) {
	s.transition.set(s.colors.forTheme(t), themeTransitionTicks)
	s.log.Debug("theme changed", zap.String("theme", string(t)))
}

func (s *PortfolioScene) onLanguageChanged(l game.Language) {
	s.typewriter.SetPhrases(s.language.Strings().Hero.Phrases)
	s.relayout()
	s.interpolator.RequestRemeasure()
	s.log.Debug("language changed", zap.String("language", string(l)))
}

// Measure 实现 systems.AnchorSource：返回两个头像占位的视口坐标
func (s *PortfolioScene) Measure() (origin systems.Rect, originOK bool, dest systems.Rect, destOK bool) {
	if s.layout == nil || s.layout.DocHeight == 0 {
		return
	}
	origin = s.layout.HeroAnchor
	origin.Top -= s.scroll.Offset()
	return origin, true, s.layout.NavAnchor, true
}

// ScrollOffset 当前滚动偏移
func (s *PortfolioScene) ScrollOffset() float64 {
	return s.scroll.Offset()
}

// setScroll 设置滚动偏移，限制在 [0, MaxScroll]
func (s *PortfolioScene) setScroll(y float64) {
	limit := 0.0
	if s.layout != nil {
		limit = s.layout.MaxScroll()
	}
	s.scroll.SetOffset(utils.Clamp(y, 0, limit))
}

// scrollBy 立即滚动，取消正在进行的平滑滚动
func (s *PortfolioScene) scrollBy(dy float64) {
	s.scrollTween = nil
	s.setScroll(s.scroll.Offset() + dy)
}

// scrollTo 平滑滚动到文档坐标 y
func (s *PortfolioScene) scrollTo(y float64) {
	if s.layout != nil {
		y = utils.Clamp(y, 0, s.layout.MaxScroll())
	}
	s.scrollTween = utils.NewTween(s.scroll.Offset(), y, s.site.Scroll.NavigateTicks, utils.EaseOutCubic)
}

// scrollToSection 平滑滚动到区块顶部
func (s *PortfolioScene) scrollToSection(id sectionID) {
	if s.layout == nil {
		return
	}
	if sec, ok := s.layout.section(id); ok {
		s.scrollTo(sec.Top)
	}
}

// Update 推进一帧
func (s *PortfolioScene) Update(deltaTime float64) {
	if !s.running {
		return
	}

	in := s.platform.readInput()
	s.pointer = in.Pointer
	s.handleKeys(in.Keys)
	s.handleKeys(in.Repeat)
	s.handlePointer(in.Pointer)
	if in.WheelY != 0 {
		s.scrollBy(in.WheelY * s.site.Scroll.WheelStep)
	}
	if s.scrollTween != nil {
		s.setScroll(s.scrollTween.Step())
		if s.scrollTween.Done() {
			s.scrollTween = nil
		}
	}

	scrollY := s.scroll.Offset()
	s.interpolator.Update(scrollY)
	s.typewriter.Update(deltaTime)
	s.backdrop.Update(s.scroll.IsScrolled())
	s.transition.step()

	s.marquee.SetHover(s.marqueeHovered(in.Pointer))
	s.marquee.Tick()

	if hero, ok := s.layout.section(sectionHero); ok {
		s.heroLayer.Update(s.heroLayer.PointerAt(in.Pointer, 0, hero.Top-scrollY))
	}
	if contact, ok := s.layout.section(sectionContact); ok {
		s.contactLayer.Update(s.contactLayer.PointerAt(in.Pointer, 0, contact.Top-scrollY))
	}
}

func (s *PortfolioScene) handleKeys(keys []ebiten.Key) {
	page := float64(s.height) - config.NavbarHeight
	for _, k := range keys {
		switch k {
		case ebiten.KeyArrowDown:
			s.scrollBy(s.site.Scroll.WheelStep)
		case ebiten.KeyArrowUp:
			s.scrollBy(-s.site.Scroll.WheelStep)
		case ebiten.KeyPageDown, ebiten.KeySpace:
			s.scrollTo(s.scroll.Offset() + page)
		case ebiten.KeyPageUp:
			s.scrollTo(s.scroll.Offset() - page)
		case ebiten.KeyHome:
			s.scrollTo(0)
		case ebiten.KeyEnd:
			if s.layout != nil {
				s.scrollTo(s.layout.MaxScroll())
			}
		case ebiten.KeyT:
			s.theme.ToggleTheme()
		case ebiten.KeyL:
			s.language.Cycle()
		case ebiten.KeyEscape:
			s.quit = true
		}
	}
}

// handlePointer 处理点击、拖拽滚动和光标形状
//
// 鼠标在按下时触发点击；触摸在抬起时触发，拖拽过的触摸不算点击。
func (s *PortfolioScene) handlePointer(p utils.PointerState) {
	wasDragging := s.drag.Dragging()
	if dy := s.drag.Update(p); dy != 0 {
		s.scrollBy(dy)
	}

	clicked := (!p.Touch && p.JustPressed) || (p.Touch && p.JustReleased && !wasDragging)
	link, hit := s.hitTest(p.X, p.Y)

	if s.platform.setCursor != nil && !p.Touch {
		if hit != hitNone {
			s.platform.setCursor(ebiten.CursorShapePointer)
		} else {
			s.platform.setCursor(ebiten.CursorShapeDefault)
		}
	}
	if !clicked {
		return
	}

	switch hit {
	case hitLink:
		s.scrollToSection(link.Target)
	case hitURL:
		s.openURL(link.URL)
	case hitTheme:
		s.theme.ToggleTheme()
	case hitLanguage:
		s.language.Cycle()
	case hitAvatar:
		s.scrollTo(0)
	}
}

type hitKind int

const (
	hitNone hitKind = iota
	hitLink
	hitURL
	hitTheme
	hitLanguage
	hitAvatar
)

// hitTest 查找视口坐标 (x, y) 处的可点击元素
func (s *PortfolioScene) hitTest(x, y float64) (linkItem, hitKind) {
	if s.layout == nil {
		return linkItem{}, hitNone
	}
	if y < config.NavbarHeight {
		for _, l := range s.layout.NavLinks {
			if l.contains(x, y) {
				return l, hitLink
			}
		}
		if s.layout.ThemeButton.contains(x, y) {
			return s.layout.ThemeButton, hitTheme
		}
		if s.layout.LangButton.contains(x, y) {
			return s.layout.LangButton, hitLanguage
		}
		if r, ok := s.interpolator.At(s.scroll.Progress(), s.scroll.Offset()); ok && s.scroll.ReachedEnd() {
			if (rect{X: r.Left, Y: r.Top, W: r.Size, H: r.Size}).contains(x, y) {
				return linkItem{}, hitAvatar
			}
		}
		return linkItem{}, hitNone
	}

	docY := y + s.scroll.Offset()
	for _, b := range s.layout.Buttons {
		if b.contains(x, docY) {
			if b.URL != "" {
				return b, hitURL
			}
			return b, hitLink
		}
	}
	return linkItem{}, hitNone
}

// openURL 在系统浏览器中打开外部链接
func (s *PortfolioScene) openURL(url string) {
	if s.platform.openURL == nil {
		return
	}
	if err := s.platform.openURL(url); err != nil {
		s.log.Warn("failed to open link", zap.String("url", url), zap.Error(err))
		return
	}
	s.log.Info("opened link", zap.String("url", url))
}

// marqueeHovered 指针是否位于跑马灯条带上
func (s *PortfolioScene) marqueeHovered(p utils.PointerState) bool {
	if s.layout == nil || len(s.layout.MarqueeItems) == 0 {
		return false
	}
	if p.Touch && !p.Pressed {
		return false
	}
	docY := p.Y + s.scroll.Offset()
	return p.Y >= config.NavbarHeight &&
		docY >= s.layout.MarqueeTop && docY < s.layout.MarqueeTop+config.MarqueeHeight
}
