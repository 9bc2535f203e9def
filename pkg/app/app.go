// Package app 提供作品集应用的核心包装器
//
// 该包把初始化逻辑从 main 包中提取出来：加载页面文本、恢复主题和语言偏好、
// 创建场景，并实现 ebiten.Game 接口。调用 NewApp 之前必须先调用 embedded.Init()。
package app

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/decker502/portfolio/pkg/config"
	"github.com/decker502/portfolio/pkg/game"
	"github.com/decker502/portfolio/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Site 站点配置（已校验）
	Site *config.SiteConfig
	// Storage 偏好存储，为 nil 时按 Site.Storage.AppName 打开 gdata 存储
	Storage game.PreferenceStorage
	// Detector 系统配色检测，为 nil 时优先使用 freedesktop 设置门户，不可用时读取环境变量
	Detector game.SystemThemeDetector
	// Theme / Language 命令行指定的偏好，非空时覆盖并保存
	Theme    string
	Language string
	Logger   *zap.Logger
}

// App 是作品集应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	theme        *game.ThemeManager
	language     *game.LanguageManager
	site         *config.SiteConfig

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
	closed                   bool
	releaseDetector          func()

	log *zap.Logger
}

// ResolveLanguage 解析语言配置，"auto" 表示按系统 locale 匹配
func ResolveLanguage(s string) (game.Language, error) {
	if strings.EqualFold(strings.TrimSpace(s), game.LanguageAuto) {
		return game.SystemLanguage(), nil
	}
	return game.ParseLanguage(s)
}

// ParseTheme 解析主题配置
func ParseTheme(s string) (game.Theme, error) {
	t := game.Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", game.ErrInvalidPreference, s)
	}
	return t, nil
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	if cfg.Site == nil {
		return nil, fmt.Errorf("%w: missing site config", config.ErrInvalidConfig)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	site := cfg.Site

	catalog, err := game.NewSiteCatalog(game.DefaultI18nDir)
	if err != nil {
		return nil, fmt.Errorf("页面文本加载失败: %w", err)
	}

	storage := cfg.Storage
	if storage == nil {
		storage = game.OpenPreferenceStorage(site.Storage.AppName, log)
	}

	defaultTheme, err := ParseTheme(site.Theme.Default)
	if err != nil {
		return nil, fmt.Errorf("theme.default: %w", err)
	}
	defaultLanguage, err := ResolveLanguage(site.Language.Default)
	if err != nil {
		return nil, fmt.Errorf("language.default: %w", err)
	}

	detector, release := cfg.Detector, func() {}
	if detector == nil {
		detector, release = game.OpenSystemThemeDetector(log)
	}
	ok := false
	defer func() {
		if !ok {
			release()
		}
	}()

	theme := game.NewThemeManager(game.ThemeManagerConfig{
		Storage:   storage,
		Detector:  detector,
		Default:   defaultTheme,
		PollTicks: site.Theme.PollTicks,
		Logger:    log,
	})
	language, err := game.NewLanguageManager(game.LanguageManagerConfig{
		Storage: storage,
		Catalog: catalog,
		Default: defaultLanguage,
		Logger:  log,
	})
	if err != nil {
		return nil, err
	}

	// 命令行参数是显式选择，与在页面上切换一样会被保存
	if cfg.Theme != "" {
		t, err := ParseTheme(cfg.Theme)
		if err != nil {
			return nil, fmt.Errorf("--theme: %w", err)
		}
		if err := theme.SetTheme(t); err != nil {
			return nil, err
		}
	}
	if cfg.Language != "" {
		l, err := ResolveLanguage(cfg.Language)
		if err != nil {
			return nil, fmt.Errorf("--lang: %w", err)
		}
		if err := language.SetLanguage(l); err != nil {
			return nil, err
		}
	}

	scene, err := scenes.NewPortfolioScene(scenes.PortfolioSceneConfig{
		Site:     site,
		Theme:    theme,
		Language: language,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager(log)
	sceneManager.SwitchTo(scene)

	log.Named("App").Info("application initialized",
		zap.String("theme", string(theme.Theme())),
		zap.String("language", string(language.Language())))

	ok = true
	return &App{
		sceneManager:    sceneManager,
		theme:           theme,
		language:        language,
		site:            site,
		releaseDetector: release,
		log:             log.Named("App"),
	}, nil
}

// Update 更新逻辑，每个 tick 调用一次（60 TPS）
//
// 当前场景请求退出时返回 ebiten.Termination，并先停止场景。
func (a *App) Update() error {
	if a.sceneManager.QuitRequested() {
		a.Close()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.site.Window.Width, a.site.Window.Height)
			a.log.Debug("delayed window size reset",
				zap.Int("width", a.site.Window.Width), zap.Int("height", a.site.Window.Height))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.theme.Update()

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑尺寸跟随窗口尺寸，页面按窗口宽度重新排版
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 停止当前场景并释放系统配色检测，可重复调用
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.sceneManager.Stop()
	if a.releaseDetector != nil {
		a.releaseDetector()
	}
	a.log.Info("application closed")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// Theme 返回主题管理器
func (a *App) Theme() *game.ThemeManager {
	return a.theme
}

// Language 返回语言管理器
func (a *App) Language() *game.LanguageManager {
	return a.language
}
