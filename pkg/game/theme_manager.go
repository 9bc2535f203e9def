package game

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Theme 主题偏好
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// DefaultThemePollTicks 检测系统配色变化的默认间隔（60 TPS 下约 2 秒）
const DefaultThemePollTicks = 120

// Valid 是否为合法的主题偏好
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// SystemThemeDetector 系统配色检测端口
type SystemThemeDetector interface {
	// Dark 返回系统当前是否偏好深色
	Dark() bool
}

// StaticDetector 固定结果的检测器
type StaticDetector bool

// Dark 实现 SystemThemeDetector
func (d StaticDetector) Dark() bool { return bool(d) }

// EnvDetector 根据环境变量推断系统配色
//
// 依次检查：
//   - PORTFOLIO_COLOR_SCHEME=dark|light
//   - GTK_THEME 含 ":dark" 或以 "-dark" 结尾
//   - COLORFGBG 的背景色号（0-6、8 视为深色）
//
// 都无法判断时视为浅色。
type EnvDetector struct {
	// Getenv 为 nil 时使用 os.Getenv
	Getenv func(string) string
}

// Dark 实现 SystemThemeDetector
func (d EnvDetector) Dark() bool {
	getenv := d.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	switch strings.ToLower(strings.TrimSpace(getenv("PORTFOLIO_COLOR_SCHEME"))) {
	case "dark":
		return true
	case "light":
		return false
	}

	if gtk := strings.ToLower(getenv("GTK_THEME")); gtk != "" {
		if strings.Contains(gtk, ":dark") || strings.HasSuffix(gtk, "-dark") {
			return true
		}
	}

	if fgbg := getenv("COLORFGBG"); fgbg != "" {
		parts := strings.Split(fgbg, ";")
		if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			return (bg >= 0 && bg <= 6) || bg == 8
		}
	}
	return false
}

// ThemeManagerConfig ThemeManager 构造参数
type ThemeManagerConfig struct {
	Storage   PreferenceStorage
	Detector  SystemThemeDetector
	Default   Theme
	PollTicks int
	Logger    *zap.Logger
}

// ThemeManager 主题管理器
//
// 持有主题偏好（light/dark/system），并把 system 解析为实际的 light/dark。
// 解析结果变化时通知 SubscribeResolved 的订阅者（粒子层据此换色）。
type ThemeManager struct {
	pref       *Preference[Theme]
	detector   SystemThemeDetector
	systemDark bool
	resolved   Theme

	pollTicks int
	ticks     int

	resolvedChanged Broadcaster[Theme]
	log             *zap.Logger
}

// NewThemeManager 创建主题管理器并恢复已保存的偏好
func NewThemeManager(cfg ThemeManagerConfig) *ThemeManager {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("ThemeManager")

	def := cfg.Default
	if !def.Valid() {
		def = ThemeSystem
	}
	detector := cfg.Detector
	if detector == nil {
		detector = EnvDetector{}
	}
	poll := cfg.PollTicks
	if poll <= 0 {
		poll = DefaultThemePollTicks
	}

	tm := &ThemeManager{
		pref:      NewPreference(ThemePreferenceKey, def, Theme.Valid, cfg.Storage, log),
		detector:  detector,
		pollTicks: poll,
		log:       log,
	}
	tm.systemDark = detector.Dark()
	tm.resolved = tm.resolve()
	// 先于外部订阅者注册，保证回调中 Resolved() 已是新值
	tm.pref.Subscribe(tm.preferenceChanged)
	log.Debug("theme restored", zap.String("theme", string(tm.pref.Get())), zap.String("resolved", string(tm.resolved)))
	return tm
}

func (tm *ThemeManager) resolve() Theme {
	switch tm.pref.Get() {
	case ThemeDark:
		return ThemeDark
	case ThemeLight:
		return ThemeLight
	}
	if tm.systemDark {
		return ThemeDark
	}
	return ThemeLight
}

// refresh 重新解析主题，变化时通知订阅者
func (tm *ThemeManager) refresh() {
	next := tm.resolve()
	if next == tm.resolved {
		return
	}
	tm.resolved = next
	tm.log.Debug("resolved theme changed", zap.String("resolved", string(next)))
	tm.resolvedChanged.Publish(next)
}

// Theme 返回主题偏好
func (tm *ThemeManager) Theme() Theme {
	return tm.pref.Get()
}

// Resolved 返回实际生效的主题（light 或 dark）
func (tm *ThemeManager) Resolved() Theme {
	return tm.resolved
}

// IsDark 当前是否为深色
func (tm *ThemeManager) IsDark() bool {
	return tm.resolved == ThemeDark
}

func (tm *ThemeManager) preferenceChanged(t Theme) {
	if t == ThemeSystem {
		tm.systemDark = tm.detector.Dark()
	}
	tm.refresh()
}

// SetTheme 设置主题偏好
// 再次选择 system 时重新读取系统配色
func (tm *ThemeManager) SetTheme(t Theme) error {
	if t == ThemeSystem && tm.pref.Get() == ThemeSystem {
		tm.SystemChanged()
		return nil
	}
	return tm.pref.Set(t)
}

// ToggleTheme 在浅色和深色之间切换
// 以当前实际生效的主题为准，切换后偏好不再是 system
func (tm *ThemeManager) ToggleTheme() {
	next := ThemeDark
	if tm.resolved == ThemeDark {
		next = ThemeLight
	}
	// next 必然合法
	_ = tm.SetTheme(next)
}

// SystemChanged 重新读取系统配色
// 仅当偏好为 system 时才会改变实际主题
func (tm *ThemeManager) SystemChanged() {
	dark := tm.detector.Dark()
	if dark == tm.systemDark {
		return
	}
	tm.systemDark = dark
	if tm.pref.Get() == ThemeSystem {
		tm.refresh()
	}
}

// Update 每帧调用，每 PollTicks 帧检测一次系统配色
func (tm *ThemeManager) Update() {
	tm.ticks++
	if tm.ticks >= tm.pollTicks {
		tm.ticks = 0
		tm.SystemChanged()
	}
}

// Subscribe 订阅主题偏好变化
func (tm *ThemeManager) Subscribe(fn func(Theme)) (cancel func()) {
	return tm.pref.Subscribe(fn)
}

// SubscribeResolved 订阅实际主题变化
func (tm *ThemeManager) SubscribeResolved(fn func(Theme)) (cancel func()) {
	return tm.resolvedChanged.Subscribe(fn)
}
