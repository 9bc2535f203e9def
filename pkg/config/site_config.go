package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/decker502/portfolio/internal/particle"
)

// ErrInvalidConfig 配置值不合法
var ErrInvalidConfig = errors.New("invalid site config")

// EnvPrefix 环境变量前缀，如 PORTFOLIO_SCROLL_THRESHOLD=400
const EnvPrefix = "PORTFOLIO"

// SiteConfig 站点运行配置
//
// 默认值来自嵌入的 data/site.yaml，可被用户配置文件、环境变量和命令行参数覆盖。
type SiteConfig struct {
	Window     WindowConfig     `mapstructure:"window" yaml:"window"`
	Scroll     ScrollConfig     `mapstructure:"scroll" yaml:"scroll"`
	Marquee    MarqueeConfig    `mapstructure:"marquee" yaml:"marquee"`
	Particles  ParticlesConfig  `mapstructure:"particles" yaml:"particles"`
	Palettes   PalettesConfig   `mapstructure:"palettes" yaml:"palettes"`
	Profile    ProfileConfig    `mapstructure:"profile" yaml:"profile"`
	Theme      ThemeConfig      `mapstructure:"theme" yaml:"theme"`
	Language   LanguageConfig   `mapstructure:"language" yaml:"language"`
	Typewriter TypewriterConfig `mapstructure:"typewriter" yaml:"typewriter"`
	Storage    StorageConfig    `mapstructure:"storage" yaml:"storage"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width      int    `mapstructure:"width" yaml:"width"`
	Height     int    `mapstructure:"height" yaml:"height"`
	Title      string `mapstructure:"title" yaml:"title"`
	Fullscreen bool   `mapstructure:"fullscreen" yaml:"fullscreen"`
}

// ScrollConfig 滚动相关配置
type ScrollConfig struct {
	// Threshold 头像动画完成所需的滚动距离（像素）
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
	// ScrolledOffset 导航栏切换为"已滚动"样式的偏移量
	ScrolledOffset float64 `mapstructure:"scrolledOffset" yaml:"scrolledOffset"`
	// WheelStep 鼠标滚轮一格对应的像素
	WheelStep float64 `mapstructure:"wheelStep" yaml:"wheelStep"`
	// NavigateTicks 点击导航链接后平滑滚动的帧数
	NavigateTicks int `mapstructure:"navigateTicks" yaml:"navigateTicks"`
}

// MarqueeConfig 跑马灯配置
type MarqueeConfig struct {
	MaxSpeed     float64 `mapstructure:"maxSpeed" yaml:"maxSpeed"`
	Acceleration float64 `mapstructure:"acceleration" yaml:"acceleration"`
}

// ParticlesConfig 两个粒子层的参数
type ParticlesConfig struct {
	Hero       particle.Options `mapstructure:"hero" yaml:"hero"`
	Background particle.Options `mapstructure:"background" yaml:"background"`
}

// PalettesConfig 浅色/深色调色板
type PalettesConfig struct {
	Light PaletteConfig `mapstructure:"light" yaml:"light"`
	Dark  PaletteConfig `mapstructure:"dark" yaml:"dark"`
}

// ProfileConfig 浮动头像配置
type ProfileConfig struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Initials string `mapstructure:"initials" yaml:"initials"`
	Email    string `mapstructure:"email" yaml:"email"`
	// Whatsapp 联系电话，留空时不显示 WhatsApp 按钮
	Whatsapp string `mapstructure:"whatsapp" yaml:"whatsapp"`
	// HeroSize / NavbarSize 头像在两个锚点处的尺寸
	HeroSize   float64 `mapstructure:"heroSize" yaml:"heroSize"`
	NavbarSize float64 `mapstructure:"navbarSize" yaml:"navbarSize"`
	// SettleTicks 重新测量锚点前等待布局稳定的帧数
	SettleTicks int `mapstructure:"settleTicks" yaml:"settleTicks"`
}

// ThemeConfig 主题配置
type ThemeConfig struct {
	// Default 首次启动时的主题偏好：light / dark / system
	Default string `mapstructure:"default" yaml:"default"`
	// PollTicks 检测系统配色变化的间隔帧数
	PollTicks int `mapstructure:"pollTicks" yaml:"pollTicks"`
}

// LanguageConfig 语言配置
type LanguageConfig struct {
	// Default 首次启动时的语言：ca / es / en / auto（根据 LANG 匹配）
	Default string `mapstructure:"default" yaml:"default"`
}

// TypewriterConfig Hero 标语打字机效果配置
type TypewriterConfig struct {
	TypeTicks   int     `mapstructure:"typeTicks" yaml:"typeTicks"`
	DeleteTicks int     `mapstructure:"deleteTicks" yaml:"deleteTicks"`
	HoldTicks   int     `mapstructure:"holdTicks" yaml:"holdTicks"`
	BlinkPeriod float64 `mapstructure:"blinkPeriod" yaml:"blinkPeriod"` // 光标闪烁间隔（秒）
}

// StorageConfig 偏好持久化配置
type StorageConfig struct {
	// AppName gdata 存储目录名
	AppName string `mapstructure:"appName" yaml:"appName"`
}

// Load 加载站点配置
//
// 参数：
//   - defaults: 嵌入的默认配置（data/site.yaml 内容）
//   - path: 用户配置文件路径，为空则跳过
//
// 覆盖顺序：defaults < path < PORTFOLIO_* 环境变量。
// 命令行参数由调用方在 Load 之后写入返回的结构体。
func Load(defaults []byte, path string) (*SiteConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置取值范围
func (c *SiteConfig) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Scroll.Threshold <= 0:
		return fmt.Errorf("%w: scroll.threshold must be positive, got %v", ErrInvalidConfig, c.Scroll.Threshold)
	case c.Marquee.MaxSpeed <= 0 || c.Marquee.Acceleration <= 0:
		return fmt.Errorf("%w: marquee speeds must be positive", ErrInvalidConfig)
	case c.Profile.HeroSize <= 0 || c.Profile.NavbarSize <= 0:
		return fmt.Errorf("%w: profile sizes must be positive", ErrInvalidConfig)
	case c.Typewriter.TypeTicks <= 0 || c.Typewriter.DeleteTicks <= 0 || c.Typewriter.BlinkPeriod <= 0:
		return fmt.Errorf("%w: typewriter timings must be positive", ErrInvalidConfig)
	}
	if _, err := c.Palettes.Light.Palette(); err != nil {
		return fmt.Errorf("%w: palettes.light: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Palettes.Dark.Palette(); err != nil {
		return fmt.Errorf("%w: palettes.dark: %v", ErrInvalidConfig, err)
	}
	return nil
}
