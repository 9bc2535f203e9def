// Package main 粒子网络查看器
//
// 单独运行页面使用的粒子场，便于调整参数并检查两套调色板。
// 默认打开窗口；--tui 在终端中用字符渲染同一个粒子场。
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--count <n>        粒子数量
//	--distance <px>    粒子之间连线的最大距离
//	--radius <px>      指针吸引半径
//	--theme <name>     light / dark / system
//	--hero             使用 Hero 区块的预设（未指定的参数取该预设）
//	--seed <n>         随机种子
//	--tui              在终端中渲染
//
// Controls:
//
//	T         切换浅色/深色
//	R         重新生成粒子
//	Q/Escape  退出
package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decker502/portfolio/internal/particle"
	"github.com/decker502/portfolio/pkg/game"
	"github.com/decker502/portfolio/pkg/logger"
	"github.com/decker502/portfolio/pkg/systems"
)

const (
	windowWidth  = 1024
	windowHeight = 640
)

var (
	count    int
	distance float64
	radius   float64
	themeArg string
	hero     bool
	seed     int64
	tui      bool
	verbose  bool
)

// 两种主题下的背景色，与站点默认配色一致
var backgrounds = map[game.Theme]color.NRGBA{
	game.ThemeLight: {R: 248, G: 250, B: 252, A: 255},
	game.ThemeDark:  {R: 15, G: 23, B: 42, A: 255},
}

var palettes = systems.Palettes{
	Light: particle.LightPalette,
	Dark:  particle.DarkPalette,
}

var rootCmd = &cobra.Command{
	Use:          "particles",
	Short:        "Standalone viewer for the portfolio particle field",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVar(&count, "count", 0, "number of particles (0 keeps the preset)")
	flags.Float64Var(&distance, "distance", 0, "max distance for particle edges in pixels (0 keeps the preset)")
	flags.Float64Var(&radius, "radius", 0, "pointer attraction radius in pixels (0 keeps the preset)")
	flags.StringVar(&themeArg, "theme", string(game.ThemeSystem), "theme: light, dark or system")
	flags.BoolVar(&hero, "hero", false, "start from the hero preset instead of the section preset")
	flags.Int64Var(&seed, "seed", 1, "random seed")
	flags.BoolVar(&tui, "tui", false, "render in the terminal instead of a window")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// fieldOptions 预设加上命令行覆盖
func fieldOptions() particle.Options {
	opts := particle.DefaultOptions()
	if hero {
		opts = particle.HeroOptions()
	}
	if count > 0 {
		opts.Count = count
	}
	if distance > 0 {
		opts.ConnectionDistance = distance
	}
	if radius > 0 {
		opts.MouseRadius = radius
	}
	return opts
}

func run(_ *cobra.Command, _ []string) error {
	log := logger.Init(logger.Config{Verbose: verbose})
	defer logger.Sync()

	t := game.Theme(themeArg)
	if !t.Valid() {
		return fmt.Errorf("--theme: %w: %q", game.ErrInvalidPreference, themeArg)
	}
	detector, release := game.OpenSystemThemeDetector(log)
	defer release()
	// 查看器不保存偏好
	theme := game.NewThemeManager(game.ThemeManagerConfig{
		Storage:  game.NewMemoryStorage(),
		Detector: detector,
		Default:  t,
		Logger:   log,
	})

	opts := fieldOptions()
	log.Info("particle viewer",
		zap.Int("count", opts.Count),
		zap.Float64("distance", opts.ConnectionDistance),
		zap.Float64("radius", opts.MouseRadius),
		zap.String("theme", string(theme.Resolved())),
		zap.Bool("tui", tui))

	if tui {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialize screen: %w", err)
		}
		return newTerminalViewer(screen, opts, theme, seed, log).run(nil)
	}
	return runWindow(opts, theme, seed, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
