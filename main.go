package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decker502/portfolio/pkg/app"
	"github.com/decker502/portfolio/pkg/config"
	"github.com/decker502/portfolio/pkg/embedded"
	"github.com/decker502/portfolio/pkg/logger"
)

// siteConfigPath 嵌入的默认站点配置
const siteConfigPath = "data/site.yaml"

var (
	cfgFile    string
	verbose    bool
	logFormat  string
	themeFlag  string
	langFlag   string
	fullscreen bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio with interactive particle backgrounds",
	Long: `portfolio renders a single-page portfolio in a window: particle
backgrounds, a floating profile avatar that follows the scroll position,
a technology marquee, and persisted theme and language preferences.

Keys: arrows/PgUp/PgDn/Home/End scroll, T toggles the theme,
L cycles the language, F11 toggles fullscreen, Esc quits.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "site config file merged over the built-in defaults")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&logFormat, "log-format", "console", "log output format: console or json")
	flags.StringVar(&themeFlag, "theme", "", "theme preference to apply and save: light, dark or system")
	flags.StringVar(&langFlag, "lang", "", "language to apply and save: ca, es, en or auto")
	flags.BoolVar(&fullscreen, "fullscreen", false, "start in fullscreen mode")
}

func run(cmd *cobra.Command, _ []string) error {
	log := logger.Init(logger.Config{Verbose: verbose, Format: logFormat})
	defer logger.Sync()

	// 初始化嵌入数据，必须在任何资源加载之前
	embedded.Init(dataFS)

	defaults, err := embedded.ReadFile(siteConfigPath)
	if err != nil {
		return fmt.Errorf("failed to read built-in config: %w", err)
	}
	site, err := config.Load(defaults, cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fullscreen") {
		site.Window.Fullscreen = fullscreen
	}

	application, err := app.NewApp(app.Config{
		Site:     site,
		Theme:    themeFlag,
		Language: langFlag,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	defer application.Close()

	ebiten.SetWindowSize(site.Window.Width, site.Window.Height)
	ebiten.SetWindowTitle(site.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(site.Window.Fullscreen)

	log.Info("starting",
		zap.Int("width", site.Window.Width),
		zap.Int("height", site.Window.Height),
		zap.Bool("fullscreen", site.Window.Fullscreen))

	if err := ebiten.RunGame(application); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
