//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.portfolio -o build/android/portfolio.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Portfolio.xcframework -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"
	"go.uber.org/zap"

	"github.com/decker502/portfolio/pkg/app"
	"github.com/decker502/portfolio/pkg/config"
	"github.com/decker502/portfolio/pkg/embedded"
	"github.com/decker502/portfolio/pkg/logger"
)

func init() {
	log := logger.Init(logger.Config{Verbose: true})

	embedded.Init(dataFS)
	defaults, err := embedded.ReadFile("data/site.yaml")
	if err != nil {
		log.Fatal("failed to read built-in config", zap.Error(err))
	}
	site, err := config.Load(defaults, "")
	if err != nil {
		log.Fatal("invalid site config", zap.Error(err))
	}

	portfolio, err := app.NewApp(app.Config{Site: site, Logger: log})
	if err != nil {
		log.Fatal("应用初始化失败", zap.Error(err))
	}
	mobile.SetGame(portfolio)
}

// Dummy 空导出函数，确保包被 ebitenmobile 识别
func Dummy() {}
