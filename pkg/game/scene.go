package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a full-window view driven by the game loop.
type Scene interface {
	// Update advances the scene by one tick.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 可选接口：场景需要知道窗口逻辑尺寸
//
// 每次 ebiten 调用 Layout 时由 SceneManager 转发，
// 尺寸未变化时不会重复调用。
type Resizable interface {
	Resize(width, height int)
}

// Startable 可选接口：场景被激活时订阅事件、启动子系统
type Startable interface {
	Start()
}

// Stoppable 可选接口：场景在被替换或程序退出时释放订阅和后台资源
type Stoppable interface {
	Stop()
}

// Quitter 可选接口：场景请求退出程序（如按下 Esc）
type Quitter interface {
	QuitRequested() bool
}
