package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SceneManager controls which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	width        int
	height       int
	log          *zap.Logger
}

// NewSceneManager creates a manager with no active scene.
func NewSceneManager(log *zap.Logger) *SceneManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SceneManager{log: log.Named("SceneManager")}
}

// SwitchTo stops the active scene (if it is Stoppable) and activates scene.
// The new scene is started (if it is Startable) and receives the last known
// window size immediately.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	sm.stopCurrent()
	sm.currentScene = scene
	if s, ok := scene.(Startable); ok {
		s.Start()
	}
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
	sm.log.Debug("scene switched")
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Resize 记录窗口尺寸并在变化时通知当前场景
func (sm *SceneManager) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// QuitRequested 当前场景是否请求退出
func (sm *SceneManager) QuitRequested() bool {
	q, ok := sm.currentScene.(Quitter)
	return ok && q.QuitRequested()
}

// Stop 停止当前场景（程序退出时调用）
func (sm *SceneManager) Stop() {
	sm.stopCurrent()
	sm.currentScene = nil
}

func (sm *SceneManager) stopCurrent() {
	if s, ok := sm.currentScene.(Stoppable); ok {
		s.Stop()
	}
}
