package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Scene represents a screen of the shell (currently only the forest board).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Finisher 是一个可选接口，场景结束时通知外壳退出
type Finisher interface {
	// Finished 报告场景是否已结束
	Finished() bool
	// Err 返回导致场景结束的致命错误，正常结束时为 nil
	Err() error
}

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	logger       zerolog.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		logger: log.Logger.With().Str("component", "SceneManager").Logger(),
	}
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.logger.Debug().Type("scene", scene).Msg("switching scene")
	sm.currentScene = scene
}

// Finished 报告当前场景是否要求退出
//
// 返回：
//   - bool: 当前场景实现 Finisher 且已结束
//   - error: 场景的致命错误
func (sm *SceneManager) Finished() (bool, error) {
	f, ok := sm.currentScene.(Finisher)
	if !ok {
		return false, nil
	}
	return f.Finished(), f.Err()
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
