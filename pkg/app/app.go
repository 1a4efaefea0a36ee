// Package app 提供窗口外壳的核心包装器
//
// 该包把会话和场景组装成 ebiten.Game，main.go 只负责读取配置和启动循环。
package app

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/decker502/forest/pkg/config"
	"github.com/decker502/forest/pkg/game"
	"github.com/decker502/forest/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Session 游戏会话（必填）
	Session *game.Session
	// Settings 偏好设置管理器，为 nil 时使用降级模式
	Settings *game.SettingsManager
	// Logger 日志记录器，为 nil 时使用全局 logger
	Logger *zerolog.Logger
}

// App 是窗口外壳的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *scenes.SceneManager
	logger       zerolog.Logger
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	if cfg.Session == nil {
		return nil, errors.New("app requires a session")
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	logger = logger.With().Str("component", "App").Logger()

	settings := cfg.Settings
	if settings == nil {
		var err error
		settings, err = game.NewSettingsManager(nil)
		if err != nil {
			return nil, fmt.Errorf("设置初始化失败: %w", err)
		}
	}

	sceneManager := scenes.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewForestScene(cfg.Session, settings, logger))

	return &App{
		sceneManager: sceneManager,
		logger:       logger,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
//
// 返回：
//   - ebiten.Termination: 会话收到退出命令
//   - error: 会话遇到致命错误
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return a.exitStatus()
}

// exitStatus 把场景的结束状态转换为 ebiten 循环的返回值
func (a *App) exitStatus() error {
	done, err := a.sceneManager.Finished()
	if err != nil {
		a.logger.Error().Err(err).Msg("session aborted")
		return err
	}
	if done {
		a.logger.Info().Msg("session finished")
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}
