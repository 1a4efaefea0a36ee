package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/decker502/forest/pkg/config"
)

// ForestSettings 外壳偏好设置
// 注意：只保存显示偏好，不保存任何对局状态
type ForestSettings struct {
	// BoardSize 未通过命令行或环境变量指定时使用的棋盘边长
	BoardSize int `yaml:"boardSize"`
	// ExpiringThreshold 剩余回合数小于该值时高亮为即将成熟
	ExpiringThreshold int `yaml:"expiringThreshold"`
	// ShowStats 是否显示植物属性面板
	ShowStats bool `yaml:"showStats"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ForestSettings {
	return &ForestSettings{
		BoardSize:         config.DefaultBoardSize,
		ExpiringThreshold: config.DefaultExpiringThreshold,
		ShowStats:         true,
	}
}

// SettingsManager 设置管理器
// 负责偏好设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ForestSettings
	logger       zerolog.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方，加载失败不影响创建
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		logger:       log.Logger.With().Str("component", "SettingsManager").Logger(),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := sm.Load(); err != nil {
		sm.logger.Warn().Err(err).Msg("failed to load settings, using defaults")
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，旧版本文件缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	sanitizeSettings(loaded)

	sm.settings = loaded
	sm.logger.Debug().Int("boardSize", loaded.BoardSize).Msg("settings loaded")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.logger.Debug().Msg("settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ForestSettings {
	return sm.settings
}

// SetBoardSize 设置偏好棋盘边长
// 小于 1 的值按 1 处理；仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetBoardSize(size int) {
	if size < 1 {
		size = 1
	}
	sm.settings.BoardSize = size
}

// ResolveBoardSize 决定本次会话的棋盘边长
//
// 显式给出的边长成为新的偏好并立即保存；否则沿用保存的偏好。
// 保存失败只记录警告，不影响本次会话。
func (sm *SettingsManager) ResolveBoardSize(requested int, explicit bool) int {
	if !explicit {
		return sm.settings.BoardSize
	}
	if requested == sm.settings.BoardSize {
		return requested
	}

	sm.SetBoardSize(requested)
	if err := sm.Save(); err != nil {
		sm.logger.Warn().Err(err).Int("boardSize", requested).Msg("failed to save board size preference")
	}
	return sm.settings.BoardSize
}

// AdjustExpiringThreshold 按 delta 调整即将成熟高亮阈值并保存
// 返回调整后的阈值；保存失败时内存中的设置仍然生效
func (sm *SettingsManager) AdjustExpiringThreshold(delta int) (int, error) {
	sm.SetExpiringThreshold(sm.settings.ExpiringThreshold + delta)
	return sm.settings.ExpiringThreshold, sm.Save()
}

// SetExpiringThreshold 设置即将成熟高亮阈值
// 负值按 0 处理（不高亮）；仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetExpiringThreshold(threshold int) {
	if threshold < 0 {
		threshold = 0
	}
	sm.settings.ExpiringThreshold = threshold
}

// SetShowStats 设置是否显示属性面板
func (sm *SettingsManager) SetShowStats(show bool) {
	sm.settings.ShowStats = show
}

// sanitizeSettings 修正文件中不合法的值
func sanitizeSettings(s *ForestSettings) {
	if s.BoardSize < 1 {
		s.BoardSize = config.DefaultBoardSize
	}
	if s.ExpiringThreshold < 0 {
		s.ExpiringThreshold = 0
	}
}
