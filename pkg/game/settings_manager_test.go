package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/forest/pkg/config"
)

// openTestGdata 在临时 HOME 下打开 gdata 存储
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}

	if settings.BoardSize != config.DefaultBoardSize {
		t.Errorf("BoardSize: got %d, want %d", settings.BoardSize, config.DefaultBoardSize)
	}

	if settings.ExpiringThreshold != config.DefaultExpiringThreshold {
		t.Errorf("ExpiringThreshold: got %d, want %d", settings.ExpiringThreshold, config.DefaultExpiringThreshold)
	}

	if !settings.ShowStats {
		t.Error("ShowStats: got false, want true")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if sm.GetSettings().BoardSize != config.DefaultBoardSize {
		t.Errorf("Degraded mode BoardSize: got %d, want %d", sm.GetSettings().BoardSize, config.DefaultBoardSize)
	}

	// 降级模式下 Save() 不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}

	// 降级模式下 Load() 恢复默认值
	sm.SetBoardSize(9)
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().BoardSize != config.DefaultBoardSize {
		t.Errorf("After Load() in degraded mode, BoardSize: got %d", sm.GetSettings().BoardSize)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "forest_test_settings")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetBoardSize(9)
	sm1.SetExpiringThreshold(2)
	sm1.SetShowStats(false)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 创建新的设置管理器，验证加载
	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.BoardSize != 9 {
		t.Errorf("Loaded BoardSize: got %d, want 9", settings.BoardSize)
	}
	if settings.ExpiringThreshold != 2 {
		t.Errorf("Loaded ExpiringThreshold: got %d, want 2", settings.ExpiringThreshold)
	}
	if settings.ShowStats {
		t.Error("Loaded ShowStats: got true, want false")
	}
}

// TestSettingsLoadPartialFile 测试旧文件缺少字段时保留默认值，非法值被修正
func TestSettingsLoadPartialFile(t *testing.T) {
	gdataManager := openTestGdata(t, "forest_test_settings_partial")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("boardSize: -4\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	settings := sm.GetSettings()
	if settings.BoardSize != config.DefaultBoardSize {
		t.Errorf("BoardSize: got %d, want %d", settings.BoardSize, config.DefaultBoardSize)
	}
	if settings.ExpiringThreshold != config.DefaultExpiringThreshold {
		t.Errorf("ExpiringThreshold: got %d, want %d", settings.ExpiringThreshold, config.DefaultExpiringThreshold)
	}
	if !settings.ShowStats {
		t.Error("ShowStats: got false, want true")
	}
}

// TestSettingsLoadCorruptFile 测试文件损坏时返回错误并回退到默认设置
func TestSettingsLoadCorruptFile(t *testing.T) {
	gdataManager := openTestGdata(t, "forest_test_settings_corrupt")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("boardSize: [oops")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() should not fail on corrupt file: %v", err)
	}

	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupt settings")
	}
	if sm.GetSettings().BoardSize != config.DefaultBoardSize {
		t.Errorf("BoardSize: got %d, want default", sm.GetSettings().BoardSize)
	}
}

// TestSettingsSetterClamp 测试设置项范围校验
func TestSettingsSetterClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		name          string
		boardSize     int
		threshold     int
		wantBoardSize int
		wantThreshold int
	}{
		{"正常值", 8, 2, 8, 2},
		{"最小值", 1, 0, 1, 0},
		{"棋盘边长为 0", 0, 1, 1, 1},
		{"负数", -5, -3, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetBoardSize(tt.boardSize)
			sm.SetExpiringThreshold(tt.threshold)

			if got := sm.GetSettings().BoardSize; got != tt.wantBoardSize {
				t.Errorf("SetBoardSize(%d): got %d, want %d", tt.boardSize, got, tt.wantBoardSize)
			}
			if got := sm.GetSettings().ExpiringThreshold; got != tt.wantThreshold {
				t.Errorf("SetExpiringThreshold(%d): got %d, want %d", tt.threshold, got, tt.wantThreshold)
			}
		})
	}
}

// TestResolveBoardSize 测试显式边长成为新偏好，未显式给出时沿用保存的偏好
func TestResolveBoardSize(t *testing.T) {
	gdataManager := openTestGdata(t, "forest_test_settings_board_size")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	if got := sm1.ResolveBoardSize(config.DefaultBoardSize, false); got != config.DefaultBoardSize {
		t.Errorf("ResolveBoardSize(not explicit) on fresh store: got %d, want %d", got, config.DefaultBoardSize)
	}
	if got := sm1.ResolveBoardSize(11, true); got != 11 {
		t.Errorf("ResolveBoardSize(11, explicit): got %d, want 11", got)
	}

	// 下一次启动没有显式边长时使用保存的偏好
	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	if got := sm2.ResolveBoardSize(config.DefaultBoardSize, false); got != 11 {
		t.Errorf("ResolveBoardSize(not explicit) after save: got %d, want 11", got)
	}
}

// TestAdjustExpiringThreshold 测试阈值调整被保存，且不会低于 0
func TestAdjustExpiringThreshold(t *testing.T) {
	gdataManager := openTestGdata(t, "forest_test_settings_threshold")

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	got, err := sm1.AdjustExpiringThreshold(2)
	if err != nil {
		t.Fatalf("AdjustExpiringThreshold(2) error: %v", err)
	}
	if want := config.DefaultExpiringThreshold + 2; got != want {
		t.Errorf("AdjustExpiringThreshold(2): got %d, want %d", got, want)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}
	if got := sm2.GetSettings().ExpiringThreshold; got != config.DefaultExpiringThreshold+2 {
		t.Errorf("Reloaded ExpiringThreshold: got %d, want %d", got, config.DefaultExpiringThreshold+2)
	}

	got, err = sm2.AdjustExpiringThreshold(-100)
	if err != nil {
		t.Fatalf("AdjustExpiringThreshold(-100) error: %v", err)
	}
	if got != 0 {
		t.Errorf("AdjustExpiringThreshold(-100): got %d, want 0", got)
	}
}
