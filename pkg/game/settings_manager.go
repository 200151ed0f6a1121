package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 时间倍率范围
const (
	MinTimeScale = 0.1
	MaxTimeScale = 4.0
)

// PreviewSettings 预览工具的持久化设置
type PreviewSettings struct {
	LastPreset  string  `yaml:"lastPreset"`  // 上次选中的预设名称
	TimeScale   float64 `yaml:"timeScale"`   // 时间倍率 0.1 ~ 4.0
	ForceRepeat bool    `yaml:"forceRepeat"` // 强制以 Repeat 模式播放所有预设
	ShowHelp    bool    `yaml:"showHelp"`    // 是否显示按键帮助
}

// DefaultSettings 返回默认设置
func DefaultSettings() *PreviewSettings {
	return &PreviewSettings{
		TimeScale: 1.0,
		ShowHelp:  true,
	}
}

// SettingsManager 设置管理器
// 负责预览设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager   // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *PreviewSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "preview"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方；加载失败不视为错误，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.TimeScale = clampTimeScale(loaded.TimeScale)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (preset=%q, timeScale=%.2f)", loaded.LastPreset, loaded.TimeScale)
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

	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *PreviewSettings {
	return sm.settings
}

// SetLastPreset 记录当前选中的预设
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLastPreset(name string) {
	sm.settings.LastPreset = name
}

// SetTimeScale 设置时间倍率，限制在 MinTimeScale ~ MaxTimeScale
func (sm *SettingsManager) SetTimeScale(scale float64) {
	sm.settings.TimeScale = clampTimeScale(scale)
}

// SetForceRepeat 设置是否强制循环播放
func (sm *SettingsManager) SetForceRepeat(enabled bool) {
	sm.settings.ForceRepeat = enabled
}

// SetShowHelp 设置是否显示帮助
func (sm *SettingsManager) SetShowHelp(show bool) {
	sm.settings.ShowHelp = show
}

func clampTimeScale(scale float64) float64 {
	if !(scale >= MinTimeScale) { // NaN 也会落到下限
		return MinTimeScale
	}
	if scale > MaxTimeScale {
		return MaxTimeScale
	}
	return scale
}
