package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig 可通过环境变量覆盖的启动配置
// 命令行参数优先级高于环境变量
type EnvConfig struct {
	// ConfigPath 效果预设文件路径
	ConfigPath string `env:"UIEFFECT_CONFIG" envDefault:"data/effects.yaml"`

	// Preset 启动时选中的预设名称（为空则使用上次保存的设置）
	Preset string `env:"UIEFFECT_PRESET"`

	// TimeScale 时间倍率（1.0 = 正常速度）
	TimeScale float64 `env:"UIEFFECT_TIME_SCALE" envDefault:"1"`

	// Verbose 启用详细日志输出
	Verbose bool `env:"UIEFFECT_VERBOSE"`

	// AppName gdata 存储使用的应用名
	AppName string `env:"UIEFFECT_APP_NAME" envDefault:"uieffect_preview"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv 读取环境变量配置
func LoadEnv() (*EnvConfig, error) {
	var cfg EnvConfig
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.TimeScale <= 0 {
		return nil, fmt.Errorf("UIEFFECT_TIME_SCALE 必须大于 0，实际为 %v", cfg.TimeScale)
	}
	return &cfg, nil
}
