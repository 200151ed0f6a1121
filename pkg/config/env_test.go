package config

import (
	"os"
	"testing"
)

// unsetEnv 清除环境变量，测试结束后由 t.Setenv 恢复原值
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	unsetEnv(t, "UIEFFECT_CONFIG", "UIEFFECT_PRESET", "UIEFFECT_TIME_SCALE", "UIEFFECT_VERBOSE", "UIEFFECT_APP_NAME")

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}
	if cfg.ConfigPath != "data/effects.yaml" {
		t.Errorf("ConfigPath = %q, want data/effects.yaml", cfg.ConfigPath)
	}
	if cfg.TimeScale != 1 {
		t.Errorf("TimeScale = %v, want 1", cfg.TimeScale)
	}
	if cfg.AppName != "uieffect_preview" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("UIEFFECT_CONFIG", "/tmp/custom.yaml")
	t.Setenv("UIEFFECT_PRESET", "pulse")
	t.Setenv("UIEFFECT_TIME_SCALE", "0.25")
	t.Setenv("UIEFFECT_VERBOSE", "true")

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}
	if cfg.ConfigPath != "/tmp/custom.yaml" || cfg.Preset != "pulse" || cfg.TimeScale != 0.25 || !cfg.Verbose {
		t.Errorf("LoadEnv() = %+v", cfg)
	}
}

func TestLoadEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"非数字", "fast"},
		{"零", "0"},
		{"负数", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("UIEFFECT_TIME_SCALE", tt.value)
			if _, err := LoadEnv(); err == nil {
				t.Errorf("LoadEnv() with UIEFFECT_TIME_SCALE=%q should fail", tt.value)
			}
		})
	}
}
