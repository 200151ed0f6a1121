// Package app 提供效果预览应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，main.go 只负责解析参数和启动窗口。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/gonewx/uieffect/pkg/config"
	"github.com/gonewx/uieffect/pkg/game"
	"github.com/gonewx/uieffect/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 效果预设配置文件路径（磁盘不存在时从嵌入资源读取）
	ConfigPath string
	// Preset 启动时选中的预设，为空则使用上次保存的预设
	Preset string
	// TimeScale 启动时间倍率，<= 0 表示沿用保存的设置
	TimeScale float64
	// AppName gdata 存储使用的应用名
	AppName string
}

// App 是预览应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	preview      config.PreviewConfig
	verbose      bool
}

// NewApp 创建并初始化预览应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	effectConfig, err := config.LoadEffectConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("效果配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d effect presets from %s", len(effectConfig.Effects), cfg.ConfigPath)

	// gdata 不可用时降级为仅内存设置
	var gdataManager *gdata.Manager
	if cfg.AppName != "" {
		gdataManager, err = gdata.Open(gdata.Config{AppName: cfg.AppName})
		if err != nil {
			log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
			gdataManager = nil
		}
	}

	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置管理器初始化失败: %w", err)
	}
	if cfg.TimeScale > 0 {
		settings.SetTimeScale(cfg.TimeScale)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(preset string) (game.Scene, error) {
		scene, err := scenes.NewPreviewScene(effectConfig, settings, preset)
		if err != nil {
			return nil, err
		}
		return scene, nil
	})
	if err := sceneManager.LoadPreset(cfg.Preset); err != nil {
		return nil, fmt.Errorf("预览场景创建失败: %w", err)
	}

	log.Printf("[App] Preview ready (%dx%d, tps=%d)", effectConfig.Preview.Width, effectConfig.Preview.Height, effectConfig.Preview.TPS)

	return &App{
		sceneManager: sceneManager,
		preview:      effectConfig.Preview,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑（ebiten.Game 接口）
func (a *App) Update() error {
	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Draw 渲染画面（ebiten.Game 接口）
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸（ebiten.Game 接口）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.preview.Width, a.preview.Height
}

// WindowSize 返回配置的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.preview.Width, a.preview.Height
}

// TPS 返回配置的逻辑帧率
func (a *App) TPS() int {
	return a.preview.TPS
}

// IsVerbose 返回是否启用详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Shutdown 退出前保存设置
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: settings were not saved on exit")
		return
	}
	log.Printf("[App] Settings saved on exit")
}
