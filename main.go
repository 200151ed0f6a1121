// uieffect 效果预览程序
//
// 用法：
//
//	go run . --preset=popup --verbose
//
// 所有参数都可以通过 UIEFFECT_* 环境变量提供默认值。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/uieffect/pkg/app"
	"github.com/gonewx/uieffect/pkg/config"
	"github.com/gonewx/uieffect/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	envCfg, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "环境变量错误: %v\n", err)
		os.Exit(1)
	}

	configPath := flag.String("config", envCfg.ConfigPath, "效果预设配置文件路径")
	preset := flag.String("preset", envCfg.Preset, "启动时选中的预设名称")
	timeScale := flag.Float64("time-scale", envCfg.TimeScale, "时间倍率")
	verbose := flag.Bool("verbose", envCfg.Verbose, "详细日志")
	flag.Parse()

	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Preset:     *preset,
		TimeScale:  *timeScale,
		AppName:    envCfg.AppName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	width, height := a.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("UI Effect Preview")
	ebiten.SetTPS(a.TPS())

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
	a.Shutdown()
}
