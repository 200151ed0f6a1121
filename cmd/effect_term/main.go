// cmd/effect_term/main.go
// 终端效果预览工具
//
// 用法：
//   go run ./cmd/effect_term --config=data/effects.yaml --preset=popup --sound

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/uieffect/pkg/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const tickInterval = 16 * time.Millisecond // ~60 FPS

var sampleRate = beep.SampleRate(44100)

func main() {
	envCfg, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "环境变量错误: %v\n", err)
		os.Exit(1)
	}

	configPath := flag.String("config", envCfg.ConfigPath, "效果预设配置文件路径")
	preset := flag.String("preset", envCfg.Preset, "启动时选中的预设名称")
	sound := flag.Bool("sound", false, "效果结束时播放提示音")
	logPath := flag.String("log", "", "日志文件路径（终端被占用，日志只能写文件）")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.LoadEffectConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	p := newTermPreview(cfg)
	if *sound {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			log.Printf("[EffectTerm] Audio initialization failed: %v", err)
		} else {
			defer speaker.Close()
			p.onFinish = func(string) { playChime() }
		}
	}

	start := 0
	if *preset != "" {
		if i, ok := presetIndex(cfg, *preset); ok {
			start = i
		} else {
			log.Printf("[EffectTerm] Warning: preset %q not found, using first preset", *preset)
		}
	}
	if err := p.selectPreset(start); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(screen, p)
}

func run(screen tcell.Screen, p *termPreview) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, eventChan, done)

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !handleEvent(screen, p, ev) {
				return
			}

		case now := <-ticker.C:
			p.effectSystem.Update(now.Sub(last).Seconds())
			last = now
			p.draw(screen)
		}
	}
}

// pollEvents 把终端事件转发到 eventChan，done 关闭或屏幕结束后退出
func pollEvents(screen tcell.Screen, eventChan chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case eventChan <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent 处理按键，返回 false 表示退出
func handleEvent(screen tcell.Screen, p *termPreview, ev tcell.Event) bool {
	var err error
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRight:
			err = p.selectPreset(p.current + 1)
		case ev.Key() == tcell.KeyLeft:
			err = p.selectPreset(p.current - 1)
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			err = p.selectPreset(p.current)
		}
	case *tcell.EventResize:
		screen.Sync()
	}
	if err != nil {
		log.Printf("[EffectTerm] Warning: %v", err)
	}
	return true
}

// playChime 播放一声短促的提示音
func playChime() {
	sine, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(60*time.Millisecond), sine))
}
