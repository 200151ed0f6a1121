package scenes

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/gonewx/uieffect/pkg/components"
	"github.com/gonewx/uieffect/pkg/config"
	"github.com/gonewx/uieffect/pkg/ecs"
	"github.com/gonewx/uieffect/pkg/effect"
	"github.com/gonewx/uieffect/pkg/game"
	"github.com/gonewx/uieffect/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 预览场景状态（同时作为 UIEffectSystem 的门控状态）
const (
	statePlaying = "playing"
	statePaused  = "paused"
)

const helpText = `[←/→] 切换预设  [Space] 重播  [P] 暂停
[R] 强制循环  [+/-] 时间倍率  [H] 帮助`

// PreviewScene 效果预览场景
//
// 场景中同一时间只有一个预览实体，切换或重播预设时销毁旧实体并按预设重新创建。
type PreviewScene struct {
	entityManager *ecs.EntityManager
	effectSystem  *systems.UIEffectSystem
	renderSystem  *systems.RenderSystem

	config     *config.EffectConfig
	settings   *game.SettingsManager
	background color.RGBA

	current  int          // 当前预设索引
	entity   ecs.EntityID // 当前预览实体，0 表示无
	finished bool         // 当前效果已结束并被移除
	paused   bool
}

// NewPreviewScene 创建预览场景
//
// 参数：
//   - cfg: 已加载的效果预设配置
//   - settings: 设置管理器（可使用降级模式）
//   - preset: 启动时选中的预设；为空时使用上次保存的预设，仍为空则选第一个
func NewPreviewScene(cfg *config.EffectConfig, settings *game.SettingsManager, preset string) (*PreviewScene, error) {
	background, err := config.ParseColor(cfg.Preview.Background)
	if err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	s := &PreviewScene{
		entityManager: em,
		effectSystem:  systems.NewUIEffectSystem(em),
		renderSystem:  systems.NewRenderSystem(em),
		config:        cfg,
		settings:      settings,
		background:    background,
	}

	s.effectSystem.SetActiveStates(statePlaying)
	s.effectSystem.SetState(statePlaying)
	s.effectSystem.SetFinishedHandler(func(id ecs.EntityID, name string) {
		if id == s.entity {
			s.finished = true
			log.Printf("[PreviewScene] Preset %q finished", name)
		}
	})

	if preset == "" {
		preset = settings.GetSettings().LastPreset
	}
	if preset != "" {
		if err := s.SelectPresetByName(preset); err == nil {
			return s, nil
		}
		log.Printf("[PreviewScene] Warning: preset %q not found, using first preset", preset)
	}

	if err := s.SelectPreset(0); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectPreset 按索引切换预设（越界时回绕）
func (s *PreviewScene) SelectPreset(index int) error {
	n := len(s.config.Effects)
	index = ((index % n) + n) % n
	def := &s.config.Effects[index]

	e, err := def.Build()
	if err != nil {
		return fmt.Errorf("无法创建预设 %s: %w", def.Name, err)
	}
	if s.settings.GetSettings().ForceRepeat {
		e.Mode = effect.ModeRepeat
	}

	if s.entity != 0 {
		s.entityManager.DestroyEntity(s.entity)
		s.entityManager.RemoveMarkedEntities()
	}

	start := def.StartTransform()
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TransformComponent{Transform: start})
	ecs.AddComponent(s.entityManager, id, &components.RectComponent{
		Width:  def.Size.Width,
		Height: def.Size.Height,
		Color:  def.RectColor(),
	})
	s.effectSystem.Attach(id, def.Name, e)

	s.current = index
	s.entity = id
	s.finished = false

	s.settings.SetLastPreset(def.Name)
	s.saveSettings()
	return nil
}

// SelectPresetByName 按名称切换预设
func (s *PreviewScene) SelectPresetByName(name string) error {
	for i, def := range s.config.Effects {
		if def.Name == name {
			return s.SelectPreset(i)
		}
	}
	return fmt.Errorf("预设 '%s' 不存在", name)
}

// Replay 重新播放当前预设
func (s *PreviewScene) Replay() error {
	return s.SelectPreset(s.current)
}

// ToggleForceRepeat 切换强制循环并重播当前预设
func (s *PreviewScene) ToggleForceRepeat() error {
	s.settings.SetForceRepeat(!s.settings.GetSettings().ForceRepeat)
	return s.Replay()
}

// AdjustTimeScale 按倍数调整时间倍率
func (s *PreviewScene) AdjustTimeScale(factor float64) {
	s.settings.SetTimeScale(s.settings.GetSettings().TimeScale * factor)
	s.saveSettings()
}

// SetPaused 暂停或继续
func (s *PreviewScene) SetPaused(paused bool) {
	s.paused = paused
	if paused {
		s.effectSystem.SetState(statePaused)
	} else {
		s.effectSystem.SetState(statePlaying)
	}
}

// Current 返回当前预设
func (s *PreviewScene) Current() *config.EffectDef {
	return &s.config.Effects[s.current]
}

// Entity 返回当前预览实体
func (s *PreviewScene) Entity() ecs.EntityID {
	return s.entity
}

// IsFinished 当前效果是否已结束（Once 模式）
func (s *PreviewScene) IsFinished() bool {
	return s.finished
}

// Update 处理输入并推进动画
// 参数：
//   - deltaTime: 时间增量（秒）
func (s *PreviewScene) Update(deltaTime float64) {
	s.handleInput()
	s.Step(deltaTime)
}

// Step 按时间倍率推进动画（不处理输入）
func (s *PreviewScene) Step(deltaTime float64) {
	s.effectSystem.Update(deltaTime * s.settings.GetSettings().TimeScale)
}

func (s *PreviewScene) handleInput() {
	var err error
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		err = s.SelectPreset(s.current + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		err = s.SelectPreset(s.current - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		err = s.Replay()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		err = s.ToggleForceRepeat()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		s.SetPaused(!s.paused)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		s.AdjustTimeScale(2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		s.AdjustTimeScale(0.5)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.settings.SetShowHelp(!s.settings.GetSettings().ShowHelp)
		s.saveSettings()
	}
	if err != nil {
		log.Printf("[PreviewScene] Warning: %v", err)
	}
}

// Draw 绘制背景、预览实体和状态文字
func (s *PreviewScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	s.renderSystem.Draw(screen)
	ebitenutil.DebugPrint(screen, s.statusText())
}

// statusText 生成左上角的状态文字
func (s *PreviewScene) statusText() string {
	def := s.Current()
	settings := s.settings.GetSettings()

	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d %s (%s)  x%.2f", s.current+1, len(s.config.Effects), def.DisplayName, def.Name, settings.TimeScale)
	if settings.ForceRepeat {
		b.WriteString("  [repeat]")
	}
	if s.paused {
		b.WriteString("  [paused]")
	}
	b.WriteString("\n")

	if comp, ok := ecs.GetComponent[*components.UIEffectComponent](s.entityManager, s.entity); ok && comp.Effect != nil {
		fmt.Fprintf(&b, "mode=%s\n", comp.Effect.Mode)
		for _, track := range comp.Effect.Tracks {
			fmt.Fprintf(&b, "%-11s phase %d/%d hold %dms\n",
				track.Field, track.Sequence.Phase(), track.Sequence.Len(), track.Sequence.ElapsedHoldMs())
		}
	} else if s.finished {
		b.WriteString("finished, press Space to replay\n")
	}

	if settings.ShowHelp {
		b.WriteString("\n")
		b.WriteString(helpText)
	}
	return b.String()
}

// SaveOnExit 退出时保存设置
func (s *PreviewScene) SaveOnExit() bool {
	return s.saveSettings()
}

func (s *PreviewScene) saveSettings() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[PreviewScene] Warning: failed to save settings: %v", err)
		return false
	}
	return true
}
