package main

import (
	"fmt"
	"log"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/uieffect/pkg/components"
	"github.com/gonewx/uieffect/pkg/config"
	"github.com/gonewx/uieffect/pkg/ecs"
	"github.com/gonewx/uieffect/pkg/systems"
)

// cellRect 终端中的矩形区域（单位：字符格）
type cellRect struct {
	X, Y, W, H int
}

// termPreview 终端预览状态
//
// 与桌面预览共用 ECS 和 UIEffectSystem，只把绘制换成字符格。
type termPreview struct {
	entityManager *ecs.EntityManager
	effectSystem  *systems.UIEffectSystem
	config        *config.EffectConfig

	current  int
	entity   ecs.EntityID
	finished bool
	onFinish func(name string)
}

func newTermPreview(cfg *config.EffectConfig) *termPreview {
	em := ecs.NewEntityManager()
	p := &termPreview{
		entityManager: em,
		effectSystem:  systems.NewUIEffectSystem(em),
		config:        cfg,
	}
	p.effectSystem.SetFinishedHandler(func(id ecs.EntityID, name string) {
		if id != p.entity {
			return
		}
		p.finished = true
		if p.onFinish != nil {
			p.onFinish(name)
		}
	})
	return p
}

// presetIndex 按名称查找预设索引
func presetIndex(cfg *config.EffectConfig, name string) (int, bool) {
	for i, def := range cfg.Effects {
		if def.Name == name {
			return i, true
		}
	}
	return 0, false
}

// selectPreset 切换到指定预设（越界时回绕）并重新创建实体
func (p *termPreview) selectPreset(index int) error {
	n := len(p.config.Effects)
	index = ((index % n) + n) % n
	def := &p.config.Effects[index]

	e, err := def.Build()
	if err != nil {
		return fmt.Errorf("build %s: %w", def.Name, err)
	}

	if p.entity != 0 {
		p.entityManager.DestroyEntity(p.entity)
		p.entityManager.RemoveMarkedEntities()
	}

	start := def.StartTransform()
	id := p.entityManager.CreateEntity()
	ecs.AddComponent(p.entityManager, id, &components.TransformComponent{Transform: start})
	ecs.AddComponent(p.entityManager, id, &components.RectComponent{
		Width:  def.Size.Width,
		Height: def.Size.Height,
		Color:  def.RectColor(),
	})
	p.effectSystem.Attach(id, def.Name, e)

	p.current = index
	p.entity = id
	p.finished = false
	log.Printf("[EffectTerm] Selected preset %q", def.Name)
	return nil
}

// cellRectFor 把预览坐标系中的矩形映射到 cols × rows 的终端
//
// 终端字符格约为 1:2，纵向按行数单独换算；缩放后不足一格时至少保留一格。
func cellRectFor(preview config.PreviewConfig, t *components.TransformComponent, r *components.RectComponent, cols, rows int) cellRect {
	sx := float64(cols) / float64(preview.Width)
	sy := float64(rows) / float64(preview.Height)

	w := math.Max(1, math.Round(r.Width*t.Scale.X*sx))
	h := math.Max(1, math.Round(r.Height*t.Scale.Y*sy))
	cx := t.Translation.X * sx
	cy := t.Translation.Y * sy

	return cellRect{
		X: int(math.Round(cx - w/2)),
		Y: int(math.Round(cy - h/2)),
		W: int(w),
		H: int(h),
	}
}

// draw 绘制当前实体和状态行
func (p *termPreview) draw(screen tcell.Screen) {
	screen.Clear()
	cols, rows := screen.Size()

	tc, okT := ecs.GetComponent[*components.TransformComponent](p.entityManager, p.entity)
	rc, okR := ecs.GetComponent[*components.RectComponent](p.entityManager, p.entity)
	if okT && okR {
		rect := cellRectFor(p.config.Preview, tc, rc, cols, rows-1)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(rc.Color.R), int32(rc.Color.G), int32(rc.Color.B)))
		for y := rect.Y; y < rect.Y+rect.H; y++ {
			for x := rect.X; x < rect.X+rect.W; x++ {
				if x >= 0 && x < cols && y >= 0 && y < rows-1 {
					screen.SetContent(x, y, '█', nil, style)
				}
			}
		}
	}

	drawText(screen, 0, rows-1, tcell.StyleDefault.Reverse(true), p.statusLine())
	screen.Show()
}

func (p *termPreview) statusLine() string {
	def := &p.config.Effects[p.current]
	state := "playing"
	if p.finished {
		state = "finished"
	}
	return fmt.Sprintf(" %d/%d %s [%s]  ←/→ switch  space replay  q quit ",
		p.current+1, len(p.config.Effects), def.DisplayName, state)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
