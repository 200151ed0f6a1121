package systems

import (
	"image/color"
	"sort"

	"github.com/gonewx/uieffect/pkg/components"
	"github.com/gonewx/uieffect/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderSystem 绘制所有拥有 TransformComponent 和 RectComponent 的实体
//
// 矩形以 Translation 为中心，按 Scale 缩放；Translation.Z 决定绘制顺序（小的先画）。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	pixel         *ebiten.Image // 1x1 白色像素，按颜色和尺寸缩放绘制（复用，避免每帧分配）
	drawOpts      ebiten.DrawImageOptions
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
	}
}

// Draw 绘制所有矩形实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}

	for _, id := range s.drawOrder() {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		rect, _ := ecs.GetComponent[*components.RectComponent](s.entityManager, id)

		s.drawOpts.GeoM = rectGeoM(transform, rect)
		s.drawOpts.ColorScale.Reset()
		s.drawOpts.ColorScale.ScaleWithColor(rect.Color)
		screen.DrawImage(s.pixel, &s.drawOpts)
	}
}

// drawOrder 返回需要绘制的实体，按 Translation.Z 升序，Z 相同时按实体 ID
func (s *RenderSystem) drawOrder() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.RectComponent](s.entityManager)

	z := make(map[ecs.EntityID]float64, len(ids))
	for _, id := range ids {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		z[id] = transform.Translation.Z
	}

	sort.SliceStable(ids, func(i, j int) bool {
		return z[ids[i]] < z[ids[j]]
	})
	return ids
}

// rectGeoM 计算把 1x1 像素变换为屏幕上矩形的矩阵
// 以 (Translation.X, Translation.Y) 为中心缩放
func rectGeoM(transform *components.TransformComponent, rect *components.RectComponent) ebiten.GeoM {
	w := rect.Width * transform.Scale.X
	h := rect.Height * transform.Scale.Y

	var geoM ebiten.GeoM
	geoM.Scale(w, h)
	geoM.Translate(transform.Translation.X-w/2, transform.Translation.Y-h/2)
	return geoM
}
