package components

import "github.com/gonewx/uieffect/pkg/types"

// TransformComponent 实体的变换（位移 + 缩放）
//
// 由 UIEffectSystem 每帧原地修改，由 RenderSystem 读取绘制。
type TransformComponent struct {
	types.Transform
}

// NewTransformComponent 以给定缩放和位移创建变换组件
func NewTransformComponent(scale, translation types.Vec3) *TransformComponent {
	return &TransformComponent{Transform: types.Transform{Scale: scale, Translation: translation}}
}
