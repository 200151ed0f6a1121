package components

import "github.com/gonewx/uieffect/pkg/effect"

// UIEffectComponent UI 变换动画效果组件
//
// 挂载到带有 TransformComponent 的实体上后，由 UIEffectSystem 每帧推进。
// Once 模式的效果结束后组件会被移除；Repeat 模式的效果永远不会被系统移除。
type UIEffectComponent struct {
	// Name 效果名称（预设名，用于日志和回调）
	Name string

	// Effect 效果状态机（每个实体独立一份，不能在实体之间共享）
	Effect *effect.Effect
}
