package systems

import (
	"log"
	"math"

	"github.com/gonewx/uieffect/pkg/components"
	"github.com/gonewx/uieffect/pkg/ecs"
	"github.com/gonewx/uieffect/pkg/effect"
)

// EffectFinishedHandler Once 模式效果结束并被移除后的回调
type EffectFinishedHandler func(id ecs.EntityID, name string)

// UIEffectSystem 驱动所有 UIEffectComponent
//
// 每帧把时间增量换算为整毫秒（小数部分累积到下一帧，不丢失时间），
// 对每个同时拥有 UIEffectComponent 和 TransformComponent 的实体调用 Effect.Tick。
// Tick 返回 TickDetach 时移除效果组件并触发结束回调。
//
// 状态门控：设置了 activeStates 时，只有当前状态在列表中才推进动画；
// 未设置时始终运行。
type UIEffectSystem struct {
	entityManager *ecs.EntityManager
	activeStates  map[string]bool
	state         string
	remainderMs   float64
	onFinished    EffectFinishedHandler
}

// NewUIEffectSystem 创建效果驱动系统
func NewUIEffectSystem(em *ecs.EntityManager) *UIEffectSystem {
	return &UIEffectSystem{
		entityManager: em,
	}
}

// SetActiveStates 设置允许运行的状态列表；不传参数表示始终运行
func (s *UIEffectSystem) SetActiveStates(states ...string) {
	if len(states) == 0 {
		s.activeStates = nil
		return
	}
	s.activeStates = make(map[string]bool, len(states))
	for _, st := range states {
		s.activeStates[st] = true
	}
}

// SetState 设置宿主当前状态
func (s *UIEffectSystem) SetState(state string) {
	if s.state != state {
		log.Printf("[UIEffectSystem] State changed: %q -> %q", s.state, state)
	}
	s.state = state
}

// IsActive 当前状态下系统是否运行
func (s *UIEffectSystem) IsActive() bool {
	return s.activeStates == nil || s.activeStates[s.state]
}

// SetFinishedHandler 设置效果结束回调
func (s *UIEffectSystem) SetFinishedHandler(handler EffectFinishedHandler) {
	s.onFinished = handler
}

// Attach 为实体挂载效果，已有的效果会被替换
//
// 实体需要同时拥有 TransformComponent 才会被推进。
func (s *UIEffectSystem) Attach(id ecs.EntityID, name string, e *effect.Effect) {
	ecs.AddComponent(s.entityManager, id, &components.UIEffectComponent{Name: name, Effect: e})
	log.Printf("[UIEffectSystem] Attached effect %q to entity %d (mode=%s, tracks=%d)",
		name, id, e.Mode, len(e.Tracks))
}

// Update 推进所有效果
// 参数：
//   - deltaTime: 时间增量（秒）
func (s *UIEffectSystem) Update(deltaTime float64) {
	if !s.IsActive() {
		return
	}

	ms := deltaTime*1000 + s.remainderMs
	if ms < 0 || math.IsNaN(ms) {
		ms = 0
	}
	whole := math.Floor(ms)
	s.remainderMs = ms - whole

	s.Tick(uint64(whole))
}

// Tick 以整毫秒增量推进所有效果一帧（不经过状态门控与小数累积）
func (s *UIEffectSystem) Tick(deltaMs uint64) {
	entities := ecs.GetEntitiesWith2[*components.UIEffectComponent, *components.TransformComponent](s.entityManager)

	for _, id := range entities {
		effectComp, ok := ecs.GetComponent[*components.UIEffectComponent](s.entityManager, id)
		if !ok {
			continue
		}
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if effectComp.Effect == nil {
			log.Printf("[UIEffectSystem] Warning: entity %d has effect %q without state, removing", id, effectComp.Name)
			ecs.RemoveComponent[*components.UIEffectComponent](s.entityManager, id)
			continue
		}

		if effectComp.Effect.Tick(&transform.Transform, deltaMs) == effect.TickDetach {
			ecs.RemoveComponent[*components.UIEffectComponent](s.entityManager, id)
			log.Printf("[UIEffectSystem] Effect %q finished on entity %d, detached", effectComp.Name, id)
			if s.onFinished != nil {
				s.onFinished(id, effectComp.Name)
			}
		}
	}
}
