// Package effect 实现 UI 变换动画效果的核心状态机
//
// 一个效果（Effect）由若干条轨道（Track）组成，每条轨道是一个阶段序列（PhaseSequence），
// 按顺序以恒定速度把变换的某个字段（缩放或位移）推向各阶段的目标值，
// 到达后停留指定时间再进入下一阶段。全部轨道结束后由播放模式（Mode）决定
// 是重新开始（Repeat）还是通知宿主移除效果（Once）。
//
// 本包不依赖任何 ECS 或渲染实现：宿主每帧调用 Effect.Tick 并传入
// 时间增量（毫秒）与可修改的变换记录即可。
package effect

import (
	"fmt"

	"github.com/gonewx/uieffect/pkg/types"
)

// PhaseTarget 阶段目标
type PhaseTarget struct {
	// Value 本阶段要到达的目标值
	Value types.Vec3

	// Speed 每毫秒每个轴的变化量（非负，方向由当前值与目标值推导）
	// Speed 为 0 且当前值已等于 Value 时，直接开始计算停留时间（用于表达"等待 N 毫秒"）
	Speed float64

	// HoldTimeMs 到达目标值后至少需要停留的时间（毫秒）
	HoldTimeMs uint64
}

// PhaseSequence 阶段序列（一条动画轨道的状态机）
//
// phase == len(targets) 为终止状态；只有 phase < len(targets) 时才能访问当前阶段。
type PhaseSequence struct {
	targets       []PhaseTarget
	phase         int
	elapsedHoldMs uint64
}

// NewPhaseSequence 创建阶段序列
//
// 参数：
//   - targets: 有序的阶段目标列表，不能为空
//
// 返回：
//   - *PhaseSequence: 游标位于第 0 阶段的新序列
//   - error: 列表为空时返回 ErrEmptySequence
func NewPhaseSequence(targets ...PhaseTarget) (*PhaseSequence, error) {
	if len(targets) == 0 {
		return nil, ErrEmptySequence
	}
	owned := make([]PhaseTarget, len(targets))
	copy(owned, targets)
	return &PhaseSequence{targets: owned}, nil
}

// Phase 返回当前阶段索引（0 起）
func (s *PhaseSequence) Phase() int {
	return s.phase
}

// ElapsedHoldMs 返回在当前阶段目标值上已累计的停留时间（毫秒）
func (s *PhaseSequence) ElapsedHoldMs() uint64 {
	return s.elapsedHoldMs
}

// Len 返回阶段数量
func (s *PhaseSequence) Len() int {
	return len(s.targets)
}

// Targets 返回阶段目标列表的副本
func (s *PhaseSequence) Targets() []PhaseTarget {
	out := make([]PhaseTarget, len(s.targets))
	copy(out, s.targets)
	return out
}

// Current 返回当前阶段目标；序列已结束时返回 false
func (s *PhaseSequence) Current() (PhaseTarget, bool) {
	if s.IsFinished() {
		return PhaseTarget{}, false
	}
	return s.targets[s.phase], true
}

// IsFinished 判断序列是否已走完所有阶段
func (s *PhaseSequence) IsFinished() bool {
	return s.phase >= len(s.targets)
}

// Reset 回到第 0 阶段并清零停留计时（Repeat 模式使用）
func (s *PhaseSequence) Reset() {
	s.phase = 0
	s.elapsedHoldMs = 0
}

// Step 将 axis 向当前阶段目标推进一帧
//
// 规则：
//   - axis 已等于目标值：累计停留时间，达到 HoldTimeMs 后进入下一阶段；本帧不移动
//   - 否则每个轴独立按 Speed*deltaMs 朝目标移动，越过目标时钳制到目标值
//
// 新进入的阶段从下一帧开始移动。序列已结束时调用属于调用方错误，会 panic。
func (s *PhaseSequence) Step(axis *types.Vec3, deltaMs uint64) {
	if s.IsFinished() {
		panic(fmt.Sprintf("effect: Step called on finished sequence (phase=%d, len=%d)", s.phase, len(s.targets)))
	}

	target := s.targets[s.phase]

	if *axis == target.Value {
		s.elapsedHoldMs += deltaMs
		if s.elapsedHoldMs >= target.HoldTimeMs {
			s.phase++
			s.elapsedHoldMs = 0
		}
		return
	}

	distance := target.Speed * float64(deltaMs)
	for i := 0; i < 3; i++ {
		stepAxis(axis.Axis(i), *target.Value.Axis(i), distance)
	}
}

// stepAxis 单轴匀速逼近 goal，越界时钳制
//
// 该轴已经等于 goal 时不移动（其他轴仍在运动的情况）。
func stepAxis(current *float64, goal, distance float64) {
	if *current == goal {
		return
	}

	sign := -1.0
	if *current < goal {
		sign = 1.0
	}

	*current += sign * distance
	if sign*(*current) > sign*goal {
		*current = goal
	}
}

// clone 深拷贝序列（包括游标状态）
func (s *PhaseSequence) clone() *PhaseSequence {
	c := *s
	c.targets = s.Targets()
	return &c
}
