package effect

import "github.com/gonewx/uieffect/pkg/types"

const (
	// popupGapMs 弹出前的等待时间
	popupGapMs = 300
	// popupSettleRatio 弹出后回落到的比例
	popupSettleRatio = 0.6

	// snapSpeed 足够大的速度，使第一帧即被钳制到目标值
	snapSpeed = 1e9
)

// Popup 弹出效果：等待 300ms，放大到 scale 停留 200ms，再回落到 scale*0.6
//
// 实体初始缩放应为 (1, 1, 1)。
func Popup(scale types.Vec3) *Effect {
	return mustEffect(ModeOnce, Track{
		Field: FieldScale,
		Sequence: mustSequence(
			PhaseTarget{Value: types.Splat(1), Speed: 0, HoldTimeMs: popupGapMs},
			PhaseTarget{Value: scale, Speed: 0.09, HoldTimeMs: 200},
			PhaseTarget{Value: scale.Mul(popupSettleRatio), Speed: 0.06, HoldTimeMs: 0},
		),
	})
}

// Pulse 呼吸效果：在 (1,1,1) 与 scale 之间无限往复
func Pulse(scale types.Vec3) *Effect {
	return mustEffect(ModeRepeat, Track{
		Field: FieldScale,
		Sequence: mustSequence(
			PhaseTarget{Value: scale, Speed: 0.002, HoldTimeMs: 100},
			PhaseTarget{Value: types.Splat(1), Speed: 0.002, HoldTimeMs: 100},
		),
	})
}

// SlideIn 滑入效果：第一帧跳到 from，然后以 0.5 像素/毫秒移动到 to
func SlideIn(from, to types.Vec3) *Effect {
	return mustEffect(ModeOnce, Track{
		Field: FieldTranslation,
		Sequence: mustSequence(
			PhaseTarget{Value: from, Speed: snapSpeed},
			PhaseTarget{Value: to, Speed: 0.5},
		),
	})
}

func mustSequence(targets ...PhaseTarget) *PhaseSequence {
	seq, err := NewPhaseSequence(targets...)
	if err != nil {
		panic(err)
	}
	return seq
}

func mustEffect(mode Mode, tracks ...Track) *Effect {
	e, err := NewEffect(mode, tracks...)
	if err != nil {
		panic(err)
	}
	return e
}
