package effect

import (
	"fmt"

	"github.com/gonewx/uieffect/pkg/types"
)

// Track 轨道：一个阶段序列及其作用的变换字段
type Track struct {
	Field    Field
	Sequence *PhaseSequence
}

// Effect 动画效果：若干独立轨道 + 播放模式
//
// 效果不持有变换记录，Tick 时由宿主传入。
// 不同长度的轨道可以并存，整体结束以最慢的轨道为准。
type Effect struct {
	Mode   Mode
	Tracks []Track
}

// NewEffect 创建动画效果
//
// 参数：
//   - mode: 播放模式
//   - tracks: 至少一条轨道，每条轨道必须有非空序列和已知字段
//
// 返回：
//   - *Effect: 新效果
//   - error: 轨道为空、序列为 nil 或字段未知时返回错误
func NewEffect(mode Mode, tracks ...Track) (*Effect, error) {
	if mode != ModeOnce && mode != ModeRepeat {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}
	for i, track := range tracks {
		if track.Sequence == nil {
			return nil, fmt.Errorf("track #%d: %w", i, ErrNilSequence)
		}
		if track.Field.Select(&types.Transform{}) == nil {
			return nil, fmt.Errorf("track #%d: %w: %d", i, ErrUnknownField, int(track.Field))
		}
	}

	owned := make([]Track, len(tracks))
	copy(owned, tracks)
	return &Effect{Mode: mode, Tracks: owned}, nil
}

// IsFinished 所有轨道都结束时返回 true
func (e *Effect) IsFinished() bool {
	for _, track := range e.Tracks {
		if !track.Sequence.IsFinished() {
			return false
		}
	}
	return true
}

// ApplyModeTransition 效果结束后按模式处理
//
// Repeat 模式下所有轨道一起回到第 0 阶段并返回 TickContinue；
// Once 模式返回 TickDetach，效果保持结束状态。
// 效果尚未结束时不做任何修改，返回 TickContinue。
func (e *Effect) ApplyModeTransition() TickOutcome {
	if !e.IsFinished() {
		return TickContinue
	}

	switch e.Mode {
	case ModeRepeat:
		e.Reset()
		return TickContinue
	default:
		return TickDetach
	}
}

// Reset 所有轨道回到第 0 阶段
func (e *Effect) Reset() {
	for _, track := range e.Tracks {
		track.Sequence.Reset()
	}
}

// Tick 以 deltaMs 推进所有轨道一帧
//
// 效果已结束时先执行模式处理：Once 直接返回 TickDetach 且不修改 transform；
// Repeat 重置后本帧继续推进。所有未结束的轨道使用同一个 deltaMs，保持时间同步；
// 已结束的轨道跳过，等待较慢的轨道。
func (e *Effect) Tick(t *types.Transform, deltaMs uint64) TickOutcome {
	if e.IsFinished() {
		if e.ApplyModeTransition() == TickDetach {
			return TickDetach
		}
	}

	for _, track := range e.Tracks {
		if track.Sequence.IsFinished() {
			continue
		}
		track.Sequence.Step(track.Field.Select(t), deltaMs)
	}
	return TickContinue
}

// Clone 深拷贝效果，用于从同一个预设为多个实体创建独立实例
func (e *Effect) Clone() *Effect {
	tracks := make([]Track, len(e.Tracks))
	for i, track := range e.Tracks {
		tracks[i] = Track{Field: track.Field, Sequence: track.Sequence.clone()}
	}
	return &Effect{Mode: e.Mode, Tracks: tracks}
}
