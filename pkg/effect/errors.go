package effect

import "errors"

var (
	// ErrEmptySequence 阶段列表为空
	ErrEmptySequence = errors.New("effect: phase sequence must not be empty")

	// ErrNoTracks 效果不包含任何轨道
	ErrNoTracks = errors.New("effect: effect must contain at least one track")

	// ErrNilSequence 轨道未设置阶段序列
	ErrNilSequence = errors.New("effect: track has nil sequence")

	// ErrUnknownField 未知的变换字段
	ErrUnknownField = errors.New("effect: unknown transform field")

	// ErrUnknownMode 未知的播放模式
	ErrUnknownMode = errors.New("effect: unknown mode")
)
