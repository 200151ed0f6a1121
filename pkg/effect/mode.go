package effect

import (
	"fmt"
	"strings"
)

// Mode 播放模式：所有轨道结束后如何处理效果
type Mode int

const (
	// ModeOnce 播放一次，结束后通知宿主移除效果
	ModeOnce Mode = iota
	// ModeRepeat 所有轨道同时回到第 0 阶段，无限循环
	ModeRepeat
)

// String 返回模式名称
func (m Mode) String() string {
	switch m {
	case ModeOnce:
		return "once"
	case ModeRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode 解析模式名称（不区分大小写），空字符串视为 ModeOnce
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "once":
		return ModeOnce, nil
	case "repeat":
		return ModeRepeat, nil
	}
	return ModeOnce, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// TickOutcome 单帧推进的结果
type TickOutcome int

const (
	// TickContinue 效果继续挂在实体上
	TickContinue TickOutcome = iota
	// TickDetach 效果已结束（Once 模式），宿主应将其从实体移除
	TickDetach
)

// String 返回结果名称
func (o TickOutcome) String() string {
	switch o {
	case TickContinue:
		return "continue"
	case TickDetach:
		return "detach"
	default:
		return fmt.Sprintf("TickOutcome(%d)", int(o))
	}
}
