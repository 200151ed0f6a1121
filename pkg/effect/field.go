package effect

import (
	"fmt"
	"strings"

	"github.com/gonewx/uieffect/pkg/types"
)

// Field 轨道作用的变换字段
type Field int

const (
	// FieldScale 缩放
	FieldScale Field = iota
	// FieldTranslation 位移
	FieldTranslation
)

// String 返回字段名称
func (f Field) String() string {
	switch f {
	case FieldScale:
		return "scale"
	case FieldTranslation:
		return "translation"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Select 返回变换记录中该字段的指针；未知字段返回 nil
func (f Field) Select(t *types.Transform) *types.Vec3 {
	switch f {
	case FieldScale:
		return &t.Scale
	case FieldTranslation:
		return &t.Translation
	}
	return nil
}

// ParseField 解析字段名称（不区分大小写）
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scale":
		return FieldScale, nil
	case "translation", "position":
		return FieldTranslation, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}
