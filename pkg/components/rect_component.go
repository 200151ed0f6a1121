package components

import "image/color"

// RectComponent 预览用的纯色矩形
// 尺寸为缩放前的基准尺寸，实际绘制尺寸 = Width × Transform.Scale.X
type RectComponent struct {
	// Width 基准宽度（像素）
	Width float64

	// Height 基准高度（像素）
	Height float64

	// Color 填充颜色
	Color color.RGBA
}
