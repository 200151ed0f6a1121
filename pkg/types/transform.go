package types

// Transform 实体的变换记录（由宿主持有）
//
// 动画效果不拥有该记录，每帧由宿主传入引用并原地修改。
type Transform struct {
	// Translation 位移（像素）
	Translation Vec3

	// Scale 缩放因子（1.0 = 原始大小）
	Scale Vec3
}

// DefaultTransform 返回单位变换：缩放 (1,1,1)，位移 (0,0,0)
func DefaultTransform() Transform {
	return Transform{Scale: Splat(1)}
}
