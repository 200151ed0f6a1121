// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// Vec3 三维向量（缩放因子或位移）
// 相等性为逐分量精确比较，可直接使用 == 运算符
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// NewVec3 创建三维向量
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Splat 创建三个分量相同的向量，如 Splat(1) = (1, 1, 1)
func Splat(v float64) Vec3 {
	return Vec3{X: v, Y: v, Z: v}
}

// Add 逐分量相加
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Mul 乘以标量
func (v Vec3) Mul(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Equal 逐分量精确比较
func (v Vec3) Equal(o Vec3) bool {
	return v == o
}

// Axis 返回指定轴（0=X, 1=Y, 2=Z）分量的指针
// 用于对三个轴执行相同的逐轴计算
func (v *Vec3) Axis(i int) *float64 {
	switch i {
	case 0:
		return &v.X
	case 1:
		return &v.Y
	case 2:
		return &v.Z
	}
	panic(fmt.Sprintf("types: axis index %d out of range", i))
}

// String 返回向量的可读表示
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
