package config

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/gonewx/uieffect/pkg/effect"
	"github.com/gonewx/uieffect/pkg/embedded"
	"github.com/gonewx/uieffect/pkg/types"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// 预览窗口默认值
const (
	DefaultPreviewWidth  = 800
	DefaultPreviewHeight = 600
	DefaultPreviewTPS    = 60
	DefaultBackground    = "black"
	DefaultEffectColor   = "white"
	DefaultEffectSize    = 120.0
)

// EffectConfig 效果预设配置文件的顶层结构
type EffectConfig struct {
	// Preview 预览窗口配置
	Preview PreviewConfig `yaml:"preview"`

	// Effects 效果预设列表（按文件中的顺序）
	Effects []EffectDef `yaml:"effects"`
}

// PreviewConfig 预览窗口配置
type PreviewConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"` // 颜色名（如 "darkslategray"）或 "#rrggbb"
	TPS        int    `yaml:"tps"`        // 每秒逻辑帧数
}

// EffectDef 单个效果预设
type EffectDef struct {
	// Name 预设名称（代码中引用，唯一）
	Name string `yaml:"name"`

	// DisplayName 显示名称（用于预览界面）
	DisplayName string `yaml:"display_name,omitempty"`

	// Mode 播放模式："once"（默认）或 "repeat"
	Mode string `yaml:"mode,omitempty"`

	// Color 预览矩形颜色
	Color string `yaml:"color,omitempty"`

	// Size 预览矩形基准尺寸
	Size SizeDef `yaml:"size,omitempty"`

	// Start 实体初始变换
	Start StartDef `yaml:"start,omitempty"`

	// Tracks 轨道列表，同一字段最多一条
	Tracks []TrackDef `yaml:"tracks"`
}

// SizeDef 矩形尺寸
type SizeDef struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// StartDef 初始变换（未设置的字段使用默认值：缩放 1，位移为窗口中心）
type StartDef struct {
	Scale       *Vec3Value `yaml:"scale,omitempty"`
	Translation *Vec3Value `yaml:"translation,omitempty"`
}

// TrackDef 轨道配置
type TrackDef struct {
	// Field 作用字段："scale" 或 "translation"
	Field string `yaml:"field"`

	// Phases 阶段列表，不能为空
	Phases []PhaseDef `yaml:"phases"`
}

// PhaseDef 阶段配置
type PhaseDef struct {
	Value  Vec3Value `yaml:"value"`
	Speed  float64   `yaml:"speed"`
	HoldMs uint64    `yaml:"hold_ms"`
}

// Vec3Value YAML 中的三维向量
// 支持三种写法：标量 1.5、序列 [x, y, z]、映射 {x: .., y: .., z: ..}
type Vec3Value struct {
	types.Vec3
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (v *Vec3Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("第 %d 行: 无效的数值: %w", node.Line, err)
		}
		v.Vec3 = types.Splat(f)
	case yaml.SequenceNode:
		var fs []float64
		if err := node.Decode(&fs); err != nil {
			return fmt.Errorf("第 %d 行: 无效的向量: %w", node.Line, err)
		}
		if len(fs) != 3 {
			return fmt.Errorf("第 %d 行: 向量需要 3 个分量，实际 %d 个", node.Line, len(fs))
		}
		v.Vec3 = types.NewVec3(fs[0], fs[1], fs[2])
	case yaml.MappingNode:
		if err := node.Decode(&v.Vec3); err != nil {
			return fmt.Errorf("第 %d 行: 无效的向量: %w", node.Line, err)
		}
	default:
		return fmt.Errorf("第 %d 行: 不支持的向量写法", node.Line)
	}
	return nil
}

// LoadEffectConfig 加载效果预设配置
//
// 优先读取磁盘上的文件（便于调试时覆盖），不存在时读取嵌入资源。
//
// 参数：
//   - path: 配置文件路径（如 "data/effects.yaml"）
//
// 返回：
//   - *EffectConfig: 解析、校验并填充默认值后的配置
//   - error: 读取、解析或校验错误
func LoadEffectConfig(path string) (*EffectConfig, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		log.Printf("[EffectConfig] Loading %s from disk", path)
	case os.IsNotExist(err) && embedded.Exists(path):
		log.Printf("[EffectConfig] Loading %s from embedded data", path)
		data, err = embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("无法读取嵌入配置 %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}

	return ParseEffectConfig(data, path)
}

// ParseEffectConfig 解析效果预设配置
//
// 参数：
//   - data: YAML 内容
//   - source: 来源描述（用于错误信息）
func ParseEffectConfig(data []byte, source string) (*EffectConfig, error) {
	var config EffectConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("无法解析配置文件 %s: %w", source, err)
	}

	applyDefaults(&config)

	if err := validateEffectConfig(&config); err != nil {
		return nil, fmt.Errorf("配置文件 %s 验证失败: %w", source, err)
	}

	log.Printf("[EffectConfig] Loaded %d effect presets from %s", len(config.Effects), source)
	return &config, nil
}

// applyDefaults 填充未设置的字段
func applyDefaults(config *EffectConfig) {
	p := &config.Preview
	if p.Width == 0 {
		p.Width = DefaultPreviewWidth
	}
	if p.Height == 0 {
		p.Height = DefaultPreviewHeight
	}
	if p.TPS == 0 {
		p.TPS = DefaultPreviewTPS
	}
	if p.Background == "" {
		p.Background = DefaultBackground
	}

	centre := types.NewVec3(float64(p.Width)/2, float64(p.Height)/2, 0)
	for i := range config.Effects {
		def := &config.Effects[i]
		if def.DisplayName == "" {
			def.DisplayName = def.Name
		}
		if def.Color == "" {
			def.Color = DefaultEffectColor
		}
		if def.Size.Width == 0 {
			def.Size.Width = DefaultEffectSize
		}
		if def.Size.Height == 0 {
			def.Size.Height = DefaultEffectSize
		}
		if def.Start.Scale == nil {
			def.Start.Scale = &Vec3Value{types.Splat(1)}
		}
		if def.Start.Translation == nil {
			def.Start.Translation = &Vec3Value{centre}
		}
	}
}

// validateEffectConfig 验证配置的完整性和正确性
func validateEffectConfig(config *EffectConfig) error {
	if config.Preview.Width < 0 || config.Preview.Height < 0 || config.Preview.TPS < 0 {
		return fmt.Errorf("预览窗口尺寸和 tps 不能为负数")
	}
	if _, err := ParseColor(config.Preview.Background); err != nil {
		return fmt.Errorf("preview.background: %w", err)
	}
	if len(config.Effects) == 0 {
		return fmt.Errorf("'effects' 列表为空")
	}

	names := make(map[string]bool)
	for i := range config.Effects {
		def := &config.Effects[i]
		if def.Name == "" {
			return fmt.Errorf("效果 #%d 缺少 'name' 字段", i)
		}
		if names[def.Name] {
			return fmt.Errorf("效果名称 '%s' 重复", def.Name)
		}
		names[def.Name] = true

		if err := validateEffectDef(def); err != nil {
			return fmt.Errorf("效果 '%s': %w", def.Name, err)
		}
	}
	return nil
}

func validateEffectDef(def *EffectDef) error {
	if _, err := effect.ParseMode(def.Mode); err != nil {
		return err
	}
	if _, err := ParseColor(def.Color); err != nil {
		return err
	}
	if def.Size.Width < 0 || def.Size.Height < 0 {
		return fmt.Errorf("尺寸不能为负数")
	}
	if len(def.Tracks) == 0 {
		return effect.ErrNoTracks
	}

	fields := make(map[effect.Field]bool)
	for i, track := range def.Tracks {
		field, err := effect.ParseField(track.Field)
		if err != nil {
			return fmt.Errorf("轨道 #%d: %w", i, err)
		}
		if fields[field] {
			return fmt.Errorf("轨道 #%d: 字段 '%s' 重复", i, field)
		}
		fields[field] = true

		if len(track.Phases) == 0 {
			return fmt.Errorf("轨道 #%d: %w", i, effect.ErrEmptySequence)
		}
		for j, phase := range track.Phases {
			if math.IsNaN(phase.Speed) || math.IsInf(phase.Speed, 0) || phase.Speed < 0 {
				return fmt.Errorf("轨道 #%d 阶段 #%d: 速度 %v 无效，必须是非负有限数", i, j, phase.Speed)
			}
			if !isFinite(phase.Value.Vec3) {
				return fmt.Errorf("轨道 #%d 阶段 #%d: 目标值 %v 无效", i, j, phase.Value.Vec3)
			}
		}
	}
	return nil
}

func isFinite(v types.Vec3) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Find 按名称查找预设
func (c *EffectConfig) Find(name string) (*EffectDef, bool) {
	for i := range c.Effects {
		if c.Effects[i].Name == name {
			return &c.Effects[i], true
		}
	}
	return nil, false
}

// Names 返回所有预设名称（按文件顺序）
func (c *EffectConfig) Names() []string {
	names := make([]string, len(c.Effects))
	for i, def := range c.Effects {
		names[i] = def.Name
	}
	return names
}

// Build 根据预设创建新的效果实例（每次调用返回独立状态）
func (d *EffectDef) Build() (*effect.Effect, error) {
	mode, err := effect.ParseMode(d.Mode)
	if err != nil {
		return nil, err
	}

	tracks := make([]effect.Track, 0, len(d.Tracks))
	for i, trackDef := range d.Tracks {
		field, err := effect.ParseField(trackDef.Field)
		if err != nil {
			return nil, fmt.Errorf("轨道 #%d: %w", i, err)
		}

		targets := make([]effect.PhaseTarget, len(trackDef.Phases))
		for j, phase := range trackDef.Phases {
			targets[j] = effect.PhaseTarget{
				Value:      phase.Value.Vec3,
				Speed:      phase.Speed,
				HoldTimeMs: phase.HoldMs,
			}
		}

		seq, err := effect.NewPhaseSequence(targets...)
		if err != nil {
			return nil, fmt.Errorf("轨道 #%d: %w", i, err)
		}
		tracks = append(tracks, effect.Track{Field: field, Sequence: seq})
	}

	return effect.NewEffect(mode, tracks...)
}

// StartTransform 返回实体的初始变换
func (d *EffectDef) StartTransform() types.Transform {
	t := types.DefaultTransform()
	if d.Start.Scale != nil {
		t.Scale = d.Start.Scale.Vec3
	}
	if d.Start.Translation != nil {
		t.Translation = d.Start.Translation.Vec3
	}
	return t
}

// RectColor 返回预览矩形颜色；颜色已在加载时校验，解析失败时返回白色
func (d *EffectDef) RectColor() color.RGBA {
	c, err := ParseColor(d.Color)
	if err != nil {
		return colornames.White
	}
	return c
}

// ParseColor 解析颜色
// 支持 SVG 颜色名（不区分大小写，如 "tomato"）和 "#rrggbb" / "#rrggbbaa"
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok && (len(hex) == 6 || len(hex) == 8) {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err == nil {
			if len(hex) == 6 {
				n = n<<8 | 0xff
			}
			return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("无效的颜色 '%s'", s)
}
