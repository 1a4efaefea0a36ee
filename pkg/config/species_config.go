package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog 物种目录配置不合法
// 启动期致命错误，不会在游戏过程中出现
var ErrInvalidCatalog = errors.New("invalid species catalog")

// CatalogConfig 物种目录配置数据结构
// 对应 data/plants.yaml 的顶层结构
type CatalogConfig struct {
	Species []SpeciesConfig `yaml:"species"` // 物种定义列表，第一个物种同时是初始手牌
}

// SpeciesConfig 单个植物物种配置
type SpeciesConfig struct {
	Name          string       `yaml:"name"`          // 物种名称（唯一键），如 "Grass"
	MaxAge        int          `yaml:"maxAge"`        // 成熟所需回合数
	GrowthPerTurn int          `yaml:"growthPerTurn"` // 每回合增长的尺寸
	PointsPerSize float64      `yaml:"pointsPerSize"` // 每单位尺寸的得分
	Glyph         string       `yaml:"glyph"`         // 棋盘上显示的单个字符
	Class         string       `yaml:"class"`         // 分类字符（可选），默认 "s"
	Drops         []DropConfig `yaml:"drops"`         // 成熟掉落表（可选），为空表示不掉落
}

// DropConfig 掉落表中的一项
// 成熟时按权重随机选中一项，产出 Plants 中列出的全部植物
type DropConfig struct {
	Weight float64  `yaml:"weight"` // 权重，必须为正数
	Plants []string `yaml:"plants"` // 产出的物种名称列表（按顺序）
}

// DefaultSpeciesClass 未配置 class 时使用的分类字符
const DefaultSpeciesClass = "s"

// LoadSpeciesConfig 从YAML文件加载物种目录配置
// 参数：
//
//	path - 目录文件路径（相对或绝对路径）
//
// 返回：
//
//	*CatalogConfig - 解析并校验后的目录配置
//	error - 文件读取、解析或校验失败时返回错误
func LoadSpeciesConfig(path string) (*CatalogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read species catalog %s: %w", path, err)
	}

	cfg, err := ParseSpeciesConfig(data)
	if err != nil {
		return nil, fmt.Errorf("species catalog %s: %w", path, err)
	}
	return cfg, nil
}

// ParseSpeciesConfig 从内存中的YAML数据解析物种目录配置
// 未知字段视为错误，避免拼写错误被静默忽略
func ParseSpeciesConfig(data []byte) (*CatalogConfig, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg CatalogConfig
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidCatalog, err)
	}

	applySpeciesDefaults(&cfg)

	if err := ValidateCatalogConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultCatalogConfig 返回内置的物种目录
// 嵌入资源不可用时作为兜底
func DefaultCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		Species: []SpeciesConfig{
			{
				Name:          "Grass",
				MaxAge:        2,
				GrowthPerTurn: 1,
				PointsPerSize: 1.0,
				Glyph:         "w",
				Class:         "s",
				Drops: []DropConfig{
					{Weight: 1.0, Plants: []string{"Grass", "Grass"}},
					{Weight: 1.0, Plants: []string{"Grass", "Tall Grass"}},
				},
			},
			{
				Name:          "Tall Grass",
				MaxAge:        4,
				GrowthPerTurn: 1,
				PointsPerSize: 1.0,
				Glyph:         "W",
				Class:         "s",
				Drops: []DropConfig{
					{Weight: 5.0, Plants: []string{"Tall Grass", "Tall Grass"}},
					{Weight: 1.0, Plants: []string{"Tall Grass", "Shrub"}},
				},
			},
			{
				Name:          "Shrub",
				MaxAge:        7,
				GrowthPerTurn: 1,
				PointsPerSize: 1.0,
				Glyph:         "Y",
				Class:         "S",
				Drops: []DropConfig{
					{Weight: 5.0, Plants: []string{"Shrub", "Shrub"}},
				},
			},
		},
	}
}

// applySpeciesDefaults 为缺失的可选字段设置默认值
func applySpeciesDefaults(cfg *CatalogConfig) {
	for i := range cfg.Species {
		if cfg.Species[i].Class == "" {
			cfg.Species[i].Class = DefaultSpeciesClass
		}
	}
}

// ValidateCatalogConfig 验证目录配置的完整性和合法性
// 所有错误都包装 ErrInvalidCatalog
func ValidateCatalogConfig(cfg *CatalogConfig) error {
	if cfg == nil || len(cfg.Species) == 0 {
		return fmt.Errorf("%w: at least one species is required", ErrInvalidCatalog)
	}

	names := mapset.New[string]()
	for i, s := range cfg.Species {
		if s.Name == "" {
			return fmt.Errorf("%w: species %d: name is required", ErrInvalidCatalog, i)
		}
		if names.Has(s.Name) {
			return fmt.Errorf("%w: species %d: duplicate name %q", ErrInvalidCatalog, i, s.Name)
		}
		names.Put(s.Name)

		if s.MaxAge < 1 {
			return fmt.Errorf("%w: species %q: maxAge must be at least 1, got %d", ErrInvalidCatalog, s.Name, s.MaxAge)
		}
		if s.GrowthPerTurn < 0 {
			return fmt.Errorf("%w: species %q: growthPerTurn cannot be negative, got %d", ErrInvalidCatalog, s.Name, s.GrowthPerTurn)
		}
		if s.PointsPerSize < 0 {
			return fmt.Errorf("%w: species %q: pointsPerSize cannot be negative, got %v", ErrInvalidCatalog, s.Name, s.PointsPerSize)
		}
		if utf8.RuneCountInString(s.Glyph) != 1 {
			return fmt.Errorf("%w: species %q: glyph must be exactly one character, got %q", ErrInvalidCatalog, s.Name, s.Glyph)
		}
		if s.Class != "" && utf8.RuneCountInString(s.Class) != 1 {
			return fmt.Errorf("%w: species %q: class must be exactly one character, got %q", ErrInvalidCatalog, s.Name, s.Class)
		}
		for j, d := range s.Drops {
			if !(d.Weight > 0) {
				return fmt.Errorf("%w: species %q drop %d: weight must be positive, got %v", ErrInvalidCatalog, s.Name, j, d.Weight)
			}
		}
	}

	// 掉落表只能引用目录中存在的物种
	for _, s := range cfg.Species {
		for j, d := range s.Drops {
			for _, name := range d.Plants {
				if !names.Has(name) {
					return fmt.Errorf("%w: species %q drop %d references unknown species %q", ErrInvalidCatalog, s.Name, j, name)
				}
			}
		}
	}

	return nil
}
