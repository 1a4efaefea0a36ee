package game

import (
	"fmt"

	"github.com/decker502/forest/pkg/config"
	"github.com/decker502/forest/pkg/types"
)

// Drop 掉落表中的一项
// Produces 在目录构建时已解析为物种句柄
type Drop struct {
	Weight   float64
	Produces []types.SpeciesID
}

// PlantSpecies 植物物种定义（只读）
// 由 PlantCatalog 持有，构建后不再修改
type PlantSpecies struct {
	ID            types.SpeciesID
	Name          string
	MaxAge        int
	GrowthPerTurn int
	PointsPerSize float64
	Glyph         rune
	Class         rune
	Drops         []Drop
}

// ProjectedScore 返回放任成熟时的总得分
func (s *PlantSpecies) ProjectedScore() float64 {
	return float64(s.MaxAge*s.GrowthPerTurn) * s.PointsPerSize
}

// TotalDropWeight 返回掉落表的权重总和
func (s *PlantSpecies) TotalDropWeight() float64 {
	total := 0.0
	for _, d := range s.Drops {
		total += d.Weight
	}
	return total
}

// PlantCatalog 植物物种目录
// 构建时一次性把名称解析为句柄，游戏过程中只按句柄查找
type PlantCatalog struct {
	species []*PlantSpecies
	byName  map[string]types.SpeciesID
}

// NewPlantCatalog 从目录配置构建物种目录
//
// 参数：
//   - cfg: 目录配置（通常来自 config.ParseSpeciesConfig）
//
// 返回：
//   - *PlantCatalog: 物种目录
//   - error: 配置未通过 config.ValidateCatalogConfig 时返回错误（包装 config.ErrInvalidCatalog）
func NewPlantCatalog(cfg *config.CatalogConfig) (*PlantCatalog, error) {
	if err := config.ValidateCatalogConfig(cfg); err != nil {
		return nil, err
	}

	c := &PlantCatalog{
		species: make([]*PlantSpecies, 0, len(cfg.Species)),
		byName:  make(map[string]types.SpeciesID, len(cfg.Species)),
	}

	// 第一遍：分配句柄
	for i, sc := range cfg.Species {
		if _, dup := c.byName[sc.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate species %q", config.ErrInvalidCatalog, sc.Name)
		}
		id := types.SpeciesID(i)
		c.byName[sc.Name] = id
		c.species = append(c.species, &PlantSpecies{
			ID:            id,
			Name:          sc.Name,
			MaxAge:        sc.MaxAge,
			GrowthPerTurn: sc.GrowthPerTurn,
			PointsPerSize: sc.PointsPerSize,
			Glyph:         firstRune(sc.Glyph, '?'),
			Class:         firstRune(sc.Class, 's'),
		})
	}

	// 第二遍：解析掉落表
	for i, sc := range cfg.Species {
		drops := make([]Drop, 0, len(sc.Drops))
		for j, dc := range sc.Drops {
			produces := make([]types.SpeciesID, 0, len(dc.Plants))
			for _, name := range dc.Plants {
				sp, err := c.LookupName(name)
				if err != nil {
					return nil, fmt.Errorf("species %q drop %d: %w", sc.Name, j, err)
				}
				produces = append(produces, sp.ID)
			}
			drops = append(drops, Drop{Weight: dc.Weight, Produces: produces})
		}
		c.species[i].Drops = drops
	}

	return c, nil
}

// firstRune 返回字符串的第一个字符，空字符串返回 fallback
func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}

// Lookup 按句柄查找物种
func (c *PlantCatalog) Lookup(id types.SpeciesID) (*PlantSpecies, error) {
	if id < 0 || int(id) >= len(c.species) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownSpecies, id)
	}
	return c.species[id], nil
}

// LookupName 按名称查找物种（用于目录构建和工具，游戏过程中不使用）
func (c *PlantCatalog) LookupName(name string) (*PlantSpecies, error) {
	id, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
	}
	return c.species[id], nil
}

// NewInstance 创建指定物种的新植物实例（age=0, size=0）
func (c *PlantCatalog) NewInstance(id types.SpeciesID) (PlantInstance, error) {
	s, err := c.Lookup(id)
	if err != nil {
		return PlantInstance{}, err
	}
	return NewPlantInstance(s), nil
}

// First 返回目录中的第一个物种（初始手牌）
func (c *PlantCatalog) First() *PlantSpecies {
	return c.species[0]
}

// Len 返回物种数量
func (c *PlantCatalog) Len() int {
	return len(c.species)
}

// All 返回所有物种（按定义顺序，返回副本切片）
func (c *PlantCatalog) All() []*PlantSpecies {
	out := make([]*PlantSpecies, len(c.species))
	copy(out, c.species)
	return out
}
