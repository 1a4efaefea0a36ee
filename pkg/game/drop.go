package game

import (
	"fmt"
)

// DropResolver 成熟掉落判定
// 按权重从物种掉落表中选出一项，并为其产出列表创建新植物
type DropResolver struct {
	catalog *PlantCatalog
	rng     RandomSource
}

// NewDropResolver 创建掉落判定器
func NewDropResolver(catalog *PlantCatalog, rng RandomSource) *DropResolver {
	return &DropResolver{
		catalog: catalog,
		rng:     rng,
	}
}

// Resolve 为成熟的物种判定掉落
//
// 在 [0, total) 内抽取 r，选中第一个满足 running < r <= running+weight 的项。
// 掉落表为空、总权重为 0 或 r 恰好为 0 时不掉落。
//
// 返回：
//   - []PlantInstance: 新植物（age=0, size=0），按产出列表顺序
//   - error: 产出列表引用了目录中不存在的物种（致命配置错误）
func (r *DropResolver) Resolve(species *PlantSpecies) ([]PlantInstance, error) {
	if len(species.Drops) == 0 {
		return nil, nil
	}
	total := species.TotalDropWeight()
	if !(total > 0) {
		return nil, nil
	}

	draw := r.rng.Float64() * total
	idx := pickDrop(species.Drops, draw)
	if idx < 0 {
		return nil, nil
	}

	produces := species.Drops[idx].Produces
	plants := make([]PlantInstance, 0, len(produces))
	for _, id := range produces {
		p, err := r.catalog.NewInstance(id)
		if err != nil {
			return nil, fmt.Errorf("drop of %q: %w", species.Name, err)
		}
		plants = append(plants, p)
	}
	return plants, nil
}

// pickDrop 返回 draw 落入的掉落项下标，区间为左开右闭
// 没有匹配项时返回 -1
func pickDrop(drops []Drop, draw float64) int {
	running := 0.0
	for i, d := range drops {
		next := running + d.Weight
		if draw > running && draw <= next {
			return i
		}
		running = next
	}
	return -1
}
