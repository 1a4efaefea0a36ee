package game

import (
	"fmt"

	"github.com/decker502/forest/pkg/types"
)

// PlantInstance 一株具体的植物
// 值类型，可随意复制；任一时刻只属于一个容器（手牌或棋盘格子）
type PlantInstance struct {
	Species *PlantSpecies
	Age     int // 已存活回合数
	Size    int // 累计生长尺寸
}

// NewPlantInstance 创建一株 age=0、size=0 的新植物
func NewPlantInstance(species *PlantSpecies) PlantInstance {
	return PlantInstance{Species: species}
}

// Grow 生长一回合
func (p *PlantInstance) Grow() {
	p.Age++
	p.Size += p.Species.GrowthPerTurn
}

// Matured 报告植物是否已成熟（age >= maxAge）
func (p PlantInstance) Matured() bool {
	return p.Age >= p.Species.MaxAge
}

// Points 返回当前尺寸对应的得分
func (p PlantInstance) Points() float64 {
	return float64(p.Size) * p.Species.PointsPerSize
}

// RemainingAge 返回距离成熟的剩余回合数
func (p PlantInstance) RemainingAge() int {
	return p.Species.MaxAge - p.Age
}

// RemainingFraction 返回剩余寿命占比（1 表示刚种下，接近 0 表示即将成熟）
func (p PlantInstance) RemainingFraction() float64 {
	if p.Species.MaxAge <= 0 {
		return 0
	}
	return float64(p.RemainingAge()) / float64(p.Species.MaxAge)
}

// String 返回格子显示文本，如 "w: 1/2"
func (p PlantInstance) String() string {
	return fmt.Sprintf("%c: %d/%d", p.Species.Glyph, p.Age, p.Species.MaxAge)
}

// Cell 棋盘格子
// Stage 为标签，Plant 仅在 Stage != CellEmpty 时有效
type Cell struct {
	Stage types.CellStage
	Plant PlantInstance
}

// IsEmpty 报告格子是否为空
func (c Cell) IsEmpty() bool {
	return c.Stage == types.CellEmpty
}

// Instance 返回格子中的植物
func (c Cell) Instance() (PlantInstance, bool) {
	if c.IsEmpty() {
		return PlantInstance{}, false
	}
	return c.Plant, true
}

// String 返回格子显示文本，空格子为单个空格
func (c Cell) String() string {
	if c.IsEmpty() {
		return " "
	}
	return c.Plant.String()
}
