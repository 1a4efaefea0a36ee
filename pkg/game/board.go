package game

import (
	"fmt"

	"github.com/decker502/forest/pkg/types"
)

// Board 固定尺寸的棋盘
// 行优先存储，(x, y) 对应下标 y*width+x
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard 创建全部为空的棋盘
//
// 返回：
//   - error: 宽或高不是正整数时返回 ErrInvalidBoardSize
func NewBoard(width, height int) (*Board, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoardSize, width, height)
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// Width 返回棋盘宽度
func (b *Board) Width() int { return b.width }

// Height 返回棋盘高度
func (b *Board) Height() int { return b.height }

// InBounds 报告坐标是否在棋盘内
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Index 返回坐标对应的行优先下标（不做边界检查）
func (b *Board) Index(x, y int) int {
	return y*b.width + x
}

// Cell 返回指定格子的副本
func (b *Board) Cell(x, y int) (Cell, error) {
	if !b.InBounds(x, y) {
		return Cell{}, b.outOfBounds(x, y)
	}
	return b.cells[b.Index(x, y)], nil
}

// CanPlace 报告格子是否为空（越界返回 false）
func (b *Board) CanPlace(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.cells[b.Index(x, y)].IsEmpty()
}

// Place 在空格子上种下植物，格子进入 JustPlaced 阶段
//
// 返回：
//   - error: 越界返回 ErrOutOfBounds，格子非空返回 ErrCellOccupied
func (b *Board) Place(x, y int, plant PlantInstance) error {
	if !b.InBounds(x, y) {
		return b.outOfBounds(x, y)
	}
	idx := b.Index(x, y)
	if !b.cells[idx].IsEmpty() {
		return fmt.Errorf("%w: (%d, %d) holds %s", ErrCellOccupied, x, y, b.cells[idx].Plant.Species.Name)
	}
	b.cells[idx] = Cell{Stage: types.CellJustPlaced, Plant: plant}
	return nil
}

// Clear 清空格子，返回原先的植物（如果有）
func (b *Board) Clear(x, y int) (PlantInstance, bool, error) {
	if !b.InBounds(x, y) {
		return PlantInstance{}, false, b.outOfBounds(x, y)
	}
	idx := b.Index(x, y)
	prev, ok := b.cells[idx].Instance()
	b.cells[idx] = Cell{}
	return prev, ok, nil
}

// Occupied 返回非空格子数量
func (b *Board) Occupied() int {
	n := 0
	for _, c := range b.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Each 按行优先顺序遍历所有格子
func (b *Board) Each(fn func(x, y int, c Cell)) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			fn(x, y, b.cells[b.Index(x, y)])
		}
	}
}

// cellAt 返回格子指针，供回合引擎原地更新
func (b *Board) cellAt(x, y int) *Cell {
	return &b.cells[b.Index(x, y)]
}

func (b *Board) outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d, %d) on %dx%d board", ErrOutOfBounds, x, y, b.width, b.height)
}
