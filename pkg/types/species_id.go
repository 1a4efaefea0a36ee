// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// SpeciesID 植物物种句柄
// 目录加载时按定义顺序分配（从 0 开始），运行期不再按名称查找
type SpeciesID int

// CellStage 棋盘格子的生命周期阶段
type CellStage int

const (
	// CellEmpty 空格子
	CellEmpty CellStage = iota
	// CellJustPlaced 本回合刚种下，下一次回合推进时才开始生长
	CellJustPlaced
	// CellGrowing 正在生长
	CellGrowing
)

// String 返回格子阶段的字符串表示
func (s CellStage) String() string {
	switch s {
	case CellEmpty:
		return "Empty"
	case CellJustPlaced:
		return "JustPlaced"
	case CellGrowing:
		return "Growing"
	default:
		return "Unknown"
	}
}
