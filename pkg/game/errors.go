package game

import "errors"

// 引擎错误
// 正常流程通过预检查（CanPlace、边界夹取）避免这些错误；
// 调用方绕过检查时以类型化错误返回，不会静默破坏状态
var (
	// ErrOutOfBounds 坐标超出棋盘范围
	ErrOutOfBounds = errors.New("coordinates out of bounds")

	// ErrCellOccupied 目标格子已被占用
	ErrCellOccupied = errors.New("cell is occupied")

	// ErrUnknownSpecies 物种不在目录中（目录损坏，属于致命配置错误）
	ErrUnknownSpecies = errors.New("unknown species")

	// ErrInvalidBoardSize 棋盘尺寸不是正整数
	ErrInvalidBoardSize = errors.New("invalid board size")
)
