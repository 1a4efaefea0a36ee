package utils

import (
	"image"
	"math"
)

// BoardLayout 棋盘网格在屏幕上的布局
// 格子为正方形，边长取区域能容纳的最大值，网格在区域内居中
type BoardLayout struct {
	OriginX  float64 // 网格左上角X坐标
	OriginY  float64 // 网格左上角Y坐标
	CellSize float64 // 每格边长
	Columns  int
	Rows     int
	// FillRatio 格子矩形占格子尺寸的比例，剩余部分为间隙
	FillRatio float64
}

// NewBoardLayout 在给定区域内布置 columns x rows 的网格
// 参数:
//   - areaX, areaY, areaW, areaH: 可用区域
//   - columns, rows: 网格列数和行数（必须为正数）
//   - fillRatio: 格子填充比例，<=0 或 >1 时按 1 处理
func NewBoardLayout(areaX, areaY, areaW, areaH float64, columns, rows int, fillRatio float64) BoardLayout {
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	if fillRatio <= 0 || fillRatio > 1 {
		fillRatio = 1
	}

	size := math.Min(areaW/float64(columns), areaH/float64(rows))
	if size < 0 {
		size = 0
	}

	gridW := size * float64(columns)
	gridH := size * float64(rows)

	return BoardLayout{
		OriginX:   areaX + (areaW-gridW)/2,
		OriginY:   areaY + (areaH-gridH)/2,
		CellSize:  size,
		Columns:   columns,
		Rows:      rows,
		FillRatio: fillRatio,
	}
}

// CellRect 返回格子的填充矩形（已扣除间隙，四周等宽）
func (l BoardLayout) CellRect(col, row int) image.Rectangle {
	inner := l.CellSize * l.FillRatio
	gap := (l.CellSize - inner) / 2

	x0 := l.OriginX + float64(col)*l.CellSize + gap
	y0 := l.OriginY + float64(row)*l.CellSize + gap
	return image.Rect(
		int(math.Round(x0)),
		int(math.Round(y0)),
		int(math.Round(x0+inner)),
		int(math.Round(y0+inner)),
	)
}

// GridToScreenCoords 将网格坐标转换为格子中心的屏幕坐标
func (l BoardLayout) GridToScreenCoords(col, row int) (centerX, centerY float64) {
	centerX = l.OriginX + float64(col)*l.CellSize + l.CellSize/2
	centerY = l.OriginY + float64(row)*l.CellSize + l.CellSize/2
	return centerX, centerY
}

// ScreenToGridCoords 将屏幕坐标转换为网格坐标
// 返回:
//   - col, row: 网格坐标
//   - isValid: 是否在网格范围内
func (l BoardLayout) ScreenToGridCoords(x, y int) (col, row int, isValid bool) {
	if l.CellSize <= 0 {
		return 0, 0, false
	}

	fx := float64(x) - l.OriginX
	fy := float64(y) - l.OriginY
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}

	col = int(fx / l.CellSize)
	row = int(fy / l.CellSize)
	if col >= l.Columns || row >= l.Rows {
		return 0, 0, false
	}
	return col, row, true
}
