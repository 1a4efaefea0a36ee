package game

import (
	"fmt"

	"github.com/decker502/forest/pkg/types"
)

// CellView 单个格子的渲染数据
type CellView struct {
	X, Y              int
	Stage             types.CellStage
	Glyph             rune
	Text              string  // 如 "w: 1/2"，空格子为 " "
	Age               int
	MaxAge            int
	RemainingFraction float64 // 剩余寿命占比，空格子为 0
	Expiring          bool    // 生长中且剩余回合数小于阈值
	Cursor            bool    // 种植模式下光标所在格子
}

// HandEntry 手牌列表中的一项
type HandEntry struct {
	Name     string
	Glyph    rune
	Selected bool
}

// StatBlock 植物属性面板
type StatBlock struct {
	Empty          bool // 没有可显示的植物
	Title          string
	MaxAge         int
	GrowthPerTurn  int
	PointsPerSize  float64
	ProjectedScore float64
}

// View 渲染一帧所需的只读状态快照
type View struct {
	Width, Height int
	Cells         []CellView // 行优先
	Hand          []HandEntry
	Selected      int // 选中下标，手牌为空时为 -1
	Mode          types.Mode
	Score         float64
	Round         int
	Title         string
	Stats         StatBlock
}

// View 生成当前状态的渲染快照
// 参数：
//   - expiringThreshold: 剩余回合数小于该值的生长中格子标记为即将成熟
func (s *Session) View(expiringThreshold int) View {
	mode := s.Mode()
	cursor := s.Cursor()

	v := View{
		Width:    s.board.Width(),
		Height:   s.board.Height(),
		Cells:    make([]CellView, 0, s.board.Width()*s.board.Height()),
		Selected: -1,
		Mode:     mode,
		Score:    s.Score(),
		Round:    s.Round(),
		Title:    fmt.Sprintf(" Forest // Score: %g // Round: %d ", s.Score(), s.Round()),
	}

	s.board.Each(func(x, y int, c Cell) {
		cv := CellView{
			X:      x,
			Y:      y,
			Stage:  c.Stage,
			Text:   c.String(),
			Cursor: mode == types.ModePlacing && cursor.X == x && cursor.Y == y,
		}
		if p, ok := c.Instance(); ok {
			cv.Glyph = p.Species.Glyph
			cv.Age = p.Age
			cv.MaxAge = p.Species.MaxAge
			cv.RemainingFraction = p.RemainingFraction()
			cv.Expiring = c.Stage == types.CellGrowing && p.RemainingAge() < expiringThreshold
		}
		v.Cells = append(v.Cells, cv)
	})

	selected, hasSelection := s.hand.SelectedIndex()
	if hasSelection {
		v.Selected = selected
	}
	for i, p := range s.hand.Plants() {
		v.Hand = append(v.Hand, HandEntry{
			Name:     p.Species.Name,
			Glyph:    p.Species.Glyph,
			Selected: hasSelection && i == selected,
		})
	}

	v.Stats = s.statBlock()
	return v
}

// statBlock 选择属性面板显示的植物
// 种植模式：光标处的植物，格子为空时显示待种植植物；其他模式：手牌选中项
func (s *Session) statBlock() StatBlock {
	var (
		plant PlantInstance
		ok    bool
	)

	if s.Mode() == types.ModePlacing {
		cursor := s.Cursor()
		if cell, err := s.board.Cell(cursor.X, cursor.Y); err == nil {
			plant, ok = cell.Instance()
		}
		if !ok {
			plant, ok = s.Pending()
		}
	} else {
		plant, ok = s.hand.Selected()
	}

	if !ok {
		return StatBlock{Empty: true, Title: "Empty"}
	}
	sp := plant.Species
	return StatBlock{
		Title:          sp.Name,
		MaxAge:         sp.MaxAge,
		GrowthPerTurn:  sp.GrowthPerTurn,
		PointsPerSize:  sp.PointsPerSize,
		ProjectedScore: sp.ProjectedScore(),
	}
}
