package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/decker502/forest/pkg/types"
)

// MaturedPlant 本回合成熟的植物
type MaturedPlant struct {
	X, Y   int
	Plant  PlantInstance
	Points float64
	Drops  []PlantInstance
}

// RoundResult 一次回合推进的结果
type RoundResult struct {
	Round      int // 推进后的回合数
	ScoreDelta float64
	Matured    []MaturedPlant
}

// RoundEngine 回合引擎
// 每次推进：刚种下的格子转为生长，生长中的格子增龄，成熟的格子计分、掉落并清空
type RoundEngine struct {
	board  *Board
	hand   *Hand
	drops  *DropResolver
	score  float64
	round  int
	logger zerolog.Logger
}

// NewRoundEngine 创建回合引擎
func NewRoundEngine(board *Board, hand *Hand, drops *DropResolver, logger zerolog.Logger) *RoundEngine {
	return &RoundEngine{
		board:  board,
		hand:   hand,
		drops:  drops,
		logger: logger,
	}
}

// Score 返回累计得分
func (e *RoundEngine) Score() float64 { return e.score }

// Round 返回已推进的回合数
func (e *RoundEngine) Round() int { return e.round }

// cellUpdate 回合内计划写回的格子
type cellUpdate struct {
	x, y int
	cell Cell
}

// Advance 推进一个回合
//
// 按行优先顺序处理每个格子：
//  1. JustPlaced → Growing，本回合不增龄
//  2. Growing：age+1，size+growth；age >= maxAge 时计分、掉落追加到手牌、清空格子
//  3. Empty 不变
//
// 先计算整个回合的结果，全部掉落解析成功后才写回棋盘、手牌和得分。
//
// 返回：
//   - RoundResult: 本回合结果
//   - error: 掉落引用未知物种（致命配置错误），此时棋盘、手牌、得分和回合数都不变
func (e *RoundEngine) Advance() (RoundResult, error) {
	result := RoundResult{}
	var updates []cellUpdate

	for y := 0; y < e.board.Height(); y++ {
		for x := 0; x < e.board.Width(); x++ {
			cell := *e.board.cellAt(x, y)

			switch cell.Stage {
			case types.CellJustPlaced:
				cell.Stage = types.CellGrowing
				updates = append(updates, cellUpdate{x: x, y: y, cell: cell})

			case types.CellGrowing:
				cell.Plant.Grow()
				if !cell.Plant.Matured() {
					updates = append(updates, cellUpdate{x: x, y: y, cell: cell})
					continue
				}

				plant := cell.Plant
				drops, err := e.drops.Resolve(plant.Species)
				if err != nil {
					return RoundResult{}, fmt.Errorf("resolve drops of %s at (%d, %d): %w", plant.Species.Name, x, y, err)
				}

				points := plant.Points()
				result.ScoreDelta += points
				result.Matured = append(result.Matured, MaturedPlant{X: x, Y: y, Plant: plant, Points: points, Drops: drops})
				updates = append(updates, cellUpdate{x: x, y: y, cell: Cell{}})
			}
		}
	}

	for _, u := range updates {
		*e.board.cellAt(u.x, u.y) = u.cell
	}
	for _, m := range result.Matured {
		e.score += m.Points
		e.hand.Append(m.Drops...)
		e.logger.Debug().
			Str("species", m.Plant.Species.Name).
			Int("x", m.X).
			Int("y", m.Y).
			Int("size", m.Plant.Size).
			Float64("points", m.Points).
			Int("drops", len(m.Drops)).
			Msg("plant matured")
	}

	e.round++
	result.Round = e.round

	e.logger.Debug().
		Int("round", e.round).
		Float64("scoreDelta", result.ScoreDelta).
		Float64("score", e.score).
		Int("matured", len(result.Matured)).
		Msg("round advanced")

	return result, nil
}
