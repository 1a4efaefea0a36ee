package game

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/decker502/forest/pkg/types"
)

// Cursor 种植模式下的棋盘光标
// 归交互层所有，切换模式时保持不变
type Cursor struct {
	X, Y int
}

// InteractionStateMachine 交互状态机
//
// 模式循环：
//   - Choosing：方向键循环切换手牌选中项；确认把选中植物设为待种植并进入 Placing；
//     手牌为空时确认直接推进回合
//   - Placing：方向键移动光标（各轴独立夹取到边界）；确认在空格子种下待种植植物，
//     从手牌取出并回到 Choosing；格子被占用时无效果；删除撤回本回合刚种下的植物
//   - NextRound：确认推进回合并进入 Placing
//
// 模式切换命令：Choosing → NextRound → Placing → Choosing
// 推进回合命令在任何模式下都只推进回合，不改变模式
type InteractionStateMachine struct {
	board  *Board
	hand   *Hand
	engine *RoundEngine
	logger zerolog.Logger

	mode     types.Mode
	cursor   Cursor
	pending  *PlantInstance
	finished bool
}

// NewInteractionStateMachine 创建交互状态机
// 初始模式为 Choosing，光标位于棋盘中心（四舍五入后夹取到边界内）
func NewInteractionStateMachine(board *Board, hand *Hand, engine *RoundEngine, logger zerolog.Logger) *InteractionStateMachine {
	return &InteractionStateMachine{
		board:  board,
		hand:   hand,
		engine: engine,
		logger: logger,
		mode:   types.ModeChoosing,
		cursor: Cursor{
			X: clamp(int(math.Round(float64(board.Width())/2)), 0, board.Width()-1),
			Y: clamp(int(math.Round(float64(board.Height())/2)), 0, board.Height()-1),
		},
	}
}

// Mode 返回当前模式
func (m *InteractionStateMachine) Mode() types.Mode { return m.mode }

// Cursor 返回棋盘光标位置
func (m *InteractionStateMachine) Cursor() Cursor { return m.cursor }

// Finished 报告是否收到了退出命令
func (m *InteractionStateMachine) Finished() bool { return m.finished }

// Pending 返回待种植的植物
func (m *InteractionStateMachine) Pending() (PlantInstance, bool) {
	if m.pending == nil {
		return PlantInstance{}, false
	}
	return *m.pending, true
}

// Handle 处理一条命令
//
// 返回：
//   - error: 只有回合推进遇到致命配置错误时才返回错误
func (m *InteractionStateMachine) Handle(cmd types.Command) error {
	if m.finished {
		return nil
	}

	switch cmd {
	case types.CommandQuit:
		m.finished = true
		return nil
	case types.CommandCycleMode:
		m.mode = m.mode.Next()
		return nil
	case types.CommandAdvanceRound:
		return m.advance()
	}

	switch m.mode {
	case types.ModeChoosing:
		return m.handleChoosing(cmd)
	case types.ModePlacing:
		return m.handlePlacing(cmd)
	case types.ModeNextRound:
		return m.handleNextRound(cmd)
	}
	return nil
}

func (m *InteractionStateMachine) handleChoosing(cmd types.Command) error {
	switch cmd {
	case types.CommandMoveUp, types.CommandMoveLeft:
		m.hand.SelectPrev()
		m.pending = nil
	case types.CommandMoveDown, types.CommandMoveRight:
		m.hand.SelectNext()
		m.pending = nil
	case types.CommandConfirm:
		selected, ok := m.hand.Selected()
		if !ok {
			// 手牌为空：强制推进回合
			return m.advance()
		}
		m.pending = &selected
		m.mode = types.ModePlacing
	}
	return nil
}

func (m *InteractionStateMachine) handlePlacing(cmd types.Command) error {
	switch cmd {
	case types.CommandMoveUp:
		m.moveCursor(0, -1)
	case types.CommandMoveDown:
		m.moveCursor(0, 1)
	case types.CommandMoveLeft:
		m.moveCursor(-1, 0)
	case types.CommandMoveRight:
		m.moveCursor(1, 0)
	case types.CommandConfirm:
		return m.placePending()
	case types.CommandDelete:
		return m.reclaim()
	}
	return nil
}

func (m *InteractionStateMachine) handleNextRound(cmd types.Command) error {
	if cmd != types.CommandConfirm {
		return nil
	}
	if err := m.advance(); err != nil {
		return err
	}
	m.mode = types.ModePlacing
	return nil
}

// placePending 把待种植植物种到光标处
// 格子被占用或没有待种植植物时无效果
func (m *InteractionStateMachine) placePending() error {
	if m.pending == nil {
		return nil
	}
	x, y := m.cursor.X, m.cursor.Y
	if !m.board.CanPlace(x, y) {
		return nil
	}

	plant, ok := m.hand.TakeSelected()
	if !ok {
		m.pending = nil
		return nil
	}
	if err := m.board.Place(x, y, plant); err != nil {
		// CanPlace 已检查，这里只可能是调用顺序被破坏
		m.hand.Append(plant)
		return fmt.Errorf("place %s: %w", plant.Species.Name, err)
	}

	m.logger.Debug().Str("species", plant.Species.Name).Int("x", x).Int("y", y).Msg("plant placed")
	m.pending = nil
	m.mode = types.ModeChoosing
	return nil
}

// reclaim 撤回光标处本回合刚种下的植物，放回手牌末尾
// 空格子和生长中的格子无效果
func (m *InteractionStateMachine) reclaim() error {
	x, y := m.cursor.X, m.cursor.Y
	cell, err := m.board.Cell(x, y)
	if err != nil {
		return err
	}
	if cell.Stage != types.CellJustPlaced {
		return nil
	}

	plant, _, err := m.board.Clear(x, y)
	if err != nil {
		return err
	}
	m.hand.Append(plant)
	m.logger.Debug().Str("species", plant.Species.Name).Int("x", x).Int("y", y).Msg("plant reclaimed")
	return nil
}

func (m *InteractionStateMachine) advance() error {
	_, err := m.engine.Advance()
	return err
}

// PointAt 把光标直接移到 (x, y) 并尝试种下待种植植物
// 只在种植模式下生效，越界坐标忽略；效果等同于移动光标后 Confirm
//
// 返回：
//   - bool: 光标是否移动
func (m *InteractionStateMachine) PointAt(x, y int) (bool, error) {
	if m.finished || m.mode != types.ModePlacing || !m.board.InBounds(x, y) {
		return false, nil
	}
	m.cursor = Cursor{X: x, Y: y}
	return true, m.placePending()
}

func (m *InteractionStateMachine) moveCursor(dx, dy int) {
	m.cursor.X = clamp(m.cursor.X+dx, 0, m.board.Width()-1)
	m.cursor.Y = clamp(m.cursor.Y+dy, 0, m.board.Height()-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
