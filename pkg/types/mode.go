package types

import "strings"

// Mode 玩家交互模式
type Mode int

const (
	// ModeChoosing 从手牌中选择植物（初始模式）
	ModeChoosing Mode = iota
	// ModePlacing 在棋盘上移动光标并种植
	ModePlacing
	// ModeNextRound 确认推进回合
	ModeNextRound
)

// String 返回模式的字符串表示
func (m Mode) String() string {
	switch m {
	case ModeChoosing:
		return "Choosing"
	case ModePlacing:
		return "Placing"
	case ModeNextRound:
		return "NextRound"
	default:
		return "Unknown"
	}
}

// Next 返回模式切换命令之后的模式
// 循环顺序：Choosing → NextRound → Placing → Choosing
func (m Mode) Next() Mode {
	switch m {
	case ModeChoosing:
		return ModeNextRound
	case ModeNextRound:
		return ModePlacing
	default:
		return ModeChoosing
	}
}

// Command 输入层发送给引擎的抽象命令
type Command int

const (
	// CommandNone 空命令
	CommandNone Command = iota
	CommandMoveUp
	CommandMoveDown
	CommandMoveLeft
	CommandMoveRight
	// CommandConfirm 确认（选择植物 / 种植 / 推进回合，取决于当前模式）
	CommandConfirm
	// CommandCycleMode 切换到下一个模式
	CommandCycleMode
	// CommandDelete 撤回本回合刚种下的植物
	CommandDelete
	// CommandAdvanceRound 任意模式下直接推进回合，不改变模式
	CommandAdvanceRound
	// CommandQuit 结束游戏（由外壳处理退出）
	CommandQuit
)

// String 返回命令的字符串表示
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandMoveUp:
		return "MoveUp"
	case CommandMoveDown:
		return "MoveDown"
	case CommandMoveLeft:
		return "MoveLeft"
	case CommandMoveRight:
		return "MoveRight"
	case CommandConfirm:
		return "Confirm"
	case CommandCycleMode:
		return "CycleMode"
	case CommandDelete:
		return "Delete"
	case CommandAdvanceRound:
		return "AdvanceRound"
	case CommandQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseCommand 按名称解析命令（不区分大小写），用于脚本和调试工具
// 同时接受 String() 的输出和简写：up/down/left/right/confirm/cycle/delete/advance/quit
func ParseCommand(name string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "moveup", "up", "w":
		return CommandMoveUp, true
	case "movedown", "down", "s":
		return CommandMoveDown, true
	case "moveleft", "left", "a":
		return CommandMoveLeft, true
	case "moveright", "right", "d":
		return CommandMoveRight, true
	case "confirm", "c", "space":
		return CommandConfirm, true
	case "cyclemode", "cycle", "tab":
		return CommandCycleMode, true
	case "delete", "del", "q":
		return CommandDelete, true
	case "advanceround", "advance", "n", "enter":
		return CommandAdvanceRound, true
	case "quit", "esc":
		return CommandQuit, true
	}
	return CommandNone, false
}
