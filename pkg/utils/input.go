// Package utils 提供窗口外壳使用的通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/forest/pkg/types"
)

// DefaultKeyBindings 默认按键映射
// 方向键和 WASD 移动，空格确认，Tab 切换模式，Enter 推进回合，Esc 退出
var DefaultKeyBindings = map[ebiten.Key]types.Command{
	ebiten.KeyArrowUp:    types.CommandMoveUp,
	ebiten.KeyW:          types.CommandMoveUp,
	ebiten.KeyArrowDown:  types.CommandMoveDown,
	ebiten.KeyS:          types.CommandMoveDown,
	ebiten.KeyArrowLeft:  types.CommandMoveLeft,
	ebiten.KeyA:          types.CommandMoveLeft,
	ebiten.KeyArrowRight: types.CommandMoveRight,
	ebiten.KeyD:          types.CommandMoveRight,
	ebiten.KeySpace:      types.CommandConfirm,
	ebiten.KeyTab:        types.CommandCycleMode,
	ebiten.KeyQ:          types.CommandDelete,
	ebiten.KeyDelete:     types.CommandDelete,
	ebiten.KeyBackspace:  types.CommandDelete,
	ebiten.KeyEnter:      types.CommandAdvanceRound,
	ebiten.KeyEscape:     types.CommandQuit,
}

// CommandForKey 返回按键对应的命令，未绑定的按键返回 CommandNone
func CommandForKey(bindings map[ebiten.Key]types.Command, key ebiten.Key) types.Command {
	if cmd, ok := bindings[key]; ok {
		return cmd
	}
	return types.CommandNone
}

// CommandsForKeys 按按键顺序转换为命令，跳过未绑定的按键
func CommandsForKeys(bindings map[ebiten.Key]types.Command, keys []ebiten.Key) []types.Command {
	cmds := make([]types.Command, 0, len(keys))
	for _, k := range keys {
		if cmd := CommandForKey(bindings, k); cmd != types.CommandNone {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// PollCommands 读取本帧刚按下的按键并转换为命令
// 每个 tick 调用一次
func PollCommands(bindings map[ebiten.Key]types.Command) []types.Command {
	keys := inpututil.AppendJustPressedKeys(nil)
	return CommandsForKeys(bindings, keys)
}

