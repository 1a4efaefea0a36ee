package game

// noSelection 表示手牌为空时没有选中项
const noSelection = -1

// Hand 玩家手牌
//
// 顺序约定：
//   - Append 追加到末尾，保持插入顺序
//   - TakeSelected 使用交换删除：最后一项移到被删除的位置，顺序不稳定
//
// 选择光标只在手牌为空时为"无"
type Hand struct {
	plants   []PlantInstance
	selected int
}

// NewHand 创建手牌，非空时选中第一项
func NewHand(plants ...PlantInstance) *Hand {
	h := &Hand{selected: noSelection}
	h.Append(plants...)
	return h
}

// Len 返回手牌数量
func (h *Hand) Len() int {
	return len(h.plants)
}

// Plants 返回手牌副本（按当前顺序）
func (h *Hand) Plants() []PlantInstance {
	out := make([]PlantInstance, len(h.plants))
	copy(out, h.plants)
	return out
}

// SelectedIndex 返回选中下标
func (h *Hand) SelectedIndex() (int, bool) {
	if h.selected == noSelection {
		return 0, false
	}
	return h.selected, true
}

// Selected 返回选中植物的副本
func (h *Hand) Selected() (PlantInstance, bool) {
	if h.selected == noSelection || h.selected >= len(h.plants) {
		return PlantInstance{}, false
	}
	return h.plants[h.selected], true
}

// SelectNext 选中下一项（末尾回绕到开头），手牌为空时无效果
func (h *Hand) SelectNext() {
	n := len(h.plants)
	if n == 0 {
		return
	}
	if h.selected == noSelection {
		h.selected = 0
		return
	}
	h.selected = (h.selected + 1) % n
}

// SelectPrev 选中上一项（开头回绕到末尾），手牌为空时无效果
func (h *Hand) SelectPrev() {
	n := len(h.plants)
	if n == 0 {
		return
	}
	if h.selected == noSelection {
		h.selected = 0
		return
	}
	h.selected = ((h.selected-1)%n + n) % n
}

// TakeSelected 取出选中的植物
//
// 交换删除后选中下标减一（已经是 0 则保持 0），手牌取空后变为无选中
func (h *Hand) TakeSelected() (PlantInstance, bool) {
	idx := h.selected
	if idx == noSelection || idx >= len(h.plants) {
		return PlantInstance{}, false
	}

	last := len(h.plants) - 1
	taken := h.plants[idx]
	h.plants[idx] = h.plants[last]
	h.plants[last] = PlantInstance{}
	h.plants = h.plants[:last]

	if len(h.plants) == 0 {
		h.selected = noSelection
		return taken, true
	}
	if idx > 0 {
		idx--
	}
	if idx >= len(h.plants) {
		idx = len(h.plants) - 1
	}
	h.selected = idx
	return taken, true
}

// Append 追加植物到末尾
// 不改变已有的选中下标；原先为空时选中第一项
func (h *Hand) Append(plants ...PlantInstance) {
	if len(plants) == 0 {
		return
	}
	h.plants = append(h.plants, plants...)
	if h.selected == noSelection {
		h.selected = 0
	}
}
