package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/forest/pkg/types"
)

func handleAll(t *testing.T, s *Session, cmds ...types.Command) {
	t.Helper()
	for _, cmd := range cmds {
		require.NoError(t, s.Handle(cmd), cmd.String())
	}
}

func TestInteraction_InitialCursor(t *testing.T) {
	tests := []struct {
		size  int
		wantX int
	}{
		{1, 0},
		{2, 1},
		{5, 3},
		{6, 3},
	}

	for _, tt := range tests {
		s := newTestSession(t, tt.size, nil)
		assert.Equal(t, Cursor{X: tt.wantX, Y: tt.wantX}, s.Cursor(), "size %d", tt.size)
		assert.Equal(t, types.ModeChoosing, s.Mode())
	}
}

func TestInteraction_CycleMode(t *testing.T) {
	s := newTestSession(t, 6, nil)

	want := []types.Mode{types.ModeNextRound, types.ModePlacing, types.ModeChoosing}
	for _, m := range want {
		handleAll(t, s, types.CommandCycleMode)
		assert.Equal(t, m, s.Mode())
	}
}

func TestInteraction_ChooseAndPlace(t *testing.T) {
	s := newTestSession(t, 6, nil)

	handleAll(t, s, types.CommandConfirm)
	assert.Equal(t, types.ModePlacing, s.Mode())
	pending, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, "Grass", pending.Species.Name)

	handleAll(t, s, types.CommandMoveUp, types.CommandMoveLeft, types.CommandConfirm)
	assert.Equal(t, types.ModeChoosing, s.Mode())
	_, ok = s.Pending()
	assert.False(t, ok)

	cell, err := s.Board().Cell(2, 2)
	require.NoError(t, err)
	assert.Equal(t, types.CellJustPlaced, cell.Stage)
	assert.Equal(t, 1, s.Hand().Len())
}

func TestInteraction_PlaceOnOccupiedIsNoOp(t *testing.T) {
	s := newTestSession(t, 6, nil)

	handleAll(t, s, types.CommandConfirm, types.CommandConfirm)
	handleAll(t, s, types.CommandConfirm, types.CommandConfirm)

	assert.Equal(t, types.ModePlacing, s.Mode(), "占用格子上确认不离开种植模式")
	assert.Equal(t, 1, s.Hand().Len())
	assert.Equal(t, 1, s.Board().Occupied())
	_, ok := s.Pending()
	assert.True(t, ok)
}

func TestInteraction_CursorClamps(t *testing.T) {
	s := newTestSession(t, 3, nil)
	handleAll(t, s, types.CommandConfirm)

	for i := 0; i < 5; i++ {
		handleAll(t, s, types.CommandMoveRight, types.CommandMoveDown)
	}
	assert.Equal(t, Cursor{X: 2, Y: 2}, s.Cursor())

	for i := 0; i < 5; i++ {
		handleAll(t, s, types.CommandMoveLeft, types.CommandMoveUp)
	}
	assert.Equal(t, Cursor{X: 0, Y: 0}, s.Cursor())
}

func TestInteraction_CursorSurvivesModeChange(t *testing.T) {
	s := newTestSession(t, 6, nil)
	handleAll(t, s, types.CommandConfirm, types.CommandMoveRight, types.CommandCycleMode)

	assert.Equal(t, types.ModeChoosing, s.Mode())
	assert.Equal(t, Cursor{X: 4, Y: 3}, s.Cursor())
}

func TestInteraction_ChoosingMovesSelection(t *testing.T) {
	s := newTestSession(t, 6, nil)
	catalog := s.Catalog()
	s.Hand().Append(NewPlantInstance(mustSpecies(t, catalog, "Shrub")))

	handleAll(t, s, types.CommandMoveUp)
	p, ok := s.Hand().Selected()
	require.True(t, ok)
	assert.Equal(t, "Shrub", p.Species.Name)

	handleAll(t, s, types.CommandMoveRight)
	idx, _ := s.Hand().SelectedIndex()
	assert.Equal(t, 0, idx)
	assert.Equal(t, types.ModeChoosing, s.Mode())
}

func TestInteraction_SelectionChangeClearsPending(t *testing.T) {
	s := newTestSession(t, 6, nil)

	handleAll(t, s, types.CommandConfirm, types.CommandCycleMode)
	_, ok := s.Pending()
	require.True(t, ok)

	handleAll(t, s, types.CommandMoveDown)
	_, ok = s.Pending()
	assert.False(t, ok)

	// 没有待种植植物时确认无效果
	handleAll(t, s, types.CommandCycleMode, types.CommandCycleMode, types.CommandConfirm)
	assert.Equal(t, types.ModePlacing, s.Mode())
	assert.Zero(t, s.Board().Occupied())
}

func TestInteraction_EmptyHandConfirmAdvances(t *testing.T) {
	s := newTestSession(t, 6, nil)

	for i := 0; i < 2; i++ {
		handleAll(t, s, types.CommandConfirm, types.CommandMoveRight, types.CommandConfirm)
	}
	require.Zero(t, s.Hand().Len())

	handleAll(t, s, types.CommandConfirm)
	assert.Equal(t, 1, s.Round())
	assert.Equal(t, types.ModeChoosing, s.Mode())
}

func TestInteraction_NextRoundConfirm(t *testing.T) {
	s := newTestSession(t, 6, nil)

	handleAll(t, s, types.CommandCycleMode)
	require.Equal(t, types.ModeNextRound, s.Mode())

	handleAll(t, s, types.CommandMoveUp, types.CommandDelete)
	assert.Zero(t, s.Round(), "下一回合模式只响应确认")

	handleAll(t, s, types.CommandConfirm)
	assert.Equal(t, 1, s.Round())
	assert.Equal(t, types.ModePlacing, s.Mode())
}

func TestInteraction_AdvanceRoundKeepsMode(t *testing.T) {
	s := newTestSession(t, 6, nil)
	handleAll(t, s, types.CommandConfirm)

	handleAll(t, s, types.CommandAdvanceRound)
	assert.Equal(t, 1, s.Round())
	assert.Equal(t, types.ModePlacing, s.Mode())
}

func TestInteraction_Delete(t *testing.T) {
	s := newTestSession(t, 6, nil)
	handleAll(t, s, types.CommandConfirm, types.CommandConfirm)
	require.Equal(t, 1, s.Hand().Len())

	t.Run("空格子无效果", func(t *testing.T) {
		handleAll(t, s, types.CommandCycleMode, types.CommandCycleMode, types.CommandMoveLeft, types.CommandDelete)
		assert.Equal(t, 1, s.Hand().Len())
		handleAll(t, s, types.CommandMoveRight)
	})

	t.Run("刚种下的植物可撤回", func(t *testing.T) {
		cur := s.Cursor()
		placed, err := s.Board().Cell(cur.X, cur.Y)
		require.NoError(t, err)
		require.Equal(t, types.CellJustPlaced, placed.Stage)

		handleAll(t, s, types.CommandDelete)
		assert.Zero(t, s.Board().Occupied())
		require.Equal(t, 2, s.Hand().Len())
		assert.Equal(t, placed.Plant, s.Hand().Plants()[1], "撤回的植物追加到手牌末尾")
	})

	t.Run("生长中的植物不可撤回", func(t *testing.T) {
		handleAll(t, s, types.CommandCycleMode, types.CommandConfirm, types.CommandConfirm)
		_, err := s.AdvanceRound()
		require.NoError(t, err)

		handleAll(t, s, types.CommandCycleMode, types.CommandCycleMode, types.CommandDelete)
		require.Equal(t, types.ModePlacing, s.Mode())
		assert.Equal(t, 1, s.Board().Occupied())
		assert.Equal(t, 1, s.Hand().Len())
	})
}

func TestInteraction_DeleteReturnsSameInstance(t *testing.T) {
	s := newTestSession(t, 6, nil)
	shrub := mustSpecies(t, s.Catalog(), "Shrub")
	plant := PlantInstance{Species: shrub, Age: 3, Size: 5}

	cur := s.Cursor()
	require.NoError(t, s.Board().Place(cur.X, cur.Y, plant))
	handleAll(t, s, types.CommandCycleMode, types.CommandCycleMode)
	require.Equal(t, types.ModePlacing, s.Mode())

	handleAll(t, s, types.CommandDelete)

	plants := s.Hand().Plants()
	require.Len(t, plants, 3)
	last := plants[len(plants)-1]
	assert.Same(t, shrub, last.Species)
	assert.Equal(t, 3, last.Age)
	assert.Equal(t, 5, last.Size)
	assert.Equal(t, "Grass", plants[0].Species.Name, "原有手牌顺序不变")
	assert.Equal(t, "Grass", plants[1].Species.Name)

	c, err := s.Board().Cell(cur.X, cur.Y)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestInteraction_QuitIgnoresLaterCommands(t *testing.T) {
	s := newTestSession(t, 6, nil)

	handleAll(t, s, types.CommandQuit)
	assert.True(t, s.Finished())

	handleAll(t, s, types.CommandConfirm, types.CommandAdvanceRound)
	assert.Equal(t, types.ModeChoosing, s.Mode())
	assert.Zero(t, s.Round())
}

func TestInteraction_PointAt(t *testing.T) {
	s := newTestSession(t, 4, nil)

	t.Run("选择模式下无效果", func(t *testing.T) {
		moved, err := s.PointAt(0, 0)
		require.NoError(t, err)
		assert.False(t, moved)
		assert.Equal(t, Cursor{X: 2, Y: 2}, s.Cursor())
	})

	t.Run("种植模式下移动光标并种下", func(t *testing.T) {
		handleAll(t, s, types.CommandConfirm)
		moved, err := s.PointAt(0, 3)
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, Cursor{X: 0, Y: 3}, s.Cursor())

		c, err := s.Board().Cell(0, 3)
		require.NoError(t, err)
		assert.Equal(t, types.CellJustPlaced, c.Stage)
		assert.Equal(t, types.ModeChoosing, s.Mode())
		assert.Equal(t, 1, s.Hand().Len())
	})

	t.Run("越界坐标忽略", func(t *testing.T) {
		handleAll(t, s, types.CommandConfirm)
		moved, err := s.PointAt(4, 0)
		require.NoError(t, err)
		assert.False(t, moved)
		assert.Equal(t, Cursor{X: 0, Y: 3}, s.Cursor())
		assert.Equal(t, types.ModePlacing, s.Mode())
	})

	t.Run("点击已占用格子保留待种植植物", func(t *testing.T) {
		moved, err := s.PointAt(0, 3)
		require.NoError(t, err)
		assert.True(t, moved)
		_, ok := s.Pending()
		assert.True(t, ok)
		assert.Equal(t, types.ModePlacing, s.Mode())
		assert.Equal(t, 1, s.Board().Occupied())
	})
}
