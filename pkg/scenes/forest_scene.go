package scenes

import (
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/decker502/forest/pkg/config"
	"github.com/decker502/forest/pkg/game"
	"github.com/decker502/forest/pkg/types"
	"github.com/decker502/forest/pkg/utils"
)

// 配色
var (
	backgroundColor   = color.RGBA{R: 24, G: 28, B: 22, A: 255}
	soilColor         = color.RGBA{R: 62, G: 46, B: 32, A: 255}
	justPlacedColor   = color.RGBA{R: 150, G: 200, B: 120, A: 255}
	expiringColor     = color.RGBA{R: 222, G: 160, B: 44, A: 255}
	cursorColor       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	panelColor        = color.RGBA{R: 36, G: 40, B: 34, A: 255}
	nextRoundColor    = color.RGBA{R: 70, G: 120, B: 70, A: 255}
	nextRoundIdle     = color.RGBA{R: 50, G: 56, B: 48, A: 255}
	highlightBarColor = color.RGBA{R: 60, G: 80, B: 60, A: 255}
)

// 外壳按键，不经过引擎
const (
	// ToggleStatsKey 切换属性面板
	ToggleStatsKey = ebiten.KeyF1
	// ThresholdDownKey 降低即将成熟高亮阈值
	ThresholdDownKey = ebiten.KeyF2
	// ThresholdUpKey 提高即将成熟高亮阈值
	ThresholdUpKey = ebiten.KeyF3
)

// ForestScene 棋盘主场景
// 每个 tick 把按键转换为命令交给会话，Draw 只读取会话快照
type ForestScene struct {
	session  *game.Session
	settings *game.SettingsManager
	bindings map[ebiten.Key]types.Command
	layout   utils.BoardLayout
	logger   zerolog.Logger

	err error
}

// NewForestScene 创建棋盘场景
//
// 参数：
//   - session: 游戏会话
//   - settings: 偏好设置，可以是降级模式的管理器
//   - logger: 日志记录器
func NewForestScene(session *game.Session, settings *game.SettingsManager, logger zerolog.Logger) *ForestScene {
	board := session.Board()
	ax, ay, aw, ah := config.GetBoardArea()

	return &ForestScene{
		session:  session,
		settings: settings,
		bindings: utils.DefaultKeyBindings,
		layout:   utils.NewBoardLayout(ax, ay, aw, ah, board.Width(), board.Height(), config.CellFillRatio),
		logger:   logger.With().Str("component", "ForestScene").Logger(),
	}
}

// Update 读取本帧输入
func (s *ForestScene) Update(deltaTime float64) {
	if s.Finished() {
		return
	}
	if inpututil.IsKeyJustPressed(ToggleStatsKey) {
		s.toggleStats()
	}
	if inpututil.IsKeyJustPressed(ThresholdDownKey) {
		s.adjustThreshold(-1)
	}
	if inpututil.IsKeyJustPressed(ThresholdUpKey) {
		s.adjustThreshold(1)
	}
	s.apply(utils.PollCommands(s.bindings))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.click(ebiten.CursorPosition())
	}
}

// click 处理棋盘上的鼠标点击，种植模式下在点击的格子种下植物
func (s *ForestScene) click(screenX, screenY int) {
	if s.Finished() {
		return
	}
	col, row, ok := s.layout.ScreenToGridCoords(screenX, screenY)
	if !ok {
		return
	}
	if _, err := s.session.PointAt(col, row); err != nil {
		s.err = err
	}
}

// apply 按顺序把命令交给会话，遇到致命错误后停止处理
func (s *ForestScene) apply(cmds []types.Command) {
	for _, cmd := range cmds {
		if s.Finished() {
			return
		}
		if err := s.session.Handle(cmd); err != nil {
			s.err = err
			return
		}
	}
}

func (s *ForestScene) toggleStats() {
	show := !s.settings.GetSettings().ShowStats
	s.settings.SetShowStats(show)
	if err := s.settings.Save(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save settings")
	}
	s.logger.Debug().Bool("showStats", show).Msg("stats panel toggled")
}

func (s *ForestScene) adjustThreshold(delta int) {
	threshold, err := s.settings.AdjustExpiringThreshold(delta)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to save settings")
	}
	s.logger.Debug().Int("expiringThreshold", threshold).Msg("expiring threshold changed")
}

// Finished 报告会话是否已结束（退出命令或致命错误）
func (s *ForestScene) Finished() bool {
	return s.err != nil || s.session.Finished()
}

// Err 返回导致场景结束的致命错误
func (s *ForestScene) Err() error {
	return s.err
}

// Draw 绘制棋盘和侧边栏
func (s *ForestScene) Draw(screen *ebiten.Image) {
	settings := s.settings.GetSettings()
	view := s.session.View(settings.ExpiringThreshold)

	screen.Fill(backgroundColor)
	ebitenutil.DebugPrintAt(screen, view.Title, int(config.BoardMargin), int(config.BoardMargin))

	s.drawBoard(screen, view)
	s.drawSidePanel(screen, view, settings.ShowStats, settings.ExpiringThreshold)
}

func (s *ForestScene) drawBoard(screen *ebiten.Image, view game.View) {
	for _, cell := range view.Cells {
		rect := s.layout.CellRect(cell.X, cell.Y)

		if cell.Cursor {
			// 光标：在格子下方画一个更大的边框
			pad := (s.layout.CellSize - float64(rect.Dx())) / 2
			fillRect(screen, rect.Inset(-int(pad)), cursorColor)
		}
		fillRect(screen, rect, cellColor(cell))

		if cell.Stage != types.CellEmpty {
			// 文本以格子中心对齐
			cx, cy := s.layout.GridToScreenCoords(cell.X, cell.Y)
			tx := int(cx) - utf8.RuneCountInString(cell.Text)*config.DebugCharWidth/2
			ty := int(cy) - config.LineHeight/2
			ebitenutil.DebugPrintAt(screen, cell.Text, max(tx, rect.Min.X), ty)
		}
	}
}

func (s *ForestScene) drawSidePanel(screen *ebiten.Image, view game.View, showStats bool, threshold int) {
	px, py, pw, ph := config.GetSidePanelArea()
	fillRect(screen, image.Rect(int(px), int(py), int(px+pw), int(py+ph)), panelColor)

	x := int(px) + 8
	y := int(py) + 8
	ebitenutil.DebugPrintAt(screen, "Mode: "+view.Mode.String(), x, y)
	y += config.LineHeight
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Expiring: < %d (F2/F3)", threshold), x, y)
	y += config.LineHeight * 2

	// 手牌列表
	handHeight := int(ph * config.HandPanelRatio)
	capacity := handHeight/config.LineHeight - 3
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Hand (%d)", len(view.Hand)), x, y)
	y += config.LineHeight
	for _, line := range handLines(view, capacity) {
		if line.selected {
			fillRect(screen, image.Rect(x-4, y, int(px+pw)-4, y+config.LineHeight), highlightBarColor)
		}
		ebitenutil.DebugPrintAt(screen, line.text, x, y)
		y += config.LineHeight
	}

	// 属性面板
	y = int(py) + handHeight
	if showStats {
		for _, line := range statLines(view.Stats) {
			ebitenutil.DebugPrintAt(screen, line, x, y)
			y += config.LineHeight
		}
	}

	// 下一回合按钮
	boxTop := int(py + ph*(config.HandPanelRatio+config.StatsPanelRatio))
	box := image.Rect(x-4, boxTop+8, int(px+pw)-4, int(py+ph)-8)
	boxColor := nextRoundIdle
	if view.Mode == types.ModeNextRound {
		boxColor = nextRoundColor
	}
	fillRect(screen, box, boxColor)
	ebitenutil.DebugPrintAt(screen, "Next Round", box.Min.X+8, box.Min.Y+(box.Dy()-config.LineHeight)/2)
}

// handLine 手牌列表中的一行
type handLine struct {
	text     string
	selected bool
}

// handLines 返回手牌列表的可见行，保证选中项可见
// capacity 为可显示的行数，手牌为空时返回一行占位文本
func handLines(view game.View, capacity int) []handLine {
	if len(view.Hand) == 0 {
		return []handLine{{text: "(empty)"}}
	}
	if capacity < 1 {
		capacity = 1
	}

	start, end := visibleRange(len(view.Hand), view.Selected, capacity)
	lines := make([]handLine, 0, end-start)
	for i := start; i < end; i++ {
		entry := view.Hand[i]
		prefix := "    "
		if entry.Selected {
			prefix = config.HighlightSymbol
		}
		lines = append(lines, handLine{
			text:     fmt.Sprintf("%s%c %s", prefix, entry.Glyph, entry.Name),
			selected: entry.Selected,
		})
	}
	return lines
}

// visibleRange 返回长度为 n 的列表在 capacity 行窗口中的可见区间 [start, end)
// 选中项尽量居中，selected 为 -1 时从头显示
func visibleRange(n, selected, capacity int) (int, int) {
	if n <= capacity {
		return 0, n
	}
	if selected < 0 {
		return 0, capacity
	}
	start := selected - capacity/2
	if start < 0 {
		start = 0
	}
	if start+capacity > n {
		start = n - capacity
	}
	return start, start + capacity
}

// statLines 返回属性面板文本
func statLines(stats game.StatBlock) []string {
	if stats.Empty {
		return []string{stats.Title}
	}
	return []string{
		stats.Title,
		fmt.Sprintf("Max age:   %d", stats.MaxAge),
		fmt.Sprintf("Growth:    %d", stats.GrowthPerTurn),
		fmt.Sprintf("Points:    %g", stats.PointsPerSize),
		fmt.Sprintf("Projected: %g", stats.ProjectedScore),
	}
}

// cellColor 返回格子的填充颜色
// 生长中的格子按剩余寿命从深绿渐变到浅绿，即将成熟时为琥珀色
func cellColor(cell game.CellView) color.RGBA {
	switch {
	case cell.Stage == types.CellEmpty:
		return soilColor
	case cell.Stage == types.CellJustPlaced:
		return justPlacedColor
	case cell.Expiring:
		return expiringColor
	}

	f := cell.RemainingFraction
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return color.RGBA{
		R: uint8(40 + 60*(1-f)),
		G: uint8(110 + 90*(1-f)),
		B: uint8(40 + 20*(1-f)),
		A: 255,
	}
}

// fillRect 填充屏幕上的矩形区域
func fillRect(screen *ebiten.Image, rect image.Rectangle, clr color.Color) {
	rect = rect.Intersect(screen.Bounds())
	if rect.Empty() {
		return
	}
	screen.SubImage(rect).(*ebiten.Image).Fill(clr)
}
