// verify_round 无窗口回合验证工具
//
// 用固定种子运行一局会话，每回合结束后在终端打印棋盘、手牌和得分。
// 默认使用贪心自动种植：把手牌依次种到第一个空格子，然后推进回合。
//
// 用法：
//
//	go run ./cmd/verify_round -dim 6 -rounds 10 -seed 42
//	go run ./cmd/verify_round -script "c,up,c,n,n,n"
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/decker502/forest/pkg/config"
	"github.com/decker502/forest/pkg/game"
	"github.com/decker502/forest/pkg/types"
)

var (
	dim         = flag.Int("dim", config.DefaultBoardSize, "棋盘边长")
	rounds      = flag.Int("rounds", 10, "自动模式下推进的回合数")
	seed        = flag.Uint64("seed", 42, "随机种子")
	catalogPath = flag.String("catalog", "", "物种目录 YAML 文件（为空使用内置目录）")
	script      = flag.String("script", "", "逗号分隔的命令序列，给出时替代自动种植")
	verbose     = flag.Bool("verbose", false, "显示详细调试信息")
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
	justPlacedStyle = cellStyle.Foreground(lipgloss.Color("10"))
	growingStyle    = cellStyle.Foreground(lipgloss.Color("2"))
	expiringStyle   = cellStyle.Foreground(lipgloss.Color("11")).Bold(true)
	cursorStyle     = cellStyle.Reverse(true)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	catalogCfg, source, err := config.ResolveCatalogConfig(*catalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("source", source).Msg("failed to load species catalog")
	}
	catalog, err := game.NewPlantCatalog(catalogCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid species catalog")
	}

	session, err := game.NewSession(catalog, game.SessionConfig{
		BoardSize: *dim,
		Random:    game.NewSeededRandom(*seed),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session")
	}

	if *script != "" {
		cmds, err := parseScript(*script)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid script")
		}
		for _, cmd := range cmds {
			if err := session.Handle(cmd); err != nil {
				log.Fatal().Err(err).Str("command", cmd.String()).Msg("command failed")
			}
			if cmd == types.CommandAdvanceRound || cmd == types.CommandConfirm {
				fmt.Println(dimStyle.Render("> " + cmd.String()))
			}
		}
		fmt.Println(render(session.View(config.DefaultExpiringThreshold)))
		fmt.Println(dimStyle.Render(summary(session)))
		return
	}

	fmt.Println(dimStyle.Render(legend(session.Catalog())))

	for i := 0; i < *rounds; i++ {
		if err := autoplayRound(session); err != nil {
			log.Fatal().Err(err).Int("round", session.Round()).Msg("autoplay failed")
		}
		fmt.Println(render(session.View(config.DefaultExpiringThreshold)))
		fmt.Println(dimStyle.Render(summary(session)))
	}
}

// legend 返回物种字形图例，如 "w Grass  W Tall Grass"
func legend(c *game.PlantCatalog) string {
	parts := make([]string, 0, c.Len())
	for _, sp := range c.All() {
		parts = append(parts, fmt.Sprintf("%c %s", sp.Glyph, sp.Name))
	}
	return strings.Join(parts, "  ")
}

// summary 返回棋盘占用和手牌数量
func summary(s *game.Session) string {
	b := s.Board()
	return fmt.Sprintf("occupied %d/%d, hand %d", b.Occupied(), b.Width()*b.Height(), s.Hand().Len())
}

// parseScript 解析逗号分隔的命令序列
func parseScript(s string) ([]types.Command, error) {
	var cmds []types.Command
	for _, token := range strings.Split(s, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		cmd, ok := types.ParseCommand(token)
		if !ok {
			return nil, fmt.Errorf("unknown command %q", token)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// autoplayRound 把整手牌种到空格子上，然后推进一个回合
// 只通过命令驱动会话，与窗口外壳走同一条路径
func autoplayRound(s *game.Session) error {
	for i := 0; i < 3 && s.Mode() != types.ModeChoosing; i++ {
		if err := s.Handle(types.CommandCycleMode); err != nil {
			return err
		}
	}

	for s.Hand().Len() > 0 {
		tx, ty, ok := firstFreeCell(s.Board())
		if !ok {
			break
		}
		if err := s.Handle(types.CommandConfirm); err != nil {
			return err
		}
		for _, cmd := range pathTo(s.Cursor(), tx, ty) {
			if err := s.Handle(cmd); err != nil {
				return err
			}
		}
		if err := s.Handle(types.CommandConfirm); err != nil {
			return err
		}
	}

	if s.Mode() == types.ModePlacing {
		// 棋盘已满时回到选择模式
		if err := s.Handle(types.CommandCycleMode); err != nil {
			return err
		}
	}
	return s.Handle(types.CommandAdvanceRound)
}

// firstFreeCell 返回行优先顺序的第一个空格子
func firstFreeCell(b *game.Board) (int, int, bool) {
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.CanPlace(x, y) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// pathTo 返回把光标移动到 (x, y) 的命令序列
func pathTo(from game.Cursor, x, y int) []types.Command {
	var cmds []types.Command
	for dx := x - from.X; dx != 0; {
		if dx > 0 {
			cmds = append(cmds, types.CommandMoveRight)
			dx--
		} else {
			cmds = append(cmds, types.CommandMoveLeft)
			dx++
		}
	}
	for dy := y - from.Y; dy != 0; {
		if dy > 0 {
			cmds = append(cmds, types.CommandMoveDown)
			dy--
		} else {
			cmds = append(cmds, types.CommandMoveUp)
			dy++
		}
	}
	return cmds
}

// render 把渲染快照绘制为终端文本
func render(v game.View) string {
	rows := make([][]string, v.Height)
	styles := make([][]lipgloss.Style, v.Height)
	for y := range rows {
		rows[y] = make([]string, v.Width)
		styles[y] = make([]lipgloss.Style, v.Width)
	}
	for _, c := range v.Cells {
		rows[c.Y][c.X] = c.Text
		styles[c.Y][c.X] = cellViewStyle(c)
	}

	board := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= len(styles) || col < 0 || col >= len(styles[row]) {
				return cellStyle
			}
			return styles[row][col]
		})

	hand := make([]string, 0, len(v.Hand)+1)
	hand = append(hand, fmt.Sprintf("Hand (%d)", len(v.Hand)))
	for _, h := range v.Hand {
		prefix := "    "
		if h.Selected {
			prefix = config.HighlightSymbol
		}
		hand = append(hand, fmt.Sprintf("%s%c %s", prefix, h.Glyph, h.Name))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(v.Title),
		lipgloss.JoinHorizontal(lipgloss.Top, board.Render(), "  ", strings.Join(hand, "\n")),
	)
}

func cellViewStyle(c game.CellView) lipgloss.Style {
	switch {
	case c.Cursor:
		return cursorStyle
	case c.Stage == types.CellJustPlaced:
		return justPlacedStyle
	case c.Expiring:
		return expiringStyle
	case c.Stage == types.CellGrowing:
		return growingStyle
	}
	return cellStyle
}
