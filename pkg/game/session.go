package game

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/decker502/forest/pkg/config"
	"github.com/decker502/forest/pkg/types"
)

// SessionConfig 游戏会话配置
type SessionConfig struct {
	// BoardSize 棋盘边长（宽高相同）
	BoardSize int
	// StartingHand 初始手牌中第一个物种的数量，<=0 时使用默认值
	StartingHand int
	// Random 掉落判定的随机源，为 nil 时使用随机种子
	Random RandomSource
	// Logger 日志记录器，为 nil 时使用全局 logger
	Logger *zerolog.Logger
}

// Session 一局游戏
// 聚合物种目录、棋盘、手牌、回合引擎和交互状态机；整个生命周期由一个控制循环独占
type Session struct {
	catalog *PlantCatalog
	board   *Board
	hand    *Hand
	engine  *RoundEngine
	machine *InteractionStateMachine
	logger  zerolog.Logger
}

// NewSession 创建新的游戏会话
// 棋盘全部为空，手牌为若干株目录中的第一个物种
//
// 返回：
//   - error: 目录为空或棋盘尺寸不合法时返回错误
func NewSession(catalog *PlantCatalog, cfg SessionConfig) (*Session, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("%w: session requires a non-empty catalog", config.ErrInvalidCatalog)
	}

	logger := log.Logger.With().Str("component", "session").Logger()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	board, err := NewBoard(cfg.BoardSize, cfg.BoardSize)
	if err != nil {
		return nil, err
	}

	handSize := cfg.StartingHand
	if handSize <= 0 {
		handSize = config.DefaultStartingHand
	}
	first := catalog.First()
	starting := make([]PlantInstance, handSize)
	for i := range starting {
		starting[i] = NewPlantInstance(first)
	}
	hand := NewHand(starting...)

	rng := cfg.Random
	if rng == nil {
		rng = NewSeededRandom(0)
	}

	engine := NewRoundEngine(board, hand, NewDropResolver(catalog, rng), logger)
	machine := NewInteractionStateMachine(board, hand, engine, logger)

	logger.Info().
		Int("boardSize", cfg.BoardSize).
		Int("species", catalog.Len()).
		Str("startingPlant", first.Name).
		Int("startingHand", handSize).
		Msg("session created")

	return &Session{
		catalog: catalog,
		board:   board,
		hand:    hand,
		engine:  engine,
		machine: machine,
		logger:  logger,
	}, nil
}

// Handle 处理一条输入命令
func (s *Session) Handle(cmd types.Command) error {
	if err := s.machine.Handle(cmd); err != nil {
		s.logger.Error().Err(err).Str("command", cmd.String()).Msg("command failed")
		return err
	}
	return nil
}

// PointAt 处理指针点击棋盘格 (x, y)，见 InteractionStateMachine.PointAt
func (s *Session) PointAt(x, y int) (bool, error) {
	moved, err := s.machine.PointAt(x, y)
	if err != nil {
		s.logger.Error().Err(err).Int("x", x).Int("y", y).Msg("pointer placement failed")
	}
	return moved, err
}

// AdvanceRound 直接推进一个回合（不改变模式）
func (s *Session) AdvanceRound() (RoundResult, error) {
	return s.engine.Advance()
}

// Catalog 返回物种目录
func (s *Session) Catalog() *PlantCatalog { return s.catalog }

// Board 返回棋盘
func (s *Session) Board() *Board { return s.board }

// Hand 返回手牌
func (s *Session) Hand() *Hand { return s.hand }

// Mode 返回当前交互模式
func (s *Session) Mode() types.Mode { return s.machine.Mode() }

// Cursor 返回棋盘光标
func (s *Session) Cursor() Cursor { return s.machine.Cursor() }

// Pending 返回待种植的植物
func (s *Session) Pending() (PlantInstance, bool) { return s.machine.Pending() }

// Score 返回累计得分
func (s *Session) Score() float64 { return s.engine.Score() }

// Round 返回回合数
func (s *Session) Round() int { return s.engine.Round() }

// Finished 报告是否已收到退出命令
func (s *Session) Finished() bool { return s.machine.Finished() }
