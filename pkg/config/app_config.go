package config

import (
	"flag"
	"fmt"
	"strconv"
)

// 启动配置默认值
const (
	// DefaultBoardSize 默认棋盘边长（宽高相同）
	DefaultBoardSize = 6

	// DefaultStartingHand 初始手牌中第一个物种的数量
	DefaultStartingHand = 2

	// DefaultLogLevel 默认日志级别
	DefaultLogLevel = "info"
)

// 环境变量名（可以写在 .env 文件中）
const (
	EnvBoardSize    = "FOREST_DIM"
	EnvCatalogPath  = "FOREST_CATALOG"
	EnvSeed         = "FOREST_SEED"
	EnvStartingHand = "FOREST_HAND"
	EnvLogLevel     = "LOG_LEVEL"
)

// AppConfig 应用启动配置
// 优先级：命令行参数 > 环境变量 > 持久化偏好 > 默认值
type AppConfig struct {
	// BoardSize 棋盘边长，控制宽和高
	BoardSize int
	// BoardSizeExplicit 棋盘边长是否由命令行或环境变量显式给出
	// 为 false 时允许使用持久化偏好中的边长
	BoardSizeExplicit bool
	// CatalogPath 外部物种目录文件路径，为空则使用内置目录
	CatalogPath string
	// Seed 随机种子，0 表示每次启动随机
	Seed uint64
	// StartingHand 初始手牌数量
	StartingHand int
	// Verbose 启用 debug 级别日志
	Verbose bool
	// LogLevel zerolog 日志级别名称
	LogLevel string
}

// LoadAppConfig 解析命令行参数和环境变量
//
// 参数：
//   - args: 命令行参数（不含程序名）
//   - getenv: 环境变量读取函数，通常为 os.Getenv
//
// 返回：
//   - *AppConfig: 启动配置
//   - error: 参数或环境变量不合法时返回错误（启动期致命）
func LoadAppConfig(args []string, getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{
		BoardSize:    DefaultBoardSize,
		StartingHand: DefaultStartingHand,
		LogLevel:     DefaultLogLevel,
	}

	// 环境变量层
	if v := getenv(EnvBoardSize); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid board size %q: %w", EnvBoardSize, v, err)
		}
		cfg.BoardSize = size
		cfg.BoardSizeExplicit = true
	}
	if v := getenv(EnvCatalogPath); v != "" {
		cfg.CatalogPath = v
	}
	if v := getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid seed %q: %w", EnvSeed, v, err)
		}
		cfg.Seed = seed
	}
	if v := getenv(EnvStartingHand); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid starting hand %q: %w", EnvStartingHand, v, err)
		}
		cfg.StartingHand = n
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	// 命令行参数层
	fs := flag.NewFlagSet("forest", flag.ContinueOnError)
	fs.IntVar(&cfg.BoardSize, "dim", cfg.BoardSize, "棋盘边长（宽高相同）")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "物种目录 YAML 文件路径（为空使用内置目录）")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "随机种子（0 表示随机）")
	fs.IntVar(&cfg.StartingHand, "hand", cfg.StartingHand, "初始手牌数量")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "启用详细日志输出")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "dim" {
			cfg.BoardSizeExplicit = true
		}
	})

	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := validateAppConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateAppConfig 验证启动配置
func validateAppConfig(cfg *AppConfig) error {
	if cfg.BoardSize < 1 {
		return fmt.Errorf("board size must be a positive integer, got %d", cfg.BoardSize)
	}
	if cfg.StartingHand < 1 {
		return fmt.Errorf("starting hand must be at least 1, got %d", cfg.StartingHand)
	}
	return nil
}
