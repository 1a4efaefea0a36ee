package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/decker502/forest/pkg/app"
	"github.com/decker502/forest/pkg/config"
	"github.com/decker502/forest/pkg/embedded"
	"github.com/decker502/forest/pkg/game"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadAppConfig(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "forest: %v\n", err)
		os.Exit(2)
	}
	setupLogging(cfg.LogLevel)

	embedded.Init(dataFS)

	catalogCfg, source, err := config.ResolveCatalogConfig(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Str("source", source).Msg("failed to load species catalog")
	}
	catalog, err := game.NewPlantCatalog(catalogCfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", source).Msg("invalid species catalog")
	}
	log.Info().Str("source", source).Int("species", catalog.Len()).Msg("species catalog loaded")

	settings := openSettings()
	boardSize := settings.ResolveBoardSize(cfg.BoardSize, cfg.BoardSizeExplicit)

	session, err := game.NewSession(catalog, game.SessionConfig{
		BoardSize:    boardSize,
		StartingHand: cfg.StartingHand,
		Random:       game.NewSeededRandom(cfg.Seed),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session")
	}

	gameApp, err := app.NewApp(app.Config{Session: session, Settings: settings})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create app")
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Forest")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal().Err(err).Msg("game loop exited")
	}
	log.Info().Float64("score", session.Score()).Int("round", session.Round()).Msg("bye")
}

// setupLogging 配置全局 zerolog
// 控制台输出，级别解析失败时保持 info
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// openSettings 打开偏好设置存储
// gdata 不可用时使用降级模式（仅内存设置）
func openSettings() *game.SettingsManager {
	gdataManager, err := gdata.Open(gdata.Config{AppName: "forest"})
	if err != nil {
		log.Warn().Err(err).Msg("settings storage unavailable, using defaults")
		gdataManager = nil
	}

	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create settings manager")
	}
	return settings
}
