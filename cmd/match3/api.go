package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/server"
	"github.com/vovakirdan/match3/internal/storage"
)

var (
	flagHTTPAddr string
	flagMaxGames int
	flagVerbose  bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the JSON HTTP API",
	Long: `Start an HTTP server that hosts games for remote clients.

Routes:
  POST   /api/v1/games                create a game {game|shape, level, seed, difficulty, player}
  GET    /api/v1/games/{id}           current board, score and timer
  POST   /api/v1/games/{id}/swap      swap {index, dx, dy}
  POST   /api/v1/games/{id}/tick      advance the countdown {ticks}
  POST   /api/v1/games/{id}/shuffle   shuffle the board
  POST   /api/v1/games/{id}/hint      reveal the hint
  POST   /api/v1/games/{id}/restart   deal a new board
  DELETE /api/v1/games/{id}           drop the game
  GET    /api/v1/scores/{game}        top scores
  GET    /healthz                     liveness

Examples:
  match3 api
  match3 api --http :9000 --difficulty hard
  match3 api --db ./scores.db --verbose`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address (host:port)")
	apiCmd.Flags().IntVar(&flagMaxGames, "max-games", 1024, "Maximum number of live games (0 = unlimited)")
	apiCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log every request")
	apiCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	apiCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3-api",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		logger.Fatal("invalid difficulty", "error", err)
	}
	if flagDifficulty == "" {
		preset = ""
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	cfg := server.DefaultConfig()
	cfg.Address = flagHTTPAddr
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = preset
	cfg.MaxGames = flagMaxGames

	srv, err := server.New(cfg, store, logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		logger.Fatal("cannot create server", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := srv.ListenAndServe(ctx)
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", runErr)
		os.Exit(1)
	}
}
