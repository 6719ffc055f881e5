package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/match3"
	"github.com/vovakirdan/match3/internal/sim"
)

var (
	flagSimGames    int
	flagSimWorkers  int
	flagSimShape    string
	flagSimLevel    int
	flagSimMoves    int
	flagSimThink    int
	flagSimNoTimer  bool
	flagSimProgress bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Autoplay games and report statistics",
	Long: `Play many games without a human by always taking the hint move, then print
score, combo and rescue statistics. Game i is dealt with seed --seed + i, so a
run is reproducible for any worker count.

Examples:
  match3 sim --games 1000
  match3 sim --games 5000 --workers 8 --shape heart --level 3
  match3 sim --difficulty hard --think 2
  match3 sim --no-timer --moves 200`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 100, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.GOMAXPROCS(0), "Parallel workers")
	simCmd.Flags().StringVar(&flagSimShape, "shape", "normal", "Board shape: normal, heart")
	simCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Board level 1-3")
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 500, "Moves per game before it is abandoned")
	simCmd.Flags().IntVar(&flagSimThink, "think", 1, "Countdown ticks spent per move")
	simCmd.Flags().BoolVar(&flagSimNoTimer, "no-timer", false, "Disable the countdown")
	simCmd.Flags().BoolVar(&flagSimProgress, "progress", true, "Show a progress bar")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "match3-sim"})

	gameCfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			logger.Fatal("invalid difficulty", "error", err)
		}
		config.ApplyMatch3Preset(&gameCfg, preset)
	}

	shape, err := match3.ParseShape(flagSimShape)
	if err != nil {
		logger.Fatal("invalid shape", "error", err, "shapes", match3.Shapes())
	}

	opts := sim.DefaultOptions()
	opts.Games = flagSimGames
	opts.Workers = flagSimWorkers
	opts.Seed = flagSeed
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	opts.Shape = shape
	opts.Level = flagSimLevel
	opts.ViewportW = gameCfg.Board.ViewportW
	opts.ViewportH = gameCfg.Board.ViewportH
	opts.Settings = gameCfg.Settings()
	opts.MaxMoves = flagSimMoves
	opts.TicksPerMove = flagSimThink
	if flagSimNoTimer {
		opts.Settings.TimeLimit = 0
	}
	if flagSimProgress {
		opts.Progress = os.Stderr
	}

	logger.Info("simulating", "games", opts.Games, "workers", opts.Workers, "shape", shape, "level", opts.Level, "seed", opts.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := sim.Run(ctx, opts)
	if err != nil {
		logger.Fatal("simulation failed", "error", err)
	}
	fmt.Print(report.Table())
}
