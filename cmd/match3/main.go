// match3 is a terminal match-3 puzzle with local, SSH and HTTP front ends.
//
// Usage:
//
//	match3 list              - List games and board levels
//	match3 play <game>       - Play a game
//	match3 menu              - Start menu to pick games interactively
//	match3 serve             - Start SSH server for remote play
//	match3 api               - Start the JSON HTTP API
//	match3 sim               - Autoplay games and report statistics
//	match3 scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/match3/internal/core"
	// Import games to register them
	_ "github.com/vovakirdan/match3/internal/games/gems"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap gems in your terminal",
	Long: `Match-3 is a tile-swapping puzzle for the terminal. Line up three or more
gems of one color before the countdown runs out.

Available commands:
  list     - Show games and board levels
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  api      - Start the JSON HTTP API
  sim      - Autoplay games and print statistics
  scores   - View high scores

Examples:
  match3 list
  match3 play match3 --level 2
  match3 menu
  match3 serve --ssh :2222
  match3 api --http :8080
  match3 sim --games 1000 --workers 8
  match3 scores match3_heart`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}

	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}
