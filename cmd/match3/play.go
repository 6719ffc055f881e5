package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/games/gems"
	"github.com/vovakirdan/match3/internal/platform/tui"
	"github.com/vovakirdan/match3/internal/registry"
	"github.com/vovakirdan/match3/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Grab a gem, then press a direction to swap it
  Mouse drag   - Swap a gem with its neighbour
  X            - Shuffle the board
  H            - Show a hint
  P/Esc        - Pause
  R            - Restart
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five colors, 120 seconds
  normal - Six colors, 90 seconds
  hard   - Seven colors, 60 seconds
  fixed  - Keep the values from the config file

Without --level a level picker is shown first.

Examples:
  match3 play match3
  match3 play match3_heart --level 3
  match3 play match3 --difficulty hard
  match3 play match3 --config ./my-match3.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Board level 1-3 (0 = pick interactively)")
}

// applyGameFlags passes --config and --difficulty to the game package.
func applyGameFlags() error {
	if flagDifficulty != "" {
		if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
			return fmt.Errorf("%w (choose from %v)", err, config.Presets())
		}
	}
	gems.SetConfigPath(flagConfig)
	gems.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available games.")
		os.Exit(1)
	}
	if flagLevel < 0 || flagLevel > gems.LevelCount() {
		fmt.Fprintf(os.Stderr, "Error: level must be 1-%d %v\n", gems.LevelCount(), gems.LevelNames())
		os.Exit(1)
	}
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()
	gems.SetStartLevel(flagLevel)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Show the level picker unless --level was given
	if flagLevel == 0 {
		picked, quit, selErr := tui.RunLevelSelector(gameID, game.Title(), cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		// User pressed back or quit
		if quit || picked == 0 {
			return
		}
		if g, ok := game.(*gems.Game); ok {
			g.SetLevel(picked)
		}
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg, localSessionID())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// localSessionID tags scores from this terminal with the login name.
func localSessionID() string {
	return tui.NewSessionID(os.Getenv("USER"))
}
