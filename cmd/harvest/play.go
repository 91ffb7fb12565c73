package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/harvest/internal/config"
	"github.com/vovakirdan/harvest/internal/games/harvest"
	"github.com/vovakirdan/harvest/internal/platform/tui"
	"github.com/vovakirdan/harvest/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagTheme      string
	flagSubmitURL  string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: harvest).

Modes:
  harvest        - Endless play, end the round with E
  harvest_moves  - Score as much as possible within a move limit
  harvest_timed  - Score as much as possible before the clock runs out

Controls:
  Arrows/WASD    - Move the cursor
  Space/Enter    - Pick the tile under the cursor
  Mouse click    - Pick a tile
  P              - Pause
  E              - End the round
  R              - Restart (after game over)
  Esc/B          - Back (when paused or over)
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - More fruit on the board, 40 moves, 4 minutes
  normal - 30 moves, 3 minutes
  hard   - More vegetables mixed in, 20 moves, 2 minutes
  fixed  - Use the config file exactly as written

Examples:
  harvest play
  harvest play harvest_moves --difficulty easy
  harvest play harvest_timed --theme mono
  harvest play --config ./my-harvest.yaml
  harvest play --submit-url https://scores.example.com/api/scores`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom Harvest config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().StringVar(&flagTheme, "theme", "", "Tile theme name or path to a theme YAML")
		c.Flags().StringVar(&flagSubmitURL, "submit-url", "", "Also post score submissions to this URL")
	}
}

// applyGameFlags hands the game flags to the harvest package. A custom
// config is loaded once here so mistakes are reported before the screen
// switches to the game.
func applyGameFlags() error {
	if flagConfig != "" {
		if _, err := config.LoadHarvest(flagConfig); err != nil {
			return err
		}
	}
	harvest.SetConfigPath(flagConfig)
	harvest.SetTheme(flagTheme)
	return harvest.SetDifficultyPreset(flagDifficulty)
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := string(harvest.ModeClassic)
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'harvest list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	opts := tui.Options{
		Store:  store,
		Sink:   tui.BuildSink(store, flagSubmitURL),
		Logger: logger,
	}

	logger.Info("starting game", "mode", gameID, "seed", flagSeed)
	_, runErr := tui.Run(game, opts, terminalConfig())

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
