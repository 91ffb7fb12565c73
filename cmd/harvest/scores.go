package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/harvest/internal/registry"
	"github.com/vovakirdan/harvest/internal/storage"
)

var flagSubmissions bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a mode. Without a mode, show a summary
of every mode that has been played.

Examples:
  harvest scores
  harvest scores harvest_moves
  harvest scores harvest_timed --submissions`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagSubmissions, "submissions", false, "Show named submissions instead of all games")
}

func runScores(_ *cobra.Command, args []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("cannot open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		err = printStats(store)
	} else {
		err = printScores(store, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printStats(store *storage.Store) error {
	stats, err := store.AllModeStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'harvest play' to start one!")
		return nil
	}

	modes := make([]string, 0, len(stats))
	for m := range stats {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	fmt.Printf("  %-16s  %6s  %6s  %8s  %7s  %s\n", "Mode", "Games", "Best", "Average", "Moves", "Last played")
	fmt.Printf("  %-16s  %6s  %6s  %8s  %7s  %s\n", "----", "-----", "----", "-------", "-----", "-----------")
	for _, m := range modes {
		st := stats[m]
		fmt.Printf("  %-16s  %6d  %6d  %8.1f  %7d  %s\n",
			st.Mode, st.GamesCount, st.HighScore, st.AvgScore, st.TotalMoves,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printScores(store *storage.Store, gameID string) error {
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'harvest list' to see available modes)", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	if flagSubmissions {
		return printSubmissions(store, gameID, game.Title())
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'harvest play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Moves", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-6d  %s\n", i+1, entry.Score, entry.Moves, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printSubmissions(store *storage.Store, gameID, title string) error {
	subs, err := store.TopSubmissions(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Submissions - %s\n", title)
	fmt.Println()

	if len(subs) == 0 {
		fmt.Println("No submissions yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-24s  %-10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-24s  %-10s  %s\n", "----", "----", "-----", "----")
	for i, s := range subs {
		fmt.Printf("  %-4d  %-24s  %-10d  %s\n", i+1, s.Name, s.Score, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
