package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show high scores for a board",
	Long: `Display the top high scores for the specified board (default: 2048).

Examples:
  t2048 scores
  t2048 scores 2048-5x5 --limit 20
  t2048 scores --all
  t2048 scores 2048-3x3 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the board")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show statistics for every board")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := t2048.ClassicID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q (run 't2048 list' to see available boards)", gameID)
	}

	store, err := storage.Open(appConfig.Platform.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresAll:
		return printAllStats(store)
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return nil
	}

	return printScores(store, gameID)
}

func printScores(store *storage.Store, gameID string) error {
	title := gameID
	for _, g := range registry.List() {
		if g.ID == gameID {
			title = g.Title
		}
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %s\n", i+1, entry.Score, entry.MaxTile, entry.Moves, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Best tile: %d  Games: %d  Avg: %.0f\n",
		stats.HighScore, stats.BestTile, stats.GamesCount, stats.AvgScore)
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Println("Statistics")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-8s  %-6s  %-8s  %s\n", "Board", "Games", "Best", "Tile", "Avg", "Last played")
	fmt.Printf("  %-10s  %-6s  %-8s  %-6s  %-8s  %s\n", "-----", "-----", "----", "----", "---", "-----------")

	// Registry order keeps the table stable
	for _, g := range registry.List() {
		stats, ok := all[g.ID]
		if !ok {
			fmt.Printf("  %-10s  %-6d  %-8s  %-6s  %-8s  %s\n", g.ID, 0, "-", "-", "-", "never")
			continue
		}
		fmt.Printf("  %-10s  %-6d  %-8d  %-6d  %-8.0f  %s\n", g.ID, stats.GamesCount,
			stats.HighScore, stats.BestTile, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
