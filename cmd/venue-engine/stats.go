// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/venue-engine/internal/history"
	"github.com/pdiddy/venue-engine/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show coverage statistics from recent pipeline runs",
	Long: `Stats lists recent enrichment runs from the history database: venue
totals, per-field coverage, and hygiene lookup outcomes, newest first.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Int("limit", 0, "number of runs to show (default 20)")
	statsCmd.Flags().String("db", "", "history database path (default data/history.db)")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	dbPath := stringSetting(cmd, "db", "history.db_path", defaultHistoryPath)

	store, err := history.NewStore(types.HistoryConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, r := range runs {
		pct := r.Coverage.Percent(r.TotalVenues)
		fmt.Printf("run %d  %s  %d venues\n", r.ID, r.FinishedAt.Format("2006-01-02 15:04"), r.TotalVenues)
		fmt.Printf("  coverage: rating %.1f%%, fsa %.1f%%, photos %.1f%%, website %.1f%%, phone %.1f%%, hours %.1f%%\n",
			pct.Rating, pct.FSARating, pct.Photos, pct.Website, pct.Phone, pct.OpeningHours)
		fmt.Printf("  hygiene: %d found, %d not found, %d failed\n", r.Found, r.NotFound, r.Failed)
	}
	return nil
}
