// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/venue-engine/internal/classify"
	"github.com/pdiddy/venue-engine/internal/history"
	"github.com/pdiddy/venue-engine/internal/hygiene"
	"github.com/pdiddy/venue-engine/internal/pipeline"
	"github.com/pdiddy/venue-engine/pkg/types"
)

const (
	defaultTimeout   = 8 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "venue-engine/0.1"

	defaultInputPath   = "data/places.json"
	defaultOutputPath  = "data/venues.json"
	defaultSummaryPath = "data/coverage.yaml"
	defaultCachePath   = "data/fsa-cache.json"
	defaultHistoryPath = "data/history.db"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich primary place records into the consolidated venue dataset",
	Long: `Enrich reads the primary records file, derives the normalized address,
slug, cuisines, dietary tags, and categories for every venue, looks up the
food hygiene rating by name and postcode, and writes the consolidated
dataset plus a coverage summary. The previous dataset is only replaced on
a fully successful run.`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().String("input", "", "primary records file (default data/places.json)")
	enrichCmd.Flags().String("output", "", "dataset output file (default data/venues.json)")
	enrichCmd.Flags().String("summary", "", "coverage summary file (default data/coverage.yaml)")
	enrichCmd.Flags().String("cache", "", "hygiene cache file (default data/fsa-cache.json)")
	enrichCmd.Flags().String("tables", "", "keyword tables override file (YAML)")
	enrichCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 8s)")
	enrichCmd.Flags().Duration("delay", 0, "delay after each hygiene registry call (default 1s)")
	enrichCmd.Flags().Int("flush-every", 0, "flush the cache every N records (default 25)")
	enrichCmd.Flags().Bool("skip-hygiene", false, "skip hygiene registry lookups")
	enrichCmd.Flags().Bool("no-history", false, "do not record this run in the history database")
	enrichCmd.Flags().String("db", "", "history database path (default data/history.db)")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDelay
	}
	flushEvery, _ := cmd.Flags().GetInt("flush-every")
	skipHygiene, _ := cmd.Flags().GetBool("skip-hygiene")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	cfg := types.PipelineConfig{
		InputPath:   stringSetting(cmd, "input", "pipeline.input_path", defaultInputPath),
		OutputPath:  stringSetting(cmd, "output", "pipeline.output_path", defaultOutputPath),
		SummaryPath: stringSetting(cmd, "summary", "pipeline.summary_path", defaultSummaryPath),
		TablesPath:  stringSetting(cmd, "tables", "pipeline.tables_path", ""),
		SkipHygiene: skipHygiene,
		Hygiene: types.HygieneConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: defaultUserAgent,
			},
			CachePath:    stringSetting(cmd, "cache", "hygiene.cache_path", defaultCachePath),
			RequestDelay: delay,
			FlushEvery:   flushEvery,
		},
	}

	classifier, err := classify.NewFromFile(cfg.TablesPath)
	if err != nil {
		return err
	}

	var (
		lookup pipeline.Lookup
		cache  *hygiene.Cache
	)
	if !cfg.SkipHygiene {
		cache, err = hygiene.LoadCache(cfg.Hygiene.CachePath)
		if err != nil {
			return err
		}
		client := &http.Client{Timeout: cfg.Hygiene.Timeout}
		lookup = hygiene.NewClient(client, cache, cfg.Hygiene)
	}

	runner := pipeline.NewRunner(cfg, classifier, lookup, cache)
	summary, err := runner.Run(context.Background(), os.Stdout)
	if err != nil {
		return err
	}

	if !noHistory {
		// Same resolution as the stats command so runs land where
		// stats will look for them.
		recordHistory(summary, stringSetting(cmd, "db", "history.db_path", defaultHistoryPath))
	}
	return nil
}

// recordHistory appends the run to the history database. History is
// advisory: failures warn but never fail the run.
func recordHistory(summary pipeline.Summary, dbPath string) {
	store, err := history.NewStore(types.HistoryConfig{DBPath: dbPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history store unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Record(context.Background(), summary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run history: %v\n", err)
	}
}
