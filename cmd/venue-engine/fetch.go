// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/venue-engine/internal/places"
	"github.com/pdiddy/venue-engine/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [query]",
	Short: "Fetch raw place records from the places API",
	Long: `Fetch runs a paged text search against the places API and writes the
results as the pipeline's primary input file. The API key is read from
.secrets/places-api-key unless --api-key is given.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("output", "", "input file to write (default data/places.json)")
	fetchCmd.Flags().String("api-key", "", "places API key (default: .secrets/places-api-key)")
	fetchCmd.Flags().Int("pages", 0, "maximum result pages to follow (default 3)")
	fetchCmd.Flags().Duration("page-delay", 0, "delay before following a page token (default 2s)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 8s)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one search query, e.g. \"restaurants in Shoreditch London\"")
	}
	query := args[0]

	apiKey, _ := cmd.Flags().GetString("api-key")
	pages, _ := cmd.Flags().GetInt("pages")
	pageDelay, _ := cmd.Flags().GetDuration("page-delay")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.PlacesConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIKey:    secretDefault("places-api-key", apiKey),
		MaxPages:  pages,
		PageDelay: pageDelay,
	}

	client := &http.Client{Timeout: cfg.Timeout}
	records, err := places.Fetch(context.Background(), client, query, cfg, os.Stdout)
	if err != nil {
		return err
	}

	output := stringSetting(cmd, "output", "pipeline.input_path", defaultInputPath)
	if err := places.WriteInput(output, records); err != nil {
		return err
	}
	fmt.Printf("wrote %d records to %s\n", len(records), output)
	return nil
}
