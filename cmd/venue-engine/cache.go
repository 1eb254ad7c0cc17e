// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/venue-engine/internal/hygiene"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the hygiene lookup cache",
	Long: `Cache prints the size of the persistent hygiene lookup cache and how
many entries are negative markers (lookups that found nothing and will not
be retried).`,
	RunE: runCache,
}

func init() {
	cacheCmd.Flags().String("path", "", "cache file (default data/fsa-cache.json)")

	rootCmd.AddCommand(cacheCmd)
}

func runCache(cmd *cobra.Command, args []string) error {
	path := stringSetting(cmd, "path", "hygiene.cache_path", defaultCachePath)

	cache, err := hygiene.LoadCache(path)
	if err != nil {
		return err
	}

	negatives := cache.Negatives()
	fmt.Printf("%s: %d entries (%d with a rating, %d negative)\n",
		path, cache.Len(), cache.Len()-negatives, negatives)
	return nil
}
