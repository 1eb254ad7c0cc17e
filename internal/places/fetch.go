// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package places fetches raw venue records from the places API text
// search endpoint and writes the pipeline's primary input file.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/venue-engine/pkg/types"
)

// textSearchBase is the places text search endpoint. Declared as a var so
// tests can substitute an httptest server.
var textSearchBase = "https://maps.googleapis.com/maps/api/place/textsearch/json"

const defaultMaxPages = 3

// Fetch runs a paged text search and returns the accumulated records,
// each stamped with the capture time. Fetch failures are fatal: without a
// complete result set there is no input file worth writing.
func Fetch(ctx context.Context, client *http.Client, query string, cfg types.PlacesConfig, w io.Writer) ([]types.PrimaryRecord, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("places API key is not set")
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	pageDelay := cfg.PageDelay
	if pageDelay <= 0 {
		pageDelay = 2 * time.Second
	}

	capturedAt := time.Now().UTC()
	var records []types.PrimaryRecord
	pageToken := ""

	for page := 1; page <= maxPages; page++ {
		if pageToken != "" {
			// The API rejects a next_page_token used too soon.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(pageDelay):
			}
		}

		resp, err := searchPage(ctx, client, query, pageToken, cfg)
		if err != nil {
			return nil, fmt.Errorf("text search page %d: %w", page, err)
		}

		fmt.Fprintf(w, "page %d: %d results\n", page, len(resp.Results))
		for _, rec := range resp.Results {
			rec.CapturedAt = capturedAt
			records = append(records, rec)
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	fmt.Fprintf(w, "fetched %d records for %q\n", len(records), query)
	return records, nil
}

// WriteInput writes records as the pipeline input file, atomically.
func WriteInput(path string, records []types.PrimaryRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".places-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing input file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func searchPage(ctx context.Context, client *http.Client, query, pageToken string, cfg types.PlacesConfig) (*textSearchResponse, error) {
	params := url.Values{
		"query": {query},
		"key":   {cfg.APIKey},
	}
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	}
	reqURL := textSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API returned HTTP %d", resp.StatusCode)
	}

	var tsr textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&tsr); err != nil {
		return nil, fmt.Errorf("parsing places response: %w", err)
	}

	// ZERO_RESULTS is a valid empty page, not a failure.
	if tsr.Status != "OK" && tsr.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places API status %s: %s", tsr.Status, tsr.ErrorMessage)
	}
	return &tsr, nil
}

// Places API JSON structures.
type textSearchResponse struct {
	Status        string                `json:"status"`
	ErrorMessage  string                `json:"error_message,omitempty"`
	NextPageToken string                `json:"next_page_token,omitempty"`
	Results       []types.PrimaryRecord `json:"results"`
}
