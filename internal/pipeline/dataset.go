// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/venue-engine/pkg/types"
)

// ReadPrimary loads the primary records file. Both a bare JSON array and
// a {"venues": [...]} envelope are accepted. Read or parse failures are
// fatal to the run; no output is written over the last good dataset.
func ReadPrimary(path string) ([]types.PrimaryRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}

	var records []types.PrimaryRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Venues []types.PrimaryRecord `json:"venues"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parsing input file %s: %w", path, err)
	}
	if envelope.Venues == nil {
		return nil, fmt.Errorf("input file %s has neither a venue array nor a venues field", path)
	}
	return envelope.Venues, nil
}

// WriteDataset writes the consolidated dataset as indented JSON via a
// temporary file and rename, so readers never observe a partial file.
func WriteDataset(path string, ds *types.Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dataset: %w", err)
	}
	return writeFileAtomic(path, data)
}

// coverageSummary is the on-disk shape of the coverage-only summary file,
// small enough to eyeball without parsing the full dataset.
type coverageSummary struct {
	LastUpdated     time.Time             `yaml:"last_updated"`
	TotalVenues     int                   `yaml:"total_venues"`
	Coverage        types.Coverage        `yaml:"coverage"`
	CoveragePercent types.CoveragePercent `yaml:"coverage_percent"`
	Hygiene         hygieneSummary        `yaml:"hygiene"`
	ByBorough       map[string]int        `yaml:"by_borough"`
}

type hygieneSummary struct {
	Found      int `yaml:"found"`
	NotFound   int `yaml:"not_found"`
	Cached     int `yaml:"cached"`
	CachedMiss int `yaml:"cached_miss"`
	Skipped    int `yaml:"skipped"`
	Failed     int `yaml:"failed"`
}

// WriteSummary writes the coverage summary as YAML, atomically.
func WriteSummary(path string, ds *types.Dataset, sum Summary) error {
	cs := coverageSummary{
		LastUpdated:     ds.LastUpdated,
		TotalVenues:     ds.TotalVenues,
		Coverage:        ds.Coverage,
		CoveragePercent: ds.CoveragePercent,
		Hygiene: hygieneSummary{
			Found:      sum.Found,
			NotFound:   sum.NotFound,
			Cached:     sum.Cached,
			CachedMiss: sum.CachedMiss,
			Skipped:    sum.Skipped,
			Failed:     sum.Failed,
		},
		ByBorough: ds.ByBorough,
	}
	data, err := yaml.Marshal(&cs)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic writes data to path via a temp file in the same
// directory and a rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".dataset-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, writeErr)
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
