package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "venue-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// HygieneConfig holds settings for the hygiene registry lookup stage.
type HygieneConfig struct {
	HTTPConfig `yaml:",inline"`

	// CachePath is the JSON cache file persisted across runs.
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// RequestDelay is the fixed pause after every attempted registry call
	// (cache hits excluded). Default 1s.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// FlushEvery flushes the cache to disk after this many processed
	// records, so an interrupted run keeps partial progress. Default 25.
	FlushEvery int `json:"flush_every" yaml:"flush_every"`

	// MaxRetries bounds 429 backoff retries per call (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// PlacesConfig holds settings for the places fetch stage.
type PlacesConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the places API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxPages bounds text search pagination (default 3, the API's own cap).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// PageDelay is the pause before following a next_page_token; the API
	// needs a short interval before the token becomes valid. Default 2s.
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// PipelineConfig groups settings for an enrichment run.
type PipelineConfig struct {
	// InputPath is the primary records file produced by the fetch stage.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the consolidated dataset consumed by the page layer.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// SummaryPath is the coverage-only summary file.
	SummaryPath string `json:"summary_path" yaml:"summary_path"`

	// TablesPath optionally overrides the built-in keyword tables (YAML).
	TablesPath string `json:"tables_path,omitempty" yaml:"tables_path,omitempty"`

	// SkipHygiene disables the registry lookup entirely.
	SkipHygiene bool `json:"skip_hygiene" yaml:"skip_hygiene"`

	Hygiene HygieneConfig `json:"hygiene" yaml:"hygiene"`
}

// HistoryConfig holds settings for the run-history store.
type HistoryConfig struct {
	// DBPath is the SQLite database recording one row per run.
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxRuns is the default number of runs listed by stats (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}
