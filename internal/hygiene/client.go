// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hygiene resolves venues against the food hygiene rating
// registry, joined by name and postcode, with a persistent lookup cache.
package hygiene

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/venue-engine/internal/httputil"
	"github.com/pdiddy/venue-engine/pkg/types"
)

// registryBase is the hygiene registry Establishments endpoint. Declared
// as a var so tests can substitute an httptest server.
var registryBase = "https://api.ratings.food.gov.uk/Establishments"

// Outcome classifies a single lookup.
type Outcome int

const (
	// OutcomeFound is a fresh registry hit.
	OutcomeFound Outcome = iota
	// OutcomeNotFound is a fresh registry miss (zero establishments).
	OutcomeNotFound
	// OutcomeCached is a cache hit with a record.
	OutcomeCached
	// OutcomeCachedMiss is a cache hit on a negative marker.
	OutcomeCachedMiss
	// OutcomeSkipped means no postcode was available; no call was made.
	OutcomeSkipped
	// OutcomeFailed is a network, HTTP, or parse failure. The pipeline
	// treats it as not-found after logging.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeCached:
		return "cached"
	case OutcomeCachedMiss:
		return "cached-miss"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Attempted reports whether the outcome involved a network call, and so
// whether the rate-limit delay applies.
func (o Outcome) Attempted() bool {
	return o == OutcomeFound || o == OutcomeNotFound || o == OutcomeFailed
}

// Client looks up hygiene ratings with caching and a fixed inter-call
// delay. Lookups are serialized by the pipeline; Client does no locking.
type Client struct {
	http  *http.Client
	cache *Cache
	cfg   types.HygieneConfig

	// sleep is swapped out in tests to avoid real delays.
	sleep func(time.Duration)
}

// NewClient builds a Client over an existing cache. The cache is owned by
// the caller, which is responsible for the final flush.
func NewClient(httpClient *http.Client, cache *Cache, cfg types.HygieneConfig) *Client {
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = time.Second
	}
	return &Client{
		http:  httpClient,
		cache: cache,
		cfg:   cfg,
		sleep: time.Sleep,
	}
}

// Lookup resolves a venue's hygiene record by name and postcode.
//
// A nil or empty postcode skips the lookup entirely (policy, not failure).
// Cache entries, including negative markers, short-circuit the network
// call. On a fresh call the first matching establishment wins; zero
// matches or any error yields a nil record, and the result (positive or
// negative) is written back to the cache so the same key is never queried
// twice. The error return exists for logging only; callers proceed as if
// not-found.
func (c *Client) Lookup(ctx context.Context, name string, postcode *string) (*types.HygieneRecord, Outcome, error) {
	if postcode == nil || *postcode == "" {
		return nil, OutcomeSkipped, nil
	}

	key := CacheKey(name, *postcode)
	if rec, ok := c.cache.Get(key); ok {
		if rec == nil {
			return nil, OutcomeCachedMiss, nil
		}
		return rec, OutcomeCached, nil
	}

	rec, err := c.query(ctx, name, *postcode)
	// Rate limit: pause after every attempted call, success or not.
	c.sleep(c.cfg.RequestDelay)

	if err != nil {
		c.cache.Put(key, nil)
		return nil, OutcomeFailed, err
	}

	c.cache.Put(key, rec)
	if rec == nil {
		return nil, OutcomeNotFound, nil
	}
	return rec, OutcomeFound, nil
}

// query performs one registry call. A response with no establishments
// returns (nil, nil): absence is data, not an error.
func (c *Client) query(ctx context.Context, name, postcode string) (*types.HygieneRecord, error) {
	params := url.Values{
		"name":    {canonical(name)},
		"address": {canonical(postcode)},
	}
	reqURL := registryBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-version", "2")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("registry request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned HTTP %d", resp.StatusCode)
	}

	var er establishmentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing registry response: %w", err)
	}

	if len(er.Establishments) == 0 {
		return nil, nil
	}

	est := er.Establishments[0]
	return &types.HygieneRecord{
		FHRSID:      est.FHRSID,
		RatingValue: est.RatingValue,
		RatingDate:  est.RatingDate,
		Authority:   est.LocalAuthorityName,
	}, nil
}

// Registry API JSON structures.
type establishmentsResponse struct {
	Establishments []establishment `json:"establishments"`
}

type establishment struct {
	FHRSID             int64  `json:"FHRSID"`
	BusinessName       string `json:"BusinessName"`
	RatingValue        string `json:"RatingValue"`
	RatingDate         string `json:"RatingDate"`
	LocalAuthorityName string `json:"LocalAuthorityName"`
	PostCode           string `json:"PostCode"`
}
