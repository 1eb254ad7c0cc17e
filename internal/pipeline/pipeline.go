// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline assembles enriched venue records from primary source
// data and writes the consolidated dataset.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/venue-engine/internal/classify"
	"github.com/pdiddy/venue-engine/internal/hygiene"
	"github.com/pdiddy/venue-engine/internal/normalize"
	"github.com/pdiddy/venue-engine/pkg/types"
)

// Lookup resolves a venue's hygiene record. Satisfied by *hygiene.Client;
// tests substitute a stub.
type Lookup interface {
	Lookup(ctx context.Context, name string, postcode *string) (*types.HygieneRecord, hygiene.Outcome, error)
}

// Summary holds counters from one enrichment run.
type Summary struct {
	Total      int
	Duplicates int

	// Hygiene lookup outcomes.
	Found      int
	NotFound   int
	Cached     int
	CachedMiss int
	Skipped    int
	Failed     int

	Coverage   types.Coverage
	StartedAt  time.Time
	FinishedAt time.Time
}

// Runner executes the enrichment pipeline. Venues are processed strictly
// in sequence; the hygiene lookup's rate limit makes the loop the only
// safe concurrency model.
type Runner struct {
	cfg        types.PipelineConfig
	classifier *classify.Classifier
	lookup     Lookup
	cache      *hygiene.Cache

	// now is swapped out in tests for reproducible timestamps.
	now func() time.Time
}

// NewRunner builds a Runner. lookup and cache may be nil when hygiene
// lookups are disabled.
func NewRunner(cfg types.PipelineConfig, classifier *classify.Classifier, lookup Lookup, cache *hygiene.Cache) *Runner {
	return &Runner{
		cfg:        cfg,
		classifier: classifier,
		lookup:     lookup,
		cache:      cache,
		now:        time.Now,
	}
}

// Run reads the input file, enriches every record, and writes the dataset
// and summary files. Per-venue problems are logged and absorbed; only
// input and persistence failures abort the run. Progress is written to w.
func (r *Runner) Run(ctx context.Context, w io.Writer) (Summary, error) {
	sum := Summary{StartedAt: r.now()}

	records, err := ReadPrimary(r.cfg.InputPath)
	if err != nil {
		return sum, err
	}
	fmt.Fprintf(w, "loaded %d primary records from %s\n", len(records), r.cfg.InputPath)

	flushEvery := r.cfg.Hygiene.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 25
	}

	seen := make(map[string]bool, len(records))
	venues := make([]types.EnrichedVenue, 0, len(records))

	for _, rec := range records {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}

		if rec.PlaceID != "" && seen[rec.PlaceID] {
			fmt.Fprintf(w, "duplicate: %s (%s), keeping first\n", rec.Name, rec.PlaceID)
			sum.Duplicates++
			continue
		}
		seen[rec.PlaceID] = true

		venue := r.enrichOne(ctx, rec, w, &sum)
		venues = append(venues, venue)
		sum.Total++
		addCoverage(&sum.Coverage, venue)

		// Periodic flush so an interrupted run keeps its lookups. The
		// cadence counts processed venues; skipped duplicates do not
		// consume flush slots.
		if r.cache != nil && sum.Total%flushEvery == 0 {
			if err := r.cache.Flush(); err != nil {
				fmt.Fprintf(w, "warning: cache flush failed: %v\n", err)
			}
		}
	}

	if r.cache != nil {
		if err := r.cache.Flush(); err != nil {
			fmt.Fprintf(w, "warning: final cache flush failed: %v\n", err)
		}
	}

	sum.FinishedAt = r.now()
	ds := r.buildDataset(venues, sum)

	if err := WriteDataset(r.cfg.OutputPath, ds); err != nil {
		return sum, err
	}
	if r.cfg.SummaryPath != "" {
		if err := WriteSummary(r.cfg.SummaryPath, ds, sum); err != nil {
			return sum, err
		}
	}

	printSummary(w, ds, sum)
	return sum, nil
}

// enrichOne runs the synchronous normalization steps and the hygiene
// lookup for a single record. It always returns a venue; failed sub-steps
// leave their fields at null or sentinel values.
func (r *Runner) enrichOne(ctx context.Context, rec types.PrimaryRecord, w io.Writer, sum *Summary) types.EnrichedVenue {
	if rec.Name == "" {
		fmt.Fprintf(w, "warning: record %s has no name, emitting with sentinels\n", rec.PlaceID)
	}

	loc := normalize.Address(rec.FormattedAddress)

	summary := ""
	if rec.EditorialSummary != nil {
		summary = rec.EditorialSummary.Overview
	}
	attrs := r.classifier.Infer(rec.Name, rec.Types, summary)

	photos := rec.Photos
	if len(photos) > types.MaxPhotos {
		photos = photos[:types.MaxPhotos]
	}

	venue := types.EnrichedVenue{
		PlaceID:          rec.PlaceID,
		Slug:             normalize.Slug(rec.Name, rec.PlaceID),
		Name:             rec.Name,
		Address:          rec.FormattedAddress,
		Postcode:         loc.Postcode,
		Area:             loc.Area,
		Borough:          loc.Borough,
		Lat:              rec.Geometry.Location.Lat,
		Lng:              rec.Geometry.Location.Lng,
		Cuisines:         attrs.Cuisines,
		Dietary:          attrs.Dietary,
		Categories:       attrs.Categories,
		PriceLevel:       rec.PriceLevel,
		PriceRange:       types.PriceRange(rec.PriceLevel),
		Rating:           rec.Rating,
		UserRatingsTotal: rec.UserRatingsTotal,
		Photos:           photos,
		Website:          rec.Website,
		Phone:            rec.Phone,
		OpeningHours:     rec.OpeningHours,
		CapturedAt:       rec.CapturedAt,
		UpdatedAt:        r.now(),
	}

	if r.cfg.SkipHygiene || r.lookup == nil {
		fmt.Fprintf(w, "enriched: %s (hygiene disabled)\n", displayName(rec))
		return venue
	}

	hrec, outcome, err := r.lookup.Lookup(ctx, rec.Name, loc.Postcode)
	if err != nil {
		// Swallowed by policy: a registry failure must not sink the
		// venue, but it is logged here for operator visibility.
		fmt.Fprintf(w, "hygiene %s: %s (%s): %v\n", outcome, displayName(rec), rec.PlaceID, err)
	} else {
		fmt.Fprintf(w, "hygiene %s: %s\n", outcome, displayName(rec))
	}

	switch outcome {
	case hygiene.OutcomeFound:
		sum.Found++
	case hygiene.OutcomeNotFound:
		sum.NotFound++
	case hygiene.OutcomeCached:
		sum.Cached++
	case hygiene.OutcomeCachedMiss:
		sum.CachedMiss++
	case hygiene.OutcomeSkipped:
		sum.Skipped++
	case hygiene.OutcomeFailed:
		sum.Failed++
	}

	if outcome != hygiene.OutcomeSkipped {
		checkedAt := r.now()
		venue.FSACheckedAt = &checkedAt
	}
	if hrec != nil {
		rating := hrec.RatingValue
		venue.FSARating = &rating
		venue.FSADetails = hrec
	}
	return venue
}

// buildDataset assembles the output envelope with coverage percentages
// and breakdowns.
func (r *Runner) buildDataset(venues []types.EnrichedVenue, sum Summary) *types.Dataset {
	ds := &types.Dataset{
		LastUpdated:     sum.FinishedAt,
		TotalVenues:     len(venues),
		Coverage:        sum.Coverage,
		CoveragePercent: sum.Coverage.Percent(len(venues)),
		ByCuisine:       make(map[string]int),
		ByBorough:       make(map[string]int),
		ByCategory:      make(map[string]int),
		Venues:          venues,
	}
	for _, v := range venues {
		for _, c := range v.Cuisines {
			ds.ByCuisine[c]++
		}
		for _, c := range v.Categories {
			ds.ByCategory[c]++
		}
		ds.ByBorough[v.Borough]++
	}
	return ds
}

// addCoverage bumps each counter exactly once per venue per field.
func addCoverage(cov *types.Coverage, v types.EnrichedVenue) {
	if v.Rating != nil {
		cov.Rating++
	}
	if v.FSARating != nil {
		cov.FSARating++
	}
	if len(v.Photos) > 0 {
		cov.Photos++
	}
	if v.Website != "" {
		cov.Website++
	}
	if v.Phone != "" {
		cov.Phone++
	}
	if len(v.OpeningHours) > 0 {
		cov.OpeningHours++
	}
}

func displayName(rec types.PrimaryRecord) string {
	if rec.Name != "" {
		return rec.Name
	}
	if rec.PlaceID != "" {
		return rec.PlaceID
	}
	return "(unnamed)"
}

func printSummary(w io.Writer, ds *types.Dataset, sum Summary) {
	fmt.Fprintf(w, "\nRun summary: %d venues", ds.TotalVenues)
	if sum.Duplicates > 0 {
		fmt.Fprintf(w, " (%d duplicates dropped)", sum.Duplicates)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  hygiene: %d found, %d not found, %d cached, %d cached-miss, %d skipped, %d failed\n",
		sum.Found, sum.NotFound, sum.Cached, sum.CachedMiss, sum.Skipped, sum.Failed)
	pct := ds.CoveragePercent
	fmt.Fprintf(w, "  coverage: rating %.1f%%, fsa %.1f%%, photos %.1f%%, website %.1f%%, phone %.1f%%, hours %.1f%%\n",
		pct.Rating, pct.FSARating, pct.Photos, pct.Website, pct.Phone, pct.OpeningHours)
	fmt.Fprintf(w, "  elapsed: %s\n", sum.FinishedAt.Sub(sum.StartedAt).Round(time.Millisecond))
}
