// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model and per-stage configuration
// for the venue enrichment pipeline.
package types

import (
	"encoding/json"
	"time"
)

// MaxPhotos caps how many photo references are carried into the output.
const MaxPhotos = 3

// FallbackCuisine labels venues whose name and tags match no cuisine keyword.
const FallbackCuisine = "international"

// FallbackBorough labels venues whose address matches no known area or
// postcode prefix.
const FallbackBorough = "Central London"

// DietaryKeys is the fixed set of dietary tags every venue carries.
var DietaryKeys = []string{"halal", "vegan", "vegetarian", "gluten_free"}

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry mirrors the places API geometry envelope.
type Geometry struct {
	Location LatLng `json:"location"`
}

// PhotoRef is a single photo reference from the primary source.
type PhotoRef struct {
	Reference string `json:"photo_reference"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
}

// EditorialSummary carries the primary source's short venue description.
type EditorialSummary struct {
	Overview string `json:"overview,omitempty"`
}

// PrimaryRecord is one raw venue as exported from the places API.
// Read-only input; the pipeline never mutates it.
type PrimaryRecord struct {
	PlaceID          string            `json:"place_id"`
	Name             string            `json:"name"`
	FormattedAddress string            `json:"formatted_address"`
	Geometry         Geometry          `json:"geometry"`
	Rating           *float64          `json:"rating,omitempty"`
	UserRatingsTotal int               `json:"user_ratings_total,omitempty"`
	PriceLevel       *int              `json:"price_level,omitempty"`
	Types            []string          `json:"types,omitempty"`
	Photos           []PhotoRef        `json:"photos,omitempty"`
	OpeningHours     json.RawMessage   `json:"opening_hours,omitempty"`
	Website          string            `json:"website,omitempty"`
	Phone            string            `json:"formatted_phone_number,omitempty"`
	EditorialSummary *EditorialSummary `json:"editorial_summary,omitempty"`
	CapturedAt       time.Time         `json:"captured_at,omitempty"`
}

// HygieneRecord is the result of a hygiene registry lookup, joined to a
// venue by name and postcode. All fields come from the registry.
type HygieneRecord struct {
	FHRSID      int64  `json:"fhrs_id"`
	RatingValue string `json:"rating_value"`
	RatingDate  string `json:"rating_date,omitempty"`
	Authority   string `json:"authority,omitempty"`
}

// EnrichedVenue is one fully assembled output record, the unit of truth
// for every downstream page.
type EnrichedVenue struct {
	PlaceID string `json:"place_id"`
	Slug    string `json:"slug"`
	Name    string `json:"name"`

	Address  string  `json:"address"`
	Postcode *string `json:"postcode"`
	Area     *string `json:"area"`
	Borough  string  `json:"borough"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`

	Cuisines   []string        `json:"cuisines"`
	Dietary    map[string]bool `json:"dietary"`
	Categories []string        `json:"categories"`

	PriceLevel *int   `json:"price_level"`
	PriceRange string `json:"price_range"`

	Rating           *float64       `json:"rating"`
	UserRatingsTotal int            `json:"user_ratings_total"`
	FSARating        *string        `json:"fsa_rating"`
	FSADetails       *HygieneRecord `json:"fsa_details,omitempty"`

	Photos       []PhotoRef      `json:"photos,omitempty"`
	Website      string          `json:"website,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	OpeningHours json.RawMessage `json:"opening_hours,omitempty"`

	CapturedAt   time.Time  `json:"captured_at,omitempty"`
	FSACheckedAt *time.Time `json:"fsa_checked_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Coverage counts how many output venues carry each optional field.
// Each count equals the per-field presence summed over the venue list.
type Coverage struct {
	Rating       int `json:"rating"`
	FSARating    int `json:"fsa_rating"`
	Photos       int `json:"photos"`
	Website      int `json:"website"`
	Phone        int `json:"phone"`
	OpeningHours int `json:"opening_hours"`
}

// CoveragePercent expresses Coverage as percentages of total.
type CoveragePercent struct {
	Rating       float64 `json:"rating"`
	FSARating    float64 `json:"fsa_rating"`
	Photos       float64 `json:"photos"`
	Website      float64 `json:"website"`
	Phone        float64 `json:"phone"`
	OpeningHours float64 `json:"opening_hours"`
}

// Percent converts counts into percentages of total. A zero total yields
// all zeros.
func (c Coverage) Percent(total int) CoveragePercent {
	if total <= 0 {
		return CoveragePercent{}
	}
	pct := func(n int) float64 {
		return float64(n) / float64(total) * 100
	}
	return CoveragePercent{
		Rating:       pct(c.Rating),
		FSARating:    pct(c.FSARating),
		Photos:       pct(c.Photos),
		Website:      pct(c.Website),
		Phone:        pct(c.Phone),
		OpeningHours: pct(c.OpeningHours),
	}
}

// Dataset is the consolidated output document read by the page layer.
type Dataset struct {
	LastUpdated     time.Time       `json:"lastUpdated"`
	TotalVenues     int             `json:"totalVenues"`
	Coverage        Coverage        `json:"coverage"`
	CoveragePercent CoveragePercent `json:"coveragePercent"`
	ByCuisine       map[string]int  `json:"byCuisine"`
	ByBorough       map[string]int  `json:"byBorough"`
	ByCategory      map[string]int  `json:"byCategory"`
	Venues          []EnrichedVenue `json:"venues"`
}

// PriceRange renders a price tier as repeated pound signs. Unknown or
// out-of-range tiers render as the empty string; tier 0 (free) is treated
// as unknown since it never applies to restaurants.
func PriceRange(level *int) string {
	if level == nil || *level <= 0 || *level > 4 {
		return ""
	}
	out := ""
	for i := 0; i < *level; i++ {
		out += "£"
	}
	return out
}
