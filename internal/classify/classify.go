// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify infers cuisines, dietary tags, and categories from
// venue names and source type tags using ordered keyword tables.
package classify

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/venue-engine/pkg/types"
)

// FallbackCategory labels venues that match no category keyword and no
// cuisine either.
const FallbackCategory = "venue"

// DefaultCategory labels venues with an inferred cuisine but no category
// keyword hit.
const DefaultCategory = "restaurant"

// Attributes is the inference result. Cuisines and Categories are never
// empty; Dietary always carries every fixed key.
type Attributes struct {
	Cuisines   []string
	Dietary    map[string]bool
	Categories []string
}

// Classifier applies a set of rule tables. The zero value is unusable;
// construct with New or NewFromFile.
type Classifier struct {
	tables Tables
}

// New returns a Classifier over the given tables.
func New(tables Tables) *Classifier {
	return &Classifier{tables: tables}
}

// NewFromFile loads a YAML rule-table override from path. An empty path
// yields the built-in tables.
func NewFromFile(path string) (*Classifier, error) {
	if path == "" {
		return New(DefaultTables()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables file: %w", err)
	}
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing tables file: %w", err)
	}
	if err := validateTables(t); err != nil {
		return nil, fmt.Errorf("invalid tables file %s: %w", path, err)
	}
	return New(t), nil
}

func validateTables(t Tables) error {
	for _, set := range [][]Rule{t.Cuisines, t.Dietary, t.Categories} {
		for _, r := range set {
			if strings.TrimSpace(r.Label) == "" {
				return fmt.Errorf("rule with empty label")
			}
			if len(r.Keywords) == 0 {
				return fmt.Errorf("rule %q has no keywords", r.Label)
			}
		}
	}
	return nil
}

// Infer derives attributes from the venue name, source type tags, and an
// optional free-text summary. Pure: identical inputs produce identical
// output, including ordering.
func (c *Classifier) Infer(name string, typeTags []string, summary string) Attributes {
	haystack := strings.ToLower(name + " " + strings.Join(typeTags, " ") + " " + summary)

	attrs := Attributes{
		Dietary: make(map[string]bool, len(types.DietaryKeys)),
	}

	for _, rule := range c.tables.Cuisines {
		if matchAny(haystack, rule.Keywords) {
			attrs.Cuisines = append(attrs.Cuisines, rule.Label)
		}
	}
	if len(attrs.Cuisines) == 0 {
		attrs.Cuisines = []string{types.FallbackCuisine}
	}

	// Dietary tags are independent booleans, not mutually exclusive.
	for _, key := range types.DietaryKeys {
		attrs.Dietary[key] = false
	}
	for _, rule := range c.tables.Dietary {
		attrs.Dietary[rule.Label] = matchAny(haystack, rule.Keywords)
	}

	for _, rule := range c.tables.Categories {
		if matchAny(haystack, rule.Keywords) {
			attrs.Categories = append(attrs.Categories, rule.Label)
		}
	}
	if len(attrs.Categories) == 0 {
		if attrs.Cuisines[0] != types.FallbackCuisine {
			attrs.Categories = []string{DefaultCategory}
		} else {
			attrs.Categories = []string{FallbackCategory}
		}
	}

	return attrs
}

func matchAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
