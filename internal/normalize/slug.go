// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
)

// maxSlugNameLen bounds the name part of a slug before the id suffix.
const maxSlugNameLen = 48

// idSuffixLen is how many trailing characters of the external id are
// appended to keep slugs unique when names collide.
const idSuffixLen = 8

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives a URL-safe identifier from a venue name and its external
// id. The name is lowercased, runs of non-alphanumerics collapse to single
// hyphens, and the last 8 characters of the id are appended. An empty name
// yields an id-only slug. Deterministic and never fails.
func Slug(name, id string) string {
	base := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	base = strings.Trim(base, "-")
	if len(base) > maxSlugNameLen {
		base = strings.Trim(base[:maxSlugNameLen], "-")
	}

	suffix := strings.ToLower(id)
	if len(suffix) > idSuffixLen {
		suffix = suffix[len(suffix)-idSuffixLen:]
	}
	suffix = strings.Trim(nonSlugChars.ReplaceAllString(suffix, "-"), "-")

	switch {
	case base == "" && suffix == "":
		return "venue"
	case base == "":
		return suffix
	case suffix == "":
		return base
	}
	return base + "-" + suffix
}
