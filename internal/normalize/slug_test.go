// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"testing"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		venue string
		id    string
		want  string
	}{
		{"basic", "Test Curry House", "abc123def456", "test-curry-house-23def456"},
		{"special characters stripped", "José's Café & Grill!", "ChIJabcdefgh", "jos-s-caf-grill-abcdefgh"},
		{"short id kept whole", "The Plough", "ab12", "the-plough-ab12"},
		{"empty name", "", "abc123def456", "23def456"},
		{"empty everything", "", "", "venue"},
		{"hyphen runs collapse", "Fish --- Chips", "xyz789", "fish-chips-xyz789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.venue, tt.id); got != tt.want {
				t.Errorf("Slug(%q, %q) = %q, want %q", tt.venue, tt.id, got, tt.want)
			}
		})
	}
}

func TestSlugDeterministic(t *testing.T) {
	a := Slug("Mangal Ocakbasi", "ChIJ1234567890")
	b := Slug("Mangal Ocakbasi", "ChIJ1234567890")
	if a != b {
		t.Fatalf("repeated calls differ: %q vs %q", a, b)
	}
}

func TestSlugSameNameDifferentID(t *testing.T) {
	a := Slug("The Crown", "ChIJaaaaaaaa11111111")
	b := Slug("The Crown", "ChIJbbbbbbbb22222222")
	if a == b {
		t.Fatalf("slugs collide for distinct ids: %q", a)
	}
}

func TestSlugTruncation(t *testing.T) {
	name := strings.Repeat("very long restaurant name ", 5)
	got := Slug(name, "abcdefgh12345678")
	if len(got) > maxSlugNameLen+1+idSuffixLen {
		t.Errorf("slug too long (%d): %q", len(got), got)
	}
	if !strings.HasSuffix(got, "-12345678") {
		t.Errorf("slug missing id suffix: %q", got)
	}
}
