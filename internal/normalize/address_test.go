// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "testing"

func TestAddressPostcode(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want string
	}{
		{"canonical form", "12 Brick Lane, Shoreditch, E1 6PU", "E1 6PU"},
		{"no separating space", "1 Main St, London SW1A1AA", "SW1A 1AA"},
		{"lowercase input", "5 High Road, n16 8el, London", "N16 8EL"},
		{"two letter area", "The Green, Croydon CR0 1PB", "CR0 1PB"},
		{"no postcode", "Somewhere in London", ""},
		{"empty address", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := Address(tt.addr)
			got := ""
			if loc.Postcode != nil {
				got = *loc.Postcode
			}
			if got != tt.want {
				t.Errorf("Address(%q).Postcode = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}

func TestAddressArea(t *testing.T) {
	tests := []struct {
		name        string
		addr        string
		wantArea    string
		wantBorough string
	}{
		{"known area", "12 Brick Lane, Shoreditch, E1 6PU", "Shoreditch", "Hackney"},
		{"case insensitive", "44 some street, SOHO, W1D 4AB", "Soho", "Westminster"},
		{"prefix fallback", "99 Nameless Road, London E8 2AB", "Dalston", "Hackney"},
		{"exact prefix beats leading substring", "7 Quiet Street, London E14 5AB", "Canary Wharf", "Tower Hamlets"},
		{"no match at all", "10 Anywhere Avenue, London ZZ9 9ZZ", "", "Central London"},
		{"empty address", "", "", "Central London"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := Address(tt.addr)
			got := ""
			if loc.Area != nil {
				got = *loc.Area
			}
			if got != tt.wantArea {
				t.Errorf("Address(%q).Area = %q, want %q", tt.addr, got, tt.wantArea)
			}
			if loc.Borough != tt.wantBorough {
				t.Errorf("Address(%q).Borough = %q, want %q", tt.addr, loc.Borough, tt.wantBorough)
			}
		})
	}
}

// Shoreditch precedes Hackney in the table, so an address containing both
// must resolve to Shoreditch. Table order is the tie-break contract.
func TestAddressAreaFirstMatchWins(t *testing.T) {
	loc := Address("Unit 3, Shoreditch High Street, Hackney, London E1 6JE")
	if loc.Area == nil || *loc.Area != "Shoreditch" {
		t.Fatalf("Area = %v, want Shoreditch", loc.Area)
	}
	if loc.Borough != "Hackney" {
		t.Errorf("Borough = %q, want Hackney", loc.Borough)
	}
}

func TestAddressAreaTextBeatsPostcode(t *testing.T) {
	// The text names Soho; the postcode prefix would say otherwise.
	loc := Address("1 Soho Square, London N16 8EL")
	if loc.Area == nil || *loc.Area != "Soho" {
		t.Fatalf("Area = %v, want Soho", loc.Area)
	}
}
