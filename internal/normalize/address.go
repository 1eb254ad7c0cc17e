// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize derives location fields and slugs from raw venue data.
package normalize

import (
	"regexp"
	"strings"

	"github.com/pdiddy/venue-engine/pkg/types"
)

// Location is the normalized address result. Postcode and Area are nil
// when nothing matched; Borough always carries at least the fallback.
type Location struct {
	Postcode *string
	Area     *string
	Borough  string
}

// postcodePattern matches the UK postcode grammar: outward code of one or
// two letters, one or two digits, optional trailing letter; inward code of
// a digit and two letters.
var postcodePattern = regexp.MustCompile(`(?i)\b([A-Z]{1,2}[0-9][0-9A-Z]?)\s*([0-9][A-Z]{2})\b`)

// areaEntry maps an area name to its borough, with the outward postcode
// prefixes used as a fallback when the address text names no known area.
type areaEntry struct {
	Name     string
	Borough  string
	Prefixes []string
}

// areaTable drives area and borough matching. Entry order is load-bearing:
// matching is first-hit-wins over case-insensitive substring tests, and
// some entries only match correctly because a more specific name appears
// earlier. Do not sort.
var areaTable = []areaEntry{
	{"Shoreditch", "Hackney", []string{"E1", "E2"}},
	{"Brick Lane", "Tower Hamlets", nil},
	{"Spitalfields", "Tower Hamlets", []string{"E1"}},
	{"Whitechapel", "Tower Hamlets", []string{"E1"}},
	{"Bethnal Green", "Tower Hamlets", []string{"E2"}},
	{"Hackney Wick", "Hackney", []string{"E9"}},
	{"Dalston", "Hackney", []string{"E8"}},
	{"Hackney", "Hackney", []string{"E5", "E8", "E9"}},
	{"Hoxton", "Hackney", []string{"N1"}},
	{"Stoke Newington", "Hackney", []string{"N16"}},
	{"Islington", "Islington", []string{"N1", "N7"}},
	{"Angel", "Islington", nil},
	{"Clerkenwell", "Islington", []string{"EC1"}},
	{"Farringdon", "Islington", nil},
	{"King's Cross", "Camden", nil},
	{"Camden Town", "Camden", nil},
	{"Camden", "Camden", []string{"NW1"}},
	{"Kentish Town", "Camden", []string{"NW5"}},
	{"Primrose Hill", "Camden", nil},
	{"Hampstead", "Camden", []string{"NW3"}},
	{"Bloomsbury", "Camden", []string{"WC1"}},
	{"Holborn", "Camden", nil},
	{"Covent Garden", "Westminster", []string{"WC2"}},
	{"Soho", "Westminster", []string{"W1"}},
	{"Fitzrovia", "Westminster", nil},
	{"Mayfair", "Westminster", nil},
	{"Marylebone", "Westminster", nil},
	{"Pimlico", "Westminster", []string{"SW1"}},
	{"Victoria", "Westminster", nil},
	{"Westminster", "Westminster", nil},
	{"Notting Hill", "Kensington and Chelsea", []string{"W11"}},
	{"Kensington", "Kensington and Chelsea", []string{"W8"}},
	{"Chelsea", "Kensington and Chelsea", []string{"SW3", "SW10"}},
	{"Knightsbridge", "Kensington and Chelsea", nil},
	{"Shepherd's Bush", "Hammersmith and Fulham", []string{"W12"}},
	{"Hammersmith", "Hammersmith and Fulham", []string{"W6"}},
	{"Fulham", "Hammersmith and Fulham", []string{"SW6"}},
	{"Brixton", "Lambeth", []string{"SW2", "SW9"}},
	{"Clapham", "Lambeth", []string{"SW4"}},
	{"Vauxhall", "Lambeth", []string{"SW8"}},
	{"Peckham", "Southwark", []string{"SE15"}},
	{"Bermondsey", "Southwark", []string{"SE16"}},
	{"Borough Market", "Southwark", nil},
	{"Borough", "Southwark", []string{"SE1"}},
	{"London Bridge", "Southwark", nil},
	{"Elephant and Castle", "Southwark", []string{"SE17"}},
	{"Greenwich", "Greenwich", []string{"SE10"}},
	{"Deptford", "Lewisham", []string{"SE8"}},
	{"Canary Wharf", "Tower Hamlets", []string{"E14"}},
	{"Stratford", "Newham", []string{"E15", "E20"}},
	{"Walthamstow", "Waltham Forest", []string{"E17"}},
	{"Wood Green", "Haringey", []string{"N22"}},
	{"Green Lanes", "Haringey", nil},
	{"Tottenham", "Haringey", []string{"N15", "N17"}},
	{"Finsbury Park", "Haringey", []string{"N4"}},
	{"Crouch End", "Haringey", []string{"N8"}},
	{"Wembley", "Brent", []string{"HA0", "HA9"}},
	{"Kilburn", "Brent", []string{"NW6"}},
	{"Willesden", "Brent", []string{"NW10"}},
	{"Ealing", "Ealing", []string{"W5", "W13"}},
	{"Southall", "Ealing", []string{"UB1", "UB2"}},
	{"Acton", "Ealing", []string{"W3"}},
	{"Chiswick", "Hounslow", []string{"W4"}},
	{"Richmond", "Richmond upon Thames", []string{"TW9", "TW10"}},
	{"Kingston", "Kingston upon Thames", []string{"KT1", "KT2"}},
	{"Wimbledon", "Merton", []string{"SW19"}},
	{"Tooting", "Wandsworth", []string{"SW17"}},
	{"Battersea", "Wandsworth", []string{"SW11"}},
	{"Putney", "Wandsworth", []string{"SW15"}},
	{"Croydon", "Croydon", []string{"CR0"}},
	{"Lewisham", "Lewisham", []string{"SE13"}},
	{"Dulwich", "Southwark", []string{"SE21", "SE22"}},
	{"Camberwell", "Southwark", []string{"SE5"}},
	{"New Cross", "Lewisham", []string{"SE14"}},
	{"Hoxton Square", "Hackney", nil},
	{"Leyton", "Waltham Forest", []string{"E10"}},
	{"Ilford", "Redbridge", []string{"IG1"}},
	{"Romford", "Havering", []string{"RM1"}},
	{"Barking", "Barking and Dagenham", []string{"IG11"}},
}

// Address extracts the postcode, area, and borough from a free-text
// address. An empty address yields nil fields and the fallback borough.
func Address(addr string) Location {
	loc := Location{Borough: types.FallbackBorough}
	if strings.TrimSpace(addr) == "" {
		return loc
	}

	if m := postcodePattern.FindStringSubmatch(addr); m != nil {
		pc := strings.ToUpper(m[1]) + " " + strings.ToUpper(m[2])
		loc.Postcode = &pc
	}

	lower := strings.ToLower(addr)
	for i := range areaTable {
		if strings.Contains(lower, strings.ToLower(areaTable[i].Name)) {
			name := areaTable[i].Name
			loc.Area = &name
			loc.Borough = areaTable[i].Borough
			return loc
		}
	}

	// No area name in the text; fall back to the outward postcode prefix.
	if loc.Postcode != nil {
		outward := strings.SplitN(*loc.Postcode, " ", 2)[0]
		if entry := matchPrefix(outward); entry != nil {
			name := entry.Name
			loc.Area = &name
			loc.Borough = entry.Borough
		}
	}
	return loc
}

// matchPrefix finds the first table entry whose prefix list contains the
// outward code exactly, then the first whose prefix is a leading substring
// of it. Exact matches win so "E1" does not claim "E14" addresses.
func matchPrefix(outward string) *areaEntry {
	for i := range areaTable {
		for _, p := range areaTable[i].Prefixes {
			if p == outward {
				return &areaTable[i]
			}
		}
	}
	for i := range areaTable {
		for _, p := range areaTable[i].Prefixes {
			if strings.HasPrefix(outward, p) {
				return &areaTable[i]
			}
		}
	}
	return nil
}
