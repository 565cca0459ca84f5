package match

import (
	"math"
	"sort"
	"strings"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/geo"
)

// Filters is the set of hard constraints applied to a snapshot. Zero-valued
// fields are inactive stages.
type Filters struct {
	BudgetMin *float64
	BudgetMax *float64
	Types     []string
	Features  []string
	Locations []string

	// LocationContains keeps entries whose location contains the substring,
	// case-insensitively. The planning flow uses it for destinations.
	LocationContains string

	// Center activates the radius stage. Entries without coordinates or
	// farther than RadiusKm from the center are dropped.
	Center   *geo.Point
	RadiusKm float64
}

// Filter returns the entries that satisfy every active stage, in catalog
// order.
func (c *Catalog) Filter(f Filters) []Entry {
	types := toSet(normTokens(f.Types))
	features := normTokens(f.Features)
	locations := toSet(normTokens(f.Locations))
	contains := normToken(f.LocationContains)
	radius := f.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}

	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if !budgetOK(e, f.BudgetMin, f.BudgetMax) {
			continue
		}
		if len(types) > 0 {
			if _, ok := types[e.typ]; !ok {
				continue
			}
		}
		if len(features) > 0 && !hasAnyFeature(e, features) {
			continue
		}
		if len(locations) > 0 {
			if _, ok := locations[e.location]; !ok {
				continue
			}
		}
		if contains != "" && !strings.Contains(e.location, contains) {
			continue
		}
		if f.Center != nil && !withinRadius(e, *f.Center, radius) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// budgetOK keeps entries inside the inclusive price band. A single bound
// leaves the other side open; reversed bounds are swap-normalized.
func budgetOK(e Entry, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	lo, hi := 0.0, math.MaxFloat64
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return e.price >= lo && e.price <= hi
}

// hasAnyFeature reports whether any requested token occurs inside any of the
// entry's features, so "air" matches "Air Conditioning".
func hasAnyFeature(e Entry, requested []string) bool {
	for _, want := range requested {
		for _, have := range e.features {
			if strings.Contains(have, want) {
				return true
			}
		}
	}
	return false
}

func withinRadius(e Entry, center geo.Point, radiusKm float64) bool {
	p := e.Property
	if !p.HasCoordinates() {
		return false
	}
	d := geo.Haversine(center, geo.Point{Lat: *p.Latitude, Lon: *p.Longitude})
	return d <= radiusKm
}

// Statistics summarizes one filtered result set.
type Statistics struct {
	Total    int     `json:"total"`
	AvgPrice float64 `json:"avgPrice"`
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
}

// Summarize computes result statistics over entries. An empty set reports
// zeroes.
func Summarize(entries []Entry) Statistics {
	st := Statistics{Total: len(entries)}
	if len(entries) == 0 {
		return st
	}
	st.MinPrice = entries[0].price
	st.MaxPrice = entries[0].price
	sum := 0.0
	for _, e := range entries {
		sum += e.price
		if e.price < st.MinPrice {
			st.MinPrice = e.price
		}
		if e.price > st.MaxPrice {
			st.MaxPrice = e.price
		}
	}
	st.AvgPrice = sum / float64(len(entries))
	return st
}

// Options lists the distinct filterable values present in a snapshot,
// lower-cased and sorted, plus the full price span.
type Options struct {
	Features  []string `json:"features"`
	Types     []string `json:"types"`
	Locations []string `json:"locations"`
	MinPrice  float64  `json:"minPrice"`
	MaxPrice  float64  `json:"maxPrice"`
}

// Options reports the filterable values of the whole snapshot.
func (c *Catalog) Options() Options {
	features := map[string]struct{}{}
	types := map[string]struct{}{}
	locations := map[string]struct{}{}
	for _, e := range c.entries {
		for f := range e.featureSet {
			features[f] = struct{}{}
		}
		if e.typ != "" {
			types[e.typ] = struct{}{}
		}
		if e.location != "" {
			locations[e.location] = struct{}{}
		}
	}
	st := Summarize(c.entries)
	return Options{
		Features:  sortedKeys(features),
		Types:     sortedKeys(types),
		Locations: sortedKeys(locations),
		MinPrice:  st.MinPrice,
		MaxPrice:  st.MaxPrice,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
