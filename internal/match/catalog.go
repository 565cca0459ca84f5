// Package match implements the property ranking and filtering core.
//
// A Catalog is an immutable, pre-normalized snapshot of the property
// collection. Normalization (lower-cased trimmed tokens, clamped prices)
// happens once at snapshot construction so scoring and filtering never
// touch raw strings on the hot path. Filter narrows a snapshot by hard
// constraints and always preserves catalog order; Scorer ranks entries by
// preference fit and never excludes them.
package match

import (
	"strings"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// Entry is one property together with its normalized comparison view.
type Entry struct {
	Property model.Property

	typ        string
	location   string
	price      float64
	features   []string
	featureSet map[string]struct{}
	tags       map[string]struct{}
}

// Catalog is an immutable snapshot of the property collection. Entries keep
// the load order, which is also the tie-break order for ranking.
type Catalog struct {
	entries []Entry
}

// NewCatalog normalizes props into a snapshot. Negative nightly prices are
// treated as zero.
func NewCatalog(props []model.Property) *Catalog {
	entries := make([]Entry, 0, len(props))
	for _, p := range props {
		entries = append(entries, newEntry(p))
	}
	return &Catalog{entries: entries}
}

func newEntry(p model.Property) Entry {
	price := p.NightlyPrice
	if price < 0 {
		price = 0
	}
	features := normTokens(p.Features)
	return Entry{
		Property:   p,
		typ:        normToken(p.Type),
		location:   normToken(p.Location),
		price:      price,
		features:   features,
		featureSet: toSet(features),
		tags:       toSet(normTokens(p.Tags)),
	}
}

// Len reports the number of properties in the snapshot.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns the snapshot's entries in catalog order. Callers must not
// mutate the returned slice.
func (c *Catalog) Entries() []Entry { return c.entries }

func normToken(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func normTokens(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := normToken(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
