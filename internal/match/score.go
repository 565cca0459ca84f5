package match

import (
	"fmt"
	"math"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/geo"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// Mode selects how per-criterion scores combine into a total.
type Mode string

const (
	// ModeFixed combines price, environment and feature fit with constant
	// weights. It is the default for session-driven recommendations.
	ModeFixed Mode = "fixed"
	// ModeWeighted combines location, type, feature and price fit using the
	// caller-supplied weights from Preferences. Totals are a plain weighted
	// sum and are not normalized by the weight sum.
	ModeWeighted Mode = "weighted"
)

// ParseMode maps a wire value to a Mode. Empty input selects ModeFixed.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeFixed):
		return ModeFixed, nil
	case string(ModeWeighted):
		return ModeWeighted, nil
	}
	return "", fmt.Errorf("%w: unknown scoring mode %q", model.ErrValidation, s)
}

const (
	fixedPriceWeight       = 2.0
	fixedEnvironmentWeight = 1.5
	fixedFeaturesWeight    = 1.0
)

// DefaultRadiusKm is used whenever a radius-aware flow does not supply one.
const DefaultRadiusKm = 50.0

// Scorer ranks catalog entries against one set of preferences. A nil Center
// means no resolved map point is available and the environment tag supplies
// the location signal instead of great-circle distance.
type Scorer struct {
	Prefs    model.Preferences
	Mode     Mode
	Center   *geo.Point
	RadiusKm float64
}

// Score computes the per-criterion breakdown for e and combines it according
// to the scorer's mode. Scoring never excludes an entry; hard constraints
// belong to Filter.
func (s Scorer) Score(e Entry) model.ScoredProperty {
	sp := model.ScoredProperty{
		Property:         e.Property,
		PriceScore:       s.priceScore(e.price),
		EnvironmentScore: environmentScore(e, s.Prefs.PreferredEnvironment),
		FeaturesScore:    featureScore(e, s.Prefs.RequiredFeatures),
		TypeScore:        typeScore(e, s.Prefs.Types),
	}
	sp.LocationScore = s.locationScore(e, sp.EnvironmentScore)

	switch s.Mode {
	case ModeWeighted:
		sp.Score = s.Prefs.LocationWeight*sp.LocationScore +
			s.Prefs.TypeWeight*sp.TypeScore +
			s.Prefs.FeaturesWeight*sp.FeaturesScore +
			s.Prefs.PriceWeight*sp.PriceScore
	default:
		sp.Score = fixedPriceWeight*sp.PriceScore +
			fixedEnvironmentWeight*sp.EnvironmentScore +
			fixedFeaturesWeight*sp.FeaturesScore
	}
	return sp
}

// priceScore grades affordability on [0,1] after swap-normalizing the budget
// band. Prices inside the band are a perfect fit. Below the band the score
// keeps a 0.6 floor; above it the score decays linearly and reaches zero at
// twice the band ceiling.
func (s Scorer) priceScore(price float64) float64 {
	lo, hi := s.Prefs.BudgetMin, s.Prefs.BudgetMax
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case price < lo:
		below := (lo - price) / math.Max(1.0, lo)
		return math.Max(0.6, 1.0-0.4*math.Min(1.0, below))
	case price > hi:
		over := (price - hi) / math.Max(1.0, hi)
		return math.Max(0.0, 1.0-math.Min(1.0, over))
	default:
		return 1.0
	}
}

// environmentScore is 1.0 only when the preferred environment appears in the
// entry's tag set. No stated preference scores zero, not neutral.
func environmentScore(e Entry, preferred string) float64 {
	want := normToken(preferred)
	if want == "" {
		return 0.0
	}
	if _, ok := e.tags[want]; ok {
		return 1.0
	}
	return 0.0
}

// featureScore is the matched fraction of the required feature set. An empty
// requirement means "no preference" and scores a neutral 0.5.
func featureScore(e Entry, required []string) float64 {
	want := toSet(normTokens(required))
	if len(want) == 0 {
		return 0.5
	}
	matched := 0
	for f := range want {
		if _, ok := e.featureSet[f]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(want))
}

// typeScore is a membership test against the requested types. An empty
// request accepts every type at full score.
func typeScore(e Entry, types []string) float64 {
	want := toSet(normTokens(types))
	if len(want) == 0 {
		return 1.0
	}
	if _, ok := want[e.typ]; ok {
		return 1.0
	}
	return 0.0
}

// locationScore grades proximity to the resolved center when one is known.
// Distance at or under the radius is a full match; beyond it the score decays
// linearly and reaches zero at twice the radius. Entries without coordinates
// cannot match a map point.
func (s Scorer) locationScore(e Entry, envScore float64) float64 {
	if s.Center == nil {
		return envScore
	}
	p := e.Property
	if !p.HasCoordinates() {
		return 0.0
	}
	radius := s.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	d := geo.Haversine(*s.Center, geo.Point{Lat: *p.Latitude, Lon: *p.Longitude})
	if d <= radius {
		return 1.0
	}
	return math.Max(0.0, 1.0-(d-radius)/radius)
}
