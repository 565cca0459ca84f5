package services

import (
	"context"
	"sort"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/catalog"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/geo"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/match"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// defaultSmartMatchLimit caps the ranked list returned by geocoded weighted
// search when no limit is configured.
const defaultSmartMatchLimit = 20

// RecommendService runs the filter and scoring pipeline over catalog
// snapshots.
type RecommendService struct {
	provider        *catalog.Provider
	resolver        geo.Resolver
	smartMatchLimit int
}

// NewRecommendService wires the snapshot provider and geocoder. A
// non-positive smartMatchLimit falls back to the default cap.
func NewRecommendService(p *catalog.Provider, r geo.Resolver, smartMatchLimit int) *RecommendService {
	if smartMatchLimit <= 0 {
		smartMatchLimit = defaultSmartMatchLimit
	}
	return &RecommendService{provider: p, resolver: r, smartMatchLimit: smartMatchLimit}
}

// FilterRequest mirrors the filter endpoint's constraints. Nil or empty
// fields leave the corresponding stage inactive.
type FilterRequest struct {
	BudgetMin *float64
	BudgetMax *float64
	Types     []string
	Features  []string
	Locations []string
}

// FilterResult carries the surviving properties plus summary statistics.
type FilterResult struct {
	Properties []model.Property
	Stats      match.Statistics
}

func (s *RecommendService) Filter(ctx context.Context, req FilterRequest) (*FilterResult, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	entries := snap.Filter(match.Filters{
		BudgetMin: req.BudgetMin,
		BudgetMax: req.BudgetMax,
		Types:     req.Types,
		Features:  req.Features,
		Locations: req.Locations,
	})
	props := make([]model.Property, 0, len(entries))
	for _, e := range entries {
		props = append(props, e.Property)
	}
	return &FilterResult{Properties: props, Stats: match.Summarize(entries)}, nil
}

// Options reports the distinct filterable values in the current catalog.
func (s *RecommendService) Options(ctx context.Context) (match.Options, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return match.Options{}, err
	}
	return snap.Options(), nil
}

// SmartMatchRequest describes a weighted search around a place name. The
// preferences carry the budget, selected types/features, and the four
// weights; none of them excludes properties, they only shape the score.
type SmartMatchRequest struct {
	Location string
	RadiusKm float64
	Prefs    model.Preferences
}

// SmartMatch geocodes the requested place, drops properties outside the
// radius, and ranks the rest in weighted mode. A geocoding miss surfaces as
// model.ErrLocationNotFound.
func (s *RecommendService) SmartMatch(ctx context.Context, req SmartMatchRequest) ([]model.ScoredProperty, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	center, err := s.resolver.Resolve(ctx, req.Location)
	if err != nil {
		return nil, err
	}
	radius := req.RadiusKm
	if radius <= 0 {
		radius = match.DefaultRadiusKm
	}
	entries := snap.Filter(match.Filters{Center: &center, RadiusKm: radius})
	scorer := match.Scorer{
		Prefs:    req.Prefs,
		Mode:     match.ModeWeighted,
		Center:   &center,
		RadiusKm: radius,
	}
	return match.Recommend(entries, scorer, s.smartMatchLimit), nil
}

// LocationHit pairs a property with its distance from the search center.
type LocationHit struct {
	Property   model.Property `json:"property"`
	DistanceKm float64        `json:"distanceKm"`
}

// SearchByLocation geocodes the place and returns every property within the
// radius, nearest first. Properties without coordinates are excluded.
func (s *RecommendService) SearchByLocation(ctx context.Context, place string, radiusKm float64) (geo.Point, []LocationHit, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return geo.Point{}, nil, err
	}
	center, err := s.resolver.Resolve(ctx, place)
	if err != nil {
		return geo.Point{}, nil, err
	}
	if radiusKm <= 0 {
		radiusKm = match.DefaultRadiusKm
	}
	entries := snap.Filter(match.Filters{Center: &center, RadiusKm: radiusKm})
	hits := make([]LocationHit, 0, len(entries))
	for _, e := range entries {
		pt := geo.Point{Lat: *e.Property.Latitude, Lon: *e.Property.Longitude}
		hits = append(hits, LocationHit{Property: e.Property, DistanceKm: geo.Haversine(center, pt)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].DistanceKm < hits[j].DistanceKm })
	return center, hits, nil
}

// Recommend ranks the whole catalog against the preferences in the given
// mode and returns the top n.
func (s *RecommendService) Recommend(ctx context.Context, prefs model.Preferences, topN int, mode match.Mode) ([]model.ScoredProperty, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	scorer := match.Scorer{Prefs: prefs, Mode: mode}
	return match.Recommend(snap.Entries(), scorer, topN), nil
}

// ForSession turns a completed plan into fixed-mode recommendations. The
// destination narrows the catalog by location substring; budget, environment
// and must-have features become the scoring preferences.
func (s *RecommendService) ForSession(ctx context.Context, info model.CollectedInfo, limit int) ([]model.ScoredProperty, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var f match.Filters
	if info.Destination != nil {
		f.LocationContains = *info.Destination
	}
	entries := snap.Filter(f)

	var prefs model.Preferences
	if info.BudgetMin != nil {
		prefs.BudgetMin = *info.BudgetMin
	}
	if info.BudgetMax != nil {
		prefs.BudgetMax = *info.BudgetMax
	}
	if info.PreferredEnvironment != nil {
		prefs.PreferredEnvironment = *info.PreferredEnvironment
	}
	prefs.RequiredFeatures = info.MustHaveFeatures

	scorer := match.Scorer{Prefs: prefs, Mode: match.ModeFixed}
	return match.Recommend(entries, scorer, limit), nil
}
