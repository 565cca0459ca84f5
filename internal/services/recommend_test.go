package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/catalog"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/geo"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/match"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

func coords(lat, lon float64) (*float64, *float64) { return &lat, &lon }

func testRecommendService(t *testing.T) (*RecommendService, *fakeResolver) {
	t.Helper()
	torLat, torLon := coords(43.6532, -79.3832)
	banLat, banLon := coords(51.1784, -115.5708)
	vanLat, vanLon := coords(49.2827, -123.1207)
	st := newMemStore(
		model.Property{Location: "Toronto, Ontario", Type: "Condo", NightlyPrice: 180,
			Features: []string{"wifi", "air conditioning"}, Tags: []string{"city"}, Latitude: torLat, Longitude: torLon},
		model.Property{Location: "Banff, Alberta", Type: "Cabin", NightlyPrice: 220,
			Features: []string{"hot tub", "fireplace"}, Tags: []string{"mountain"}, Latitude: banLat, Longitude: banLon},
		model.Property{Location: "Montreal, Quebec", Type: "Apartment", NightlyPrice: 120,
			Features: []string{"wifi", "kitchen"}, Tags: []string{"city"}},
		model.Property{Location: "Vancouver, British Columbia", Type: "House", NightlyPrice: 250,
			Features: []string{"garden", "parking"}, Tags: []string{"beach"}, Latitude: vanLat, Longitude: vanLon},
	)
	res := &fakeResolver{points: map[string]geo.Point{
		"toronto": {Lat: 43.6532, Lon: -79.3832},
	}}
	return NewRecommendService(catalog.NewProvider(st, time.Hour), res, 0), res
}

func scoredIDs(list []model.ScoredProperty) []int64 {
	out := make([]int64, len(list))
	for i, sp := range list {
		out[i] = sp.Property.ID
	}
	return out
}

func TestFilterThroughService(t *testing.T) {
	svc, _ := testRecommendService(t)
	lo, hi := 100.0, 200.0
	got, err := svc.Filter(context.Background(), FilterRequest{BudgetMin: &lo, BudgetMax: &hi})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got.Properties) != 2 || got.Properties[0].ID != 1 || got.Properties[1].ID != 3 {
		t.Fatalf("unexpected properties: %+v", got.Properties)
	}
	if got.Stats.Total != 2 || got.Stats.AvgPrice != 150 {
		t.Fatalf("unexpected stats: %+v", got.Stats)
	}
}

func TestOptionsThroughService(t *testing.T) {
	svc, _ := testRecommendService(t)
	opts, err := svc.Options(context.Background())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(opts.Types) != 4 || opts.Types[0] != "apartment" {
		t.Fatalf("unexpected types: %v", opts.Types)
	}
	if opts.MinPrice != 120 || opts.MaxPrice != 250 {
		t.Fatalf("unexpected price span: %+v", opts)
	}
}

func TestSmartMatchRadiusAndRanking(t *testing.T) {
	svc, _ := testRecommendService(t)
	got, err := svc.SmartMatch(context.Background(), SmartMatchRequest{
		Location: "toronto",
		RadiusKm: 100,
		Prefs: model.Preferences{
			BudgetMin: 100, BudgetMax: 200,
			LocationWeight: 2, TypeWeight: 1, FeaturesWeight: 1, PriceWeight: 1,
		},
	})
	if err != nil {
		t.Fatalf("smart match: %v", err)
	}
	// Only the Toronto property is inside 100 km; Montreal has no
	// coordinates and the rest of the country is thousands of km away.
	if len(got) != 1 || got[0].Property.ID != 1 {
		t.Fatalf("unexpected matches: %v", scoredIDs(got))
	}
	if got[0].Score <= 0 {
		t.Fatalf("score not populated: %+v", got[0])
	}
	if got[0].LocationScore != 1.0 {
		t.Fatalf("location score inside radius = %v, want 1.0", got[0].LocationScore)
	}
}

func TestSmartMatchGeocodeMiss(t *testing.T) {
	svc, _ := testRecommendService(t)
	_, err := svc.SmartMatch(context.Background(), SmartMatchRequest{Location: "atlantis"})
	if !errors.Is(err, model.ErrLocationNotFound) {
		t.Fatalf("want ErrLocationNotFound, got %v", err)
	}
}

func TestSmartMatchHonorsConfiguredLimit(t *testing.T) {
	torLat, torLon := coords(43.6532, -79.3832)
	misLat, misLon := coords(43.5890, -79.6441)
	st := newMemStore(
		model.Property{Location: "Toronto, Ontario", Type: "Condo", NightlyPrice: 300,
			Latitude: torLat, Longitude: torLon},
		model.Property{Location: "Mississauga, Ontario", Type: "Condo", NightlyPrice: 150,
			Latitude: misLat, Longitude: misLon},
	)
	res := &fakeResolver{points: map[string]geo.Point{
		"toronto": {Lat: 43.6532, Lon: -79.3832},
	}}
	svc := NewRecommendService(catalog.NewProvider(st, time.Hour), res, 1)

	got, err := svc.SmartMatch(context.Background(), SmartMatchRequest{
		Location: "toronto",
		RadiusKm: 100,
		Prefs:    model.Preferences{BudgetMin: 100, BudgetMax: 200, PriceWeight: 1},
	})
	if err != nil {
		t.Fatalf("smart match: %v", err)
	}
	// Both properties are inside the radius; the cap keeps only the
	// better-priced one.
	if len(got) != 1 {
		t.Fatalf("limit 1 returned %d matches: %v", len(got), scoredIDs(got))
	}
	if got[0].Property.ID != 2 {
		t.Fatalf("cap kept id %d, want the in-budget property", got[0].Property.ID)
	}
}

func TestSearchByLocationSortsByDistance(t *testing.T) {
	svc, _ := testRecommendService(t)
	center, hits, err := svc.SearchByLocation(context.Background(), "toronto", 5000)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if center.Lat != 43.6532 {
		t.Fatalf("unexpected center: %+v", center)
	}
	// Montreal is excluded for missing coordinates; the rest sort nearest
	// first: Toronto, then Banff, then Vancouver.
	if len(hits) != 3 || hits[0].Property.ID != 1 || hits[1].Property.ID != 2 || hits[2].Property.ID != 4 {
		ids := make([]int64, len(hits))
		for i, h := range hits {
			ids[i] = h.Property.ID
		}
		t.Fatalf("unexpected order: %v", ids)
	}
	if hits[0].DistanceKm > 1 {
		t.Fatalf("distance to center = %v, want ~0", hits[0].DistanceKm)
	}
	if hits[1].DistanceKm >= hits[2].DistanceKm {
		t.Fatalf("hits not sorted by distance: %v < %v expected", hits[1].DistanceKm, hits[2].DistanceKm)
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	svc := NewRecommendService(catalog.NewProvider(newMemStore(), time.Hour), nil, 0)
	got, err := svc.Recommend(context.Background(), model.Preferences{}, 5, match.ModeFixed)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty catalog should yield no recommendations: %v", scoredIDs(got))
	}
}

func TestRecommendTopN(t *testing.T) {
	svc, _ := testRecommendService(t)
	got, err := svc.Recommend(context.Background(), model.Preferences{BudgetMin: 100, BudgetMax: 300}, 2, match.ModeFixed)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Score < got[1].Score {
		t.Fatalf("not sorted descending: %v", got)
	}
}

func TestForSessionAppliesDestination(t *testing.T) {
	svc, _ := testRecommendService(t)
	dest := "banff"
	env := "mountain"
	lo, hi := 150.0, 250.0
	got, err := svc.ForSession(context.Background(), model.CollectedInfo{
		Destination:          &dest,
		BudgetMin:            &lo,
		BudgetMax:            &hi,
		PreferredEnvironment: &env,
		MustHaveFeatures:     []string{"hot tub"},
	}, 5)
	if err != nil {
		t.Fatalf("for session: %v", err)
	}
	if len(got) != 1 || got[0].Property.ID != 2 {
		t.Fatalf("destination filter not applied: %v", scoredIDs(got))
	}
	// 2.0*price(1.0) + 1.5*env(1.0) + 1.0*features(1.0)
	if got[0].Score != 4.5 {
		t.Fatalf("score = %v, want 4.5", got[0].Score)
	}
}

func TestForSessionWithoutDestinationRanksAll(t *testing.T) {
	svc, _ := testRecommendService(t)
	got, err := svc.ForSession(context.Background(), model.CollectedInfo{}, 3)
	if err != nil {
		t.Fatalf("for session: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}
