package match

import (
	"testing"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/geo"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

func testCatalog() *Catalog {
	props := []model.Property{
		withCoords(prop(1, "Toronto, Ontario", "Condo", 180, []string{"WiFi", "Air Conditioning"}, []string{"city"}), 43.6532, -79.3832),
		withCoords(prop(2, "Banff, Alberta", "Cabin", 220, []string{"Hot Tub", "Fireplace"}, []string{"mountain"}), 51.1784, -115.5708),
		prop(3, "Montreal, Quebec", "Apartment", 120, []string{"WiFi", "Kitchen"}, []string{"city"}),
		withCoords(prop(4, "Vancouver, BC", "House", 250, []string{"Garden", "Parking"}, []string{"beach"}), 49.2827, -123.1207),
	}
	return NewCatalog(props)
}

func ids(entries []Entry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Property.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []Entry, want ...int64) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got ids %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got ids %v, want %v", gotIDs, want)
		}
	}
}

func TestFilterIdentity(t *testing.T) {
	got := testCatalog().Filter(Filters{})
	assertIDs(t, got, 1, 2, 3, 4)
}

func TestFilterBudget(t *testing.T) {
	c := testCatalog()
	lo, hi := 150.0, 230.0
	assertIDs(t, c.Filter(Filters{BudgetMin: &lo, BudgetMax: &hi}), 1, 2)

	// bounds are inclusive
	exact := 120.0
	assertIDs(t, c.Filter(Filters{BudgetMin: &exact, BudgetMax: &exact}), 3)

	// reversed bounds behave like the normalized band
	assertIDs(t, c.Filter(Filters{BudgetMin: &hi, BudgetMax: &lo}), 1, 2)

	// a single bound leaves the other side open
	assertIDs(t, c.Filter(Filters{BudgetMin: &hi}), 4)
}

func TestFilterTypes(t *testing.T) {
	got := testCatalog().Filter(Filters{Types: []string{"cabin", "HOUSE"}})
	assertIDs(t, got, 2, 4)
}

func TestFilterFeaturesMatchAnySubstring(t *testing.T) {
	c := testCatalog()
	assertIDs(t, c.Filter(Filters{Features: []string{"air"}}), 1)
	assertIDs(t, c.Filter(Filters{Features: []string{"WiFi"}}), 1, 3)
	assertIDs(t, c.Filter(Filters{Features: []string{"wifi", "garden"}}), 1, 3, 4)

	if got := c.Filter(Filters{Features: []string{"sauna"}}); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}

func TestFilterLocations(t *testing.T) {
	c := testCatalog()
	assertIDs(t, c.Filter(Filters{Locations: []string{"TORONTO, ONTARIO"}}), 1)
	assertIDs(t, c.Filter(Filters{Locations: []string{"toronto, ontario", "vancouver, bc"}}), 1, 4)
}

func TestFilterLocationContains(t *testing.T) {
	got := testCatalog().Filter(Filters{LocationContains: "Montreal"})
	assertIDs(t, got, 3)
}

func TestFilterRadius(t *testing.T) {
	toronto := geo.Point{Lat: 43.6532, Lon: -79.3832}
	montreal := geo.Point{Lat: 45.5017, Lon: -73.5673}
	c := testCatalog()

	assertIDs(t, c.Filter(Filters{Center: &toronto, RadiusKm: 100}), 1)

	// zero radius falls back to the default, still only Toronto nearby
	assertIDs(t, c.Filter(Filters{Center: &toronto}), 1)

	// the Montreal record has no coordinates, so even its own city center
	// cannot keep it
	if got := c.Filter(Filters{Center: &montreal, RadiusKm: 100}); len(got) != 0 {
		t.Fatalf("properties without coordinates must fail the radius stage, got %v", ids(got))
	}
}

func TestFilterCombinedStages(t *testing.T) {
	lo, hi := 100.0, 230.0
	got := testCatalog().Filter(Filters{
		BudgetMin: &lo,
		BudgetMax: &hi,
		Features:  []string{"wifi"},
	})
	assertIDs(t, got, 1, 3)
}

func TestNegativePriceClamped(t *testing.T) {
	c := NewCatalog([]model.Property{prop(9, "Nowhere", "Hut", -50, nil, nil)})
	hi := 10.0
	assertIDs(t, c.Filter(Filters{BudgetMax: &hi}), 9)

	if st := Summarize(c.Entries()); st.MinPrice != 0 {
		t.Fatalf("negative price should clamp to zero, got min %v", st.MinPrice)
	}
}

func TestSummarize(t *testing.T) {
	st := Summarize(testCatalog().Entries())
	if st.Total != 4 {
		t.Fatalf("total = %d, want 4", st.Total)
	}
	if !almostEqual(st.AvgPrice, 192.5) {
		t.Fatalf("avg = %v, want 192.5", st.AvgPrice)
	}
	if st.MinPrice != 120 || st.MaxPrice != 250 {
		t.Fatalf("price span = [%v,%v], want [120,250]", st.MinPrice, st.MaxPrice)
	}

	empty := Summarize(nil)
	if empty.Total != 0 || empty.AvgPrice != 0 || empty.MinPrice != 0 || empty.MaxPrice != 0 {
		t.Fatalf("empty summary should be all zeroes, got %+v", empty)
	}
}

func TestOptions(t *testing.T) {
	opts := testCatalog().Options()

	wantTypes := []string{"apartment", "cabin", "condo", "house"}
	if len(opts.Types) != len(wantTypes) {
		t.Fatalf("types = %v, want %v", opts.Types, wantTypes)
	}
	for i := range wantTypes {
		if opts.Types[i] != wantTypes[i] {
			t.Fatalf("types = %v, want %v", opts.Types, wantTypes)
		}
	}

	wantFirstFeatures := []string{"air conditioning", "fireplace", "garden"}
	for i := range wantFirstFeatures {
		if opts.Features[i] != wantFirstFeatures[i] {
			t.Fatalf("features = %v, want sorted lower-cased values", opts.Features)
		}
	}

	if opts.MinPrice != 120 || opts.MaxPrice != 250 {
		t.Fatalf("price span = [%v,%v], want [120,250]", opts.MinPrice, opts.MaxPrice)
	}
}
