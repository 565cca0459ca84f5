// Package storetest holds the compliance suite every store.Store backend
// must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
)

// Run exercises the store contract against a backend. makeStore must return
// an empty, isolated store per invocation.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Properties: create and read back.
	alt := "Cabin exterior at dusk"
	url := "https://images.example.test/banff-cabin.jpg"
	p1, err := s.Properties().Create(ctx, &model.Property{
		Location:     "Banff, Alberta",
		Type:         "Cabin",
		NightlyPrice: 220,
		Features:     []string{"hot tub", "fireplace"},
		Tags:         []string{"mountain", "forest"},
		ImageURL:     &url,
		ImageAlt:     &alt,
	})
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if p1.ID <= 0 {
		t.Fatalf("CreateProperty: id not assigned: %d", p1.ID)
	}
	got, err := s.Properties().Get(ctx, p1.ID)
	if err != nil {
		t.Fatalf("GetProperty: %v", err)
	}
	if got.Location != "Banff, Alberta" || got.Type != "Cabin" || got.NightlyPrice != 220 {
		t.Fatalf("GetProperty: round trip mismatch: %+v", got)
	}
	if len(got.Features) != 2 || got.Features[0] != "hot tub" || got.Features[1] != "fireplace" {
		t.Fatalf("GetProperty: features mismatch: %v", got.Features)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "mountain" {
		t.Fatalf("GetProperty: tags mismatch: %v", got.Tags)
	}
	if got.ImageURL == nil || *got.ImageURL != url || got.ImageAlt == nil || *got.ImageAlt != alt {
		t.Fatalf("GetProperty: image mismatch: %+v", got)
	}
	if got.HasCoordinates() {
		t.Fatalf("GetProperty: coordinates should be absent: %+v", got)
	}

	// List keeps insertion order; Count tracks size.
	p2, err := s.Properties().Create(ctx, &model.Property{Location: "Toronto, Ontario", Type: "Condo", NightlyPrice: 180})
	if err != nil {
		t.Fatalf("CreateProperty p2: %v", err)
	}
	p3, err := s.Properties().Create(ctx, &model.Property{Location: "Montreal, Quebec", Type: "Apartment", NightlyPrice: 120, Features: []string{"wifi"}})
	if err != nil {
		t.Fatalf("CreateProperty p3: %v", err)
	}
	lst, err := s.Properties().List(ctx)
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(lst) != 3 || lst[0].ID != p1.ID || lst[1].ID != p2.ID || lst[2].ID != p3.ID {
		t.Fatalf("ListProperties: order mismatch: %+v", lst)
	}
	if lst[1].Features != nil {
		t.Fatalf("ListProperties: empty features should decode to nil: %v", lst[1].Features)
	}
	if n, err := s.Properties().Count(ctx); err != nil || n != 3 {
		t.Fatalf("CountProperties: n=%d err=%v", n, err)
	}

	// Coordinate and image backfill.
	if err := s.Properties().UpdateCoordinates(ctx, p2.ID, 43.6532, -79.3832); err != nil {
		t.Fatalf("UpdateCoordinates: %v", err)
	}
	got, err = s.Properties().Get(ctx, p2.ID)
	if err != nil {
		t.Fatalf("GetProperty after coords: %v", err)
	}
	if !got.HasCoordinates() || *got.Latitude != 43.6532 || *got.Longitude != -79.3832 {
		t.Fatalf("UpdateCoordinates: not persisted: %+v", got)
	}
	if err := s.Properties().UpdateImage(ctx, p2.ID, "https://images.example.test/condo.jpg", "Condo skyline view"); err != nil {
		t.Fatalf("UpdateImage: %v", err)
	}
	got, err = s.Properties().Get(ctx, p2.ID)
	if err != nil {
		t.Fatalf("GetProperty after image: %v", err)
	}
	if got.ImageURL == nil || *got.ImageURL != "https://images.example.test/condo.jpg" {
		t.Fatalf("UpdateImage: not persisted: %+v", got)
	}

	// Missing ids surface the not-found sentinel.
	if _, err := s.Properties().Get(ctx, 99999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetProperty missing: want ErrNotFound, got %v", err)
	}
	if err := s.Properties().UpdateCoordinates(ctx, 99999, 1, 2); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateCoordinates missing: want ErrNotFound, got %v", err)
	}
	if err := s.Properties().UpdateImage(ctx, 99999, "u", "a"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateImage missing: want ErrNotFound, got %v", err)
	}

	// Users: sparse profile gets default weights.
	u1, err := s.Users().Create(ctx, &model.User{Name: "Dana"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u1.ID <= 0 {
		t.Fatalf("CreateUser: id not assigned: %d", u1.ID)
	}
	gotU, err := s.Users().Get(ctx, u1.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if gotU.Name != "Dana" || gotU.GroupSize != nil || gotU.PreferredEnv != nil {
		t.Fatalf("GetUser: round trip mismatch: %+v", gotU)
	}
	if gotU.WeighedLocation != 1 || gotU.WeighedType != 1 || gotU.WeighedFeatures != 1 || gotU.WeighedPrice != 1 {
		t.Fatalf("GetUser: default weights not applied: %+v", gotU)
	}

	// Users: full profile round-trips the optionals.
	group := 4
	env := "mountain"
	bmin, bmax := 100.0, 250.0
	start, end := "2026-07-10", "2026-07-17"
	u2, err := s.Users().Create(ctx, &model.User{
		Name: "Avery", GroupSize: &group, PreferredEnv: &env,
		BudgetMin: &bmin, BudgetMax: &bmax,
		WeighedLocation: 3, WeighedType: 2, WeighedFeatures: 1, WeighedPrice: 5,
		TravelStartDate: &start, TravelEndDate: &end,
	})
	if err != nil {
		t.Fatalf("CreateUser full: %v", err)
	}
	gotU, err = s.Users().Get(ctx, u2.ID)
	if err != nil {
		t.Fatalf("GetUser full: %v", err)
	}
	if gotU.GroupSize == nil || *gotU.GroupSize != 4 || gotU.PreferredEnv == nil || *gotU.PreferredEnv != "mountain" {
		t.Fatalf("GetUser full: optionals mismatch: %+v", gotU)
	}
	if gotU.BudgetMin == nil || *gotU.BudgetMin != 100 || gotU.BudgetMax == nil || *gotU.BudgetMax != 250 {
		t.Fatalf("GetUser full: budget mismatch: %+v", gotU)
	}
	if gotU.WeighedLocation != 3 || gotU.WeighedPrice != 5 {
		t.Fatalf("GetUser full: weights mismatch: %+v", gotU)
	}
	if gotU.TravelStartDate == nil || *gotU.TravelStartDate != start {
		t.Fatalf("GetUser full: dates mismatch: %+v", gotU)
	}

	// Weight updates persist and missing users surface ErrNotFound.
	if err := s.Users().UpdateWeights(ctx, u1.ID, 5, 4, 3, 2); err != nil {
		t.Fatalf("UpdateWeights: %v", err)
	}
	gotU, err = s.Users().Get(ctx, u1.ID)
	if err != nil {
		t.Fatalf("GetUser after weights: %v", err)
	}
	if gotU.WeighedLocation != 5 || gotU.WeighedType != 4 || gotU.WeighedFeatures != 3 || gotU.WeighedPrice != 2 {
		t.Fatalf("UpdateWeights: not persisted: %+v", gotU)
	}
	if _, err := s.Users().Get(ctx, 99999); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUser missing: want ErrNotFound, got %v", err)
	}
	if err := s.Users().UpdateWeights(ctx, 99999, 1, 1, 1, 1); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateWeights missing: want ErrNotFound, got %v", err)
	}

	// Seeding is a no-op on a populated store and fills an empty one.
	if n, err := store.SeedIfEmpty(ctx, s); err != nil || n != 0 {
		t.Fatalf("SeedIfEmpty populated: n=%d err=%v", n, err)
	}
	fresh := makeStore(t)
	want := len(store.SampleProperties())
	if n, err := store.SeedIfEmpty(ctx, fresh); err != nil || n != want {
		t.Fatalf("SeedIfEmpty empty: n=%d want=%d err=%v", n, want, err)
	}
	if n, err := fresh.Properties().Count(ctx); err != nil || n != want {
		t.Fatalf("Count after seed: n=%d err=%v", n, err)
	}
	if n, err := store.SeedIfEmpty(ctx, fresh); err != nil || n != 0 {
		t.Fatalf("SeedIfEmpty second run: n=%d err=%v", n, err)
	}
}
