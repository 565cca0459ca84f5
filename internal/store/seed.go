package store

import (
	"context"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// SampleProperties returns the built-in demo catalog loaded into empty
// databases. Every record carries coordinates so the radius-aware flows work
// out of the box.
func SampleProperties() []model.Property {
	f := func(v float64) *float64 { return &v }
	return []model.Property{
		{Location: "Toronto, Ontario", Type: "Condo", NightlyPrice: 180, Features: []string{"wifi", "kitchen", "air conditioning", "gym"}, Tags: []string{"city"}, Latitude: f(43.6532), Longitude: f(-79.3832)},
		{Location: "Vancouver, British Columbia", Type: "House", NightlyPrice: 250, Features: []string{"wifi", "kitchen", "garden", "parking"}, Tags: []string{"city", "beach"}, Latitude: f(49.2827), Longitude: f(-123.1207)},
		{Location: "Montreal, Quebec", Type: "Apartment", NightlyPrice: 120, Features: []string{"wifi", "kitchen", "balcony"}, Tags: []string{"city"}, Latitude: f(45.5017), Longitude: f(-73.5673)},
		{Location: "Calgary, Alberta", Type: "Villa", NightlyPrice: 300, Features: []string{"wifi", "pool", "hot tub", "parking"}, Tags: []string{"suburban"}, Latitude: f(51.0447), Longitude: f(-114.0719)},
		{Location: "Banff, Alberta", Type: "Cabin", NightlyPrice: 220, Features: []string{"fireplace", "hot tub", "parking"}, Tags: []string{"mountain", "forest"}, Latitude: f(51.1784), Longitude: f(-115.5708)},
		{Location: "Whistler, British Columbia", Type: "Chalet", NightlyPrice: 340, Features: []string{"wifi", "fireplace", "hot tub", "gym"}, Tags: []string{"mountain"}, Latitude: f(50.1163), Longitude: f(-122.9574)},
		{Location: "Halifax, Nova Scotia", Type: "House", NightlyPrice: 140, Features: []string{"wifi", "kitchen", "washer", "pet-friendly"}, Tags: []string{"beach", "city"}, Latitude: f(44.6488), Longitude: f(-63.5752)},
		{Location: "Mont-Tremblant, Quebec", Type: "Cabin", NightlyPrice: 200, Features: []string{"fireplace", "kitchen", "parking"}, Tags: []string{"mountain", "lake", "forest"}, Latitude: f(46.1185), Longitude: f(-74.5962)},
		{Location: "Victoria, British Columbia", Type: "Cottage", NightlyPrice: 160, Features: []string{"wifi", "garden", "pet-friendly"}, Tags: []string{"beach", "suburban"}, Latitude: f(48.4284), Longitude: f(-123.3656)},
		{Location: "Niagara Falls, Ontario", Type: "Condo", NightlyPrice: 190, Features: []string{"wifi", "pool", "gym", "air conditioning"}, Tags: []string{"city"}, Latitude: f(43.0896), Longitude: f(-79.0849)},
	}
}

// SeedIfEmpty loads the sample catalog when the properties table is empty and
// reports how many records were inserted. A non-empty table is left alone.
func SeedIfEmpty(ctx context.Context, s Store) (int, error) {
	n, err := s.Properties().Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	inserted := 0
	for _, p := range SampleProperties() {
		rec := p
		if _, err := s.Properties().Create(ctx, &rec); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
