package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// Resolver turns a free-text place name into coordinates.
// Implementations return model.ErrLocationNotFound when the provider has no
// match, which callers must keep distinct from transport errors.
type Resolver interface {
	Resolve(ctx context.Context, place string) (Point, error)
}

// NominatimResolver resolves place names against the OpenStreetMap Nominatim API.
type NominatimResolver struct {
	client  *resty.Client
	country string
}

// NewNominatimResolver creates a resolver against the given base URL.
// A non-empty country is appended to every query to bias results.
func NewNominatimResolver(baseURL, country string, timeout time.Duration) *NominatimResolver {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", "SummerHomeRecommender/1.0 (https://example.com; contact@example.com)").
		SetTimeout(timeout)

	return &NominatimResolver{client: c, country: country}
}

type nominatimHit struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up the first match for the place name.
func (r *NominatimResolver) Resolve(ctx context.Context, place string) (Point, error) {
	if place == "" {
		return Point{}, model.ErrLocationNotFound
	}

	q := place
	if r.country != "" {
		q = place + ", " + r.country
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              q,
			"format":         "json",
			"limit":          "1",
			"addressdetails": "0",
		}).
		Get("/search")
	if err != nil {
		return Point{}, fmt.Errorf("nominatim request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Point{}, fmt.Errorf("nominatim status %d: %s", resp.StatusCode(), resp.String())
	}

	var hits []nominatimHit
	if err := json.Unmarshal(resp.Body(), &hits); err != nil {
		return Point{}, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(hits) == 0 {
		return Point{}, model.ErrLocationNotFound
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("parse latitude %q: %w", hits[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("parse longitude %q: %w", hits[0].Lon, err)
	}

	return Point{Lat: lat, Lon: lon}, nil
}
