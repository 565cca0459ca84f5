package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/events"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/geo"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
)

// PropertyService orchestrates property ingestion and lookups.
type PropertyService struct {
	store    store.Store
	bus      *events.Bus
	resolver geo.Resolver
}

func NewPropertyService(s store.Store, bus *events.Bus, resolver geo.Resolver) *PropertyService {
	return &PropertyService{store: s, bus: bus, resolver: resolver}
}

// CreateProperty validates and stores one property, geocoding its location
// when no coordinates were supplied. A geocoding miss is not fatal; the
// property is kept without coordinates and radius-aware flows skip it.
func (s *PropertyService) CreateProperty(ctx context.Context, p *model.Property) (*model.Property, error) {
	if err := validateProperty(p); err != nil {
		return nil, err
	}
	if !p.HasCoordinates() && s.resolver != nil {
		if pt, err := s.resolver.Resolve(ctx, p.Location); err == nil {
			lat, lon := pt.Lat, pt.Lon
			p.Latitude, p.Longitude = &lat, &lon
		} else {
			log.Warn().Err(err).Str("location", p.Location).Msg("geocode on create failed")
		}
	}
	created, err := s.store.Properties().Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(events.Event{Kind: events.PropertyCreated, PropertyID: created.ID})
	return created, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, propertyID int64) (*model.Property, error) {
	return s.store.Properties().Get(ctx, propertyID)
}

func (s *PropertyService) ListProperties(ctx context.Context) ([]model.Property, error) {
	return s.store.Properties().List(ctx)
}

// BackfillCoordinates geocodes every stored property that lacks coordinates.
// delay spaces out provider calls; Nominatim allows at most one request per
// second. It returns the number of properties updated. Individual misses are
// logged and skipped so one unresolvable location does not stall the rest.
func (s *PropertyService) BackfillCoordinates(ctx context.Context, delay time.Duration) (int, error) {
	if s.resolver == nil {
		return 0, fmt.Errorf("no geocoding resolver configured")
	}
	props, err := s.store.Properties().List(ctx)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, p := range props {
		if p.HasCoordinates() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		pt, err := s.resolver.Resolve(ctx, p.Location)
		if err != nil {
			log.Warn().Err(err).
				Int64("propertyId", p.ID).
				Str("location", p.Location).
				Msg("geocode backfill miss")
			continue
		}
		if err := s.store.Properties().UpdateCoordinates(ctx, p.ID, pt.Lat, pt.Lon); err != nil {
			return updated, err
		}
		s.bus.Publish(events.Event{Kind: events.PropertyUpdated, PropertyID: p.ID})
		updated++
		if delay > 0 {
			select {
			case <-ctx.Done():
				return updated, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return updated, nil
}

func validateProperty(p *model.Property) error {
	if strings.TrimSpace(p.Location) == "" {
		return fmt.Errorf("%w: location is required", model.ErrValidation)
	}
	if strings.TrimSpace(p.Type) == "" {
		return fmt.Errorf("%w: type is required", model.ErrValidation)
	}
	if p.NightlyPrice < 0 {
		return fmt.Errorf("%w: nightly price must be non-negative", model.ErrValidation)
	}
	return nil
}
