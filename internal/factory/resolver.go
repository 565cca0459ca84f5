package factory

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/config"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/geo"
)

// NewResolver creates the geocoding collaborator from config.
func NewResolver(cfg *config.Config, log zerolog.Logger) geo.Resolver {
	timeout := time.Duration(cfg.GeocodeTimeoutSeconds) * time.Second
	r := geo.NewNominatimResolver(cfg.NominatimBaseURL, cfg.GeocodeCountry, timeout)
	log.Debug().
		Str("base_url", cfg.NominatimBaseURL).
		Str("country", cfg.GeocodeCountry).
		Msg("geocoding resolver configured")
	return r
}
