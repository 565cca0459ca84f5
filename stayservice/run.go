package stayservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/api"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/catalog"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/config"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/events"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/factory"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/genai"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/geo"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/health"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/logger"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/planning"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/services"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
)

const (
	// eventBusBuffer sizes the property-event channel; publishes drop when the
	// catalog watcher falls this far behind.
	eventBusBuffer = 64

	sessionJanitorInterval = 5 * time.Minute
)

// Run starts the recommender HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("stay-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("nominatim_base_url", cfg.NominatimBaseURL).
		Str("chat_model", cfg.ChatModel).
		Str("extraction_model", cfg.ExtractionModel).
		Msg("Recommender service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	// Initialize dependencies (store, geocoder, text generator)
	st, resolver, gen, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	// First run ships with a sample catalog so the service answers immediately
	seedCatalog(ctx, cfg, log, st)

	// Catalog snapshots refresh on property events and on TTL expiry
	bus := events.NewBus(eventBusBuffer)
	provider := catalog.NewProvider(st, time.Duration(cfg.CatalogTTLSeconds)*time.Second)
	go provider.Watch(ctx, bus)

	// Build router
	router := buildRouter(ctx, cfg, st, provider, bus, resolver, gen)

	// Start health checkers and bind service health
	svcHealth := startHealthCheckers(ctx, cfg, log, st, provider)

	// Block startup until dependencies report healthy; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	// HTTP server and serve
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs the store and the remote collaborators. Only
// the store is fatal; the generator is nil without an API key and the
// services fall back to their rule-based paths.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, geo.Resolver, genai.Generator, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store unavailable")
		return nil, nil, nil, err
	}

	resolver := factory.NewResolver(cfg, log)
	gen := factory.NewGenerator(cfg, log)
	return st, resolver, gen, nil
}

// seedCatalog loads the bundled sample properties when the table is empty.
// Failures are logged, not fatal: an empty catalog still serves requests.
func seedCatalog(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) {
	if !cfg.SeedOnEmpty {
		return
	}
	n, err := store.SeedIfEmpty(ctx, st)
	if err != nil {
		log.Warn().Err(err).Msg("catalog seed failed")
		return
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("seeded sample catalog")
	}
}

// buildRouter constructs the domain services and wires them to HTTP routes.
func buildRouter(ctx context.Context, cfg *config.Config, st store.Store, provider *catalog.Provider, bus *events.Bus, resolver geo.Resolver, gen genai.Generator) *mux.Router {
	propertySvc := services.NewPropertyService(st, bus, resolver)
	userSvc := services.NewUserService(st)
	recommendSvc := services.NewRecommendService(provider, resolver, cfg.SmartMatchLimit)

	sessions := planning.NewMemoryStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	go sessions.StartJanitor(ctx, sessionJanitorInterval)
	planner := planning.New(sessions, gen, recommendSvc, planning.Config{
		ExtractionModel:    cfg.ExtractionModel,
		ChatModel:          cfg.ChatModel,
		MaxRecommendations: cfg.MaxRecommendations,
	})

	propGenSvc := services.NewPropertyGenService(gen, propertySvc, cfg.ChatModel)
	chatSvc := services.NewChatService(gen, planner, propGenSvc, cfg.ChatModel)

	return api.NewRouter(api.Deps{
		Properties: propertySvc,
		Users:      userSvc,
		Recommend:  recommendSvc,
		Chat:       chatSvc,
		Planner:    planner,
	})
}

// startHealthCheckers starts component checkers and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store, provider *catalog.Provider) *health.ServiceHealthChecker {
	var checkers []health.HealthChecker
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)
	checkers = append(checkers, storeChecker)

	catalogChecker := catalog.NewHealthChecker(provider, log, probeTimeout)
	go catalogChecker.Start(ctx, interval)
	checkers = append(checkers, catalogChecker)

	svcHealth := health.NewServiceHealthChecker(log, checkers...)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	// Allow extra time for health checkers to complete their first probe cycle
	// Health checkers start as unhealthy and need time to run their first check
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
