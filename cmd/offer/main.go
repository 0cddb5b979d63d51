package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/EstebanCastel/landing-habi-sub000/internal/config"
	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/handler"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/cache"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/hubspot"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/observability"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/pdf"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/resilience"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/supabase"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/warehouse"
	"github.com/EstebanCastel/landing-habi-sub000/internal/port"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"
	"github.com/EstebanCastel/landing-habi-sub000/internal/service"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Int("crm_rate_limit", cfg.CRMRateLimit),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "landing-offer-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
	}
	cb := resilience.NewCircuitBreaker("external-apis")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	crmClient := hubspot.NewClient(httpClient, cfg.HubSpotBaseURL, cfg.HubSpotToken, cb, resilienceCfg, logger)
	if cfg.HubSpotToken == "" {
		logger.Warn("HUBSPOT_TOKEN not set, crm proxy will answer 503")
	}

	var heshFetcher port.HeshFetcher = noWarehouse{}
	if cfg.BigQueryProject != "" {
		bq, err := bigquery.NewClient(context.Background(), cfg.BigQueryProject)
		if err != nil {
			logger.Fatal("failed to create bigquery client", zap.Error(err))
		}
		defer bq.Close()
		heshFetcher = warehouse.NewClient(bq, cfg.BigQueryDataset, cfg.BigQueryTable, logger)
	} else {
		logger.Warn("BIGQUERY_PROJECT not set, cost breakdowns will be null")
	}

	var (
		countdownStore     port.CountdownStore     = unconfiguredSupabase{}
		comparablesFetcher port.ComparablesFetcher = unconfiguredSupabase{}
		storage            port.ObjectStorage      = unconfiguredSupabase{}
	)
	if cfg.SupabaseURL != "" {
		sb := supabase.NewClient(httpClient, cfg.SupabaseURL, cfg.SupabaseAnonKey,
			cfg.SupabaseServiceKey, cfg.StorageBucket, cb, resilienceCfg, logger)
		countdownStore = sb
		comparablesFetcher = sb
		storage = sb
	} else {
		logger.Warn("SUPABASE_URL not set, countdown/comparables/pdf routes will degrade")
	}

	// --- Services ---
	dealSvc := service.NewDealService(crmClient, logger)
	heshSvc := service.NewHeshService(heshFetcher,
		cache.New[*domain.CostBreakdown](cfg.CacheTTL), metrics, logger)
	countdownSvc := service.NewCountdownService(countdownStore, logger)
	comparablesSvc := service.NewComparablesService(comparablesFetcher,
		cache.New[[]domain.Comparable](cfg.CacheTTL), metrics, logger)
	pdfSvc := service.NewPDFService(dealSvc, heshSvc, countdownSvc,
		pdf.NewRenderer(cfg.CompanyName), storage,
		resilience.NewBulkhead(cfg.MaxConcurrentRenders), metrics, logger)

	// --- Router ---
	router := handler.NewRouter(handler.Services{
		Deals:       dealSvc,
		Hesh:        heshSvc,
		Countdowns:  countdownSvc,
		Comparables: comparablesSvc,
		PDF:         pdfSvc,
	}, cfg.CRMRateLimit, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// noWarehouse stands in when BigQuery is not configured; every property
// resolves to "no data", which the landing page renders as a hidden section.
type noWarehouse struct{}

func (noWarehouse) LatestRow(_ context.Context, _ int64, _ pricing.Country) (*domain.HeshRow, error) {
	return nil, nil
}

// unconfiguredSupabase answers 503 for every Supabase-backed operation.
type unconfiguredSupabase struct{}

func (unconfiguredSupabase) OldestCountdown(_ context.Context, _ string) (*domain.Countdown, error) {
	return nil, &domain.ErrUpstreamMisconfigured{Service: "supabase"}
}

func (unconfiguredSupabase) CreateCountdown(_ context.Context, _ *domain.Countdown) error {
	return &domain.ErrUpstreamMisconfigured{Service: "supabase"}
}

func (unconfiguredSupabase) ListComparables(_ context.Context, _ int64) ([]domain.Comparable, error) {
	return nil, &domain.ErrUpstreamMisconfigured{Service: "supabase"}
}

func (unconfiguredSupabase) Upload(_ context.Context, _, _ string, _ []byte) error {
	return &domain.ErrUpstreamMisconfigured{Service: "supabase"}
}

func (unconfiguredSupabase) Exists(_ context.Context, _ string) (bool, error) {
	return false, &domain.ErrUpstreamMisconfigured{Service: "supabase"}
}

func (unconfiguredSupabase) PublicURL(_ string) string {
	return ""
}
