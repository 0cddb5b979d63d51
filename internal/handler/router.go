package handler

import (
	"net/http"
	"time"

	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/observability"
	"github.com/EstebanCastel/landing-habi-sub000/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Services groups the use cases the router exposes.
type Services struct {
	Deals       *service.DealService
	Hesh        *service.HeshService
	Countdowns  *service.CountdownService
	Comparables *service.ComparablesService
	PDF         *service.PDFService
}

// NewRouter creates the HTTP router with all routes and middleware. Routes
// follow the API contract of the landing page frontend.
func NewRouter(svcs Services, crmRateLimit int, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- Landing page API ---
	r.Get("/countdown", countdownHandler(svcs.Countdowns, logger))
	r.Get("/hesh", heshHandler(svcs.Hesh, logger))
	r.Get("/comparables", comparablesHandler(svcs.Comparables, logger))
	r.Post("/pdf/generate", pdfGenerateHandler(svcs.PDF, logger))
	r.Get("/pdf/url", pdfURLHandler(svcs.PDF, logger))

	// The CRM proxy is the only route a scraper can burn real HubSpot quota
	// through, so it is rate limited per client IP.
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(
			crmRateLimit,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, req *http.Request) {
				metrics.IncrRateLimited()
				writeCRMError(w, http.StatusTooManyRequests, "rate limit exceeded, retry later")
			}),
		))
		r.Get("/hubspot", hubspotHandler(svcs.Deals, logger))
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
