package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/handler"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/cache"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/observability"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/resilience"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"
	"github.com/EstebanCastel/landing-habi-sub000/internal/service"

	"go.uber.org/zap"
)

// --- Mocks ---

type stubDealFetcher struct {
	record *domain.DealRecord
	err    error
}

func (s *stubDealFetcher) DealByID(_ context.Context, _ string) (*domain.DealRecord, error) {
	return s.record, s.err
}

func (s *stubDealFetcher) DealByUUID(_ context.Context, _ string) (*domain.DealRecord, error) {
	return s.record, s.err
}

type stubHeshFetcher struct {
	row *domain.HeshRow
	err error
}

func (s *stubHeshFetcher) LatestRow(_ context.Context, _ int64, _ pricing.Country) (*domain.HeshRow, error) {
	return s.row, s.err
}

type stubCountdownStore struct {
	rows []*domain.Countdown
}

func (s *stubCountdownStore) OldestCountdown(_ context.Context, dealUUID string) (*domain.Countdown, error) {
	for _, r := range s.rows {
		if r.DealUUID == dealUUID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubCountdownStore) CreateCountdown(_ context.Context, c *domain.Countdown) error {
	s.rows = append(s.rows, c)
	return nil
}

type stubComparables struct {
	list []domain.Comparable
	err  error
}

func (s *stubComparables) ListComparables(_ context.Context, _ int64) ([]domain.Comparable, error) {
	return s.list, s.err
}

type stubStorage struct {
	objects map[string][]byte
}

func (s *stubStorage) Upload(_ context.Context, name, _ string, data []byte) error {
	s.objects[name] = data
	return nil
}

func (s *stubStorage) Exists(_ context.Context, name string) (bool, error) {
	_, ok := s.objects[name]
	return ok, nil
}

func (s *stubStorage) PublicURL(name string) string {
	return "https://storage.example.com/" + name
}

type stubRenderer struct{}

func (stubRenderer) Render(_ *domain.OfferDocument) ([]byte, error) {
	return []byte("%PDF"), nil
}

type routerOpts struct {
	deals       *stubDealFetcher
	hesh        *stubHeshFetcher
	comparables *stubComparables
	rateLimit   int
}

func newTestRouter(opts routerOpts) http.Handler {
	if opts.deals == nil {
		opts.deals = &stubDealFetcher{err: &domain.ErrNotFound{Resource: "deal", ID: "?"}}
	}
	if opts.hesh == nil {
		opts.hesh = &stubHeshFetcher{}
	}
	if opts.comparables == nil {
		opts.comparables = &stubComparables{}
	}
	if opts.rateLimit == 0 {
		opts.rateLimit = 30
	}

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	deals := service.NewDealService(opts.deals, logger)
	hesh := service.NewHeshService(opts.hesh,
		cache.New[*domain.CostBreakdown](time.Minute), metrics, logger)
	countdowns := service.NewCountdownService(&stubCountdownStore{}, logger)
	comparables := service.NewComparablesService(opts.comparables,
		cache.New[[]domain.Comparable](time.Minute), metrics, logger)
	pdf := service.NewPDFService(deals, hesh, countdowns, stubRenderer{},
		&stubStorage{objects: map[string][]byte{}}, resilience.NewBulkhead(2), metrics, logger)

	return handler.NewRouter(handler.Services{
		Deals:       deals,
		Hesh:        hesh,
		Countdowns:  countdowns,
		Comparables: comparables,
		PDF:         pdf,
	}, opts.rateLimit, metrics, logger)
}

func doRequest(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- Operational endpoints ---

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestRouter(routerOpts{}), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	rec := doRequest(t, newTestRouter(routerOpts{}), http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doRequest(t, newTestRouter(routerOpts{}), http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

// --- Countdown ---

func TestCountdown_IssuesAndRepeats(t *testing.T) {
	router := newTestRouter(routerOpts{})

	rec := doRequest(t, router, http.MethodGet, "/countdown?deal_uuid=uuid-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var first struct {
		StartedAt string `json:"started_at"`
		ExpiresAt string `json:"expires_at"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	started, err := time.Parse(time.RFC3339, first.StartedAt)
	if err != nil {
		t.Fatalf("started_at not RFC3339: %v", err)
	}
	expires, err := time.Parse(time.RFC3339, first.ExpiresAt)
	if err != nil {
		t.Fatalf("expires_at not RFC3339: %v", err)
	}
	if got := expires.Sub(started); got != domain.OfferTTL {
		t.Errorf("expected 24h window, got %v", got)
	}

	rec2 := doRequest(t, router, http.MethodGet, "/countdown?deal_uuid=uuid-1", "")
	var second struct {
		StartedAt string `json:"started_at"`
	}
	if err := json.Unmarshal(rec2.Body.Bytes(), &second); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if second.StartedAt != first.StartedAt {
		t.Errorf("expected stable started_at, got %s then %s", first.StartedAt, second.StartedAt)
	}
}

func TestCountdown_MissingDealUUID(t *testing.T) {
	rec := doRequest(t, newTestRouter(routerOpts{}), http.MethodGet, "/countdown", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// --- Hesh ---

func TestHesh_NonNumericNid(t *testing.T) {
	rec := doRequest(t, newTestRouter(routerOpts{}), http.MethodGet, "/hesh?nid=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHesh_MissingRowIsNullBreakdown(t *testing.T) {
	rec := doRequest(t, newTestRouter(routerOpts{}), http.MethodGet, "/hesh?nid=8800421&country=CO", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		CostBreakdown *domain.CostBreakdown `json:"costBreakdown"`
		Country       string                `json:"country"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.CostBreakdown != nil {
		t.Errorf("expected null breakdown, got %+v", resp.CostBreakdown)
	}
	if resp.Country != "CO" {
		t.Errorf("expected country CO, got %s", resp.Country)
	}
}

func TestHesh_DecodeFailureIsNullBreakdown(t *testing.T) {
	router := newTestRouter(routerOpts{hesh: &stubHeshFetcher{row: &domain.HeshRow{
		Nid:           8800421,
		Country:       "CO",
		DetalleCostos: "{'broken':",
	}}})

	rec := doRequest(t, router, http.MethodGet, "/hesh?nid=8800421&country=CO", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"costBreakdown":null`) {
		t.Errorf("expected null breakdown, got %s", rec.Body.String())
	}
}

// --- HubSpot proxy ---

func TestHubspot_NotFoundEnvelope(t *testing.T) {
	rec := doRequest(t, newTestRouter(routerOpts{}), http.MethodGet, "/hubspot?deal_id=999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Error || resp.Message == "" {
		t.Errorf("expected error envelope, got %+v", resp)
	}
}

func TestHubspot_MisconfiguredUpstreamIs503(t *testing.T) {
	router := newTestRouter(routerOpts{deals: &stubDealFetcher{
		err: &domain.ErrUpstreamMisconfigured{Service: "hubspot"},
	}})

	rec := doRequest(t, router, http.MethodGet, "/hubspot?deal_id=1", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestHubspot_ReconciledProjection(t *testing.T) {
	router := newTestRouter(routerOpts{deals: &stubDealFetcher{record: &domain.DealRecord{
		ID: "12345",
		Properties: map[string]string{
			"deal_uuid":     "uuid-1",
			"pipeline":      "650714",
			"precio_comite": "100000000.500",
			"bnpl_1":        "100000000",
		},
	}}})

	rec := doRequest(t, router, http.MethodGet, "/hubspot?deal_uuid=uuid-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var proj domain.DealProjection
	if err := json.Unmarshal(rec.Body.Bytes(), &proj); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if proj.Country != "CO" {
		t.Errorf("expected CO, got %s", proj.Country)
	}
	if proj.PrecioComite == nil || *proj.PrecioComite != "100000000" {
		t.Errorf("expected normalized precio_comite, got %v", proj.PrecioComite)
	}
}

func TestHubspot_RateLimited(t *testing.T) {
	router := newTestRouter(routerOpts{rateLimit: 3})

	var last *httptest.ResponseRecorder
	for i := 0; i < 4; i++ {
		last = doRequest(t, router, http.MethodGet, "/hubspot?deal_id=1", "")
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", last.Code)
	}
	if !strings.Contains(last.Body.String(), `"error":true`) {
		t.Errorf("expected error envelope, got %s", last.Body.String())
	}

	unlimited := doRequest(t, router, http.MethodGet, "/healthz", "")
	if unlimited.Code != http.StatusOK {
		t.Errorf("expected other routes unaffected, got %d", unlimited.Code)
	}
}

// --- Comparables ---

func TestComparables_EmptyListOnFailure(t *testing.T) {
	router := newTestRouter(routerOpts{comparables: &stubComparables{
		err: &domain.ErrExternalService{Service: "supabase", Err: context.DeadlineExceeded},
	}})

	rec := doRequest(t, router, http.MethodGet, "/comparables?nid=8800421", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"comparables":[]`) {
		t.Errorf("expected empty list, got %s", rec.Body.String())
	}
}

// --- PDF ---

func TestPDFURL_NotGeneratedIs404(t *testing.T) {
	rec := doRequest(t, newTestRouter(routerOpts{}), http.MethodGet, "/pdf/url?deal_uuid=uuid-1", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestPDFGenerate_ThenURL(t *testing.T) {
	router := newTestRouter(routerOpts{deals: &stubDealFetcher{record: &domain.DealRecord{
		ID: "12345",
		Properties: map[string]string{
			"deal_uuid":     "uuid-1",
			"pipeline":      "650714",
			"precio_comite": "100000000",
			"bnpl_1":        "100000000",
		},
	}}})

	rec := doRequest(t, router, http.MethodPost, "/pdf/generate", `{"deal_uuid":"uuid-1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.Contains(resp.URL, "uuid-1.pdf") {
		t.Errorf("unexpected url %s", resp.URL)
	}

	rec2 := doRequest(t, router, http.MethodGet, "/pdf/url?deal_uuid=uuid-1", "")
	if rec2.Code != http.StatusOK {
		t.Errorf("expected 200 after generate, got %d", rec2.Code)
	}
}

func TestPDFGenerate_UpstreamFailureIs502(t *testing.T) {
	router := newTestRouter(routerOpts{deals: &stubDealFetcher{
		err: &domain.ErrExternalService{Service: "hubspot", Err: context.DeadlineExceeded},
	}})

	rec := doRequest(t, router, http.MethodPost, "/pdf/generate", `{"deal_uuid":"uuid-1"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestPDFGenerate_InvalidBody(t *testing.T) {
	rec := doRequest(t, newTestRouter(routerOpts{}), http.MethodPost, "/pdf/generate", `{broken`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
