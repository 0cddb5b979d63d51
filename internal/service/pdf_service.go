package service

import (
	"context"
	"strconv"
	"time"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/observability"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/resilience"
	"github.com/EstebanCastel/landing-habi-sub000/internal/port"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var pdfTracer = otel.Tracer("service/pdf")

// PDFService renders the downloadable offer letter and stores it in the
// offers bucket. Rendering is CPU-bound, so a bulkhead caps how many letters
// build concurrently.
type PDFService struct {
	deals      *DealService
	hesh       *HeshService
	countdowns *CountdownService
	renderer   port.OfferRenderer
	storage    port.ObjectStorage
	bulkhead   *resilience.Bulkhead
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewPDFService creates a new offer letter service.
func NewPDFService(
	deals *DealService,
	hesh *HeshService,
	countdowns *CountdownService,
	renderer port.OfferRenderer,
	storage port.ObjectStorage,
	bulkhead *resilience.Bulkhead,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *PDFService {
	return &PDFService{
		deals:      deals,
		hesh:       hesh,
		countdowns: countdowns,
		renderer:   renderer,
		storage:    storage,
		bulkhead:   bulkhead,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Generate builds the offer letter for a deal, uploads it, and returns its
// public URL. The deal itself is mandatory; breakdown and countdown failures
// degrade (nil breakdown, freshly issued countdown) rather than abort.
func (s *PDFService) Generate(ctx context.Context, dealUUID string) (string, error) {
	ctx, span := pdfTracer.Start(ctx, "PDFService.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("deal.uuid", dealUUID))

	start := s.now()
	defer func() {
		s.metrics.RecordRequestDuration("pdf_generate", time.Since(start))
	}()

	if dealUUID == "" {
		return "", &domain.ErrValidation{Field: "deal_uuid", Message: "required"}
	}

	deal, err := s.deals.GetReconciledDeal(ctx, "", dealUUID)
	if err != nil {
		return "", err
	}

	var (
		bd        *domain.CostBreakdown
		countdown *domain.Countdown
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if deal.Nid == nil {
			return nil
		}
		nid, perr := strconv.ParseInt(*deal.Nid, 10, 64)
		if perr != nil {
			return nil
		}
		bd, _ = s.hesh.GetCostBreakdown(gctx, nid, pricing.Country(deal.Country))
		return nil
	})
	g.Go(func() error {
		var cerr error
		countdown, cerr = s.countdowns.GetOrIssue(gctx, dealUUID)
		return cerr
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	doc := &domain.OfferDocument{
		Deal:      deal,
		Breakdown: bd,
		ExpiresAt: countdown.ExpiresAt(),
		Generated: s.now().UTC(),
	}

	if err := s.bulkhead.Acquire(ctx); err != nil {
		return "", &domain.ErrTimeout{Operation: "pdf render"}
	}
	data, err := s.renderer.Render(doc)
	s.bulkhead.Release()
	if err != nil {
		return "", err
	}

	name := objectName(dealUUID)
	if err := s.storage.Upload(ctx, name, "application/pdf", data); err != nil {
		return "", err
	}

	s.metrics.IncrPDFGenerated()
	s.logger.Info("offer letter generated",
		zap.String("deal_uuid", dealUUID),
		zap.Int("bytes", len(data)))

	return s.storage.PublicURL(name), nil
}

// GetURL returns the public URL of an already generated letter, or
// ErrNotFound when none has been generated yet.
func (s *PDFService) GetURL(ctx context.Context, dealUUID string) (string, error) {
	ctx, span := pdfTracer.Start(ctx, "PDFService.GetURL")
	defer span.End()
	span.SetAttributes(attribute.String("deal.uuid", dealUUID))

	if dealUUID == "" {
		return "", &domain.ErrValidation{Field: "deal_uuid", Message: "required"}
	}

	name := objectName(dealUUID)
	exists, err := s.storage.Exists(ctx, name)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", &domain.ErrNotFound{Resource: "offer letter", ID: dealUUID}
	}
	return s.storage.PublicURL(name), nil
}

func objectName(dealUUID string) string {
	return "ofertas/" + dealUUID + ".pdf"
}
