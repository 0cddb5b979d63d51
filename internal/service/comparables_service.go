package service

import (
	"context"
	"strconv"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/observability"
	"github.com/EstebanCastel/landing-habi-sub000/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var comparablesTracer = otel.Tracer("service/comparables")

// ComparablesService serves the reference properties shown on the landing
// page map. The list is decorative, so any upstream failure degrades to an
// empty list instead of an error page.
type ComparablesService struct {
	fetcher port.ComparablesFetcher
	cache   port.Cache[[]domain.Comparable]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewComparablesService creates a new comparables service.
func NewComparablesService(fetcher port.ComparablesFetcher, cache port.Cache[[]domain.Comparable], metrics *observability.Metrics, logger *zap.Logger) *ComparablesService {
	return &ComparablesService{fetcher: fetcher, cache: cache, metrics: metrics, logger: logger}
}

// List returns comparables for a property, never nil and never an error.
func (s *ComparablesService) List(ctx context.Context, nid int64) []domain.Comparable {
	ctx, span := comparablesTracer.Start(ctx, "ComparablesService.List")
	defer span.End()
	span.SetAttributes(attribute.Int64("property.nid", nid))

	key := "comparables:" + strconv.FormatInt(nid, 10)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.IncrCacheHit("comparables")
		return cached
	}
	s.metrics.IncrCacheMiss("comparables")

	list, err := s.fetcher.ListComparables(ctx, nid)
	if err != nil {
		s.metrics.IncrExternalError("comparables")
		s.logger.Warn("comparables fetch failed, serving empty list",
			zap.Int64("nid", nid),
			zap.Error(err))
		return []domain.Comparable{}
	}
	if list == nil {
		list = []domain.Comparable{}
	}

	s.cache.Set(key, list)
	return list
}
