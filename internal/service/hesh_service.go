package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/EstebanCastel/landing-habi-sub000/internal/breakdown"
	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/observability"
	"github.com/EstebanCastel/landing-habi-sub000/internal/port"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var heshTracer = otel.Tracer("service/hesh")

// HeshService builds categorized cost breakdowns from the latest warehouse
// valuation row. Warehouse rows change at most a few times a day, so results
// are cached with a TTL.
type HeshService struct {
	warehouse port.HeshFetcher
	cache     port.Cache[*domain.CostBreakdown]
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewHeshService creates a new HESH breakdown service.
func NewHeshService(warehouse port.HeshFetcher, cache port.Cache[*domain.CostBreakdown], metrics *observability.Metrics, logger *zap.Logger) *HeshService {
	return &HeshService{warehouse: warehouse, cache: cache, metrics: metrics, logger: logger}
}

// GetCostBreakdown returns the breakdown for a property, nil when the
// warehouse has no row for the nid or its cost detail cannot be decoded.
// A nil breakdown is a valid (degraded) answer, not an error.
func (s *HeshService) GetCostBreakdown(ctx context.Context, nid int64, country pricing.Country) (*domain.CostBreakdown, error) {
	ctx, span := heshTracer.Start(ctx, "HeshService.GetCostBreakdown")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("property.nid", nid),
		attribute.String("property.country", string(country)),
	)

	key := cacheKey(nid, country)
	if cached, ok := s.cache.Get(key); ok {
		s.metrics.IncrCacheHit("hesh")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("hesh")

	row, err := s.warehouse.LatestRow(ctx, nid, country)
	if err != nil {
		return nil, err
	}
	if row == nil {
		s.cache.Set(key, nil)
		return nil, nil
	}

	detail, err := breakdown.Decode(row.DetalleCostos)
	if err != nil {
		var decodeErr *breakdown.DecodeError
		if !errors.As(err, &decodeErr) {
			return nil, err
		}
		s.metrics.IncrDecodeFailure()
		s.logger.Warn("cost detail decode failed, serving null breakdown",
			zap.Int64("nid", nid),
			zap.String("country", string(country)),
			zap.Error(err))
		s.cache.Set(key, nil)
		return nil, nil
	}

	bd := breakdown.Build(country, row, detail)
	s.cache.Set(key, bd)
	return bd, nil
}

func cacheKey(nid int64, country pricing.Country) string {
	return "hesh:" + strconv.FormatInt(nid, 10) + ":" + string(country)
}
