package service

import (
	"context"
	"time"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var countdownTracer = otel.Tracer("service/countdown")

// CountdownService issues and reads the per-deal offer countdown. The row is
// immutable once created: re-visiting the page never restarts the clock.
type CountdownService struct {
	store  port.CountdownStore
	logger *zap.Logger
	now    func() time.Time
}

// NewCountdownService creates a new countdown service.
func NewCountdownService(store port.CountdownStore, logger *zap.Logger) *CountdownService {
	return &CountdownService{store: store, logger: logger, now: time.Now}
}

// GetOrIssue returns the deal's countdown, creating it on first visit.
// Two concurrent first visits may both insert; the oldest row wins, so the
// re-read after insert keeps both callers consistent.
func (s *CountdownService) GetOrIssue(ctx context.Context, dealUUID string) (*domain.Countdown, error) {
	ctx, span := countdownTracer.Start(ctx, "CountdownService.GetOrIssue")
	defer span.End()
	span.SetAttributes(attribute.String("deal.uuid", dealUUID))

	if dealUUID == "" {
		return nil, &domain.ErrValidation{Field: "deal_uuid", Message: "required"}
	}

	existing, err := s.store.OldestCountdown(ctx, dealUUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	c := &domain.Countdown{
		ID:        uuid.NewString(),
		DealUUID:  dealUUID,
		StartedAt: s.now().UTC(),
	}
	if err := s.store.CreateCountdown(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("countdown started",
		zap.String("deal_uuid", dealUUID),
		zap.Time("started_at", c.StartedAt))

	created, err := s.store.OldestCountdown(ctx, dealUUID)
	if err != nil {
		return nil, err
	}
	if created != nil {
		return created, nil
	}
	return c, nil
}
