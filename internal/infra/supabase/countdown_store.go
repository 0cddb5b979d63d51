package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
)

// countdownRow maps the offer_countdowns table.
type countdownRow struct {
	ID        string `json:"id"`
	DealUUID  string `json:"deal_uuid"`
	StartedAt string `json:"started_at"`
}

// OldestCountdown returns the earliest countdown row for a deal, nil when no
// row exists. Ordering by started_at makes the visible countdown stable even
// if a concurrent first read double-inserted.
func (c *Client) OldestCountdown(ctx context.Context, dealUUID string) (*domain.Countdown, error) {
	ctx, span := tracer.Start(ctx, "Supabase.OldestCountdown")
	defer span.End()
	span.SetAttributes(attribute.String("deal.uuid", dealUUID))

	var countdown *domain.Countdown

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("offer_countdowns?deal_uuid=eq.%s&order=started_at.asc&limit=1",
				url.QueryEscape(dealUUID))
			body, err := c.doRequest(ctx, "GET", path, nil)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				return nil
			}

			var rows []countdownRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode countdown: %w", err)
			}
			if len(rows) == 0 {
				return nil
			}

			startedAt, err := time.Parse(time.RFC3339, rows[0].StartedAt)
			if err != nil {
				return fmt.Errorf("failed to parse started_at: %w", err)
			}
			countdown = &domain.Countdown{
				ID:        rows[0].ID,
				DealUUID:  rows[0].DealUUID,
				StartedAt: startedAt,
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/countdown", Err: err}
	}
	return countdown, nil
}

// CreateCountdown inserts a countdown row. Never updates: once issued a
// countdown is immutable.
func (c *Client) CreateCountdown(ctx context.Context, countdown *domain.Countdown) error {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCountdown")
	defer span.End()
	span.SetAttributes(attribute.String("deal.uuid", countdown.DealUUID))

	payload, err := json.Marshal(countdownRow{
		ID:        countdown.ID,
		DealUUID:  countdown.DealUUID,
		StartedAt: countdown.StartedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	_, err = c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			_, err := c.doRequest(ctx, "POST", "offer_countdowns", payload)
			return err
		})
	})

	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/countdown", Err: err}
	}
	return nil
}
