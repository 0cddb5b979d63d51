package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
)

// comparableRow maps the comparables table.
type comparableRow struct {
	ID        string  `json:"id"`
	Nid       int64   `json:"nid"`
	Direccion string  `json:"direccion"`
	Precio    float64 `json:"precio"`
	Area      float64 `json:"area"`
	Latitud   float64 `json:"latitud"`
	Longitud  float64 `json:"longitud"`
	Features  string  `json:"features"`
}

// ListComparables returns the reference properties stored for a nid, capped
// at what the map display can show.
func (c *Client) ListComparables(ctx context.Context, nid int64) ([]domain.Comparable, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListComparables")
	defer span.End()
	span.SetAttributes(attribute.Int64("property.nid", nid))

	var comparables []domain.Comparable

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("comparables?nid=eq.%d&order=precio.asc&limit=20", nid)
			body, err := c.doRequest(ctx, "GET", path, nil)
			if err != nil {
				return err
			}
			if body == nil || string(body) == "[]" {
				comparables = []domain.Comparable{}
				return nil
			}

			var rows []comparableRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode comparables: %w", err)
			}

			comparables = make([]domain.Comparable, 0, len(rows))
			for _, r := range rows {
				comparables = append(comparables, domain.Comparable{
					ID:        r.ID,
					Nid:       r.Nid,
					Direccion: r.Direccion,
					Precio:    r.Precio,
					Area:      r.Area,
					Latitud:   r.Latitud,
					Longitud:  r.Longitud,
					Features:  r.Features,
				})
			}
			return nil
		})
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/comparables", Err: err}
	}
	return comparables, nil
}
