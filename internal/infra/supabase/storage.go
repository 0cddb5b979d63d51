package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Upload stores an object in the offers bucket, overwriting any previous
// version of the same name.
func (c *Client) Upload(ctx context.Context, name, contentType string, data []byte) error {
	ctx, span := tracer.Start(ctx, "Supabase.Upload")
	defer span.End()
	span.SetAttributes(attribute.String("object.name", name), attribute.Int("object.size", len(data)))

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, name)

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
			if err != nil {
				return err
			}
			req.Header.Set("apikey", c.apiKey)
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.serviceRoleKey))
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("x-upsert", "true")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				body, _ := io.ReadAll(resp.Body)
				c.logger.Warn("supabase storage: upload failed",
					zap.String("object", name),
					zap.Int("status", resp.StatusCode),
					zap.String("body", string(body)),
				)
				return fmt.Errorf("storage upload returned status %d", resp.StatusCode)
			}
			return nil
		})
	})

	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/storage", Err: err}
	}
	return nil
}

// Exists reports whether an object is already in the bucket.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Supabase.Exists")
	defer span.End()
	span.SetAttributes(attribute.String("object.name", name))

	var exists bool

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.PublicURL(name), nil)
			if err != nil {
				return err
			}
			req.Header.Set("apikey", c.apiKey)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusOK:
				exists = true
				return nil
			case resp.StatusCode == http.StatusNotFound:
				exists = false
				return nil
			default:
				return fmt.Errorf("storage head returned status %d", resp.StatusCode)
			}
		})
	})

	if err != nil {
		return false, &domain.ErrExternalService{Service: "supabase/storage", Err: err}
	}
	return exists, nil
}

// PublicURL builds the public download URL for an object in the offers
// bucket.
func (c *Client) PublicURL(name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, name)
}
