// Package hubspot provides a client for the HubSpot CRM v3 API.
// Deals are the only object type this service reads.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("hubspot")

// DealProperties is the full property set the reconciler reads. Requested
// explicitly on every fetch so HubSpot does not trim the response.
var DealProperties = []string{
	"deal_uuid",
	"pipeline",
	"precio_comite",
	"precio_comite_original",
	"bnpl_1", "bnpl_3", "bnpl_6", "bnpl_9",
	"bnpl_1_comercial", "bnpl_3_comercial", "bnpl_6_comercial", "bnpl_9_comercial",
	"aprobacion_subsidio_lider", "valor_subsidio_lider",
	"aprobacion_subsidio_director", "valor_subsidio_director",
	"oferta_final_prestamo_mx_calculada",
	"final_final_aprobado_bo_prestamo_mx_calculo",
	"valor_negociado_mx",
	"negocio_aplica_bnpl",
	"nid",
	"direccion", "area_construida", "num_habitaciones", "tipo_inmueble",
	"whatsapp_asesor",
}

// Client wraps HTTP calls to the HubSpot CRM API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a HubSpot client.
func NewClient(httpClient *http.Client, baseURL, token string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		cb:         cb,
		cfg:        cfg,
		logger:     logger,
	}
}

// doRequest executes an authenticated request against the CRM API.
func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	if c.token == "" {
		return nil, 0, &domain.ErrUpstreamMisconfigured{Service: "hubspot"}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.logger.Error("hubspot: failed to create request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, 0, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("hubspot: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("hubspot: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return nil, resp.StatusCode, fmt.Errorf("hubspot returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, resp.StatusCode, nil
}

// dealObject maps the CRM's deal envelope.
type dealObject struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// DealByID fetches a deal by its HubSpot object id.
func (c *Client) DealByID(ctx context.Context, dealID string) (*domain.DealRecord, error) {
	ctx, span := tracer.Start(ctx, "HubSpot.DealByID")
	defer span.End()
	span.SetAttributes(attribute.String("deal.id", dealID))

	var record *domain.DealRecord

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("/crm/v3/objects/deals/%s?properties=%s",
				url.PathEscape(dealID), strings.Join(DealProperties, ","))
			body, status, err := c.doRequest(ctx, http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			if status == http.StatusNotFound || body == nil {
				return nil
			}

			var obj dealObject
			if err := json.Unmarshal(body, &obj); err != nil {
				return fmt.Errorf("failed to decode deal: %w", err)
			}
			record = &domain.DealRecord{ID: obj.ID, Properties: obj.Properties}
			return nil
		})
	})

	if err != nil {
		return nil, wrapError(err)
	}
	if record == nil {
		return nil, &domain.ErrNotFound{Resource: "deal", ID: dealID}
	}
	return record, nil
}

// searchRequest is the CRM search payload for the deal_uuid custom property.
type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties"`
	Limit        int           `json:"limit"`
}

type filterGroup struct {
	Filters []filter `json:"filters"`
}

type filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchResponse struct {
	Total   int          `json:"total"`
	Results []dealObject `json:"results"`
}

// DealByUUID fetches a deal by the custom deal_uuid property via the CRM
// search endpoint.
func (c *Client) DealByUUID(ctx context.Context, dealUUID string) (*domain.DealRecord, error) {
	ctx, span := tracer.Start(ctx, "HubSpot.DealByUUID")
	defer span.End()
	span.SetAttributes(attribute.String("deal.uuid", dealUUID))

	payload, err := json.Marshal(searchRequest{
		FilterGroups: []filterGroup{{
			Filters: []filter{{PropertyName: "deal_uuid", Operator: "EQ", Value: dealUUID}},
		}},
		Properties: DealProperties,
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}

	var record *domain.DealRecord

	_, err = c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, _, err := c.doRequest(ctx, http.MethodPost, "/crm/v3/objects/deals/search", payload)
			if err != nil {
				return err
			}

			var resp searchResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to decode search response: %w", err)
			}
			if resp.Total == 0 || len(resp.Results) == 0 {
				return nil
			}

			obj := resp.Results[0]
			record = &domain.DealRecord{ID: obj.ID, Properties: obj.Properties}
			return nil
		})
	})

	if err != nil {
		return nil, wrapError(err)
	}
	if record == nil {
		return nil, &domain.ErrNotFound{Resource: "deal", ID: dealUUID}
	}
	return record, nil
}

// wrapError keeps typed domain errors intact and tags everything else as an
// external-service failure.
func wrapError(err error) error {
	switch err.(type) {
	case *domain.ErrNotFound, *domain.ErrUpstreamMisconfigured:
		return err
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return &domain.ErrCircuitOpen{Service: "hubspot"}
	}
	return &domain.ErrExternalService{Service: "hubspot", Err: err}
}
