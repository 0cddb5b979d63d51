// Package warehouse reads the HESH valuation dataset from BigQuery.
package warehouse

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("warehouse")

// Client reads HESH rows from BigQuery.
type Client struct {
	bq      *bigquery.Client
	dataset string
	table   string
	logger  *zap.Logger
}

// NewClient creates a warehouse client on top of an authenticated BigQuery
// client.
func NewClient(bq *bigquery.Client, dataset, table string, logger *zap.Logger) *Client {
	return &Client{bq: bq, dataset: dataset, table: table, logger: logger}
}

// heshRow maps query columns. NULLs are collapsed in SQL so the struct stays
// plain.
type heshRow struct {
	Nid           int64   `bigquery:"nid"`
	Country       string  `bigquery:"country"`
	AskPrice      float64 `bigquery:"ask_price"`
	PrecioCompra  float64 `bigquery:"precio_compra"`
	PrecioComite  float64 `bigquery:"precio_comite"`
	DetalleCostos string  `bigquery:"detalle_costos"`
}

// LatestRow returns the most recent HESH row for a property, nil when the
// warehouse has nothing for that nid/country.
func (c *Client) LatestRow(ctx context.Context, nid int64, country pricing.Country) (*domain.HeshRow, error) {
	ctx, span := tracer.Start(ctx, "Warehouse.LatestRow")
	defer span.End()
	span.SetAttributes(attribute.Int64("property.nid", nid), attribute.String("country", string(country)))

	query := c.bq.Query(fmt.Sprintf(`
		SELECT
			nid,
			country,
			IFNULL(ask_price, 0) AS ask_price,
			IFNULL(precio_compra, 0) AS precio_compra,
			IFNULL(precio_comite, 0) AS precio_comite,
			IFNULL(detalle_costos, '') AS detalle_costos
		FROM `+"`%s.%s`"+`
		WHERE nid = @nid AND country = @country
		ORDER BY fecha_creacion DESC
		LIMIT 1`, c.dataset, c.table))
	query.Parameters = []bigquery.QueryParameter{
		{Name: "nid", Value: nid},
		{Name: "country", Value: string(country)},
	}

	it, err := query.Read(ctx)
	if err != nil {
		c.logger.Error("warehouse: query failed",
			zap.Int64("nid", nid),
			zap.String("country", string(country)),
			zap.Error(err),
		)
		return nil, &domain.ErrExternalService{Service: "bigquery/hesh", Err: err}
	}

	var row heshRow
	err = it.Next(&row)
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "bigquery/hesh", Err: err}
	}

	return &domain.HeshRow{
		Nid:           row.Nid,
		Country:       row.Country,
		AskPrice:      row.AskPrice,
		PrecioCompra:  row.PrecioCompra,
		PrecioComite:  row.PrecioComite,
		DetalleCostos: row.DetalleCostos,
	}, nil
}
