package pricing

import (
	"math"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
)

// CostPayer says who absorbs a cost bucket in the configurator: Habi or the
// seller ("cliente").
type CostPayer string

const (
	PayerHabi    CostPayer = "habi"
	PayerCliente CostPayer = "cliente"
)

// PaymentOption is one entry of the installment selector, with the financing
// rate shown for that cadence. Kept as versioned configuration so the table
// can change without touching the arithmetic.
type PaymentOption struct {
	Key           string
	Installments  int
	FinancingRate float64
}

// PaymentOptions is the payment-option table the configurator renders.
var PaymentOptions = []PaymentOption{
	{Key: "contado", Installments: 1, FinancingRate: 0},
	{Key: "3cuotas", Installments: 3, FinancingRate: 0.015},
	{Key: "6cuotas", Installments: 6, FinancingRate: 0.030},
	{Key: "9cuotas", Installments: 9, FinancingRate: 0.045},
}

// FinancingRate returns the rate for a forma de pago key, 0 for unknown keys
// (treated as contado).
func FinancingRate(formaPago string) float64 {
	for _, opt := range PaymentOptions {
		if opt.Key == formaPago {
			return opt.FinancingRate
		}
	}
	return 0
}

// SummaryInput is the configurator state plus the data both halves of the
// page already hold: the selected ladder price and the warehouse breakdown.
type SummaryInput struct {
	// Precio is the resolved ladder price for the selected payment option.
	Precio int64
	// Breakdown may be nil when the warehouse had no row; the summary then
	// degrades to the price alone.
	Breakdown *domain.CostBreakdown

	FormaPago    string
	Tramites     CostPayer
	Remodelacion CostPayer
	Donacion     int64
}

// Summary is the aggregate the configurator displays. It is recomputed here
// (server side) and nowhere else; the PDF pipeline and the proxy both use it.
type Summary struct {
	Evaluacion      int64 `json:"evaluacion"`
	PrecioVenta     int64 `json:"precioVenta"`
	Comision        int64 `json:"comision"`
	Financiacion    int64 `json:"financiacion"`
	GastosMensuales int64 `json:"gastosMensuales"`
	TarifaServicio  int64 `json:"tarifaServicio"`
	Tramites        int64 `json:"tramites"`
	Remodelacion    int64 `json:"remodelacion"`
	Donacion        int64 `json:"donacion"`
	TotalRecibir    int64 `json:"totalRecibir"`
}

// ComputeSummary reconstructs the evaluation price by adding every cost
// bucket back onto the cash price, then derives the commission as the
// residual. When the negotiated price exceeds the evaluation minus costs the
// commission goes negative and is reported as-is: the UI presents that as
// Habi absorbing the loss.
func ComputeSummary(in SummaryInput) Summary {
	s := Summary{
		PrecioVenta: in.Precio,
		Donacion:    in.Donacion,
	}

	s.Financiacion = int64(math.Round(float64(in.Precio) * FinancingRate(in.FormaPago)))

	if b := in.Breakdown; b != nil {
		s.Evaluacion = b.PrecioCompra + b.CostosTotales
		s.GastosMensuales = b.GastosMensuales.Total
		s.TarifaServicio = b.TarifaServicio.Total
		s.Comision = s.Evaluacion - in.Precio - b.GastosMensuales.Total -
			b.TarifaServicio.Total - b.Tramites.Total - b.Remodelacion.Total

		if in.Tramites == PayerCliente {
			s.Tramites = b.Tramites.Total
		}
		if in.Remodelacion == PayerCliente {
			s.Remodelacion = b.Remodelacion.Total
		}
	} else {
		s.Evaluacion = in.Precio
	}

	s.TotalRecibir = in.Precio - s.Tramites - s.Remodelacion - s.Donacion
	return s
}
