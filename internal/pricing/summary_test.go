package pricing_test

import (
	"testing"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"
)

func sampleBreakdown() *domain.CostBreakdown {
	return &domain.CostBreakdown{
		Nid:           12345,
		Country:       "CO",
		AskPrice:      260_000_000,
		PrecioCompra:  220_000_000,
		CostosTotales: 40_000_000,
		Comision: domain.Comision{
			Total: 15_000_000, ComisionInterna: 8_000_000, ComisionExterna: 5_000_000, ComisionCompra: 2_000_000,
		},
		GastosMensuales: domain.GastosMensuales{Total: 5_000_000, Administracion: 5_000_000},
		TarifaServicio:  domain.TarifaServicio{Total: 8_000_000, Financiacion: 8_000_000},
		Tramites:        domain.Tramites{Total: 7_000_000, GastosNotariales: 7_000_000},
		Remodelacion:    domain.Remodelacion{Total: 5_000_000, Pintura: 5_000_000},
	}
}

func TestComputeSummary_Identity(t *testing.T) {
	b := sampleBreakdown()
	s := pricing.ComputeSummary(pricing.SummaryInput{
		Precio:       220_000_000,
		Breakdown:    b,
		FormaPago:    "contado",
		Tramites:     pricing.PayerHabi,
		Remodelacion: pricing.PayerHabi,
	})

	if s.Evaluacion != 260_000_000 {
		t.Errorf("Evaluacion = %d, want precioCompra + costosTotales", s.Evaluacion)
	}
	// Evaluation decomposes exactly into price + commission + cost buckets.
	sum := s.PrecioVenta + s.Comision + b.GastosMensuales.Total +
		b.TarifaServicio.Total + b.Tramites.Total + b.Remodelacion.Total
	if sum != s.Evaluacion {
		t.Errorf("decomposition %d != evaluacion %d", sum, s.Evaluacion)
	}
	if s.TotalRecibir != 220_000_000 {
		t.Errorf("TotalRecibir = %d; Habi pays all costs, seller keeps the price", s.TotalRecibir)
	}
}

func TestComputeSummary_NegativeCommissionIsReportedAsIs(t *testing.T) {
	b := sampleBreakdown()
	// Negotiated price above what the evaluation leaves room for: commission
	// goes negative and is presented as Habi absorbing the loss, not an error.
	s := pricing.ComputeSummary(pricing.SummaryInput{
		Precio:    245_000_000,
		Breakdown: b,
		FormaPago: "contado",
	})
	if s.Comision >= 0 {
		t.Errorf("Comision = %d, want negative", s.Comision)
	}
}

func TestComputeSummary_ClientBorneCostsAndDonation(t *testing.T) {
	b := sampleBreakdown()
	s := pricing.ComputeSummary(pricing.SummaryInput{
		Precio:       220_000_000,
		Breakdown:    b,
		FormaPago:    "6cuotas",
		Tramites:     pricing.PayerCliente,
		Remodelacion: pricing.PayerCliente,
		Donacion:     1_000_000,
	})

	if s.Tramites != b.Tramites.Total || s.Remodelacion != b.Remodelacion.Total {
		t.Errorf("client-borne buckets not applied: %+v", s)
	}
	want := int64(220_000_000 - 7_000_000 - 5_000_000 - 1_000_000)
	if s.TotalRecibir != want {
		t.Errorf("TotalRecibir = %d, want %d", s.TotalRecibir, want)
	}
	if s.Financiacion != int64(float64(220_000_000)*0.030) {
		t.Errorf("Financiacion = %d, want 3%% of the price", s.Financiacion)
	}
}

func TestComputeSummary_NilBreakdownDegrades(t *testing.T) {
	s := pricing.ComputeSummary(pricing.SummaryInput{Precio: 100, FormaPago: "contado"})
	if s.Evaluacion != 100 || s.Comision != 0 || s.TotalRecibir != 100 {
		t.Errorf("nil breakdown must degrade to the bare price: %+v", s)
	}
}

func TestFinancingRate(t *testing.T) {
	if pricing.FinancingRate("9cuotas") != 0.045 {
		t.Error("9cuotas rate")
	}
	if pricing.FinancingRate("unknown") != 0 {
		t.Error("unknown keys fall back to contado")
	}
}
