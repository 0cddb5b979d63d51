package breakdown

import (
	"testing"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"
)

func coRow() *domain.HeshRow {
	return &domain.HeshRow{
		Nid:          90210,
		Country:      "CO",
		AskPrice:     260_000_000.4,
		PrecioCompra: 220_000_000,
		PrecioComite: 215_000_000,
	}
}

func coDetail() map[string]any {
	return map[string]any{
		"comision_interna":   8_000_000.0,
		"comision_externa":   5_000_000.0,
		"comision_compra":    2_000_000.0,
		"administracion":     1_200_000.0,
		"servicios_publicos": 600_000.0,
		"predial":            900_000.0,
		"aseo":               300_000.0,
		"vigilancia":         nil, // null in the warehouse
		"financiacion":       4_000_000.0,
		"seguros":            1_000_000.0,
		"margen":             6_000_000.0,
		"gastos_notariales":  3_500_000.0,
		"gastos_registro":    2_500_000.0,
		"estudio_titulos":    1_000_000.0,
		"reparaciones":       2_000_000.0,
		"pintura":            1_500_000.0,
		"acabados":           500_000.0,
	}
}

func TestBuildColombia_BucketSums(t *testing.T) {
	b := BuildColombia(coRow(), coDetail())

	if b.Comision.Total != b.Comision.ComisionInterna+b.Comision.ComisionExterna+b.Comision.ComisionCompra {
		t.Error("comision total is not the sum of its sub-items")
	}
	wantGastos := b.GastosMensuales.Administracion + b.GastosMensuales.ServiciosPublicos +
		b.GastosMensuales.Predial + b.GastosMensuales.Aseo + b.GastosMensuales.Vigilancia
	if b.GastosMensuales.Total != wantGastos {
		t.Error("gastosMensuales total mismatch")
	}
	if b.TarifaServicio.Total != b.TarifaServicio.Financiacion+b.TarifaServicio.Seguros+b.TarifaServicio.Margen {
		t.Error("tarifaServicio total mismatch")
	}
	if b.Tramites.Total != b.Tramites.GastosNotariales+b.Tramites.GastosRegistro+b.Tramites.EstudioTitulos {
		t.Error("tramites total mismatch")
	}
	if b.Remodelacion.Total != b.Remodelacion.Reparaciones+b.Remodelacion.Pintura+b.Remodelacion.Acabados+b.Remodelacion.Aseo {
		t.Error("remodelacion total mismatch")
	}

	wantTotal := b.Comision.Total + b.GastosMensuales.Total + b.TarifaServicio.Total +
		b.Tramites.Total + b.Remodelacion.Total
	if b.CostosTotales != wantTotal {
		t.Errorf("CostosTotales = %d, want %d", b.CostosTotales, wantTotal)
	}

	// CO keeps cleaning in the monthly bucket.
	if b.GastosMensuales.Aseo != 300_000 || b.Remodelacion.Aseo != 0 {
		t.Error("CO must keep aseo under gastosMensuales")
	}
	// Null vigilancia defaulted to 0 without affecting the sum.
	if b.GastosMensuales.Vigilancia != 0 {
		t.Error("null field must default to 0")
	}
	if b.AskPrice != 260_000_000 {
		t.Errorf("AskPrice = %d, want rounded row value", b.AskPrice)
	}
}

func TestBuildColombia_EmptyDetail(t *testing.T) {
	b := BuildColombia(coRow(), map[string]any{})
	if b.CostosTotales != 0 {
		t.Errorf("empty detail must produce all-zero buckets, got %d", b.CostosTotales)
	}
	if b.PrecioCompra != 220_000_000 {
		t.Error("row-level fields must survive an empty detail")
	}
}

func TestBuildMexico_NestingAndAseoPlacement(t *testing.T) {
	row := &domain.HeshRow{Nid: 555, Country: "MX", AskPrice: 2_000_000, PrecioCompra: 1_700_000}
	detail := map[string]any{
		"costos_fijos": map[string]any{
			"administracion":    10_000.0,
			"predial":           8_000.0,
			"aseo":              5_000.0,
			"gastos_notariales": 30_000.0,
		},
		"costos_variables": map[string]any{
			"comision_interna": 40_000.0,
			"financiacion":     25_000.0,
			"reparaciones":     15_000.0,
		},
	}

	b := BuildMexico(row, detail)

	// MX folds cleaning into renovation, not monthly holding costs.
	if b.GastosMensuales.Aseo != 0 {
		t.Error("MX gastosMensuales must not carry aseo")
	}
	if b.Remodelacion.Aseo != 5_000 {
		t.Errorf("MX remodelacion.aseo = %d, want 5000", b.Remodelacion.Aseo)
	}
	if b.Remodelacion.Total != 15_000+5_000 {
		t.Errorf("MX remodelacion total = %d", b.Remodelacion.Total)
	}

	// Flat TuHabi margin: 1.5% of the evaluation plus the fixed fee.
	wantMargen := int64(2_000_000)*15/1000 + 10_000
	if b.TarifaServicio.Margen != wantMargen {
		t.Errorf("Margen = %d, want %d", b.TarifaServicio.Margen, wantMargen)
	}
	if b.TarifaServicio.Total != b.TarifaServicio.Financiacion+b.TarifaServicio.Seguros+b.TarifaServicio.Margen {
		t.Error("tarifaServicio total mismatch")
	}
}

func TestBuild_Dispatch(t *testing.T) {
	if got := Build(pricing.CountryColombia, coRow(), coDetail()); got.Country != "CO" {
		t.Error("CO dispatch")
	}
	if got := Build(pricing.CountryMexico, coRow(), map[string]any{}); got.Country != "MX" {
		t.Error("MX dispatch")
	}
}
