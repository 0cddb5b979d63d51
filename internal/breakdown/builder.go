package breakdown

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"
)

// TuHabi margin formula for Mexico: a flat 1.5% of the evaluation plus a
// fixed MXN fee, instead of Colombia's negotiated percentage.
var (
	mxMarginRate = decimal.NewFromFloat(0.015)
	mxMarginFee  = decimal.NewFromInt(10_000)
)

func round(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	return int64(math.Round(f))
}

// Build dispatches to the country-specific builder.
func Build(country pricing.Country, row *domain.HeshRow, detail map[string]any) *domain.CostBreakdown {
	if country == pricing.CountryMexico {
		return BuildMexico(row, detail)
	}
	return BuildColombia(row, detail)
}

// BuildColombia assembles the Colombia cost breakdown from a decoded cost
// detail map. Every monetary field defaults to 0 when absent or non-numeric;
// bucket totals are sums of their sub-items by construction.
func BuildColombia(row *domain.HeshRow, detail map[string]any) *domain.CostBreakdown {
	b := &domain.CostBreakdown{
		Nid:          row.Nid,
		Country:      string(pricing.CountryColombia),
		AskPrice:     round(row.AskPrice),
		PrecioCompra: round(row.PrecioCompra),
		PrecioComite: round(row.PrecioComite),
	}

	b.Comision = domain.Comision{
		ComisionInterna: numAt(detail, "comision_interna"),
		ComisionExterna: numAt(detail, "comision_externa"),
		ComisionCompra:  numAt(detail, "comision_compra"),
	}
	b.Comision.Total = b.Comision.ComisionInterna + b.Comision.ComisionExterna + b.Comision.ComisionCompra

	b.GastosMensuales = domain.GastosMensuales{
		Administracion:    numAt(detail, "administracion"),
		ServiciosPublicos: numAt(detail, "servicios_publicos"),
		Predial:           numAt(detail, "predial"),
		Aseo:              numAt(detail, "aseo"),
		Vigilancia:        numAt(detail, "vigilancia"),
	}
	b.GastosMensuales.Total = b.GastosMensuales.Administracion + b.GastosMensuales.ServiciosPublicos +
		b.GastosMensuales.Predial + b.GastosMensuales.Aseo + b.GastosMensuales.Vigilancia

	b.TarifaServicio = domain.TarifaServicio{
		Financiacion: numAt(detail, "financiacion"),
		Seguros:      numAt(detail, "seguros"),
		Margen:       numAt(detail, "margen"),
	}
	b.TarifaServicio.Total = b.TarifaServicio.Financiacion + b.TarifaServicio.Seguros + b.TarifaServicio.Margen

	b.Tramites = domain.Tramites{
		GastosNotariales: numAt(detail, "gastos_notariales"),
		GastosRegistro:   numAt(detail, "gastos_registro"),
		EstudioTitulos:   numAt(detail, "estudio_titulos"),
	}
	b.Tramites.Total = b.Tramites.GastosNotariales + b.Tramites.GastosRegistro + b.Tramites.EstudioTitulos

	b.Remodelacion = domain.Remodelacion{
		Reparaciones: numAt(detail, "reparaciones"),
		Pintura:      numAt(detail, "pintura"),
		Acabados:     numAt(detail, "acabados"),
	}
	b.Remodelacion.Total = b.Remodelacion.Reparaciones + b.Remodelacion.Pintura + b.Remodelacion.Acabados

	b.CostosTotales = b.Comision.Total + b.GastosMensuales.Total + b.TarifaServicio.Total +
		b.Tramites.Total + b.Remodelacion.Total
	return b
}

// BuildMexico assembles the Mexico cost breakdown. Relative to Colombia the
// detail map nests costos_fijos and costos_variables one level deeper, the
// TuHabi margin is the flat formula, and the cleaning cost (aseo) is folded
// into the renovation bucket instead of monthly holding costs.
func BuildMexico(row *domain.HeshRow, detail map[string]any) *domain.CostBreakdown {
	fijos := mapAt(detail, "costos_fijos")
	variables := mapAt(detail, "costos_variables")

	b := &domain.CostBreakdown{
		Nid:          row.Nid,
		Country:      string(pricing.CountryMexico),
		AskPrice:     round(row.AskPrice),
		PrecioCompra: round(row.PrecioCompra),
		PrecioComite: round(row.PrecioComite),
	}

	b.Comision = domain.Comision{
		ComisionInterna: numAt(variables, "comision_interna"),
		ComisionExterna: numAt(variables, "comision_externa"),
		ComisionCompra:  numAt(variables, "comision_compra"),
	}
	b.Comision.Total = b.Comision.ComisionInterna + b.Comision.ComisionExterna + b.Comision.ComisionCompra

	b.GastosMensuales = domain.GastosMensuales{
		Administracion:    numAt(fijos, "administracion"),
		ServiciosPublicos: numAt(fijos, "servicios_publicos"),
		Predial:           numAt(fijos, "predial"),
		Vigilancia:        numAt(fijos, "vigilancia"),
	}
	b.GastosMensuales.Total = b.GastosMensuales.Administracion + b.GastosMensuales.ServiciosPublicos +
		b.GastosMensuales.Predial + b.GastosMensuales.Vigilancia

	margen := decimal.NewFromInt(b.AskPrice).Mul(mxMarginRate).Add(mxMarginFee).Round(0).IntPart()
	b.TarifaServicio = domain.TarifaServicio{
		Financiacion: numAt(variables, "financiacion"),
		Seguros:      numAt(fijos, "seguros"),
		Margen:       margen,
	}
	b.TarifaServicio.Total = b.TarifaServicio.Financiacion + b.TarifaServicio.Seguros + b.TarifaServicio.Margen

	b.Tramites = domain.Tramites{
		GastosNotariales: numAt(fijos, "gastos_notariales"),
		GastosRegistro:   numAt(fijos, "gastos_registro"),
		EstudioTitulos:   numAt(fijos, "estudio_titulos"),
	}
	b.Tramites.Total = b.Tramites.GastosNotariales + b.Tramites.GastosRegistro + b.Tramites.EstudioTitulos

	b.Remodelacion = domain.Remodelacion{
		Reparaciones: numAt(variables, "reparaciones"),
		Pintura:      numAt(variables, "pintura"),
		Acabados:     numAt(variables, "acabados"),
		Aseo:         numAt(fijos, "aseo"),
	}
	b.Remodelacion.Total = b.Remodelacion.Reparaciones + b.Remodelacion.Pintura +
		b.Remodelacion.Acabados + b.Remodelacion.Aseo

	b.CostosTotales = b.Comision.Total + b.GastosMensuales.Total + b.TarifaServicio.Total +
		b.Tramites.Total + b.Remodelacion.Total
	return b
}
