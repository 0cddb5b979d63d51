package domain

// CostBreakdown is the categorized valuation/cost view built from the most
// recent HESH warehouse row for a property. Bucket totals always equal the
// sum of their sub-items; the builders enforce that by construction.
type CostBreakdown struct {
	Nid     int64  `json:"nid"`
	Country string `json:"country"`

	AskPrice      int64 `json:"askPrice"`
	PrecioCompra  int64 `json:"precioCompra"`
	PrecioComite  int64 `json:"precioComite"`
	CostosTotales int64 `json:"costosTotales"`

	Comision        Comision        `json:"comision"`
	GastosMensuales GastosMensuales `json:"gastosMensuales"`
	TarifaServicio  TarifaServicio  `json:"tarifaServicio"`
	Tramites        Tramites        `json:"tramites"`
	Remodelacion    Remodelacion    `json:"remodelacion"`
}

// Comision covers sales commissions (internal, external, purchase-side).
type Comision struct {
	Total           int64 `json:"total"`
	ComisionInterna int64 `json:"comisionInterna"`
	ComisionExterna int64 `json:"comisionExterna"`
	ComisionCompra  int64 `json:"comisionCompra"`
}

// GastosMensuales covers monthly holding costs while Habi owns the property.
// Aseo is only populated for Colombia; Mexico folds cleaning into the
// renovation bucket.
type GastosMensuales struct {
	Total             int64 `json:"total"`
	Administracion    int64 `json:"administracion"`
	ServiciosPublicos int64 `json:"serviciosPublicos"`
	Predial           int64 `json:"predial"`
	Aseo              int64 `json:"aseo"`
	Vigilancia        int64 `json:"vigilancia"`
}

// TarifaServicio covers the service/financing fee. Margen is the TuHabi
// margin, which Mexico computes with a flat formula instead of a negotiated
// percentage.
type TarifaServicio struct {
	Total        int64 `json:"total"`
	Financiacion int64 `json:"financiacion"`
	Seguros      int64 `json:"seguros"`
	Margen       int64 `json:"margen"`
}

// Tramites covers legal/notary transaction costs.
type Tramites struct {
	Total            int64 `json:"total"`
	GastosNotariales int64 `json:"gastosNotariales"`
	GastosRegistro   int64 `json:"gastosRegistro"`
	EstudioTitulos   int64 `json:"estudioTitulos"`
}

// Remodelacion covers renovation work.
type Remodelacion struct {
	Total        int64 `json:"total"`
	Reparaciones int64 `json:"reparaciones"`
	Pintura      int64 `json:"pintura"`
	Acabados     int64 `json:"acabados"`
	Aseo         int64 `json:"aseo"`
}

// HeshRow is the raw warehouse row a breakdown is built from. DetalleCostos
// holds the serialized cost map (Python-literal syntax) that the breakdown
// decoder normalizes and parses.
type HeshRow struct {
	Nid           int64
	Country       string
	AskPrice      float64
	PrecioCompra  float64
	PrecioComite  float64
	DetalleCostos string
}
