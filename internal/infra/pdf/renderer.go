// Package pdf renders the downloadable offer letter with go-pdf/fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"
)

const (
	pageMargin = 18.0
	lineHeight = 7.0
)

// Renderer produces the one-page offer letter. It is stateless and safe for
// concurrent use; each Render call builds its own fpdf document.
type Renderer struct {
	companyName string
}

// NewRenderer creates a Renderer. companyName appears in the letter header.
func NewRenderer(companyName string) *Renderer {
	if companyName == "" {
		companyName = "Habi"
	}
	return &Renderer{companyName: companyName}
}

// Render builds the PDF bytes for an offer document. The breakdown section is
// skipped when doc.Breakdown is nil.
func (r *Renderer) Render(doc *domain.OfferDocument) ([]byte, error) {
	if doc == nil || doc.Deal == nil {
		return nil, fmt.Errorf("pdf: offer document without deal")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.header(pdf, tr, doc)
	r.propertySection(pdf, tr, doc.Deal)
	r.priceSection(pdf, tr, doc.Deal)
	if doc.Breakdown != nil {
		r.breakdownSection(pdf, tr, doc.Breakdown)
		r.summarySection(pdf, tr, doc)
	}
	r.footer(pdf, tr, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render offer letter: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(pdf *fpdf.Fpdf, tr func(string) string, doc *domain.OfferDocument) {
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(116, 27, 255)
	pdf.CellFormat(0, 10, tr(r.companyName), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(0, lineHeight, tr("Oferta de compra por tu inmueble"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight,
		tr("Generada el "+doc.Generated.Format("2006-01-02 15:04")+" UTC"),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) propertySection(pdf *fpdf.Fpdf, tr func(string) string, deal *domain.DealProjection) {
	r.sectionTitle(pdf, tr, "Inmueble")

	rows := [][2]string{
		{"Dirección", deal.Direccion},
		{"Tipo", deal.TipoInmueble},
		{"Área construida", withUnit(deal.AreaConstruida, " m2")},
		{"Habitaciones", deal.NumHabitaciones},
	}
	if deal.Nid != nil {
		rows = append(rows, [2]string{"NID", *deal.Nid})
	}
	r.keyValueRows(pdf, tr, rows)
	pdf.Ln(4)
}

func (r *Renderer) priceSection(pdf *fpdf.Fpdf, tr func(string) string, deal *domain.DealProjection) {
	r.sectionTitle(pdf, tr, "Oferta")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(0, 9, tr(formatMoney(deal.Bnpl1)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	label := "Pago de contado"
	if deal.Negociado {
		label = "Pago de contado (precio negociado)"
	}
	pdf.CellFormat(0, lineHeight, tr(label), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if deal.NegocioAplicaBnpl == "si" {
		r.installmentTable(pdf, tr, deal)
	}
	pdf.Ln(4)
}

func (r *Renderer) installmentTable(pdf *fpdf.Fpdf, tr func(string) string, deal *domain.DealProjection) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 238, 250)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(60, lineHeight, tr("Modalidad de pago"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, lineHeight, tr("Precio"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	rows := []struct {
		label string
		value string
	}{
		{"1 pago (contado)", deal.Bnpl1},
		{"3 cuotas", deal.Bnpl3},
		{"6 cuotas", deal.Bnpl6},
		{"9 cuotas", deal.Bnpl9},
	}
	for _, row := range rows {
		if pricing.Amount(row.value) <= 0 {
			continue
		}
		pdf.CellFormat(60, lineHeight, tr(row.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, lineHeight, tr(formatMoney(row.value)), "1", 1, "R", false, 0, "")
	}
}

func (r *Renderer) breakdownSection(pdf *fpdf.Fpdf, tr func(string) string, b *domain.CostBreakdown) {
	r.sectionTitle(pdf, tr, "Desglose de costos")

	rows := [][2]string{
		{"Precio de evaluación", formatAmount(b.AskPrice)},
		{"Comisión", formatAmount(b.Comision.Total)},
		{"Gastos mensuales", formatAmount(b.GastosMensuales.Total)},
		{"Tarifa de servicio", formatAmount(b.TarifaServicio.Total)},
		{"Trámites", formatAmount(b.Tramites.Total)},
		{"Remodelación", formatAmount(b.Remodelacion.Total)},
		{"Costos totales", formatAmount(b.CostosTotales)},
	}
	r.keyValueRows(pdf, tr, rows)
	pdf.Ln(4)
}

// summarySection prints the cash-option seller summary: evaluation price,
// commission and the net amount to receive, with all costs Habi-borne and no
// donation, which is the configurator's initial state.
func (r *Renderer) summarySection(pdf *fpdf.Fpdf, tr func(string) string, doc *domain.OfferDocument) {
	sum := pricing.ComputeSummary(pricing.SummaryInput{
		Precio:       pricing.Amount(doc.Deal.Bnpl1),
		Breakdown:    doc.Breakdown,
		FormaPago:    "contado",
		Tramites:     pricing.PayerHabi,
		Remodelacion: pricing.PayerHabi,
	})

	r.sectionTitle(pdf, tr, "Resumen (pago de contado)")
	r.keyValueRows(pdf, tr, [][2]string{
		{"Precio de venta", formatAmount(sum.PrecioVenta)},
		{"Comisión", formatAmount(sum.Comision)},
		{"Total a recibir", formatAmount(sum.TotalRecibir)},
	})
	pdf.Ln(4)
}

func (r *Renderer) footer(pdf *fpdf.Fpdf, tr func(string) string, doc *domain.OfferDocument) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(0, lineHeight,
		tr("Oferta válida hasta el "+doc.ExpiresAt.In(time.UTC).Format("2006-01-02 15:04")+" UTC"),
		"", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(0, 4,
		tr("Esta oferta está sujeta a la verificación jurídica y técnica del inmueble. "+
			"Los valores se expresan en moneda local sin decimales."),
		"", "L", false)

	if doc.Deal.Whatsapp != "" {
		pdf.Ln(2)
		pdf.CellFormat(0, 4, tr("Contacto: "+doc.Deal.Whatsapp), "", 1, "L", false, 0, "")
	}
}

func (r *Renderer) sectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(116, 27, 255)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
}

func (r *Renderer) keyValueRows(pdf *fpdf.Fpdf, tr func(string) string, rows [][2]string) {
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(80, 80, 80)
		pdf.CellFormat(50, lineHeight, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetTextColor(30, 30, 30)
		pdf.CellFormat(0, lineHeight, tr(row[1]), "", 1, "L", false, 0, "")
	}
}

func withUnit(value, unit string) string {
	if value == "" {
		return ""
	}
	return value + unit
}

// formatMoney renders a stringified integer amount with thousands separators.
func formatMoney(raw string) string {
	n := pricing.Amount(raw)
	if n <= 0 {
		return raw
	}
	return formatAmount(n)
}

func formatAmount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "$ -" + string(out)
	}
	return "$ " + string(out)
}
