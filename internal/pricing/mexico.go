package pricing

// MexicoInput carries the three numbers the Mexico price finalizer works
// with. Mexico has no installment product, so there is a single price.
type MexicoInput struct {
	// OfertaBase is oferta_final_prestamo_mx_calculada, the MX equivalent of
	// Colombia's committee price.
	OfertaBase int64
	// CapAprobado is final_final_aprobado_bo_prestamo_mx_calculo, the
	// back-office approved ceiling. 0 means no cap was approved.
	CapAprobado int64
	// Negociado is the advisor-entered override. 0 means no negotiation
	// occurred.
	Negociado int64
}

// MexicoResult is the single final price plus the negotiation tag the UI
// uses for transparency about overrides.
type MexicoResult struct {
	Precio    int64
	Negociado bool
}

// FinalizeMexico resolves the Mexico purchase price with a three-level
// precedence: an approved cap acts as a ceiling for the negotiated value (a
// clamped override is still tagged as a negotiation); without a cap the
// negotiated value applies up to the base offer; without either, the base
// offer stands untagged.
func FinalizeMexico(in MexicoInput) MexicoResult {
	if in.CapAprobado > 0 {
		if in.Negociado > 0 {
			return MexicoResult{Precio: clampToLimit(in.Negociado, in.CapAprobado), Negociado: true}
		}
		return MexicoResult{Precio: in.CapAprobado}
	}
	if in.Negociado > 0 {
		return MexicoResult{Precio: clampToLimit(in.Negociado, in.OfertaBase), Negociado: true}
	}
	return MexicoResult{Precio: in.OfertaBase}
}
