package pricing_test

import (
	"testing"

	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"
)

func TestFinalizeMexico_ApprovedCapCeiling(t *testing.T) {
	// Negotiated within (0, cap]: accepted and tagged.
	res := pricing.FinalizeMexico(pricing.MexicoInput{
		OfertaBase:  180_000_000,
		CapAprobado: 200_000_000,
		Negociado:   190_000_000,
	})
	if res.Precio != 190_000_000 || !res.Negociado {
		t.Errorf("got %+v, want negotiated 190000000", res)
	}

	// Negotiated above the cap: clamped but still tagged as a negotiation.
	res = pricing.FinalizeMexico(pricing.MexicoInput{
		OfertaBase:  180_000_000,
		CapAprobado: 200_000_000,
		Negociado:   250_000_000,
	})
	if res.Precio != 200_000_000 || !res.Negociado {
		t.Errorf("got %+v, want clamped 200000000 with tag", res)
	}

	// No negotiation: the cap itself is the price, untagged.
	res = pricing.FinalizeMexico(pricing.MexicoInput{
		OfertaBase:  180_000_000,
		CapAprobado: 200_000_000,
	})
	if res.Precio != 200_000_000 || res.Negociado {
		t.Errorf("got %+v, want untagged cap", res)
	}
}

func TestFinalizeMexico_NoCapNegotiatedClampsToBase(t *testing.T) {
	res := pricing.FinalizeMexico(pricing.MexicoInput{
		OfertaBase: 180_000_000,
		Negociado:  200_000_000,
	})
	if res.Precio != 180_000_000 {
		t.Errorf("Precio = %d, want clamped to base offer 180000000", res.Precio)
	}
	if !res.Negociado {
		t.Error("a negotiated value was present, the tag must survive the clamp")
	}

	res = pricing.FinalizeMexico(pricing.MexicoInput{
		OfertaBase: 180_000_000,
		Negociado:  170_000_000,
	})
	if res.Precio != 170_000_000 || !res.Negociado {
		t.Errorf("got %+v, want negotiated 170000000", res)
	}
}

func TestFinalizeMexico_BaseOfferFallback(t *testing.T) {
	res := pricing.FinalizeMexico(pricing.MexicoInput{OfertaBase: 180_000_000})
	if res.Precio != 180_000_000 || res.Negociado {
		t.Errorf("got %+v, want untagged base offer", res)
	}
}
