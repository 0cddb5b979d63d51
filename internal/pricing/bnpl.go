package pricing

import (
	"math"
	"strings"
)

// BNPLInput carries everything the Colombia installment reconciler needs.
// All amounts are integer currency units; 0 means "absent" for commercial
// overrides and subsidies.
type BNPLInput struct {
	PrecioComite int64

	// Subsidy approval flags are raw CRM strings, gated on "si"
	// (case/whitespace-insensitive).
	SubsidioLiderAprobado    string
	SubsidioLider            int64
	SubsidioDirectorAprobado string
	SubsidioDirector         int64

	// Base ladder as it existed before any commercial negotiation. The caps
	// are derived from these, never from negotiated values.
	Base1, Base3, Base6, Base9 int64

	// Advisor-negotiated overrides per tier; 0/absent means no negotiation
	// for that tier.
	Comercial1, Comercial3, Comercial6, Comercial9 int64
}

// BNPLResult is the resolved ladder plus the per-tier caps it was clamped to.
type BNPLResult struct {
	Bnpl1, Bnpl3, Bnpl6, Bnpl9         int64
	Limite1, Limite3, Limite6, Limite9 int64
	Negociado                          bool
}

// subsidyApproved reports whether a raw CRM approval flag reads "si".
func subsidyApproved(flag string) bool {
	return strings.EqualFold(strings.TrimSpace(flag), "si")
}

// growthFromBase returns the relative growth of a base tier over the
// committee price. A zero committee price degenerates to 0 rather than
// dividing by zero.
func growthFromBase(base, precioComite int64) float64 {
	if precioComite == 0 {
		return 0
	}
	return float64(base-precioComite) / float64(precioComite)
}

// stepRatio is the multiplier between two successive base tiers, used to
// derive a missing negotiated tier from the previous resolved one. Either
// base being zero collapses the ratio to 1.
func stepRatio(prevBase, nextBase int64) float64 {
	if prevBase == 0 || nextBase == 0 {
		return 1
	}
	return float64(nextBase) / float64(prevBase)
}

func clampToLimit(v, limit int64) int64 {
	if v > limit {
		return limit
	}
	return v
}

// ReconcileBNPL merges the committee price, approved subsidies and
// advisor-negotiated overrides into the final 1/3/6/9-installment ladder.
//
// The tier-1 cap is the committee price plus approved subsidies; the other
// caps scale it by each tier's base growth ratio. When no tier was negotiated
// the base ladder passes through untouched. Otherwise each tier resolves to
// its override clamped (inclusively) at its cap, or, when the override is
// absent, compounds the previous resolved tier by the base ladder's step
// ratio. Every resolved value is re-clamped at the end.
func ReconcileBNPL(in BNPLInput) BNPLResult {
	limite1 := in.PrecioComite
	if subsidyApproved(in.SubsidioLiderAprobado) {
		limite1 += in.SubsidioLider
	}
	if subsidyApproved(in.SubsidioDirectorAprobado) {
		limite1 += in.SubsidioDirector
	}

	scale := func(growth float64) int64 {
		return int64(math.Round(float64(limite1) * (1 + growth)))
	}
	limite3 := scale(growthFromBase(in.Base3, in.PrecioComite))
	limite6 := scale(growthFromBase(in.Base6, in.PrecioComite))
	limite9 := scale(growthFromBase(in.Base9, in.PrecioComite))

	res := BNPLResult{
		Limite1: limite1,
		Limite3: limite3,
		Limite6: limite6,
		Limite9: limite9,
	}

	if in.Comercial1 <= 0 && in.Comercial3 <= 0 && in.Comercial6 <= 0 && in.Comercial9 <= 0 {
		// No negotiation happened anywhere: the base ladder is the answer.
		res.Bnpl1, res.Bnpl3, res.Bnpl6, res.Bnpl9 = in.Base1, in.Base3, in.Base6, in.Base9
		return res
	}
	res.Negociado = true

	if in.Comercial1 > 0 {
		res.Bnpl1 = clampToLimit(in.Comercial1, limite1)
	} else {
		res.Bnpl1 = in.PrecioComite
	}

	compound := func(prev int64, prevBase, nextBase, limit int64) int64 {
		derived := int64(math.Round(float64(prev) * stepRatio(prevBase, nextBase)))
		return clampToLimit(derived, limit)
	}

	if in.Comercial3 > 0 {
		res.Bnpl3 = clampToLimit(in.Comercial3, limite3)
	} else {
		res.Bnpl3 = compound(res.Bnpl1, in.Base1, in.Base3, limite3)
	}

	if in.Comercial6 > 0 {
		res.Bnpl6 = clampToLimit(in.Comercial6, limite6)
	} else {
		res.Bnpl6 = compound(res.Bnpl3, in.Base3, in.Base6, limite6)
	}

	if in.Comercial9 > 0 {
		res.Bnpl9 = clampToLimit(in.Comercial9, limite9)
	} else {
		res.Bnpl9 = compound(res.Bnpl6, in.Base6, in.Base9, limite9)
	}

	// Safety pass: nothing leaves above its cap.
	res.Bnpl1 = clampToLimit(res.Bnpl1, limite1)
	res.Bnpl3 = clampToLimit(res.Bnpl3, limite3)
	res.Bnpl6 = clampToLimit(res.Bnpl6, limite6)
	res.Bnpl9 = clampToLimit(res.Bnpl9, limite9)

	return res
}
