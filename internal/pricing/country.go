// Package pricing holds the pure pricing/negotiation reconciliation logic:
// country classification, CRM numeric normalization, the BNPL installment
// reconciler, the Mexico price finalizer, the payment-summary aggregate the
// configurator displays, and experiment-variant bucketing.
//
// Everything here is stateless and side-effect free. Both the HubSpot proxy
// route and the PDF pipeline call into this package so the arithmetic has a
// single source of truth.
package pricing

// Country is the market a deal belongs to.
type Country string

const (
	CountryColombia Country = "CO"
	CountryMexico   Country = "MX"
)

// Pipeline allow-lists, versioned configuration rather than scattered
// literals. A pipeline id missing from both lists resolves to Colombia.
var (
	pipelinesMX = map[string]bool{
		"8584120":  true, // MX comite
		"8584121":  true, // MX comercial
		"12002883": true, // MX prestamo
	}
	pipelinesCO = map[string]bool{
		"default": true,
		"650714":  true, // CO comite
		"2936994": true, // CO comercial
		"9775472": true, // CO bnpl
	}
)

// CountryForPipeline maps a raw CRM pipeline id to a market. Unknown or empty
// pipelines default to Colombia; that is deliberate policy, not an error.
func CountryForPipeline(pipeline string) Country {
	switch {
	case pipelinesMX[pipeline]:
		return CountryMexico
	case pipelinesCO[pipeline]:
		return CountryColombia
	default:
		return CountryColombia
	}
}

// ParseCountry normalizes a country query parameter. Anything other than
// "MX" falls back to Colombia, mirroring the pipeline classifier's policy.
func ParseCountry(raw string) Country {
	if raw == string(CountryMexico) {
		return CountryMexico
	}
	return CountryColombia
}
