package pricing

import "hash/fnv"

// Variant is an experiment bucket for the landing page.
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
	VariantC Variant = "C"
)

var variants = []Variant{VariantA, VariantB, VariantC}

// AssignVariant buckets a deal id into an experiment group. Same id, same
// variant, always; FNV-1a keeps the split roughly even across ids.
func AssignVariant(dealID string) Variant {
	h := fnv.New32a()
	h.Write([]byte(dealID))
	return variants[h.Sum32()%uint32(len(variants))]
}
