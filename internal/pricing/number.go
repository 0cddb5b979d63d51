package pricing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeNumber parses a CRM numeric field, which HubSpot serializes as a
// decimal string (e.g. "584866367.68400"), and returns the integer part as a
// string. Empty or unparseable input returns ok=false; absence of data is
// never represented as "0".
func NormalizeNumber(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return "", false
	}
	return d.Truncate(0).String(), true
}

// Amount parses a CRM numeric field into integer currency units. Empty,
// unparseable and zero values all collapse to 0; the reconciler treats 0 as
// "absent" for commercial overrides, which matches the CRM's encoding.
func Amount(raw string) int64 {
	s, ok := NormalizeNumber(raw)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// NormalizePtr is NormalizeNumber for JSON projections: nil when the field
// carries no data.
func NormalizePtr(raw string) *string {
	s, ok := NormalizeNumber(raw)
	if !ok {
		return nil
	}
	return &s
}

// FormatAmount re-stringifies integer currency units for the frontend.
func FormatAmount(v int64) string {
	return strconv.FormatInt(v, 10)
}
