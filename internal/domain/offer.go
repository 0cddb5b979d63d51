package domain

import "time"

// OfferDocument carries everything the PDF renderer needs for the offer
// letter: the reconciled deal, the cost breakdown when available, and the
// countdown expiry. Breakdown may be nil; the renderer degrades to a
// prices-only document.
type OfferDocument struct {
	Deal      *DealProjection
	Breakdown *CostBreakdown
	ExpiresAt time.Time
	Generated time.Time
}
