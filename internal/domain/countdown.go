package domain

import "time"

// OfferTTL is how long an offer stays valid after its countdown starts.
const OfferTTL = 24 * time.Hour

// Countdown is the single persisted row per deal marking when the offer
// countdown started. ExpiresAt is never stored; it is always derived.
type Countdown struct {
	ID        string    `json:"id"`
	DealUUID  string    `json:"deal_uuid"`
	StartedAt time.Time `json:"started_at"`
}

// ExpiresAt returns the derived expiry, exactly OfferTTL after StartedAt.
func (c *Countdown) ExpiresAt() time.Time {
	return c.StartedAt.Add(OfferTTL)
}
