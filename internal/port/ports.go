// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/EstebanCastel/landing-habi-sub000/internal/domain"
	"github.com/EstebanCastel/landing-habi-sub000/internal/pricing"
)

// DealFetcher retrieves raw deals from the CRM.
type DealFetcher interface {
	DealByID(ctx context.Context, dealID string) (*domain.DealRecord, error)
	DealByUUID(ctx context.Context, dealUUID string) (*domain.DealRecord, error)
}

// HeshFetcher reads the most recent warehouse valuation row for a property.
// A nil row with nil error means the warehouse has no data for that nid.
type HeshFetcher interface {
	LatestRow(ctx context.Context, nid int64, country pricing.Country) (*domain.HeshRow, error)
}

// CountdownStore persists offer countdown rows.
type CountdownStore interface {
	// OldestCountdown returns the earliest stored row for the deal, nil when
	// none exists yet.
	OldestCountdown(ctx context.Context, dealUUID string) (*domain.Countdown, error)
	CreateCountdown(ctx context.Context, c *domain.Countdown) error
}

// ComparablesFetcher lists reference properties for the map display.
type ComparablesFetcher interface {
	ListComparables(ctx context.Context, nid int64) ([]domain.Comparable, error)
}

// ObjectStorage uploads and locates generated offer documents.
type ObjectStorage interface {
	Upload(ctx context.Context, name, contentType string, data []byte) error
	Exists(ctx context.Context, name string) (bool, error)
	PublicURL(name string) string
}

// OfferRenderer turns an offer document into PDF bytes.
type OfferRenderer interface {
	Render(doc *domain.OfferDocument) ([]byte, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
