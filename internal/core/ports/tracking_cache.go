package ports

import (
	"context"
	"time"
)

// TrackingSnapshot is the public projection of a package served to
// unauthenticated trackers. It deliberately omits street addresses, contact
// details, and party identifiers so tracking numbers can be shared freely.
type TrackingSnapshot struct {
	TrackingNumber string          `json:"tracking_number"`
	Status         string          `json:"status"`
	RecipientName  string          `json:"recipient_name"`
	PickupCity     string          `json:"pickup_city"`
	DeliveryCity   string          `json:"delivery_city"`
	ServiceType    string          `json:"service_type"`
	CreatedAt      time.Time       `json:"created_at"`
	AssignedAt     *time.Time      `json:"assigned_at,omitempty"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	Events         []TrackingEvent `json:"events"`
}

// TrackingEvent is one entry of the public audit timeline. Descriptions are
// generated from lifecycle transitions and never contain personal data.
type TrackingEvent struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrackingCache is a read-through cache for public tracking lookups, keyed
// by tracking number. Lifecycle transitions invalidate the entry so trackers
// never see a stale status for longer than one transition.
type TrackingCache interface {
	// Get returns the cached snapshot, or (nil, nil) on a cache miss.
	Get(ctx context.Context, trackingNumber string) (*TrackingSnapshot, error)

	// Set stores a snapshot with the cache's configured TTL.
	Set(ctx context.Context, snapshot *TrackingSnapshot) error

	// Invalidate drops the entry for a tracking number.
	Invalidate(ctx context.Context, trackingNumber string) error
}
