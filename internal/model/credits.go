package model

import "time"

// CheckoutRequest is a credit purchase as requested by the client.
type CheckoutRequest struct {
	UserID string
	// Amount is the price in minor currency units.
	Amount float64
	// Credits is the purchased quantity before the bonus is applied.
	Credits float64
}

// CheckoutSession is the provider-hosted payment flow created for a purchase.
// Only the ID is returned to the client; nothing here is persisted.
type CheckoutSession struct {
	ID           string
	BonusCredits int64
}

// CreditEvent records one applied increment.
type CreditEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Delta      float64   `json:"delta"`
	OccurredAt time.Time `json:"occurred_at"`
}

const CreditEventTypeUpdated = "credits.updated"
