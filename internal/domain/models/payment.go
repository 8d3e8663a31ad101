package models

import "time"

// Payment records a confirmed transaction against a booking. Reference is a
// server-generated id handed out for support lookups; PaymentIntentID is the
// processor-side id.
type Payment struct {
	ID              int64     `json:"id"`
	BookingID       int64     `json:"bookingId"`
	CustomerEmail   string    `json:"customerEmail"`
	Amount          int64     `json:"amount"`
	PaymentIntentID string    `json:"paymentIntentId"`
	Reference       string    `json:"reference"`
	CreatedAt       time.Time `json:"createdAt"`
}
