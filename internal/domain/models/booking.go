package models

import (
	"time"

	"backend/internal/domain"
)

// Booking is a reservation request against a Ticket. TotalPrice is fixed at
// creation time (quantity x ticket price, in cents) and never recomputed,
// even if the ticket price changes afterwards.
type Booking struct {
	ID            int64                `json:"id"`
	TicketID      int64                `json:"ticketId"`
	CustomerName  string               `json:"customerName"`
	CustomerEmail string               `json:"customerEmail"`
	Quantity      int                  `json:"quantity"`
	TotalPrice    int64                `json:"totalPrice"`
	Status        domain.BookingStatus `json:"status"`
	SelectedSeats []int                `json:"selectedSeats,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`

	// Denormalized ticket fields for list responses, filled by joins.
	TicketTitle   string               `json:"ticketTitle,omitempty"`
	FromLocation  string               `json:"fromLocation,omitempty"`
	ToLocation    string               `json:"toLocation,omitempty"`
	Transport     domain.TransportType `json:"transportType,omitempty"`
	DepartureDate string               `json:"departureDate,omitempty"`
	DepartureTime string               `json:"departureTime,omitempty"`
	VendorEmail   string               `json:"vendorEmail,omitempty"`
}

// BookingInput is the customer-facing create payload.
type BookingInput struct {
	TicketID      int64 `json:"ticketId" binding:"required"`
	Quantity      int   `json:"quantity" binding:"required"`
	SelectedSeats []int `json:"selectedSeats"`
}
