package models

import (
	"time"

	"backend/internal/domain"
)

// Ticket is a vendor-listed travel offering. Price is stored in integer
// cents; Quantity is the remaining seat count owned by the backend.
type Ticket struct {
	ID           int64                     `json:"id"`
	Title        string                    `json:"title"`
	FromLocation string                    `json:"fromLocation"`
	ToLocation   string                    `json:"toLocation"`
	Transport    domain.TransportType      `json:"transportType"`
	Price        int64                     `json:"price"`
	Quantity     int                       `json:"quantity"`
	DepartureDate string                   `json:"departureDate"`
	DepartureTime string                   `json:"departureTime"`
	VendorName   string                    `json:"vendorName"`
	VendorEmail  string                    `json:"vendorEmail"`
	VendorFraud  bool                      `json:"vendorFraud"`
	Perks        []string                  `json:"perks"`
	Status       domain.VerificationStatus `json:"verificationStatus"`
	IsAdvertised bool                      `json:"isAdvertised"`
	CreatedAt    time.Time                 `json:"createdAt"`
	UpdatedAt    time.Time                 `json:"updatedAt"`
}

// TicketInput carries vendor-supplied fields for create/update.
type TicketInput struct {
	Title         string   `json:"title" binding:"required"`
	FromLocation  string   `json:"fromLocation" binding:"required"`
	ToLocation    string   `json:"toLocation" binding:"required"`
	TransportType string   `json:"transportType" binding:"required"`
	Price         int64    `json:"price" binding:"required"`
	Quantity      int      `json:"quantity"`
	DepartureDate string   `json:"departureDate" binding:"required"`
	DepartureTime string   `json:"departureTime" binding:"required"`
	Perks         []string `json:"perks"`
}
