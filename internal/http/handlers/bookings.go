package handlers

import (
	"net/http"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// CreateBooking creates a pending booking for the calling customer.
//
// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var in models.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	booking, err := h.bookingSvc(c).Create(c.Request.Context(), middleware.GetRequestContext(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, gin.H{"booking": booking})
}

// MyBookings lists the caller's bookings, newest first.
//
// GET /api/bookings/mine
func (h *Handler) MyBookings(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	bookings, err := h.bookingSvc(c).ListMine(rc.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"bookings": bookings})
}

// VendorBookings lists bookings placed against the caller's tickets.
//
// GET /api/bookings/vendor
func (h *Handler) VendorBookings(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	bookings, err := h.bookingSvc(c).ListForVendor(rc.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"bookings": bookings})
}

// BookedSeats returns the authoritative occupied seat numbers for a ticket.
// Failures return an error status; the client must not treat a failed
// lookup as an empty seat map.
//
// GET /api/bookings/seats/:ticketId
func (h *Handler) BookedSeats(c *gin.Context) {
	ticketID, ok := PathID(c, "ticketId")
	if !ok {
		return
	}
	seats, err := h.bookingSvc(c).BookedSeats(ticketID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"bookedSeats": seats})
}

// HoldSeats places short-lived advisory holds while the caller is picking.
//
// POST /api/bookings/seats/:ticketId/hold
func (h *Handler) HoldSeats(c *gin.Context) {
	ticketID, ok := PathID(c, "ticketId")
	if !ok {
		return
	}
	var req struct {
		Seats []int `json:"seats" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	rc := middleware.GetRequestContext(c)
	if err := h.bookingSvc(c).HoldSeats(c.Request.Context(), rc, ticketID, req.Seats); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"held": req.Seats})
}

// AcceptBooking moves pending -> accepted (owning vendor only).
//
// PUT /api/bookings/:id/accept
func (h *Handler) AcceptBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingSvc(c).Accept(middleware.GetRequestContext(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"booking": booking})
}

// RejectBooking moves pending -> rejected and frees quantity and seats.
//
// PUT /api/bookings/:id/reject
func (h *Handler) RejectBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingSvc(c).Reject(middleware.GetRequestContext(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"booking": booking})
}

// ETicket streams the PDF for a paid booking.
//
// GET /api/bookings/:id/e-ticket
func (h *Handler) ETicket(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := h.docsSvc(c).ETicket(middleware.GetRequestContext(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
