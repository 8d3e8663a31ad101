package handlers

import (
	"net/http"

	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// CreatePaymentIntent opens a processor payment for an accepted booking and
// hands the client secret back for browser-side confirmation.
//
// POST /api/payments/create-payment-intent
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		BookingID int64 `json:"bookingId" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	secret, err := h.paymentSvc(c).NewIntent(middleware.GetRequestContext(c), req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"clientSecret": secret})
}

// ConfirmPayment verifies the intent with the processor and marks the
// booking paid.
//
// POST /api/payments/confirm-payment
func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req struct {
		BookingID       int64  `json:"bookingId" binding:"required"`
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	payment, err := h.paymentSvc(c).Confirm(middleware.GetRequestContext(c), req.BookingID, req.PaymentIntentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"payment": payment})
}

// Transactions lists all recorded payments (admin).
//
// GET /api/payments/transactions
func (h *Handler) Transactions(c *gin.Context) {
	payments, err := h.paymentSvc(c).Transactions()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"payments": payments})
}

// MyTransactions lists the caller's payments.
//
// GET /api/payments/mine
func (h *Handler) MyTransactions(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	payments, err := h.paymentSvc(c).MyTransactions(rc.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"payments": payments})
}
