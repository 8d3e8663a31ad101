package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/domain"
	"backend/internal/domain/inventory"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func listQueryFrom(c *gin.Context) services.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))
	return services.ListQuery{
		Predicate: inventory.Predicate{
			Query:     utils.TrimOrEmpty(c.Query("search")),
			Transport: domain.TransportType(utils.TrimOrEmpty(c.Query("transportType"))),
			From:      utils.TrimOrEmpty(c.Query("from")),
			To:        utils.TrimOrEmpty(c.Query("to")),
		},
		Order:    inventory.ParseOrder(c.Query("sort")),
		Page:     page,
		PageSize: pageSize,
	}
}

// ListPublic serves the browse page: approved non-fraud inventory with
// filters, sorting and optional paging.
//
// GET /api/tickets
func (h *Handler) ListPublic(c *gin.Context) {
	q := listQueryFrom(c)
	tickets, total, err := h.ticketSvc().Public(q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"tickets": tickets, "total": total})
}

// Advertised serves the featured section.
//
// GET /api/tickets/advertised
func (h *Handler) Advertised(c *gin.Context) {
	tickets, err := h.ticketSvc().Advertised()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"tickets": tickets})
}

// GetTicket returns one ticket under public visibility rules.
//
// GET /api/tickets/:id
func (h *Handler) GetTicket(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	ticket, err := h.ticketSvc().Get(middleware.GetRequestContext(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"ticket": ticket})
}

// CreateTicket registers a pending listing for the calling vendor.
//
// POST /api/tickets
func (h *Handler) CreateTicket(c *gin.Context) {
	var in models.TicketInput
	if !BindJSONOrError(c, &in) {
		return
	}
	ticket, err := h.ticketSvc().Create(middleware.GetRequestContext(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, gin.H{"ticket": ticket})
}

// UpdateTicket rewrites a listing; refused once rejected.
//
// PUT /api/tickets/:id
func (h *Handler) UpdateTicket(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var in models.TicketInput
	if !BindJSONOrError(c, &in) {
		return
	}
	ticket, err := h.ticketSvc().Update(middleware.GetRequestContext(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"ticket": ticket})
}

// DeleteTicket removes a listing; refused once rejected.
//
// DELETE /api/tickets/:id
func (h *Handler) DeleteTicket(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := h.ticketSvc().Delete(middleware.GetRequestContext(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"deleted": id})
}

// VendorTickets lists the caller's own inventory, any status.
//
// GET /api/tickets/vendor/mine
func (h *Handler) VendorTickets(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	tickets, err := h.ticketSvc().VendorTickets(rc.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"tickets": tickets})
}

// AdminTickets lists everything for moderation.
//
// GET /api/tickets/admin/all
func (h *Handler) AdminTickets(c *gin.Context) {
	tickets, err := h.ticketSvc().AdminTickets()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"tickets": tickets})
}

// SetTicketStatus is the admin approve/reject decision.
//
// PUT /api/tickets/:id/status
func (h *Handler) SetTicketStatus(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	ticket, err := h.ticketSvc().SetStatus(id, domain.VerificationStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"ticket": ticket})
}

// AdvertiseTicket toggles the featured flag on an approved listing.
//
// PUT /api/tickets/:id/advertise
func (h *Handler) AdvertiseTicket(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Advertised *bool `json:"advertised" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	ticket, err := h.ticketSvc().Advertise(id, *req.Advertised)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"ticket": ticket})
}
