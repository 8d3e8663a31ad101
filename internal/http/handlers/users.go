package handlers

import (
	"database/sql"
	"net/http"

	"backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListUsers returns every account for the admin dashboard.
//
// GET /api/users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users().List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"users": users})
}

// UpdateUserRole changes an account's role within the closed role set.
//
// PUT /api/users/:id/role
func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}
	role := domain.Role(req.Role)
	if !role.Valid() {
		RespondError(c, http.StatusBadRequest, "role must be user, vendor or admin")
		return
	}
	if err := h.users().UpdateRole(id, role); err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusNotFound, "user not found")
			return
		}
		RespondDomainError(c, err)
		return
	}
	user, err := h.users().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"user": user})
}

// SetUserFraud flags a vendor as fraudulent. Their inventory stays in the
// database but drops out of the public projections.
//
// PUT /api/users/:id/fraud
func (h *Handler) SetUserFraud(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		IsFraud *bool `json:"isFraud" binding:"required"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := h.users().GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			RespondError(c, http.StatusNotFound, "user not found")
			return
		}
		RespondDomainError(c, err)
		return
	}
	if user.Role != domain.RoleVendor {
		RespondError(c, http.StatusBadRequest, "fraud flag applies to vendors only")
		return
	}

	if err := h.users().SetFraud(id, *req.IsFraud); err != nil {
		RespondDomainError(c, err)
		return
	}
	user.IsFraud = *req.IsFraud
	RespondOK(c, http.StatusOK, gin.H{"user": user})
}
