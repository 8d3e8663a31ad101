package handlers

import (
	"net/http"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Register is register-or-login: first sight of an email creates the
// account, later calls authenticate it. Both return a bearer token.
//
// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, token, err := h.authSvc().RegisterOrLogin(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// UpdateProfile patches the caller's own profile.
//
// PUT /api/auth/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	rc := middleware.GetRequestContext(c)

	var upd models.ProfileUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}

	user, err := h.authSvc().UpdateProfile(rc.UserID, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"user": user})
}
