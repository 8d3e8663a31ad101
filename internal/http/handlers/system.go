package handlers

import (
	"net/http"

	intconfig "backend/internal/config"

	"github.com/gin-gonic/gin"
)

// Health is a liveness probe.
func (h *Handler) Health(c *gin.Context) {
	RespondOK(c, http.StatusOK, gin.H{"status": "ok"})
}

// DBCheck pings the database.
func (h *Handler) DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"database": "ok"})
}
