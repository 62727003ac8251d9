package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// Pinger reports database reachability; *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type homeHandler struct {
	cfg *config.Config
	db  Pinger
}

// getHome godoc
// @Summary Show the service banner
// @Description Returns the service name, version and docs location.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *homeHandler) getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + h.cfg.AppName,
		"version": h.cfg.AppVersion,
		"docs":    "/swagger/index.html",
	})
}

// getHealth godoc
// @Summary Health check
// @Description Reports process and database health.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string "Database unreachable"
// @Router /health [get]
func (h *homeHandler) getHealth(c *gin.Context) {
	status, database, code := "healthy", "connected", http.StatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status, database, code = "unhealthy", "disconnected", http.StatusServiceUnavailable
		}
	}
	c.JSON(code, gin.H{"status": status, "database": database, "service": h.cfg.AppName})
}
