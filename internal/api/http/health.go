package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthHandler answers deployment liveness probes and reports whether the
// database is reachable. The pool may be nil in tests.
type HealthHandler struct {
	version string
	db      *pgxpool.Pool
}

func NewHealthHandler(version string, db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{version: version, db: db}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.healthz)
}

func (h *HealthHandler) healthz(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		dbStatus = "up"
		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": "forless-backend",
		"version": h.version,
		"db":      dbStatus,
		"time":    time.Now().UTC(),
	})
}
