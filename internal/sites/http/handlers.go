package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forless-ai/forless-backend/internal/sites"
)

// Handler serves published tenant sites. Requests arrive here either directly
// as /s/<slug> or via the hostname rewriter; the handler cannot tell the
// difference and does not need to.
type Handler struct {
	svc *sites.Service
}

func New(svc *sites.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/s/:slug", h.serveSite)
	r.GET("/s/:slug/*rest", h.serveSite)
}

func (h *Handler) serveSite(c *gin.Context) {
	site, err := h.svc.Resolve(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, sites.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "site not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, site)
}
