package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forless-ai/forless-backend/internal/admin"
	"github.com/forless-ai/forless-backend/internal/auth"
	"github.com/forless-ai/forless-backend/internal/publish"
)

// Handler is the moderation panel backend. All routes sit behind the admin
// gate; moderation can unpublish any project but never publishes one.
type Handler struct {
	repo    *admin.Repo
	manager *publish.Manager
}

func New(repo *admin.Repo, manager *publish.Manager) *Handler {
	return &Handler{repo: repo, manager: manager}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/ping", h.ping)
	rg.GET("/projects", h.listProjects)
	rg.GET("/sites", h.listSites)
	rg.POST("/unpublish", h.unpublish)
}

func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.repo.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) listSites(c *gin.Context) {
	items, err := h.repo.ListSites(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "sites": items})
}

type unpublishReq struct {
	ProjectID string `json:"projectId"`
}

func (h *Handler) unpublish(c *gin.Context) {
	var req unpublishReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProjectID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	caller := publish.Caller{UserID: auth.UserDBID(c), Admin: true}
	err := h.manager.Unpublish(c.Request.Context(), req.ProjectID, caller)
	if errors.Is(err, publish.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "reason": "not-found", "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "reason": "internal", "error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
