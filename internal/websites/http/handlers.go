package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forless-ai/forless-backend/internal/auth"
	"github.com/forless-ai/forless-backend/internal/projects"
	"github.com/forless-ai/forless-backend/internal/websites"
)

// Handler serves the per-project website document. Ownership is enforced by
// resolving the public id through the owner-scoped projects repo first.
type Handler struct {
	projects *projects.Repo
	repo     *websites.Repo
}

func New(projectsRepo *projects.Repo, repo *websites.Repo) *Handler {
	return &Handler{projects: projectsRepo, repo: repo}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:public_id/website", h.get)
	rg.PUT("/:public_id/website", h.save)
}

func (h *Handler) get(c *gin.Context) {
	projectID, err := h.projects.InternalID(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if errors.Is(err, projects.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	data, err := h.repo.Get(c.Request.Context(), projectID)
	if errors.Is(err, websites.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "website not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func (h *Handler) save(c *gin.Context) {
	var data json.RawMessage
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	projectID, err := h.projects.InternalID(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))
	if errors.Is(err, projects.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if err := h.repo.Upsert(c.Request.Context(), projectID, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
