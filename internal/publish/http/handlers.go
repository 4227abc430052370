package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forless-ai/forless-backend/internal/auth"
	"github.com/forless-ai/forless-backend/internal/publish"
)

// Handler exposes the publish state machine over HTTP.
type Handler struct {
	manager *publish.Manager
}

func New(manager *publish.Manager) *Handler {
	return &Handler{manager: manager}
}

// Register attaches publish routes to the projects route group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/:public_id/publish", h.publishProject)
	rg.POST("/:public_id/unpublish", h.unpublishProject)
}

type publishReq struct {
	Slug string `json:"slug"`
}

func (h *Handler) publishProject(c *gin.Context) {
	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Slug) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "reason": "invalid-slug", "error": "slug is required"})
		return
	}

	caller := publish.Caller{UserID: auth.UserDBID(c), Admin: auth.IsAdmin(c)}
	res, err := h.manager.Publish(c.Request.Context(), c.Param("public_id"), caller, req.Slug)
	if err != nil {
		status, reason := statusFor(err)
		c.JSON(status, gin.H{"ok": false, "reason": reason, "error": messageFor(err, reason)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"slug":              res.Slug,
		"previewPath":       res.PreviewPath,
		"localSubdomainUrl": res.LocalSubdomainURL,
	})
}

func (h *Handler) unpublishProject(c *gin.Context) {
	caller := publish.Caller{UserID: auth.UserDBID(c), Admin: auth.IsAdmin(c)}
	if err := h.manager.Unpublish(c.Request.Context(), c.Param("public_id"), caller); err != nil {
		status, reason := statusFor(err)
		c.JSON(status, gin.H{"ok": false, "reason": reason, "error": messageFor(err, reason)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// statusFor maps manager errors onto the wire taxonomy:
// unauthorized | invalid-slug | conflict | not-found | internal.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, publish.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, publish.ErrUnauthorized):
		return http.StatusForbidden, "unauthorized"
	case errors.Is(err, publish.ErrInvalidSlug):
		return http.StatusBadRequest, "invalid-slug"
	case errors.Is(err, publish.ErrSlugTaken):
		return http.StatusConflict, "conflict"
	case errors.Is(err, publish.ErrNotFound):
		return http.StatusNotFound, "not-found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func messageFor(err error, reason string) string {
	if reason == "conflict" {
		// The one failure users hit in normal operation; be explicit.
		return "slug already taken"
	}
	if reason == "internal" {
		return "internal error"
	}
	return err.Error()
}
