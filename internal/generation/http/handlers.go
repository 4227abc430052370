package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forless-ai/forless-backend/internal/auth"
	"github.com/forless-ai/forless-backend/internal/generation"
)

type Handler struct {
	svc *generation.Service
}

func New(svc *generation.Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches generation routes under /api/v1.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.POST("/brand/generate", h.generateBrands)
	api.POST("/website/generate", h.generateWebsite)
	api.POST("/projects/create-and-generate", h.createAndGenerate)
}

type brandReq struct {
	Idea string `json:"idea"`
}

func (h *Handler) generateBrands(c *gin.Context) {
	var req brandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	brands, err := h.svc.GenerateBrandOptions(c.Request.Context(), req.Idea)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

type websiteReq struct {
	Idea        string                `json:"idea"`
	WebsiteType string                `json:"websiteType"`
	Brand       *generation.BrandData `json:"brand"`
}

func (h *Handler) generateWebsite(c *gin.Context) {
	var req websiteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	data, err := h.svc.GenerateWebsite(c.Request.Context(), req.Idea, req.WebsiteType, req.Brand)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

type createAndGenerateReq struct {
	Name        string `json:"name"`
	Idea        string `json:"idea"`
	WebsiteType string `json:"websiteType"`
}

func (h *Handler) createAndGenerate(c *gin.Context) {
	var req createAndGenerateReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	publicID, err := h.svc.CreateAndGenerate(c.Request.Context(), auth.UserDBID(c), strings.TrimSpace(req.Name), req.Idea, req.WebsiteType)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "public_id": publicID})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, generation.ErrMissingIdea):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing idea"})
	case errors.Is(err, generation.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many generation requests"})
	case errors.Is(err, generation.ErrBadModelOutput):
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "model returned invalid format"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "generation failed"})
	}
}
