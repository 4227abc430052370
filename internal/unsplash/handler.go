package unsplash

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register exposes the image search to the site builder UI.
func (c *Client) Register(api *gin.RouterGroup) {
	api.GET("/images/search", func(g *gin.Context) {
		query := g.Query("query")
		if query == "" {
			g.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "query is required"})
			return
		}
		g.JSON(http.StatusOK, gin.H{"url": c.FetchImage(g.Request.Context(), query)})
	})
}
