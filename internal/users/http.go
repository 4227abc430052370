package users

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterMe serves the caller's own profile for the dashboard shell.
func (r *Repo) RegisterMe(api *gin.RouterGroup) {
	api.GET("/me", func(c *gin.Context) {
		id := strings.TrimSpace(c.GetString("user_db_id"))
		if id == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "reason": "unauthorized", "error": "not authenticated"})
			return
		}

		p, err := r.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "user": p})
	})
}
