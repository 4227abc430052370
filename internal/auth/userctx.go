package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forless-ai/forless-backend/internal/users"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxUserDBID    = "user_db_id"
	CtxUserRole    = "user_role"

	RoleAdmin = "admin"
)

// WithUser resolves the request identity to a database user row, upserting it
// on first sight. The Firebase UID comes from the token middleware; in
// development (no Firebase client configured) the X-User-Id header stands in.
func WithUser(userRepo *users.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		fuid := strings.TrimSpace(c.GetString(CtxFirebaseUID))
		if fuid == "" {
			fuid = strings.TrimSpace(c.GetHeader("X-User-Id"))
		}
		if fuid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "reason": "unauthorized", "error": "not authenticated"})
			c.Abort()
			return
		}

		id, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			FirebaseUID: fuid,
			Email:       firstNonEmpty(c.GetString("email"), c.GetHeader("X-User-Email")),
			DisplayName: firstNonEmpty(c.GetString("display_name"), c.GetHeader("X-User-Name")),
			PhotoURL:    firstNonEmpty(c.GetString("photo_url"), c.GetHeader("X-User-Photo")),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "reason": "internal", "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxFirebaseUID, fuid)
		c.Set(CtxUserDBID, id.ID)
		c.Set(CtxUserRole, id.Role)
		c.Next()
	}
}

// RequireAdmin gates moderation routes. Must run after WithUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "reason": "unauthorized", "error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserDBID extracts the database user id set by WithUser.
func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}

// UserFirebaseUID extracts the Firebase UID from the Gin context.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(CtxUserRole) == RoleAdmin
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
