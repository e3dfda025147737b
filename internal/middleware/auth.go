package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/models"
	"github.com/textora/core/internal/pkg/jwt"
	"github.com/textora/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"

	// SessionCookie is the httpOnly cookie set on login.
	SessionCookie = "token"
)

// Auth returns a middleware that enforces JWT authentication. The user row
// is reloaded so the role and existence checks reflect current state;
// blocked accounts keep already-issued tokens until they expire.
func Auth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.Parse(extractToken(c))
		if err != nil {
			response.Unauthorized(c, response.CodeUnauthenticated, "Authentication required")
			return
		}

		var user models.UserModel
		if err := db.Select("id", "role").Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			response.Unauthorized(c, response.CodeUnauthenticated, "Authentication required")
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUserRole, user.Role)
		c.Next()
	}
}

// AdminOnly rejects requests whose authenticated user is not an admin.
// Must run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == "" {
			response.Unauthorized(c, response.CodeUnauthenticated, "Authentication required")
			return
		}
		if CurrentUserRole(c) != models.RoleAdmin {
			response.Forbidden(c, response.CodeAdminRequired, "Admin access required")
			return
		}
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// CurrentUserRole extracts the authenticated user's role from context.
func CurrentUserRole(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserRole)
	role, _ := v.(string)
	return role
}

// IsAdmin reports whether the authenticated user has the admin role.
func IsAdmin(c *gin.Context) bool {
	return CurrentUserRole(c) == models.RoleAdmin
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return normalizeToken(auth)
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return normalizeToken(cookie)
	}
	return ""
}

// normalizeToken trims spaces and strips an optional Bearer prefix.
func normalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
