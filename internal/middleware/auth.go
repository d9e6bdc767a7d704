package middleware

import (
	"strings"

	"edu_portfolio_backend/internal/model"
	"edu_portfolio_backend/internal/service"
	"edu_portfolio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// UserFinder loads the authenticated user from storage.
type UserFinder interface {
	FindByID(id uint) (*model.User, error)
}

// extractToken reads the session token from the auth cookie first, then from
// a Bearer authorization header.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// AuthMiddleware rejects requests without a valid session. The user row is
// reloaded on every request so deleted accounts lose access immediately.
func AuthMiddleware(tokens *service.TokenService, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			util.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		userID, err := tokens.VerifySessionToken(raw)
		if err != nil {
			util.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.FindByID(userID)
		if err != nil {
			util.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid session is present but lets
// anonymous requests through. Used on public reads that personalize.
func OptionalAuth(tokens *service.TokenService, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			c.Next()
			return
		}
		userID, err := tokens.VerifySessionToken(raw)
		if err != nil {
			c.Next()
			return
		}
		if user, err := users.FindByID(userID); err == nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// RoleMiddleware allows only the listed roles through. Membership is strict:
// an admin is not implicitly granted teacher-only routes.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	allowed := make(map[model.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !allowed[user.Role] {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(model.Admin)
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
