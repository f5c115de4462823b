package middleware

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/praswib/tumpangan/internal/pkg/jwt"
	"github.com/praswib/tumpangan/internal/pkg/models"
	"github.com/praswib/tumpangan/internal/utils"
)

// Context keys set by the auth middleware
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// JWTAuthMiddleware creates a middleware for JWT authentication. The
// token is issued by the upstream auth layer; this only decodes the
// pre-authenticated (user_id, role) pair and attaches it to the request.
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			tokenString := parts[1]

			claims, err := jwtpkg.ValidateToken(tokenString, config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			userIDStr, ok := (*claims)["user_id"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing user_id claim")
			}

			roleStr, ok := (*claims)["role"]
			if !ok {
				return utils.UnauthorizedResponse(c, "Invalid token: missing role claim")
			}

			userID, err := uuid.Parse(fmt.Sprintf("%v", userIDStr))
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token: user_id is not a valid UUID")
			}

			role := models.Role(fmt.Sprintf("%v", roleStr))
			if !role.Valid() {
				return utils.UnauthorizedResponse(c, "Invalid token: unknown role")
			}

			c.Set(ContextKeyUserID, userID)
			c.Set(ContextKeyUserRole, role)

			return next(c)
		}
	}
}

// RequireRole guards a route group so only the given roles pass
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyUserRole).(models.Role)
			if !ok {
				return utils.UnauthorizedResponse(c, "Missing authentication context")
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return utils.ForbiddenResponse(c, "Insufficient role for this operation")
		}
	}
}

// CallerID extracts the authenticated user ID from the Echo context
func CallerID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyUserID).(uuid.UUID)
	return id, ok
}

// CallerRole extracts the authenticated role from the Echo context
func CallerRole(c echo.Context) (models.Role, bool) {
	role, ok := c.Get(ContextKeyUserRole).(models.Role)
	return role, ok
}
