package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cloudesk-io/cloudesk/internal/infrastructure/auth"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
	"github.com/cloudesk-io/cloudesk/internal/shared/utils"
)

const (
	// ContextKeyActorID and ContextKeyActorEmail hold the verified
	// requester identity, used for activity attribution.
	ContextKeyActorID    = "actor_id"
	ContextKeyActorEmail = "actor_email"
	ContextKeyActorAdmin = "actor_admin"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the actor identity
// on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyActorID, claims.UserID)
		c.Set(ContextKeyActorEmail, claims.Email)
		c.Set(ContextKeyActorAdmin, claims.Admin)

		c.Next()
	}
}

// RequireAdmin restricts a route to admin tokens. Must run after
// RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextKeyActorAdmin) {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Actor returns the verified requester identity set by RequireAuth.
func Actor(c *gin.Context) (uint, string) {
	id, _ := c.Get(ContextKeyActorID)
	email, _ := c.Get(ContextKeyActorEmail)
	userID, _ := id.(uint)
	userEmail, _ := email.(string)
	return userID, userEmail
}
