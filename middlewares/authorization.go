// Package middlewares wires authentication and authorization into the gin
// pipeline. Handlers never parse tokens themselves; they read the identity
// the gate put in the request context.
package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gtwndtl/travelbook-backend/entity"
	"github.com/gtwndtl/travelbook-backend/services"
)

// Context keys set by Authorizes.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// Authorizes requires a valid bearer token and stores the caller's id and
// role in the request context. The database is not consulted here.
func Authorizes(jwtService *services.JwtWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		fields := strings.Fields(header)
		if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, err := jwtService.ValidateToken(fields[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// RequireRole passes callers whose role ranks at or above min. Each route
// declares its own minimum; nothing is inferred across resources.
func RequireRole(min entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerRole(c).Rank() < min.Rank() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Insufficient role"})
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated user's id, zero when unauthenticated.
func CallerID(c *gin.Context) uint {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CallerRole returns the authenticated user's role, empty when
// unauthenticated.
func CallerRole(c *gin.Context) entity.Role {
	if v, ok := c.Get(ctxRole); ok {
		if r, ok := v.(entity.Role); ok {
			return r
		}
	}
	return ""
}

// OwnerOrRole reports whether the caller owns the resource or ranks at or
// above min. Used for booking retrieval, profile access, and review edits.
func OwnerOrRole(c *gin.Context, ownerID uint, min entity.Role) bool {
	if CallerID(c) == ownerID {
		return true
	}
	return CallerRole(c).Rank() >= min.Rank()
}
