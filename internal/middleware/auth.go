package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/01moynul/foodie-cart/internal/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by OptionalAuth.
const (
	KeyOwnerID     = "ownerID"
	KeyUserRole    = "userRole"
	KeyUserEmail   = "userEmail"
	KeyAccessToken = "accessToken"
	KeyVerified    = "tokenVerified"
)

// OptionalAuth reads the bearer token when there is one. Requests without a
// usable token continue anonymously: downstream cart calls then see an empty
// owner id and do nothing.
func OptionalAuth(decoder *auth.Decoder, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. --- Get Authorization Header ---
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Debug("ignoring malformed authorization header")
			c.Next()
			return
		}
		tokenString := parts[1]

		// 2. --- Decode Token ---
		identity, err := decoder.Decode(tokenString)
		if err != nil {
			log.Debug("ignoring unusable token", slog.Any("err", err))
			c.Next()
			return
		}

		// 3. --- Success ---
		c.Set(KeyOwnerID, identity.ID)
		c.Set(KeyUserRole, identity.Role)
		c.Set(KeyUserEmail, identity.Email)
		c.Set(KeyAccessToken, tokenString)
		c.Set(KeyVerified, identity.Verified)
		c.Next()
	}
}

// RequireAuth rejects requests OptionalAuth could not attach an owner to.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if OwnerID(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole lets a request through only when its role is one of roles and
// the token's signature was checked. It must run after OptionalAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if OwnerID(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}
		if !c.GetBool(KeyVerified) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: roles require a verified token"})
			c.Abort()
			return
		}

		role := c.GetString(KeyUserRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: " + strings.Join(roles, " or ") + " role required"})
		c.Abort()
	}
}

// OwnerID returns the owner id OptionalAuth stored, or "".
func OwnerID(c *gin.Context) string {
	return c.GetString(KeyOwnerID)
}

// AccessToken returns the raw bearer token OptionalAuth accepted, or "".
func AccessToken(c *gin.Context) string {
	return c.GetString(KeyAccessToken)
}
