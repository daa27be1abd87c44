package jwtmw

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shop_backend/internal/feature/auth/domain/entity"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Context keys set by AuthRequired for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextVerified = "userVerified"
)

// UserResolver looks up the account referenced by a token's subject claim.
// The consumer (this middleware) defines the interface; the auth feature's
// repository satisfies it.
type UserResolver interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that validates JWT bearer tokens and
// restricts access to authenticated users. Beyond signature and expiry checks,
// it resolves the user and rejects tokens issued before the user's last
// password change.
func AuthRequired(users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		// 3. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			// Validation error or invalid token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Extract claims (payload)
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 5. Resolve the user so deleted accounts and stale tokens are rejected
		user, err := users.FindByID(c.Request.Context(), uint(sub))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 6. Tokens issued before the last password change are no longer valid
		if iat, ok := claims["iat"].(float64); ok {
			if user.PasswordChangedAt != nil && int64(iat) < user.PasswordChangedAt.Unix() {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "password was changed, please login again"})
				return
			}
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Set(ContextVerified, user.IsVerified)

		// 7. Pass control to the next handler
		c.Next()
	}
}

// RequireRole returns a middleware that allows only identities whose role is
// in the given allow-set. It must run after AuthRequired.
func RequireRole(allowed ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextUserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		current, ok := role.(entity.Role)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		for _, r := range allowed {
			if current == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

// RequireVerified returns a middleware that allows only verified accounts.
// It must run after AuthRequired.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		verified, ok := c.Get(ContextVerified)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		if v, ok := verified.(bool); !ok || !v {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "please verify your email to access this resource"})
			return
		}
		c.Next()
	}
}

// UserID extracts the authenticated user's id from the gin context.
// The boolean result is false when AuthRequired did not run.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
