package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/healthcare-portal/pkg/response"
	"github.com/prohmpiriya/healthcare-portal/pkg/token"
)

// Context keys set by JWTMiddleware
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
	ContextKeyRole   = "role"

	bearerPrefix = "Bearer "
)

// TokenVerifier resolves a raw token into its claims
type TokenVerifier interface {
	Verify(token string) (*token.Claims, error)
}

// JWTConfig configures JWTMiddleware
type JWTConfig struct {
	Verifier  TokenVerifier
	SkipPaths []string
}

// Identity is the caller resolved from a verified token
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// JWTMiddleware rejects requests without a valid bearer token and stores the
// token's claims on the context. The identity is trusted until the token expires.
func JWTMiddleware(config *JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range config.SkipPaths {
			if matchPath(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeMissingToken, "Authorization header is required"))
			return
		}

		raw, ok := ExtractBearerToken(authHeader)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeInvalidToken, "Invalid authorization header format"))
			return
		}

		claims, err := config.Verifier.Verify(raw)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeTokenExpired, "Access token has expired"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.ErrCodeInvalidToken, "Invalid access token"))
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// ExtractBearerToken returns the token from an "Authorization: Bearer <token>" header value
func ExtractBearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return "", false
	}
	return raw, true
}

// RequireRole allows only callers whose role is one of roles. Must run after JWTMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("User not authenticated"))
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, response.Forbidden("Access denied for role "+role))
	}
}

// GetUserID returns the authenticated user id
func GetUserID(c *gin.Context) (string, bool) {
	return getString(c, ContextKeyUserID)
}

// GetEmail returns the authenticated email
func GetEmail(c *gin.Context) (string, bool) {
	return getString(c, ContextKeyEmail)
}

// GetRole returns the authenticated role
func GetRole(c *gin.Context) (string, bool) {
	return getString(c, ContextKeyRole)
}

// GetIdentity returns the full identity set by JWTMiddleware
func GetIdentity(c *gin.Context) (Identity, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return Identity{}, false
	}
	role, ok := GetRole(c)
	if !ok {
		return Identity{}, false
	}
	email, _ := GetEmail(c)
	return Identity{UserID: userID, Email: email, Role: role}, true
}

func getString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
