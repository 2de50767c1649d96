package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EnesCagri/kaankutuphane/pkg/response"
)

// MustGetUserID safely extracts user_id from the Gin context. If the JWT
// middleware did not inject it, a 401 is written and ok is false; the caller
// should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole safely extracts role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// GetTokenInfo extracts the access token's jti and expiry, injected by the
// JWT middleware. Used by logout to blacklist the token.
func GetTokenInfo(c *gin.Context) (jti string, expiresAt time.Time, ok bool) {
	v, exists := c.Get("jti")
	if !exists {
		return "", time.Time{}, false
	}
	jti, ok = v.(string)
	if !ok || jti == "" {
		return "", time.Time{}, false
	}

	e, exists := c.Get("token_expires_at")
	if !exists {
		return "", time.Time{}, false
	}
	expiresAt, ok = e.(time.Time)
	if !ok {
		return "", time.Time{}, false
	}
	return jti, expiresAt, true
}
