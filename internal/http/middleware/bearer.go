// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file derives a caller identity from the Authorization header. Bearer
// tokens are issued by the hosted identity service and are forwarded to the
// row store untouched; this service never validates them. When the token is
// a JWT its "sub" claim is read WITHOUT signature verification and is used
// only as a label for logs, rate-limit buckets and idempotency records.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ctxKeyUserID holds the unverified token subject.
	ctxKeyUserID = "userID"
	// ctxKeyAuth holds the raw Authorization header value.
	ctxKeyAuth = "auth.header"
)

// BearerIdentity stashes the raw Authorization value and, when parseable,
// the token subject. It never rejects a request.
func BearerIdentity() gin.HandlerFunc {
	parser := jwt.NewParser()
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw != "" {
			c.Set(ctxKeyAuth, raw)
			if sub := tokenSubject(parser, raw); sub != "" {
				c.Set(ctxKeyUserID, sub)
			}
		}
		c.Next()
	}
}

// tokenSubject returns the "sub" claim of a (possibly "Bearer "-prefixed)
// JWT, or "" when the value is not a JWT.
func tokenSubject(p *jwt.Parser, header string) string {
	tok := header
	if len(tok) > 7 && strings.EqualFold(tok[:7], "bearer ") {
		tok = strings.TrimSpace(tok[7:])
	}
	var claims jwt.RegisteredClaims
	if _, _, err := p.ParseUnverified(tok, &claims); err != nil {
		return ""
	}
	return claims.Subject
}

// AuthHeader returns the caller's Authorization value, or "".
func AuthHeader(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyAuth); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if c.Request != nil {
		return strings.TrimSpace(c.GetHeader("Authorization"))
	}
	return ""
}

// UserID returns the unverified token subject, or "".
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IdentityKey labels the caller: "user:<sub>" when a token subject is known,
// otherwise "ip:<client ip>".
func IdentityKey(c *gin.Context) string {
	if uid := UserID(c); uid != "" {
		return "user:" + uid
	}
	return "ip:" + c.ClientIP()
}
