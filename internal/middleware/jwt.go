// Package middleware provides JWT authentication middleware.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shipquote/rate-service/internal/domain/dto"
)

// Claims are the JWT claims accepted on protected routes. Callers are
// identified by the registered subject; Roles gates admin operations.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carries the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// JWTAuth returns a middleware that validates HS256 bearer tokens signed
// with the shared secret. If requiredRole is non-empty the token must
// also carry that role.
func JWTAuth(secret []byte, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, "Authorization token is required").
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, "Invalid authorization header").
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, "Invalid or expired token").
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		if requiredRole != "" && !claims.HasRole(requiredRole) {
			errorResp := dto.NewError(dto.ErrCodeForbidden, "Insufficient permissions").
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusForbidden, errorResp)
			return
		}

		c.Set("client_id", claims.Subject)
		c.Set("client_claims", claims)

		c.Next()
	}
}
