package middleware

import (
	"net/http"
	"strings"

	"github.com/ArowuTest/gaspay-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Context keys set by JWTAuthMiddleware
const (
	ContextMSISDN    = "msisdn"
	ContextSessionID = "sessionID"
)

// TokenParser validates session tokens
type TokenParser interface {
	Parse(tokenString string) (*jwt.SessionClaims, error)
}

// JWTAuthMiddleware creates a gin middleware for JWT authentication.
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		const BearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer "})
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(authHeader[len(BearerSchema):]))
		if err != nil {
			log.WithField("requestId", c.GetString(ContextRequestID)).WithError(err).Info("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextMSISDN, claims.MSISDN)
		c.Set(ContextSessionID, claims.SessionID)
		c.Next()
	}
}
