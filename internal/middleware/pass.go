package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/workshop-hub-api/internal/models"
	appErrors "github.com/noah-isme/workshop-hub-api/pkg/errors"
	"github.com/noah-isme/workshop-hub-api/pkg/response"
)

// ContextPassKey is the gin context key storing attendee pass claims.
const ContextPassKey = "attendeePass"

// PassValidator parses attendee passes.
type PassValidator interface {
	Validate(token string) (*models.PassClaims, error)
}

// RequirePass rejects requests without a valid attendee pass.
func RequirePass(passes PassValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "attendee pass required"))
			c.Abort()
			return
		}
		claims, err := passes.Validate(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextPassKey, claims)
		c.Next()
	}
}

// OptionalPass attaches pass claims when a valid one is presented and never blocks.
func OptionalPass(passes PassValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := passes.Validate(token); err == nil {
				c.Set(ContextPassKey, claims)
			}
		}
		c.Next()
	}
}

// PassFromContext returns the claims stored by RequirePass or OptionalPass.
func PassFromContext(c *gin.Context) *models.PassClaims {
	value, exists := c.Get(ContextPassKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.PassClaims)
	return claims
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
