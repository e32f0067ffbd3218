package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcardoso/portfolio-backend/internal/auth/token"
)

// SessionAuthMiddleware validates the bearer session token issued at
// login and stores it in the request context.
func SessionAuthMiddleware(registry *token.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := registry.Validate(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": authMessage(err)})
			return
		}

		c.Set("session_token", tok)
		c.Next()
	}
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, token.ErrNoCredentials):
		return "Credenciais ausentes."
	case errors.Is(err, token.ErrSessionExpired):
		return "Sessão expirada."
	default:
		return "Sessão inválida ou expirada."
	}
}
