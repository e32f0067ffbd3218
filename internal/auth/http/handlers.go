package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httpapi "github.com/mcardoso/portfolio-backend/internal/api/http"
	"github.com/mcardoso/portfolio-backend/internal/auth/token"
)

type Handler struct {
	registry      *token.Registry
	adminPassword string
}

func NewHandler(registry *token.Registry, adminPassword string) *Handler {
	return &Handler{registry: registry, adminPassword: adminPassword}
}

type loginReq struct {
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := httpapi.BindJSON(c, &req); err != nil {
		httpapi.AbortWithError(c, err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Senha inválida."})
		return
	}

	tok := h.registry.Issue()
	c.JSON(http.StatusOK, gin.H{
		"token":            tok,
		"expiresInMinutes": int(h.registry.TTL() / time.Minute),
	})
}
