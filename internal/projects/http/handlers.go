package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/mcardoso/portfolio-backend/internal/api/http"
	"github.com/mcardoso/portfolio-backend/internal/httperr"
	"github.com/mcardoso/portfolio-backend/internal/projects/domain"
	"github.com/mcardoso/portfolio-backend/internal/projects/store"
)

type Handler struct {
	store *store.FileStore
}

func NewHandler(s *store.FileStore) *Handler {
	return &Handler{store: s}
}

func (h *Handler) list(c *gin.Context) {
	projects, err := h.store.List()
	if err != nil {
		httpapi.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) create(c *gin.Context) {
	var input domain.NewProjectInput
	if err := httpapi.BindJSON(c, &input); err != nil {
		httpapi.AbortWithError(c, err)
		return
	}

	project, err := h.store.Create(input)
	if err != nil {
		httpapi.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		httpapi.AbortWithError(c, httperr.New(http.StatusBadRequest, "ID do projeto inválido."))
		return
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpapi.AbortWithError(c, httperr.New(http.StatusNotFound, "Projeto não encontrado."))
			return
		}
		httpapi.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Projeto removido com sucesso."})
}
