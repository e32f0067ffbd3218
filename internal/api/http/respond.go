package http

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcardoso/portfolio-backend/internal/httperr"
)

// AbortWithError converts a handler error into the structured JSON error
// shape. Errors that carry no HTTP status become a generic 500; their
// detail goes to the operational log, never to the caller.
func AbortWithError(c *gin.Context, err error) {
	var httpErr *httperr.Error
	if errors.As(err, &httpErr) {
		c.AbortWithStatusJSON(httpErr.Status, gin.H{"message": httpErr.Message})
		return
	}

	log.Printf("Unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Erro interno do servidor."})
}

// BindJSON decodes the request body into dst. An empty body decodes as
// the zero value, an oversized body maps to 413 and anything unparsable
// to a generic 400, without leaking parser detail to the caller.
func BindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return httperr.New(http.StatusRequestEntityTooLarge, "Payload muito grande.")
	}
	return httperr.New(http.StatusBadRequest, "JSON inválido.")
}
