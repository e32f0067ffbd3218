package domain

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/mcardoso/portfolio-backend/internal/httperr"
)

// Submission is one visitor contact attempt. It only lives for the
// duration of the request; its lasting trace is one contact-log block.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// local-part "@" domain containing a dot, nothing fancier
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Normalize trims the fields and validates the submission.
func (s Submission) Normalize() (Submission, error) {
	out := Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}

	if out.Name == "" || out.Email == "" || out.Message == "" {
		return Submission{}, httperr.New(http.StatusBadRequest, "Nome, email e mensagem são obrigatórios.")
	}
	if !emailShape.MatchString(out.Email) {
		return Submission{}, httperr.New(http.StatusBadRequest, "Informe um email válido.")
	}
	return out, nil
}
