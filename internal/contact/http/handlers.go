package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mcardoso/portfolio-backend/config"
	httpapi "github.com/mcardoso/portfolio-backend/internal/api/http"
	"github.com/mcardoso/portfolio-backend/internal/contact/contactlog"
	"github.com/mcardoso/portfolio-backend/internal/contact/domain"
	"github.com/mcardoso/portfolio-backend/internal/contact/smtp"
	"github.com/mcardoso/portfolio-backend/internal/httperr"
)

// Mailer delivers one message per call. Satisfied by *smtp.Client.
type Mailer interface {
	Send(msg smtp.Message) error
}

type Handler struct {
	mailer  Mailer
	logbook *contactlog.Logbook
	smtp    config.SMTP
}

func NewHandler(mailer Mailer, logbook *contactlog.Logbook, smtpCfg config.SMTP) *Handler {
	return &Handler{mailer: mailer, logbook: logbook, smtp: smtpCfg}
}

func (h *Handler) submit(c *gin.Context) {
	var payload domain.Submission
	if err := httpapi.BindJSON(c, &payload); err != nil {
		httpapi.AbortWithError(c, err)
		return
	}

	sub, err := payload.Normalize()
	if err != nil {
		httpapi.AbortWithError(c, err)
		return
	}

	// A relay left unconfigured is an operator error, not a caller or
	// transient one: surface 500, not 502.
	if err := h.checkConfiguration(); err != nil {
		h.logAttempt(sub, false)
		httpapi.AbortWithError(c, err)
		return
	}

	sendErr := h.mailer.Send(smtp.Message{
		FromName:  sub.Name,
		FromEmail: sub.Email,
		Subject:   h.smtp.Subject,
		Body:      sub.Message,
	})
	h.logAttempt(sub, sendErr == nil)

	if sendErr != nil {
		log.Printf("Contact delivery failed: %v", sendErr)
		c.JSON(http.StatusBadGateway, gin.H{"message": "Não foi possível entregar a mensagem. Tente novamente mais tarde."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mensagem enviada com sucesso! Em breve entrarei em contato."})
}

func (h *Handler) checkConfiguration() error {
	if h.smtp.Recipient == "" {
		return httperr.New(http.StatusInternalServerError, "Destinatário do email não configurado (CONTACT_RECIPIENT).")
	}
	if h.smtp.Host == "" || h.smtp.User == "" || h.smtp.Password == "" {
		return httperr.New(http.StatusInternalServerError, "Servidor SMTP não configurado. Defina SMTP_HOST, SMTP_USER e SMTP_PASS.")
	}
	return nil
}

// logAttempt records the attempt unconditionally; a logging failure must
// not affect the response, so it is reported and swallowed.
func (h *Handler) logAttempt(sub domain.Submission, delivered bool) {
	if err := h.logbook.Append(sub, delivered); err != nil {
		log.Printf("Failed to record contact attempt: %v", err)
	}
}
