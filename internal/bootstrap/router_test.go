package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcardoso/portfolio-backend/config"
	"github.com/mcardoso/portfolio-backend/internal/auth/token"
	"github.com/mcardoso/portfolio-backend/internal/contact/contactlog"
	"github.com/mcardoso/portfolio-backend/internal/contact/smtp"
	"github.com/mcardoso/portfolio-backend/internal/projects/domain"
	"github.com/mcardoso/portfolio-backend/internal/projects/store"
)

type env struct {
	router  *gin.Engine
	logPath string
}

func newTestEnv(t *testing.T, origins []string) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	s := store.New(filepath.Join(dir, "projects.json"))
	require.NoError(t, s.Ensure())

	cfg := &config.Config{
		Server: config.Server{Port: "4000", AllowedOrigins: origins},
		Auth:   config.Auth{AdminPassword: "s3gredo", TokenTTL: 2 * time.Hour},
		SMTP: config.SMTP{
			Host:      "127.0.0.1",
			Port:      9, // discard port; nothing listens in tests
			User:      "user@relay.example.com",
			Password:  "secret",
			Recipient: "owner@example.com",
			Subject:   "Novo contato pelo portfólio",
		},
		App: config.App{Environment: "test", DataDir: dir},
	}

	mailer := smtp.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.Recipient)
	logPath := filepath.Join(dir, "contact-log.txt")

	router := BuildRouter(RouterDeps{
		Config:   cfg,
		Store:    s,
		Registry: token.NewRegistry(cfg.Auth.TokenTTL),
		Mailer:   mailer,
		Logbook:  contactlog.New(logPath),
		Version:  "test",
	})
	return &env{router: router, logPath: logPath}
}

func (e *env) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *env) login(t *testing.T) string {
	rr := e.do(http.MethodPost, "/api/auth/login", `{"password":"s3gredo"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t, []string{"*"})
	rr := e.do(http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestProjectAdminFlow(t *testing.T) {
	e := newTestEnv(t, []string{"*"})
	tok := e.login(t)

	rr := e.do(http.MethodPost, "/api/projects",
		`{"title":"Primeiro","description":"d","githubUrl":"https://github.com/x/a","tags":"go,web"}`, tok)
	require.Equal(t, http.StatusCreated, rr.Code)

	var first domain.Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, []string{"go", "web"}, first.Tags)

	rr = e.do(http.MethodPost, "/api/projects",
		`{"title":"Segundo","description":"d","githubUrl":"https://github.com/x/b"}`, tok)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = e.do(http.MethodGet, "/api/projects", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []domain.Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Segundo", list[0].Title, "newest first")
	assert.Equal(t, "Primeiro", list[1].Title)

	rr = e.do(http.MethodDelete, "/api/projects/"+first.ID, "", tok)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Projeto removido com sucesso")

	rr = e.do(http.MethodDelete, "/api/projects/"+first.ID, "", tok)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMutationsRequireAuth(t *testing.T) {
	e := newTestEnv(t, []string{"*"})

	rr := e.do(http.MethodPost, "/api/projects",
		`{"title":"t","description":"d","githubUrl":"g"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Credenciais ausentes")

	rr = e.do(http.MethodDelete, "/api/projects/qualquer", "", "token-desconhecido")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Sessão inválida ou expirada")

	rr = e.do(http.MethodGet, "/api/projects", "", "")
	assert.Equal(t, http.StatusOK, rr.Code, "read path stays public")
}

func TestCreateValidationLeavesCollectionUnchanged(t *testing.T) {
	e := newTestEnv(t, []string{"*"})
	tok := e.login(t)

	rr := e.do(http.MethodPost, "/api/projects", `{"description":"d","githubUrl":"g"}`, tok)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "O título é obrigatório")

	rr = e.do(http.MethodGet, "/api/projects", "", "")
	var list []domain.Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestContactUnreachableRelayYields502AndFailLog(t *testing.T) {
	e := newTestEnv(t, []string{"*"})

	rr := e.do(http.MethodPost, "/api/contact",
		`{"name":"Maria","email":"maria@example.com","message":"Olá"}`, "")
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	data, err := os.ReadFile(e.logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[#fail ")
	assert.Contains(t, string(data), "Maria <maria@example.com>")
}

func TestPayloadTooLarge(t *testing.T) {
	e := newTestEnv(t, []string{"*"})

	huge := `{"password":"` + strings.Repeat("x", 1<<20) + `"}`
	rr := e.do(http.MethodPost, "/api/auth/login", huge, "")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, rr.Body.String(), "Payload muito grande")
}

func TestUnknownRoute(t *testing.T) {
	e := newTestEnv(t, []string{"*"})
	rr := e.do(http.MethodGet, "/api/nada", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Rota não encontrada")
}

func TestCORSWildcardReflectsOrigin(t *testing.T) {
	e := newTestEnv(t, []string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://example.org", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSAllowList(t *testing.T) {
	e := newTestEnv(t, []string{"https://meusite.example"})

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "https://intruso.example")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "https://meusite.example")
	rr = httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	assert.Equal(t, "https://meusite.example", rr.Header().Get("Access-Control-Allow-Origin"))
}
