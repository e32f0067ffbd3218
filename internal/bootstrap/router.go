package bootstrap

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mcardoso/portfolio-backend/config"
	httpapi "github.com/mcardoso/portfolio-backend/internal/api/http"
	apimw "github.com/mcardoso/portfolio-backend/internal/api/http/middleware"
	authhttp "github.com/mcardoso/portfolio-backend/internal/auth/http"
	authmw "github.com/mcardoso/portfolio-backend/internal/auth/middleware"
	"github.com/mcardoso/portfolio-backend/internal/auth/token"
	"github.com/mcardoso/portfolio-backend/internal/contact/contactlog"
	contacthttp "github.com/mcardoso/portfolio-backend/internal/contact/http"
	projectshttp "github.com/mcardoso/portfolio-backend/internal/projects/http"
	"github.com/mcardoso/portfolio-backend/internal/projects/store"
)

const maxBodyBytes = 1 << 20 // 1 MB

type RouterDeps struct {
	Config   *config.Config
	Store    *store.FileStore
	Registry *token.Registry
	Mailer   contacthttp.Mailer
	Logbook  *contactlog.Logbook
	Version  string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestIDMiddleware())
	r.Use(corsMiddleware(dep.Config.Server.AllowedOrigins))
	r.Use(apimw.BodySizeLimit(maxBodyBytes))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Rota não encontrada."})
	})

	api := r.Group("/api")

	healthHandler := httpapi.NewHealthHandler("portfolio-backend", dep.Version)
	healthHandler.RegisterRoutes(api)

	authHandler := authhttp.NewHandler(dep.Registry, dep.Config.Auth.AdminPassword)
	authHandler.Register(api.Group("/auth"))

	projectsPublic := api.Group("/projects")
	projectsAdmin := api.Group("/projects")
	projectsAdmin.Use(authmw.SessionAuthMiddleware(dep.Registry))
	projectshttp.NewHandler(dep.Store).Register(projectsPublic, projectsAdmin)

	contactGroup := api.Group("")
	contactGroup.Use(apimw.RateLimitPerClient(rate.Every(10*time.Second), 3))
	contacthttp.NewHandler(dep.Mailer, dep.Logbook, dep.Config.SMTP).Register(contactGroup)

	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if slices.Contains(allowedOrigins, "*") {
		// AllowAllOrigins cannot be combined with credentials; reflect
		// whatever origin the request carries instead.
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = allowedOrigins
	}

	return cors.New(cfg)
}
