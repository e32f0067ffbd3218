package main

import (
	"log"
	"path/filepath"

	"github.com/mcardoso/portfolio-backend/config"
	cronjob "github.com/mcardoso/portfolio-backend/internal/auth/cron"
	"github.com/mcardoso/portfolio-backend/internal/auth/token"
	"github.com/mcardoso/portfolio-backend/internal/bootstrap"
	"github.com/mcardoso/portfolio-backend/internal/contact/contactlog"
	"github.com/mcardoso/portfolio-backend/internal/contact/smtp"
	"github.com/mcardoso/portfolio-backend/internal/projects/store"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	projectStore := store.New(filepath.Join(cfg.App.DataDir, "projects.json"))
	if err := projectStore.Ensure(); err != nil {
		log.Fatalf("Failed to prepare data dir: %v", err)
	}

	registry := token.NewRegistry(cfg.Auth.TokenTTL)
	scheduler := cronjob.NewScheduler(registry)
	scheduler.Start()
	defer scheduler.Stop()

	mailer := smtp.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.Recipient)
	logbook := contactlog.New(filepath.Join(cfg.App.DataDir, "contact-log.txt"))

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config:   cfg,
		Store:    projectStore,
		Registry: registry,
		Mailer:   mailer,
		Logbook:  logbook,
		Version:  version,
	})

	if !cfg.MailConfigured() {
		log.Println("Warning: SMTP relay not fully configured; /api/contact will answer 500")
	}

	log.Printf("Portfolio API listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
