package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	Auth   Auth
	SMTP   SMTP
	App    App
}

type Server struct {
	Port           string
	AllowedOrigins []string
}

type Auth struct {
	AdminPassword string
	TokenTTL      time.Duration
}

type SMTP struct {
	Host      string
	Port      int
	User      string
	Password  string
	Recipient string
	Subject   string
}

type App struct {
	Environment string
	DataDir     string
}

// Load reads configuration from the environment, applying defaults that
// match a local development setup.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if os.Getenv("ADMIN_PASSWORD") == "" {
		log.Println("Warning: no admin password set, using default password \"admin\"")
	}

	cfg := &Config{
		Server: Server{
			Port:           getEnv("PORT", "4000"),
			AllowedOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),
		},
		Auth: Auth{
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
			TokenTTL:      time.Duration(getEnvAsInt("TOKEN_TTL_MINUTES", 120)) * time.Minute,
		},
		SMTP: SMTP{
			Host:      getEnv("SMTP_HOST", ""),
			Port:      getEnvAsInt("SMTP_PORT", 465),
			User:      getEnv("SMTP_USER", ""),
			Password:  getEnv("SMTP_PASS", ""),
			Recipient: getEnv("CONTACT_RECIPIENT", os.Getenv("SMTP_TO")),
			Subject:   getEnv("EMAIL_SUBJECT", "Novo contato pelo portfólio"),
		},
		App: App{
			Environment: getEnv("APP_ENV", "development"),
			DataDir:     getEnv("DATA_DIR", "data"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be positive")
	}

	return nil
}

// MailConfigured reports whether the relay and recipient are fully set.
// The server still boots without them; only /api/contact needs them.
func (c *Config) MailConfigured() bool {
	s := c.SMTP
	return s.Host != "" && s.User != "" && s.Password != "" && s.Recipient != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
