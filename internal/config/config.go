package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration. Environment variables are
// parsed from the MOVIEAPP_ prefix, e.g. MOVIEAPP_TMDB_API_KEY.
type Config struct {
	// TMDB upstream
	TMDBAPIKey   string `envconfig:"TMDB_API_KEY" default:""`
	TMDBBaseURL  string `envconfig:"TMDB_BASE_URL" default:""`
	TMDBLanguage string `envconfig:"TMDB_LANGUAGE" default:"en-US"`
	ImageBaseURL string `envconfig:"TMDB_IMAGE_BASE_URL" default:""`

	// HTTP server
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// Storage
	DBPath    string `envconfig:"DB_PATH" default:"movieapp.db"`
	BackupDir string `envconfig:"BACKUP_DIR" default:"backups"`

	// Optional Telegram bot surface
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" default:""`
}

// New loads the configuration from the environment.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("movieapp", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
