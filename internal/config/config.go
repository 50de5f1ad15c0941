package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Core
	AppID   int    `env:"API_ID,required,notEmpty"`
	AppHash string `env:"API_HASH,required,notEmpty"`

	// Local state
	SessionFile string `env:"SESSION_FILE" envDefault:"session.json"`
	DownloadDir string `env:"DOWNLOAD_DIR" envDefault:"downloads"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Download journal (disabled when empty)
	DatabaseURL string `env:"DATABASE_URL"`

	// Bot API notifications (disabled when token or chat is empty)
	NotifyBotToken string `env:"NOTIFY_BOT_TOKEN"`
	NotifyChatID   int64  `env:"NOTIFY_CHAT_ID"`
	NotifyTopicID  int    `env:"NOTIFY_TOPIC_ID"`

	// Outgoing RPC rate limit
	RateLimitInterval time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"100ms"`
	RateLimitBurst    int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

// Load reads .env from the working directory when present, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) JournalEnabled() bool {
	return c.DatabaseURL != ""
}

func (c *Config) NotifyEnabled() bool {
	return c.NotifyBotToken != "" && c.NotifyChatID != 0
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c *Config) Logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
