package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadRequiresAppCredentials(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_ID", "")
	t.Setenv("API_HASH", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for empty API_ID and API_HASH")
	}
	if !strings.Contains(err.Error(), "API_ID") {
		t.Fatalf("expected error to name API_ID, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_ID", "12345")
	t.Setenv("API_HASH", "0123456789abcdef")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AppID != 12345 {
		t.Fatalf("expected app id 12345, got %d", cfg.AppID)
	}
	if cfg.SessionFile != "session.json" {
		t.Fatalf("expected default session file, got %q", cfg.SessionFile)
	}
	if cfg.DownloadDir != "downloads" {
		t.Fatalf("expected default download dir, got %q", cfg.DownloadDir)
	}
	if cfg.RateLimitInterval != 100*time.Millisecond {
		t.Fatalf("expected 100ms rate limit interval, got %v", cfg.RateLimitInterval)
	}
	if cfg.JournalEnabled() {
		t.Fatal("expected journal to be disabled without DATABASE_URL")
	}
	if cfg.NotifyEnabled() {
		t.Fatal("expected notifications to be disabled without a bot token")
	}
}

func TestNotifyNeedsTokenAndChat(t *testing.T) {
	cfg := &Config{NotifyBotToken: "123:abc"}
	if cfg.NotifyEnabled() {
		t.Fatal("expected notifications disabled without chat id")
	}
	cfg.NotifyChatID = -100500
	if !cfg.NotifyEnabled() {
		t.Fatal("expected notifications enabled with token and chat id")
	}
}

func TestLoggerLevel(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	if !cfg.Logger().Enabled(t.Context(), slog.LevelDebug) {
		t.Fatal("expected debug level to be enabled")
	}

	cfg = &Config{LogLevel: "nonsense"}
	if cfg.Logger().Enabled(t.Context(), slog.LevelDebug) {
		t.Fatal("expected unknown level to fall back to info")
	}
}
