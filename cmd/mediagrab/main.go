package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mediagrab "github.com/set-night/mediagrab"
	"github.com/set-night/mediagrab/internal/config"
	"github.com/set-night/mediagrab/internal/credential"
	"github.com/set-night/mediagrab/internal/login"
	"github.com/set-night/mediagrab/internal/media"
	"github.com/set-night/mediagrab/internal/middleware"
	"github.com/set-night/mediagrab/internal/repository"
	"github.com/set-night/mediagrab/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("please ensure that API_ID and API_HASH are set in the environment or .env", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	slog.SetDefault(cfg.Logger())

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the saved session, if any
	store := credential.NewStore(cfg.SessionFile)
	token, _, err := store.Load()
	if err != nil {
		slog.Error("failed to load session", "error", err)
		os.Exit(1)
	}
	sessions, err := credential.NewSessionStorage(ctx, token)
	if err != nil {
		slog.Error("failed to restore session", "error", err, "session_file", cfg.SessionFile)
		os.Exit(1)
	}

	// Optional download journal
	var journal media.Journal
	if cfg.JournalEnabled() {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		migrationsFS, err := fs.Sub(mediagrab.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		journal = repository.NewDownloadRepository(pool)
	}

	// Optional Bot API notifications
	var (
		notifier media.Notifier
		reporter middleware.ErrorReporter
	)
	if cfg.NotifyEnabled() {
		n, err := telegram.NewNotifier(cfg)
		if err != nil {
			slog.Error("failed to create notifier", "error", err)
			os.Exit(1)
		}
		notifier, reporter = n, n
	}

	prompter := login.NewPrompter(os.Stdin, os.Stdout)
	choice, err := prompter.Choose()
	if err != nil {
		slog.Error("failed to read login method", "error", err)
		os.Exit(1)
	}

	client := telegram.NewClient(cfg, sessions)
	orchestrator := login.New(login.Deps{
		Client:   client,
		Prompter: prompter,
		Tokens:   sessions,
		Store:    store,
	})
	listener := media.New(media.Deps{
		Dir:        cfg.DownloadDir,
		Downloader: client,
		Journal:    journal,
		Notifier:   notifier,
	})
	handler := middleware.Chain(listener.Handle,
		middleware.Recover(),
		middleware.Logging(reporter),
	)

	err = client.Run(ctx, func(ctx context.Context) error {
		if err := orchestrator.Login(ctx, choice); err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
			return fmt.Errorf("create download dir: %w", err)
		}
		slog.Info("login finished, starting media downloader", "dir", cfg.DownloadDir)

		return client.Listen(ctx, handler)
	})

	if code := exitCode(err); code != 0 {
		slog.Error("client stopped", "error", err)
		os.Exit(code)
	}
	slog.Info("stopped gracefully")
}

// exitCode maps the error that ended the client to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return 0
	default:
		return 1
	}
}
