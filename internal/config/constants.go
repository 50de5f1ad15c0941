package config

import "time"

const (
	// DotEnvFile is loaded from the working directory before parsing the environment.
	DotEnvFile = ".env"

	// Menu choices
	ChoiceOTP = "1"
	ChoiceQR  = "2"

	// Database pool sizing for the download journal
	JournalMaxConns = 4
	JournalMinConns = 1

	// Notification send timeout
	NotifyTimeout = 10 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Default extension for photos, which carry no MIME type
	PhotoExtension = ".jpg"
)
