package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/set-night/mediagrab/internal/config"
	"github.com/set-night/mediagrab/internal/domain"
)

// Notifier posts download events to a log chat through the Bot API.
type Notifier struct {
	bot     *bot.Bot
	chatID  int64
	topicID int
}

func NewNotifier(cfg *config.Config) (*Notifier, error) {
	b, err := bot.New(cfg.NotifyBotToken)
	if err != nil {
		return nil, fmt.Errorf("create notify bot: %w", err)
	}
	return &Notifier{bot: b, chatID: cfg.NotifyChatID, topicID: cfg.NotifyTopicID}, nil
}

// NotifyDownload implements media.Notifier.
func (n *Notifier) NotifyDownload(ctx context.Context, d domain.Download) {
	n.send(ctx, downloadText(d))
}

// NotifyError implements middleware.ErrorReporter.
func (n *Notifier) NotifyError(ctx context.Context, err error, where string) {
	n.send(ctx, errorText(err, where, time.Now()))
}

func (n *Notifier) send(ctx context.Context, text string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.NotifyTimeout)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          n.chatID,
		Text:            truncate(text, config.MaxTelegramMessageLen),
		MessageThreadID: n.topicID,
	})
	if err != nil {
		slog.Error("failed to send notification", "error", err)
	}
}

func downloadText(d domain.Download) string {
	kind := string(d.Kind)
	if kind == "" {
		kind = "file"
	}
	return fmt.Sprintf("📥 New media downloaded\n\nFrom: %d\nChat: %d\nMessage: %d\nType: %s\nPath: %s",
		d.OwnerID, d.ChatID, d.MessageID, kind, d.Path)
}

func errorText(err error, where string, at time.Time) string {
	return fmt.Sprintf("❌ Error\n\nContext: %s\nError: %s\nTime: %s",
		where, err.Error(), at.Format("2006-01-02 15:04:05"))
}

func truncate(text string, max int) string {
	const suffix = "\n\n... (truncated)"
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-len([]rune(suffix))]) + suffix
}
