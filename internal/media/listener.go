// Package media downloads attachments of incoming messages.
package media

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gotd/td/tg"
	"github.com/set-night/mediagrab/internal/domain"
)

// Downloader writes the file at loc to path.
type Downloader interface {
	Download(ctx context.Context, loc tg.InputFileLocationClass, path string) error
}

// Journal records finished downloads.
type Journal interface {
	Record(ctx context.Context, d domain.Download) error
}

// Notifier announces finished downloads.
type Notifier interface {
	NotifyDownload(ctx context.Context, d domain.Download)
}

type Listener struct {
	dir        string
	downloader Downloader
	journal    Journal
	notifier   Notifier
	now        func() time.Time
}

// Deps contains the dependencies of a Listener. Journal and Notifier are optional.
type Deps struct {
	Dir        string
	Downloader Downloader
	Journal    Journal
	Notifier   Notifier
}

func New(deps Deps) *Listener {
	return &Listener{
		dir:        deps.Dir,
		downloader: deps.Downloader,
		journal:    deps.Journal,
		notifier:   deps.Notifier,
		now:        time.Now,
	}
}

// Handle downloads the attachment of msg, if any. Each call is independent;
// a failed download is returned and nothing is retried.
func (l *Listener) Handle(ctx context.Context, msg *tg.Message) error {
	if msg.Media == nil {
		return nil
	}

	att, err := attachmentOf(msg.Media)
	if err != nil {
		slog.Debug("skipping media", "message_id", msg.ID, "reason", err)
		return nil
	}

	ownerID := OwnerID(msg)
	path := filepath.Join(l.dir, BaseName(ownerID, msg.ID, att.kind)+att.ext)

	if err := l.downloader.Download(ctx, att.location, path); err != nil {
		return fmt.Errorf("download media to %s: %w", path, err)
	}
	slog.Info("new media downloaded", "path", path)

	d := domain.Download{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		ChatID:    PeerID(msg.PeerID),
		MessageID: msg.ID,
		Kind:      att.kind,
		Path:      path,
		CreatedAt: l.now(),
	}
	if l.journal != nil {
		if err := l.journal.Record(ctx, d); err != nil {
			slog.Error("failed to record download", "error", err, "path", path)
		}
	}
	if l.notifier != nil {
		l.notifier.NotifyDownload(ctx, d)
	}
	return nil
}
