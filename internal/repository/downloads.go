package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/set-night/mediagrab/internal/domain"
)

// DownloadRepository is the download journal.
type DownloadRepository struct {
	db *pgxpool.Pool
}

func NewDownloadRepository(db *pgxpool.Pool) *DownloadRepository {
	return &DownloadRepository{db: db}
}

const insertDownload = `
INSERT INTO downloads (id, owner_id, chat_id, message_id, kind, path, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Record implements media.Journal.
func (r *DownloadRepository) Record(ctx context.Context, d domain.Download) error {
	_, err := r.db.Exec(ctx, insertDownload,
		d.ID, d.OwnerID, d.ChatID, d.MessageID, string(d.Kind), d.Path, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert download: %w", err)
	}
	return nil
}
