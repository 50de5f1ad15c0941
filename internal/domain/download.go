package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediaKind is the classification appended to a download's file name.
type MediaKind string

const (
	MediaKindNone  MediaKind = ""
	MediaKindGIF   MediaKind = "gif"
	MediaKindVideo MediaKind = "video"
)

// Download is one attachment written to disk.
type Download struct {
	ID        uuid.UUID
	OwnerID   int64 // sender id, or chat id for anonymous posts
	ChatID    int64
	MessageID int
	Kind      MediaKind
	Path      string
	CreatedAt time.Time
}

// Ticket is a QR login token as shown to the user.
type Ticket struct {
	URL     string
	Expires time.Time
}
