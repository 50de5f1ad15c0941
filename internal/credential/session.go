package credential

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gotd/td/session"
)

// SessionStorage is gotd's in-memory session storage, seeded from and
// exported to the opaque token held by Store.
type SessionStorage struct {
	*session.StorageMemory
}

// NewSessionStorage seeds the storage from a token. An empty token means no session.
//
// Tokens written by this program are base64 of the gotd session. Telethon
// string sessions are converted. Anything else is handed to the client as is
// and rejected when it connects.
func NewSessionStorage(ctx context.Context, token string) (*SessionStorage, error) {
	s := &SessionStorage{StorageMemory: new(session.StorageMemory)}
	if token == "" {
		return s, nil
	}

	data, err := decodeToken(ctx, token)
	if err != nil {
		slog.Warn("unrecognized session token, passing it to the client as is", "error", err)
		data = []byte(token)
	}
	if err := s.StoreSession(ctx, data); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

// Token encodes the current session.
func (s *SessionStorage) Token(ctx context.Context) (string, error) {
	data, err := s.LoadSession(ctx)
	if err != nil {
		return "", fmt.Errorf("encode session token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func decodeToken(ctx context.Context, token string) ([]byte, error) {
	if raw, err := base64.StdEncoding.DecodeString(token); err == nil && json.Valid(raw) {
		return raw, nil
	}

	data, err := session.TelethonSession(token)
	if err != nil {
		return nil, fmt.Errorf("decode telethon session: %w", err)
	}
	mem := new(session.StorageMemory)
	loader := session.Loader{Storage: mem}
	if err := loader.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("convert telethon session: %w", err)
	}
	return mem.LoadSession(ctx)
}
