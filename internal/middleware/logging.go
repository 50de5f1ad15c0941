package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gotd/td/tg"
)

// ErrorReporter receives handler failures.
type ErrorReporter interface {
	NotifyError(ctx context.Context, err error, where string)
}

// Logging returns middleware that logs failures and processing time.
// reporter may be nil.
func Logging(reporter ErrorReporter) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg *tg.Message) error {
			start := time.Now()

			err := next(ctx, msg)
			if err != nil {
				slog.Error("message handler failed",
					"message_id", msg.ID,
					"error", err,
				)
				if reporter != nil {
					reporter.NotifyError(ctx, err, "media listener")
				}
			}

			slog.Debug("message processed",
				"message_id", msg.ID,
				"duration", time.Since(start),
			)
			return err
		}
	}
}
