// Package middleware wraps message handlers.
package middleware

import (
	"context"

	"github.com/gotd/td/tg"
)

// HandlerFunc handles one incoming message.
type HandlerFunc func(ctx context.Context, msg *tg.Message) error

// Middleware decorates a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain applies middlewares so that the first one is the outermost.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
