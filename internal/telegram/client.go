// Package telegram wires the gotd client into the login flows and the media listener.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/contrib/middleware/ratelimit"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/auth/qrlogin"
	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/telegram/updates"
	updhook "github.com/gotd/td/telegram/updates/hook"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/set-night/mediagrab/internal/config"
	"github.com/set-night/mediagrab/internal/domain"
	"github.com/set-night/mediagrab/internal/middleware"
	"golang.org/x/time/rate"
)

// Client adapts *telegram.Client to login.Client and media.Downloader.
type Client struct {
	client     *telegram.Client
	waiter     *floodwait.Waiter
	downloader *downloader.Downloader
	gaps       *updates.Manager
	loggedIn   <-chan struct{}
	handler    atomic.Pointer[middleware.HandlerFunc]
}

func NewClient(cfg *config.Config, storage session.Storage) *Client {
	dispatcher := tg.NewUpdateDispatcher()
	waiter := floodwait.NewWaiter().WithCallback(func(ctx context.Context, wait floodwait.FloodWait) {
		slog.Warn("flood wait", "duration", wait.Duration)
	})

	// Until Listen runs the manager, updates pass straight to the dispatcher,
	// which is how login tokens reach qrlogin during the QR flow.
	gaps := updates.New(updates.Config{Handler: dispatcher})

	c := &Client{
		waiter:     waiter,
		gaps:       gaps,
		downloader: downloader.NewDownloader(),
		loggedIn:   qrlogin.OnLoginToken(dispatcher),
	}
	dispatcher.OnNewMessage(func(ctx context.Context, _ tg.Entities, u *tg.UpdateNewMessage) error {
		return c.dispatch(ctx, u.Message)
	})
	dispatcher.OnNewChannelMessage(func(ctx context.Context, _ tg.Entities, u *tg.UpdateNewChannelMessage) error {
		return c.dispatch(ctx, u.Message)
	})

	c.client = telegram.NewClient(cfg.AppID, cfg.AppHash, telegram.Options{
		SessionStorage: storage,
		UpdateHandler:  gaps,
		Middlewares: []telegram.Middleware{
			updhook.UpdateHook(gaps.Handle),
			waiter,
			ratelimit.New(rate.Every(cfg.RateLimitInterval), cfg.RateLimitBurst),
		},
	})
	return c
}

// Run connects, calls f and disconnects when f returns.
func (c *Client) Run(ctx context.Context, f func(ctx context.Context) error) error {
	return c.waiter.Run(ctx, func(ctx context.Context) error {
		return c.client.Run(ctx, f)
	})
}

// Listen registers h for new messages and blocks until ctx is done.
// Without an authorized session nothing is registered and Listen only waits.
func (c *Client) Listen(ctx context.Context, h middleware.HandlerFunc) error {
	authorized, err := c.Authorized(ctx)
	if err != nil {
		return err
	}
	if !authorized {
		slog.Warn("not authorized, no media will be downloaded")
		<-ctx.Done()
		return ctx.Err()
	}

	self, err := c.client.Self(ctx)
	if err != nil {
		return fmt.Errorf("get self: %w", err)
	}
	c.handler.Store(&h)

	return c.gaps.Run(ctx, c.client.API(), self.ID, updates.AuthOptions{
		OnStart: func(ctx context.Context) {
			slog.Info("listening for new media", "user_id", self.ID, "username", self.Username)
		},
	})
}

func (c *Client) dispatch(ctx context.Context, m tg.MessageClass) error {
	msg, ok := m.(*tg.Message)
	if !ok {
		return nil
	}
	h := c.handler.Load()
	if h == nil {
		return nil
	}
	return (*h)(ctx, msg)
}

func (c *Client) Authorized(ctx context.Context) (bool, error) {
	status, err := c.client.Auth().Status(ctx)
	if err != nil {
		return false, fmt.Errorf("get auth status: %w", err)
	}
	return status.Authorized, nil
}

func (c *Client) SignIn(ctx context.Context, a auth.UserAuthenticator) error {
	flow := auth.NewFlow(a, auth.SendCodeOptions{})
	if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
		return fmt.Errorf("auth flow: %w", err)
	}
	return nil
}

func (c *Client) ExportTicket(ctx context.Context) (domain.Ticket, error) {
	token, err := c.client.QR().Export(ctx)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("export login token: %w", err)
	}
	return domain.Ticket{URL: token.URL(), Expires: token.Expires()}, nil
}

func (c *Client) WaitTicket(ctx context.Context, t domain.Ticket) error {
	timer := time.NewTimer(time.Until(t.Expires))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return domain.ErrTicketExpired
	case <-c.loggedIn:
	}

	if _, err := c.client.QR().Import(ctx); err != nil {
		return classifyAuthError(fmt.Errorf("import login token: %w", err))
	}
	return nil
}

func (c *Client) Password(ctx context.Context, password string) error {
	if _, err := c.client.Auth().Password(ctx, password); err != nil {
		return fmt.Errorf("check password: %w", err)
	}
	return nil
}

// classifyAuthError tags two-step verification errors with domain.ErrPasswordRequired.
func classifyAuthError(err error) error {
	if errors.Is(err, auth.ErrPasswordAuthNeeded) || tgerr.Is(err, "SESSION_PASSWORD_NEEDED") {
		return fmt.Errorf("%w: %w", domain.ErrPasswordRequired, err)
	}
	return err
}
