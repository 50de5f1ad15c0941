// Package login drives the interactive sign-in flows.
package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gotd/td/telegram/auth"
	"github.com/set-night/mediagrab/internal/config"
	"github.com/set-night/mediagrab/internal/domain"
	"github.com/set-night/mediagrab/internal/qr"
)

// Client is the part of the Telegram client the login flows need.
type Client interface {
	Authorized(ctx context.Context) (bool, error)
	// SignIn runs the phone and code flow, skipping it when already authorized.
	SignIn(ctx context.Context, a auth.UserAuthenticator) error
	ExportTicket(ctx context.Context) (domain.Ticket, error)
	// WaitTicket blocks until the ticket is accepted or expires.
	// Expiry and two-step verification are reported as domain.ErrTicketExpired
	// and domain.ErrPasswordRequired.
	WaitTicket(ctx context.Context, t domain.Ticket) error
	Password(ctx context.Context, password string) error
}

// TokenSource yields the current session token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenStore persists a session token.
type TokenStore interface {
	Save(token string) error
	Path() string
}

type Orchestrator struct {
	client   Client
	prompter *Prompter
	tokens   TokenSource
	store    TokenStore
}

// Deps contains all dependencies required to construct an Orchestrator.
type Deps struct {
	Client   Client
	Prompter *Prompter
	Tokens   TokenSource
	Store    TokenStore
}

func New(deps Deps) *Orchestrator {
	return &Orchestrator{
		client:   deps.Client,
		prompter: deps.Prompter,
		tokens:   deps.Tokens,
		store:    deps.Store,
	}
}

// Login runs the flow selected by choice. An unknown choice returns
// domain.ErrInvalidChoice before the client is used.
func (o *Orchestrator) Login(ctx context.Context, choice string) error {
	switch choice {
	case config.ChoiceOTP:
		return o.loginOTP(ctx)
	case config.ChoiceQR:
		return o.loginQR(ctx)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidChoice, choice)
	}
}

func (o *Orchestrator) loginOTP(ctx context.Context) error {
	slog.Info("starting otp login")
	if err := o.client.SignIn(ctx, o.prompter); err != nil {
		return fmt.Errorf("%w: otp login: %w", domain.ErrNotAuthorized, err)
	}
	if err := o.persist(ctx); err != nil {
		return err
	}
	slog.Info("logged in with otp", "session_file", o.store.Path())
	return nil
}

// loginQR makes one QR attempt. Failures are reported and end the flow
// without an error, leaving the caller to carry on with whatever session it has.
func (o *Orchestrator) loginQR(ctx context.Context) error {
	authorized, err := o.client.Authorized(ctx)
	if err != nil {
		return fmt.Errorf("check authorization: %w", err)
	}
	if authorized {
		slog.Info("session is already authorized, skipping qr login")
		return nil
	}

	slog.Info("starting qr code login session")
	ticket, err := o.client.ExportTicket(ctx)
	if err != nil {
		slog.Error("failed to initiate qr login", "error", err)
		return nil
	}

	art, err := qr.Render(ticket.URL)
	if err != nil {
		return fmt.Errorf("render login token: %w", err)
	}
	o.prompter.Printf("%s\nPlease scan the above QR code with your Telegram app.\n", art)

	err = o.client.WaitTicket(ctx, ticket)
	switch {
	case err == nil:
		slog.Info("qr code login successful")
		return o.persistLogged(ctx)

	case errors.Is(err, domain.ErrPasswordRequired):
		slog.Info("account has two-step verification enabled")
		return o.signInPassword(ctx)

	default:
		slog.Error("qr code login attempt failed", "error", err, "expires", ticket.Expires)
		return nil
	}
}

// signInPassword makes exactly one password attempt.
func (o *Orchestrator) signInPassword(ctx context.Context) error {
	password, err := o.prompter.Password(ctx)
	if err != nil {
		slog.Error("failed to read password", "error", err)
		return nil
	}
	if err := o.client.Password(ctx, password); err != nil {
		slog.Error("failed to sign in with password", "error", err)
		return nil
	}
	slog.Info("logged in with two-step verification")
	return o.persistLogged(ctx)
}

func (o *Orchestrator) persistLogged(ctx context.Context) error {
	if err := o.persist(ctx); err != nil {
		return err
	}
	slog.Info("session saved", "session_file", o.store.Path())
	return nil
}

func (o *Orchestrator) persist(ctx context.Context) error {
	token, err := o.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("get session token: %w", err)
	}
	if err := o.store.Save(token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
