package domain

import "errors"

var (
	ErrInvalidChoice      = errors.New("invalid login method choice")
	ErrNotAuthorized      = errors.New("session is not authorized")
	ErrPasswordRequired   = errors.New("two-step verification password is required")
	ErrTicketExpired      = errors.New("login ticket expired")
	ErrNoDownloadableFile = errors.New("media has no downloadable file")
)
