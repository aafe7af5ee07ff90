// Package session implements the shared-password session gate: server-side
// session records plus a signed cookie token that names one of them.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidToken    = errors.New("session: invalid token")
	ErrSessionNotFound = errors.New("session: not found")
)

// Session is one authenticated browser session. It expires at ExpiresAt
// regardless of activity.
type Session struct {
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Store keeps live session ids. Deleting an id revokes every token that
// carries it.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Name() string
}
