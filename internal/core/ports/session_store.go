package ports

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/session"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists one Session per user. Saves are last-writer-wins.
type SessionStore interface {
	// Load returns ErrSessionNotFound when the user has no session.
	Load(ctx context.Context, userID int64) (session.Session, error)
	Save(ctx context.Context, userID int64, s session.Session) error
}

// SessionSweeper is implemented by stores that need explicit expiry.
type SessionSweeper interface {
	// DeleteIdleSince removes sessions not saved since cutoff and reports how many.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}
