package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/motoledger/internal/models"
)

// ErrSessionNotFound is returned when a session is unknown, expired or revoked.
var ErrSessionNotFound = errors.New("session not found")

// Session is one signed-in client.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession opens a session for user that lasts ttl from now.
func NewSession(user *models.User, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionStore persists sessions until they expire.
type SessionStore interface {
	// Save stores the session until its ExpiresAt.
	Save(ctx context.Context, session *Session) error
	// Get returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*Session, error)
	// Delete removes the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string) error
	Close() error
}
