package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/motoledger/internal/apperr"
	"github.com/mmynk/motoledger/internal/metrics"
	"github.com/mmynk/motoledger/internal/models"
)

// Navigation targets returned with gate outcomes.
const (
	RedirectHome   = "/"
	RedirectSignIn = "/sign-in"
)

// User-visible messages.
const (
	msgEmptyCredentials   = "Email and password cannot be empty."
	msgEmailInUse         = "Email already in use."
	msgInvalidCredentials = "Invalid email or password."
	msgSignInRequired     = "Please sign in."
)

// SignInResult is returned by SignUp and SignIn.
type SignInResult struct {
	Token    string
	Session  *Session
	Redirect string
}

// SessionStatus answers CheckSession.
type SessionStatus struct {
	InSession bool
	Email     string
	Redirect  string
}

// Gate opens, checks and closes sessions.
type Gate struct {
	authn    Authenticator
	sessions SessionStore
	tokens   *JWTManager
	ttl      time.Duration
	now      func() time.Time
}

// NewGate creates a gate issuing sessions that last ttl.
func NewGate(authn Authenticator, sessions SessionStore, tokens *JWTManager, ttl time.Duration) *Gate {
	return &Gate{
		authn:    authn,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		now:      time.Now,
	}
}

// SignUp registers email and signs the new user in.
func (g *Gate) SignUp(ctx context.Context, email, password string) (*SignInResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperr.Validation(msgEmptyCredentials)
	}

	user, err := g.authn.Register(ctx, email, password)
	switch {
	case errors.Is(err, ErrEmailExists):
		return nil, apperr.Conflict(msgEmailInUse)
	case errors.Is(err, ErrEmptyCredentials):
		return nil, apperr.Validation(msgEmptyCredentials)
	case err != nil:
		return nil, apperr.Storage(err)
	}

	slog.Info("User signed up", "user_id", user.ID)
	return g.open(ctx, user)
}

// SignIn checks the credentials and opens a session. Every credential
// failure gets the same message.
func (g *Gate) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		metrics.SessionEvents.WithLabelValues("rejected").Inc()
		return nil, apperr.Auth(msgEmptyCredentials, ErrEmptyCredentials)
	}

	user, err := g.authn.Authenticate(ctx, email, password)
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrEmptyCredentials):
		metrics.SessionEvents.WithLabelValues("rejected").Inc()
		return nil, apperr.Auth(msgInvalidCredentials, err)
	case err != nil:
		return nil, apperr.Storage(err)
	}

	return g.open(ctx, user)
}

func (g *Gate) open(ctx context.Context, user *models.User) (*SignInResult, error) {
	session := NewSession(user, g.now(), g.ttl)

	if err := g.sessions.Save(ctx, session); err != nil {
		return nil, apperr.Storage(err)
	}
	token, err := g.tokens.Generate(session)
	if err != nil {
		if derr := g.sessions.Delete(ctx, session.ID); derr != nil {
			slog.Warn("Failed to discard unsigned session", "session_id", session.ID, "error", derr)
		}
		return nil, apperr.Storage(err)
	}

	metrics.SessionEvents.WithLabelValues("opened").Inc()
	slog.Info("Session opened", "session_id", session.ID, "user_id", user.ID)
	return &SignInResult{Token: token, Session: session, Redirect: RedirectHome}, nil
}

// SignOut revokes the session. Signing out twice is not an error.
func (g *Gate) SignOut(ctx context.Context, sessionID string) (string, error) {
	if err := g.sessions.Delete(ctx, sessionID); err != nil {
		return "", apperr.Storage(err)
	}
	metrics.SessionEvents.WithLabelValues("closed").Inc()
	slog.Info("Session closed", "session_id", sessionID)
	return RedirectSignIn, nil
}

// CheckSession reports whether token names a live session. Only a session
// store failure is an error; a bad token is simply not in session.
func (g *Gate) CheckSession(ctx context.Context, token string) (SessionStatus, error) {
	session, err := g.Authorize(ctx, token)
	if errors.Is(err, apperr.ErrAuth) {
		return SessionStatus{Redirect: RedirectSignIn}, nil
	}
	if err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{InSession: true, Email: session.Email}, nil
}

// Authorize returns the live session named by token.
func (g *Gate) Authorize(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperr.Auth(msgSignInRequired, ErrMissingToken)
	}

	claims, err := g.tokens.Validate(token)
	if err != nil {
		return nil, apperr.Auth(msgSignInRequired, err)
	}

	session, err := g.sessions.Get(ctx, claims.SessionID())
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperr.Auth(msgSignInRequired, err)
	}
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if session.Expired(g.now()) {
		return nil, apperr.Auth(msgSignInRequired, ErrSessionNotFound)
	}
	return session, nil
}
