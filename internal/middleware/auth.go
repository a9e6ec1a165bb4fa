package middleware

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/motoledger/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// SessionIDKey is the context key for storing the authenticated session ID.
	SessionIDKey contextKey = "session_id"
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
)

// GetSessionID extracts the session ID from the context.
// Returns empty string if not found.
func GetSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(SessionIDKey).(string)
	return sessionID
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithSession returns a context carrying the session's identifiers.
func WithSession(ctx context.Context, session *auth.Session) context.Context {
	ctx = context.WithValue(ctx, SessionIDKey, session.ID)
	ctx = context.WithValue(ctx, UserIDKey, session.UserID)
	return context.WithValue(ctx, EmailKey, session.Email)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns empty string if the header is missing or malformed.
func BearerToken(h http.Header) string {
	parts := strings.Fields(h.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Authorizer resolves a bearer token to a live session.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*auth.Session, error)
}

// RequireSession returns a middleware that requires a live session.
// It resolves the bearer token and adds the session ID, user ID and email
// to the request context.
func RequireSession(authorizer Authorizer) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			session, err := authorizer.Authorize(ctx, BearerToken(req.Header()))
			if err != nil {
				return nil, ConnectError(err)
			}
			return next(WithSession(ctx, session), req)
		}
	}
}
