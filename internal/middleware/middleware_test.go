package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/motoledger/internal/apperr"
	"github.com/mmynk/motoledger/internal/auth"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def", "abc.def"},
		{"bearer abc", "abc"},
		{"", ""},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"Bearer a b", ""},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			h := http.Header{}
			if tt.header != "" {
				h.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(h))
		})
	}
}

func TestConnectError(t *testing.T) {
	tests := []struct {
		err  error
		code connect.Code
	}{
		{apperr.Validation("Part name cannot be empty."), connect.CodeInvalidArgument},
		{apperr.NotFound("Motorbike not found."), connect.CodeNotFound},
		{apperr.InvalidState("sold"), connect.CodeFailedPrecondition},
		{apperr.Conflict("Email already in use."), connect.CodeAlreadyExists},
		{apperr.Auth("Invalid email or password.", nil), connect.CodeUnauthenticated},
		{apperr.Storage(errors.New("disk full")), connect.CodeUnavailable},
		{errors.New("boom"), connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			err := ConnectError(tt.err)
			assert.Equal(t, tt.code, connect.CodeOf(err))

			var connectErr *connect.Error
			require.True(t, errors.As(err, &connectErr))
			assert.Equal(t, tt.err.Error(), connectErr.Message())
		})
	}

	assert.Nil(t, ConnectError(nil))
	original := connect.NewError(connect.CodeAborted, errors.New("x"))
	assert.Same(t, original, ConnectError(original))
}

type fakeAuthorizer struct {
	sessions map[string]*auth.Session
}

func (f fakeAuthorizer) Authorize(_ context.Context, token string) (*auth.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, apperr.Auth("Please sign in.", auth.ErrInvalidToken)
}

func TestRequireSession(t *testing.T) {
	authorizer := fakeAuthorizer{sessions: map[string]*auth.Session{
		"good": {ID: "sess-1", UserID: "user-1", Email: "user@x.com", ExpiresAt: time.Now().Add(time.Hour)},
	}}

	var seen context.Context
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = ctx
		return connect.NewResponse(&struct{}{}), nil
	})
	handler := RequireSession(authorizer)(next)

	t.Run("valid token", func(t *testing.T) {
		req := connect.NewRequest(&struct{}{})
		req.Header().Set("Authorization", "Bearer good")

		_, err := handler(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "sess-1", GetSessionID(seen))
		assert.Equal(t, "user-1", GetUserID(seen))
		assert.Equal(t, "user@x.com", GetEmail(seen))
	})

	t.Run("missing or bad token", func(t *testing.T) {
		for _, header := range []string{"", "Bearer bad"} {
			req := connect.NewRequest(&struct{}{})
			if header != "" {
				req.Header().Set("Authorization", header)
			}
			_, err := handler(context.Background(), req)
			assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
		}
	})
}

func TestErrorInterceptor(t *testing.T) {
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, apperr.InvalidState("Cannot add parts to 'Honda CB750' as it is already sold.")
	})

	_, err := ErrorInterceptor()(next)(context.Background(), connect.NewRequest(&struct{}{}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	assert.Contains(t, err.Error(), "already sold")
}
