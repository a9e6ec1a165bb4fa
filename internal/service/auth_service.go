package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/motoledger/internal/auth"
	"github.com/mmynk/motoledger/internal/middleware"
	"github.com/mmynk/motoledger/internal/state"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	gate     *auth.Gate
	registry *state.Registry
}

// NewAuthService creates a new authentication service. Signing out drops
// the session's workspace from registry.
func NewAuthService(gate *auth.Gate, registry *state.Registry) *AuthService {
	return &AuthService{gate: gate, registry: registry}
}

// SignUp creates a new account and opens a session for it.
func (s *AuthService) SignUp(ctx context.Context, req *connect.Request[SignUpRequest]) (*connect.Response[SignInResponse], error) {
	slog.Info("SignUp request received", "email", req.Msg.Email)

	result, err := s.gate.SignUp(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		slog.Warn("SignUp failed", "email", req.Msg.Email, "error", err)
		return nil, err
	}
	return connect.NewResponse(toSignInResponse(result)), nil
}

// SignIn opens a session for an existing account.
func (s *AuthService) SignIn(ctx context.Context, req *connect.Request[SignInRequest]) (*connect.Response[SignInResponse], error) {
	slog.Info("SignIn request received", "email", req.Msg.Email)

	result, err := s.gate.SignIn(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		slog.Warn("SignIn failed", "email", req.Msg.Email, "error", err)
		return nil, err
	}
	return connect.NewResponse(toSignInResponse(result)), nil
}

// SignOut revokes the caller's session.
func (s *AuthService) SignOut(ctx context.Context, req *connect.Request[SignOutRequest]) (*connect.Response[SignOutResponse], error) {
	sessionID := middleware.GetSessionID(ctx)
	slog.Info("SignOut request received", "session_id", sessionID)

	redirect, err := s.gate.SignOut(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.registry.Drop(sessionID)
	return connect.NewResponse(&SignOutResponse{Redirect: redirect}), nil
}

// CheckSession reports whether the bearer token names a live session.
func (s *AuthService) CheckSession(ctx context.Context, req *connect.Request[CheckSessionRequest]) (*connect.Response[CheckSessionResponse], error) {
	status, err := s.gate.CheckSession(ctx, middleware.BearerToken(req.Header()))
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&CheckSessionResponse{
		InSession: status.InSession,
		Email:     status.Email,
		Redirect:  status.Redirect,
	}), nil
}

func toSignInResponse(r *auth.SignInResult) *SignInResponse {
	return &SignInResponse{
		Token:     r.Token,
		Email:     r.Session.Email,
		ExpiresAt: r.Session.ExpiresAt.Unix(),
		Redirect:  r.Redirect,
	}
}
