package middleware

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/motoledger/internal/apperr"
)

// ConnectError converts an application error to a connect error whose
// message is the user-visible one. Connect errors pass through unchanged.
func ConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	return connect.NewError(codeOf(err), errors.New(err.Error()))
}

func codeOf(err error) connect.Code {
	switch apperr.KindOf(err) {
	case apperr.ErrValidation:
		return connect.CodeInvalidArgument
	case apperr.ErrNotFound:
		return connect.CodeNotFound
	case apperr.ErrInvalidState:
		return connect.CodeFailedPrecondition
	case apperr.ErrConflict:
		return connect.CodeAlreadyExists
	case apperr.ErrAuth:
		return connect.CodeUnauthenticated
	case apperr.ErrStorage:
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}

// ErrorInterceptor maps errors returned by handlers to connect codes.
func ErrorInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			resp, err := next(ctx, req)
			if err != nil {
				return nil, ConnectError(err)
			}
			return resp, nil
		}
	}
}
