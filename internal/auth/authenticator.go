// Package auth gates access to the ledger: password accounts, per-client
// sessions with expiry and the signed tokens that name them.
package auth

import (
	"context"

	"github.com/mmynk/motoledger/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the gate or service code.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	// Returns ErrEmailExists when the email is already registered.
	Register(ctx context.Context, email, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Returns ErrInvalidCredentials on an unknown email or a mismatch.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
