package auth

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/motoledger/internal/apperr"
	"github.com/mmynk/motoledger/internal/storage/sqlite"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	authn, _ := newTestAuthenticator()
	return NewGate(authn, NewMemorySessionStore(64, time.Hour), NewJWTManager("test-secret"), time.Hour)
}

func TestGate_SignUp(t *testing.T) {
	ctx := context.Background()
	gate := newTestGate(t)

	res, err := gate.SignUp(ctx, "user@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, RedirectHome, res.Redirect)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "user@x.com", res.Session.Email)

	tests := []struct {
		name     string
		email    string
		password string
		wantKind error
		wantMsg  string
	}{
		{name: "empty email", email: " ", password: "pw", wantKind: apperr.ErrValidation, wantMsg: "Email and password cannot be empty."},
		{name: "empty password", email: "a@x.com", password: "", wantKind: apperr.ErrValidation, wantMsg: "Email and password cannot be empty."},
		{name: "duplicate ignoring case", email: "USER@X.com", password: "pw", wantKind: apperr.ErrConflict, wantMsg: "Email already in use."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.SignUp(ctx, tt.email, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestGate_SignInFailuresAreGeneric(t *testing.T) {
	ctx := context.Background()
	gate := newTestGate(t)
	_, err := gate.SignUp(ctx, "user@x.com", "pw123")
	require.NoError(t, err)

	_, wrongPassword := gate.SignIn(ctx, "user@x.com", "nope")
	_, unknownEmail := gate.SignIn(ctx, "ghost@x.com", "pw123")
	_, missing := gate.SignIn(ctx, "", "")

	for _, err := range []error{wrongPassword, unknownEmail, missing} {
		assert.ErrorIs(t, err, apperr.ErrAuth)
	}
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, "Invalid email or password.", wrongPassword.Error())
}

func TestGate_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	gate := newTestGate(t)

	signedUp, err := gate.SignUp(ctx, "user@x.com", "pw123")
	require.NoError(t, err)

	status, err := gate.CheckSession(ctx, signedUp.Token)
	require.NoError(t, err)
	assert.True(t, status.InSession)
	assert.Equal(t, "user@x.com", status.Email)

	redirect, err := gate.SignOut(ctx, signedUp.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, RedirectSignIn, redirect)

	// Sign in with the wrong password after signing out.
	_, err = gate.SignIn(ctx, "user@x.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrAuth)

	status, err = gate.CheckSession(ctx, signedUp.Token)
	require.NoError(t, err)
	assert.False(t, status.InSession)
	assert.Equal(t, RedirectSignIn, status.Redirect)

	_, err = gate.Authorize(ctx, signedUp.Token)
	assert.ErrorIs(t, err, apperr.ErrAuth)

	signedIn, err := gate.SignIn(ctx, "User@X.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, RedirectHome, signedIn.Redirect)
	assert.NotEqual(t, signedUp.Session.ID, signedIn.Session.ID)
}

func TestGate_SessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	gate := newTestGate(t)

	alice, err := gate.SignUp(ctx, "alice@x.com", "pw")
	require.NoError(t, err)
	bob, err := gate.SignUp(ctx, "bob@x.com", "pw")
	require.NoError(t, err)

	_, err = gate.SignOut(ctx, alice.Session.ID)
	require.NoError(t, err)

	aliceStatus, err := gate.CheckSession(ctx, alice.Token)
	require.NoError(t, err)
	bobStatus, err := gate.CheckSession(ctx, bob.Token)
	require.NoError(t, err)

	assert.False(t, aliceStatus.InSession)
	assert.True(t, bobStatus.InSession)
}

func TestGate_ConcurrentSignUpSameEmail(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	authn := NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	gate := NewGate(authn, NewMemorySessionStore(64, time.Hour), NewJWTManager("test-secret"), time.Hour)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = gate.SignUp(ctx, "dup@x.com", "pw123")
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, "Email already in use.", err.Error())
	}
	assert.Equal(t, 1, succeeded)
}

func TestGate_Authorize(t *testing.T) {
	ctx := context.Background()
	gate := newTestGate(t)
	res, err := gate.SignUp(ctx, "user@x.com", "pw123")
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := gate.Authorize(ctx, "")
		assert.ErrorIs(t, err, apperr.ErrAuth)
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := gate.Authorize(ctx, res.Token+"x")
		assert.ErrorIs(t, err, apperr.ErrAuth)
	})

	t.Run("expired session", func(t *testing.T) {
		gate.now = func() time.Time { return res.Session.ExpiresAt.Add(time.Minute) }
		defer func() { gate.now = time.Now }()

		_, err := gate.Authorize(ctx, res.Token)
		assert.ErrorIs(t, err, apperr.ErrAuth)
	})

	t.Run("live session", func(t *testing.T) {
		session, err := gate.Authorize(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.Session.ID, session.ID)
	})
}
