package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/motoledger/internal/auth"
	"github.com/mmynk/motoledger/internal/middleware"
	"github.com/mmynk/motoledger/internal/state"
	"github.com/mmynk/motoledger/internal/storage/sqlite"
)

type testClients struct {
	auth   *AuthServiceClient
	ledger *LedgerServiceClient
}

// setupTestServer serves both services over httptest backed by a temporary
// SQLite database and in-memory sessions.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	sessions := auth.NewMemorySessionStore(16, time.Hour)
	authn := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	gate := auth.NewGate(authn, sessions, auth.NewJWTManager("test-secret"), time.Hour)
	registry := state.NewRegistry(store, 16, time.Hour)

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())
	mux := http.NewServeMux()
	mux.Handle(NewAuthServiceHandler(NewAuthService(gate, registry), interceptors))
	mux.Handle(NewLedgerServiceHandler(NewLedgerService(registry, gate), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return testClients{
		auth:   NewAuthServiceClient(server.Client(), server.URL),
		ledger: NewLedgerServiceClient(server.Client(), server.URL),
	}
}

func authed[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func signUp(t *testing.T, c testClients, email string) string {
	t.Helper()
	resp, err := c.auth.SignUp(context.Background(), connect.NewRequest(&SignUpRequest{
		Email:    email,
		Password: "pw123",
	}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Token)
	return resp.Msg.Token
}

// requireCode asserts err is a connect error with the given code and message.
func requireCode(t *testing.T, err error, code connect.Code, msg string) {
	t.Helper()
	require.Error(t, err)
	var connectErr *connect.Error
	require.True(t, errors.As(err, &connectErr), "expected connect error, got %T", err)
	assert.Equal(t, code, connectErr.Code())
	if msg != "" {
		assert.Equal(t, msg, connectErr.Message())
	}
}

func TestAuthService_SignUpAndSignIn(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	resp, err := c.auth.SignUp(ctx, connect.NewRequest(&SignUpRequest{Email: "User@X.com", Password: "pw123"}))
	require.NoError(t, err)
	assert.Equal(t, "user@x.com", resp.Msg.Email)
	assert.Equal(t, "/", resp.Msg.Redirect)
	assert.Greater(t, resp.Msg.ExpiresAt, time.Now().Unix())

	_, err = c.auth.SignUp(ctx, connect.NewRequest(&SignUpRequest{Email: "user@x.com", Password: "other"}))
	requireCode(t, err, connect.CodeAlreadyExists, "Email already in use.")

	_, err = c.auth.SignUp(ctx, connect.NewRequest(&SignUpRequest{Email: "", Password: "pw"}))
	requireCode(t, err, connect.CodeInvalidArgument, "Email and password cannot be empty.")

	_, err = c.auth.SignIn(ctx, connect.NewRequest(&SignInRequest{Email: "user@x.com", Password: "wrong"}))
	requireCode(t, err, connect.CodeUnauthenticated, "Invalid email or password.")

	_, err = c.auth.SignIn(ctx, connect.NewRequest(&SignInRequest{Email: "nobody@x.com", Password: "pw123"}))
	requireCode(t, err, connect.CodeUnauthenticated, "Invalid email or password.")

	in, err := c.auth.SignIn(ctx, connect.NewRequest(&SignInRequest{Email: "user@x.com", Password: "pw123"}))
	require.NoError(t, err)
	assert.NotEqual(t, resp.Msg.Token, in.Msg.Token, "each sign-in opens its own session")
}

func TestAuthService_SignOut(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := signUp(t, c, "user@x.com")

	check, err := c.auth.CheckSession(ctx, authed(&CheckSessionRequest{}, token))
	require.NoError(t, err)
	assert.True(t, check.Msg.InSession)
	assert.Equal(t, "user@x.com", check.Msg.Email)

	out, err := c.auth.SignOut(ctx, authed(&SignOutRequest{}, token))
	require.NoError(t, err)
	assert.Equal(t, "/sign-in", out.Msg.Redirect)

	check, err = c.auth.CheckSession(ctx, authed(&CheckSessionRequest{}, token))
	require.NoError(t, err)
	assert.False(t, check.Msg.InSession)
	assert.Equal(t, "/sign-in", check.Msg.Redirect)

	_, err = c.ledger.Load(ctx, authed(&LoadRequest{}, token))
	requireCode(t, err, connect.CodeUnauthenticated, "Please sign in.")

	_, err = c.auth.SignOut(ctx, connect.NewRequest(&SignOutRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated, "Please sign in.")
}

func TestLedgerService_RequiresSession(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	_, err := c.ledger.Load(ctx, connect.NewRequest(&LoadRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated, "Please sign in.")

	_, err = c.ledger.GetDashboard(ctx, authed(&GetDashboardRequest{}, "not-a-token"))
	requireCode(t, err, connect.CodeUnauthenticated, "Please sign in.")
}

func TestLedgerService_MotorbikeLifecycle(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := signUp(t, c, "user@x.com")

	loaded, err := c.ledger.Load(ctx, authed(&LoadRequest{}, token))
	require.NoError(t, err)
	assert.Empty(t, loaded.Msg.State.Motorbikes)
	assert.False(t, loaded.Msg.State.Dashboard.HasMotorbikes)
	assert.Equal(t, []string{"Tanya", "Gerald"}, loaded.Msg.State.Buyers)

	added, err := c.ledger.AddMotorbike(ctx, authed(&AddMotorbikeRequest{Form: &MotorbikeFormView{
		Name:              "Honda CB750",
		InitialCost:       "2500",
		TanyaInitialCost:  "1250",
		GeraldInitialCost: "1250",
		Buyer:             "Tanya",
	}}, token))
	require.NoError(t, err)
	assert.Equal(t, "Motorbike 'Honda CB750' added.", added.Msg.Message)
	require.Len(t, added.Msg.State.Motorbikes, 1)
	bike := added.Msg.State.Motorbikes[0]
	assert.Equal(t, "2500.00", bike.InitialCost)
	assert.Equal(t, bike.ID, added.Msg.State.PartForm.MotorbikeID, "part form targets the only unsold bike")

	part, err := c.ledger.AddPart(ctx, authed(&AddPartRequest{Form: &PartFormView{
		MotorbikeID: bike.ID,
		Name:        "Carburetor Kit",
		Source:      "eBay",
		Buyer:       "Tanya",
		Cost:        "120.50",
	}}, token))
	require.NoError(t, err)
	assert.Equal(t, "Part 'Carburetor Kit' added to Honda CB750.", part.Msg.Message)

	detail, err := c.ledger.GetMotorbike(ctx, authed(&GetMotorbikeRequest{MotorbikeID: bike.ID}, token))
	require.NoError(t, err)
	assert.Equal(t, "2620.50", detail.Msg.Motorbike.TotalCost)
	assert.Equal(t, "120.50", detail.Msg.Motorbike.TanyaPartsCost)
	assert.Equal(t, "0.00", detail.Msg.Motorbike.GeraldPartsCost)
	require.Len(t, detail.Msg.Motorbike.Parts, 1)

	dash, err := c.ledger.GetDashboard(ctx, authed(&GetDashboardRequest{}, token))
	require.NoError(t, err)
	assert.Equal(t, "2620.50", dash.Msg.Dashboard.TotalCost)
	assert.Equal(t, "5241.00", dash.Msg.Dashboard.ProjectedSale)
	assert.Equal(t, "0.00", dash.Msg.Dashboard.ActualProfit)

	// Mark it sold through the edit dialog.
	opened, err := c.ledger.OpenEditMotorbike(ctx, authed(&OpenEditMotorbikeRequest{MotorbikeID: bike.ID}, token))
	require.NoError(t, err)
	assert.True(t, opened.Msg.State.EditMotorbikeOpen)
	assert.Equal(t, "2500.00", opened.Msg.State.EditMotorbike.InitialCost)

	for _, u := range []UpdateFormRequest{
		{Form: FormEditMotorbike, Field: "is_sold", Value: "true"},
		{Form: FormEditMotorbike, Field: "sold_value", Value: "4000"},
	} {
		_, err := c.ledger.UpdateForm(ctx, authed(&u, token))
		require.NoError(t, err)
	}

	saved, err := c.ledger.SaveEditedMotorbike(ctx, authed(&SaveEditedMotorbikeRequest{}, token))
	require.NoError(t, err)
	assert.Equal(t, "Motorbike details updated.", saved.Msg.Message)
	assert.False(t, saved.Msg.State.EditMotorbikeOpen)
	assert.Empty(t, saved.Msg.State.Unsold)
	assert.Empty(t, saved.Msg.State.PartForm.MotorbikeID)

	sold := saved.Msg.State.Motorbikes[0]
	require.NotNil(t, sold.Profit)
	assert.Equal(t, "4000.00", sold.SoldValue)
	assert.Equal(t, "1379.50", sold.Profit.Profit)
	assert.Equal(t, "689.75", sold.Profit.TanyaShare)
	assert.Equal(t, "689.75", sold.Profit.GeraldShare)

	_, err = c.ledger.AddPart(ctx, authed(&AddPartRequest{Form: &PartFormView{
		MotorbikeID: bike.ID,
		Name:        "Mirror",
		Cost:        "10",
	}}, token))
	requireCode(t, err, connect.CodeFailedPrecondition, "Cannot add parts to 'Honda CB750' as it is already sold.")

	_, err = c.ledger.DeletePart(ctx, authed(&DeletePartRequest{MotorbikeID: bike.ID, PartID: sold.Parts[0].ID}, token))
	requireCode(t, err, connect.CodeFailedPrecondition, "Cannot delete parts from 'Honda CB750' as it is already sold.")

	analytics, err := c.ledger.GetAnalytics(ctx, authed(&GetAnalyticsRequest{Filter: "sold"}, token))
	require.NoError(t, err)
	assert.Equal(t, "sold", analytics.Msg.Analytics.Filter)
	assert.Equal(t, "1379.50", analytics.Msg.Analytics.ActualProfit)
	assert.Equal(t, "1370.50", analytics.Msg.Analytics.TotalTanyaInvestment)
	assert.Equal(t, "1250.00", analytics.Msg.Analytics.TotalGeraldInvestment)
	require.Len(t, analytics.Msg.Analytics.Bikes, 1)

	deleted, err := c.ledger.DeleteMotorbike(ctx, authed(&DeleteMotorbikeRequest{MotorbikeID: bike.ID}, token))
	require.NoError(t, err)
	assert.Equal(t, "Motorbike deleted.", deleted.Msg.Message)
	assert.Empty(t, deleted.Msg.State.Motorbikes)
}

func TestLedgerService_FormDrivenCommands(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := signUp(t, c, "user@x.com")

	for _, u := range []UpdateFormRequest{
		{Form: FormMotorbike, Field: "name", Value: "Yamaha XS650"},
		{Form: FormMotorbike, Field: "initial_cost", Value: "1800"},
	} {
		_, err := c.ledger.UpdateForm(ctx, authed(&u, token))
		require.NoError(t, err)
	}

	added, err := c.ledger.AddMotorbike(ctx, authed(&AddMotorbikeRequest{}, token))
	require.NoError(t, err)
	assert.Equal(t, "Motorbike 'Yamaha XS650' added.", added.Msg.Message)
	assert.Equal(t, MotorbikeFormView{}, added.Msg.State.MotorbikeForm, "form resets after a successful add")
	bike := added.Msg.State.Motorbikes[0]
	assert.Equal(t, "0.00", bike.TanyaInitialCost)

	for _, u := range []UpdateFormRequest{
		{Form: FormPart, Field: "name", Value: "Brake Pads"},
		{Form: FormPart, Field: "cost", Value: "45.75"},
	} {
		_, err := c.ledger.UpdateForm(ctx, authed(&u, token))
		require.NoError(t, err)
	}
	part, err := c.ledger.AddPart(ctx, authed(&AddPartRequest{}, token))
	require.NoError(t, err)
	assert.Equal(t, "Part 'Brake Pads' added to Yamaha XS650.", part.Msg.Message)
	p := part.Msg.State.Motorbikes[0].Parts[0]
	assert.Equal(t, "Tanya", p.Buyer, "buyer defaults to the first investor")

	opened, err := c.ledger.OpenEditPart(ctx, authed(&OpenEditPartRequest{MotorbikeID: bike.ID, PartID: p.ID}, token))
	require.NoError(t, err)
	assert.True(t, opened.Msg.State.EditPartOpen)

	_, err = c.ledger.UpdateForm(ctx, authed(&UpdateFormRequest{Form: FormEditPart, Field: "buyer", Value: "Gerald"}, token))
	require.NoError(t, err)
	saved, err := c.ledger.SaveEditedPart(ctx, authed(&SaveEditedPartRequest{}, token))
	require.NoError(t, err)
	assert.Equal(t, "Part details updated.", saved.Msg.Message)
	assert.Equal(t, "45.75", saved.Msg.State.Motorbikes[0].GeraldPartsCost)

	_, err = c.ledger.OpenEditMotorbike(ctx, authed(&OpenEditMotorbikeRequest{MotorbikeID: bike.ID}, token))
	require.NoError(t, err)
	closed, err := c.ledger.CloseEditMotorbikeDialog(ctx, authed(&CloseDialogRequest{}, token))
	require.NoError(t, err)
	assert.False(t, closed.Msg.State.EditMotorbikeOpen)

	removed, err := c.ledger.DeletePart(ctx, authed(&DeletePartRequest{MotorbikeID: bike.ID, PartID: p.ID}, token))
	require.NoError(t, err)
	assert.Equal(t, "Part deleted.", removed.Msg.Message)
	assert.Empty(t, removed.Msg.State.Motorbikes[0].Parts)
}

func TestLedgerService_Errors(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := signUp(t, c, "user@x.com")

	tests := []struct {
		name string
		call func() error
		code connect.Code
		msg  string
	}{
		{
			name: "empty motorbike name",
			call: func() error {
				_, err := c.ledger.AddMotorbike(ctx, authed(&AddMotorbikeRequest{Form: &MotorbikeFormView{InitialCost: "100"}}, token))
				return err
			},
			code: connect.CodeInvalidArgument,
			msg:  "Motorbike name cannot be empty.",
		},
		{
			name: "part without a motorbike",
			call: func() error {
				_, err := c.ledger.AddPart(ctx, authed(&AddPartRequest{Form: &PartFormView{Name: "Seat", Cost: "10"}}, token))
				return err
			},
			code: connect.CodeInvalidArgument,
			msg:  "Please select or specify a motorbike.",
		},
		{
			name: "unknown motorbike",
			call: func() error {
				_, err := c.ledger.GetMotorbike(ctx, authed(&GetMotorbikeRequest{MotorbikeID: "missing"}, token))
				return err
			},
			code: connect.CodeNotFound,
			msg:  "Motorbike not found.",
		},
		{
			name: "delete unknown motorbike",
			call: func() error {
				_, err := c.ledger.DeleteMotorbike(ctx, authed(&DeleteMotorbikeRequest{MotorbikeID: "missing"}, token))
				return err
			},
			code: connect.CodeNotFound,
			msg:  "Motorbike not found in database for deletion.",
		},
		{
			name: "save without dialog",
			call: func() error {
				_, err := c.ledger.SaveEditedPart(ctx, authed(&SaveEditedPartRequest{}, token))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown form",
			call: func() error {
				_, err := c.ledger.UpdateForm(ctx, authed(&UpdateFormRequest{Form: "bogus", Field: "name"}, token))
				return err
			},
			code: connect.CodeInvalidArgument,
			msg:  `Unknown form "bogus".`,
		},
		{
			name: "unknown filter",
			call: func() error {
				_, err := c.ledger.GetAnalytics(ctx, authed(&GetAnalyticsRequest{Filter: "broken"}, token))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.call(), tt.code, tt.msg)
		})
	}
}

func TestLedgerService_SessionsHaveSeparateForms(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	first := signUp(t, c, "a@x.com")
	second := signUp(t, c, "b@x.com")

	_, err := c.ledger.UpdateForm(ctx, authed(&UpdateFormRequest{Form: FormMotorbike, Field: "name", Value: "Ducati"}, first))
	require.NoError(t, err)

	other, err := c.ledger.Load(ctx, authed(&LoadRequest{}, second))
	require.NoError(t, err)
	assert.Empty(t, other.Msg.State.MotorbikeForm.Name)

	// The fleet itself is shared.
	_, err = c.ledger.AddMotorbike(ctx, authed(&AddMotorbikeRequest{}, first))
	require.Error(t, err, "initial cost is still empty")

	_, err = c.ledger.AddMotorbike(ctx, authed(&AddMotorbikeRequest{Form: &MotorbikeFormView{Name: "Ducati", InitialCost: "900"}}, first))
	require.NoError(t, err)
	other, err = c.ledger.Load(ctx, authed(&LoadRequest{}, second))
	require.NoError(t, err)
	assert.Len(t, other.Msg.State.Motorbikes, 1)
}
