package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/motoledger/internal/auth"
	"github.com/mmynk/motoledger/internal/config"
	"github.com/mmynk/motoledger/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:           "test",
		DBDriver:      config.DriverSQLite,
		DBPath:        filepath.Join(t.TempDir(), "nested", "motoledger.db"),
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		MaxSessions:   8,
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestOpenStore_Seeds(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedExampleData = true

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	bikes, err := store.ListMotorbikes(context.Background())
	require.NoError(t, err)
	assert.Len(t, bikes, 2)
}

func TestOpenStore_PostgresWithoutDSN(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBDriver = config.DriverPostgres
	cfg.DatabaseURL = ""

	_, err := OpenStore(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenSessions(t *testing.T) {
	t.Run("memory by default", func(t *testing.T) {
		sessions, err := OpenSessions(context.Background(), testConfig(t))
		require.NoError(t, err)
		defer sessions.Close()
		assert.IsType(t, &auth.MemorySessionStore{}, sessions)
	})

	t.Run("redis when configured", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig(t)
		cfg.RedisURL = "redis://" + mr.Addr()

		sessions, err := OpenSessions(context.Background(), cfg)
		require.NoError(t, err)
		defer sessions.Close()
		assert.IsType(t, &auth.RedisSessionStore{}, sessions)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig(t)
		cfg.RedisURL = "redis://" + mr.Addr()
		mr.Close()

		_, err := OpenSessions(context.Background(), cfg)
		assert.Error(t, err)
	})
}

func TestHandler_Endpoints(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	server := httptest.NewServer(a.Handler())
	defer server.Close()

	t.Run("healthz", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, server.URL+service.LedgerServiceLoadProcedure, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("rpc round trip updates metrics", func(t *testing.T) {
		ctx := context.Background()
		authClient := service.NewAuthServiceClient(server.Client(), server.URL)
		ledgerClient := service.NewLedgerServiceClient(server.Client(), server.URL)

		signedIn, err := authClient.SignUp(ctx, connect.NewRequest(&service.SignUpRequest{
			Email:    "user@x.com",
			Password: "pw123",
		}))
		require.NoError(t, err)

		req := connect.NewRequest(&service.LoadRequest{})
		req.Header().Set("Authorization", "Bearer "+signedIn.Msg.Token)
		_, err = ledgerClient.Load(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 1, a.Registry.Len())

		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "motoledger_rpc_duration_seconds")
		assert.Contains(t, string(body), `procedure="/motoledger.v1.LedgerService/Load"`)
	})
}
