// Package app wires configuration, storage, sessions and the RPC services
// into one HTTP handler.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/motoledger/internal/auth"
	"github.com/mmynk/motoledger/internal/config"
	"github.com/mmynk/motoledger/internal/metrics"
	"github.com/mmynk/motoledger/internal/middleware"
	"github.com/mmynk/motoledger/internal/service"
	"github.com/mmynk/motoledger/internal/state"
	"github.com/mmynk/motoledger/internal/storage"
	"github.com/mmynk/motoledger/internal/storage/postgres"
	"github.com/mmynk/motoledger/internal/storage/sqlite"
)

// App holds the long-lived dependencies of the server.
type App struct {
	Store    storage.Store
	Sessions auth.SessionStore
	Gate     *auth.Gate
	Registry *state.Registry
}

// OpenStore opens the configured database and seeds the example fleet when
// SEED_EXAMPLE_DATA is set.
func OpenStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	var (
		store storage.Store
		err   error
	)
	switch cfg.DBDriver {
	case config.DriverPostgres:
		store, err = postgres.New(ctx, cfg.DatabaseURL)
	default:
		store, err = sqlite.New(cfg.DBPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.DBDriver, err)
	}
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	if cfg.SeedExampleData {
		if _, err := storage.SeedExampleData(ctx, store); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to seed example data: %w", err)
		}
	}
	return store, nil
}

// OpenSessions returns the Redis session store when REDIS_URL is set and an
// in-memory one otherwise.
func OpenSessions(ctx context.Context, cfg *config.Config) (auth.SessionStore, error) {
	if cfg.RedisURL == "" {
		slog.Info("Using in-memory sessions", "max_sessions", cfg.MaxSessions)
		return auth.NewMemorySessionStore(cfg.MaxSessions, cfg.SessionTTL), nil
	}
	sessions, err := auth.OpenRedisSessionStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	slog.Info("Using Redis sessions")
	return sessions, nil
}

// New opens every dependency named by cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	sessions, err := OpenSessions(ctx, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return Assemble(cfg, store, sessions), nil
}

// Assemble builds the gate and registry over already opened stores.
func Assemble(cfg *config.Config, store storage.Store, sessions auth.SessionStore) *App {
	authn := auth.NewPasswordAuthenticator(store)
	tokens := auth.NewJWTManager(cfg.SessionSecret)
	return &App{
		Store:    store,
		Sessions: sessions,
		Gate:     auth.NewGate(authn, sessions, tokens, cfg.SessionTTL),
		Registry: state.NewRegistry(store, cfg.MaxSessions, cfg.SessionTTL),
	}
}

// Handler mounts both RPC services, /metrics and /healthz behind the CORS
// and request logging middleware.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())

	authPath, authHandler := service.NewAuthServiceHandler(service.NewAuthService(a.Gate, a.Registry), interceptors)
	mux.Handle(authPath, authHandler)

	ledgerPath, ledgerHandler := service.NewLedgerServiceHandler(service.NewLedgerService(a.Registry, a.Gate), interceptors)
	mux.Handle(ledgerPath, ledgerHandler)

	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", a.healthz)

	return loggingMiddleware(corsMiddleware(mux))
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if p, ok := a.Store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			slog.Error("Health check failed", "error", err)
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Close releases the session and database connections.
func (a *App) Close() error {
	return errors.Join(a.Sessions.Close(), a.Store.Close())
}
