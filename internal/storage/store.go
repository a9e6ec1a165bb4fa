// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/motoledger/internal/models"
)

// ErrNotFound is returned when a motorbike or part does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert collides with a unique key.
var ErrDuplicate = errors.New("record already exists")

// Store defines the persistence contract for the ledger.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the state or service layers.
type Store interface {
	// ListMotorbikes returns every motorbike with its parts nested,
	// ordered by creation time.
	ListMotorbikes(ctx context.Context) ([]models.Motorbike, error)

	// GetMotorbike retrieves a motorbike and its parts.
	// Returns ErrNotFound if it does not exist.
	GetMotorbike(ctx context.Context, id string) (*models.Motorbike, error)

	// CreateMotorbike persists a new motorbike without parts.
	// The ID and CreatedAt fields are populated by the store when empty.
	CreateMotorbike(ctx context.Context, bike *models.Motorbike) error

	// UpdateMotorbike overwrites the motorbike's own fields (not its parts).
	// Returns ErrNotFound if it does not exist.
	UpdateMotorbike(ctx context.Context, bike *models.Motorbike) error

	// DeleteMotorbike removes a motorbike and, by cascade, its parts.
	// Returns ErrNotFound if it does not exist.
	DeleteMotorbike(ctx context.Context, id string) error

	// CreatePart persists a new part under part.MotorbikeID.
	// Returns ErrNotFound if the motorbike does not exist.
	CreatePart(ctx context.Context, part *models.Part) error

	// GetPart retrieves a part by ID. Returns ErrNotFound if it does not exist.
	GetPart(ctx context.Context, id string) (*models.Part, error)

	// ListParts returns the parts of one motorbike ordered by creation time.
	ListParts(ctx context.Context, motorbikeID string) ([]models.Part, error)

	// UpdatePart overwrites a part's fields. The owning motorbike is not changed.
	// Returns ErrNotFound if it does not exist.
	UpdatePart(ctx context.Context, part *models.Part) error

	// DeletePart removes a part. Returns ErrNotFound if it does not exist.
	DeletePart(ctx context.Context, id string) error

	// CreateUser inserts a new user. Emails are unique; inserting a taken
	// email returns ErrDuplicate.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil, nil when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns nil, nil when no user has that ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
