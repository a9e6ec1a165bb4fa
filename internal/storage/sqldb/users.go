package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/motoledger/internal/models"
	"github.com/mmynk/motoledger/internal/storage"
)

// CreateUser inserts a new user into the database.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.exec(ctx, s.db, query,
		user.ID,
		models.NormalizeEmail(user.Email),
		user.PasswordHash,
		user.CreatedAt,
	)

	if err != nil {
		// The unique index rejected it if the email is now taken. Checking
		// again avoids matching driver-specific constraint codes.
		if existing, lookupErr := s.GetUserByEmail(ctx, user.Email); lookupErr == nil && existing != nil {
			return fmt.Errorf("email %s: %w", existing.Email, storage.ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`

	return s.getUser(ctx, query, models.NormalizeEmail(email))
}

// GetUserByID retrieves a user by their ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = ?
	`

	return s.getUser(ctx, query, id)
}

func (s *Store) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := &models.User{}
	err := s.queryRow(ctx, s.db, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
