package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/motoledger/internal/models"
	"github.com/mmynk/motoledger/internal/storage"
)

const partColumns = "id, motorbike_id, name, source, buyer, cost, created_at"

// CreatePart persists a new part under its motorbike.
func (s *Store) CreatePart(ctx context.Context, part *models.Part) error {
	if part.ID == "" {
		part.ID = uuid.New().String()
	}
	if part.CreatedAt == 0 {
		part.CreatedAt = time.Now().UnixNano()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Check the owner first so a missing motorbike is ErrNotFound rather
	// than a driver-specific foreign key error.
	var exists int
	err = s.queryRow(ctx, tx, "SELECT 1 FROM motorbikes WHERE id = ?", part.MotorbikeID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("motorbike %s: %w", part.MotorbikeID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check motorbike existence: %w", err)
	}

	_, err = s.exec(ctx, tx,
		"INSERT INTO parts ("+partColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		part.ID, part.MotorbikeID, part.Name, part.Source, part.Buyer, part.Cost, part.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert part: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPart retrieves a part by ID.
func (s *Store) GetPart(ctx context.Context, id string) (*models.Part, error) {
	row := s.queryRow(ctx, s.db, "SELECT "+partColumns+" FROM parts WHERE id = ?", id)
	part, err := scanPart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("part %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &part, nil
}

// ListParts retrieves the parts of one motorbike.
func (s *Store) ListParts(ctx context.Context, motorbikeID string) ([]models.Part, error) {
	rows, err := s.query(ctx, s.db,
		"SELECT "+partColumns+" FROM parts WHERE motorbike_id = ? ORDER BY created_at, name, id",
		motorbikeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get parts: %w", err)
	}
	defer rows.Close()

	parts := []models.Part{}
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parts: %w", err)
	}

	return parts, nil
}

// UpdatePart updates an existing part. The owning motorbike never changes.
func (s *Store) UpdatePart(ctx context.Context, part *models.Part) error {
	res, err := s.exec(ctx, s.db,
		"UPDATE parts SET name = ?, source = ?, buyer = ?, cost = ? WHERE id = ?",
		part.Name, part.Source, part.Buyer, part.Cost, part.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update part: %w", err)
	}

	return expectAffected(res, "part", part.ID)
}

// DeletePart removes a part by ID.
func (s *Store) DeletePart(ctx context.Context, id string) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM parts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete part: %w", err)
	}

	return expectAffected(res, "part", id)
}

func scanPart(row rowScanner) (models.Part, error) {
	var part models.Part
	err := row.Scan(&part.ID, &part.MotorbikeID, &part.Name, &part.Source, &part.Buyer, &part.Cost, &part.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return part, err
	}
	if err != nil {
		return part, fmt.Errorf("failed to scan part: %w", err)
	}
	return part, nil
}
