package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/motoledger/internal/models"
	"github.com/mmynk/motoledger/internal/storage"
)

const motorbikeColumns = `id, name, initial_cost, tanya_initial_cost, gerald_initial_cost,
	buyer, is_sold, sold_value, ignore_from_calculations, created_at`

// ListMotorbikes returns all motorbikes with their parts.
func (s *Store) ListMotorbikes(ctx context.Context) ([]models.Motorbike, error) {
	rows, err := s.query(ctx, s.db,
		"SELECT "+motorbikeColumns+" FROM motorbikes ORDER BY created_at, name, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list motorbikes: %w", err)
	}
	defer rows.Close()

	bikes := []models.Motorbike{}
	index := make(map[string]int)
	for rows.Next() {
		bike, err := scanMotorbike(rows)
		if err != nil {
			return nil, err
		}
		index[bike.ID] = len(bikes)
		bikes = append(bikes, bike)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate motorbikes: %w", err)
	}

	// One query for all parts, grouped onto their motorbike.
	partRows, err := s.query(ctx, s.db,
		"SELECT "+partColumns+" FROM parts ORDER BY created_at, name, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		part, err := scanPart(partRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[part.MotorbikeID]; ok {
			bikes[i].Parts = append(bikes[i].Parts, part)
		}
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parts: %w", err)
	}

	return bikes, nil
}

// GetMotorbike retrieves a motorbike by ID, including its parts.
func (s *Store) GetMotorbike(ctx context.Context, id string) (*models.Motorbike, error) {
	row := s.queryRow(ctx, s.db,
		"SELECT "+motorbikeColumns+" FROM motorbikes WHERE id = ?",
		id,
	)
	bike, err := scanMotorbike(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("motorbike %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	parts, err := s.ListParts(ctx, id)
	if err != nil {
		return nil, err
	}
	bike.Parts = parts

	return &bike, nil
}

// CreateMotorbike persists a new motorbike to the database.
func (s *Store) CreateMotorbike(ctx context.Context, bike *models.Motorbike) error {
	if bike.ID == "" {
		bike.ID = uuid.New().String()
	}
	if bike.CreatedAt == 0 {
		bike.CreatedAt = time.Now().UnixNano()
	}
	bike.Parts = nil

	_, err := s.exec(ctx, s.db,
		`INSERT INTO motorbikes (`+motorbikeColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bike.ID, bike.Name, bike.InitialCost, bike.TanyaInitialCost, bike.GeraldInitialCost,
		nullString(bike.Buyer), bike.IsSold, soldValue(bike), bike.IgnoreFromCalculations, bike.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert motorbike: %w", err)
	}

	return nil
}

// UpdateMotorbike updates an existing motorbike's own columns.
func (s *Store) UpdateMotorbike(ctx context.Context, bike *models.Motorbike) error {
	res, err := s.exec(ctx, s.db,
		`UPDATE motorbikes
		 SET name = ?, initial_cost = ?, tanya_initial_cost = ?, gerald_initial_cost = ?,
		     buyer = ?, is_sold = ?, sold_value = ?, ignore_from_calculations = ?
		 WHERE id = ?`,
		bike.Name, bike.InitialCost, bike.TanyaInitialCost, bike.GeraldInitialCost,
		nullString(bike.Buyer), bike.IsSold, soldValue(bike), bike.IgnoreFromCalculations,
		bike.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update motorbike: %w", err)
	}

	return expectAffected(res, "motorbike", bike.ID)
}

// DeleteMotorbike removes a motorbike by ID. Parts go with it (ON DELETE CASCADE).
func (s *Store) DeleteMotorbike(ctx context.Context, id string) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM motorbikes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete motorbike: %w", err)
	}

	return expectAffected(res, "motorbike", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMotorbike(row rowScanner) (models.Motorbike, error) {
	var (
		bike  models.Motorbike
		buyer sql.NullString
	)
	err := row.Scan(
		&bike.ID, &bike.Name, &bike.InitialCost, &bike.TanyaInitialCost, &bike.GeraldInitialCost,
		&buyer, &bike.IsSold, &bike.SoldValue, &bike.IgnoreFromCalculations, &bike.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return bike, err
	}
	if err != nil {
		return bike, fmt.Errorf("failed to scan motorbike: %w", err)
	}

	if buyer.Valid {
		bike.Buyer = buyer.String
	}
	return bike, nil
}

// soldValue persists NULL unless the bike is sold with a recorded price.
func soldValue(bike *models.Motorbike) decimal.NullDecimal {
	if v, ok := bike.EffectiveSoldValue(); ok {
		return decimal.NewNullDecimal(v)
	}
	return decimal.NullDecimal{}
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
