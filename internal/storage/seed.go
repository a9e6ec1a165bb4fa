package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/motoledger/internal/models"
	"github.com/shopspring/decimal"
)

// exampleBikes is the demo fleet loaded by SeedExampleData.
var exampleBikes = []struct {
	name        string
	initialCost string
	parts       []models.Part
}{
	{
		name:        "Honda CB750",
		initialCost: "2500.00",
		parts: []models.Part{
			{Name: "Carburetor Kit", Source: "eBay", Buyer: models.BuyerTanya, Cost: decimal.RequireFromString("120.50")},
			{Name: "New Tires", Source: "Local Shop", Buyer: models.BuyerGerald, Cost: decimal.RequireFromString("250.00")},
		},
	},
	{
		name:        "Yamaha XS650",
		initialCost: "1800.00",
		parts: []models.Part{
			{Name: "Brake Pads", Source: "Online Store", Buyer: models.BuyerTanya, Cost: decimal.RequireFromString("45.75")},
			{Name: "Chain and Sprocket Set", Source: "RevZilla", Buyer: models.BuyerTanya, Cost: decimal.RequireFromString("150.00")},
		},
	},
}

// SeedExampleData loads a small demo fleet. It does nothing when the first
// example bike already exists, so it is safe to run on every start.
// Returns the number of motorbikes created.
func SeedExampleData(ctx context.Context, store Store) (int, error) {
	existing, err := store.ListMotorbikes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list motorbikes: %w", err)
	}
	for _, b := range existing {
		if b.Name == exampleBikes[0].name {
			slog.Info("Example data already present, skipping seed")
			return 0, nil
		}
	}

	created := 0
	for _, ex := range exampleBikes {
		bike := &models.Motorbike{
			Name:        ex.name,
			InitialCost: decimal.RequireFromString(ex.initialCost),
		}
		if err := store.CreateMotorbike(ctx, bike); err != nil {
			return created, fmt.Errorf("failed to seed motorbike %q: %w", ex.name, err)
		}
		created++

		for _, p := range ex.parts {
			part := p
			part.MotorbikeID = bike.ID
			if err := store.CreatePart(ctx, &part); err != nil {
				return created, fmt.Errorf("failed to seed part %q: %w", p.Name, err)
			}
		}
	}

	slog.Info("Example data seeded", "motorbikes", created)
	return created, nil
}
