// Package storagetest holds the behavior every storage.Store backend must
// share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/motoledger/internal/models"
	"github.com/mmynk/motoledger/internal/storage"
)

// Run exercises store against the persistence contract. newStore must
// return an empty store; it is called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("CreateMotorbike generates ID and timestamps", func(t *testing.T) {
		store := newStore(t)

		bike := &models.Motorbike{Name: "Honda CB750", InitialCost: dec("2500.00")}
		if err := store.CreateMotorbike(ctx, bike); err != nil {
			t.Fatalf("CreateMotorbike failed: %v", err)
		}
		if bike.ID == "" {
			t.Error("Expected motorbike ID to be generated")
		}
		if bike.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetMotorbike round-trips every field", func(t *testing.T) {
		store := newStore(t)

		original := &models.Motorbike{
			Name:                   "Yamaha XS650",
			InitialCost:            dec("1800.00"),
			TanyaInitialCost:       dec("1000.00"),
			GeraldInitialCost:      dec("800.00"),
			Buyer:                  "Gerald",
			IsSold:                 true,
			SoldValue:              decimal.NewNullDecimal(dec("2600.50")),
			IgnoreFromCalculations: true,
		}
		mustCreateMotorbike(t, store, original)

		got, err := store.GetMotorbike(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetMotorbike failed: %v", err)
		}
		if got.Name != original.Name || got.Buyer != original.Buyer {
			t.Errorf("name/buyer mismatch: got %q/%q", got.Name, got.Buyer)
		}
		if !got.InitialCost.Equal(original.InitialCost) {
			t.Errorf("InitialCost mismatch: got %s, want %s", got.InitialCost, original.InitialCost)
		}
		if !got.TanyaInitialCost.Equal(original.TanyaInitialCost) || !got.GeraldInitialCost.Equal(original.GeraldInitialCost) {
			t.Errorf("shares mismatch: got %s/%s", got.TanyaInitialCost, got.GeraldInitialCost)
		}
		if !got.IsSold || !got.IgnoreFromCalculations {
			t.Errorf("flags mismatch: sold=%v ignore=%v", got.IsSold, got.IgnoreFromCalculations)
		}
		if !got.SoldValue.Valid || !got.SoldValue.Decimal.Equal(dec("2600.50")) {
			t.Errorf("SoldValue mismatch: got %+v", got.SoldValue)
		}
		if len(got.Parts) != 0 {
			t.Errorf("expected no parts, got %d", len(got.Parts))
		}
	})

	t.Run("sold value is not stored while unsold", func(t *testing.T) {
		store := newStore(t)

		bike := &models.Motorbike{Name: "Kawasaki Z1", InitialCost: dec("3000")}
		mustCreateMotorbike(t, store, bike)

		bike.SoldValue = decimal.NewNullDecimal(dec("4000"))
		if err := store.UpdateMotorbike(ctx, bike); err != nil {
			t.Fatalf("UpdateMotorbike failed: %v", err)
		}

		got, err := store.GetMotorbike(ctx, bike.ID)
		if err != nil {
			t.Fatalf("GetMotorbike failed: %v", err)
		}
		if got.SoldValue.Valid {
			t.Errorf("expected no sold value for unsold bike, got %s", got.SoldValue.Decimal)
		}
	})

	t.Run("missing rows report ErrNotFound", func(t *testing.T) {
		store := newStore(t)

		if _, err := store.GetMotorbike(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetMotorbike: expected ErrNotFound, got %v", err)
		}
		if err := store.UpdateMotorbike(ctx, &models.Motorbike{ID: "nonexistent-id", Name: "x"}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateMotorbike: expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteMotorbike(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeleteMotorbike: expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetPart(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetPart: expected ErrNotFound, got %v", err)
		}
		if err := store.UpdatePart(ctx, &models.Part{ID: "nonexistent-id"}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdatePart: expected ErrNotFound, got %v", err)
		}
		if err := store.DeletePart(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("DeletePart: expected ErrNotFound, got %v", err)
		}
		err := store.CreatePart(ctx, &models.Part{MotorbikeID: "nonexistent-id", Name: "Tires", Buyer: "Tanya", Cost: dec("10")})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("CreatePart: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("parts are nested, updated and deleted", func(t *testing.T) {
		store := newStore(t)

		bike := &models.Motorbike{Name: "Honda CB750", InitialCost: dec("2500")}
		mustCreateMotorbike(t, store, bike)

		tires := &models.Part{MotorbikeID: bike.ID, Name: "Tires", Source: "Local Shop", Buyer: "Tanya", Cost: dec("250.00")}
		carb := &models.Part{MotorbikeID: bike.ID, Name: "Carburetor Kit", Source: "eBay", Buyer: "Gerald", Cost: dec("120.50")}
		mustCreatePart(t, store, tires)
		mustCreatePart(t, store, carb)

		got, err := store.GetMotorbike(ctx, bike.ID)
		if err != nil {
			t.Fatalf("GetMotorbike failed: %v", err)
		}
		if len(got.Parts) != 2 {
			t.Fatalf("expected 2 parts, got %d", len(got.Parts))
		}
		if got.Parts[0].ID != tires.ID {
			t.Errorf("expected parts in creation order, first is %s", got.Parts[0].Name)
		}

		tires.Cost = dec("275.25")
		tires.Buyer = "Gerald"
		if err := store.UpdatePart(ctx, tires); err != nil {
			t.Fatalf("UpdatePart failed: %v", err)
		}
		updated, err := store.GetPart(ctx, tires.ID)
		if err != nil {
			t.Fatalf("GetPart failed: %v", err)
		}
		if !updated.Cost.Equal(dec("275.25")) || updated.Buyer != "Gerald" || updated.MotorbikeID != bike.ID {
			t.Errorf("unexpected part after update: %+v", updated)
		}

		if err := store.DeletePart(ctx, carb.ID); err != nil {
			t.Fatalf("DeletePart failed: %v", err)
		}
		parts, err := store.ListParts(ctx, bike.ID)
		if err != nil {
			t.Fatalf("ListParts failed: %v", err)
		}
		if len(parts) != 1 || parts[0].ID != tires.ID {
			t.Errorf("expected only tires to remain, got %+v", parts)
		}
	})

	t.Run("DeleteMotorbike cascades to parts", func(t *testing.T) {
		store := newStore(t)

		bike := &models.Motorbike{Name: "Honda CB750", InitialCost: dec("2500")}
		mustCreateMotorbike(t, store, bike)
		part := &models.Part{MotorbikeID: bike.ID, Name: "Tires", Buyer: "Tanya", Cost: dec("250")}
		mustCreatePart(t, store, part)

		if err := store.DeleteMotorbike(ctx, bike.ID); err != nil {
			t.Fatalf("DeleteMotorbike failed: %v", err)
		}

		parts, err := store.ListParts(ctx, bike.ID)
		if err != nil {
			t.Fatalf("ListParts failed: %v", err)
		}
		if len(parts) != 0 {
			t.Errorf("expected parts to be deleted with the motorbike, got %d", len(parts))
		}
		if _, err := store.GetPart(ctx, part.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected part to be gone, got %v", err)
		}
	})

	t.Run("ListMotorbikes nests parts in creation order", func(t *testing.T) {
		store := newStore(t)

		first := &models.Motorbike{Name: "Honda CB750", InitialCost: dec("2500")}
		second := &models.Motorbike{Name: "Yamaha XS650", InitialCost: dec("1800")}
		mustCreateMotorbike(t, store, first)
		mustCreateMotorbike(t, store, second)
		mustCreatePart(t, store, &models.Part{MotorbikeID: second.ID, Name: "Brake Pads", Buyer: "Tanya", Cost: dec("45.75")})

		bikes, err := store.ListMotorbikes(ctx)
		if err != nil {
			t.Fatalf("ListMotorbikes failed: %v", err)
		}
		if len(bikes) != 2 {
			t.Fatalf("expected 2 motorbikes, got %d", len(bikes))
		}
		if bikes[0].ID != first.ID || bikes[1].ID != second.ID {
			t.Errorf("expected creation order, got %s then %s", bikes[0].Name, bikes[1].Name)
		}
		if len(bikes[0].Parts) != 0 || len(bikes[1].Parts) != 1 {
			t.Errorf("unexpected part counts: %d, %d", len(bikes[0].Parts), len(bikes[1].Parts))
		}
	})

	t.Run("users are looked up case-insensitively", func(t *testing.T) {
		store := newStore(t)

		user := models.NewUser("User@X.com", "hash")
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := store.GetUserByEmail(ctx, "user@x.COM")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID || got.Email != "user@x.com" {
			t.Fatalf("unexpected user: %+v", got)
		}

		byID, err := store.GetUserByID(ctx, user.ID)
		if err != nil || byID == nil {
			t.Fatalf("GetUserByID failed: %v, %+v", err, byID)
		}

		missing, err := store.GetUserByEmail(ctx, "nobody@x.com")
		if err != nil || missing != nil {
			t.Errorf("expected nil, nil for unknown email, got %+v, %v", missing, err)
		}

		err = store.CreateUser(ctx, models.NewUser("User@X.com", "other"))
		if !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate for a taken email, got %v", err)
		}
	})

	t.Run("SeedExampleData is idempotent", func(t *testing.T) {
		store := newStore(t)

		created, err := storage.SeedExampleData(ctx, store)
		if err != nil {
			t.Fatalf("SeedExampleData failed: %v", err)
		}
		if created != 2 {
			t.Errorf("expected 2 motorbikes seeded, got %d", created)
		}

		again, err := storage.SeedExampleData(ctx, store)
		if err != nil {
			t.Fatalf("second SeedExampleData failed: %v", err)
		}
		if again != 0 {
			t.Errorf("expected second seed to be skipped, created %d", again)
		}

		bikes, err := store.ListMotorbikes(ctx)
		if err != nil {
			t.Fatalf("ListMotorbikes failed: %v", err)
		}
		if len(bikes) != 2 || len(bikes[0].Parts) != 2 || len(bikes[1].Parts) != 2 {
			t.Errorf("unexpected seeded data: %d bikes", len(bikes))
		}
	})
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustCreateMotorbike(t *testing.T, store storage.Store, bike *models.Motorbike) {
	t.Helper()
	if err := store.CreateMotorbike(context.Background(), bike); err != nil {
		t.Fatalf("CreateMotorbike failed: %v", err)
	}
}

func mustCreatePart(t *testing.T, store storage.Store, part *models.Part) {
	t.Helper()
	if err := store.CreatePart(context.Background(), part); err != nil {
		t.Fatalf("CreatePart failed: %v", err)
	}
}
