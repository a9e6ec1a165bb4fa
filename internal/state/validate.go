package state

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/motoledger/internal/apperr"
	"github.com/mmynk/motoledger/internal/models"
)

// amountField names a money input in user-facing messages.
type amountField struct {
	title  string // starts a sentence
	inline string // used mid-sentence
}

var (
	initialCostField       = amountField{"Initial cost", "initial cost"}
	tanyaInitialCostField  = amountField{"Tanya initial cost", "Tanya initial cost"}
	geraldInitialCostField = amountField{"Gerald initial cost", "Gerald initial cost"}
	soldValueField         = amountField{"Sold value", "sold value"}
	partCostField          = amountField{"Part cost", "part cost"}
)

// parseAmount parses a required, non-negative money amount.
func parseAmount(field amountField, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, apperr.Validation("%s cannot be empty.", field.title)
	}
	return parseNonNegative(field, raw)
}

// parseOptionalAmount treats a blank input as zero.
func parseOptionalAmount(field amountField, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	return parseNonNegative(field, raw)
}

// Bounds on accepted amounts. The exponent is checked before any
// arithmetic so a short input like "1e30000000" is never expanded.
const (
	maxAmountLen      = 32
	maxAmountExponent = 12
)

var maxAmount = decimal.New(1, maxAmountExponent)

func parseNonNegative(field amountField, raw string) (decimal.Decimal, error) {
	invalid := apperr.Validation("Invalid %s format.", field.inline)
	if len(raw) > maxAmountLen {
		return decimal.Zero, invalid
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, invalid
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, invalid
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, invalid
	}
	if d.IsNegative() {
		return decimal.Zero, apperr.Validation("%s cannot be negative.", field.title)
	}
	// Money is kept to the cent.
	return d.Round(2), nil
}

// motorbikeFields are the validated editable fields shared by the add and
// edit motorbike commands.
type motorbikeFields struct {
	name              string
	initialCost       decimal.Decimal
	tanyaInitialCost  decimal.Decimal
	geraldInitialCost decimal.Decimal
	buyer             string
}

func validateMotorbike(name, initialCost, tanyaCost, geraldCost, buyer string) (motorbikeFields, error) {
	var f motorbikeFields
	var err error

	f.name = strings.TrimSpace(name)
	if f.name == "" {
		return f, apperr.Validation("Motorbike name cannot be empty.")
	}
	if f.initialCost, err = parseAmount(initialCostField, initialCost); err != nil {
		return f, err
	}
	if f.tanyaInitialCost, err = parseOptionalAmount(tanyaInitialCostField, tanyaCost); err != nil {
		return f, err
	}
	if f.geraldInitialCost, err = parseOptionalAmount(geraldInitialCostField, geraldCost); err != nil {
		return f, err
	}
	f.buyer = strings.TrimSpace(buyer)
	return f, nil
}

func (f motorbikeFields) applyTo(bike *models.Motorbike) {
	bike.Name = f.name
	bike.InitialCost = f.initialCost
	bike.TanyaInitialCost = f.tanyaInitialCost
	bike.GeraldInitialCost = f.geraldInitialCost
	bike.Buyer = f.buyer
}

// partFields are the validated editable fields of a part.
type partFields struct {
	name   string
	source string
	buyer  string
	cost   decimal.Decimal
}

func validatePart(name, source, buyer, cost string) (partFields, error) {
	var f partFields
	var err error

	f.name = strings.TrimSpace(name)
	if f.name == "" {
		return f, apperr.Validation("Part name cannot be empty.")
	}
	if f.cost, err = parseAmount(partCostField, cost); err != nil {
		return f, err
	}
	f.source = strings.TrimSpace(source)
	f.buyer = strings.TrimSpace(buyer)
	if f.buyer == "" {
		f.buyer = models.DefaultBuyer()
	}
	return f, nil
}

func (f partFields) applyTo(part *models.Part) {
	part.Name = f.name
	part.Source = f.source
	part.Buyer = f.buyer
	part.Cost = f.cost
}
