package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// The two co-investors. Parts and initial shares are attributed to them.
const (
	BuyerTanya  = "Tanya"
	BuyerGerald = "Gerald"
)

// Buyers lists the co-investors in display order.
// The first entry is the default buyer for new parts.
var Buyers = []string{BuyerTanya, BuyerGerald}

// DefaultBuyer returns the buyer preselected on part forms.
func DefaultBuyer() string {
	return Buyers[0]
}

// Motorbike represents a tracked motorbike purchase.
type Motorbike struct {
	// ID is the unique identifier for the motorbike (UUID format).
	ID string

	// Name is the display name (e.g., "Honda CB750").
	Name string

	// InitialCost is the purchase price.
	InitialCost decimal.Decimal

	// TanyaInitialCost and GeraldInitialCost are each investor's contribution
	// to the purchase. They are tracked independently and need not add up
	// to InitialCost.
	TanyaInitialCost  decimal.Decimal
	GeraldInitialCost decimal.Decimal

	// Buyer is who bought the bike itself. Optional.
	Buyer string

	// IsSold marks the bike as resold. Parts of a sold bike are read-only.
	IsSold bool

	// SoldValue is the resale price. Only meaningful while IsSold is true;
	// use EffectiveSoldValue to read it.
	SoldValue decimal.NullDecimal

	// IgnoreFromCalculations excludes the bike from every aggregate while
	// keeping it in listings.
	IgnoreFromCalculations bool

	// Parts are owned by the bike and deleted with it.
	Parts []Part

	// CreatedAt is the Unix timestamp in nanoseconds; it orders listings.
	CreatedAt int64
}

// EffectiveSoldValue returns the resale price when the bike is sold and a
// price was recorded.
func (m Motorbike) EffectiveSoldValue() (decimal.Decimal, bool) {
	if !m.IsSold || !m.SoldValue.Valid {
		return decimal.Zero, false
	}
	return m.SoldValue.Decimal, true
}

// FindPart returns the part with the given ID.
func (m Motorbike) FindPart(partID string) (Part, bool) {
	for _, p := range m.Parts {
		if p.ID == partID {
			return p, true
		}
	}
	return Part{}, false
}

// Clone returns a copy that shares no slice storage with m.
func (m Motorbike) Clone() Motorbike {
	if m.Parts != nil {
		parts := make([]Part, len(m.Parts))
		copy(parts, m.Parts)
		m.Parts = parts
	}
	return m
}

// Part represents a single cost line item on a motorbike.
type Part struct {
	// ID is the unique identifier for the part (UUID format).
	ID string

	// MotorbikeID is the owning motorbike.
	MotorbikeID string

	// Name describes the part (e.g., "Carburetor Kit").
	Name string

	// Source is where the part was bought (e.g., "eBay"). Optional.
	Source string

	// Buyer is who paid for the part. Matched case-insensitively against Buyers.
	Buyer string

	// Cost is the price paid.
	Cost decimal.Decimal

	// CreatedAt is the Unix timestamp in nanoseconds.
	CreatedAt int64
}

// BoughtBy reports whether the part was paid for by buyer (case-insensitive).
func (p Part) BoughtBy(buyer string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Buyer), strings.TrimSpace(buyer))
}
