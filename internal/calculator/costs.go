package calculator

import (
	"strings"

	"github.com/mmynk/motoledger/internal/models"
	"github.com/shopspring/decimal"
)

// Profit is the resale result of a sold motorbike and its split between
// the two investors.
type Profit struct {
	Profit      decimal.Decimal
	TanyaShare  decimal.Decimal
	GeraldShare decimal.Decimal
}

// TotalPartsCost sums the cost of every part on the bike.
func TotalPartsCost(bike models.Motorbike) decimal.Decimal {
	total := decimal.Zero
	for _, p := range bike.Parts {
		total = total.Add(p.Cost)
	}
	return total
}

// TotalMotorbikeCost is the initial cost plus all parts.
func TotalMotorbikeCost(bike models.Motorbike) decimal.Decimal {
	return bike.InitialCost.Add(TotalPartsCost(bike))
}

// CostByBuyer sums the parts paid for by buyer (case-insensitive).
// Parts attributed to anyone else contribute nothing.
func CostByBuyer(bike models.Motorbike, buyer string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range bike.Parts {
		if p.BoughtBy(buyer) {
			total = total.Add(p.Cost)
		}
	}
	return total
}

// Investment is what one investor put into the bike: their share of the
// purchase plus the parts they bought.
func Investment(bike models.Motorbike, buyer string) decimal.Decimal {
	parts := CostByBuyer(bike, buyer)
	switch {
	case strings.EqualFold(buyer, models.BuyerTanya):
		return bike.TanyaInitialCost.Add(parts)
	case strings.EqualFold(buyer, models.BuyerGerald):
		return bike.GeraldInitialCost.Add(parts)
	default:
		return parts
	}
}

// ProfitAndShares computes the resale profit of a sold bike.
// The second return value is false when the bike is unsold or has no sold
// value. Profit is split evenly regardless of how much each investor put in.
func ProfitAndShares(bike models.Motorbike) (Profit, bool) {
	sold, ok := bike.EffectiveSoldValue()
	if !ok {
		return Profit{}, false
	}

	profit := sold.Sub(TotalMotorbikeCost(bike))
	shares := SplitEvenly(profit, models.Buyers)
	return Profit{
		Profit:      profit,
		TanyaShare:  shares[models.BuyerTanya],
		GeraldShare: shares[models.BuyerGerald],
	}, true
}
