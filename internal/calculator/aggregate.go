package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mmynk/motoledger/internal/models"
	"github.com/shopspring/decimal"
)

// Filter selects bikes by sold status.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterSold   Filter = "sold"
	FilterUnsold Filter = "unsold"
)

// ParseFilter parses a filter name. An empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterSold:
		return FilterSold, nil
	case FilterUnsold:
		return FilterUnsold, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, sold or unsold)", s)
	}
}

// Match reports whether the bike passes the filter.
func (f Filter) Match(bike models.Motorbike) bool {
	switch f {
	case FilterSold:
		return bike.IsSold
	case FilterUnsold:
		return !bike.IsSold
	default:
		return true
	}
}

// BikeAnalytics is the per-bike breakdown shown on the analytics view.
type BikeAnalytics struct {
	ID                string
	Name              string
	InitialCost       decimal.Decimal
	BikeBuyer         string
	TotalCost         decimal.Decimal
	TanyaInvestment   decimal.Decimal
	GeraldInvestment  decimal.Decimal
	TanyaPartsCost    decimal.Decimal
	GeraldPartsCost   decimal.Decimal
	IsSold            bool
	HasProfit         bool
	Profit            decimal.Decimal
	TanyaProfitShare  decimal.Decimal
	GeraldProfitShare decimal.Decimal
}

// Summary aggregates a filtered set of bikes.
// Bikes flagged IgnoreFromCalculations contribute nothing and get no row.
type Summary struct {
	Filter Filter

	// TotalCost is the summed total cost of the matching bikes.
	TotalCost decimal.Decimal
	// ProjectedSale is twice the total cost of the matching unsold bikes.
	ProjectedSale decimal.Decimal
	// ActualProfit is the summed profit of the matching sold bikes.
	ActualProfit decimal.Decimal

	TotalTanyaInvestment   decimal.Decimal
	TotalGeraldInvestment  decimal.Decimal
	TotalTanyaProfitShare  decimal.Decimal
	TotalGeraldProfitShare decimal.Decimal

	Bikes []BikeAnalytics
}

// Breakdown computes the analytics row for one bike.
func Breakdown(bike models.Motorbike) BikeAnalytics {
	row := BikeAnalytics{
		ID:               bike.ID,
		Name:             bike.Name,
		InitialCost:      bike.InitialCost,
		BikeBuyer:        bike.Buyer,
		TotalCost:        TotalMotorbikeCost(bike),
		TanyaInvestment:  Investment(bike, models.BuyerTanya),
		GeraldInvestment: Investment(bike, models.BuyerGerald),
		TanyaPartsCost:   CostByBuyer(bike, models.BuyerTanya),
		GeraldPartsCost:  CostByBuyer(bike, models.BuyerGerald),
		IsSold:           bike.IsSold,
	}
	if p, ok := ProfitAndShares(bike); ok {
		row.HasProfit = true
		row.Profit = p.Profit
		row.TanyaProfitShare = p.TanyaShare
		row.GeraldProfitShare = p.GeraldShare
	}
	return row
}

// Aggregate computes the dashboard and analytics totals over the bikes that
// match filter and are not ignored from calculations.
func Aggregate(bikes []models.Motorbike, filter Filter) Summary {
	sum := Summary{
		Filter:                 filter,
		TotalCost:              decimal.Zero,
		ProjectedSale:          decimal.Zero,
		ActualProfit:           decimal.Zero,
		TotalTanyaInvestment:   decimal.Zero,
		TotalGeraldInvestment:  decimal.Zero,
		TotalTanyaProfitShare:  decimal.Zero,
		TotalGeraldProfitShare: decimal.Zero,
		Bikes:                  []BikeAnalytics{},
	}

	for _, bike := range bikes {
		if bike.IgnoreFromCalculations || !filter.Match(bike) {
			continue
		}

		row := Breakdown(bike)
		sum.Bikes = append(sum.Bikes, row)

		sum.TotalCost = sum.TotalCost.Add(row.TotalCost)
		sum.TotalTanyaInvestment = sum.TotalTanyaInvestment.Add(row.TanyaInvestment)
		sum.TotalGeraldInvestment = sum.TotalGeraldInvestment.Add(row.GeraldInvestment)
		if !bike.IsSold {
			sum.ProjectedSale = sum.ProjectedSale.Add(row.TotalCost)
		}
		if row.HasProfit {
			sum.ActualProfit = sum.ActualProfit.Add(row.Profit)
			sum.TotalTanyaProfitShare = sum.TotalTanyaProfitShare.Add(row.TanyaProfitShare)
			sum.TotalGeraldProfitShare = sum.TotalGeraldProfitShare.Add(row.GeraldProfitShare)
		}
	}

	sum.ProjectedSale = sum.ProjectedSale.Mul(projectionMultiplier)
	return sum
}

// projectionMultiplier is the flat valuation heuristic for unsold bikes.
var projectionMultiplier = decimal.NewFromInt(2)

// TotalCost sums the total cost of every bike not ignored from calculations.
func TotalCost(bikes []models.Motorbike) decimal.Decimal {
	return Aggregate(bikes, FilterAll).TotalCost
}

// ProjectedSale is twice the total cost of the unsold, non-ignored bikes.
func ProjectedSale(bikes []models.Motorbike) decimal.Decimal {
	return Aggregate(bikes, FilterUnsold).ProjectedSale
}

// ActualProfit sums the profit of the sold, non-ignored bikes that have a
// sold value.
func ActualProfit(bikes []models.Motorbike) decimal.Decimal {
	return Aggregate(bikes, FilterSold).ActualProfit
}

// Unsold returns the bikes that are not sold, in their original order.
func Unsold(bikes []models.Motorbike) []models.Motorbike {
	out := make([]models.Motorbike, 0, len(bikes))
	for _, b := range bikes {
		if !b.IsSold {
			out = append(out, b)
		}
	}
	return out
}

// SortForDisplay returns a copy ordered with unsold bikes first, then by
// case-insensitive name.
func SortForDisplay(bikes []models.Motorbike) []models.Motorbike {
	out := make([]models.Motorbike, len(bikes))
	copy(out, bikes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsSold != out[j].IsSold {
			return !out[i].IsSold
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
