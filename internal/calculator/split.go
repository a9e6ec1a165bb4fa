// Package calculator derives costs, investments and profit shares from
// motorbike snapshots. Every function is pure and recomputes from its input;
// nothing is cached between calls.
package calculator

import "github.com/shopspring/decimal"

// SplitEvenly divides amount equally among participants.
// Returns an empty map when there are no participants.
func SplitEvenly(amount decimal.Decimal, participants []string) map[string]decimal.Decimal {
	splits := make(map[string]decimal.Decimal, len(participants))
	if len(participants) == 0 {
		return splits
	}

	perPerson := amount.Div(decimal.NewFromInt(int64(len(participants))))
	for _, p := range participants {
		splits[p] = perPerson
	}
	return splits
}
