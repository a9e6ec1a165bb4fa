package calculator

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as a dollar string, e.g. "$2,750.00".
// Amounts are rounded half away from zero to cents.
func FormatUSD(amount decimal.Decimal) string {
	cur := money.New(0, money.USD).Currency()
	cents := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}
