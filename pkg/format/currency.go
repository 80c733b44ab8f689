// Package format renders monetary amounts and percentages for display.
package format

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/shopspring/decimal"
)

func lookup(code string) *money.Currency {
	if cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code))); cur != nil {
		return cur
	}
	return money.GetCurrency(constants.DefaultCurrency)
}

// Round rounds amount half away from zero to the minor unit of the currency.
func Round(amount float64, code string) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(int32(lookup(code).Fraction))
}

// Fixed renders amount rounded to the currency's minor unit without a symbol
// or separators, e.g. "-1234.56". It is meant for machine-readable exports.
func Fixed(amount float64, code string) string {
	cur := lookup(code)
	return Round(amount, cur.Code).StringFixed(int32(cur.Fraction))
}

// CurrencyIn formats amount in the given ISO 4217 currency, e.g. "-$1,234.56"
// for USD. Unknown codes fall back to USD.
func CurrencyIn(amount float64, code string) string {
	cur := lookup(code)
	minor := Round(amount, cur.Code).Shift(int32(cur.Fraction)).IntPart()
	return money.New(minor, cur.Code).Display()
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return CurrencyIn(amount, constants.DefaultCurrency)
}

// Percent formats a percentage with two decimals, e.g. "12.34%".
func Percent(value float64) string {
	return fmt.Sprintf("%s%%", decimal.NewFromFloat(value).StringFixed(2))
}
