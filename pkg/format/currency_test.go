package format

import (
	"strings"
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Small", 5.5, "$5.50"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.56, "-$1,234.56"},
		{"Rounds half away from zero", 0.125, "$0.13"},
		{"Negative rounding", -18.046, "-$18.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestCurrencyIn(t *testing.T) {
	if got := CurrencyIn(1234.4, "JPY"); !strings.Contains(got, "1,234") || strings.Contains(got, ".") {
		t.Errorf("CurrencyIn(JPY) = %q, expected whole yen", got)
	}
	if got := CurrencyIn(99.99, "usd"); got != "$99.99" {
		t.Errorf("CurrencyIn(usd) = %q, expected $99.99", got)
	}
	if got := CurrencyIn(10, "NOPE"); got != "$10.00" {
		t.Errorf("CurrencyIn(unknown) = %q, expected the USD fallback", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(1216.0405, "USD").String(); got != "1216.04" {
		t.Errorf("Round() = %s, expected 1216.04", got)
	}
	if got := Round(2.5, "JPY").String(); got != "3" {
		t.Errorf("Round(JPY) = %s, expected 3", got)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{12.345, "12.35%"},
		{-3.1, "-3.10%"},
		{0, "0.00%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.value); got != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}

func TestFixed(t *testing.T) {
	if got := Fixed(-1234.567, "USD"); got != "-1234.57" {
		t.Errorf("Fixed() = %q, expected -1234.57", got)
	}
	if got := Fixed(50, "USD"); got != "50.00" {
		t.Errorf("Fixed() = %q, expected 50.00", got)
	}
	if got := Fixed(1234.4, "JPY"); got != "1234" {
		t.Errorf("Fixed(JPY) = %q, expected 1234", got)
	}
}
