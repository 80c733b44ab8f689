// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/format"
)

// paymentOverrideTolerance is the relative difference between an overridden
// and a derived payment above which a warning is raised.
const paymentOverrideTolerance = 0.01

// ValidateLoanHorizon warns when the analysis runs past the end of the loan.
func ValidateLoanHorizon(analysisPeriod, loanTermYears int) string {
	if loanTermYears > 0 && analysisPeriod > loanTermYears {
		return fmt.Sprintf("Analysis period of %d years exceeds the %d-year loan term - debt service is still charged after payoff",
			analysisPeriod, loanTermYears)
	}
	return ""
}

// ValidateDownPayment warns when both a down payment amount and percentage are
// given and they disagree.
func ValidateDownPayment(price, amount, percent float64) string {
	if price <= 0 || amount <= 0 || percent <= 0 {
		return ""
	}
	implied := amount / price * constants.PercentageMultiplier
	if math.Abs(implied-percent) > constants.CurrencyTolerance {
		return fmt.Sprintf("Down payment of %s is %.2f%% of the price but %.2f%% was configured - the amount is used",
			format.Currency(amount), implied, percent)
	}
	return ""
}

// ValidatePaymentOverride warns when an overridden monthly payment differs
// noticeably from the amortized payment.
func ValidatePaymentOverride(override, derived float64) string {
	if override <= 0 || derived <= 0 {
		return ""
	}
	if math.Abs(override-derived)/derived > paymentOverrideTolerance {
		return fmt.Sprintf("Monthly payment override %s differs from the amortized payment %s - remaining balances assume the override",
			format.Currency(override), format.Currency(derived))
	}
	return ""
}

// ValidateDepreciation warns when a depreciation method is configured that can
// never produce a deduction.
func ValidateDepreciation(method string, price, landValue, period float64) []string {
	var warnings []string
	m := strings.ToLower(strings.TrimSpace(method))
	if m == "" || m == "none" {
		return nil
	}
	if period <= 0 {
		warnings = append(warnings, fmt.Sprintf("Depreciation method '%s' has no depreciation period - no depreciation will be claimed", method))
	}
	if price-landValue <= 0 {
		warnings = append(warnings, fmt.Sprintf("Depreciation method '%s' has no depreciable basis (price %s, land %s)", method, format.Currency(price), format.Currency(landValue)))
	}
	return warnings
}

// ConfigValidator collects the values that are cross-checked for warnings.
type ConfigValidator struct {
	PropertyPrice      float64
	LandValue          float64
	DownPayment        float64
	DownPaymentPercent float64
	InterestRate       float64
	LoanTermYears      int
	MonthlyPayment     float64
	DerivedPayment     float64
	DepreciationMethod string
	DepreciationPeriod float64
	AnalysisPeriod     int
	OutputFormat       string
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if warning := ValidateLoanHorizon(cv.AnalysisPeriod, cv.LoanTermYears); warning != "" {
		warnings = append(warnings, warning)
	}
	if warning := ValidateDownPayment(cv.PropertyPrice, cv.DownPayment, cv.DownPaymentPercent); warning != "" {
		warnings = append(warnings, warning)
	}
	if warning := ValidatePaymentOverride(cv.MonthlyPayment, cv.DerivedPayment); warning != "" {
		warnings = append(warnings, warning)
	}
	warnings = append(warnings, ValidateDepreciation(cv.DepreciationMethod, cv.PropertyPrice, cv.LandValue, cv.DepreciationPeriod)...)

	if cv.OutputFormat != "" {
		if err := ValidateOutputFormat(cv.OutputFormat); err != nil {
			warnings = append(warnings, fmt.Sprintf("Ignoring output format: %s", err))
		}
	}

	return warnings
}
