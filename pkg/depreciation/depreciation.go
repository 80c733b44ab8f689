// Package depreciation computes annual depreciation allowances for rental
// property and applies them against taxable income.
package depreciation

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/rental-forecast/pkg/mathutil"
)

// Method selects how the depreciable basis is spread over the recovery period.
type Method string

// Supported depreciation methods.
const (
	MethodNone         Method = "none"
	MethodStraightLine Method = "straight-line"
	MethodAccelerated  Method = "accelerated"
)

// acceleratedRates is the fixed per-year fraction of basis claimed under the
// accelerated method. Years beyond the table claim nothing.
var acceleratedRates = []float64{
	0.03636, 0.03455, 0.03182, 0.02941, 0.02727, 0.02564, 0.02439, 0.02326,
	0.02222, 0.02128, 0.02041, 0.01961, 0.01887, 0.01818, 0.01754, 0.01695,
	0.01639, 0.01587, 0.01538, 0.01493, 0.01449, 0.01408, 0.0137, 0.01333,
	0.01299, 0.01266, 0.01235, 0.01205, 0.01176, 0.01149, 0.01122,
}

// ParseMethod converts user input into a Method. An empty string means none.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return MethodNone, nil
	case "straight-line", "straight_line", "straightline":
		return MethodStraightLine, nil
	case "accelerated", "macrs":
		return MethodAccelerated, nil
	default:
		return "", fmt.Errorf("unknown depreciation method %q", s)
	}
}

// Annual returns the depreciation allowance for the given 1-based year.
func Annual(method Method, basis, period float64, year int) float64 {
	if method == MethodNone || period <= 0 || basis <= 0 || year < 1 {
		return 0
	}

	switch method {
	case MethodStraightLine:
		perYear := basis / period
		remaining := basis - perYear*float64(year-1)
		return math.Max(0, math.Min(perYear, remaining))
	case MethodAccelerated:
		if year > len(acceleratedRates) {
			return 0
		}
		return basis * acceleratedRates[year-1]
	default:
		return 0
	}
}

// Schedule returns the allowance for years 1 through years.
func Schedule(method Method, basis, period float64, years int) []float64 {
	if years <= 0 {
		return nil
	}
	schedule := make([]float64, years)
	for i := range schedule {
		schedule[i] = Annual(method, basis, period, i+1)
	}
	return schedule
}

// Claim is the outcome of applying available depreciation against one
// year's taxable income.
type Claim struct {
	Available  float64
	Used       float64
	Unused     float64
	TaxSavings float64
}

// CarryForward uses as much of the available depreciation as the taxable
// income allows. Whatever is left is carried into the next year.
func CarryForward(available, taxable, taxRate float64) Claim {
	used := math.Max(0, math.Min(available, taxable))
	return Claim{
		Available:  available,
		Used:       used,
		Unused:     available - used,
		TaxSavings: mathutil.ApplyPercentage(used, taxRate),
	}
}
