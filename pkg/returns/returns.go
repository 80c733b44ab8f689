// Package returns implements discounted cash-flow metrics: net present value,
// internal rate of return and break-even detection.
package returns

import (
	"math"

	"github.com/iwvelando/rental-forecast/pkg/constants"
)

// NPVAtRate discounts cf[i] by (1+rate)^i and sums the result. cf[0] is the
// undiscounted initial flow.
func NPVAtRate(cf []float64, rate float64) float64 {
	npv := 0.0
	for i, v := range cf {
		npv += v / math.Pow(1+rate, float64(i))
	}
	return npv
}

// NPVDerivative is the derivative of NPVAtRate with respect to rate.
func NPVDerivative(cf []float64, rate float64) float64 {
	d := 0.0
	for i := 1; i < len(cf); i++ {
		d -= float64(i) * cf[i] / math.Pow(1+rate, float64(i+1))
	}
	return d
}

// Options tunes the Newton-Raphson solver.
type Options struct {
	Guess         float64
	MaxIterations int
	Tolerance     float64
}

// DefaultOptions returns the solver settings used by IRR.
func DefaultOptions() Options {
	return Options{
		Guess:         constants.IRRInitialGuess,
		MaxIterations: constants.IRRMaxIterations,
		Tolerance:     constants.IRRTolerance,
	}
}

// Solution is the outcome of a Newton-Raphson run. Rate is a fraction, not a
// percentage.
type Solution struct {
	Rate       float64
	Iterations int
	Converged  bool
}

// Solve runs Newton-Raphson on NPVAtRate(cf, rate) = 0. There is no
// bracketing fallback: when the derivative flattens out the current rate is
// returned, and when the iterations run out the last rate is returned
// unconverged.
func Solve(cf []float64, opts Options) Solution {
	rate := opts.Guess
	for i := 0; i < opts.MaxIterations; i++ {
		d := NPVDerivative(cf, rate)
		if math.Abs(d) < opts.Tolerance {
			return Solution{Rate: rate, Iterations: i, Converged: false}
		}
		next := rate - NPVAtRate(cf, rate)/d
		if math.Abs(next-rate) < opts.Tolerance {
			return Solution{Rate: next, Iterations: i + 1, Converged: true}
		}
		rate = next
	}
	return Solution{Rate: rate, Iterations: opts.MaxIterations, Converged: false}
}

// IRR returns the internal rate of return of cf as a percentage.
func IRR(cf []float64) float64 {
	return Solve(cf, DefaultOptions()).Rate * constants.PercentageMultiplier
}

// BreakEvenYear returns the 1-based index of the first flow at which the
// running total becomes non-negative.
func BreakEvenYear(flows []float64) (int, bool) {
	cumulative := 0.0
	for i, v := range flows {
		cumulative += v
		if cumulative >= 0 {
			return i + 1, true
		}
	}
	return 0, false
}
