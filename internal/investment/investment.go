// Package investment projects the cash flows of a leveraged rental property
// and derives its return metrics.
package investment

import (
	"fmt"

	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/mathutil"
	"github.com/iwvelando/rental-forecast/pkg/returns"
	"go.uber.org/zap"
)

// Result holds everything computed for one set of inputs.
type Result struct {
	Monthly          MonthlySnapshot  `json:"monthly"`
	Years            []YearlySnapshot `json:"years"`
	Totals           Totals           `json:"totals"`
	CashFlows        []float64        `json:"cashFlows"`
	IRR              float64          `json:"irr"`
	IRRConverged     bool             `json:"irrConverged"`
	NPV              float64          `json:"npv"`
	BreakEvenYear    *int             `json:"breakEvenYear"`
	SaleProceeds     float64          `json:"saleProceeds"`
	TotalCapitalGain float64          `json:"totalCapitalGain"`
	CashOnCashROI    float64          `json:"cashOnCashROI"`
}

// FinalYear returns the last yearly snapshot.
func (r Result) FinalYear() YearlySnapshot {
	if len(r.Years) == 0 {
		return YearlySnapshot{}
	}
	return r.Years[len(r.Years)-1]
}

// Calculate validates in and runs the full projection.
func Calculate(logger *zap.Logger, in Inputs) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := in.Validate(); err != nil {
		logger.Debug("rejected investment inputs",
			zap.String("op", "investment.Calculate"),
			zap.Error(err),
		)
		return Result{}, err
	}

	var result Result
	result.Monthly = MonthlyCashFlow(in)
	result.Years = ProjectYears(in)
	result.Totals = SumYears(result.Years)
	result.CashFlows = CashFlowVector(in, result.Years)

	solution := returns.Solve(result.CashFlows, returns.DefaultOptions())
	result.IRR = solution.Rate * constants.PercentageMultiplier
	result.IRRConverged = solution.Converged
	if !solution.Converged {
		logger.Warn(fmt.Sprintf("IRR did not converge after %d iterations, reporting last estimate %.4f%%",
			solution.Iterations, result.IRR),
			zap.String("op", "investment.Calculate"),
		)
	}

	result.NPV = NPV(in, result.Years)
	result.BreakEvenYear = BreakEven(result.Years)
	result.SaleProceeds = SaleProceeds(in, result.Years)
	result.TotalCapitalGain = TotalCapitalGain(in, result.Years)
	result.CashOnCashROI = CashOnCashROI(in, result.Monthly)

	if !mathutil.IsFinite(result.IRR, result.NPV, result.SaleProceeds, result.CashOnCashROI) {
		return Result{}, fmt.Errorf("calculation produced a non-finite result (irr %v, npv %v)", result.IRR, result.NPV)
	}

	logger.Debug(fmt.Sprintf("projected %d years: irr %.2f%%, npv %.2f", len(result.Years), result.IRR, result.NPV),
		zap.String("op", "investment.Calculate"),
	)
	return result, nil
}
