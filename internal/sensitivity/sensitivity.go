// Package sensitivity reruns the investment projection under perturbed rent
// and appreciation assumptions.
package sensitivity

import (
	"fmt"

	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// RentRow is one rerun with the starting rent scaled by ChangePercent.
type RentRow struct {
	ChangePercent    float64 `json:"changePercent"`
	MonthlyRent      float64 `json:"monthlyRent"`
	MonthlyCashFlow  float64 `json:"monthlyCashFlow"`
	TotalCapitalGain float64 `json:"totalCapitalGain"`
	IRR              float64 `json:"irr"`
	IRRConverged     bool    `json:"irrConverged"`
}

// AppreciationRow is one rerun at a fixed annual appreciation rate.
type AppreciationRow struct {
	AppreciationRate   float64 `json:"appreciationRate"`
	FinalPropertyValue float64 `json:"finalPropertyValue"`
	TotalReturnPercent float64 `json:"totalReturnPercent"`
	IRR                float64 `json:"irr"`
	IRRConverged       bool    `json:"irrConverged"`
}

// Analysis holds both sensitivity tables.
type Analysis struct {
	Rent         []RentRow         `json:"rent"`
	Appreciation []AppreciationRow `json:"appreciation"`
}

// Unconverged counts the rows whose IRR solver hit its iteration limit.
func (a Analysis) Unconverged() int {
	n := 0
	for _, row := range a.Rent {
		if !row.IRRConverged {
			n++
		}
	}
	for _, row := range a.Appreciation {
		if !row.IRRConverged {
			n++
		}
	}
	return n
}

// RentChanges are the percentage adjustments applied to the starting rent.
func RentChanges() []float64 {
	return []float64{-20, -10, 0, 10, 20}
}

// AppreciationRates are the annual appreciation rates tried, in percent.
func AppreciationRates() []float64 {
	return []float64{1, 2, 3, 4, 5}
}

// Rent reruns the projection for each entry of RentChanges.
func Rent(logger *zap.Logger, in investment.Inputs) ([]RentRow, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows := make([]RentRow, 0, len(RentChanges()))
	for _, change := range RentChanges() {
		rent := in.MonthlyRent * (1 + mathutil.PercentToDecimal(change))
		result, err := investment.Calculate(logger, in.WithMonthlyRent(rent))
		if err != nil {
			return nil, fmt.Errorf("rent sensitivity at %+.0f%%: %w", change, err)
		}
		rows = append(rows, RentRow{
			ChangePercent:    change,
			MonthlyRent:      rent,
			MonthlyCashFlow:  result.Monthly.NetCashFlow,
			TotalCapitalGain: result.TotalCapitalGain,
			IRR:              result.IRR,
			IRRConverged:     result.IRRConverged,
		})
	}

	logger.Debug(fmt.Sprintf("computed %d rent sensitivity rows", len(rows)),
		zap.String("op", "sensitivity.Rent"),
	)
	return rows, nil
}

// Appreciation reruns the projection for each entry of AppreciationRates.
// Total return is measured against the original purchase price.
func Appreciation(logger *zap.Logger, in investment.Inputs) ([]AppreciationRow, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows := make([]AppreciationRow, 0, len(AppreciationRates()))
	for _, rate := range AppreciationRates() {
		result, err := investment.Calculate(logger, in.WithAppreciationRate(rate))
		if err != nil {
			return nil, fmt.Errorf("appreciation sensitivity at %.0f%%: %w", rate, err)
		}
		final := result.FinalYear().PropertyValue
		rows = append(rows, AppreciationRow{
			AppreciationRate:   rate,
			FinalPropertyValue: final,
			TotalReturnPercent: (final - in.PropertyPrice) / in.PropertyPrice * constants.PercentageMultiplier,
			IRR:                result.IRR,
			IRRConverged:       result.IRRConverged,
		})
	}

	logger.Debug(fmt.Sprintf("computed %d appreciation sensitivity rows", len(rows)),
		zap.String("op", "sensitivity.Appreciation"),
	)
	return rows, nil
}

// Run computes both tables.
func Run(logger *zap.Logger, in investment.Inputs) (Analysis, error) {
	rent, err := Rent(logger, in)
	if err != nil {
		return Analysis{}, err
	}
	appreciation, err := Appreciation(logger, in)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{Rent: rent, Appreciation: appreciation}, nil
}
