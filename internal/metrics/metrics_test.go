package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/internal/sensitivity"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, ResultSuccess, Outcome(nil))
	assert.Equal(t, ResultPrecondition, Outcome(fmt.Errorf("wrapped: %w", &investment.PreconditionError{Field: "downPayment", Reason: "must be positive"})))
	assert.Equal(t, ResultError, Outcome(errors.New("boom")))
}

func TestObserveCalculation(t *testing.T) {
	success := promtest.ToFloat64(CalculationsTotal.WithLabelValues(SourceCLI, ResultSuccess))
	failed := promtest.ToFloat64(CalculationsTotal.WithLabelValues(SourceCLI, ResultError))
	unconverged := promtest.ToFloat64(IRRNotConvergedTotal)

	ObserveCalculation(SourceCLI, time.Now(), investment.Result{IRRConverged: true}, nil)
	ObserveCalculation(SourceCLI, time.Now(), investment.Result{}, nil)
	ObserveCalculation(SourceCLI, time.Now(), investment.Result{}, errors.New("boom"))

	assert.Equal(t, success+2, promtest.ToFloat64(CalculationsTotal.WithLabelValues(SourceCLI, ResultSuccess)))
	assert.Equal(t, failed+1, promtest.ToFloat64(CalculationsTotal.WithLabelValues(SourceCLI, ResultError)))
	assert.Equal(t, unconverged+1, promtest.ToFloat64(IRRNotConvergedTotal))
	assert.Equal(t, 1, promtest.CollectAndCount(CalculationDuration))
}

func TestObserveSensitivity(t *testing.T) {
	before := promtest.ToFloat64(SensitivityRunsTotal.WithLabelValues(SourceAPI))
	unconverged := promtest.ToFloat64(IRRNotConvergedTotal)

	ObserveSensitivity(SourceAPI, sensitivity.Analysis{
		Rent: []sensitivity.RentRow{
			{ChangePercent: -20, IRRConverged: false},
			{ChangePercent: 0, IRRConverged: true},
		},
		Appreciation: []sensitivity.AppreciationRow{
			{AppreciationRate: 1, IRRConverged: false},
			{AppreciationRate: 3, IRRConverged: true},
		},
	})

	assert.Equal(t, before+1, promtest.ToFloat64(SensitivityRunsTotal.WithLabelValues(SourceAPI)))
	assert.Equal(t, unconverged+2, promtest.ToFloat64(IRRNotConvergedTotal))
}
