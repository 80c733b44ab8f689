// Package metrics exposes Prometheus collectors for investment calculations.
package metrics

import (
	"errors"
	"time"

	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/internal/sensitivity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation sources.
const (
	SourceCLI    = "cli"
	SourceAPI    = "api"
	SourceUpload = "upload"
)

// Calculation outcomes.
const (
	ResultSuccess      = "success"
	ResultPrecondition = "precondition"
	ResultError        = "error"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_forecast_calculations_total",
			Help: "Total number of investment calculations by source and outcome",
		},
		[]string{"source", "result"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rental_forecast_calculation_duration_seconds",
			Help:    "Duration of investment calculations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"source"},
	)

	SensitivityRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rental_forecast_sensitivity_runs_total",
			Help: "Total number of sensitivity analyses by source",
		},
		[]string{"source"},
	)

	IRRNotConvergedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rental_forecast_irr_not_converged_total",
			Help: "Total number of calculations, sensitivity reruns included, whose IRR solver hit its iteration limit",
		},
	)
)

// Outcome classifies a calculation error for the result label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, investment.ErrPrecondition):
		return ResultPrecondition
	default:
		return ResultError
	}
}

// ObserveCalculation records one calculation that started at start.
func ObserveCalculation(source string, start time.Time, res investment.Result, err error) {
	CalculationsTotal.WithLabelValues(source, Outcome(err)).Inc()
	CalculationDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	if err == nil && !res.IRRConverged {
		IRRNotConvergedTotal.Inc()
	}
}

// ObserveSensitivity records one sensitivity analysis and any of its reruns
// whose IRR did not converge.
func ObserveSensitivity(source string, analysis sensitivity.Analysis) {
	SensitivityRunsTotal.WithLabelValues(source).Inc()
	IRRNotConvergedTotal.Add(float64(analysis.Unconverged()))
}
