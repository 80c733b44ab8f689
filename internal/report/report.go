// Package report runs a loaded scenario configuration through the investment
// engine and assembles the renderable report.
package report

import (
	"time"

	"github.com/iwvelando/rental-forecast/internal/config"
	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/internal/metrics"
	"github.com/iwvelando/rental-forecast/internal/sensitivity"
	"github.com/iwvelando/rental-forecast/pkg/loans"
	"github.com/iwvelando/rental-forecast/pkg/output"
	"go.uber.org/zap"
)

// Options controls a single report build.
type Options struct {
	// Sensitivity forces the sensitivity tables even when the configuration
	// does not request them.
	Sensitivity bool
	// Amortization attaches the month-by-month loan schedule.
	Amortization bool
	// Source labels the calculation metrics (cli, api, upload).
	Source string
}

// Build converts cfg to engine inputs, calculates the result and, when asked
// for by opts or the configuration, the sensitivity tables. Configuration
// warnings are attached to the report.
func Build(logger *zap.Logger, cfg *config.Configuration, opts Options) (output.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	source := opts.Source
	if source == "" {
		source = metrics.SourceCLI
	}

	start := time.Now()
	in, err := cfg.ToInputs()
	if err != nil {
		metrics.ObserveCalculation(source, start, investment.Result{}, err)
		return output.Report{}, err
	}

	result, err := investment.Calculate(logger, in)
	metrics.ObserveCalculation(source, start, result, err)
	if err != nil {
		return output.Report{}, err
	}

	r := output.Report{
		Name:     cfg.Name,
		Currency: cfg.Output.Currency,
		Inputs:   in,
		Result:   result,
		Warnings: cfg.ValidateConfiguration(),
	}

	if opts.Sensitivity || cfg.Analysis.Sensitivity {
		analysis, err := sensitivity.Run(logger, in)
		if err != nil {
			return output.Report{}, err
		}
		metrics.ObserveSensitivity(source, analysis)
		r.Sensitivity = &analysis
	}

	if opts.Amortization {
		r.Amortization = loans.Schedule(in.Loan())
	}

	logger.Debug("report built",
		zap.String("op", "report.Build"),
		zap.String("source", source),
		zap.Int("warnings", len(r.Warnings)),
		zap.Bool("sensitivity", r.Sensitivity != nil),
		zap.Int("amortizationMonths", len(r.Amortization)),
	)
	return r, nil
}
