package report

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iwvelando/rental-forecast/internal/config"
	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/internal/metrics"
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/loans"
	"github.com/iwvelando/rental-forecast/pkg/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadExample(t *testing.T) *config.Configuration {
	t.Helper()
	cfg, err := config.LoadConfiguration(filepath.Join("..", "..", constants.ExampleConfigFile))
	require.NoError(t, err)
	return cfg
}

func TestBuild(t *testing.T) {
	cfg := loadExample(t)
	before := promtest.ToFloat64(metrics.CalculationsTotal.WithLabelValues(metrics.SourceCLI, metrics.ResultSuccess))

	r, err := Build(zap.NewNop(), cfg, Options{})
	require.NoError(t, err)

	assert.Equal(t, cfg.Name, r.Name)
	assert.Equal(t, constants.DefaultCurrency, r.Currency)
	assert.Len(t, r.Result.Years, cfg.Analysis.Period)
	require.NotNil(t, r.Sensitivity, "example enables sensitivity")
	assert.Equal(t, before+1, promtest.ToFloat64(metrics.CalculationsTotal.WithLabelValues(metrics.SourceCLI, metrics.ResultSuccess)))

	in, err := cfg.ToInputs()
	require.NoError(t, err)
	expected, err := investment.Calculate(nil, in)
	require.NoError(t, err)
	assert.Equal(t, expected, r.Result)
}

func TestBuildSensitivityOption(t *testing.T) {
	cfg := loadExample(t)
	cfg.Analysis.Sensitivity = false

	r, err := Build(nil, cfg, Options{Source: metrics.SourceAPI})
	require.NoError(t, err)
	assert.Nil(t, r.Sensitivity)

	r, err = Build(nil, cfg, Options{Source: metrics.SourceAPI, Sensitivity: true})
	require.NoError(t, err)
	require.NotNil(t, r.Sensitivity)
	assert.Len(t, r.Sensitivity.Rent, 5)

	base := testutil.FindRentRow(r.Sensitivity.Rent, 0)
	require.NotNil(t, base)
	assert.InDelta(t, r.Result.IRR, base.IRR, 1e-9)
	assert.InDelta(t, r.Result.Monthly.NetCashFlow, base.MonthlyCashFlow, 1e-9)

	configured := testutil.FindAppreciationRow(r.Sensitivity.Appreciation, cfg.Analysis.AppreciationRate)
	require.NotNil(t, configured)
	assert.InDelta(t, r.Result.FinalYear().PropertyValue, configured.FinalPropertyValue, 1e-6)
}

func TestBuildWarnings(t *testing.T) {
	cfg := loadExample(t)
	cfg.Financing.LoanTerm = 5

	r, err := Build(nil, cfg, Options{})
	require.NoError(t, err)
	assert.NotEmpty(t, r.Warnings)
}

func TestBuildPrecondition(t *testing.T) {
	cfg := loadExample(t)
	cfg.Financing.DownPayment = cfg.Property.Price
	before := promtest.ToFloat64(metrics.CalculationsTotal.WithLabelValues(metrics.SourceCLI, metrics.ResultPrecondition))

	_, err := Build(nil, cfg, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, investment.ErrPrecondition))
	assert.Equal(t, before+1, promtest.ToFloat64(metrics.CalculationsTotal.WithLabelValues(metrics.SourceCLI, metrics.ResultPrecondition)))
}

func TestBuildAmortization(t *testing.T) {
	cfg := loadExample(t)

	r, err := Build(nil, cfg, Options{})
	require.NoError(t, err)
	assert.Empty(t, r.Amortization)

	r, err = Build(nil, cfg, Options{Amortization: true})
	require.NoError(t, err)
	require.Len(t, r.Amortization, cfg.Financing.LoanTerm*constants.MonthsPerYear)

	first := r.Amortization[0]
	assert.Equal(t, 1, first.Month)
	assert.InDelta(t, r.Inputs.MonthlyPayment, first.Payment, 1e-9)
	assert.InDelta(t, r.Result.Years[0].InterestPaid, sumInterest(r.Amortization[:constants.MonthsPerYear]), 0.01)
	assert.Zero(t, r.Amortization[len(r.Amortization)-1].RemainingPrincipal)
}

func sumInterest(payments []loans.Payment) float64 {
	total := 0.0
	for _, p := range payments {
		total += p.Interest
	}
	return total
}
