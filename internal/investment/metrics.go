package investment

import (
	"math"

	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/loans"
	"github.com/iwvelando/rental-forecast/pkg/mathutil"
	"github.com/iwvelando/rental-forecast/pkg/returns"
)

// Totals sums the additive yearly columns over the analysis period.
type Totals struct {
	AnnualRent          float64 `json:"annualRent"`
	EffectiveIncome     float64 `json:"effectiveIncome"`
	OperatingExpenses   float64 `json:"operatingExpenses"`
	NetOperatingIncome  float64 `json:"netOperatingIncome"`
	DebtService         float64 `json:"debtService"`
	InterestPaid        float64 `json:"interestPaid"`
	PrincipalPaid       float64 `json:"principalPaid"`
	NetCashFlow         float64 `json:"netCashFlow"`
	Depreciation        float64 `json:"depreciation"`
	DepreciationUsed    float64 `json:"depreciationUsed"`
	TaxSavings          float64 `json:"taxSavings"`
	TotalCashFlowForROI float64 `json:"totalCashFlowForROI"`
	ROI                 float64 `json:"roi"`
}

// SaleProceeds is the final property value less selling costs and the loan
// balance still owed at the end of the analysis period.
func SaleProceeds(in Inputs, years []YearlySnapshot) float64 {
	if len(years) == 0 {
		return 0
	}
	finalValue := years[len(years)-1].PropertyValue
	sellingCosts := mathutil.ApplyPercentage(finalValue, in.SellingCosts)
	return finalValue - sellingCosts - loans.RemainingBalance(in.Loan(), in.AnalysisPeriod)
}

// CashFlowVector returns the flows used for IRR: the down payment as an
// outflow, then each year's cash flow with the sale proceeds added to the
// final year.
func CashFlowVector(in Inputs, years []YearlySnapshot) []float64 {
	cf := make([]float64, 0, len(years)+1)
	cf = append(cf, -in.DownPayment)
	for _, y := range years {
		cf = append(cf, y.TotalCashFlowForROI)
	}
	if len(years) > 0 {
		cf[len(cf)-1] += SaleProceeds(in, years)
	}
	return cf
}

// IRR returns the internal rate of return as a percentage.
func IRR(in Inputs, years []YearlySnapshot) float64 {
	return returns.IRR(CashFlowVector(in, years))
}

// NPV discounts each year's cash flow at the discount rate with exponent
// year, and the sale proceeds with exponent AnalysisPeriod. The down payment
// is not discounted.
func NPV(in Inputs, years []YearlySnapshot) float64 {
	if len(years) == 0 {
		return -in.DownPayment
	}
	rate := mathutil.PercentToDecimal(in.DiscountRate)
	npv := -in.DownPayment
	for i, y := range years {
		npv += y.TotalCashFlowForROI / math.Pow(1+rate, float64(i+1))
	}
	npv += SaleProceeds(in, years) / math.Pow(1+rate, float64(in.AnalysisPeriod))
	return npv
}

// BreakEven returns the first year whose cumulative cash flow including tax
// savings is non-negative, or nil if that never happens.
func BreakEven(years []YearlySnapshot) *int {
	flows := make([]float64, len(years))
	for i, y := range years {
		flows[i] = y.TotalCashFlowForROI
	}
	year, ok := returns.BreakEvenYear(flows)
	if !ok {
		return nil
	}
	return &year
}

// TotalCapitalGain is the sale proceeds less the original down payment.
func TotalCapitalGain(in Inputs, years []YearlySnapshot) float64 {
	return SaleProceeds(in, years) - in.DownPayment
}

// CashOnCashROI annualizes the first month's cash flow against the down
// payment, as a percentage.
func CashOnCashROI(in Inputs, m MonthlySnapshot) float64 {
	return m.NetCashFlow * constants.MonthsPerYear / in.DownPayment * constants.PercentageMultiplier
}

// SumYears totals the additive columns of years.
func SumYears(years []YearlySnapshot) Totals {
	var t Totals
	for _, y := range years {
		t.AnnualRent += y.AnnualRent
		t.EffectiveIncome += y.EffectiveIncome
		t.OperatingExpenses += y.OperatingExpenses
		t.NetOperatingIncome += y.NetOperatingIncome
		t.DebtService += y.DebtService
		t.InterestPaid += y.InterestPaid
		t.PrincipalPaid += y.PrincipalPaid
		t.NetCashFlow += y.NetCashFlow
		t.Depreciation += y.Depreciation
		t.DepreciationUsed += y.DepreciationUsed
		t.TaxSavings += y.TaxSavings
		t.TotalCashFlowForROI += y.TotalCashFlowForROI
		t.ROI += y.ROI
	}
	return t
}
