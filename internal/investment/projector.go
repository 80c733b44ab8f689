package investment

import (
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/datetime"
	"github.com/iwvelando/rental-forecast/pkg/depreciation"
	"github.com/iwvelando/rental-forecast/pkg/loans"
	"github.com/iwvelando/rental-forecast/pkg/mathutil"
)

// MonthlySnapshot is the first month of operation at purchase-day values.
type MonthlySnapshot struct {
	GrossRent          float64 `json:"grossRent"`
	VacancyLoss        float64 `json:"vacancyLoss"`
	EffectiveIncome    float64 `json:"effectiveIncome"`
	PropertyTax        float64 `json:"propertyTax"`
	Insurance          float64 `json:"insurance"`
	HOAFees            float64 `json:"hoaFees"`
	Utilities          float64 `json:"utilities"`
	Maintenance        float64 `json:"maintenance"`
	ManagementFee      float64 `json:"managementFee"`
	TotalExpenses      float64 `json:"totalExpenses"`
	NetOperatingIncome float64 `json:"netOperatingIncome"`
	DebtService        float64 `json:"debtService"`
	Depreciation       float64 `json:"depreciation"`
	NetCashFlow        float64 `json:"netCashFlow"`
}

// YearlySnapshot holds one analysis year. Label and CalendarYear are only
// set when a purchase date is known.
type YearlySnapshot struct {
	Year                       int     `json:"year"`
	Label                      string  `json:"label,omitempty"`
	CalendarYear               int     `json:"calendarYear,omitempty"`
	PropertyValue              float64 `json:"propertyValue"`
	MonthlyRent                float64 `json:"monthlyRent"`
	AnnualRent                 float64 `json:"annualRent"`
	EffectiveIncome            float64 `json:"effectiveIncome"`
	OperatingExpenses          float64 `json:"operatingExpenses"`
	NetOperatingIncome         float64 `json:"netOperatingIncome"`
	DebtService                float64 `json:"debtService"`
	InterestPaid               float64 `json:"interestPaid"`
	PrincipalPaid              float64 `json:"principalPaid"`
	NetCashFlow                float64 `json:"netCashFlow"`
	TaxableCashFlow            float64 `json:"taxableCashFlow"`
	Depreciation               float64 `json:"depreciation"`
	DepreciationUsed           float64 `json:"depreciationUsed"`
	CarriedForwardDepreciation float64 `json:"carriedForwardDepreciation"`
	TaxSavings                 float64 `json:"taxSavings"`
	TotalCashFlowForROI        float64 `json:"totalCashFlowForROI"`
	CumulativeCashFlow         float64 `json:"cumulativeCashFlow"`
	ROI                        float64 `json:"roi"`
	CumulativeROI              float64 `json:"cumulativeROI"`
}

// MonthlyCashFlow computes the first month of operation.
func MonthlyCashFlow(in Inputs) MonthlySnapshot {
	var m MonthlySnapshot
	m.GrossRent = in.MonthlyRent
	m.VacancyLoss = mathutil.ApplyPercentage(m.GrossRent, in.VacancyRate)
	m.EffectiveIncome = m.GrossRent - m.VacancyLoss

	m.PropertyTax = in.PropertyTax / constants.MonthsPerYear
	m.Insurance = in.Insurance / constants.MonthsPerYear
	m.HOAFees = in.HOAFees
	m.Utilities = in.Utilities
	m.Maintenance = in.Maintenance
	m.ManagementFee = mathutil.ApplyPercentage(m.EffectiveIncome, in.PropertyManagement)
	m.TotalExpenses = m.PropertyTax + m.Insurance + m.HOAFees + m.Utilities + m.Maintenance + m.ManagementFee

	m.NetOperatingIncome = m.EffectiveIncome - m.TotalExpenses
	m.DebtService = in.MonthlyPayment
	m.Depreciation = depreciation.Annual(in.DepreciationMethod, in.DepreciableBasis(), in.DepreciationPeriod, 1) /
		constants.MonthsPerYear
	m.NetCashFlow = m.NetOperatingIncome - m.DebtService
	return m
}

// ProjectYears builds one snapshot per analysis year. Property value and rent
// compound from the previous year; fixed costs inflate from the purchase-year
// amounts; the management fee follows effective income. Inputs must already
// be validated.
func ProjectYears(in Inputs) []YearlySnapshot {
	if in.AnalysisPeriod < 1 {
		return nil
	}

	loan := in.Loan()
	schedule := depreciation.Schedule(in.DepreciationMethod, in.DepreciableBasis(), in.DepreciationPeriod, in.AnalysisPeriod)
	fixedAnnualCosts := in.PropertyTax + in.Insurance +
		(in.HOAFees+in.Utilities+in.Maintenance)*constants.MonthsPerYear
	debtService := in.MonthlyPayment * constants.MonthsPerYear

	years := make([]YearlySnapshot, 0, in.AnalysisPeriod)
	propertyValue := in.PropertyPrice
	monthlyRent := in.MonthlyRent
	carried := 0.0
	cumulativeCashFlow := 0.0
	cumulativeROI := 0.0

	for year := 1; year <= in.AnalysisPeriod; year++ {
		propertyValue *= 1 + mathutil.PercentToDecimal(in.AppreciationRate)
		monthlyRent *= 1 + mathutil.PercentToDecimal(in.RentGrowthRate)

		var y YearlySnapshot
		y.Year = year
		y.Label = datetime.MonthYearLabel(in.PurchaseMonth, in.PurchaseYear, year)
		y.CalendarYear = datetime.CalendarYear(in.PurchaseYear, year)
		y.PropertyValue = propertyValue
		y.MonthlyRent = monthlyRent
		y.AnnualRent = monthlyRent * constants.MonthsPerYear
		y.EffectiveIncome = y.AnnualRent * (1 - mathutil.PercentToDecimal(in.VacancyRate))

		inflation := mathutil.GrowthFactor(in.InflationRate, year-1)
		y.OperatingExpenses = fixedAnnualCosts*inflation + mathutil.ApplyPercentage(y.EffectiveIncome, in.PropertyManagement)
		y.NetOperatingIncome = y.EffectiveIncome - y.OperatingExpenses
		y.DebtService = debtService
		y.NetCashFlow = y.NetOperatingIncome - debtService

		y.InterestPaid, y.PrincipalPaid = loans.AnnualInterestAndPrincipal(loan, year)
		// Principal repayment is not deductible, so it is added back.
		y.TaxableCashFlow = y.NetCashFlow + y.PrincipalPaid

		y.Depreciation = schedule[year-1]
		claim := depreciation.CarryForward(y.Depreciation+carried, y.TaxableCashFlow, in.TaxRate)
		carried = claim.Unused
		y.DepreciationUsed = claim.Used
		y.CarriedForwardDepreciation = claim.Unused
		y.TaxSavings = claim.TaxSavings

		y.TotalCashFlowForROI = y.NetCashFlow + y.TaxSavings
		cumulativeCashFlow += y.NetCashFlow
		y.CumulativeCashFlow = cumulativeCashFlow
		y.ROI = y.TotalCashFlowForROI / in.DownPayment * constants.PercentageMultiplier
		cumulativeROI += y.ROI
		y.CumulativeROI = cumulativeROI

		years = append(years, y)
	}
	return years
}
