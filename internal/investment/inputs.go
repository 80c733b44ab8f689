package investment

import (
	"errors"
	"fmt"

	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/depreciation"
	"github.com/iwvelando/rental-forecast/pkg/loans"
	"github.com/iwvelando/rental-forecast/pkg/mathutil"
)

// ErrPrecondition is matched by every input validation failure.
var ErrPrecondition = errors.New("investment precondition violated")

// PreconditionError describes a single invalid input.
type PreconditionError struct {
	Field  string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrPrecondition.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

func precondition(field, format string, args ...interface{}) error {
	return &PreconditionError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Params holds the user-supplied values from which Inputs are derived.
// Either DownPayment or DownPaymentPercent must be set; when both are set the
// amount wins.
type Params struct {
	PropertyPrice          float64
	DownPayment            float64
	DownPaymentPercent     float64
	InterestRate           float64
	LoanTermYears          int
	MonthlyPaymentOverride float64

	MonthlyRent    float64
	RentGrowthRate float64
	VacancyRate    float64

	PropertyTax        float64
	Insurance          float64
	HOAFees            float64
	Utilities          float64
	Maintenance        float64
	PropertyManagement float64

	DepreciationMethod depreciation.Method
	DepreciationPeriod float64
	LandValue          float64

	AnalysisPeriod   int
	AppreciationRate float64
	SellingCosts     float64
	TaxRate          float64
	InflationRate    float64
	DiscountRate     float64

	PurchaseMonth int
	PurchaseYear  int
}

// Inputs is the validated, fully derived parameter set for one calculation.
// Rates are percentages. PropertyTax and Insurance are annual; HOAFees,
// Utilities and Maintenance are monthly.
type Inputs struct {
	PropertyPrice      float64 `json:"propertyPrice"`
	DownPayment        float64 `json:"downPayment"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	LoanAmount         float64 `json:"loanAmount"`
	InterestRate       float64 `json:"interestRate"`
	LoanTermYears      int     `json:"loanTermYears"`
	MonthlyPayment     float64 `json:"monthlyPayment"`
	PaymentOverridden  bool    `json:"paymentOverridden"`

	MonthlyRent    float64 `json:"monthlyRent"`
	RentGrowthRate float64 `json:"rentGrowthRate"`
	VacancyRate    float64 `json:"vacancyRate"`

	PropertyTax        float64 `json:"propertyTax"`
	Insurance          float64 `json:"insurance"`
	HOAFees            float64 `json:"hoaFees"`
	Utilities          float64 `json:"utilities"`
	Maintenance        float64 `json:"maintenance"`
	PropertyManagement float64 `json:"propertyManagement"`

	DepreciationMethod depreciation.Method `json:"depreciationMethod"`
	DepreciationPeriod float64             `json:"depreciationPeriod"`
	LandValue          float64             `json:"landValue"`

	AnalysisPeriod   int     `json:"analysisPeriod"`
	AppreciationRate float64 `json:"appreciationRate"`
	SellingCosts     float64 `json:"sellingCosts"`
	TaxRate          float64 `json:"taxRate"`
	InflationRate    float64 `json:"inflationRate"`
	DiscountRate     float64 `json:"discountRate"`

	PurchaseMonth int `json:"purchaseMonth,omitempty"`
	PurchaseYear  int `json:"purchaseYear,omitempty"`
}

// NewInputs derives the loan amount, down payment percentage and monthly
// payment from p and validates the result.
func NewInputs(p Params) (Inputs, error) {
	down := p.DownPayment
	if down <= 0 && p.DownPaymentPercent > 0 {
		down = mathutil.ApplyPercentage(p.PropertyPrice, p.DownPaymentPercent)
	}

	in := Inputs{
		PropertyPrice:      p.PropertyPrice,
		DownPayment:        down,
		LoanAmount:         p.PropertyPrice - down,
		InterestRate:       p.InterestRate,
		LoanTermYears:      p.LoanTermYears,
		MonthlyRent:        p.MonthlyRent,
		RentGrowthRate:     p.RentGrowthRate,
		VacancyRate:        p.VacancyRate,
		PropertyTax:        p.PropertyTax,
		Insurance:          p.Insurance,
		HOAFees:            p.HOAFees,
		Utilities:          p.Utilities,
		Maintenance:        p.Maintenance,
		PropertyManagement: p.PropertyManagement,
		DepreciationMethod: p.DepreciationMethod,
		DepreciationPeriod: p.DepreciationPeriod,
		LandValue:          p.LandValue,
		AnalysisPeriod:     p.AnalysisPeriod,
		AppreciationRate:   p.AppreciationRate,
		SellingCosts:       p.SellingCosts,
		TaxRate:            p.TaxRate,
		InflationRate:      p.InflationRate,
		DiscountRate:       p.DiscountRate,
		PurchaseMonth:      p.PurchaseMonth,
		PurchaseYear:       p.PurchaseYear,
	}
	if in.DepreciationMethod == "" {
		in.DepreciationMethod = depreciation.MethodNone
	}
	if p.PropertyPrice > 0 {
		in.DownPaymentPercent = down / p.PropertyPrice * constants.PercentageMultiplier
	}
	if p.MonthlyPaymentOverride > 0 {
		in.MonthlyPayment = p.MonthlyPaymentOverride
		in.PaymentOverridden = true
	} else {
		in.MonthlyPayment = loans.CalculateMonthlyPayment(in.LoanAmount, in.InterestRate, in.LoanTermYears)
	}

	if err := in.Validate(); err != nil {
		return Inputs{}, err
	}
	return in, nil
}

// Validate checks the invariants every calculation relies on. Range checks
// that only make results unrealistic, not undefined, are left to the schema
// in pkg/validation.
func (in Inputs) Validate() error {
	numbers := []struct {
		field string
		value float64
	}{
		{"propertyPrice", in.PropertyPrice},
		{"downPayment", in.DownPayment},
		{"loanAmount", in.LoanAmount},
		{"interestRate", in.InterestRate},
		{"monthlyPayment", in.MonthlyPayment},
		{"monthlyRent", in.MonthlyRent},
		{"rentGrowthRate", in.RentGrowthRate},
		{"vacancyRate", in.VacancyRate},
		{"propertyTax", in.PropertyTax},
		{"insurance", in.Insurance},
		{"hoaFees", in.HOAFees},
		{"utilities", in.Utilities},
		{"maintenance", in.Maintenance},
		{"propertyManagement", in.PropertyManagement},
		{"depreciationPeriod", in.DepreciationPeriod},
		{"landValue", in.LandValue},
		{"appreciationRate", in.AppreciationRate},
		{"sellingCosts", in.SellingCosts},
		{"taxRate", in.TaxRate},
		{"inflationRate", in.InflationRate},
		{"discountRate", in.DiscountRate},
	}
	for _, n := range numbers {
		if !mathutil.IsFinite(n.value) {
			return precondition(n.field, "must be a finite number")
		}
	}

	switch {
	case in.PropertyPrice <= 0:
		return precondition("propertyPrice", "must be greater than 0, got %.2f", in.PropertyPrice)
	case in.DownPayment <= 0:
		return precondition("downPayment", "must be greater than 0, got %.2f", in.DownPayment)
	case in.DownPayment >= in.PropertyPrice:
		return precondition("downPayment", "%.2f must be less than the property price %.2f", in.DownPayment, in.PropertyPrice)
	case in.LandValue < 0:
		return precondition("landValue", "must not be negative, got %.2f", in.LandValue)
	case in.LandValue >= in.PropertyPrice:
		return precondition("landValue", "%.2f must be less than the property price %.2f", in.LandValue, in.PropertyPrice)
	case in.AnalysisPeriod < constants.MinAnalysisPeriod || in.AnalysisPeriod > constants.MaxAnalysisPeriod:
		return precondition("analysisPeriod", "must be between %d and %d years, got %d",
			constants.MinAnalysisPeriod, constants.MaxAnalysisPeriod, in.AnalysisPeriod)
	case in.LoanAmount > 0 && in.LoanTermYears <= 0:
		return precondition("loanTermYears", "must be greater than 0 for a loan of %.2f", in.LoanAmount)
	case !mathutil.WithinTolerance(in.LoanAmount, in.PropertyPrice-in.DownPayment, constants.CurrencyTolerance):
		return precondition("loanAmount", "%.2f does not equal price minus down payment %.2f",
			in.LoanAmount, in.PropertyPrice-in.DownPayment)
	case in.InterestRate < 0:
		return precondition("interestRate", "must not be negative, got %.2f", in.InterestRate)
	case in.MonthlyPayment < 0:
		return precondition("monthlyPayment", "must not be negative, got %.2f", in.MonthlyPayment)
	case in.PurchaseMonth < 0 || in.PurchaseMonth > 12:
		return precondition("purchaseMonth", "must be between 1 and 12, got %d", in.PurchaseMonth)
	}
	return nil
}

// Loan returns the mortgage described by the inputs.
func (in Inputs) Loan() loans.Loan {
	return loans.Loan{
		Principal:      in.LoanAmount,
		AnnualRate:     in.InterestRate,
		TermYears:      in.LoanTermYears,
		MonthlyPayment: in.MonthlyPayment,
	}
}

// DepreciableBasis is the purchase price less the non-depreciable land value.
func (in Inputs) DepreciableBasis() float64 {
	return in.PropertyPrice - in.LandValue
}

// WithMonthlyRent returns a copy of in with a different starting rent.
func (in Inputs) WithMonthlyRent(rent float64) Inputs {
	in.MonthlyRent = rent
	return in
}

// WithAppreciationRate returns a copy of in with a different appreciation rate.
func (in Inputs) WithAppreciationRate(rate float64) Inputs {
	in.AppreciationRate = rate
	return in
}
