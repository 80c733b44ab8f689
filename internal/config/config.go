// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/datetime"
	"github.com/iwvelando/rental-forecast/pkg/depreciation"
	"github.com/iwvelando/rental-forecast/pkg/loans"
	"github.com/iwvelando/rental-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected for dates in config files.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for one rental-forecast scenario.
type Configuration struct {
	Name      string          `yaml:"name,omitempty" json:"name,omitempty"`
	Property  PropertyConfig  `yaml:"property" json:"property"`
	Financing FinancingConfig `yaml:"financing" json:"financing"`
	Income    IncomeConfig    `yaml:"income" json:"income"`
	Expenses  ExpensesConfig  `yaml:"expenses" json:"expenses"`
	Tax       TaxConfig       `yaml:"tax" json:"tax"`
	Analysis  AnalysisConfig  `yaml:"analysis" json:"analysis"`
	Logging   LoggingConfig   `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty" json:"output,omitempty"`
}

// PropertyConfig describes the property being purchased.
type PropertyConfig struct {
	Price        float64 `yaml:"price" json:"price"`
	LandValue    float64 `yaml:"landValue" json:"landValue"`
	PurchaseDate string  `yaml:"purchaseDate,omitempty" json:"purchaseDate,omitempty"` // YYYY-MM, labels only
}

// FinancingConfig describes the mortgage. Either DownPayment or
// DownPaymentPercent is required; MonthlyPayment overrides the amortized
// payment when set.
type FinancingConfig struct {
	DownPayment        float64 `yaml:"downPayment,omitempty" json:"downPayment,omitempty"`
	DownPaymentPercent float64 `yaml:"downPaymentPercent,omitempty" json:"downPaymentPercent,omitempty"`
	InterestRate       float64 `yaml:"interestRate" json:"interestRate"`
	LoanTerm           int     `yaml:"loanTerm" json:"loanTerm"` // years
	MonthlyPayment     float64 `yaml:"monthlyPayment,omitempty" json:"monthlyPayment,omitempty"`
}

// IncomeConfig describes rental income.
type IncomeConfig struct {
	MonthlyRent    float64 `yaml:"monthlyRent" json:"monthlyRent"`
	RentGrowthRate float64 `yaml:"rentGrowthRate" json:"rentGrowthRate"`
	VacancyRate    float64 `yaml:"vacancyRate" json:"vacancyRate"`
}

// ExpensesConfig describes operating expenses. Property tax and insurance are
// annual; HOA fees, utilities and maintenance are monthly; property management
// is a percentage of effective income.
type ExpensesConfig struct {
	PropertyTax        float64 `yaml:"propertyTax" json:"propertyTax"`
	Insurance          float64 `yaml:"insurance" json:"insurance"`
	HOAFees            float64 `yaml:"hoaFees" json:"hoaFees"`
	Utilities          float64 `yaml:"utilities" json:"utilities"`
	Maintenance        float64 `yaml:"maintenance" json:"maintenance"`
	PropertyManagement float64 `yaml:"propertyManagement" json:"propertyManagement"`
}

// TaxConfig holds the income tax rate and depreciation settings.
type TaxConfig struct {
	Rate               float64 `yaml:"rate" json:"rate"`
	DepreciationMethod string  `yaml:"depreciationMethod" json:"depreciationMethod"` // none, straight-line, accelerated
	DepreciationPeriod float64 `yaml:"depreciationPeriod" json:"depreciationPeriod"`
}

// AnalysisConfig holds the holding period and market assumptions.
type AnalysisConfig struct {
	Period           int     `yaml:"period" json:"period"` // years
	AppreciationRate float64 `yaml:"appreciationRate" json:"appreciationRate"`
	SellingCosts     float64 `yaml:"sellingCosts" json:"sellingCosts"`
	InflationRate    float64 `yaml:"inflationRate" json:"inflationRate"`
	DiscountRate     float64 `yaml:"discountRate" json:"discountRate"`
	Sensitivity      bool    `yaml:"sensitivity,omitempty" json:"sensitivity,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty" json:"format,omitempty"`     // pretty, csv, json, markdown
	Currency string `yaml:"currency,omitempty" json:"currency,omitempty"` // ISO 4217 code
}

// newViper returns a parser with the configuration defaults. Environment
// overrides are only bound when withEnv is set.
func newViper(withEnv bool) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	if withEnv {
		v.SetEnvPrefix(constants.EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	v.SetDefault("tax.depreciationMethod", string(depreciation.MethodNone))
	v.SetDefault("tax.depreciationPeriod", constants.DefaultDepreciationPeriod)
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.currency", constants.DefaultCurrency)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Any key can be overridden from the environment, e.g.
// RENTAL_INCOME_MONTHLYRENT.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper(true)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
// The document is taken as-is; environment overrides do not apply.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper(false)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

// Params converts the configuration into engine parameters.
func (c *Configuration) Params() (investment.Params, error) {
	method, err := depreciation.ParseMethod(c.Tax.DepreciationMethod)
	if err != nil {
		return investment.Params{}, err
	}

	var purchaseMonth, purchaseYear int
	if c.Property.PurchaseDate != "" {
		purchaseMonth, purchaseYear, err = datetime.ParsePurchaseDate(c.Property.PurchaseDate)
		if err != nil {
			return investment.Params{}, err
		}
	}

	return investment.Params{
		PropertyPrice:          c.Property.Price,
		DownPayment:            c.Financing.DownPayment,
		DownPaymentPercent:     c.Financing.DownPaymentPercent,
		InterestRate:           c.Financing.InterestRate,
		LoanTermYears:          c.Financing.LoanTerm,
		MonthlyPaymentOverride: c.Financing.MonthlyPayment,
		MonthlyRent:            c.Income.MonthlyRent,
		RentGrowthRate:         c.Income.RentGrowthRate,
		VacancyRate:            c.Income.VacancyRate,
		PropertyTax:            c.Expenses.PropertyTax,
		Insurance:              c.Expenses.Insurance,
		HOAFees:                c.Expenses.HOAFees,
		Utilities:              c.Expenses.Utilities,
		Maintenance:            c.Expenses.Maintenance,
		PropertyManagement:     c.Expenses.PropertyManagement,
		DepreciationMethod:     method,
		DepreciationPeriod:     c.Tax.DepreciationPeriod,
		LandValue:              c.Property.LandValue,
		AnalysisPeriod:         c.Analysis.Period,
		AppreciationRate:       c.Analysis.AppreciationRate,
		SellingCosts:           c.Analysis.SellingCosts,
		TaxRate:                c.Tax.Rate,
		InflationRate:          c.Analysis.InflationRate,
		DiscountRate:           c.Analysis.DiscountRate,
		PurchaseMonth:          purchaseMonth,
		PurchaseYear:           purchaseYear,
	}, nil
}

// ToInputs converts the configuration into validated engine inputs.
func (c *Configuration) ToInputs() (investment.Inputs, error) {
	params, err := c.Params()
	if err != nil {
		return investment.Inputs{}, fmt.Errorf("invalid configuration: %w", err)
	}
	in, err := investment.NewInputs(params)
	if err != nil {
		return investment.Inputs{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return in, nil
}

// ValidateSchema checks the configuration against the input schema and
// returns every violation.
func (c *Configuration) ValidateSchema() ([]string, error) {
	return validation.ValidateDocument(c)
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	down := c.Financing.DownPayment
	if down <= 0 {
		down = c.Property.Price * c.Financing.DownPaymentPercent / constants.PercentageMultiplier
	}

	validator := validation.ConfigValidator{
		PropertyPrice:      c.Property.Price,
		LandValue:          c.Property.LandValue,
		DownPayment:        c.Financing.DownPayment,
		DownPaymentPercent: c.Financing.DownPaymentPercent,
		InterestRate:       c.Financing.InterestRate,
		LoanTermYears:      c.Financing.LoanTerm,
		MonthlyPayment:     c.Financing.MonthlyPayment,
		DerivedPayment:     loans.CalculateMonthlyPayment(c.Property.Price-down, c.Financing.InterestRate, c.Financing.LoanTerm),
		DepreciationMethod: c.Tax.DepreciationMethod,
		DepreciationPeriod: c.Tax.DepreciationPeriod,
		AnalysisPeriod:     c.Analysis.Period,
		OutputFormat:       c.Output.Format,
	}
	return validator.ValidateAll()
}
