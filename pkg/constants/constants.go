// Package constants provides shared constants for the rental-forecast application.
package constants

// DateTimeLayout is the layout used for purchase dates and yearly row labels.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// ToleranceForComparison is the tolerance for financial comparisons
	ToleranceForComparison = 1.0
)

// Analysis bounds
const (
	// MinAnalysisPeriod is the shortest supported holding period in years
	MinAnalysisPeriod = 1

	// MaxAnalysisPeriod is the longest supported holding period in years
	MaxAnalysisPeriod = 30

	// DefaultDepreciationPeriod is the residential real property recovery period
	DefaultDepreciationPeriod = 27.5
)

// IRR solver defaults
const (
	// IRRInitialGuess is the starting rate for the Newton-Raphson iteration
	IRRInitialGuess = 0.10

	// IRRMaxIterations bounds the Newton-Raphson iteration count
	IRRMaxIterations = 100

	// IRRTolerance applies to both the derivative magnitude and the rate step
	IRRTolerance = 1e-4
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatMarkdown is the markdown report format
	OutputFormatMarkdown = "markdown"

	// DefaultCurrency is the ISO 4217 code used when none is configured
	DefaultCurrency = "USD"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides of configuration keys
	EnvPrefix = "RENTAL"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
