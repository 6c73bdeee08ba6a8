// Package constants provides shared constants for the paydown application.
package constants

// DateTimeLayout is the format expected for startDate in config files and is
// also the output date format.
const DateTimeLayout = "2006-01"

// Simulation constants
const (
	// MaxMonths caps the simulation horizon to guard against non-convergence
	// when minimum payments do not cover accruing interest
	MaxMonths = 360

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent);
	// a balance at or below this counts as paid off
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Strategy name constants
const (
	// StrategyAvalanche prioritizes the highest interest rate first
	StrategyAvalanche = "avalanche"

	// StrategySnowball prioritizes the smallest balance first
	StrategySnowball = "snowball"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the plan API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum size for plan request
	// bodies (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024
)

// Optimizer defaults
const (
	// DefaultOptimizerMaxIterations bounds the bisection search
	DefaultOptimizerMaxIterations = 50

	// DefaultOptimizerTolerance is the search tolerance in currency units
	DefaultOptimizerTolerance = 1.0
)
