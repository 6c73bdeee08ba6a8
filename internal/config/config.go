// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"time"

	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/paydownlabs/paydown/pkg/constants"
	"github.com/paydownlabs/paydown/pkg/debt"
	"github.com/paydownlabs/paydown/pkg/validation"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the
// output date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for paydown.
type Configuration struct {
	StartDate    string           `yaml:"startDate,omitempty"` // YYYY-MM; month 1 of the timeline
	Currency     string           `yaml:"currency,omitempty"`
	Strategy     string           `yaml:"strategy,omitempty"`
	ExtraPayment float64          `yaml:"extraPayment"`
	Debts        []debt.Debt      `yaml:"debts"`
	LumpSums     []payoff.LumpSum `yaml:"lumpSums,omitempty"`
	Optimizer    *OptimizerConfig `yaml:"optimizer,omitempty"`
	Logging      LoggingConfig    `yaml:"logging,omitempty"`
	Output       OutputConfig     `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// OptimizerConfig requests a search for the smallest extra payment that
// reaches debt freedom within TargetMonths.
type OptimizerConfig struct {
	TargetMonths  int     `yaml:"targetMonths"`
	MaxIterations int     `yaml:"maxIterations,omitempty"`
	Tolerance     float64 `yaml:"tolerance,omitempty"`
}

// Normalize applies defaults to unset optimizer fields.
func (o *OptimizerConfig) Normalize() {
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.DefaultOptimizerMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = constants.DefaultOptimizerTolerance
	}
}

// Validate checks the optimizer directive for usable bounds.
func (o *OptimizerConfig) Validate() error {
	if o.TargetMonths <= 0 || o.TargetMonths > constants.MaxMonths {
		return fmt.Errorf("optimizer targetMonths must be between 1 and %d, got %d",
			constants.MaxMonths, o.TargetMonths)
	}
	return nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// PlanInput converts the configuration into the simulator's input contract,
// assigning IDs to debts that lack one. The configuration itself is not
// modified.
func (c *Configuration) PlanInput() payoff.Input {
	debts := make([]debt.Debt, len(c.Debts))
	copy(debts, c.Debts)

	return payoff.Input{
		Debts:        debt.EnsureIDs(debts),
		ExtraPayment: c.ExtraPayment,
		Strategy:     payoff.Strategy(c.Strategy),
		Currency:     c.Currency,
		LumpSums:     c.LumpSums,
	}
}

// StartMonth returns the configured start date, falling back to the current
// month when unset.
func (c *Configuration) StartMonth() string {
	if c.StartDate != "" {
		return c.StartDate
	}
	return time.Now().Format(DateTimeLayout)
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (c *Configuration) ValidateConfiguration() []string {
	warnings := validation.ValidateDebts(c.Debts, c.ExtraPayment)

	if c.StartDate != "" {
		if _, err := time.Parse(DateTimeLayout, c.StartDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("Start date '%s' is not in YYYY-MM format and will be ignored", c.StartDate))
		}
	}

	if _, err := payoff.ParseStrategy(c.Strategy); err != nil {
		warnings = append(warnings, fmt.Sprintf("Strategy '%s' is not recognized", c.Strategy))
	}

	for _, ls := range c.LumpSums {
		if ls.Month <= 0 || ls.Month > constants.MaxMonths {
			warnings = append(warnings, fmt.Sprintf("Lump sum month %d is outside the simulation horizon", ls.Month))
		}
		if ls.Amount <= 0 {
			warnings = append(warnings, fmt.Sprintf("Lump sum in month %d has non-positive amount %.2f and will be ignored", ls.Month, ls.Amount))
		}
	}

	return warnings
}
