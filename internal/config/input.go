package config

import (
	"fmt"
	"os"

	"github.com/ryosan-470/mf-dashboard/internal/domain"
	"gopkg.in/yaml.v3"
)

// PortfolioSource reports the user's current aggregate investment value. It
// backs the default for initial_amount when a config file omits one; the
// production implementation lives in the record-keeping subsystem.
type PortfolioSource interface {
	TotalInvestmentValue() (float64, error)
}

// StaticPortfolio is a fixed-value PortfolioSource for tests and CLI use.
type StaticPortfolio float64

func (s StaticPortfolio) TotalInvestmentValue() (float64, error) { return float64(s), nil }

// fileConfig is the YAML schema of a simulation input file. Optional fields
// are pointers so "omitted" and "zero" stay distinguishable.
type fileConfig struct {
	Simulation simulationInput `yaml:"simulation"`
}

type simulationInput struct {
	InitialAmount               *float64 `yaml:"initial_amount"`
	MonthlyContribution         float64  `yaml:"monthly_contribution"`
	AnnualReturnRate            float64  `yaml:"annual_return_rate"`
	Volatility                  float64  `yaml:"volatility"`
	InflationRate               float64  `yaml:"inflation_rate"`
	ExpenseRatio                float64  `yaml:"expense_ratio"`
	ContributionYears           int      `yaml:"contribution_years"`
	WithdrawalStartYear         int      `yaml:"withdrawal_start_year"`
	WithdrawalYears             int      `yaml:"withdrawal_years"`
	TaxFree                     bool     `yaml:"tax_free"`
	MonthlyWithdrawal           *float64 `yaml:"monthly_withdrawal"`
	AnnualWithdrawalRate        *float64 `yaml:"annual_withdrawal_rate"`
	InflationAdjustedWithdrawal bool     `yaml:"inflation_adjusted_withdrawal"`
	MonthlyPensionIncome        float64  `yaml:"monthly_pension_income"`
}

// InputParser handles parsing of simulation input files.
type InputParser struct {
	// Portfolio, when set, supplies the default initial amount for files
	// that omit initial_amount.
	Portfolio PortfolioSource
}

// NewInputParser creates a new input parser without a portfolio source.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a simulation configuration from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates raw YAML input.
func (ip *InputParser) Parse(data []byte) (*domain.SimulationConfig, error) {
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg, err := ip.buildConfig(&file.Simulation)
	if err != nil {
		return nil, err
	}
	if err := ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// buildConfig maps the file schema onto the domain config, resolving the
// withdrawal mode into its tagged variant. Populating both mode selectors is
// rejected here instead of silently preferring one.
func (ip *InputParser) buildConfig(in *simulationInput) (*domain.SimulationConfig, error) {
	cfg := &domain.SimulationConfig{
		MonthlyContribution:         in.MonthlyContribution,
		AnnualReturnRate:            in.AnnualReturnRate,
		Volatility:                  in.Volatility,
		InflationRate:               in.InflationRate,
		ExpenseRatio:                in.ExpenseRatio,
		ContributionYears:           in.ContributionYears,
		WithdrawalStartYear:         in.WithdrawalStartYear,
		WithdrawalYears:             in.WithdrawalYears,
		TaxFree:                     in.TaxFree,
		InflationAdjustedWithdrawal: in.InflationAdjustedWithdrawal,
		MonthlyPensionIncome:        in.MonthlyPensionIncome,
	}

	switch {
	case in.InitialAmount != nil:
		cfg.InitialAmount = *in.InitialAmount
	case ip.Portfolio != nil:
		value, err := ip.Portfolio.TotalInvestmentValue()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve default initial amount: %w", err)
		}
		cfg.InitialAmount = value
	}

	switch {
	case in.MonthlyWithdrawal != nil && in.AnnualWithdrawalRate != nil:
		return nil, fmt.Errorf("specify either monthly_withdrawal or annual_withdrawal_rate, not both")
	case in.MonthlyWithdrawal != nil:
		cfg.Withdrawal = domain.FixedAmountWithdrawal(*in.MonthlyWithdrawal)
	case in.AnnualWithdrawalRate != nil:
		cfg.Withdrawal = domain.RateBasedWithdrawal(*in.AnnualWithdrawalRate)
	}
	return cfg, nil
}

// ValidateConfiguration checks numeric ranges on a simulation configuration.
func ValidateConfiguration(cfg *domain.SimulationConfig) error {
	if cfg.InitialAmount < 0 {
		return fmt.Errorf("initial amount cannot be negative")
	}
	if cfg.MonthlyContribution < 0 {
		return fmt.Errorf("monthly contribution cannot be negative")
	}
	if cfg.Volatility < 0 {
		return fmt.Errorf("volatility cannot be negative")
	}
	if cfg.InflationRate < -10 || cfg.InflationRate > 20 {
		return fmt.Errorf("inflation rate must be between -10%% and 20%%, got %.2f%%", cfg.InflationRate)
	}
	if cfg.ExpenseRatio < 0 {
		return fmt.Errorf("expense ratio cannot be negative")
	}
	if cfg.ContributionYears < 0 || cfg.WithdrawalStartYear < 0 || cfg.WithdrawalYears < 0 {
		return fmt.Errorf("year counts cannot be negative")
	}
	if cfg.ContributionYears > 100 || cfg.WithdrawalStartYear+cfg.WithdrawalYears > 100 {
		return fmt.Errorf("projection horizon must not exceed 100 years")
	}
	if amount, ok := cfg.Withdrawal.FixedAmount(); ok && amount < 0 {
		return fmt.Errorf("monthly withdrawal cannot be negative")
	}
	if rate, ok := cfg.Withdrawal.AnnualRate(); ok && (rate < 0 || rate > 100) {
		return fmt.Errorf("annual withdrawal rate must be between 0%% and 100%%")
	}
	if cfg.MonthlyPensionIncome < 0 {
		return fmt.Errorf("monthly pension income cannot be negative")
	}
	return nil
}

// CreateExampleConfiguration returns a representative accumulation plus
// decumulation setup, used by the example-config command.
func CreateExampleConfiguration() *domain.SimulationConfig {
	return &domain.SimulationConfig{
		InitialAmount:       10_000_000,
		MonthlyContribution: 50_000,
		AnnualReturnRate:    5,
		Volatility:          15,
		InflationRate:       2,
		ContributionYears:   20,
		WithdrawalStartYear: 20,
		WithdrawalYears:     10,
		Withdrawal:          domain.FixedAmountWithdrawal(150_000),
	}
}

// ExampleYAML is the serialized form of CreateExampleConfiguration.
func ExampleYAML() []byte {
	return []byte(`simulation:
  initial_amount: 10000000
  monthly_contribution: 50000
  annual_return_rate: 5
  volatility: 15
  inflation_rate: 2
  expense_ratio: 0
  contribution_years: 20
  withdrawal_start_year: 20
  withdrawal_years: 10
  monthly_withdrawal: 150000
  tax_free: false
  inflation_adjusted_withdrawal: false
  monthly_pension_income: 0
`)
}
