package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ryosan-470/mf-dashboard/internal/config"
	"github.com/ryosan-470/mf-dashboard/internal/domain"
	"github.com/ryosan-470/mf-dashboard/internal/output"
	"github.com/ryosan-470/mf-dashboard/internal/simulation"
)

var (
	// CLI flags for the simulation inputs
	configFile           string  // Path to a YAML configuration file
	initialAmount        float64 // Starting portfolio value
	monthlyContribution  float64 // Contribution per month during accumulation
	annualReturnRate     float64 // Expected annual return (%)
	volatility           float64 // Annual volatility (%)
	inflationRate        float64 // Annual inflation (%)
	expenseRatio         float64 // Annual fund expense ratio (%)
	contributionYears    int     // Years of contributions
	withdrawalStartYear  int     // Year withdrawals begin
	withdrawalYears      int     // Years of withdrawals
	taxFree              bool    // Skip capital-gains taxation (NISA-style account)
	monthlyWithdrawal    float64 // Fixed-amount withdrawal mode
	annualWithdrawalRate float64 // Rate-based withdrawal mode
	inflationAdjusted    bool    // Grow fixed withdrawals with inflation
	monthlyPension       float64 // Pension income offsetting withdrawals

	// CLI flags for the engine and output
	seed      uint32 // Generator seed override
	pathCount int    // Number of Monte Carlo paths
	format    string // Output format name
	logLevel  string // Log verbosity level
	save      bool   // Also write the report to a timestamped file
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "mf-dashboard",
	Short: "Stochastic portfolio projection for savings and withdrawal plans",
}

// simulateCmd runs one projection from flags and/or a config file.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the Monte Carlo portfolio projection",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		formatter := output.GetFormatterByName(format)
		if formatter == nil {
			return fmt.Errorf("unknown format %q (available: %v)", format, output.AvailableFormatterNames())
		}

		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		sim := simulation.NewSimulator()
		sim.Seed = seed
		sim.Paths = pathCount
		sim.Logger = logrusAdapter{}

		start := time.Now()
		result := sim.Run(*cfg)
		logrus.Infof("simulation finished in %s", time.Since(start))

		baseline := simulation.CompoundProjection(*cfg)
		logrus.Infof("deterministic baseline final value: %s", output.FormatWholeCurrency(baseline[len(baseline)-1]))

		data, err := formatter.Format(result)
		if err != nil {
			return fmt.Errorf("formatting failed: %w", err)
		}
		if save {
			ext := formatter.Name()
			if ext == "console" {
				ext = "txt"
			}
			filename, err := output.WriteFormatted(formatter, result, ext)
			if err != nil {
				return fmt.Errorf("saving report failed: %w", err)
			}
			logrus.Infof("report written to %s", filename)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// exampleConfigCmd writes a starter YAML configuration to stdout.
var exampleConfigCmd = &cobra.Command{
	Use:   "example-config",
	Short: "Print an example simulation configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(config.ExampleYAML())
		return err
	},
}

// buildConfig merges file input with explicit flags; flags win over file
// values. Selecting both withdrawal modes is an error, mirroring the config
// layer's validation.
func buildConfig(cmd *cobra.Command) (*domain.SimulationConfig, error) {
	var cfg *domain.SimulationConfig
	if configFile != "" {
		parser := config.NewInputParser()
		loaded, err := parser.LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &domain.SimulationConfig{}
	}

	flags := cmd.Flags()
	if flags.Changed("initial-amount") {
		cfg.InitialAmount = initialAmount
	}
	if flags.Changed("monthly-contribution") {
		cfg.MonthlyContribution = monthlyContribution
	}
	if flags.Changed("annual-return-rate") {
		cfg.AnnualReturnRate = annualReturnRate
	}
	if flags.Changed("volatility") {
		cfg.Volatility = volatility
	}
	if flags.Changed("inflation-rate") {
		cfg.InflationRate = inflationRate
	}
	if flags.Changed("expense-ratio") {
		cfg.ExpenseRatio = expenseRatio
	}
	if flags.Changed("contribution-years") {
		cfg.ContributionYears = contributionYears
	}
	if flags.Changed("withdrawal-start-year") {
		cfg.WithdrawalStartYear = withdrawalStartYear
	}
	if flags.Changed("withdrawal-years") {
		cfg.WithdrawalYears = withdrawalYears
	}
	if flags.Changed("tax-free") {
		cfg.TaxFree = taxFree
	}
	if flags.Changed("inflation-adjusted-withdrawal") {
		cfg.InflationAdjustedWithdrawal = inflationAdjusted
	}
	if flags.Changed("monthly-pension-income") {
		cfg.MonthlyPensionIncome = monthlyPension
	}

	amountSet := flags.Changed("monthly-withdrawal")
	rateSet := flags.Changed("annual-withdrawal-rate")
	switch {
	case amountSet && rateSet:
		return nil, fmt.Errorf("specify either --monthly-withdrawal or --annual-withdrawal-rate, not both")
	case amountSet:
		cfg.Withdrawal = domain.FixedAmountWithdrawal(monthlyWithdrawal)
	case rateSet:
		cfg.Withdrawal = domain.RateBasedWithdrawal(annualWithdrawalRate)
	}

	if err := config.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logrusAdapter bridges the engine's Logger interface onto logrus.
type logrusAdapter struct{}

func (logrusAdapter) Debugf(format string, args ...any) { logrus.Debugf(format, args...) }
func (logrusAdapter) Infof(format string, args ...any)  { logrus.Infof(format, args...) }
func (logrusAdapter) Warnf(format string, args ...any)  { logrus.Warnf(format, args...) }
func (logrusAdapter) Errorf(format string, args ...any) { logrus.Errorf(format, args...) }

// Execute runs the CLI root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands.
func init() {
	f := simulateCmd.Flags()
	f.StringVar(&configFile, "config", "", "Path to YAML configuration file")
	f.Float64Var(&initialAmount, "initial-amount", 0, "Starting portfolio value")
	f.Float64Var(&monthlyContribution, "monthly-contribution", 0, "Monthly contribution during accumulation")
	f.Float64Var(&annualReturnRate, "annual-return-rate", 5, "Expected annual return (%)")
	f.Float64Var(&volatility, "volatility", 15, "Annual volatility (%)")
	f.Float64Var(&inflationRate, "inflation-rate", 2, "Annual inflation rate (%)")
	f.Float64Var(&expenseRatio, "expense-ratio", 0, "Annual fund expense ratio (%)")
	f.IntVar(&contributionYears, "contribution-years", 0, "Years of monthly contributions")
	f.IntVar(&withdrawalStartYear, "withdrawal-start-year", 0, "Year withdrawals begin")
	f.IntVar(&withdrawalYears, "withdrawal-years", 0, "Years of withdrawals")
	f.BoolVar(&taxFree, "tax-free", false, "Skip capital-gains taxation on withdrawals")
	f.Float64Var(&monthlyWithdrawal, "monthly-withdrawal", 0, "Fixed monthly withdrawal amount")
	f.Float64Var(&annualWithdrawalRate, "annual-withdrawal-rate", 0, "Annual withdrawal rate (%) locked at withdrawal start")
	f.BoolVar(&inflationAdjusted, "inflation-adjusted-withdrawal", false, "Grow fixed withdrawals with inflation")
	f.Float64Var(&monthlyPension, "monthly-pension-income", 0, "Monthly pension income offsetting withdrawals")

	f.Uint32Var(&seed, "seed", simulation.DefaultSeed, "Deviate generator seed")
	f.IntVar(&pathCount, "paths", domain.DefaultPathCount, "Number of Monte Carlo paths")
	f.StringVar(&format, "format", "console", "Output format (console, json, csv)")
	f.StringVar(&logLevel, "log", "warning", "Log level (trace, debug, info, warn, error, fatal, panic)")
	f.BoolVar(&save, "save", false, "Also write the report to a timestamped file")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(exampleConfigCmd)
}
