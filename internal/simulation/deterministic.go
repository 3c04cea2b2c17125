package simulation

import (
	"math"

	"github.com/ryosan-470/mf-dashboard/internal/domain"
)

// CompoundProjection is the deterministic baseline companion to Run: the
// same real-terms monthly growth with volatility forced to zero and no
// withdrawals, so charts and reports can compare the stochastic bands
// against plain compound growth. It returns one value per year, index 0
// holding the initial amount.
func CompoundProjection(cfg domain.SimulationConfig) []float64 {
	mu := (cfg.AnnualReturnRate - cfg.ExpenseRatio) / 100
	inflation := cfg.InflationRate / 100
	monthlyGrowth := math.Exp((mu - inflation) / monthsPerYear)

	horizon := TotalYears(&cfg)
	out := make([]float64, 0, horizon+1)
	value := cfg.InitialAmount
	out = append(out, value)
	for y := 1; y <= horizon; y++ {
		for m := 0; m < monthsPerYear; m++ {
			value *= monthlyGrowth
			if y <= cfg.ContributionYears {
				value += cfg.MonthlyContribution
			}
		}
		out = append(out, value)
	}
	return out
}
