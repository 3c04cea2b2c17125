package simulation

import "github.com/ryosan-470/mf-dashboard/internal/domain"

// YearPhase classifies one simulated year. Contribution and withdrawal may
// overlap, and both may be off when the withdrawal start is later than the
// last contribution year.
type YearPhase struct {
	Year         int
	Contributing bool
	Withdrawing  bool
}

// TotalYears returns the simulated horizon: long enough to cover both the
// contribution phase and the full withdrawal window.
func TotalYears(cfg *domain.SimulationConfig) int {
	horizon := cfg.WithdrawalStartYear + cfg.WithdrawalYears
	if cfg.ContributionYears > horizon {
		horizon = cfg.ContributionYears
	}
	return horizon
}

// Schedule returns the phase for every year 1..TotalYears. Zero contribution
// or withdrawal years simply produce no years with that flag set.
func Schedule(cfg *domain.SimulationConfig) []YearPhase {
	horizon := TotalYears(cfg)
	phases := make([]YearPhase, 0, horizon)
	for y := 1; y <= horizon; y++ {
		phases = append(phases, YearPhase{
			Year:         y,
			Contributing: y <= cfg.ContributionYears,
			Withdrawing:  cfg.WithdrawalStartYear < y && y <= cfg.WithdrawalStartYear+cfg.WithdrawalYears,
		})
	}
	return phases
}
