package simulation

import (
	"math"
	"sort"

	"github.com/ryosan-470/mf-dashboard/internal/domain"
)

const monthsPerYear = 12

// Simulator runs the stochastic portfolio projection. It is stateless across
// runs: every Run allocates its own path buffers and a fresh generator, so a
// given configuration always produces the identical result and concurrent
// calls need no coordination.
type Simulator struct {
	Paths  int
	Seed   uint32
	Logger Logger
}

// NewSimulator returns a simulator with the production defaults (5000 paths,
// fixed seed, no logging).
func NewSimulator() *Simulator {
	return &Simulator{Paths: domain.DefaultPathCount, Seed: DefaultSeed, Logger: NopLogger{}}
}

// Run projects cfg across the full horizon and reduces the ensemble into
// yearly percentile bands, failure/depletion probabilities and the terminal
// histogram. It never fails: invalid numeric corner cases are absorbed by
// guards rather than errors.
func (s *Simulator) Run(cfg domain.SimulationConfig) *domain.SimulationResult {
	paths := s.Paths
	if paths <= 0 {
		paths = domain.DefaultPathCount
	}
	logger := s.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	gen := NewGenerator(s.Seed)
	phases := Schedule(&cfg)
	w := newWithdrawer(&cfg, paths)

	// Fixed-size hot-loop buffers, allocated once per invocation.
	values := make([]float64, paths)
	basis := make([]float64, paths)
	scratch := make([]float64, paths)
	for i := range values {
		values[i] = cfg.InitialAmount
		basis[i] = cfg.InitialAmount
	}

	// Drift and volatility are derived once; subtracting inflation from the
	// drift keeps all path values in real (inflation-adjusted) terms.
	mu := (cfg.AnnualReturnRate - cfg.ExpenseRatio) / 100
	sigma := cfg.Volatility / 100
	inflation := cfg.InflationRate / 100
	monthlyDrift := (mu - inflation - sigma*sigma/2) / monthsPerYear
	monthlySigma := sigma / math.Sqrt(monthsPerYear)

	principal := cfg.InitialAmount

	snapshots := make([]domain.YearlySnapshot, 0, len(phases)+1)
	snapshots = append(snapshots, takeSnapshot(0, YearPhase{}, values, scratch, principal, w))

	for _, phase := range phases {
		for month := 0; month < monthsPerYear; month++ {
			for i := 0; i < paths; i++ {
				z := gen.Normal()
				values[i] *= math.Exp(monthlyDrift + monthlySigma*z)
				if phase.Contributing {
					values[i] += cfg.MonthlyContribution
					basis[i] += cfg.MonthlyContribution
				}
				if phase.Withdrawing && values[i] > 0 {
					values[i], basis[i] = w.apply(i, values[i], basis[i])
					if values[i] < 0 {
						values[i] = 0
					}
				}
			}
			if phase.Contributing {
				principal += cfg.MonthlyContribution
			}
			if phase.Withdrawing {
				w.endMonth()
			}
		}
		snapshots = append(snapshots, takeSnapshot(phase.Year, phase, values, scratch, principal, w))
		w.endYear()
	}

	result := &domain.SimulationResult{Years: snapshots}
	result.FailureProbability = failureShare(values, principal)
	if last := result.FinalYear(); last != nil && last.DepletionRate != nil {
		result.DepletionProbability = *last.DepletionRate
	}

	finalSorted := scratch[:paths]
	copy(finalSorted, values)
	sort.Float64s(finalSorted)
	result.Distribution = buildDistribution(finalSorted)

	logger.Debugf("simulated %d paths over %d years: failure=%.4f depletion=%.4f",
		paths, len(phases), result.FailureProbability, result.DepletionProbability)
	return result
}

// failureShare is the fraction of paths whose final value fell below the
// total contributed principal. Every depleted path also fails (principal is
// positive whenever anything was contributed), so this is always at least
// the depletion probability.
func failureShare(values []float64, principal float64) float64 {
	failed := 0
	for _, v := range values {
		if v < principal {
			failed++
		}
	}
	return float64(failed) / float64(len(values))
}
