package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryosan-470/mf-dashboard/internal/domain"
)

func runSimulation(t *testing.T, cfg domain.SimulationConfig) *domain.SimulationResult {
	t.Helper()
	return NewSimulator().Run(cfg)
}

// assertResultInvariants checks the properties that must hold for every
// configuration: ordered percentiles, probability ordering, bin counts.
func assertResultInvariants(t *testing.T, result *domain.SimulationResult) {
	t.Helper()
	for _, y := range result.Years {
		if !(y.P10 <= y.P25 && y.P25 <= y.P50 && y.P50 <= y.P75 && y.P75 <= y.P90) {
			t.Errorf("year %d: percentiles not ordered: %v %v %v %v %v", y.Year, y.P10, y.P25, y.P50, y.P75, y.P90)
		}
		if y.Principal > y.P50 {
			t.Errorf("year %d: principal %v exceeds median %v", y.Year, y.Principal, y.P50)
		}
		if y.P10 < 0 {
			t.Errorf("year %d: negative path value %v", y.Year, y.P10)
		}
		if (y.DepletionRate != nil) != y.IsWithdrawing {
			t.Errorf("year %d: depletion rate presence %v does not match withdrawing flag %v",
				y.Year, y.DepletionRate != nil, y.IsWithdrawing)
		}
	}

	if result.FailureProbability < result.DepletionProbability {
		t.Errorf("failure probability %v below depletion probability %v",
			result.FailureProbability, result.DepletionProbability)
	}

	total := 0
	for _, b := range result.Distribution {
		total += b.Count
	}
	assert.Equal(t, domain.DefaultPathCount, total, "distribution bins must cover every path exactly once")
}

func TestScenarioAZeroVolatility(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialAmount:       1_000_000,
		AnnualReturnRate:    5,
		Volatility:          0,
		InflationRate:       2,
		ContributionYears:   5,
		WithdrawalStartYear: 5,
		WithdrawalYears:     0,
	}
	result := runSimulation(t, cfg)
	assertResultInvariants(t, result)

	require.Len(t, result.Years, 6)
	year0 := result.Years[0]
	assert.Equal(t, 1_000_000.0, year0.P10)
	assert.Equal(t, 1_000_000.0, year0.P90)
	assert.Equal(t, 1_000_000.0, year0.Principal)

	// Zero volatility collapses the spread at every year.
	for _, y := range result.Years {
		assert.Equal(t, y.P10, y.P90, "year %d", y.Year)
	}
}

func TestScenarioBAccumulationThenWithdrawal(t *testing.T) {
	cfg := domain.SimulationConfig{
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
	result := runSimulation(t, cfg)
	assertResultInvariants(t, result)

	require.Len(t, result.Years, 31)
	assert.GreaterOrEqual(t, result.DepletionProbability, 0.0)
	assert.LessOrEqual(t, result.DepletionProbability, 1.0)

	// Contribution years report no depletion, withdrawal years do.
	assert.Nil(t, result.Years[10].DepletionRate)
	assert.NotNil(t, result.Years[25].DepletionRate)
	// Fixed-amount mode never reports a median withdrawal.
	assert.Nil(t, result.Years[25].MedianYearlyWithdrawal)
}

func TestScenarioCTaxFreeBeatsTaxed(t *testing.T) {
	cfg := domain.SimulationConfig{
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
	taxed := runSimulation(t, cfg)

	cfg.TaxFree = true
	taxFree := runSimulation(t, cfg)

	last := len(taxed.Years) - 1
	assert.Greater(t, taxFree.Years[last].P50, taxed.Years[last].P50,
		"tax-free median at the final withdrawal year must be strictly higher")
}

func TestScenarioDRateModeWithdrawalDecays(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialAmount:       10_000_000,
		AnnualReturnRate:    5,
		Volatility:          0,
		InflationRate:       3,
		ContributionYears:   0,
		WithdrawalStartYear: 0,
		WithdrawalYears:     20,
		Withdrawal:          domain.RateBasedWithdrawal(4),
	}
	result := runSimulation(t, cfg)
	assertResultInvariants(t, result)

	require.Len(t, result.Years, 21)
	var prev float64
	for i, y := range result.Years {
		if i == 0 {
			continue
		}
		require.NotNil(t, y.MedianYearlyWithdrawal, "year %d", y.Year)
		if i > 1 {
			assert.Less(t, *y.MedianYearlyWithdrawal, prev,
				"median yearly withdrawal must strictly decrease (year %d)", y.Year)
		}
		prev = *y.MedianYearlyWithdrawal
	}
}

func TestDeterminism(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialAmount:       5_000_000,
		MonthlyContribution: 30_000,
		AnnualReturnRate:    6,
		Volatility:          18,
		InflationRate:       2,
		ContributionYears:   15,
		WithdrawalStartYear: 15,
		WithdrawalYears:     15,
		Withdrawal:          domain.RateBasedWithdrawal(4),
	}
	first := runSimulation(t, cfg)
	second := runSimulation(t, cfg)
	require.Equal(t, first, second, "identical configs must yield bit-identical results")
}

func TestVolatilityWidensSpread(t *testing.T) {
	base := domain.SimulationConfig{
		InitialAmount:       1_000_000,
		MonthlyContribution: 10_000,
		AnnualReturnRate:    5,
		InflationRate:       2,
		ContributionYears:   20,
	}

	base.Volatility = 10
	narrow := runSimulation(t, base)
	base.Volatility = 20
	wide := runSimulation(t, base)

	last := len(narrow.Years) - 1
	assert.Greater(t,
		wide.Years[last].P90-wide.Years[last].P10,
		narrow.Years[last].P90-narrow.Years[last].P10)
}

func TestNoWithdrawalYearsDisablesDepletionTracking(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialAmount:     1_000_000,
		AnnualReturnRate:  5,
		Volatility:        15,
		InflationRate:     2,
		ContributionYears: 10,
		Withdrawal:        domain.FixedAmountWithdrawal(100_000),
	}
	result := runSimulation(t, cfg)
	assertResultInvariants(t, result)

	assert.Equal(t, 0.0, result.DepletionProbability)
	for _, y := range result.Years {
		assert.Nil(t, y.DepletionRate, "year %d", y.Year)
	}
}

func TestEmptyHorizonYieldsOnlyYearZero(t *testing.T) {
	cfg := domain.SimulationConfig{InitialAmount: 42}
	result := runSimulation(t, cfg)
	require.Len(t, result.Years, 1)
	assert.Equal(t, 42.0, result.Years[0].P50)
	assert.Equal(t, 0.0, result.DepletionProbability)
}

func TestDepletionPathStaysAtZero(t *testing.T) {
	// A huge withdrawal empties every path in the first withdrawing month;
	// later snapshots must stay at zero with full depletion.
	cfg := domain.SimulationConfig{
		InitialAmount:       100_000,
		AnnualReturnRate:    5,
		Volatility:          10,
		InflationRate:       2,
		WithdrawalStartYear: 0,
		WithdrawalYears:     5,
		Withdrawal:          domain.FixedAmountWithdrawal(10_000_000),
	}
	result := runSimulation(t, cfg)
	assertResultInvariants(t, result)

	for _, y := range result.Years[1:] {
		assert.Equal(t, 0.0, y.P90, "year %d", y.Year)
		require.NotNil(t, y.DepletionRate)
		assert.Equal(t, 1.0, *y.DepletionRate)
	}
	assert.Equal(t, 1.0, result.DepletionProbability)
	assert.Equal(t, 1.0, result.FailureProbability)

	require.True(t, result.Distribution[0].IsDepleted)
	assert.Equal(t, domain.DefaultPathCount, result.Distribution[0].Count)
}

func TestPensionOffsetsWithdrawalNeed(t *testing.T) {
	cfg := domain.SimulationConfig{
		InitialAmount:       1_000_000,
		AnnualReturnRate:    5,
		Volatility:          10,
		InflationRate:       2,
		WithdrawalStartYear: 0,
		WithdrawalYears:     10,
		Withdrawal:          domain.FixedAmountWithdrawal(50_000),
	}
	without := runSimulation(t, cfg)

	cfg.MonthlyPensionIncome = 50_000
	with := runSimulation(t, cfg)

	last := len(with.Years) - 1
	// Pension fully covers the withdrawal, so no path is ever reduced.
	assert.Greater(t, with.Years[last].P50, without.Years[last].P50)
	assert.Equal(t, 0.0, *with.Years[last].DepletionRate)
}
