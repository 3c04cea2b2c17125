package simulation

import (
	"math"

	"github.com/ryosan-470/mf-dashboard/internal/domain"
)

// CapitalGainsTaxRate is the flat rate applied to the gain portion of every
// withdrawal (Japanese capital-gains taxation: 20.315%).
const CapitalGainsTaxRate = 0.20315

// withdrawer holds the decumulation state shared by all paths plus the
// per-path buffers. One instance lives for the duration of a Run.
type withdrawer struct {
	taxRate          float64
	pension          float64
	monthlyInflation float64 // (1+inflation)^(1/12)

	// Fixed-amount mode.
	fixedMode   bool
	fixedAmount float64 // running gross need, grown monthly when adjusted
	adjusted    bool

	// Rate mode.
	rateMode bool
	rate     float64   // annual percent
	locked   []float64 // per-path nominal lock-in
	isLocked []bool
	deflator float64 // shared real-terms decay of the nominal lock-in

	// Per-path net withdrawals of the current year, rate mode only.
	yearlyWithdrawn []float64
}

func newWithdrawer(cfg *domain.SimulationConfig, paths int) *withdrawer {
	w := &withdrawer{
		taxRate:          CapitalGainsTaxRate,
		pension:          cfg.MonthlyPensionIncome,
		monthlyInflation: math.Pow(1+cfg.InflationRate/100, 1.0/12),
		deflator:         1,
	}
	if cfg.TaxFree {
		w.taxRate = 0
	}
	if amount, ok := cfg.Withdrawal.FixedAmount(); ok {
		w.fixedMode = true
		w.fixedAmount = amount
		w.adjusted = cfg.InflationAdjustedWithdrawal
	}
	if rate, ok := cfg.Withdrawal.AnnualRate(); ok {
		w.rateMode = true
		w.rate = rate
		w.locked = make([]float64, paths)
		w.isLocked = make([]bool, paths)
		w.yearlyWithdrawn = make([]float64, paths)
	}
	return w
}

// apply takes one month's withdrawal from path i. The caller guarantees
// value > 0 and floors the returned value at zero.
func (w *withdrawer) apply(i int, value, basis float64) (float64, float64) {
	var gross float64
	switch {
	case w.fixedMode:
		gross = w.fixedAmount
	case w.rateMode:
		if !w.isLocked[i] {
			w.locked[i] = value * w.rate / 100 / 12
			w.isLocked[i] = true
		}
		gross = w.locked[i] * w.deflator
	default:
		return value, basis
	}

	net := gross - w.pension
	if net <= 0 {
		return value, basis
	}

	// Gain ratio is evaluated before the withdrawal reduces the balance.
	gainRatio := (value - basis) / value
	if gainRatio < 0 {
		gainRatio = 0
	}
	tax := net * gainRatio * w.taxRate

	ratio := net / value
	if ratio > 1 {
		ratio = 1
	}
	basis *= 1 - ratio
	value -= net + tax

	if w.rateMode {
		w.yearlyWithdrawn[i] += net
	}
	return value, basis
}

// endMonth advances the shared monthly factors after all paths have been
// stepped: the fixed amount compounds with inflation when adjusted, the
// rate-mode nominal lock-in decays in real terms.
func (w *withdrawer) endMonth() {
	if w.fixedMode && w.adjusted {
		w.fixedAmount *= w.monthlyInflation
	}
	if w.rateMode {
		w.deflator /= w.monthlyInflation
	}
}

// endYear resets the per-path yearly withdrawal totals.
func (w *withdrawer) endYear() {
	for i := range w.yearlyWithdrawn {
		w.yearlyWithdrawn[i] = 0
	}
}
