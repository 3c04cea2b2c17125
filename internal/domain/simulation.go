package domain

// DefaultPathCount is the number of independent Monte Carlo paths simulated
// per invocation.
const DefaultPathCount = 5000

// SimulationConfig is the immutable input to one projection run. Rates are
// expressed in percent (5 means 5%), amounts in whole currency units.
type SimulationConfig struct {
	InitialAmount       float64 `json:"initial_amount"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualReturnRate    float64 `json:"annual_return_rate"`
	Volatility          float64 `json:"volatility"`
	InflationRate       float64 `json:"inflation_rate"`
	ExpenseRatio        float64 `json:"expense_ratio"`
	ContributionYears   int     `json:"contribution_years"`
	WithdrawalStartYear int     `json:"withdrawal_start_year"`
	WithdrawalYears     int     `json:"withdrawal_years"`
	TaxFree             bool    `json:"tax_free"`

	// Withdrawal selects the decumulation strategy. The zero value means no
	// withdrawals are taken even during withdrawal years.
	Withdrawal WithdrawalPlan `json:"-"`

	// InflationAdjustedWithdrawal grows a fixed-amount withdrawal by
	// (1+inflation)^(1/12) every month. Ignored in rate mode.
	InflationAdjustedWithdrawal bool    `json:"inflation_adjusted_withdrawal"`
	MonthlyPensionIncome        float64 `json:"monthly_pension_income"`
}

type withdrawalKind int

const (
	withdrawalNone withdrawalKind = iota
	withdrawalFixedAmount
	withdrawalRateBased
)

// WithdrawalPlan is a tagged variant over the two decumulation strategies.
// Construct it with FixedAmountWithdrawal or RateBasedWithdrawal; the two
// modes are structurally exclusive, so "both selectors populated" cannot be
// represented and is rejected at the config boundary instead.
type WithdrawalPlan struct {
	kind          withdrawalKind
	monthlyAmount float64
	annualRate    float64
}

// FixedAmountWithdrawal withdraws a fixed nominal amount every month.
func FixedAmountWithdrawal(monthlyAmount float64) WithdrawalPlan {
	return WithdrawalPlan{kind: withdrawalFixedAmount, monthlyAmount: monthlyAmount}
}

// RateBasedWithdrawal locks in a monthly amount equal to annualRate percent
// of the path balance at the first withdrawing month.
func RateBasedWithdrawal(annualRate float64) WithdrawalPlan {
	return WithdrawalPlan{kind: withdrawalRateBased, annualRate: annualRate}
}

// IsZero reports whether no withdrawal strategy was selected.
func (p WithdrawalPlan) IsZero() bool { return p.kind == withdrawalNone }

// FixedAmount returns the monthly amount and whether fixed-amount mode is
// selected.
func (p WithdrawalPlan) FixedAmount() (float64, bool) {
	return p.monthlyAmount, p.kind == withdrawalFixedAmount
}

// AnnualRate returns the withdrawal rate in percent and whether rate mode is
// selected.
func (p WithdrawalPlan) AnnualRate() (float64, bool) {
	return p.annualRate, p.kind == withdrawalRateBased
}

// YearlySnapshot is the per-year reduction of the path ensemble. Percentiles
// are taken over all paths at the year boundary; Principal is the sum of all
// contributions to date, capped at the median outcome. DepletionRate is
// present only for withdrawing years, MedianYearlyWithdrawal only for
// withdrawing years in rate mode.
type YearlySnapshot struct {
	Year                   int      `json:"year"`
	P10                    float64  `json:"p10"`
	P25                    float64  `json:"p25"`
	P50                    float64  `json:"p50"`
	P75                    float64  `json:"p75"`
	P90                    float64  `json:"p90"`
	Principal              float64  `json:"principal"`
	IsContributing         bool     `json:"is_contributing"`
	IsWithdrawing          bool     `json:"is_withdrawing"`
	DepletionRate          *float64 `json:"depletion_rate,omitempty"`
	MedianYearlyWithdrawal *float64 `json:"median_yearly_withdrawal,omitempty"`
}

// DistributionBin is one bucket of the terminal-value histogram. A bin with
// IsDepleted set collects every path that ended at or below zero and always
// has RangeEnd 0.
type DistributionBin struct {
	RangeEnd   float64 `json:"range_end"`
	Count      int     `json:"count"`
	IsDepleted bool    `json:"is_depleted"`
}

// SimulationResult aggregates the full projection output. It is immutable
// once returned.
type SimulationResult struct {
	Years                []YearlySnapshot  `json:"years"`
	FailureProbability   float64           `json:"failure_probability"`
	DepletionProbability float64           `json:"depletion_probability"`
	Distribution         []DistributionBin `json:"distribution"`
}

// FinalYear returns the last snapshot, or nil for an empty projection.
func (r *SimulationResult) FinalYear() *YearlySnapshot {
	if len(r.Years) == 0 {
		return nil
	}
	return &r.Years[len(r.Years)-1]
}
