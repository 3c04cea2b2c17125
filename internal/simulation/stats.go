package simulation

import (
	"math"
	"sort"

	"github.com/ryosan-470/mf-dashboard/internal/domain"
)

// Histogram shape: ten base bins spanning (0, p90], stretched by at most
// five extra bins toward the maximum observed value.
const (
	histogramBaseBins = 10
	histogramMaxBins  = histogramBaseBins + 5
)

// percentileBands reports p10/p25/p50/p75/p90 of an ascending-sorted slice
// using the index convention floor(n*q).
func percentileBands(sorted []float64) (p10, p25, p50, p75, p90 float64) {
	n := len(sorted)
	at := func(q float64) float64 { return sorted[int(float64(n)*q)] }
	return at(0.10), at(0.25), at(0.50), at(0.75), at(0.90)
}

// medianOf returns the median of values using the same index convention as
// percentileBands. scratch must be at least len(values) long.
func medianOf(values, scratch []float64) float64 {
	sorted := scratch[:len(values)]
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[int(float64(len(sorted))*0.50)]
}

// depletedShare is the fraction of paths at or below zero.
func depletedShare(values []float64) float64 {
	depleted := 0
	for _, v := range values {
		if v <= 0 {
			depleted++
		}
	}
	return float64(depleted) / float64(len(values))
}

// takeSnapshot reduces the path ensemble into one yearly record. principal
// is the running sum of all contributions to date and is reported capped at
// the median so the displayed baseline never exceeds the median outcome.
// scratch is reused across years to avoid re-allocating the sort buffer.
func takeSnapshot(year int, phase YearPhase, values, scratch []float64, principal float64, w *withdrawer) domain.YearlySnapshot {
	sorted := scratch[:len(values)]
	copy(sorted, values)
	sort.Float64s(sorted)

	snap := domain.YearlySnapshot{
		Year:           year,
		IsContributing: phase.Contributing,
		IsWithdrawing:  phase.Withdrawing,
	}
	snap.P10, snap.P25, snap.P50, snap.P75, snap.P90 = percentileBands(sorted)
	snap.Principal = math.Min(principal, snap.P50)

	if phase.Withdrawing {
		rate := depletedShare(values)
		snap.DepletionRate = &rate
		if w != nil && w.rateMode {
			median := math.Round(medianOf(w.yearlyWithdrawn, scratch))
			snap.MedianYearlyWithdrawal = &median
		}
	}
	return snap
}

// buildDistribution bins the final path values. Depleted paths (≤ 0) share a
// single bin tagged IsDepleted, omitted when empty. Positive values fall
// into equal-width bins of width max(p90,1)/10; values beyond the last bin
// clamp into it, so every path lands in exactly one bin.
func buildDistribution(finalSorted []float64) []domain.DistributionBin {
	n := len(finalSorted)
	depleted := 0
	for _, v := range finalSorted {
		if v <= 0 {
			depleted++
		}
	}

	p90 := finalSorted[int(float64(n)*0.90)]
	width := math.Max(p90, 1) / histogramBaseBins
	maxValue := finalSorted[n-1]

	bins := histogramBaseBins
	for bins < histogramMaxBins && maxValue > width*float64(bins) {
		bins++
	}

	counts := make([]int, bins)
	for _, v := range finalSorted {
		if v <= 0 {
			continue
		}
		idx := int(math.Ceil(v/width)) - 1
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	dist := make([]domain.DistributionBin, 0, bins+1)
	if depleted > 0 {
		dist = append(dist, domain.DistributionBin{RangeEnd: 0, Count: depleted, IsDepleted: true})
	}
	for k, c := range counts {
		dist = append(dist, domain.DistributionBin{RangeEnd: width * float64(k+1), Count: c})
	}
	return dist
}
