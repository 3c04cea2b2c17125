package output

import (
	"bytes"
	"fmt"

	"github.com/ryosan-470/mf-dashboard/internal/domain"
)

// ConsoleFormatter renders the projection as a plain-text report: one row
// per year, probabilities, then the terminal-value histogram.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PORTFOLIO PROJECTION")
	fmt.Fprintln(&buf, "====================")
	fmt.Fprintf(&buf, "%4s  %-14s %-14s %-14s %-14s %-14s %-14s %-5s\n",
		"Year", "P10", "P25", "P50", "P75", "P90", "Principal", "Phase")
	for _, y := range result.Years {
		fmt.Fprintf(&buf, "%4d  %-14s %-14s %-14s %-14s %-14s %-14s %-5s",
			y.Year,
			FormatWholeCurrency(y.P10),
			FormatWholeCurrency(y.P25),
			FormatWholeCurrency(y.P50),
			FormatWholeCurrency(y.P75),
			FormatWholeCurrency(y.P90),
			FormatWholeCurrency(y.Principal),
			phaseLabel(y),
		)
		if y.DepletionRate != nil {
			fmt.Fprintf(&buf, "  depleted=%s", FormatProbability(*y.DepletionRate))
		}
		if y.MedianYearlyWithdrawal != nil {
			fmt.Fprintf(&buf, "  median-withdrawal=%s", FormatWholeCurrency(*y.MedianYearlyWithdrawal))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Failure probability (below principal): %s\n", FormatProbability(result.FailureProbability))
	fmt.Fprintf(&buf, "Depletion probability:                 %s\n", FormatProbability(result.DepletionProbability))

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Terminal value distribution:")
	for _, bin := range result.Distribution {
		if bin.IsDepleted {
			fmt.Fprintf(&buf, "  depleted        %6d\n", bin.Count)
			continue
		}
		fmt.Fprintf(&buf, "  ≤ %-12s %6d\n", FormatWholeCurrency(bin.RangeEnd), bin.Count)
	}
	return buf.Bytes(), nil
}

func phaseLabel(y domain.YearlySnapshot) string {
	switch {
	case y.IsContributing && y.IsWithdrawing:
		return "C+W"
	case y.IsContributing:
		return "C"
	case y.IsWithdrawing:
		return "W"
	default:
		return "-"
	}
}
