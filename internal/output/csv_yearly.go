package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/ryosan-470/mf-dashboard/internal/domain"
)

// CSVFormatter emits one row per yearly snapshot.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "P10", "P25", "P50", "P75", "P90", "Principal", "Contributing", "Withdrawing", "DepletionRate", "MedianYearlyWithdrawal"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, y := range result.Years {
		depletion := ""
		if y.DepletionRate != nil {
			depletion = strconv.FormatFloat(*y.DepletionRate, 'f', 4, 64)
		}
		median := ""
		if y.MedianYearlyWithdrawal != nil {
			median = strconv.FormatFloat(*y.MedianYearlyWithdrawal, 'f', 0, 64)
		}
		row := []string{
			intToString(y.Year),
			formatFloat(y.P10),
			formatFloat(y.P25),
			formatFloat(y.P50),
			formatFloat(y.P75),
			formatFloat(y.P90),
			formatFloat(y.Principal),
			boolToString(y.IsContributing),
			boolToString(y.IsWithdrawing),
			depletion,
			median,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
