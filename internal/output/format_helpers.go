package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	pdecimal "github.com/ryosan-470/mf-dashboard/pkg/decimal"
)

// FormatCurrency renders a float amount as a currency string with two
// decimal places.
func FormatCurrency(v float64) string {
	return pdecimal.NewMoney(v).Format()
}

// FormatWholeCurrency renders a float amount rounded to whole units, for
// large portfolio values where cents are noise.
func FormatWholeCurrency(v float64) string {
	return "¥" + pdecimal.NewMoney(v).RoundWhole().String()
}

// FormatProbability renders a 0..1 probability as a percentage with one
// decimal place.
func FormatProbability(p float64) string {
	return decimal.NewFromFloat(p*100).StringFixed(1) + "%"
}

func intToString(v int) string {
	return strconv.Itoa(v)
}

func boolToString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
