package currency

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// round rounds half away from zero on the decimal form of v. Non-finite
// values pass through untouched.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// FormatUSD renders a reference amount as "$1,234.56".
func FormatUSD(v float64) string {
	r := round(v, 2)
	if r < 0 {
		return "-$" + printer.Sprintf("%.2f", -r)
	}

	return "$" + printer.Sprintf("%.2f", r)
}

// FormatLBP renders an LBP amount without decimals, e.g. "LBP 895,000".
func FormatLBP(v float64) string {
	return "LBP " + printer.Sprintf("%.0f", round(v, 0))
}

// FormatAmount renders an amount in its own currency, e.g. "895,000 LBP".
// Whole LBP amounts drop the decimals.
func FormatAmount(amount float64, c Currency) string {
	if c == LBP {
		if r := round(amount, 0); r == amount {
			return printer.Sprintf("%.0f", r) + " " + string(c)
		}
	}

	return printer.Sprintf("%.2f", round(amount, 2)) + " " + string(c)
}
