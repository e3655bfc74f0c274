package payslip

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders a pay figure with two decimals and no grouping, e.g. "2000.00".
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatMoney renders a pay figure as "$1,234.56". Rounding happens in decimal
// before the locale printer adds grouping, so half-cents round away from zero.
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	f, _ := d.Float64()
	return sign + "$" + moneyPrinter.Sprintf("%.2f", f)
}
