// Package format renders figures for people: grouped thousands, two decimals.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns amount with the given symbol and thousands separators
// (e.g., "-$1,234.56"). An empty symbol yields the bare number.
func Currency(amount float64, symbol string) string {
	formatted := NumericCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Months renders a month count such as "5.68 months" or "1 month".
func Months(months float64) string {
	if months == 1 {
		return "1 month"
	}
	return printer.Sprintf("%v months", months)
}

// Percentage renders a percentage such as "111.2%".
func Percentage(pct float64) string {
	return printer.Sprintf("%v%%", pct)
}

// Number renders a plain quantity with locale grouping.
func Number(n float64) string {
	return printer.Sprintf("%v", n)
}
