// Package format renders prices for the terminal views.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rupiahPrefix = "Rp "

var printer = message.NewPrinter(language.Indonesian)

// Rupiah formats whole rupiah with Indonesian grouping, e.g. "Rp 150.000".
func Rupiah[T ~int | ~int64 | ~float64](price T) string {
	return rupiahPrefix + printer.Sprint(number.Decimal(price, number.MaxFractionDigits(0)))
}

// RupiahWithDecimal keeps two fraction digits, e.g. "Rp 1.500,50".
func RupiahWithDecimal[T ~int | ~int64 | ~float64](price T) string {
	return rupiahPrefix + printer.Sprint(number.Decimal(price, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
