package domain

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice renders an amount in rupees with Indian digit grouping.
func FormatPrice(amount float64) string {
	return pricePrinter.Sprint(currency.Symbol(currency.INR.Amount(amount)))
}
