package view

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/tally/internal/expense"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders an amount as Indian rupees, e.g. "₹ 1,500.00".
func FormatAmount(m expense.Money) string {
	return printer.Sprint(currency.Symbol(currency.INR.Amount(m.Decimal().InexactFloat64())))
}

func FormatDate(d expense.Date) string {
	return d.Time().Format("02 Jan 2006")
}

// Pluralize returns "1 transaction" or "n transactions".
func Pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}

	return fmt.Sprintf("%d %ss", n, noun)
}
