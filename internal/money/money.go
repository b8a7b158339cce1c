// Package money renders stored amounts for display. Formatting follows
// the currency preference in settings and never changes stored values.
package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "CA$",
	"AUD": "A$",
	"JPY": "¥",
	"INR": "₹",
}

// Currencies lists the selectable currency codes, in display order.
func Currencies() []string {
	return []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "INR"}
}

// Valid reports whether code is a recognized ISO 4217 currency we can
// render a symbol for.
func Valid(code string) bool {
	if _, err := currency.ParseISO(code); err != nil {
		return false
	}

	_, ok := symbols[code]

	return ok
}

// Symbol returns the display symbol for a currency code, falling back to
// the code itself for anything unrecognized.
func Symbol(code string) string {
	if sym, ok := symbols[code]; ok {
		return sym
	}

	return code
}

var printer = message.NewPrinter(language.English)

// Format renders an amount with its currency symbol and grouped digits,
// for example Format(1234.5, "USD") == "$1,234.50".
func Format(amount float64, code string) string {
	return printer.Sprintf("%s%.2f", Symbol(code), amount)
}

// FormatSigned prefixes income with + and expenses with -, the way
// transaction rows are listed.
func FormatSigned(amount float64, code string, income bool) string {
	sign := "-"
	if income {
		sign = "+"
	}

	return sign + Format(amount, code)
}
