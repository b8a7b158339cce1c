package view

import (
	"github.com/dmarques/budgeteer/internal/budget"
	"github.com/dmarques/budgeteer/internal/money"
)

// dateLayouts maps the stored date-format preference tokens to Go
// reference layouts.
var dateLayouts = map[string]string{
	"MM/dd/yyyy":   "01/02/2006",
	"dd/MM/yyyy":   "02/01/2006",
	"yyyy-MM-dd":   "2006-01-02",
	"MMM dd, yyyy": "Jan 02, 2006",
}

// DateFormats lists the selectable date-format preferences, in display
// order.
func DateFormats() []string {
	return []string{"MM/dd/yyyy", "dd/MM/yyyy", "yyyy-MM-dd", "MMM dd, yyyy"}
}

// FormatAmount renders an amount per the currency preference.
func FormatAmount(amount float64, s budget.Settings) string {
	return money.Format(amount, s.Currency)
}

// FormatSignedAmount renders a transaction amount with its +/- sign.
func FormatSignedAmount(tx budget.Transaction, s budget.Settings) string {
	return money.FormatSigned(tx.Amount, s.Currency, tx.Type == budget.TypeIncome)
}

// FormatDate renders a date per the date-format preference, falling
// back to ISO when the preference is unrecognized.
func FormatDate(d budget.Date, s budget.Settings) string {
	layout, ok := dateLayouts[s.DateFormat]
	if !ok {
		layout = "2006-01-02"
	}

	return d.Time().Format(layout)
}
