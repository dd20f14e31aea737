package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Locale is the explicit formatting policy for rendered invoices: regional
// date layout, currency symbol prefix and the local-language display labels
// for session modes. It is injected into the renderer rather than read from
// process locale state so formatting stays reproducible in tests.
type Locale struct {
	DateLayout      string `mapstructure:"date_layout" json:"date_layout"`
	CurrencySymbol  string `mapstructure:"currency_symbol" json:"currency_symbol"`
	IndividualLabel string `mapstructure:"individual_label" json:"individual_label"`
	GroupLabel      string `mapstructure:"group_label" json:"group_label"`
}

// DefaultLocale returns the formatting policy of the business's home region:
// dd/mm/yyyy dates, rand amounts, Afrikaans mode labels.
func DefaultLocale() Locale {
	return Locale{
		DateLayout:      "02/01/2006",
		CurrencySymbol:  "R",
		IndividualLabel: "Individueel",
		GroupLabel:      "Groep",
	}
}

// FormatDate formats t using the locale's date layout.
func (l Locale) FormatDate(t time.Time) string {
	return t.Format(l.DateLayout)
}

// FormatMoney renders a currency amount with two decimal places and the
// currency-symbol prefix, e.g. R1065.00.
func (l Locale) FormatMoney(amount decimal.Decimal) string {
	return l.CurrencySymbol + amount.StringFixed(2)
}

// FormatHours renders an hour count with one decimal place.
func (l Locale) FormatHours(hours decimal.Decimal) string {
	return hours.StringFixed(1)
}

// ModeLabel translates a session mode to its local-language display term.
func (l Locale) ModeLabel(mode SessionMode) string {
	if mode == SessionModeIndividual {
		return l.IndividualLabel
	}
	return l.GroupLabel
}
