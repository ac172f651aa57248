package engine

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders monetary amounts in a fixed currency and locale. The
// sign convention is part of the core contract: expenses render negative,
// income renders unsigned.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for an ISO 4217 currency code and a BCP 47
// locale tag.
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency code %q: %w", code, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Amount formats an unsigned magnitude, e.g. "$87.50".
func (f *Formatter) Amount(v float64) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(v)))
}

// Signed formats a signed value, prefixing negatives with a minus sign.
func (f *Formatter) Signed(v float64) string {
	if v < 0 {
		return "-" + f.Amount(-v)
	}
	return f.Amount(v)
}

// SummaryFigures renders the three monthly summary figures in display order:
// income, expense (negated), balance.
func (f *Formatter) SummaryFigures(s Summary) [3]string {
	return [3]string{
		f.Amount(s.Income),
		f.Signed(-s.Expense),
		f.Signed(s.Balance),
	}
}
