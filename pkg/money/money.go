// Package money formatea importes de honorarios según la divisa configurada.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formatea importes en una divisa ISO 4217 con separadores de miles en inglés.
type Formatter struct {
	unit    currency.Unit
	scale   int
	printer *message.Printer
}

// NewFormatter valida el código ISO (USD, EUR, COP...).
func NewFormatter(code string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("divisa %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return &Formatter{
		unit:    unit,
		scale:   scale,
		printer: message.NewPrinter(language.English),
	}, nil
}

// Code devuelve el código ISO de la divisa.
func (f *Formatter) Code() string { return f.unit.String() }

// Format devuelve p.ej. "USD 125,000.00".
func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Round(int32(f.scale)).Float64()
	return f.unit.String() + " " + f.printer.Sprintf(fmt.Sprintf("%%.%df", f.scale), v)
}
