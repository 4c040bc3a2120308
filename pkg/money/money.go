// Package money formatea montos para pantalla y exportaciones. Es solo presentación:
// ningún monto formateado se envía al API remoto.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter imprime montos con el símbolo de la moneda y las convenciones del locale.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter construye el formateador. locale es una etiqueta BCP 47 (pt-BR, es-CO)
// y code un código ISO 4217 (BRL, COP).
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("money: locale inválido %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("money: moneda inválida %q: %w", code, err)
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

// Default formateador pt-BR / BRL, el del comercio original.
func Default() *Formatter {
	return &Formatter{printer: message.NewPrinter(language.BrazilianPortuguese), unit: currency.BRL}
}

// Format devuelve el monto con símbolo, redondeado a 2 decimales.
func (f *Formatter) Format(amount decimal.Decimal) string {
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(amount.Round(2).InexactFloat64())))
}

// Currency código ISO de la moneda configurada.
func (f *Formatter) Currency() string {
	return f.unit.String()
}
