// Package format renders numbers for the pt-BR dashboard.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CurrencyPrefix = "R$"

var (
	printer  = message.NewPrinter(language.BrazilianPortuguese)
	thousand = decimal.NewFromInt(1000)
)

// Number scales v below one thousand with a "mil" or "milhões" suffix and
// prints it with two decimals, e.g. Number(1500, "R$") is "R$ 1,50 mil".
func Number(v decimal.Decimal, prefix string) string {
	for _, unit := range []string{"", "mil"} {
		if v.LessThan(thousand) {
			return join(prefix, Decimal(v), unit)
		}
		v = v.Div(thousand)
	}
	return join(prefix, Decimal(v), "milhões")
}

func Currency(v decimal.Decimal) string {
	return Number(v, CurrencyPrefix)
}

func Count(n int) string {
	return Number(decimal.NewFromInt(int64(n)), "")
}

// Decimal prints v with two decimals and pt-BR separators.
func Decimal(v decimal.Decimal) string {
	return printer.Sprintf("%.2f", v.Round(2).InexactFloat64())
}

// Integer prints n with pt-BR thousands separators.
func Integer(n int) string {
	return printer.Sprintf("%d", n)
}

func join(parts ...string) string {
	nonEmpty := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
