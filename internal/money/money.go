// Package money formats integer amounts for display. Formatting is biased to
// Argentine Spanish conventions: "." groups thousands, "," separates decimals.
package money

import (
	"strconv"
	"strings"

	"github.com/estampaviva/estampa-api/internal/models"
)

type currencyFormat struct {
	symbol   string
	decimals int
}

var formats = map[models.Currency]currencyFormat{
	models.CurrencyARS: {symbol: "$", decimals: 0},
	models.CurrencyCLP: {symbol: "$", decimals: 0},
	models.CurrencyCOP: {symbol: "$", decimals: 0},
	models.CurrencyUSD: {symbol: "US$", decimals: 2},
	models.CurrencyEUR: {symbol: "€", decimals: 2},
	models.CurrencyMXN: {symbol: "MX$", decimals: 2},
}

// Format renders an integer amount in the store's base currency unit as a
// localized display string, e.g. Format(1500, ARS) == "$ 1.500". Unknown
// currencies fail closed with a plain "$" prefix. Negative amounts keep
// their sign ahead of the symbol.
func Format(amount int, currency models.Currency) string {
	f, ok := formats[currency]
	if !ok {
		f = currencyFormat{symbol: "$", decimals: 0}
	}

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := f.symbol + " " + group(strconv.Itoa(amount))
	if f.decimals > 0 {
		s += "," + strings.Repeat("0", f.decimals)
	}
	return sign + s
}

// group inserts "." thousands separators into a digit string.
func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
