package money

import (
	"testing"

	"github.com/estampaviva/estampa-api/internal/models"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount   int
		currency models.Currency
		want     string
	}{
		{0, models.CurrencyARS, "$ 0"},
		{500, models.CurrencyARS, "$ 500"},
		{1500, models.CurrencyARS, "$ 1.500"},
		{1234567, models.CurrencyARS, "$ 1.234.567"},
		{1500, models.CurrencyCLP, "$ 1.500"},
		{1500, models.CurrencyCOP, "$ 1.500"},
		{1500, models.CurrencyUSD, "US$ 1.500,00"},
		{1500, models.CurrencyEUR, "€ 1.500,00"},
		{1500, models.CurrencyMXN, "MX$ 1.500,00"},
		{-1500, models.CurrencyARS, "-$ 1.500"},
	}

	for _, tt := range tests {
		if got := Format(tt.amount, tt.currency); got != tt.want {
			t.Errorf("Format(%d, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestFormatUnknownCurrencyFailsClosed(t *testing.T) {
	if got := Format(1500, models.Currency("XXX")); got != "$ 1.500" {
		t.Errorf("unknown currency: got %q, want fallback %q", got, "$ 1.500")
	}
}

func TestFormatDeterministic(t *testing.T) {
	a := Format(987654321, models.CurrencyARS)
	b := Format(987654321, models.CurrencyARS)
	if a != b {
		t.Errorf("formatting is not deterministic: %q vs %q", a, b)
	}
}
