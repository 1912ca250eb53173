package models

import "testing"

func TestCurrencyValid(t *testing.T) {
	for _, c := range []Currency{CurrencyUSD, CurrencyEUR, CurrencyMXN, CurrencyCOP, CurrencyARS, CurrencyCLP} {
		if !c.Valid() {
			t.Errorf("%s must be valid", c)
		}
	}
	for _, c := range []Currency{"", "BTC", "ars"} {
		if c.Valid() {
			t.Errorf("%q must be invalid", c)
		}
	}
}
