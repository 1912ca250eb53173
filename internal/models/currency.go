package models

// Currency is an ISO 4217 currency code. Prices are integer amounts in the
// currency's base unit; display formatting is handled elsewhere.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyMXN Currency = "MXN"
	CurrencyCOP Currency = "COP"
	CurrencyARS Currency = "ARS"
	CurrencyCLP Currency = "CLP"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyMXN, CurrencyCOP, CurrencyARS, CurrencyCLP:
		return true
	}
	return false
}
