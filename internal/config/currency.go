package config

import "strings"

var currencySymbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

// CurrencySymbol returns the display symbol for an ISO currency code.
// Unknown codes fall back to pounds.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return sym
	}
	return "£"
}

// Symbol returns the configured currency symbol.
func (c Config) Symbol() string {
	return CurrencySymbol(c.General.Currency)
}

// CurrencyCodes returns the supported currency codes in display order.
func CurrencyCodes() []string {
	return []string{"GBP", "USD", "EUR"}
}
