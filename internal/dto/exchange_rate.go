package dto

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ExchangeRateResponse is a resolved rate for one directed pair.
type ExchangeRateResponse struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
}

// CurrencyResponse is one supported currency.
type CurrencyResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ListCurrenciesResponse wraps the supported currencies, sorted by code.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// ToListCurrenciesResponse converts a code -> name map to a sorted DTO.
func ToListCurrenciesResponse(codes map[string]string) ListCurrenciesResponse {
	list := make([]CurrencyResponse, 0, len(codes))
	for code, name := range codes {
		list = append(list, CurrencyResponse{Code: code, Name: name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return ListCurrenciesResponse{Currencies: list}
}
