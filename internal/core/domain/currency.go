package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // Minor-unit digits, 2 for most currencies
	AuditFields
}

// FxRate is one persisted live exchange rate: one unit of the base
// (reporting) currency buys UnitsPerBase units of CurrencyCode.
type FxRate struct {
	CurrencyCode  string          `json:"currencyCode"` // Primary Key together with BaseCurrency
	BaseCurrency  string          `json:"baseCurrency"`
	UnitsPerBase  decimal.Decimal `json:"unitsPerBase"` // Must be positive
	DateEffective time.Time       `json:"dateEffective"`
	AuditFields
}

// RateTable is the rate snapshot used for one recompute, keyed by ISO code.
// Each entry is the number of units of that currency per 1 unit of the
// reporting currency, so converting into the reporting currency divides by
// the entry.
type RateTable struct {
	ReportingCurrency string
	Rates             map[string]decimal.Decimal
}

// Rate looks up the units-per-base rate for a currency code.
func (t RateTable) Rate(code string) (decimal.Decimal, bool) {
	r, ok := t.Rates[code]
	return r, ok
}
