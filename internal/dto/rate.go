package dto

import (
	"time"

	"github.com/novira-app/novira-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertRateRequest defines the structure for creating or replacing a live
// exchange rate. UnitsPerBase is how many units of CurrencyCode one unit of
// BaseCurrency buys.
type UpsertRateRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	BaseCurrency  string          `json:"baseCurrency" binding:"required,len=3,uppercase"`
	UnitsPerBase  decimal.Decimal `json:"unitsPerBase" binding:"required,dgt0"`
	DateEffective time.Time       `json:"dateEffective" binding:"required"`
}

// RateResponse defines the structure for API responses containing rate details.
type RateResponse struct {
	CurrencyCode  string          `json:"currencyCode"`
	BaseCurrency  string          `json:"baseCurrency"`
	UnitsPerBase  decimal.Decimal `json:"unitsPerBase"`
	DateEffective time.Time       `json:"dateEffective"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToRateResponse converts a domain.FxRate to RateResponse DTO
func ToRateResponse(rate *domain.FxRate) RateResponse {
	return RateResponse{
		CurrencyCode:  rate.CurrencyCode,
		BaseCurrency:  rate.BaseCurrency,
		UnitsPerBase:  rate.UnitsPerBase,
		DateEffective: rate.DateEffective,
		LastUpdatedAt: rate.LastUpdatedAt,
		LastUpdatedBy: rate.LastUpdatedBy,
	}
}

// RateTableResponse is the full table for a reporting currency.
type RateTableResponse struct {
	ReportingCurrency string                     `json:"reportingCurrency"`
	Rates             map[string]decimal.Decimal `json:"rates"`
}

// ToRateTableResponse converts a domain.RateTable to RateTableResponse DTO
func ToRateTableResponse(table domain.RateTable) RateTableResponse {
	return RateTableResponse{
		ReportingCurrency: table.ReportingCurrency,
		Rates:             table.Rates,
	}
}
