package services

import (
	"context"

	"github.com/novira-app/novira-backend/internal/core/domain"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// RateReaderSvc defines read operations for exchange rates and conversion
type RateReaderSvc interface {
	// GetRateTable retrieves the live rate table for a reporting currency.
	GetRateTable(ctx context.Context, reportingCurrency string) (domain.RateTable, error)

	// Normalize converts a split's amount into the reporting currency,
	// preferring the split's captured historical rate over the live table
	// and degrading to 1:1 when no rate is known.
	Normalize(ctx context.Context, split domain.Split, table domain.RateTable) decimal.Decimal
}

// RateWriterSvc defines write operations for exchange rates
type RateWriterSvc interface {
	// UpsertRate validates and persists a live exchange rate.
	UpsertRate(ctx context.Context, req dto.UpsertRateRequest, updaterUserID string) (*domain.FxRate, error)
}

// RateSvcFacade combines all rate-related service interfaces
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
}
