package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/novira-app/novira-backend/internal/apperrors"
	"github.com/novira-app/novira-backend/internal/core/domain"
	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/novira-app/novira-backend/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// defaultPrecision is the minor-unit precision used when a currency is not
// registered. Two decimal places covers the overwhelming majority of codes.
const defaultPrecision int32 = 2

// rateService provides rate lookup and currency normalization.
type rateService struct {
	BaseService
	rateRepo    portsrepo.RateRepositoryFacade
	currencySvc portssvc.CurrencyReaderSvc

	mu         sync.Mutex
	precisions map[string]int32
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc) portssvc.RateSvcFacade {
	return &rateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
		precisions:  make(map[string]int32),
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// GetRateTable retrieves the live rate table for a reporting currency.
func (s *rateService) GetRateTable(ctx context.Context, reportingCurrency string) (domain.RateTable, error) {
	if len(reportingCurrency) != 3 {
		return domain.RateTable{}, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	table, err := s.rateRepo.GetRateTable(ctx, reportingCurrency)
	if err != nil {
		return domain.RateTable{}, fmt.Errorf("failed to get rate table in service: %w", err)
	}
	return table, nil
}

// Normalize converts a split's amount into the table's reporting currency.
//
// The captured historical rate wins over the live table when it targets the
// reporting currency, so old balances do not drift when live rates move. A
// missing live rate degrades to 1:1 rather than failing the computation;
// that path is logged and counted so it is never mistaken for a true value.
func (s *rateService) Normalize(ctx context.Context, split domain.Split, table domain.RateTable) decimal.Decimal {
	if split.Currency == table.ReportingCurrency {
		// Exact identity, no rounding round-trip.
		return split.Amount
	}

	precision := s.reportingPrecision(ctx, table.ReportingCurrency)

	if split.HasHistoricalRate(table.ReportingCurrency) {
		return split.Amount.Mul(*split.ExchangeRate).Round(precision)
	}

	rate, ok := table.Rate(split.Currency)
	if !ok || rate.LessThanOrEqual(decimal.Zero) {
		s.LogWarn(ctx, "No exchange rate known, degrading to 1:1",
			slog.String("split_id", split.SplitID),
			slog.String("from", split.Currency),
			slog.String("to", table.ReportingCurrency))
		metrics.DegradedConversions.Inc()
		return split.Amount
	}

	// table rates are units-of-currency per 1 reporting unit.
	return split.Amount.Div(rate).Round(precision)
}

// UpsertRate validates and persists a live exchange rate.
func (s *rateService) UpsertRate(ctx context.Context, req dto.UpsertRateRequest, updaterUserID string) (*domain.FxRate, error) {
	if req.UnitsPerBase.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.CurrencyCode == req.BaseCurrency {
		return nil, fmt.Errorf("%w: rate currency and base currency cannot be the same", apperrors.ErrValidation)
	}

	// Both currencies must be registered before rates are accepted.
	for _, code := range []string{req.CurrencyCode, req.BaseCurrency} {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	now := time.Now()
	rate := domain.FxRate{
		CurrencyCode:  req.CurrencyCode,
		BaseCurrency:  req.BaseCurrency,
		UnitsPerBase:  req.UnitsPerBase,
		DateEffective: req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}

	if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate in service: %w", err)
	}

	return &rate, nil
}

// reportingPrecision resolves (and memoizes) the minor-unit precision of a
// currency. Unknown currencies round to two decimal places.
func (s *rateService) reportingPrecision(ctx context.Context, code string) int32 {
	s.mu.Lock()
	if p, ok := s.precisions[code]; ok {
		s.mu.Unlock()
		return p
	}
	s.mu.Unlock()

	precision := defaultPrecision
	if s.currencySvc != nil {
		if currency, err := s.currencySvc.GetCurrencyByCode(ctx, code); err == nil && currency != nil {
			precision = int32(currency.Precision)
		}
	}

	s.mu.Lock()
	s.precisions[code] = precision
	s.mu.Unlock()
	return precision
}
