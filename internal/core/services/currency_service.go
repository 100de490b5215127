package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/novira-app/novira-backend/internal/apperrors"
	"github.com/novira-app/novira-backend/internal/core/domain"
	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/dto"
)

// currencyService provides business logic for currencies.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency persists a new currency after validation.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	// Format validation (required, len=3, uppercase) is handled by DTO binding tags.
	now := time.Now()

	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	return &currency, nil
}

// GetCurrencyByCode retrieves a specific currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if len(currencyCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		// Repository layer handles ErrNotFound mapping
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves all available currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
