package services_test

import (
	"context"

	"github.com/novira-app/novira-backend/internal/core/domain"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock SplitRepository ---
type MockSplitRepository struct {
	mock.Mock
}

func (m *MockSplitRepository) ListUnsettledSplits(ctx context.Context, partyID string) ([]domain.Split, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Split), args.Error(1)
}

func (m *MockSplitRepository) FindSplitByID(ctx context.Context, splitID string) (*domain.Split, error) {
	args := m.Called(ctx, splitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Split), args.Error(1)
}

func (m *MockSplitRepository) MarkSplitPaid(ctx context.Context, splitID string) (bool, error) {
	args := m.Called(ctx, splitID)
	return args.Bool(0), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) GetRateTable(ctx context.Context, reportingCurrency string) (domain.RateTable, error) {
	args := m.Called(ctx, reportingCurrency)
	return args.Get(0).(domain.RateTable), args.Error(1)
}

func (m *MockRateRepository) UpsertRate(ctx context.Context, rate domain.FxRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ComputeBalances(ctx context.Context, viewerID, reportingCurrency string) (*domain.BalanceSummary, error) {
	args := m.Called(ctx, viewerID, reportingCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSummary), args.Error(1)
}

func (m *MockBalanceService) ListPendingSplits(ctx context.Context, viewerID string) ([]domain.Split, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Split), args.Error(1)
}
