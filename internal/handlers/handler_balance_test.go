package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/novira-app/novira-backend/internal/core/domain"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/novira-app/novira-backend/internal/handlers"
	"github.com/novira-app/novira-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

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

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Mock SimplifyService ---
type MockSimplifyService struct {
	mock.Mock
}

func (m *MockSimplifyService) SimplifiedPayments(ctx context.Context, viewerID, reportingCurrency string) ([]domain.SimplifiedPayment, error) {
	args := m.Called(ctx, viewerID, reportingCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SimplifiedPayment), args.Error(1)
}

var _ portssvc.SimplifySvcFacade = (*MockSimplifyService)(nil)

// --- Test Suite ---
type BalanceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockBalance  *MockBalanceService
	mockSimplify *MockSimplifyService
	jwtSecret    string
	viewerID     string
}

func (suite *BalanceHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "novira-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BalanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.viewerID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockBalance = new(MockBalanceService)
	suite.mockSimplify = new(MockSimplifyService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterBalanceRoutes(v1, suite.mockBalance, suite.mockSimplify, "USD")
}

func (suite *BalanceHandlerTestSuite) doGet(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.viewerID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *BalanceHandlerTestSuite) TestGetBalances_DefaultsToConfiguredCurrency() {
	suite.mockBalance.On("ComputeBalances", mock.Anything, suite.viewerID, "USD").Return(&domain.BalanceSummary{
		ViewerID:      suite.viewerID,
		Currency:      "USD",
		TotalOwed:     decimal.RequireFromString("30.00"),
		TotalOwedToMe: decimal.RequireFromString("10.00"),
		Graph: &domain.PairwiseGraph{
			Currency: "USD",
			Edges: []domain.NetBalance{
				{DebtorID: suite.viewerID, CreditorID: "bob", Amount: decimal.RequireFromString("20.00")},
			},
		},
	}, nil).Once()

	w := suite.doGet("/api/v1/balances")

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.BalanceSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.Currency)
	suite.True(resp.TotalOwed.Equal(decimal.RequireFromString("30.00")))
	suite.Require().Len(resp.Pairwise, 1)
	suite.Equal("bob", resp.Pairwise[0].CreditorID)
}

func (suite *BalanceHandlerTestSuite) TestGetBalances_ExplicitCurrencyIsUppercased() {
	suite.mockBalance.On("ComputeBalances", mock.Anything, suite.viewerID, "EUR").Return(&domain.BalanceSummary{
		ViewerID: suite.viewerID,
		Currency: "EUR",
		Graph:    &domain.PairwiseGraph{Currency: "EUR"},
	}, nil).Once()

	w := suite.doGet("/api/v1/balances?currency=eur")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockBalance.AssertExpectations(suite.T())
}

func (suite *BalanceHandlerTestSuite) TestGetBalances_BadCurrency() {
	w := suite.doGet("/api/v1/balances?currency=DOLLARS")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBalance.AssertNotCalled(suite.T(), "ComputeBalances")
}

func (suite *BalanceHandlerTestSuite) TestGetSimplifiedPayments_Success() {
	suite.mockSimplify.On("SimplifiedPayments", mock.Anything, suite.viewerID, "USD").Return([]domain.SimplifiedPayment{
		{FromID: suite.viewerID, ToID: "bob", Amount: decimal.RequireFromString("20.00"), SplitIDs: []string{"s1", "s2"}},
	}, nil).Once()

	w := suite.doGet("/api/v1/balances/simplified")

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp []dto.SimplifiedPaymentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal([]string{"s1", "s2"}, resp[0].SplitIDs)
}

func (suite *BalanceHandlerTestSuite) TestGetSimplifiedPayments_EmptyPlan() {
	suite.mockSimplify.On("SimplifiedPayments", mock.Anything, suite.viewerID, "USD").
		Return([]domain.SimplifiedPayment{}, nil).Once()

	w := suite.doGet("/api/v1/balances/simplified")

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func TestBalanceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceHandlerTestSuite))
}
