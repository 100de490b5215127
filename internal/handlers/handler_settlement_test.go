package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/novira-app/novira-backend/internal/apperrors"
	"github.com/novira-app/novira-backend/internal/core/domain"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/dto"
	"github.com/novira-app/novira-backend/internal/handlers"
	"github.com/novira-app/novira-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) Settle(ctx context.Context, splitID string) error {
	args := m.Called(ctx, splitID)
	return args.Error(0)
}

func (m *MockSettlementService) SettleBatch(ctx context.Context, splitIDs []string) (*domain.BatchSettlementResult, error) {
	args := m.Called(ctx, splitIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchSettlementResult), args.Error(1)
}

var _ portssvc.SettlementSvcFacade = (*MockSettlementService)(nil)

// --- Test Suite ---
type SettlementHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockSettlementService
	jwtSecret   string
}

func (suite *SettlementHandlerTestSuite) generateTestToken(userID string) string {
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

func (suite *SettlementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockSettlementService)

	v1 := suite.router.Group("/api/v1")
	noLimit := func(c *gin.Context) { c.Next() }
	handlers.RegisterSettlementRoutes(v1, suite.mockService, noLimit)
}

func (suite *SettlementHandlerTestSuite) doRequest(method, path string, body []byte, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SettlementHandlerTestSuite) TestSettleSplit_Success() {
	splitID := uuid.NewString()
	suite.mockService.On("Settle", mock.Anything, splitID).Return(nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/splits/"+splitID+"/settle", nil, uuid.NewString())

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *SettlementHandlerTestSuite) TestSettleSplit_NotFound() {
	splitID := uuid.NewString()
	suite.mockService.On("Settle", mock.Anything, splitID).Return(apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/splits/"+splitID+"/settle", nil, uuid.NewString())

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SettlementHandlerTestSuite) TestSettleSplit_Unauthorized() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/splits/abc/settle", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Settle")
}

func (suite *SettlementHandlerTestSuite) TestSettleBatch_ReportsPartialFailure() {
	ids := []string{"s1", "s2"}
	suite.mockService.On("SettleBatch", mock.Anything, ids).Return(&domain.BatchSettlementResult{
		Succeeded: []string{"s1"},
		Failed:    []domain.FailedSettlement{{SplitID: "s2", Err: apperrors.ErrNotFound}},
	}, nil).Once()

	body, _ := json.Marshal(dto.SettleBatchRequest{SplitIDs: ids})
	w := suite.doRequest(http.MethodPost, "/api/v1/settlements/batch", body, uuid.NewString())

	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.SettleBatchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"s1"}, resp.Succeeded)
	suite.Require().Len(resp.Failed, 1)
	suite.Equal("s2", resp.Failed[0].SplitID)
}

func (suite *SettlementHandlerTestSuite) TestSettleBatch_InvalidBody() {
	w := suite.doRequest(http.MethodPost, "/api/v1/settlements/batch", []byte(`{"splitIDs": "nope"}`), uuid.NewString())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "SettleBatch")
}

func TestSettlementHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementHandlerTestSuite))
}
