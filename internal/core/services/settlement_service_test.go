package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/novira-app/novira-backend/internal/apperrors"
	"github.com/novira-app/novira-backend/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockSplitRepo *MockSplitRepository
	triggered     int
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockSplitRepo = new(MockSplitRepository)
	suite.triggered = 0
}

func (suite *SettlementServiceTestSuite) TestSettle_Success() {
	ctx := context.Background()
	suite.mockSplitRepo.On("MarkSplitPaid", ctx, "s1").Return(true, nil).Once()
	svc := services.NewSettlementService(suite.mockSplitRepo,
		services.WithRecomputeTrigger(func() { suite.triggered++ }))

	err := svc.Settle(ctx, "s1")

	suite.Require().NoError(err)
	suite.Equal(1, suite.triggered)
	suite.mockSplitRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettle_AlreadyPaidIsNoOp() {
	ctx := context.Background()
	suite.mockSplitRepo.On("MarkSplitPaid", ctx, "s1").Return(false, nil).Once()
	svc := services.NewSettlementService(suite.mockSplitRepo,
		services.WithRecomputeTrigger(func() { suite.triggered++ }))

	err := svc.Settle(ctx, "s1")

	suite.Require().NoError(err)
	// Nothing changed, so nothing to recompute.
	suite.Equal(0, suite.triggered)
}

func (suite *SettlementServiceTestSuite) TestSettle_NotFound() {
	ctx := context.Background()
	suite.mockSplitRepo.On("MarkSplitPaid", ctx, "missing").Return(false, apperrors.ErrNotFound).Once()
	svc := services.NewSettlementService(suite.mockSplitRepo)

	err := svc.Settle(ctx, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SettlementServiceTestSuite) TestSettle_EmptyIDRejected() {
	svc := services.NewSettlementService(suite.mockSplitRepo)
	err := svc.Settle(context.Background(), "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestSettleBatch_EmptyIsNoOp() {
	svc := services.NewSettlementService(suite.mockSplitRepo)

	result, err := svc.SettleBatch(context.Background(), nil)

	suite.Require().NoError(err)
	suite.Empty(result.Succeeded)
	suite.Empty(result.Failed)
	suite.mockSplitRepo.AssertNotCalled(suite.T(), "MarkSplitPaid")
}

func (suite *SettlementServiceTestSuite) TestSettleBatch_PartialFailure() {
	ctx := context.Background()
	repoErr := errors.New("deadlock detected")
	suite.mockSplitRepo.On("MarkSplitPaid", ctx, "s1").Return(true, nil).Once()
	suite.mockSplitRepo.On("MarkSplitPaid", ctx, "s2").Return(false, repoErr).Once()
	suite.mockSplitRepo.On("MarkSplitPaid", ctx, "s3").Return(true, nil).Once()
	svc := services.NewSettlementService(suite.mockSplitRepo,
		services.WithRecomputeTrigger(func() { suite.triggered++ }))

	result, err := svc.SettleBatch(ctx, []string{"s1", "s2", "s3"})

	suite.Require().NoError(err)
	suite.Equal([]string{"s1", "s3"}, result.Succeeded)
	suite.Require().Len(result.Failed, 1)
	suite.Equal("s2", result.Failed[0].SplitID)
	suite.ErrorIs(result.Failed[0].Err, repoErr)
	// One trigger per batch, not per split.
	suite.Equal(1, suite.triggered)
}

func (suite *SettlementServiceTestSuite) TestSettleBatch_AlreadyPaidCountsAsSuccess() {
	ctx := context.Background()
	suite.mockSplitRepo.On("MarkSplitPaid", ctx, "s1").Return(false, nil).Once()
	suite.mockSplitRepo.On("MarkSplitPaid", ctx, "s2").Return(false, nil).Once()
	svc := services.NewSettlementService(suite.mockSplitRepo,
		services.WithRecomputeTrigger(func() { suite.triggered++ }))

	result, err := svc.SettleBatch(ctx, []string{"s1", "s2"})

	suite.Require().NoError(err)
	suite.Equal([]string{"s1", "s2"}, result.Succeeded)
	suite.Empty(result.Failed)
	// Nothing actually changed state, so no recompute.
	suite.Equal(0, suite.triggered)
}

func (suite *SettlementServiceTestSuite) TestSettleBatch_CancelledContextFailsRemaining() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := services.NewSettlementService(suite.mockSplitRepo)

	result, err := svc.SettleBatch(ctx, []string{"s1", "s2"})

	suite.Require().NoError(err)
	suite.Empty(result.Succeeded)
	suite.Require().Len(result.Failed, 2)
	suite.ErrorIs(result.Failed[0].Err, context.Canceled)
	suite.mockSplitRepo.AssertNotCalled(suite.T(), "MarkSplitPaid")
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
