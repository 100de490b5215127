package services_test

import (
	"context"
	"sort"
	"testing"

	"github.com/novira-app/novira-backend/internal/core/domain"
	"github.com/novira-app/novira-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var testEpsilon = decimal.New(1, -2)

func edge(debtor, creditor, amount string) domain.NetBalance {
	return domain.NetBalance{
		DebtorID:   debtor,
		CreditorID: creditor,
		Amount:     decimal.RequireFromString(amount),
	}
}

func contribution(id, amount string) domain.Contribution {
	return domain.Contribution{SplitID: id, Amount: decimal.RequireFromString(amount)}
}

// collectSplitIDs flattens and sorts every payment's split IDs.
func collectSplitIDs(payments []domain.SimplifiedPayment) []string {
	var ids []string
	for _, p := range payments {
		ids = append(ids, p.SplitIDs...)
	}
	sort.Strings(ids)
	return ids
}

func TestSimplifyGraph_MutualDebtsCollapseToOnePayment(t *testing.T) {
	graph := &domain.PairwiseGraph{
		Currency: "USD",
		Edges:    []domain.NetBalance{edge("alice", "bob", "20.00")},
		Contributions: map[domain.EdgeKey][]domain.Contribution{
			{DebtorID: "alice", CreditorID: "bob"}: {contribution("s1", "30.00")},
			{DebtorID: "bob", CreditorID: "alice"}: {contribution("s2", "10.00")},
		},
	}

	payments, err := services.SimplifyGraph(graph, testEpsilon)

	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "alice", payments[0].FromID)
	assert.Equal(t, "bob", payments[0].ToID)
	assert.True(t, payments[0].Amount.Equal(decimal.RequireFromString("20.00")))
	// Both directions' splits are discharged by the single net payment.
	assert.Equal(t, []string{"s1", "s2"}, payments[0].SplitIDs)
}

func TestSimplifyGraph_ChainRoutesThroughIntermediary(t *testing.T) {
	graph := &domain.PairwiseGraph{
		Currency: "USD",
		Edges: []domain.NetBalance{
			edge("alice", "bob", "10.00"),
			edge("bob", "carol", "10.00"),
		},
		Contributions: map[domain.EdgeKey][]domain.Contribution{
			{DebtorID: "alice", CreditorID: "bob"}: {contribution("s1", "10.00")},
			{DebtorID: "bob", CreditorID: "carol"}: {contribution("s2", "10.00")},
		},
	}

	payments, err := services.SimplifyGraph(graph, testEpsilon)

	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "alice", payments[0].FromID)
	assert.Equal(t, "carol", payments[0].ToID)
	assert.True(t, payments[0].Amount.Equal(decimal.RequireFromString("10.00")))
	// The intermediary drops out, but both splits are still accounted for.
	assert.Equal(t, []string{"s1", "s2"}, payments[0].SplitIDs)
}

func TestSimplifyGraph_GreedyPairsLargestMagnitudes(t *testing.T) {
	graph := &domain.PairwiseGraph{
		Currency: "USD",
		Edges: []domain.NetBalance{
			edge("alice", "bob", "10.00"),
			edge("bob", "carol", "40.00"),
		},
		Contributions: map[domain.EdgeKey][]domain.Contribution{
			{DebtorID: "alice", CreditorID: "bob"}: {contribution("s1", "10.00")},
			{DebtorID: "bob", CreditorID: "carol"}: {contribution("s2", "40.00")},
		},
	}

	payments, err := services.SimplifyGraph(graph, testEpsilon)

	require.NoError(t, err)
	require.Len(t, payments, 2)
	// bob owes 30 net, the largest debt, so bob pays carol first.
	assert.Equal(t, "bob", payments[0].FromID)
	assert.Equal(t, "carol", payments[0].ToID)
	assert.True(t, payments[0].Amount.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, "alice", payments[1].FromID)
	assert.Equal(t, "carol", payments[1].ToID)
	assert.True(t, payments[1].Amount.Equal(decimal.RequireFromString("10.00")))

	assert.Equal(t, []string{"s1", "s2"}, collectSplitIDs(payments))
}

func TestSimplifyGraph_TiesBreakByPartyID(t *testing.T) {
	graph := &domain.PairwiseGraph{
		Currency: "USD",
		Edges: []domain.NetBalance{
			edge("carol", "bob", "10.00"),
			edge("alice", "bob", "10.00"),
		},
		Contributions: map[domain.EdgeKey][]domain.Contribution{
			{DebtorID: "carol", CreditorID: "bob"}: {contribution("s2", "10.00")},
			{DebtorID: "alice", CreditorID: "bob"}: {contribution("s1", "10.00")},
		},
	}

	payments, err := services.SimplifyGraph(graph, testEpsilon)

	require.NoError(t, err)
	require.Len(t, payments, 2)
	// Equal debts: alice sorts before carol.
	assert.Equal(t, "alice", payments[0].FromID)
	assert.Equal(t, "carol", payments[1].FromID)
}

func TestSimplifyGraph_AtMostPartiesMinusOnePayments(t *testing.T) {
	graph := &domain.PairwiseGraph{
		Currency: "USD",
		Edges: []domain.NetBalance{
			edge("alice", "dave", "25.00"),
			edge("bob", "dave", "15.00"),
			edge("carol", "dave", "5.00"),
			edge("alice", "bob", "10.00"),
		},
		Contributions: map[domain.EdgeKey][]domain.Contribution{
			{DebtorID: "alice", CreditorID: "dave"}: {contribution("s1", "25.00")},
			{DebtorID: "bob", CreditorID: "dave"}:   {contribution("s2", "15.00")},
			{DebtorID: "carol", CreditorID: "dave"}: {contribution("s3", "5.00")},
			{DebtorID: "alice", CreditorID: "bob"}:  {contribution("s4", "10.00")},
		},
	}

	payments, err := services.SimplifyGraph(graph, testEpsilon)

	require.NoError(t, err)
	assert.LessOrEqual(t, len(payments), 3)

	// The plan moves exactly the total net debt and partitions every split.
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	assert.True(t, total.Equal(decimal.RequireFromString("45.00")), "moved %s", total)
	assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, collectSplitIDs(payments))
}

func TestSimplifyGraph_ResidualsBelowEpsilonIgnored(t *testing.T) {
	graph := &domain.PairwiseGraph{
		Currency: "USD",
		Edges:    []domain.NetBalance{edge("alice", "bob", "0.005")},
		Contributions: map[domain.EdgeKey][]domain.Contribution{
			{DebtorID: "alice", CreditorID: "bob"}: {contribution("s1", "0.005")},
		},
	}

	payments, err := services.SimplifyGraph(graph, testEpsilon)

	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestSimplifyGraph_EmptyGraph(t *testing.T) {
	payments, err := services.SimplifyGraph(&domain.PairwiseGraph{Currency: "USD"}, testEpsilon)
	require.NoError(t, err)
	assert.Empty(t, payments)

	payments, err = services.SimplifyGraph(nil, testEpsilon)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

// --- Service threshold behavior ---

type SimplifyServiceTestSuite struct {
	suite.Suite
	mockBalanceSvc *MockBalanceService
}

func (suite *SimplifyServiceTestSuite) SetupTest() {
	suite.mockBalanceSvc = new(MockBalanceService)
}

func (suite *SimplifyServiceTestSuite) summaryWithGraph(graph *domain.PairwiseGraph) {
	suite.mockBalanceSvc.On("ComputeBalances", mock.Anything, "alice", "USD").Return(&domain.BalanceSummary{
		ViewerID: "alice",
		Currency: "USD",
		Graph:    graph,
	}, nil).Once()
}

func (suite *SimplifyServiceTestSuite) TestPlanReturnedWhenItReducesTransfers() {
	suite.summaryWithGraph(&domain.PairwiseGraph{
		Currency: "USD",
		Edges:    []domain.NetBalance{edge("alice", "bob", "20.00")},
		Contributions: map[domain.EdgeKey][]domain.Contribution{
			{DebtorID: "alice", CreditorID: "bob"}: {contribution("s1", "30.00")},
			{DebtorID: "bob", CreditorID: "alice"}: {contribution("s2", "10.00")},
		},
	})
	svc := services.NewSimplifyService(suite.mockBalanceSvc)

	payments, err := svc.SimplifiedPayments(context.Background(), "alice", "USD")

	suite.Require().NoError(err)
	suite.Len(payments, 1)
}

func (suite *SimplifyServiceTestSuite) TestPlanWithheldBelowMinSplits() {
	suite.summaryWithGraph(&domain.PairwiseGraph{
		Currency: "USD",
		Edges:    []domain.NetBalance{edge("alice", "bob", "10.00")},
		Contributions: map[domain.EdgeKey][]domain.Contribution{
			{DebtorID: "alice", CreditorID: "bob"}: {contribution("s1", "10.00")},
		},
	})
	svc := services.NewSimplifyService(suite.mockBalanceSvc, services.WithMinSplits(2))

	payments, err := svc.SimplifiedPayments(context.Background(), "alice", "USD")

	suite.Require().NoError(err)
	suite.Empty(payments)
}

func (suite *SimplifyServiceTestSuite) TestPlanWithheldWhenNotFewerTransfers() {
	// Two unrelated pairs: the plan needs as many transfers as there are
	// splits, so it offers nothing.
	suite.summaryWithGraph(&domain.PairwiseGraph{
		Currency: "USD",
		Edges: []domain.NetBalance{
			edge("alice", "bob", "10.00"),
			edge("carol", "dave", "10.00"),
		},
		Contributions: map[domain.EdgeKey][]domain.Contribution{
			{DebtorID: "alice", CreditorID: "bob"}:  {contribution("s1", "10.00")},
			{DebtorID: "carol", CreditorID: "dave"}: {contribution("s2", "10.00")},
		},
	})
	svc := services.NewSimplifyService(suite.mockBalanceSvc)

	payments, err := svc.SimplifiedPayments(context.Background(), "alice", "USD")

	suite.Require().NoError(err)
	suite.Empty(payments)
}

func TestSimplifyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SimplifyServiceTestSuite))
}
