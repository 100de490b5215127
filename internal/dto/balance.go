package dto

import (
	"github.com/novira-app/novira-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NetBalanceResponse is one netted edge of the pairwise debt graph.
type NetBalanceResponse struct {
	DebtorID   string          `json:"debtorID"`
	CreditorID string          `json:"creditorID"`
	Amount     decimal.Decimal `json:"amount"`
}

// BalanceSummaryResponse is the viewer's aggregated balance position.
type BalanceSummaryResponse struct {
	Currency      string               `json:"currency"`
	TotalOwed     decimal.Decimal      `json:"totalOwed"`
	TotalOwedToMe decimal.Decimal      `json:"totalOwedToMe"`
	Pairwise      []NetBalanceResponse `json:"pairwise"`
}

// ToBalanceSummaryResponse converts a domain.BalanceSummary to its DTO.
func ToBalanceSummaryResponse(summary *domain.BalanceSummary) BalanceSummaryResponse {
	resp := BalanceSummaryResponse{
		Currency:      summary.Currency,
		TotalOwed:     summary.TotalOwed,
		TotalOwedToMe: summary.TotalOwedToMe,
		Pairwise:      []NetBalanceResponse{},
	}
	if summary.Graph != nil {
		for _, edge := range summary.Graph.Edges {
			resp.Pairwise = append(resp.Pairwise, NetBalanceResponse{
				DebtorID:   edge.DebtorID,
				CreditorID: edge.CreditorID,
				Amount:     edge.Amount,
			})
		}
	}
	return resp
}

// SimplifiedPaymentResponse is one transfer of a settlement plan.
type SimplifiedPaymentResponse struct {
	FromID   string          `json:"fromID"`
	ToID     string          `json:"toID"`
	Amount   decimal.Decimal `json:"amount"`
	SplitIDs []string        `json:"splitIDs"`
}

// ToListSimplifiedPaymentResponse converts a settlement plan to DTOs.
func ToListSimplifiedPaymentResponse(payments []domain.SimplifiedPayment) []SimplifiedPaymentResponse {
	res := make([]SimplifiedPaymentResponse, len(payments))
	for i, p := range payments {
		res[i] = SimplifiedPaymentResponse{
			FromID:   p.FromID,
			ToID:     p.ToID,
			Amount:   p.Amount,
			SplitIDs: p.SplitIDs,
		}
	}
	return res
}
