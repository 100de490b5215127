package dto

import (
	"time"

	"github.com/novira-app/novira-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SplitResponse is one pending split with enough transaction context for
// presentation.
type SplitResponse struct {
	SplitID       string          `json:"splitID"`
	TransactionID string          `json:"transactionID"`
	DebtorID      string          `json:"debtorID"`
	CreditorID    string          `json:"creditorID"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	IsPaid        bool            `json:"isPaid"`
	TxnDate       time.Time       `json:"txnDate"`
}

// ToSplitResponse converts a domain.Split to SplitResponse DTO
func ToSplitResponse(s *domain.Split) SplitResponse {
	return SplitResponse{
		SplitID:       s.SplitID,
		TransactionID: s.TransactionID,
		DebtorID:      s.DebtorID,
		CreditorID:    s.CreditorID,
		Amount:        s.Amount,
		Currency:      s.Currency,
		IsPaid:        s.IsPaid,
		TxnDate:       s.TxnDate,
	}
}

// ToListSplitResponse converts a slice of domain.Split to SplitResponse DTOs
func ToListSplitResponse(splits []domain.Split) []SplitResponse {
	res := make([]SplitResponse, len(splits))
	for i := range splits {
		res[i] = ToSplitResponse(&splits[i])
	}
	return res
}
