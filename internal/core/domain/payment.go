package domain

import "github.com/shopspring/decimal"

// SimplifiedPayment is one transfer of a settlement plan: after every payment
// in the plan is applied, all net balances are zero. SplitIDs lists the
// original splits this payment discharges; across a whole plan the lists form
// an exact partition of the input splits, so accepting a payment can mark
// every contributing split paid.
type SimplifiedPayment struct {
	FromID   string          `json:"fromID"`
	ToID     string          `json:"toID"`
	Amount   decimal.Decimal `json:"amount"` // Positive, in the reporting currency
	SplitIDs []string        `json:"splitIDs"`
}

// BatchSettlementResult reports the per-split outcome of a batch settlement.
// Each split is settled independently; callers retry only the failed subset.
type BatchSettlementResult struct {
	Succeeded []string
	Failed    []FailedSettlement
}

// FailedSettlement carries the original error for one split that could not be
// settled.
type FailedSettlement struct {
	SplitID string
	Err     error
}
