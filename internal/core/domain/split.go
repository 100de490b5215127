package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Party is a user identity. The display name is presentation-only; all
// computation keys off the opaque PartyID.
type Party struct {
	PartyID string `json:"partyID"` // Primary Key (e.g., UUID)
	Name    string `json:"name"`
	Email   string `json:"email"`
	AuditFields
}

// Split represents one debtor's obligation for one shared transaction.
// Many splits share a transaction; the creditor is always the transaction's
// payer. Its only mutation is IsPaid false -> true, which is one-way.
type Split struct {
	SplitID       string          `json:"splitID"`       // Primary Key (e.g., UUID)
	TransactionID string          `json:"transactionID"` // FK -> Transaction (Not Null)
	DebtorID      string          `json:"debtorID"`      // Party who owes
	CreditorID    string          `json:"creditorID"`    // Party who paid the transaction
	Amount        decimal.Decimal `json:"amount"`        // Positive value, in Currency
	Currency      string          `json:"currency"`      // Inherited from the transaction
	IsPaid        bool            `json:"isPaid"`        // Terminal once true
	TxnDate       time.Time       `json:"txnDate"`       // Date of the owning transaction

	// ExchangeRate and BaseCurrency are captured from the transaction at
	// creation time: multiplying Amount by ExchangeRate yields the amount in
	// BaseCurrency. Both are nil for single-currency transactions.
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	BaseCurrency *string          `json:"baseCurrency,omitempty"`

	AuditFields
}

var (
	ErrSplitNonPositiveAmount = errors.New("split amount must be positive")
	ErrSplitSelfDebt          = errors.New("split debtor and creditor must differ")
)

// Validate reports whether the split is well-formed enough to take part in
// balance aggregation. Malformed splits are excluded with a warning, never a
// crash.
func (s Split) Validate() error {
	if s.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrSplitNonPositiveAmount
	}
	if s.DebtorID == s.CreditorID {
		return ErrSplitSelfDebt
	}
	return nil
}

// HasHistoricalRate reports whether the split carries a usable captured
// exchange rate targeting the given reporting currency. Captured rates are
// preferred over the live table so balances stay stable over time.
func (s Split) HasHistoricalRate(reportingCurrency string) bool {
	return s.ExchangeRate != nil && s.BaseCurrency != nil && *s.BaseCurrency == reportingCurrency
}
