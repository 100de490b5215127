package repositories

import (
	"context"

	"github.com/novira-app/novira-backend/internal/core/domain"
)

// SplitReader defines read operations for split data
type SplitReader interface {
	// ListUnsettledSplits retrieves every unpaid split visible to the given
	// party (splits they owe plus splits owed to them), with enough
	// transaction context to classify debtor/creditor roles.
	ListUnsettledSplits(ctx context.Context, partyID string) ([]domain.Split, error)

	// FindSplitByID retrieves a single split by its ID.
	FindSplitByID(ctx context.Context, splitID string) (*domain.Split, error)
}

// SplitSettler defines the settlement write operation for split data
type SplitSettler interface {
	// MarkSplitPaid flips is_paid to true, conditional on the split still
	// being unpaid. It returns true when the row was updated, false when the
	// split was already paid (an idempotent no-op), and ErrNotFound when no
	// such split exists.
	MarkSplitPaid(ctx context.Context, splitID string) (bool, error)
}

// SplitRepositoryFacade combines all split-related repository interfaces
type SplitRepositoryFacade interface {
	SplitReader
	SplitSettler
}
