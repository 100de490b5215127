package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/novira-app/novira-backend/internal/apperrors"
	"github.com/novira-app/novira-backend/internal/core/domain"
	portsrepo "github.com/novira-app/novira-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSplitRepository struct {
	pool *pgxpool.Pool
}

// NewSplitRepository creates a new repository for split data.
func NewSplitRepository(pool *pgxpool.Pool) portsrepo.SplitRepositoryFacade {
	return &PgxSplitRepository{pool: pool}
}

var _ portsrepo.SplitRepositoryFacade = (*PgxSplitRepository)(nil)

// splitColumns joins splits with their owning transaction; the creditor,
// currency, date, and captured rate all live on the transaction row.
const splitColumns = `
	s.split_id, s.transaction_id, s.debtor_id, t.payer_id, s.amount,
	t.currency_code, s.is_paid, t.txn_date, t.exchange_rate, t.base_currency,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
`

func scanSplit(row pgx.Row) (domain.Split, error) {
	var split domain.Split
	err := row.Scan(
		&split.SplitID,
		&split.TransactionID,
		&split.DebtorID,
		&split.CreditorID,
		&split.Amount,
		&split.Currency,
		&split.IsPaid,
		&split.TxnDate,
		&split.ExchangeRate,
		&split.BaseCurrency,
		&split.CreatedAt,
		&split.CreatedBy,
		&split.LastUpdatedAt,
		&split.LastUpdatedBy,
	)
	return split, err
}

// ListUnsettledSplits retrieves every unpaid split the party participates in,
// as debtor or as creditor.
func (r *PgxSplitRepository) ListUnsettledSplits(ctx context.Context, partyID string) ([]domain.Split, error) {
	query := `
		SELECT ` + splitColumns + `
		FROM splits s
		JOIN transactions t ON t.transaction_id = s.transaction_id
		WHERE s.is_paid = FALSE
		  AND (s.debtor_id = $1 OR t.payer_id = $1)
		ORDER BY t.txn_date, s.split_id;
	`
	rows, err := r.pool.Query(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unsettled splits for party %s: %w", partyID, err)
	}
	defer rows.Close()

	splits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Split, error) {
		return scanSplit(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan unsettled splits: %w", err)
	}
	return splits, nil
}

// FindSplitByID retrieves a single split by its ID.
func (r *PgxSplitRepository) FindSplitByID(ctx context.Context, splitID string) (*domain.Split, error) {
	query := `
		SELECT ` + splitColumns + `
		FROM splits s
		JOIN transactions t ON t.transaction_id = s.transaction_id
		WHERE s.split_id = $1;
	`
	split, err := scanSplit(r.pool.QueryRow(ctx, query, splitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find split by id %s: %w", splitID, err)
	}
	return &split, nil
}

// MarkSplitPaid flips is_paid conditionally so concurrent settlements of the
// same split race safely: exactly one caller observes updated=true.
func (r *PgxSplitRepository) MarkSplitPaid(ctx context.Context, splitID string) (bool, error) {
	query := `
		UPDATE splits
		SET is_paid = TRUE, last_updated_at = $2
		WHERE split_id = $1 AND is_paid = FALSE;
	`
	tag, err := r.pool.Exec(ctx, query, splitID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to mark split %s paid: %w", splitID, err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// No row updated: either the split is already paid or it does not exist.
	var exists bool
	err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM splits WHERE split_id = $1);`, splitID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check split %s existence: %w", splitID, err)
	}
	if !exists {
		return false, apperrors.ErrNotFound
	}
	return false, nil
}
