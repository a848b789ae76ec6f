package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/swtmply/hati-tayo/internal/models"
	"github.com/swtmply/hati-tayo/internal/storage"
)

// GetShare retrieves the share for one (transaction, participant) pair.
func (s *SQLiteStore) GetShare(ctx context.Context, transactionID, userID string) (*models.Share, error) {
	share := &models.Share{}
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, transaction_id, user_id, amount, status
		 FROM shares WHERE transaction_id = ? AND user_id = ?`,
		transactionID, userID,
	).Scan(&share.ID, &share.TransactionID, &share.UserID, &share.Amount, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("share for transaction %s, user %s: %w", transactionID, userID, storage.ErrShareNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	share.Status = models.ShareStatus(status)
	return share, nil
}

// SharesByTransaction returns a transaction's shares in participant
// insertion order.
func (s *SQLiteStore) SharesByTransaction(ctx context.Context, transactionID string) ([]*models.Share, error) {
	return s.queryShares(ctx,
		`SELECT s.id, s.transaction_id, s.user_id, s.amount, s.status
		 FROM shares s
		 JOIN transaction_participants p
		   ON p.transaction_id = s.transaction_id AND p.user_id = s.user_id
		 WHERE s.transaction_id = ?
		 ORDER BY p.position`,
		transactionID,
	)
}

// SharesByUser returns the user's shares, optionally filtered by status.
func (s *SQLiteStore) SharesByUser(ctx context.Context, userID string, status models.ShareStatus) ([]*models.Share, error) {
	if status == "" {
		return s.queryShares(ctx,
			`SELECT id, transaction_id, user_id, amount, status
			 FROM shares WHERE user_id = ?`,
			userID,
		)
	}
	return s.queryShares(ctx,
		`SELECT id, transaction_id, user_id, amount, status
		 FROM shares WHERE user_id = ? AND status = ?`,
		userID, string(status),
	)
}

// SharesOwedToPayer returns PENDING shares on transactions the user paid
// for, optionally restricted to one group.
func (s *SQLiteStore) SharesOwedToPayer(ctx context.Context, payerID, groupID string) ([]*models.Share, error) {
	query := `SELECT s.id, s.transaction_id, s.user_id, s.amount, s.status
		 FROM shares s
		 JOIN transactions t ON t.id = s.transaction_id
		 WHERE t.payer_id = ? AND s.status = ?`
	args := []any{payerID, string(models.SharePending)}
	if groupID != "" {
		query += " AND t.group_id = ?"
		args = append(args, groupID)
	}
	return s.queryShares(ctx, query, args...)
}

// SettleShares transitions each named share from PENDING to PAID inside one
// SQL transaction. Already-PAID shares are left untouched. If any id does
// not exist, the whole batch rolls back and ErrShareNotFound is returned.
func (s *SQLiteStore) SettleShares(ctx context.Context, shareIDs []string) error {
	if len(shareIDs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range shareIDs {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM shares WHERE id = ?", id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("share %s: %w", id, storage.ErrShareNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check share: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE shares SET status = ? WHERE id = ? AND status = ?",
			string(models.SharePaid), id, string(models.SharePending),
		)
		if err != nil {
			return fmt.Errorf("failed to settle share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) queryShares(ctx context.Context, query string, args ...any) ([]*models.Share, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shares: %w", err)
	}
	defer rows.Close()

	var shares []*models.Share
	for rows.Next() {
		share := &models.Share{}
		var status string
		if err := rows.Scan(&share.ID, &share.TransactionID, &share.UserID, &share.Amount, &status); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		share.Status = models.ShareStatus(status)
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return shares, nil
}
