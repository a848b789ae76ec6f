package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/swtmply/hati-tayo/internal/models"
	"github.com/swtmply/hati-tayo/internal/storage"
)

// CreateTransaction persists a transaction, its participant set and all of
// its shares — plus the implicitly created group, when there is one — in a
// single SQL transaction. Either everything becomes visible or nothing
// does: no reader can observe a transaction with zero or partial shares,
// or an orphan group.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, newGroup *models.Group, txn *models.Transaction, shares []*models.Share) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if newGroup != nil {
		if err := insertGroupTx(ctx, tx, newGroup); err != nil {
			return err
		}
		txn.GroupID = newGroup.ID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, name, amount, group_id, payer_id, split_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.Name, txn.Amount, txn.GroupID, txn.PayerID, txn.SplitType, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	for i, participantID := range txn.ParticipantIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO transaction_participants (transaction_id, user_id, position) VALUES (?, ?, ?)",
			txn.ID, participantID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for _, share := range shares {
		if share.ID == "" {
			share.ID = uuid.New().String()
		}
		share.TransactionID = txn.ID
		_, err = tx.ExecContext(ctx,
			"INSERT INTO shares (id, transaction_id, user_id, amount, status) VALUES (?, ?, ?, ?, ?)",
			share.ID, share.TransactionID, share.UserID, share.Amount, string(share.Status),
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction by ID, including its participant
// ids in insertion order.
func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	txn := &models.Transaction{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, amount, group_id, payer_id, split_type, created_at
		 FROM transactions WHERE id = ?`, id,
	).Scan(&txn.ID, &txn.Name, &txn.Amount, &txn.GroupID, &txn.PayerID, &txn.SplitType, &txn.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := s.loadParticipants(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, txn *models.Transaction) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM transaction_participants WHERE transaction_id = ? ORDER BY position",
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		txn.ParticipantIDs = append(txn.ParticipantIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

// ListTransactionsByGroup returns a group's transactions, newest first.
func (s *SQLiteStore) ListTransactionsByGroup(ctx context.Context, groupID string) ([]*models.Transaction, error) {
	return s.listTransactions(ctx,
		`SELECT id, name, amount, group_id, payer_id, split_type, created_at
		 FROM transactions WHERE group_id = ?
		 ORDER BY created_at DESC, id`,
		groupID,
	)
}

// ListTransactionsForUser returns the transactions the user participates in
// or paid for, newest first.
func (s *SQLiteStore) ListTransactionsForUser(ctx context.Context, userID string) ([]*models.Transaction, error) {
	return s.listTransactions(ctx,
		`SELECT DISTINCT t.id, t.name, t.amount, t.group_id, t.payer_id, t.split_type, t.created_at
		 FROM transactions t
		 LEFT JOIN transaction_participants p ON p.transaction_id = t.id
		 WHERE p.user_id = ? OR t.payer_id = ?
		 ORDER BY t.created_at DESC, t.id`,
		userID, userID,
	)
}

func (s *SQLiteStore) listTransactions(ctx context.Context, query string, args ...any) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn := &models.Transaction{}
		if err := rows.Scan(&txn.ID, &txn.Name, &txn.Amount, &txn.GroupID,
			&txn.PayerID, &txn.SplitType, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	for _, txn := range txns {
		if err := s.loadParticipants(ctx, txn); err != nil {
			return nil, err
		}
	}
	return txns, nil
}
