package service

import (
	"context"

	"github.com/swtmply/hati-tayo/internal/models"
	"github.com/swtmply/hati-tayo/internal/storage"
)

// BalanceService aggregates outstanding balances from the share ledger.
// Nothing is cached or denormalized: every call scans the relevant share
// and transaction indexes, so a settlement is reflected by the next read.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage
// backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// SummaryForUser computes the user's position across all groups.
//
// TotalOwed sums the user's own PENDING shares. TotalPaid sums PENDING
// shares on transactions the user paid for — money fronted and not yet
// reimbursed, which drops back toward zero as others settle.
func (s *BalanceService) SummaryForUser(ctx context.Context, userID string) (*models.BalanceSummary, error) {
	pending, err := s.store.SharesByUser(ctx, userID, models.SharePending)
	if err != nil {
		return nil, err
	}
	owedToUser, err := s.store.SharesOwedToPayer(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return &models.BalanceSummary{
		TotalOwed: sumShares(pending),
		TotalPaid: sumShares(owedToUser),
	}, nil
}

// GroupSummary computes the user's position within one group, plus the
// group's transaction count.
func (s *BalanceService) GroupSummary(ctx context.Context, groupID, userID string) (*models.GroupSummary, error) {
	// Verify the group exists so a missing group surfaces as not-found
	// rather than an empty summary.
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	txns, err := s.store.ListTransactionsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	inGroup := make(map[string]bool, len(txns))
	for _, txn := range txns {
		inGroup[txn.ID] = true
	}

	pending, err := s.store.SharesByUser(ctx, userID, models.SharePending)
	if err != nil {
		return nil, err
	}
	totalOwed := 0.0
	for _, share := range pending {
		if inGroup[share.TransactionID] {
			totalOwed += share.Amount
		}
	}

	owedToUser, err := s.store.SharesOwedToPayer(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	return &models.GroupSummary{
		TotalOwed:        totalOwed,
		TotalPaid:        sumShares(owedToUser),
		TransactionCount: len(txns),
	}, nil
}

// IsTransactionSettled reports whether every participant share of the
// transaction is PAID.
func (s *BalanceService) IsTransactionSettled(ctx context.Context, transactionID string) (bool, error) {
	// Distinguish a missing transaction from one with no pending shares.
	if _, err := s.store.GetTransaction(ctx, transactionID); err != nil {
		return false, err
	}

	shares, err := s.store.SharesByTransaction(ctx, transactionID)
	if err != nil {
		return false, err
	}
	for _, share := range shares {
		if share.Status != models.SharePaid {
			return false, nil
		}
	}
	return true, nil
}

func sumShares(shares []*models.Share) float64 {
	total := 0.0
	for _, share := range shares {
		total += share.Amount
	}
	return total
}
