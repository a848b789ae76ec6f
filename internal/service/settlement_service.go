package service

import (
	"context"
	"log/slog"

	"github.com/swtmply/hati-tayo/internal/storage"
)

// SettlementService records declared settlements against the share ledger.
// The app only records that money changed hands; it does not move money.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given
// storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// Settle transitions each named share from PENDING to PAID. Settling an
// already-PAID share is a no-op, so retrying a settlement is safe. An
// unknown id fails the whole batch with storage.ErrShareNotFound and
// leaves every share untouched.
//
// Any authenticated user may record a settlement; the payer is not
// special-cased here.
func (s *SettlementService) Settle(ctx context.Context, shareIDs []string) error {
	if len(shareIDs) == 0 {
		return nil
	}
	if err := s.store.SettleShares(ctx, shareIDs); err != nil {
		slog.Error("Settle failed", "share_count", len(shareIDs), "error", err)
		return err
	}
	slog.Info("Shares settled", "share_count", len(shareIDs))
	return nil
}
