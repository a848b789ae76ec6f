// Package service orchestrates the core workflows: transaction creation
// with share computation, settlement, balance aggregation, and group and
// account management. Services validate eagerly and synchronously; nothing
// is written once validation fails.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/swtmply/hati-tayo/internal/models"
	"github.com/swtmply/hati-tayo/internal/split"
	"github.com/swtmply/hati-tayo/internal/storage"
)

// ErrMissingGroup is returned when a transaction names neither an existing
// group nor a usable name for a new one.
var ErrMissingGroup = errors.New("transaction requires a group id or a non-empty group name")

// CreateTransactionInput carries a transaction-creation request.
//
// Exactly one of GroupID or GroupName must be usable: an existing group id,
// or a name for a group created implicitly with the participants (and the
// payer) as its members.
type CreateTransactionInput struct {
	Name           string
	Amount         float64
	PayerID        string
	GroupID        string
	GroupName      string
	ParticipantIDs []string
	Policy         split.Policy
}

// TransactionService coordinates the lifecycle of a transaction: group
// resolution or creation, share computation, atomic persistence, and the
// read-side joins that produce display views.
type TransactionService struct {
	store storage.Store
}

// NewTransactionService creates a new TransactionService with the given
// storage backend.
func NewTransactionService(store storage.Store) *TransactionService {
	return &TransactionService{store: store}
}

// CreateTransaction validates the input, computes the per-participant
// shares, and persists the transaction with all of its shares (and the
// implicitly created group, if any) atomically. The payer's own share, if
// they are a participant, is PAID at creation; every other share starts
// PENDING. Returns the new transaction id.
func (s *TransactionService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (string, error) {
	if in.PayerID == "" {
		return "", fmt.Errorf("%w: payer required", split.ErrInvalidSplit)
	}

	shareAmounts, err := split.Compute(in.Policy, in.Amount, in.ParticipantIDs)
	if err != nil {
		return "", err
	}

	// Resolve the owning group before anything is written.
	var newGroup *models.Group
	var existingGroup *models.Group
	switch {
	case in.GroupID != "":
		existingGroup, err = s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return "", err
		}
	case strings.TrimSpace(in.GroupName) != "":
		members := make([]string, 0, len(in.ParticipantIDs)+1)
		members = append(members, in.ParticipantIDs...)
		if !contains(in.ParticipantIDs, in.PayerID) {
			members = append(members, in.PayerID)
		}
		newGroup = &models.Group{Name: strings.TrimSpace(in.GroupName), MemberIDs: members}
	default:
		return "", ErrMissingGroup
	}

	txn := &models.Transaction{
		Name:           in.Name,
		Amount:         in.Amount,
		GroupID:        in.GroupID,
		PayerID:        in.PayerID,
		ParticipantIDs: in.ParticipantIDs,
		SplitType:      string(in.Policy.Type()),
	}

	shares := make([]*models.Share, 0, len(in.ParticipantIDs))
	for _, participantID := range in.ParticipantIDs {
		status := models.SharePending
		if participantID == in.PayerID {
			status = models.SharePaid
		}
		shares = append(shares, &models.Share{
			UserID: participantID,
			Amount: shareAmounts[participantID],
			Status: status,
		})
	}

	if err := s.store.CreateTransaction(ctx, newGroup, txn, shares); err != nil {
		slog.Error("CreateTransaction failed", "name", in.Name, "error", err)
		return "", err
	}

	if existingGroup != nil {
		s.autoAddParticipants(ctx, existingGroup, in.ParticipantIDs, in.PayerID)
	}

	slog.Info("Transaction created",
		"transaction_id", txn.ID,
		"group_id", txn.GroupID,
		"split_type", txn.SplitType,
		"amount", txn.Amount,
		"participants", len(txn.ParticipantIDs),
	)
	return txn.ID, nil
}

// autoAddParticipants adds any transaction participants (and the payer) not
// already in the group. Best effort: a failure here leaves the group list
// stale, not the transaction inconsistent.
func (s *TransactionService) autoAddParticipants(ctx context.Context, group *models.Group, participantIDs []string, payerID string) {
	everyone := make([]string, 0, len(participantIDs)+1)
	everyone = append(everyone, participantIDs...)
	if payerID != "" && !contains(participantIDs, payerID) {
		everyone = append(everyone, payerID)
	}

	var missing []string
	for _, id := range everyone {
		if !group.HasMember(id) {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return
	}

	if err := s.store.AddGroupMembers(ctx, group.ID, missing); err != nil {
		slog.Warn("autoAddParticipants: failed to add members", "group_id", group.ID, "error", err)
		return
	}
	slog.Info("Auto-added participants to group", "group_id", group.ID, "new_members", missing)
}

// GetTransactionDetails joins the transaction with its group, payer,
// participant users and their shares, and surfaces the viewer's own share
// when the viewer is a participant.
func (s *TransactionService) GetTransactionDetails(ctx context.Context, transactionID, viewerID string) (*models.TransactionView, error) {
	txn, err := s.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return s.assembleView(ctx, txn, viewerID)
}

// ListTransactionsForUser returns views of every transaction the user
// participates in or paid for, newest first.
func (s *TransactionService) ListTransactionsForUser(ctx context.Context, userID string) ([]*models.TransactionView, error) {
	txns, err := s.store.ListTransactionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*models.TransactionView, 0, len(txns))
	for _, txn := range txns {
		view, err := s.assembleView(ctx, txn, userID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *TransactionService) assembleView(ctx context.Context, txn *models.Transaction, viewerID string) (*models.TransactionView, error) {
	shares, err := s.store.SharesByTransaction(ctx, txn.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(txn.ParticipantIDs)+1)
	ids = append(ids, txn.ParticipantIDs...)
	if !contains(txn.ParticipantIDs, txn.PayerID) {
		ids = append(ids, txn.PayerID)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, txn.GroupID)
	if err != nil {
		return nil, err
	}

	sharesByUser := make(map[string]*models.Share, len(shares))
	settled := true
	for _, share := range shares {
		sharesByUser[share.UserID] = share
		if share.Status != models.SharePaid {
			settled = false
		}
	}

	view := &models.TransactionView{
		Transaction: txn,
		GroupName:   group.Name,
		Payer:       users[txn.PayerID],
		Settled:     settled,
		ViewerShare: sharesByUser[viewerID],
	}
	for _, participantID := range txn.ParticipantIDs {
		view.Participants = append(view.Participants, models.ParticipantShare{
			User:  users[participantID],
			Share: sharesByUser[participantID],
		})
	}
	return view, nil
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
