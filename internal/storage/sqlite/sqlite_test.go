package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swtmply/hati-tayo/internal/models"
	"github.com/swtmply/hati-tayo/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := &models.User{Name: "Ana", Email: "ana@example.com", Phone: "+639171234567"}
	require.NoError(t, store.CreateUser(ctx, user))
	require.NotEmpty(t, user.ID)
	require.NotZero(t, user.CreatedAt)

	got, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", got.Name)
	require.Equal(t, "ana@example.com", got.Email)

	_, err = store.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)

	byEmail, err := store.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.ID)

	none, err := store.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, none)

	// Contact stand-ins have no email; two of them must not collide.
	require.NoError(t, store.CreateUser(ctx, &models.User{Name: "Invited One"}))
	require.NoError(t, store.CreateUser(ctx, &models.User{Name: "Invited Two"}))

	other := &models.User{Name: "Ben"}
	require.NoError(t, store.CreateUser(ctx, other))

	users, err := store.GetUsersByIDs(ctx, []string{user.ID, other.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "Ben", users[other.ID].Name)
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Roommates", MemberIDs: []string{"u1", "u2", "u3"}}
	require.NoError(t, store.CreateGroup(ctx, group))
	require.NotEmpty(t, group.ID)

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2", "u3"}, got.MemberIDs)

	_, err = store.GetGroup(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Adding members skips existing ones and preserves order.
	require.NoError(t, store.AddGroupMembers(ctx, group.ID, []string{"u2", "u4"}))
	got, err = store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2", "u3", "u4"}, got.MemberIDs)

	groups, err := store.ListGroupsForUser(ctx, "u4")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, group.ID, groups[0].ID)

	groups, err = store.ListGroupsForUser(ctx, "stranger")
	require.NoError(t, err)
	require.Empty(t, groups)
}

func makeTransaction(t *testing.T, store *SQLiteStore, groupID string) *models.Transaction {
	t.Helper()
	txn := &models.Transaction{
		Name:           "Dinner",
		Amount:         100,
		GroupID:        groupID,
		PayerID:        "u1",
		ParticipantIDs: []string{"u1", "u2"},
		SplitType:      "EQUAL",
	}
	shares := []*models.Share{
		{UserID: "u1", Amount: 50, Status: models.SharePaid},
		{UserID: "u2", Amount: 50, Status: models.SharePending},
	}
	require.NoError(t, store.CreateTransaction(context.Background(), nil, txn, shares))
	return txn
}

func TestCreateTransactionAtomic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", MemberIDs: []string{"u1", "u2"}}
	require.NoError(t, store.CreateGroup(ctx, group))

	txn := makeTransaction(t, store, group.ID)
	require.NotEmpty(t, txn.ID)

	shares, err := store.SharesByTransaction(ctx, txn.ID)
	require.NoError(t, err)
	require.Len(t, shares, len(txn.ParticipantIDs))

	sum := 0.0
	for _, share := range shares {
		require.Equal(t, txn.ID, share.TransactionID)
		sum += share.Amount
	}
	require.InDelta(t, txn.Amount, sum, 0.01)

	got, err := store.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2"}, got.ParticipantIDs)

	_, err = store.GetTransaction(ctx, "missing")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateTransactionWithNewGroup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	newGroup := &models.Group{Name: "Beach Trip", MemberIDs: []string{"u1", "u2"}}
	txn := &models.Transaction{
		Name:           "Gas",
		Amount:         60,
		PayerID:        "u1",
		ParticipantIDs: []string{"u1", "u2"},
		SplitType:      "EQUAL",
	}
	shares := []*models.Share{
		{UserID: "u1", Amount: 30, Status: models.SharePaid},
		{UserID: "u2", Amount: 30, Status: models.SharePending},
	}
	require.NoError(t, store.CreateTransaction(ctx, newGroup, txn, shares))
	require.Equal(t, newGroup.ID, txn.GroupID)

	group, err := store.GetGroup(ctx, newGroup.ID)
	require.NoError(t, err)
	require.Equal(t, "Beach Trip", group.Name)

	txns, err := store.ListTransactionsByGroup(ctx, newGroup.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
}

func TestSettleShares(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", MemberIDs: []string{"u1", "u2"}}
	require.NoError(t, store.CreateGroup(ctx, group))
	txn := makeTransaction(t, store, group.ID)

	pending, err := store.GetShare(ctx, txn.ID, "u2")
	require.NoError(t, err)
	require.Equal(t, models.SharePending, pending.Status)

	require.NoError(t, store.SettleShares(ctx, []string{pending.ID}))

	// Idempotent: settling an already-PAID share is a no-op.
	require.NoError(t, store.SettleShares(ctx, []string{pending.ID}))

	settled, err := store.GetShare(ctx, txn.ID, "u2")
	require.NoError(t, err)
	require.Equal(t, models.SharePaid, settled.Status)

	_, err = store.GetShare(ctx, txn.ID, "stranger")
	require.ErrorIs(t, err, storage.ErrShareNotFound)
}

func TestSettleSharesUnknownIDRollsBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", MemberIDs: []string{"u1", "u2"}}
	require.NoError(t, store.CreateGroup(ctx, group))
	txn := makeTransaction(t, store, group.ID)

	pending, err := store.GetShare(ctx, txn.ID, "u2")
	require.NoError(t, err)

	err = store.SettleShares(ctx, []string{pending.ID, "missing"})
	require.ErrorIs(t, err, storage.ErrShareNotFound)

	// The valid share must not have been settled behind the error.
	got, err := store.GetShare(ctx, txn.ID, "u2")
	require.NoError(t, err)
	require.Equal(t, models.SharePending, got.Status)
}

func TestShareQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", MemberIDs: []string{"u1", "u2"}}
	require.NoError(t, store.CreateGroup(ctx, group))
	txn := makeTransaction(t, store, group.ID)

	owed, err := store.SharesOwedToPayer(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, owed, 1)
	require.Equal(t, "u2", owed[0].UserID)

	owed, err = store.SharesOwedToPayer(ctx, "u1", group.ID)
	require.NoError(t, err)
	require.Len(t, owed, 1)

	owed, err = store.SharesOwedToPayer(ctx, "u1", "other-group")
	require.NoError(t, err)
	require.Empty(t, owed)

	pending, err := store.SharesByUser(ctx, "u2", models.SharePending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	all, err := store.SharesByUser(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, models.SharePaid, all[0].Status)

	txns, err := store.ListTransactionsForUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.Equal(t, txn.ID, txns[0].ID)
}
