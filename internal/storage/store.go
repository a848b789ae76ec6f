// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/swtmply/hati-tayo/internal/models"
)

var (
	// ErrNotFound is returned when a referenced user, group or
	// transaction does not exist. Distinct from an empty list result,
	// which is not an error.
	ErrNotFound = errors.New("not found")

	// ErrShareNotFound is returned when a settlement references a share
	// id that does not exist.
	ErrShareNotFound = errors.New("share not found")
)

// Store defines the persistence operations the services depend on.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// a hosted document store, etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user. ID and CreatedAt are generated if
	// unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by id. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) if no
	// user has the email, so callers can distinguish "free to register"
	// from a storage failure.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by id. Missing ids are
	// omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateGroup persists a new group with its members.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by id. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// ListGroupsForUser returns the groups the user is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMembers adds the given users to the group, ignoring ids
	// that are already members.
	AddGroupMembers(ctx context.Context, groupID string, memberIDs []string) error

	// CreateTransaction persists a transaction together with all of its
	// shares, and optionally a newly created group (when the transaction
	// implicitly creates one), in a single storage transaction. A reader
	// must never observe the transaction with zero or partial shares,
	// nor the new group without its transaction.
	CreateTransaction(ctx context.Context, newGroup *models.Group, txn *models.Transaction, shares []*models.Share) error

	// GetTransaction retrieves a transaction by id. Returns ErrNotFound
	// if absent.
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)

	// ListTransactionsByGroup returns a group's transactions, newest
	// first.
	ListTransactionsByGroup(ctx context.Context, groupID string) ([]*models.Transaction, error)

	// ListTransactionsForUser returns the transactions the user
	// participates in or paid for, newest first.
	ListTransactionsForUser(ctx context.Context, userID string) ([]*models.Transaction, error)

	// GetShare retrieves the share for one (transaction, participant)
	// pair. Returns ErrShareNotFound if absent.
	GetShare(ctx context.Context, transactionID, userID string) (*models.Share, error)

	// SharesByTransaction returns a transaction's shares in participant
	// insertion order.
	SharesByTransaction(ctx context.Context, transactionID string) ([]*models.Share, error)

	// SharesByUser returns the user's shares, optionally filtered by
	// status (empty status means all).
	SharesByUser(ctx context.Context, userID string, status models.ShareStatus) ([]*models.Share, error)

	// SharesOwedToPayer returns PENDING shares on transactions the user
	// paid for, optionally restricted to one group (empty groupID means
	// all groups).
	SharesOwedToPayer(ctx context.Context, payerID, groupID string) ([]*models.Share, error)

	// SettleShares transitions each named share from PENDING to PAID.
	// Settling an already-PAID share is a no-op. If any id does not
	// exist the whole batch is rolled back and ErrShareNotFound is
	// returned; no share is silently left behind.
	SettleShares(ctx context.Context, shareIDs []string) error

	// Close releases any resources held by the store.
	Close() error
}
