package models

// ShareStatus is the settlement state of a share.
type ShareStatus string

const (
	// SharePending means the participant still owes this amount.
	SharePending ShareStatus = "PENDING"
	// SharePaid means the amount has been settled (or the participant is
	// the payer, whose own share is paid at creation).
	SharePaid ShareStatus = "PAID"
)

// Share is one participant's owed-or-paid portion of a transaction.
//
// Exactly one share exists per (transaction, participant) pair, all created
// atomically with the transaction. For a given transaction the share
// amounts sum to the transaction total within rounding tolerance. A share
// only ever transitions PENDING to PAID, never back.
type Share struct {
	// ID is the unique identifier for the share (UUID format).
	ID string

	// TransactionID is the owning transaction.
	TransactionID string

	// UserID is the participant this share belongs to.
	UserID string

	// Amount is the owed amount in PHP. A participant included in no
	// itemized entry still gets a zero-amount share so the settlement
	// view is complete.
	Amount float64

	// Status is PENDING until settled.
	Status ShareStatus
}
