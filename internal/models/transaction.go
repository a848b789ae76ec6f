package models

// Transaction represents a single recorded shared expense.
//
// Transactions are immutable once created: no amount or participant edits
// are supported, only the settlement status of the owned shares changes.
// Invariant: ParticipantIDs is non-empty. The payer need not be a
// participant; if not, they are owed money but owe nothing themselves.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// Name is the human-readable name for the expense (e.g., "Dinner").
	Name string

	// Amount is the total expense amount in PHP. Always positive.
	Amount float64

	// GroupID is the owning group.
	GroupID string

	// PayerID is the user who fronted the total amount.
	PayerID string

	// ParticipantIDs is the set of users splitting the expense, in
	// insertion order. Reads return participants in this order.
	ParticipantIDs []string

	// SplitType records which split policy produced the shares.
	SplitType string

	// CreatedAt is the Unix timestamp when the transaction was created.
	CreatedAt int64
}

// HasParticipant reports whether the given user is a participant.
func (t *Transaction) HasParticipant(userID string) bool {
	for _, id := range t.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}
