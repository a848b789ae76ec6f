package models

// ParticipantShare pairs a participant with their share of a transaction,
// for display.
type ParticipantShare struct {
	User  *User
	Share *Share
}

// TransactionView is the read model for a transaction: the transaction
// joined with its group, payer, participants, and per-participant shares.
type TransactionView struct {
	Transaction *Transaction

	// GroupName is the owning group's display name.
	GroupName string

	// Payer is the user who fronted the amount.
	Payer *User

	// Participants are returned in the transaction's insertion order,
	// each with their share.
	Participants []ParticipantShare

	// Settled is true iff every participant share is PAID.
	Settled bool

	// ViewerShare is the requesting viewer's own share, nil if the viewer
	// is not a participant.
	ViewerShare *Share
}

// BalanceSummary is a user's outstanding position across all transactions.
type BalanceSummary struct {
	// TotalOwed is the sum of the user's own PENDING shares: money they
	// still owe others.
	TotalOwed float64

	// TotalPaid is the sum of PENDING shares on transactions the user
	// paid for: money fronted but not yet reimbursed. It is not the sum
	// of settled shares.
	TotalPaid float64
}

// GroupSummary is a user's outstanding position within one group.
type GroupSummary struct {
	TotalOwed        float64
	TotalPaid        float64
	TransactionCount int
}
