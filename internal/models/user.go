package models

// User represents a registered account or an invited contact stand-in.
//
// A user is created on first sign-in, or when a payer adds a participant
// from their address book who has no account yet. Users are never
// hard-deleted while referenced by undeleted transactions; account
// deletion soft-removes them from groups and participant lists instead.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// ImageURL is the profile picture URL, if any.
	ImageURL string

	// Email is the user's email address (unique when set).
	// Contact stand-ins invited from an address book may have none.
	Email string

	// Phone is the user's phone number, if known.
	Phone string

	// PasswordHash is the bcrypt hash for password login.
	// Empty for contact stand-ins that have never registered.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64
}
