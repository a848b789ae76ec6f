package models

// Group represents a named, persistent set of users who share recurring
// expenses. Groups own their membership list, not the users themselves.
//
// A group is created explicitly, or implicitly when a transaction names a
// new group; in the implicit case its members are exactly the transaction's
// participants. Invariant: the creator is always a member.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Barkada Trip").
	Name string

	// MemberIDs is the set of member user ids. Order is irrelevant but
	// insertion order is preserved for deterministic reads.
	MemberIDs []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether the given user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
