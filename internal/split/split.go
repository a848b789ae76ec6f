// Package split computes per-participant shares of a transaction amount
// under the supported split policies. All computation is pure: the package
// never touches storage and never partially computes — validation failures
// return ErrInvalidSplit before any share is produced.
package split

import (
	"errors"
	"fmt"
	"math"
)

// Type identifies a split policy variant.
type Type string

const (
	TypeEqual      Type = "EQUAL"
	TypePercentage Type = "PERCENTAGE"
	TypeFixed      Type = "FIXED"
	TypeShared     Type = "SHARED"
)

// Epsilon is the tolerance, in PHP, used when comparing declared sums
// against the transaction total.
const Epsilon = 0.01

// ErrInvalidSplit is returned when a policy input fails its sum or shape
// invariant. The wrapped message carries the human-readable reason.
var ErrInvalidSplit = errors.New("invalid split")

// ParseType converts a wire tag into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeEqual, TypePercentage, TypeFixed, TypeShared:
		return Type(s), nil
	}
	return "", fmt.Errorf("%w: unknown split type %q", ErrInvalidSplit, s)
}

// Policy is one of the split policy variants: Equal, Percentage, Fixed or
// Shared. Each variant carries its own required inputs, so a constructed
// Policy is always shape-complete before Compute runs.
type Policy interface {
	Type() Type

	// shares computes the owed amount per participant. Implementations
	// may assume total > 0 and participants non-empty.
	shares(total float64, participants []string) (map[string]float64, error)
}

// Compute returns the owed amount for every participant under the given
// policy. The returned map has exactly one entry per participant; policies
// that leave a participant out (e.g. an itemized split where they appear on
// no item) still yield a zero entry so the settlement view is complete.
func Compute(p Policy, total float64, participants []string) (map[string]float64, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: total amount must be positive, got %.2f", ErrInvalidSplit, total)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant required", ErrInvalidSplit)
	}
	seen := make(map[string]bool, len(participants))
	for _, id := range participants {
		if id == "" {
			return nil, fmt.Errorf("%w: empty participant id", ErrInvalidSplit)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate participant %q", ErrInvalidSplit, id)
		}
		seen[id] = true
	}
	return p.shares(total, participants)
}

// Equal divides the total evenly among all participants.
type Equal struct{}

func (Equal) Type() Type { return TypeEqual }

func (Equal) shares(total float64, participants []string) (map[string]float64, error) {
	// Plain floating division, as the app has always done it. The shares
	// may miss the total by a sub-centavo remainder; settlement views
	// compare sums within Epsilon.
	per := total / float64(len(participants))
	shares := make(map[string]float64, len(participants))
	for _, id := range participants {
		shares[id] = per
	}
	return shares, nil
}

// PercentAllocation assigns a share of the total, in percentage points,
// to one participant.
type PercentAllocation struct {
	UserID     string
	Percentage float64
}

// Percentage splits the total by declared percentages, which must cover
// exactly the participant set and sum to 100.
type Percentage struct {
	Allocations []PercentAllocation
}

func (Percentage) Type() Type { return TypePercentage }

func (p Percentage) shares(total float64, participants []string) (map[string]float64, error) {
	declared := make(map[string]float64, len(p.Allocations))
	sum := 0.0
	for _, a := range p.Allocations {
		if _, dup := declared[a.UserID]; dup {
			return nil, fmt.Errorf("%w: duplicate percentage for participant %q", ErrInvalidSplit, a.UserID)
		}
		declared[a.UserID] = a.Percentage
		sum += a.Percentage
	}
	if err := coversParticipants(declared, participants, "percentage"); err != nil {
		return nil, err
	}
	if sum != 100 {
		return nil, fmt.Errorf("%w: percentages sum to %g, must sum to 100", ErrInvalidSplit, sum)
	}
	shares := make(map[string]float64, len(participants))
	for _, id := range participants {
		shares[id] = total * declared[id] / 100
	}
	return shares, nil
}

// FixedAllocation assigns an absolute amount to one participant.
type FixedAllocation struct {
	UserID string
	Amount float64
}

// Fixed splits the total by declared absolute amounts, which must cover
// exactly the participant set and sum to the total within Epsilon.
type Fixed struct {
	Allocations []FixedAllocation
}

func (Fixed) Type() Type { return TypeFixed }

func (f Fixed) shares(total float64, participants []string) (map[string]float64, error) {
	declared := make(map[string]float64, len(f.Allocations))
	sum := 0.0
	for _, a := range f.Allocations {
		if _, dup := declared[a.UserID]; dup {
			return nil, fmt.Errorf("%w: duplicate amount for participant %q", ErrInvalidSplit, a.UserID)
		}
		declared[a.UserID] = a.Amount
		sum += a.Amount
	}
	if err := coversParticipants(declared, participants, "fixed amount"); err != nil {
		return nil, err
	}
	if math.Abs(sum-total) > Epsilon {
		return nil, fmt.Errorf("%w: fixed amounts sum to %.2f, must equal total %.2f", ErrInvalidSplit, sum, total)
	}
	shares := make(map[string]float64, len(participants))
	for _, id := range participants {
		shares[id] = declared[id]
	}
	return shares, nil
}

// Item is one named line of an itemized split, divided evenly among the
// subset of participants it belongs to.
type Item struct {
	Name           string
	Amount         float64
	ParticipantIDs []string
}

// Shared splits the total by named items: a participant's share is the sum
// of item.Amount / len(item.ParticipantIDs) over the items containing them.
// Item amounts must sum to the total within Epsilon.
type Shared struct {
	Items []Item
}

func (Shared) Type() Type { return TypeShared }

func (s Shared) shares(total float64, participants []string) (map[string]float64, error) {
	shares := make(map[string]float64, len(participants))
	for _, id := range participants {
		shares[id] = 0
	}

	sum := 0.0
	for _, item := range s.Items {
		if len(item.ParticipantIDs) == 0 {
			return nil, fmt.Errorf("%w: item %q has no participants", ErrInvalidSplit, item.Name)
		}
		if item.Amount <= 0 {
			return nil, fmt.Errorf("%w: item %q amount must be positive, got %.2f", ErrInvalidSplit, item.Name, item.Amount)
		}
		per := item.Amount / float64(len(item.ParticipantIDs))
		for _, id := range item.ParticipantIDs {
			if _, ok := shares[id]; !ok {
				return nil, fmt.Errorf("%w: item %q references %q who is not a participant", ErrInvalidSplit, item.Name, id)
			}
			shares[id] += per
		}
		sum += item.Amount
	}
	if math.Abs(sum-total) > Epsilon {
		return nil, fmt.Errorf("%w: item amounts sum to %.2f, must equal total %.2f", ErrInvalidSplit, sum, total)
	}
	return shares, nil
}

// coversParticipants checks that declared allocations name exactly the
// participant set: no participant missing, no stranger declared.
func coversParticipants(declared map[string]float64, participants []string, kind string) error {
	for _, id := range participants {
		if _, ok := declared[id]; !ok {
			return fmt.Errorf("%w: no %s declared for participant %q", ErrInvalidSplit, kind, id)
		}
	}
	if len(declared) > len(participants) {
		set := make(map[string]bool, len(participants))
		for _, id := range participants {
			set[id] = true
		}
		for id := range declared {
			if !set[id] {
				return fmt.Errorf("%w: %s declared for %q who is not a participant", ErrInvalidSplit, kind, id)
			}
		}
	}
	return nil
}
