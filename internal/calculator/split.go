package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmynk/cohouse/internal/models"
)

var (
	ErrInvalidAmount = errors.New("amount must not be negative")
	ErrSumMismatch   = errors.New("shares do not sum to total")
	ErrUnknownPolicy = errors.New("unknown remainder policy")
)

// RemainderPolicy decides who absorbs the part of a total that does not
// divide evenly among participants.
type RemainderPolicy string

const (
	// PolicyTrailing gives the whole remainder to the last participant.
	PolicyTrailing RemainderPolicy = "trailing"
	// PolicyPlatform charges nobody for the remainder and reports it separately.
	PolicyPlatform RemainderPolicy = "platform"
)

// ParsePolicy maps a config or request value to a RemainderPolicy.
func ParsePolicy(s string) (RemainderPolicy, error) {
	switch p := RemainderPolicy(s); p {
	case PolicyTrailing, PolicyPlatform:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Participant is a person taking part in a split.
type Participant struct {
	ID   string
	Name string
}

// SettlementShare is the amount one participant owes.
type SettlementShare struct {
	ParticipantID string
	Amount        models.Money
}

// SplitResult holds one share per participant, in input order.
type SplitResult struct {
	Shares []SettlementShare

	// Remainder is the amount not assigned to any participant: the
	// platform-absorbed part under PolicyPlatform, or the whole total when
	// there are no participants.
	Remainder models.Money

	// Policy is set for equal splits only.
	Policy RemainderPolicy
}

// Sum returns the total of all shares, excluding the remainder.
func (r *SplitResult) Sum() models.Money {
	var sum models.Money
	for _, s := range r.Shares {
		sum += s.Amount
	}
	return sum
}

// SumMismatchError reports manually entered shares that don't add up.
type SumMismatchError struct {
	Expected models.Money
	Actual   models.Money
}

func (e *SumMismatchError) Error() string {
	return fmt.Sprintf("shares sum to %d, expected %d", e.Actual, e.Expected)
}

func (e *SumMismatchError) Is(target error) bool {
	return target == ErrSumMismatch
}

// EqualSplit divides total evenly among participants using integer arithmetic.
//
// Zero participants is not an error: the result has no shares and the whole
// total is reported as Remainder.
func EqualSplit(total models.Money, participants []Participant, policy RemainderPolicy) (*SplitResult, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, total)
	}
	if _, err := ParsePolicy(string(policy)); err != nil {
		return nil, err
	}

	n := models.Money(len(participants))
	if n == 0 {
		return &SplitResult{Shares: []SettlementShare{}, Remainder: total, Policy: policy}, nil
	}

	base := total / n
	remainder := total - base*n

	shares := make([]SettlementShare, len(participants))
	for i, p := range participants {
		shares[i] = SettlementShare{ParticipantID: p.ID, Amount: base}
	}

	result := &SplitResult{Shares: shares, Policy: policy}
	switch policy {
	case PolicyTrailing:
		shares[len(shares)-1].Amount += remainder
	case PolicyPlatform:
		result.Remainder = remainder
	}
	return result, nil
}

// ManualSplit validates participant-entered shares against total and passes
// them through unchanged.
func ManualSplit(total models.Money, shares []SettlementShare) (*SplitResult, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, total)
	}

	var sum models.Money
	for _, s := range shares {
		if s.Amount < 0 {
			return nil, fmt.Errorf("%w: share for %s is %d", ErrInvalidAmount, s.ParticipantID, s.Amount)
		}
		if s.Amount > math.MaxInt64-sum {
			return nil, fmt.Errorf("%w: shares overflow at %s", ErrInvalidAmount, s.ParticipantID)
		}
		sum += s.Amount
	}
	if sum != total {
		return nil, &SumMismatchError{Expected: total, Actual: sum}
	}

	out := make([]SettlementShare, len(shares))
	copy(out, shares)
	return &SplitResult{Shares: out}, nil
}
