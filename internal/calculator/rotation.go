package calculator

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	ErrNoAssignees     = errors.New("task has no assignees")
	ErrUnknownRotation = errors.New("unknown rotation")
)

// Rotation is how a recurring chore moves between assignees.
type Rotation string

const (
	RotationRoundRobin Rotation = "round_robin"
	RotationRandom     Rotation = "random"
)

// ParseRotation maps a request value to a Rotation. Empty means round robin.
func ParseRotation(s string) (Rotation, error) {
	switch r := Rotation(s); r {
	case "":
		return RotationRoundRobin, nil
	case RotationRoundRobin, RotationRandom:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRotation, s)
	}
}

// NextAssignee returns the index in assignees of whoever takes the chore
// after current. Random rotation never hands the task back to the current
// holder unless they are the only assignee. An out-of-range current means
// nobody holds the task yet, so the first assignee takes it.
func NextAssignee(rotation Rotation, assignees []string, current int, rng *rand.Rand) (int, error) {
	if rotation != RotationRoundRobin && rotation != RotationRandom {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRotation, rotation)
	}
	n := len(assignees)
	if n == 0 {
		return 0, ErrNoAssignees
	}
	if current < 0 || current >= n {
		return 0, nil
	}

	if rotation == RotationRoundRobin {
		return (current + 1) % n, nil
	}
	if n == 1 {
		return 0, nil
	}
	// Pick among the n-1 others, then skip over current.
	next := rng.IntN(n - 1)
	if next >= current {
		next++
	}
	return next, nil
}
