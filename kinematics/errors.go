package kinematics

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDegenerateConfiguration is returned when the geometry would divide by zero, e.g. a target at
	// the base or a zero length link.
	ErrDegenerateConfiguration = errors.New("degenerate configuration")

	// ErrUnreachable is returned by operations that must move the arm when no solution exists.
	// InverseKinematics2DOF itself reports unreachable targets as an empty result, not an error.
	ErrUnreachable = errors.New("target is unreachable")
)

// IncorrectLinkCountError is returned when the 2-link solver is given any other number of links.
type IncorrectLinkCountError struct {
	Got int
}

// NewIncorrectLinkCountError returns an IncorrectLinkCountError for the given count.
func NewIncorrectLinkCountError(got int) error {
	return &IncorrectLinkCountError{Got: got}
}

func (e *IncorrectLinkCountError) Error() string {
	return fmt.Sprintf("2-link inverse kinematics requires exactly 2 links, got %d", e.Got)
}

// NewUnsupportedChainError is returned when a robot is not shaped joint, link, joint, link.
func NewUnsupportedChainError(name string) error {
	return errors.Errorf("robot %q must be a joint, link, joint, link chain to solve analytically", name)
}

// NewUnknownBranchError is returned when a requested branch is not one of the solutions.
func NewUnknownBranchError(branch Branch) error {
	return errors.Errorf("no solution for branch %q", branch)
}
