package rmsd

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a point set with no points is given to an
	// operation that divides by the number of points.
	ErrEmpty = errors.New("rmsd: empty point set")

	// ErrLength is matched (with errors.Is) by every *LengthError.
	ErrLength = errors.New("rmsd: point sets differ in length")

	// ErrNoConvergence is returned by Fit when the sweep limit is reached
	// before every step size decayed below its threshold.
	ErrNoConvergence = errors.New("rmsd: fit did not converge")
)

// LengthError reports two point sets that cannot be paired because they
// contain a different number of points.
type LengthError struct {
	Len1, Len2 int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("rmsd: point sets differ in length (%d and %d)",
		e.Len1, e.Len2)
}

func (e *LengthError) Is(target error) bool {
	return target == ErrLength
}

// checkPair verifies that two point sets can be compared point by point.
func checkPair(p, q []Coords) error {
	if len(p) != len(q) {
		return &LengthError{len(p), len(q)}
	}
	if len(p) == 0 {
		return ErrEmpty
	}
	return nil
}
