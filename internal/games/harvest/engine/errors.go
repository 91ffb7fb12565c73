package engine

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is matched by every *OutOfBoundsError via errors.Is.
var ErrOutOfBounds = errors.New("engine: cell out of bounds")

// OutOfBoundsError describes a cell access outside the board.
// The board panics with this value; correct callers never trigger it.
type OutOfBoundsError struct {
	Row, Col int
	Size     int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("engine: cell (%d,%d) out of bounds for %dx%d board", e.Row, e.Col, e.Size, e.Size)
}

// Is makes errors.Is(err, ErrOutOfBounds) succeed.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
