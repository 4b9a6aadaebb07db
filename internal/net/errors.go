package net

import (
	"errors"
	"fmt"
)

// ErrInvalidTopology reports a network configuration that cannot be
// built: non-positive layer sizes or hyperparameters outside their
// legal ranges. Fatal to construction.
var ErrInvalidTopology = errors.New("invalid topology")

// MalformedRowError reports a training or testing sample whose vector
// lengths do not match the configured network shape. The run is aborted
// rather than silently skipping the row, since a bad row usually means
// a collaborator bug.
type MalformedRowError struct {
	Index int // position in the dataset, -1 for a standalone row
	Got   int // total row length seen
	Want  int // inputSize + outputSize
}

func (e *MalformedRowError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed row: length %d, want %d", e.Got, e.Want)
	}
	return fmt.Sprintf("malformed row %d: length %d, want %d", e.Index, e.Got, e.Want)
}
