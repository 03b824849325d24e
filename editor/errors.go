package editor

import (
	"errors"
	"fmt"
)

// ErrRejected is matched by every RejectedError.
var ErrRejected = errors.New("operation rejected")

// RejectedError reports an operation whose preconditions were not met.
// The document is unchanged when one is returned.
type RejectedError struct {
	Op     string
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

func reject(op, format string, args ...any) error {
	return &RejectedError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// ValidationError describes one structural problem in a document.
type ValidationError struct {
	NodeID  string
	Message string
}

func (e ValidationError) Error() string {
	if e.NodeID == "" {
		return e.Message
	}
	return fmt.Sprintf("node %s: %s", e.NodeID, e.Message)
}

// InvalidDocumentError is returned by LoadDocument for documents that fail
// Validate.
type InvalidDocumentError struct {
	Problems []ValidationError
}

func (e *InvalidDocumentError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid document: " + e.Problems[0].Error()
	}
	return fmt.Sprintf("invalid document: %s (and %d more)", e.Problems[0].Error(), len(e.Problems)-1)
}
