package pipeline

import (
	"fmt"
	"strings"
)

// ValidationError reports every reason an upload was rejected. It is always
// returned before any transform or storage work happens.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid upload: " + strings.Join(e.Reasons, "; ")
}

// PersistenceError wraps a metadata-store failure that occurred after the
// variants were already uploaded. CleanupErr records a compensating-delete
// failure, if any; the persistence failure stays the surfaced cause.
type PersistenceError struct {
	Err        error
	CleanupErr error
}

func (e *PersistenceError) Error() string {
	if e.CleanupErr != nil {
		return fmt.Sprintf("persisting asset: %v (compensating delete also failed: %v)", e.Err, e.CleanupErr)
	}
	return fmt.Sprintf("persisting asset: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
