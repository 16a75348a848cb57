package scheduling

import (
	"fmt"
	"time"

	"interview-scheduler-backend/internal/model"
)

// ValidationError reports malformed input to a scheduling operation. The
// operation rejects it synchronously and no state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StateError reports an operation attempted from a workflow state that does
// not permit it.
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not allowed in state %q", e.Op, e.State)
}

// ConflictError reports that a proposed interval collides with existing
// scheduled interviews for the same panelist. It is the one error expected
// under normal operation (benign races) and callers should present it as
// "pick another time", not as a system failure.
type ConflictError struct {
	PanelistID string
	Start      time.Time
	End        time.Time
	Conflicts  []model.InterviewSchedule
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("panelist %s already booked between %s and %s (%d overlapping)",
		e.PanelistID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339), len(e.Conflicts))
}

// PersistenceError wraps a backing-store failure. The core does not retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
