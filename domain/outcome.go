package domain

import "errors"

// OutcomeKind tells the notification and rendering collaborators what just happened.
type OutcomeKind string

const (
	OutcomeAdded           OutcomeKind = "added"
	OutcomeMoved           OutcomeKind = "moved"
	OutcomeDeleted         OutcomeKind = "deleted"
	OutcomeCompleted       OutcomeKind = "completed"
	OutcomeSeeded          OutcomeKind = "seeded"
	OutcomeUnchanged       OutcomeKind = "unchanged"
	OutcomeValidationError OutcomeKind = "validation_error"
	OutcomeNotFound        OutcomeKind = "not_found"
	OutcomeInvalidStatus   OutcomeKind = "invalid_status"
	OutcomeStorageError    OutcomeKind = "storage_error"
)

// Outcome is the user-facing result of a façade operation.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	TaskID  int         `json:"taskId,omitempty"`
	Message string      `json:"message"`
}

// OK reports whether the operation succeeded (a no-op counts as success).
func (o Outcome) OK() bool {
	switch o.Kind {
	case OutcomeAdded, OutcomeMoved, OutcomeDeleted, OutcomeCompleted, OutcomeSeeded, OutcomeUnchanged:
		return true
	}
	return false
}

// Mutated reports whether the store changed and the view needs re-projection.
func (o Outcome) Mutated() bool {
	return o.OK() && o.Kind != OutcomeUnchanged
}

// OutcomeFromError converts a store error into the matching failure outcome.
func OutcomeFromError(taskID int, err error) Outcome {
	kind := OutcomeStorageError
	switch {
	case IsDomainError(err, ErrCodeInvalid):
		kind = OutcomeValidationError
	case IsDomainError(err, ErrCodeNotFound):
		kind = OutcomeNotFound
	case IsDomainError(err, ErrCodeInvalidStatus):
		kind = OutcomeInvalidStatus
	}

	message := err.Error()
	var dErr *Error
	if kind == OutcomeStorageError && errors.As(err, &dErr) {
		// the wrapped I/O detail is logged, not shown
		message = dErr.Message
	}
	return Outcome{Kind: kind, TaskID: taskID, Message: message}
}
