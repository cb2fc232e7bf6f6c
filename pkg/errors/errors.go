package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound     = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict     = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation   = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// Scheduling pipeline error taxonomy. Each Kind below corresponds to one
// failure mode a component of the pipeline can raise; none are recovered
// locally and all are surfaced to the API caller.
var (
	// ErrDatasetNotFound is raised by the loader when no dataset row
	// matches the requested id.
	ErrDatasetNotFound = New("DATASET_NOT_FOUND", http.StatusNotFound, "dataset not found")
	// ErrEmptyDataset is raised by the loader when the dataset has zero
	// classes.
	ErrEmptyDataset = New("EMPTY_DATASET", http.StatusUnprocessableEntity, "dataset has no classes")
	// ErrDanglingReference is raised when a class references a missing
	// course.
	ErrDanglingReference = New("DANGLING_REFERENCE", http.StatusUnprocessableEntity, "class references a missing course")
	// ErrNoCompatibleRoom is raised by the preprocessor when a class's room
	// candidate set is empty.
	ErrNoCompatibleRoom = New("NO_COMPATIBLE_ROOM", http.StatusUnprocessableEntity, "no compatible room for class")
	// ErrNoLecturerAvailability is raised by the preprocessor when a
	// class's timeslot-lecturer candidate set is empty.
	ErrNoLecturerAvailability = New("NO_LECTURER_AVAILABILITY", http.StatusUnprocessableEntity, "no lecturer availability for class")
	// ErrSolverUnavailable is raised when the MILP backend could not be
	// constructed.
	ErrSolverUnavailable = New("SOLVER_UNAVAILABLE", http.StatusServiceUnavailable, "solver backend unavailable")
	// ErrNoFeasibleSchedule is raised when the solver proves infeasibility
	// or exhausts its time/node budget without an incumbent.
	ErrNoFeasibleSchedule = New("NO_FEASIBLE_SCHEDULE", http.StatusUnprocessableEntity, "no feasible schedule exists for this dataset")
	// ErrIncompleteAssignment is raised by the projector when a solution
	// lacks the expected variable pattern for a class.
	ErrIncompleteAssignment = New("INCOMPLETE_ASSIGNMENT", http.StatusInternalServerError, "solution missing expected assignment for class")
)

// WithClassID clones a class-scoped error, attaching the class id to the
// message so NoCompatibleRoom/NoLecturerAvailability/IncompleteAssignment
// identify the offending class.
func WithClassID(err *Error, classID int64) *Error {
	return Clone(err, fmt.Sprintf("%s (class_id=%d)", err.Message, classID))
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
