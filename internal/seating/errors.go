package seating

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is matched by every *CapacityError.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrInvalidBenchCount is returned for a classroom with fewer than one bench.
	ErrInvalidBenchCount = errors.New("bench count must be at least 1")
	// ErrNoClassrooms is returned when students need seats but no room was given.
	ErrNoClassrooms = errors.New("no classrooms configured")
	// ErrInvalidMode is returned by ParseMode for unknown seating modes.
	ErrInvalidMode = errors.New("invalid seating mode")
	// ErrDuplicateClassroom is returned when two rooms share a trimmed name.
	ErrDuplicateClassroom = errors.New("duplicate classroom name")
	// ErrLimitExceeded is matched by every *LimitError.
	ErrLimitExceeded = errors.New("request too large")
)

// CapacityError reports demand against supply so callers can tell the user
// exactly how far over capacity the request is.
type CapacityError struct {
	Students   int // students to seat
	Benches    int // benches across all classrooms
	Multiplier int // students per bench in the active mode
}

// Seats is the number of students the classrooms can hold.
func (e *CapacityError) Seats() int {
	return mulSat(e.Benches, e.Multiplier)
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("total students (%d) exceed available seats (%d on %d benches)",
		e.Students, e.Seats(), e.Benches)
}

// Is makes errors.Is(err, ErrCapacityExceeded) true for capacity failures.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// ClassroomError wraps a validation failure with the offending room.
type ClassroomError struct {
	Index int
	Name  string
	Err   error
}

func (e *ClassroomError) Error() string {
	return fmt.Sprintf("classroom %d (%q): %v", e.Index+1, e.Name, e.Err)
}

func (e *ClassroomError) Unwrap() error { return e.Err }

// LimitError reports a request larger than the configured Limits.
type LimitError struct {
	What string // "students" or "benches"
	Got  int
	Max  int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("too many %s: %d (max %d)", e.What, e.Got, e.Max)
}

// Is makes errors.Is(err, ErrLimitExceeded) true for limit failures.
func (e *LimitError) Is(target error) bool {
	return target == ErrLimitExceeded
}
