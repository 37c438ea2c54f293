package seating

import "math"

// Default request bounds, used for any zero field of Limits.
const (
	DefaultMaxStudents = 20000
	DefaultMaxBenches  = 10000
)

// Limits bounds a request before any student is materialized.
type Limits struct {
	MaxStudents int `json:"max_students"`
	MaxBenches  int `json:"max_benches"`
}

func (l Limits) withDefaults() Limits {
	if l.MaxStudents <= 0 {
		l.MaxStudents = DefaultMaxStudents
	}
	if l.MaxBenches <= 0 {
		l.MaxBenches = DefaultMaxBenches
	}
	return l
}

// Check returns a *LimitError when the students or benches of a request
// exceed l.
func (l Limits) Check(classrooms []Classroom, groups []LevelGroup) error {
	l = l.withDefaults()
	if n := TotalStudents(groups); n > l.MaxStudents {
		return &LimitError{What: "students", Got: n, Max: l.MaxStudents}
	}
	if n := TotalBenches(classrooms); n > l.MaxBenches {
		return &LimitError{What: "benches", Got: n, Max: l.MaxBenches}
	}
	return nil
}

// addSat adds two non-negative ints, stopping at math.MaxInt.
func addSat(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// mulSat multiplies two non-negative ints, stopping at math.MaxInt.
func mulSat(a, b int) int {
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
