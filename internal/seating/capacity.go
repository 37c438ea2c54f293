package seating

import "strings"

// TotalBenches sums the bench counts of all classrooms. Non-positive counts
// add nothing and the sum stops at math.MaxInt.
func TotalBenches(classrooms []Classroom) int {
	total := 0
	for _, c := range classrooms {
		if c.BenchCount > 0 {
			total = addSat(total, c.BenchCount)
		}
	}
	return total
}

// TotalStudents counts every student across all divisions of all levels,
// stopping at math.MaxInt.
func TotalStudents(groups []LevelGroup) int {
	total := 0
	for _, g := range groups {
		for _, d := range g.Divisions {
			total = addSat(total, d.Size())
		}
	}
	return total
}

// CanAssign reports whether the classrooms can seat every student in mode.
// It is advisory; the assignment functions repeat the check.
func CanAssign(classrooms []Classroom, groups []LevelGroup, mode Mode) bool {
	return CheckCapacity(classrooms, groups, mode) == nil
}

// CheckCapacity returns a *CapacityError when demand exceeds supply.
func CheckCapacity(classrooms []Classroom, groups []LevelGroup, mode Mode) error {
	students := TotalStudents(groups)
	benches := TotalBenches(classrooms)
	if students > mulSat(benches, mode.Multiplier()) {
		return &CapacityError{Students: students, Benches: benches, Multiplier: mode.Multiplier()}
	}
	return nil
}

// ValidateClassrooms rejects rooms without a usable bench count and rooms
// whose names match once surrounding spaces are trimmed.
func ValidateClassrooms(classrooms []Classroom) error {
	seen := make(map[string]bool, len(classrooms))
	for i, c := range classrooms {
		if c.BenchCount < 1 {
			return &ClassroomError{Index: i, Name: c.Name, Err: ErrInvalidBenchCount}
		}
		name := strings.TrimSpace(c.Name)
		if seen[name] {
			return &ClassroomError{Index: i, Name: c.Name, Err: ErrDuplicateClassroom}
		}
		seen[name] = true
	}
	return nil
}

// precheck is shared by both engines so they refuse to run on the same
// inputs the validator would reject. Limits run before anything is
// allocated per student.
func precheck(classrooms []Classroom, groups []LevelGroup, mode Mode, lim Limits) error {
	if err := ValidateClassrooms(classrooms); err != nil {
		return err
	}
	if err := lim.Check(classrooms, groups); err != nil {
		return err
	}
	if TotalStudents(groups) > 0 && len(classrooms) == 0 {
		return ErrNoClassrooms
	}
	return CheckCapacity(classrooms, groups, mode)
}
