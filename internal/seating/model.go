package seating

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how many students share a bench.
type Mode string

const (
	ModeOne Mode = "one" // one student per bench
	ModeTwo Mode = "two" // two students per bench, paired across cohorts
)

// ParseMode converts the wire value ("one" or "two") into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeOne:
		return ModeOne, nil
	case ModeTwo:
		return ModeTwo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Multiplier is the number of students a single bench holds in this mode.
func (m Mode) Multiplier() int {
	if m == ModeTwo {
		return 2
	}
	return 1
}

// Division is a named roll-number range inside a level.
type Division struct {
	Name      string `json:"name"`
	StartRoll int    `json:"start"`
	EndRoll   int    `json:"end"`
}

// Size is the number of students the division contributes. A reversed range
// contributes nobody; a range wider than math.MaxInt counts as math.MaxInt.
func (d Division) Size() int {
	if d.EndRoll < d.StartRoll {
		return 0
	}
	n := d.EndRoll - d.StartRoll
	if n < 0 || n == math.MaxInt {
		return math.MaxInt
	}
	return n + 1
}

// LevelGroup holds every division of one academic level sitting the same
// subject. The order of a []LevelGroup is the level order used by the engine.
type LevelGroup struct {
	Level     string     `json:"level"`
	Subject   string     `json:"subject"`
	Divisions []Division `json:"divisions"`
}

// Classroom is a room in the registry. Fill order follows slice order.
type Classroom struct {
	Name       string `json:"name"`
	BenchCount int    `json:"benches"`
	Supervisor string `json:"supervisor,omitempty"`
}

// Student is materialized while assigning and never persisted.
type Student struct {
	Level      string `json:"level"`
	Division   string `json:"division"`
	RollNumber string `json:"roll_number"`
	Subject    string `json:"subject"`
}

// CohortKey is the grouping key used by block summaries, e.g. "SEA".
func (s Student) CohortKey() string {
	return s.Level + s.Division
}

// SeatAssignment places one student (and in two-per-bench mode a partner)
// on a numbered bench of a classroom.
type SeatAssignment struct {
	Student
	Classroom  string   `json:"classroom"`
	Supervisor string   `json:"supervisor,omitempty"`
	Bench      int      `json:"bench"`
	Partner    *Student `json:"partner"`
}

// BlockSummaryRow is one contiguous roll range of a cohort inside a room.
type BlockSummaryRow struct {
	BlockNumber    int    `json:"block_number"`
	Room           string `json:"room"`
	Supervisor     string `json:"supervisor,omitempty"`
	CohortKey      string `json:"cohort_key"`
	RollRangeStart string `json:"roll_from"`
	RollRangeEnd   string `json:"roll_to"`
	Count          int    `json:"total"`
}
