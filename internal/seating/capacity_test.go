package seating

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func rooms(benches ...int) []Classroom {
	out := make([]Classroom, len(benches))
	for i, b := range benches {
		out[i] = Classroom{Name: "R" + string(rune('1'+i)), BenchCount: b}
	}
	return out
}

func oneDivision(level, name string, start, end int) []LevelGroup {
	return []LevelGroup{{
		Level:     level,
		Subject:   "Maths",
		Divisions: []Division{{Name: name, StartRoll: start, EndRoll: end}},
	}}
}

func TestTotals(t *testing.T) {
	groups := []LevelGroup{
		{Level: "SE", Divisions: []Division{{"A", 1, 10}, {"B", 11, 20}}},
		{Level: "TE", Divisions: []Division{{"A", 5, 4}}},
		{Level: "BE", Divisions: []Division{{"C", 3, 3}}},
	}
	require.Equal(t, 21, TotalStudents(groups))
	require.Equal(t, 7, TotalBenches([]Classroom{{BenchCount: 3}, {BenchCount: 4}, {BenchCount: -2}}))
}

func TestCanAssign(t *testing.T) {
	classrooms := rooms(2, 1)
	groups := oneDivision("SE", "A", 1, 4) // benches + 1

	t.Run("one per bench refuses one extra student", func(t *testing.T) {
		require.False(t, CanAssign(classrooms, groups, ModeOne))

		got, err := AssignOnePerBench(classrooms, groups)
		require.Nil(t, got)
		require.ErrorIs(t, err, ErrCapacityExceeded)

		var capErr *CapacityError
		require.True(t, errors.As(err, &capErr))
		require.Equal(t, 4, capErr.Students)
		require.Equal(t, 3, capErr.Benches)
		require.Equal(t, 3, capErr.Seats())
		require.Contains(t, capErr.Error(), "total students (4) exceed available seats (3")
	})

	t.Run("two per bench doubles capacity", func(t *testing.T) {
		require.True(t, CanAssign(classrooms, groups, ModeTwo))
		require.False(t, CanAssign(classrooms, oneDivision("SE", "A", 1, 7), ModeTwo))
	})

	t.Run("exact fit is allowed", func(t *testing.T) {
		require.True(t, CanAssign(classrooms, oneDivision("SE", "A", 1, 3), ModeOne))
	})
}

func TestValidateClassrooms(t *testing.T) {
	err := ValidateClassrooms([]Classroom{{Name: "R1", BenchCount: 2}, {Name: "R2", BenchCount: 0}})
	require.ErrorIs(t, err, ErrInvalidBenchCount)
	require.Contains(t, err.Error(), `classroom 2 ("R2")`)

	require.NoError(t, ValidateClassrooms(rooms(1, 5)))

	err = ValidateClassrooms([]Classroom{{Name: "R1", BenchCount: 2}, {Name: " R1 ", BenchCount: 3}})
	require.ErrorIs(t, err, ErrDuplicateClassroom)
	require.Contains(t, err.Error(), "classroom 2")
}

func TestDivisionSizeSaturates(t *testing.T) {
	tests := []struct {
		name string
		d    Division
		want int
	}{
		{"single", Division{StartRoll: 7, EndRoll: 7}, 1},
		{"reversed", Division{StartRoll: 5, EndRoll: 4}, 0},
		{"widest non-overflowing", Division{StartRoll: 1, EndRoll: math.MaxInt}, math.MaxInt},
		{"zero to max", Division{StartRoll: 0, EndRoll: math.MaxInt}, math.MaxInt},
		{"min to max", Division{StartRoll: math.MinInt, EndRoll: math.MaxInt}, math.MaxInt},
		{"negative start", Division{StartRoll: -1, EndRoll: math.MaxInt}, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.d.Size())
		})
	}
}

func TestTotalsSaturate(t *testing.T) {
	huge := []LevelGroup{
		{Level: "SE", Divisions: []Division{{"A", 0, math.MaxInt}, {"B", 1, 10}}},
		{Level: "TE", Divisions: []Division{{"A", 1, math.MaxInt}}},
	}
	require.Equal(t, math.MaxInt, TotalStudents(huge))
	require.Equal(t, math.MaxInt, TotalBenches([]Classroom{{BenchCount: math.MaxInt}, {BenchCount: 1}}))

	require.False(t, CanAssign(rooms(1), huge, ModeOne))

	capErr := &CapacityError{Students: 1, Benches: math.MaxInt, Multiplier: 2}
	require.Equal(t, math.MaxInt, capErr.Seats())
}

func TestOversizedRangeIsRefused(t *testing.T) {
	groups := oneDivision("SE", "A", 0, math.MaxInt)

	for _, mode := range []Mode{ModeOne, ModeTwo} {
		t.Run(string(mode), func(t *testing.T) {
			var got []SeatAssignment
			var err error
			require.NotPanics(t, func() { got, err = Assign(rooms(1), groups, mode) })
			require.Nil(t, got)
			require.ErrorIs(t, err, ErrLimitExceeded)
		})
	}
}

func TestLimits(t *testing.T) {
	t.Run("defaults bound students before allocation", func(t *testing.T) {
		big := oneDivision("SE", "A", 1, DefaultMaxStudents+1)
		classrooms := []Classroom{{Name: "Hall", BenchCount: DefaultMaxBenches}}

		err := Limits{}.Check(classrooms, big)
		var limErr *LimitError
		require.True(t, errors.As(err, &limErr))
		require.Equal(t, "students", limErr.What)
		require.Equal(t, DefaultMaxStudents+1, limErr.Got)
		require.Equal(t, DefaultMaxStudents, limErr.Max)
		require.EqualError(t, err, "too many students: 20001 (max 20000)")

		_, err = AssignPairedPerBench(classrooms, big)
		require.ErrorIs(t, err, ErrLimitExceeded)
	})

	t.Run("benches", func(t *testing.T) {
		err := Limits{MaxBenches: 10}.Check(rooms(6, 5), oneDivision("SE", "A", 1, 3))
		require.ErrorIs(t, err, ErrLimitExceeded)
		require.Contains(t, err.Error(), "too many benches: 11 (max 10)")
	})

	t.Run("custom limits apply through Generate", func(t *testing.T) {
		req := Request{
			Mode:       ModeOne,
			Classrooms: rooms(5),
			Levels:     oneDivision("SE", "A", 1, 5),
			Limits:     Limits{MaxStudents: 4},
		}
		_, err := Generate(req)
		require.ErrorIs(t, err, ErrLimitExceeded)

		req.Limits = Limits{MaxStudents: 5}
		plan, err := Generate(req)
		require.NoError(t, err)
		require.Len(t, plan.Assignments, 5)
	})
}
