package seating

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildBlockSummary(t *testing.T) {
	t.Run("one cohort in one room collapses to one row", func(t *testing.T) {
		got, err := AssignOnePerBench(rooms(10), oneDivision("SE", "A", 1, 10))
		require.NoError(t, err)
		require.Equal(t, []BlockSummaryRow{{
			BlockNumber:    1,
			Room:           "R1",
			CohortKey:      "SEA",
			RollRangeStart: "SEA01",
			RollRangeEnd:   "SEA10",
			Count:          10,
		}}, BuildBlockSummary(got, ModeOne))
	})

	t.Run("sorted by cohort then room and numbered after sorting", func(t *testing.T) {
		groups := []LevelGroup{
			{Level: "TE", Divisions: []Division{{"B", 1, 3}}},
			{Level: "SE", Divisions: []Division{{"A", 1, 2}}},
		}
		classrooms := []Classroom{{Name: "Z-101", BenchCount: 2, Supervisor: "Mr. Z"}, {Name: "A-201", BenchCount: 3}}
		got, err := AssignOnePerBench(classrooms, groups)
		require.NoError(t, err)
		require.Equal(t, []BlockSummaryRow{
			{BlockNumber: 1, Room: "A-201", CohortKey: "SEA", RollRangeStart: "SEA01", RollRangeEnd: "SEA02", Count: 2},
			{BlockNumber: 2, Room: "A-201", CohortKey: "TEB", RollRangeStart: "TEB03", RollRangeEnd: "TEB03", Count: 1},
			{BlockNumber: 3, Room: "Z-101", Supervisor: "Mr. Z", CohortKey: "TEB", RollRangeStart: "TEB01", RollRangeEnd: "TEB02", Count: 2},
		}, BuildBlockSummary(got, ModeOne))
	})

	t.Run("partners count in paired mode", func(t *testing.T) {
		groups := []LevelGroup{
			{Level: "SE", Divisions: []Division{{"A", 1, 2}}},
			{Level: "TE", Divisions: []Division{{"B", 1, 2}}},
		}
		got, err := AssignPairedPerBench(rooms(2), groups)
		require.NoError(t, err)
		require.Equal(t, []BlockSummaryRow{
			{BlockNumber: 1, Room: "R1", CohortKey: "SEA", RollRangeStart: "SEA01", RollRangeEnd: "SEA02", Count: 2},
			{BlockNumber: 2, Room: "R1", CohortKey: "TEB", RollRangeStart: "TEB01", RollRangeEnd: "TEB02", Count: 2},
		}, BuildBlockSummary(got, ModeTwo))

		// one-per-bench summarizing ignores partners
		require.Len(t, BuildBlockSummary(got, ModeOne), 1)
	})

	t.Run("ranges use the numeric suffix", func(t *testing.T) {
		got, err := AssignOnePerBench(rooms(120), oneDivision("SE", "A", 1, 105))
		require.NoError(t, err)
		rows := BuildBlockSummary(got, ModeOne)
		require.Len(t, rows, 1)
		require.Equal(t, "SEA01", rows[0].RollRangeStart)
		require.Equal(t, "SEA105", rows[0].RollRangeEnd)
	})

	t.Run("empty arrangement", func(t *testing.T) {
		require.Empty(t, BuildBlockSummary(nil, ModeOne))
	})
}
