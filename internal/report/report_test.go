package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/timelazy/timelazy-server/internal/seating"
	"github.com/timelazy/timelazy-server/internal/timetable"
)

func reopen(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func rows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	rs, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rs
}

func plan(t *testing.T, mode seating.Mode) *seating.Plan {
	t.Helper()
	p, err := seating.Generate(seating.Request{
		ExamDate: "2024-05-10",
		TimeFrom: "10:00",
		TimeTo:   "13:00",
		Mode:     mode,
		Classrooms: []seating.Classroom{
			{Name: "R1", BenchCount: 2, Supervisor: "Dr. Rao"},
			{Name: "R2", BenchCount: 2},
			{Name: "Spare", BenchCount: 5},
		},
		Levels: []seating.LevelGroup{
			{Level: "SE", Subject: "Maths", Divisions: []seating.Division{{Name: "A", StartRoll: 1, EndRoll: 2}}},
			{Level: "TE", Subject: "Physics", Divisions: []seating.Division{{Name: "B", StartRoll: 1, EndRoll: 2}}},
		},
	})
	require.NoError(t, err)
	return p
}

func TestWriteSeatingOnePerBench(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSeating(&buf, plan(t, seating.ModeOne), Header{Institution: "Institute of Technology", Examination: "Unit Test 1"}))
	f := reopen(t, &buf)

	require.Equal(t, []string{SummarySheet, "R1", "R2"}, f.GetSheetList())

	summary := rows(t, f, SummarySheet)
	require.Equal(t, []string{"Institute of Technology"}, summary[0])
	require.Equal(t, []string{"Unit Test 1"}, summary[1])
	require.Equal(t, []string{"Date: 2024-05-10   Time: 10:00 - 13:00"}, summary[2])
	require.Equal(t, []string{"Years: SE, TE"}, summary[3])
	require.Equal(t, summaryColumns, summary[5])
	require.Equal(t, []string{"1", "R1", "Dr. Rao", "SEA", "SEA01", "SEA02", "2"}, summary[6])
	require.Equal(t, []string{"2", "R2", "", "TEB", "TEB01", "TEB02", "2"}, summary[7])
	require.Equal(t, []string{"Prepared by: Exam Cell"}, summary[9])
	require.Equal(t, []string{"Total Students: 4"}, summary[10])

	r1 := rows(t, f, "R1")
	require.Equal(t, []string{"Seating Arrangement for R1"}, r1[0])
	require.Equal(t, []string{"Total Benches: 2"}, r1[1])
	require.Equal(t, []string{"Supervisor: Dr. Rao"}, r1[2])
	require.Equal(t, classroomColumns, r1[4])
	require.Equal(t, []string{"SE", "SEA01", "A", "Maths", "1"}, r1[5])
	require.Equal(t, []string{"SE", "SEA02", "A", "Maths", "2"}, r1[6])

	r2 := rows(t, f, "R2")
	require.Equal(t, []string{"Total Benches: 2"}, r2[1])
	require.Equal(t, classroomColumns, r2[3])
}

func TestWriteSeatingPaired(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSeating(&buf, plan(t, seating.ModeTwo), Header{PreparedBy: "Dean Office"}))
	f := reopen(t, &buf)

	require.Equal(t, []string{SummarySheet, "R1"}, f.GetSheetList())

	summary := rows(t, f, SummarySheet)
	require.Equal(t, []string{"Date: 2024-05-10   Time: 10:00 - 13:00"}, summary[0])
	require.Equal(t, summaryColumns, summary[3])
	require.Equal(t, []string{"1", "R1", "Dr. Rao", "SEA", "SEA01", "SEA02", "2"}, summary[4])
	require.Equal(t, []string{"2", "R1", "Dr. Rao", "TEB", "TEB01", "TEB02", "2"}, summary[5])
	require.Equal(t, []string{"Prepared by: Dean Office"}, summary[7])

	r1 := rows(t, f, "R1")
	require.Equal(t, append(append([]string{}, classroomColumns...), partnerColumns...), r1[4])
	require.Equal(t, []string{"SE", "SEA01", "A", "Maths", "1", "TE", "TEB01", "B", "Physics"}, r1[5])
	require.Equal(t, []string{"SE", "SEA02", "A", "Maths", "2", "TE", "TEB02", "B", "Physics"}, r1[6])
}

func TestSheetNamer(t *testing.T) {
	n := newSheetNamer()
	require.Equal(t, "Block Summary", n.name("Block Summary"))
	require.Equal(t, "Block Summary (2)", n.name("block summary"))
	require.Equal(t, "Lab_1_ A", n.name("Lab/1: A"))
	require.Equal(t, "Sheet", n.name("  "))

	long := n.name("Department of Electronics and Telecommunication")
	require.Len(t, []rune(long), MaxSheetName)
	again := n.name("Department of Electronics and Telecommunication")
	require.Len(t, []rune(again), MaxSheetName)
	require.Equal(t, " (2)", again[len(again)-4:])
}

func TestWriteTimetable(t *testing.T) {
	sched := timetable.BatchSchedule{}
	for _, d := range timetable.Days {
		row := []string{"CS101\nABC", "-", "-", "-", "-", timetable.LunchLabel, "-", "-", "-"}
		sched[d] = row
	}
	grid := timetable.Grid{
		"B": {Batches: map[string]timetable.BatchSchedule{"B1": sched}},
		"A": {Batches: map[string]timetable.BatchSchedule{"A2": sched, "A1": sched}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTimetable(&buf, grid, TimetableMeta{University: "State University", AcademicYear: "2024-25", Term: "Odd"}))
	f := reopen(t, &buf)

	require.Equal(t, []string{"A-A1", "A-A2", "B-B1"}, f.GetSheetList())

	rs := rows(t, f, "A-A1")
	require.Equal(t, []string{"State University"}, rs[0])
	require.Equal(t, []string{"Academic Year: 2024-25   Term: Odd"}, rs[1])
	require.Equal(t, []string{"Division: A   Batch: A1"}, rs[2])
	require.Equal(t, append([]string{"Day"}, timetable.Slots...), rs[4])
	require.Equal(t, "Monday", rs[5][0])
	require.Equal(t, "CS101\nABC", rs[5][1])
	require.Equal(t, timetable.LunchLabel, rs[5][1+timetable.LunchSlot])
	require.Equal(t, "Friday", rs[9][0])
}

func TestWriteTimetableEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTimetable(&buf, timetable.Grid{}, TimetableMeta{})
	require.ErrorIs(t, err, timetable.ErrMalformedGrid)
}
