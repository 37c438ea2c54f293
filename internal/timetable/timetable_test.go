package timetable

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func week(cell string) BatchSchedule {
	s := BatchSchedule{}
	for _, d := range Days {
		row := make([]string, len(Slots))
		for i := range row {
			row[i] = cell
		}
		row[LunchSlot] = LunchLabel
		s[d] = row
	}
	return s
}

func sampleGrid() Grid {
	return Grid{"A": {Batches: map[string]BatchSchedule{"A1": week("CS101\nABC")}}}
}

func sampleRequest() Request {
	return Request{
		University:   "State University",
		Department:   "Computer Engineering",
		AcademicYear: "2024-25",
		Term:         "Odd",
		Divisions:    []Division{{Name: "A", Batches: []string{"A1", "A2", ""}}},
		Faculty:      []Faculty{{Abbr: "ABC", Name: "A. B. Clark", MaxPerDay: 5, MaxPerWeek: 25, Availability: []int{0, 1, 2, 3, 4}}},
		Rooms:        []Room{{Name: "101", Type: "Theory", Capacity: 60}},
		Subjects:     []Subject{{Code: "CS101", Name: "Data Structures", Faculty: []string{"ABC"}, Type: "Theory", MinPerWeek: 3, MaxPerWeek: 5}},
	}
}

func TestSlots(t *testing.T) {
	require.Len(t, Days, 5)
	require.Len(t, Slots, 9)
	require.Equal(t, "08:50-09:40", Slots[0])
	require.Equal(t, "01:00-01:40", Slots[LunchSlot])
	require.Equal(t, "03:20-04:10", Slots[8])
}

func TestDefaultMentorBatches(t *testing.T) {
	got := DefaultMentorBatches(sampleRequest().Divisions)
	require.Equal(t, []MentorBatch{
		{Division: "A", Batch: "A1", Mentor: "TBD", RollRange: [2]string{"A1-01", "A1-30"}},
		{Division: "A", Batch: "A2", Mentor: "TBD", RollRange: [2]string{"A2-01", "A2-30"}},
	}, got)

	req := sampleRequest()
	req.MentorBatches = []MentorBatch{{Division: "A", Batch: "A1", Mentor: "XYZ"}}
	require.Equal(t, req.MentorBatches, req.WithDefaults().MentorBatches)
}

func TestParseCell(t *testing.T) {
	require.Equal(t, Cell{Subject: "CS101", Detail: "ABC"}, ParseCell("CS101\nABC"))
	require.Equal(t, Cell{Subject: "CS101"}, ParseCell("CS101"))
	require.True(t, ParseCell(LunchLabel).Lunch)
	require.True(t, ParseCell("-").Empty)
	require.True(t, ParseCell("").Empty)
}

func TestGridValidate(t *testing.T) {
	require.NoError(t, sampleGrid().Validate())

	short := sampleGrid()
	short["A"].Batches["A1"]["Monday"] = []string{"x"}

	badDay := sampleGrid()
	badDay["A"].Batches["A1"]["Saturday"] = week("-")["Monday"]

	lunch := sampleGrid()
	lunch["A"].Batches["A1"]["Friday"][LunchSlot] = "CS101\nABC"

	cases := map[string]Grid{
		"empty":       {},
		"no batches":  {"A": {}},
		"short day":   short,
		"unknown day": badDay,
		"lunch class": lunch,
	}
	for name, g := range cases {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, g.Validate(), ErrMalformedGrid)
		})
	}
}

func TestBatchScheduleRow(t *testing.T) {
	s := BatchSchedule{"Monday": {"CS101\nABC", ""}}
	row := s.Row("Monday")
	require.Len(t, row, 9)
	require.Equal(t, "CS101\nABC", row[0])
	require.Equal(t, EmptySlot, row[1])
	require.Equal(t, LunchLabel, row[LunchSlot])
	require.Equal(t, EmptySlot, s.Row("Tuesday")[0])
}

func solver(t *testing.T, status int, reply string, seen *Request) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if seen != nil {
			require.NoError(t, json.Unmarshal(body, seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientGenerate(t *testing.T) {
	grid, err := json.Marshal(sampleGrid())
	require.NoError(t, err)
	enveloped := `{"status":"success","timetable":` + string(grid) + `}`

	t.Run("enveloped", func(t *testing.T) {
		var seen Request
		srv := solver(t, http.StatusOK, enveloped, &seen)
		res, err := NewClient(srv.URL, 5*time.Second).Generate(context.Background(), sampleRequest())
		require.NoError(t, err)
		require.Equal(t, StatusSuccess, res.Status)
		require.Equal(t, sampleGrid(), res.Timetable)
		require.Len(t, seen.MentorBatches, 2)
		require.Equal(t, "TBD", seen.MentorBatches[0].Mentor)
	})

	t.Run("bare grid", func(t *testing.T) {
		srv := solver(t, http.StatusOK, string(grid), nil)
		res, err := NewClient(srv.URL, 5*time.Second).Generate(context.Background(), sampleRequest())
		require.NoError(t, err)
		require.Equal(t, sampleGrid(), res.Timetable)
	})

	failures := []struct {
		name   string
		status int
		reply  string
		want   error
		msg    string
	}{
		{"error status", http.StatusOK, `{"status":"error","message":"infeasible"}`, ErrSolver, "infeasible"},
		{"error body", http.StatusInternalServerError, `{"error":"Failed to generate timetable"}`, ErrSolver, "Failed to generate timetable"},
		{"non json 500", http.StatusBadGateway, `<html>`, ErrSolver, "http 502"},
		{"non json 200", http.StatusOK, `<html>`, ErrMalformedGrid, ""},
		{"short grid", http.StatusOK, `{"status":"success","timetable":{"A":{"batches":{"A1":{"Monday":["x"]}}}}}`, ErrMalformedGrid, "Monday"},
		{"unknown status", http.StatusOK, `{"status":"pending","timetable":{}}`, ErrMalformedGrid, "pending"},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			srv := solver(t, tc.status, tc.reply, nil)
			_, err := NewClient(srv.URL, 5*time.Second).Generate(context.Background(), sampleRequest())
			require.ErrorIs(t, err, tc.want)
			require.True(t, strings.Contains(err.Error(), tc.msg), err.Error())
		})
	}
}

func TestClientGenerateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Generate(context.Background(), sampleRequest())
	require.ErrorIs(t, err, ErrSolver)
}
