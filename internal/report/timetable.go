package report

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/timelazy/timelazy-server/internal/timetable"
)

// TimetableMeta is printed above every batch grid.
type TimetableMeta struct {
	University    string `json:"university,omitempty"`
	Department    string `json:"department,omitempty"`
	AcademicYear  string `json:"academic_year,omitempty"`
	Term          string `json:"term,omitempty"`
	EffectiveFrom string `json:"effective_from,omitempty"`
}

// TimetableWorkbook renders one sheet per division and batch, named
// "<division>-<batch>", in sorted order. Rows are weekdays and columns are
// the nine slots.
func TimetableWorkbook(grid timetable.Grid, meta TimetableMeta) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := buildTimetable(f, grid, meta); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// WriteTimetable streams the timetable workbook to w.
func WriteTimetable(w io.Writer, grid timetable.Grid, meta TimetableMeta) error {
	f, err := TimetableWorkbook(grid, meta)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func buildTimetable(f *excelize.File, grid timetable.Grid, meta TimetableMeta) error {
	st, err := newStyles(f, "3F51B5")
	if err != nil {
		return err
	}
	names := newSheetNamer()
	first := true
	for _, div := range slices.Sorted(maps.Keys(grid)) {
		batches := grid[div].Batches
		for _, batch := range slices.Sorted(maps.Keys(batches)) {
			sheet := names.name(div + "-" + batch)
			if first {
				if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
					return err
				}
				first = false
			} else if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
			if err := writeBatch(f, sheet, div, batch, batches[batch], meta, st); err != nil {
				return fmt.Errorf("%s/%s: %w", div, batch, err)
			}
		}
	}
	if first {
		return fmt.Errorf("%w: nothing to export", timetable.ErrMalformedGrid)
	}
	f.SetActiveSheet(0)
	return nil
}

func writeBatch(f *excelize.File, sheet, div, batch string, sched timetable.BatchSchedule, meta TimetableMeta, st styles) error {
	w := &sheetWriter{f: f, sheet: sheet}
	lines := []string{meta.University, meta.Department}
	if meta.AcademicYear != "" || meta.Term != "" {
		lines = append(lines, fmt.Sprintf("Academic Year: %s   Term: %s", meta.AcademicYear, meta.Term))
	}
	if meta.EffectiveFrom != "" {
		lines = append(lines, "w.e.f - "+meta.EffectiveFrom)
	}
	lines = append(lines, fmt.Sprintf("Division: %s   Batch: %s", div, batch))
	for i, l := range lines {
		if l == "" {
			continue
		}
		style := 0
		if i == 0 {
			style = st.title
		}
		if err := w.line(l, style); err != nil {
			return err
		}
	}
	w.blank()

	if err := w.values(append(strs("Day"), strs(timetable.Slots...)...), st.header); err != nil {
		return err
	}
	for _, day := range timetable.Days {
		if err := w.values(append(strs(day), strs(sched.Row(day)...)...), st.wrap); err != nil {
			return err
		}
		if err := f.SetRowHeight(sheet, w.row, 32); err != nil {
			return err
		}
	}
	last, _ := excelize.ColumnNumberToName(len(timetable.Slots) + 1)
	return f.SetColWidth(sheet, "A", last, 14)
}
