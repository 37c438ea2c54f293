package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/timelazy/timelazy-server/internal/seating"
)

// SummarySheet is the first sheet of every seating workbook.
const SummarySheet = "Block Summary"

// DefaultPreparedBy signs the block summary when no preparer is given.
const DefaultPreparedBy = "Exam Cell"

// Header is the free text printed above the block summary.
type Header struct {
	Institution string `json:"institution,omitempty"`
	Examination string `json:"examination,omitempty"`
	PreparedBy  string `json:"prepared_by,omitempty"`
}

var (
	summaryColumns   = []string{"Block No.", "Classroom", "Supervisor", "Division", "Roll No. From", "Roll No. To", "Total"}
	classroomColumns = []string{"Year", "Roll Number", "Division", "Subject", "Bench"}
	partnerColumns   = []string{"Partner Year", "Partner Roll Number", "Partner Division", "Partner Subject"}
)

// SeatingWorkbook builds the block summary sheet followed by one sheet per
// classroom that received students, in fill order.
func SeatingWorkbook(plan *seating.Plan, hdr Header) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := buildSeating(f, plan, hdr); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// WriteSeating streams the seating workbook to w.
func WriteSeating(w io.Writer, plan *seating.Plan, hdr Header) error {
	f, err := SeatingWorkbook(plan, hdr)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func buildSeating(f *excelize.File, plan *seating.Plan, hdr Header) error {
	st, err := newStyles(f, "3F51B5")
	if err != nil {
		return err
	}
	names := newSheetNamer()
	summary := names.name(SummarySheet)
	if err := f.SetSheetName(f.GetSheetName(0), summary); err != nil {
		return err
	}
	if err := writeSummary(f, summary, plan, hdr, st); err != nil {
		return fmt.Errorf("block summary: %w", err)
	}

	roomStyles, err := newStyles(f, "009688")
	if err != nil {
		return err
	}
	for _, room := range plan.Classrooms {
		seats := plan.ByClassroom(room.Name)
		if len(seats) == 0 {
			continue
		}
		sheet := names.name(room.Name)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeClassroom(f, sheet, room, seats, plan.Mode, roomStyles); err != nil {
			return fmt.Errorf("classroom %q: %w", room.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return nil
}

func writeSummary(f *excelize.File, sheet string, plan *seating.Plan, hdr Header, st styles) error {
	w := &sheetWriter{f: f, sheet: sheet}
	if hdr.Institution != "" {
		if err := w.line(hdr.Institution, st.title); err != nil {
			return err
		}
	}
	if hdr.Examination != "" {
		if err := w.line(hdr.Examination, st.title); err != nil {
			return err
		}
	}
	if err := w.line(fmt.Sprintf("Date: %s   Time: %s - %s", plan.ExamDate, plan.TimeFrom, plan.TimeTo), 0); err != nil {
		return err
	}
	if err := w.line("Years: "+strings.Join(plan.Years, ", "), 0); err != nil {
		return err
	}
	w.blank()

	if err := w.values(strs(summaryColumns...), st.header); err != nil {
		return err
	}
	for _, r := range plan.Summary {
		row := []interface{}{r.BlockNumber, r.Room, r.Supervisor, r.CohortKey, r.RollRangeStart, r.RollRangeEnd, r.Count}
		if err := w.values(row, st.cell); err != nil {
			return err
		}
	}
	w.blank()

	by := hdr.PreparedBy
	if by == "" {
		by = DefaultPreparedBy
	}
	if err := w.line("Prepared by: "+by, 0); err != nil {
		return err
	}
	if err := w.line(fmt.Sprintf("Total Students: %d", plan.TotalStudents), 0); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "G", 16)
}

func writeClassroom(f *excelize.File, sheet string, room seating.Classroom, seats []seating.SeatAssignment, mode seating.Mode, st styles) error {
	w := &sheetWriter{f: f, sheet: sheet}
	if err := w.line("Seating Arrangement for "+room.Name, st.title); err != nil {
		return err
	}
	if err := w.line(fmt.Sprintf("Total Benches: %d", room.BenchCount), 0); err != nil {
		return err
	}
	if room.Supervisor != "" {
		if err := w.line("Supervisor: "+room.Supervisor, 0); err != nil {
			return err
		}
	}
	w.blank()

	cols := classroomColumns
	if mode == seating.ModeTwo {
		cols = append(append([]string{}, classroomColumns...), partnerColumns...)
	}
	if err := w.values(strs(cols...), st.header); err != nil {
		return err
	}
	for _, a := range seats {
		row := []interface{}{a.Level, a.RollNumber, a.Division, a.Subject, a.Bench}
		if mode == seating.ModeTwo {
			if p := a.Partner; p != nil {
				row = append(row, p.Level, p.RollNumber, p.Division, p.Subject)
			} else {
				row = append(row, "-", "-", "-", "-")
			}
		}
		if err := w.values(row, st.cell); err != nil {
			return err
		}
	}
	last, _ := excelize.ColumnNumberToName(len(cols))
	return f.SetColWidth(sheet, "A", last, 16)
}
