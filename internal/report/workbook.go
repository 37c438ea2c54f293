// Package report renders seating plans and timetables as XLSX workbooks.
package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MaxSheetName is Excel's sheet name length limit.
const MaxSheetName = 31

// sheetNamer hands out valid, unique sheet names.
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: map[string]bool{}}
}

// name strips characters Excel forbids, truncates to MaxSheetName and
// appends " (2)", " (3)" ... on collisions. Comparison is case-insensitive
// like Excel's.
func (n *sheetNamer) name(want string) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(want))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Sheet"
	}
	base = truncate(base, MaxSheetName)

	candidate := base
	for i := 2; n.used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncate(base, MaxSheetName-len(suffix)) + suffix
	}
	n.used[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// styles are created once per workbook.
type styles struct {
	title  int
	header int
	cell   int
	wrap   int
}

func newStyles(f *excelize.File, headerFill string) (styles, error) {
	var (
		s   styles
		err error
	)
	border := []excelize.Border{
		{Type: "left", Color: "BDBDBD", Style: 1},
		{Type: "top", Color: "BDBDBD", Style: 1},
		{Type: "right", Color: "BDBDBD", Style: 1},
		{Type: "bottom", Color: "BDBDBD", Style: 1},
	}
	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	}); err != nil {
		return s, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    border,
	}); err != nil {
		return s, err
	}
	s.wrap, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	})
	return s, err
}

// sheetWriter appends rows to one sheet.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

func (w *sheetWriter) cell(col int) string {
	name, _ := excelize.CoordinatesToCellName(col, w.row)
	return name
}

// line writes a single text line in column A and advances.
func (w *sheetWriter) line(text string, style int) error {
	w.row++
	if err := w.f.SetCellValue(w.sheet, w.cell(1), text); err != nil {
		return err
	}
	if style != 0 {
		return w.f.SetCellStyle(w.sheet, w.cell(1), w.cell(1), style)
	}
	return nil
}

func (w *sheetWriter) blank() { w.row++ }

// values writes a row starting at column A and styles it.
func (w *sheetWriter) values(vals []interface{}, style int) error {
	w.row++
	if err := w.f.SetSheetRow(w.sheet, w.cell(1), &vals); err != nil {
		return err
	}
	if style != 0 && len(vals) > 0 {
		return w.f.SetCellStyle(w.sheet, w.cell(1), w.cell(len(vals)), style)
	}
	return nil
}

func strs(ss ...string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
