package timetable

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMalformedGrid is returned when a successful solver reply does not have
// the expected shape.
var ErrMalformedGrid = errors.New("malformed timetable grid")

// Validate checks that every batch schedule only uses known weekday names,
// that each day has exactly one cell per slot, and that the lunch slot is
// free. An empty grid is malformed.
func (g Grid) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: no divisions", ErrMalformedGrid)
	}
	for div, ds := range g {
		if len(ds.Batches) == 0 {
			return fmt.Errorf("%w: division %q has no batches", ErrMalformedGrid, div)
		}
		for batch, sched := range ds.Batches {
			for day, cells := range sched {
				if !slices.Contains(Days, day) {
					return fmt.Errorf("%w: %s/%s: unknown day %q", ErrMalformedGrid, div, batch, day)
				}
				if len(cells) != len(Slots) {
					return fmt.Errorf("%w: %s/%s/%s: %d slots, want %d", ErrMalformedGrid, div, batch, day, len(cells), len(Slots))
				}
				if c := ParseCell(cells[LunchSlot]); !c.Lunch && !c.Empty {
					return fmt.Errorf("%w: %s/%s/%s: class scheduled in lunch slot", ErrMalformedGrid, div, batch, day)
				}
			}
		}
	}
	return nil
}

// Row returns the cells of day for rendering: missing days come back as
// empty slots and the lunch slot always carries LunchLabel.
func (s BatchSchedule) Row(day string) []string {
	row := make([]string, len(Slots))
	cells := s[day]
	for i := range row {
		switch {
		case i == LunchSlot:
			row[i] = LunchLabel
		case i < len(cells) && cells[i] != "":
			row[i] = cells[i]
		default:
			row[i] = EmptySlot
		}
	}
	return row
}
