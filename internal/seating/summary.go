package seating

import "sort"

type blockKey struct {
	cohort string
	room   string
}

type block struct {
	key        blockKey
	supervisor string
	rolls      []string
}

// BuildBlockSummary collapses an arrangement into one row per (cohort, room)
// pair, spanning the lowest to highest roll number seated there. In
// two-per-bench mode partners count as students of their own cohort.
//
// Rows are sorted by cohort key then room, and block numbers follow that
// final order.
func BuildBlockSummary(assignments []SeatAssignment, mode Mode) []BlockSummaryRow {
	index := map[blockKey]*block{}
	var blocks []*block
	add := func(st Student, room, supervisor string) {
		k := blockKey{cohort: st.CohortKey(), room: room}
		b, ok := index[k]
		if !ok {
			b = &block{key: k, supervisor: supervisor}
			index[k] = b
			blocks = append(blocks, b)
		}
		b.rolls = append(b.rolls, st.RollNumber)
	}

	for _, a := range assignments {
		add(a.Student, a.Classroom, a.Supervisor)
		if mode == ModeTwo && a.Partner != nil {
			add(*a.Partner, a.Classroom, a.Supervisor)
		}
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].key.cohort != blocks[j].key.cohort {
			return blocks[i].key.cohort < blocks[j].key.cohort
		}
		return blocks[i].key.room < blocks[j].key.room
	})

	rows := make([]BlockSummaryRow, 0, len(blocks))
	for i, b := range blocks {
		sort.SliceStable(b.rolls, func(x, y int) bool { return rollLess(b.rolls[x], b.rolls[y]) })
		rows = append(rows, BlockSummaryRow{
			BlockNumber:    i + 1,
			Room:           b.key.room,
			Supervisor:     b.supervisor,
			CohortKey:      b.key.cohort,
			RollRangeStart: b.rolls[0],
			RollRangeEnd:   b.rolls[len(b.rolls)-1],
			Count:          len(b.rolls),
		})
	}
	return rows
}
