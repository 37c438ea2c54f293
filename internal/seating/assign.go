package seating

// Flatten expands level groups into the ordered student stream: levels in
// input order, then divisions in input order, then rolls ascending. It does
// not bound its input; the engines check Limits first.
func Flatten(groups []LevelGroup) []Student {
	out := make([]Student, 0, min(TotalStudents(groups), DefaultMaxStudents))
	for _, g := range groups {
		for _, d := range g.Divisions {
			n := d.Size()
			for seq := 1; seq <= n; seq++ {
				out = append(out, Student{
					Level:      g.Level,
					Division:   d.Name,
					RollNumber: FormatRoll(g.Level, d.Name, seq),
					Subject:    g.Subject,
				})
			}
		}
	}
	return out
}

// Assign dispatches to the engine for mode using the default Limits.
func Assign(classrooms []Classroom, groups []LevelGroup, mode Mode) ([]SeatAssignment, error) {
	return assign(classrooms, groups, mode, Limits{})
}

func assign(classrooms []Classroom, groups []LevelGroup, mode Mode, lim Limits) ([]SeatAssignment, error) {
	if mode == ModeTwo {
		return assignPaired(classrooms, groups, lim)
	}
	return assignOne(classrooms, groups, lim)
}

// benchCursor walks classrooms bench by bench: every bench of a room is
// used before moving to the next room.
type benchCursor struct {
	rooms []Classroom
	room  int
	bench int
}

func newBenchCursor(rooms []Classroom) *benchCursor {
	return &benchCursor{rooms: rooms, bench: 1}
}

// next returns the room and bench number for the next seat and advances.
func (c *benchCursor) next() (Classroom, int, error) {
	if c.room >= len(c.rooms) {
		return Classroom{}, 0, ErrCapacityExceeded
	}
	room, bench := c.rooms[c.room], c.bench
	c.bench++
	if c.bench > room.BenchCount {
		c.bench = 1
		c.room++
	}
	return room, bench, nil
}

// AssignOnePerBench seats one student per bench in stream order. Cohorts are
// never interleaved. It refuses to run when students outnumber benches.
func AssignOnePerBench(classrooms []Classroom, groups []LevelGroup) ([]SeatAssignment, error) {
	return assignOne(classrooms, groups, Limits{})
}

func assignOne(classrooms []Classroom, groups []LevelGroup, lim Limits) ([]SeatAssignment, error) {
	if err := precheck(classrooms, groups, ModeOne, lim); err != nil {
		return nil, err
	}
	students := Flatten(groups)
	cur := newBenchCursor(classrooms)
	out := make([]SeatAssignment, 0, len(students))
	for _, st := range students {
		room, bench, err := cur.next()
		if err != nil {
			return nil, capacityErr(classrooms, groups, ModeOne)
		}
		out = append(out, SeatAssignment{
			Student:    st,
			Classroom:  room.Name,
			Supervisor: room.Supervisor,
			Bench:      bench,
		})
	}
	return out, nil
}

// AssignPairedPerBench seats two students per bench, pairing each student
// of the level being drained with someone from another cohort when one is
// left. See levelQueues.partnerFor for the exact preference order.
func AssignPairedPerBench(classrooms []Classroom, groups []LevelGroup) ([]SeatAssignment, error) {
	return assignPaired(classrooms, groups, Limits{})
}

func assignPaired(classrooms []Classroom, groups []LevelGroup, lim Limits) ([]SeatAssignment, error) {
	if err := precheck(classrooms, groups, ModeTwo, lim); err != nil {
		return nil, err
	}
	q := newLevelQueues(Flatten(groups))
	cur := newBenchCursor(classrooms)
	out := make([]SeatAssignment, 0, (TotalStudents(groups)+1)/2)
	for lvl := range q.queues {
		for len(q.queues[lvl]) > 0 {
			primary := q.pop(lvl, 0)
			partner := q.partnerFor(lvl, primary)
			room, bench, err := cur.next()
			if err != nil {
				return nil, capacityErr(classrooms, groups, ModeTwo)
			}
			out = append(out, SeatAssignment{
				Student:    primary,
				Classroom:  room.Name,
				Supervisor: room.Supervisor,
				Bench:      bench,
				Partner:    partner,
			})
		}
	}
	return out, nil
}

func capacityErr(classrooms []Classroom, groups []LevelGroup, mode Mode) error {
	return &CapacityError{
		Students:   TotalStudents(groups),
		Benches:    TotalBenches(classrooms),
		Multiplier: mode.Multiplier(),
	}
}

// levelQueues holds one FIFO queue per distinct level, in first-seen order.
type levelQueues struct {
	queues [][]Student
}

func newLevelQueues(students []Student) *levelQueues {
	index := map[string]int{}
	q := &levelQueues{}
	for _, st := range students {
		i, ok := index[st.Level]
		if !ok {
			i = len(q.queues)
			index[st.Level] = i
			q.queues = append(q.queues, nil)
		}
		q.queues[i] = append(q.queues[i], st)
	}
	return q
}

func (q *levelQueues) pop(lvl, pos int) Student {
	st := q.queues[lvl][pos]
	q.queues[lvl] = append(q.queues[lvl][:pos], q.queues[lvl][pos+1:]...)
	return st
}

// partnerFor removes and returns the bench partner for primary, or nil when
// nobody is left. Preference:
//  1. head of the other level with the most students left (ties go to the
//     earlier level), so no level runs dry while another piles up
//  2. earliest student of the same level but a different division
//  3. head of the primary's own queue
func (q *levelQueues) partnerFor(lvl int, primary Student) *Student {
	best := -1
	for other := range q.queues {
		if other == lvl || len(q.queues[other]) == 0 {
			continue
		}
		if best < 0 || len(q.queues[other]) > len(q.queues[best]) {
			best = other
		}
	}
	if best >= 0 {
		st := q.pop(best, 0)
		return &st
	}
	own := q.queues[lvl]
	for i, st := range own {
		if st.CohortKey() != primary.CohortKey() {
			st = q.pop(lvl, i)
			return &st
		}
	}
	if len(own) > 0 {
		st := q.pop(lvl, 0)
		return &st
	}
	return nil
}
