package seating

// Request is everything needed to produce a seating plan for one exam
// session.
type Request struct {
	ExamDate   string       `json:"exam_date"`
	TimeFrom   string       `json:"exam_time_from"`
	TimeTo     string       `json:"exam_time_to"`
	Mode       Mode         `json:"seating_mode"`
	Classrooms []Classroom  `json:"classrooms"`
	Levels     []LevelGroup `json:"levels"`
	// Limits is supplied by the caller and not persisted.
	Limits Limits `json:"-"`
}

// Plan is the computed arrangement plus the metadata the report needs.
type Plan struct {
	ExamDate      string            `json:"exam_date"`
	TimeFrom      string            `json:"exam_time_from"`
	TimeTo        string            `json:"exam_time_to"`
	Mode          Mode              `json:"seating_mode"`
	Years         []string          `json:"years"`
	Classrooms    []Classroom       `json:"classrooms"`
	Assignments   []SeatAssignment  `json:"assignments"`
	Summary       []BlockSummaryRow `json:"block_summary"`
	TotalStudents int               `json:"total_students"`
	TotalBenches  int               `json:"total_benches"`
	BenchesUsed   int               `json:"benches_used"`
}

// Generate validates the request, assigns every student and builds the
// block summary. No partial plan is ever returned.
func Generate(req Request) (*Plan, error) {
	mode := ModeOne
	if req.Mode != "" {
		m, err := ParseMode(string(req.Mode))
		if err != nil {
			return nil, err
		}
		mode = m
	}
	assignments, err := assign(req.Classrooms, req.Levels, mode, req.Limits)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ExamDate:      req.ExamDate,
		TimeFrom:      req.TimeFrom,
		TimeTo:        req.TimeTo,
		Mode:          mode,
		Years:         YearsWithStudents(req.Levels),
		Classrooms:    req.Classrooms,
		Assignments:   assignments,
		Summary:       BuildBlockSummary(assignments, mode),
		TotalStudents: TotalStudents(req.Levels),
		TotalBenches:  TotalBenches(req.Classrooms),
		BenchesUsed:   len(assignments),
	}, nil
}

// YearsWithStudents lists the levels that have at least one division, in
// level order.
func YearsWithStudents(groups []LevelGroup) []string {
	var out []string
	for _, g := range groups {
		if len(g.Divisions) > 0 {
			out = append(out, g.Level)
		}
	}
	return out
}

// ByClassroom returns the assignments seated in room, in bench order.
func (p *Plan) ByClassroom(room string) []SeatAssignment {
	var out []SeatAssignment
	for _, a := range p.Assignments {
		if a.Classroom == room {
			out = append(out, a)
		}
	}
	return out
}
