// Package timetable holds the contract of the external timetable solver:
// the request the admin builds, the weekly grid it returns, and an HTTP
// client that validates that grid before anyone renders it.
package timetable

import "strings"

// Days is the weekday axis of every batch schedule.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Slots is the time axis. Slot LunchSlot is always the lunch break.
var Slots = []string{
	"08:50-09:40", "09:40-10:30", "10:30-11:20", "11:20-12:10", "12:10-01:00",
	"01:00-01:40",
	"01:40-02:30", "02:30-03:20", "03:20-04:10",
}

const (
	LunchSlot  = 5
	LunchLabel = "LUNCH BREAK"
	EmptySlot  = "-"
)

// Request is posted to the solver.
type Request struct {
	University    string        `json:"university" validate:"required"`
	Department    string        `json:"department" validate:"required"`
	AcademicYear  string        `json:"academic_year" validate:"required"`
	Term          string        `json:"term" validate:"required"`
	EffectiveFrom string        `json:"effective_from,omitempty"`
	EffectiveTo   string        `json:"effective_to,omitempty"`
	Divisions     []Division    `json:"divisions" validate:"required,min=1,dive"`
	Faculty       []Faculty     `json:"faculty" validate:"required,min=1,dive"`
	Rooms         []Room        `json:"rooms" validate:"required,min=1,dive"`
	Subjects      []Subject     `json:"subjects" validate:"required,min=1,dive"`
	MentorBatches []MentorBatch `json:"mentor_batches" validate:"dive"`
}

type Division struct {
	Name    string   `json:"name" validate:"required"`
	Batches []string `json:"batches" validate:"dive,required"`
}

type Faculty struct {
	Abbr         string `json:"abbr" validate:"required"`
	Name         string `json:"name" validate:"required"`
	MaxPerDay    int    `json:"max_per_day" validate:"gte=0"`
	MaxPerWeek   int    `json:"max_per_week" validate:"gte=0"`
	Availability []int  `json:"availability" validate:"dive,gte=0,lte=4"`
}

type Room struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=Theory Lab"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

type Subject struct {
	Code         string   `json:"code" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Faculty      []string `json:"faculty" validate:"dive,required"`
	Type         string   `json:"type" validate:"required,oneof=Theory Lab"`
	RoomType     string   `json:"room_type,omitempty"`
	Duration     int      `json:"duration,omitempty"`
	MinPerWeek   int      `json:"min_per_week" validate:"gte=0"`
	MaxPerWeek   int      `json:"max_per_week" validate:"gtefield=MinPerWeek"`
	RequiredRoom string   `json:"required_room,omitempty"`
	Batches      []string `json:"batches,omitempty"`
	IsMentor     bool     `json:"is_mentor"`
}

// MentorBatch assigns a mentor to a batch's roll range.
type MentorBatch struct {
	Division  string    `json:"division" validate:"required"`
	Batch     string    `json:"batch" validate:"required"`
	Mentor    string    `json:"mentor"`
	RollRange [2]string `json:"roll_range"`
}

// DefaultMentorBatches gives every batch of every division a "TBD" mentor
// covering rolls <batch>-01 to <batch>-30. Empty batch names are skipped.
func DefaultMentorBatches(divs []Division) []MentorBatch {
	var out []MentorBatch
	for _, d := range divs {
		for _, b := range d.Batches {
			if strings.TrimSpace(b) == "" {
				continue
			}
			out = append(out, MentorBatch{
				Division:  d.Name,
				Batch:     b,
				Mentor:    "TBD",
				RollRange: [2]string{b + "-01", b + "-30"},
			})
		}
	}
	return out
}

// WithDefaults returns a copy of r whose MentorBatches are filled in when
// the caller gave none.
func (r Request) WithDefaults() Request {
	if len(r.MentorBatches) == 0 {
		r.MentorBatches = DefaultMentorBatches(r.Divisions)
	}
	return r
}

// BatchSchedule maps a day name to its nine slot cells.
type BatchSchedule map[string][]string

// DivisionSchedule is one division's grid, per batch.
type DivisionSchedule struct {
	Batches map[string]BatchSchedule `json:"batches"`
}

// Grid is the whole solver output keyed by division name.
type Grid map[string]DivisionSchedule

// Response is the solver's reply.
type Response struct {
	Status    string `json:"status"`
	Timetable Grid   `json:"timetable,omitempty"`
	Message   string `json:"message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Cell is a parsed grid entry.
type Cell struct {
	Subject string
	Detail  string
	Lunch   bool
	Empty   bool
}

// ParseCell splits "CODE\nFACULTY" cells. The lunch label and "-" are
// reported through the flags.
func ParseCell(s string) Cell {
	switch strings.TrimSpace(s) {
	case LunchLabel:
		return Cell{Lunch: true}
	case EmptySlot, "":
		return Cell{Empty: true}
	}
	subject, detail, _ := strings.Cut(s, "\n")
	return Cell{Subject: strings.TrimSpace(subject), Detail: strings.TrimSpace(detail)}
}
