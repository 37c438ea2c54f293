package handler

import (
	"slices"
	"sort"
	"strings"

	"github.com/timelazy/timelazy-server/internal/model"
	"github.com/timelazy/timelazy-server/internal/report"
	"github.com/timelazy/timelazy-server/internal/seating"
)

type classroomInput struct {
	Name       string `json:"name" validate:"notblank,max=100"`
	Benches    *int   `json:"benches" validate:"required,gte=1"`
	Supervisor string `json:"supervisor" validate:"max=100"`
}

type divisionInput struct {
	Name  string `json:"name" validate:"notblank"`
	Start *int   `json:"start" validate:"required,gte=0"`
	End   *int   `json:"end" validate:"required,gte=0"`
}

type levelInput struct {
	Subject   string          `json:"subject"`
	Divisions []divisionInput `json:"divisions" validate:"dive"`
}

// seatingBody is what the capacity check needs.
type seatingBody struct {
	SeatingMode string                `json:"seating_mode" validate:"omitempty,oneof=one two"`
	Classrooms  []classroomInput      `json:"classrooms" validate:"omitempty,unique=Name,dive"`
	StudentData map[string]levelInput `json:"student_data" validate:"required,min=1,dive,keys,notblank,endkeys"`
}

// examMeta is echoed on every plan and report.
type examMeta struct {
	ExamDate     string `json:"exam_date" validate:"required,datetime=2006-01-02"`
	ExamTimeFrom string `json:"exam_time_from" validate:"required,datetime=15:04"`
	ExamTimeTo   string `json:"exam_time_to" validate:"required,datetime=15:04"`
}

// seatingInput is the full seating generation request.
type seatingInput struct {
	examMeta
	seatingBody
	report.Header
}

// examInput saves a seating request under a title.
type examInput struct {
	Title string `json:"title" validate:"notblank,max=200"`
	seatingInput
}

func (in classroomInput) toSeating() seating.Classroom {
	return seating.Classroom{
		Name:       strings.TrimSpace(in.Name),
		BenchCount: *in.Benches,
		Supervisor: strings.TrimSpace(in.Supervisor),
	}
}

// levelOrder sorts level keys: configured levels first in their configured
// order, then any other key alphabetically. Matching is case-insensitive.
func levelOrder(keys []string, configured []string) []string {
	rank := func(k string) int {
		for i, l := range configured {
			if strings.EqualFold(l, strings.TrimSpace(k)) {
				return i
			}
		}
		return len(configured)
	}
	out := slices.Clone(keys)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// levels converts student_data into ordered level groups.
func (b seatingBody) levels(configured []string) []seating.LevelGroup {
	keys := make([]string, 0, len(b.StudentData))
	for k := range b.StudentData {
		keys = append(keys, k)
	}
	groups := make([]seating.LevelGroup, 0, len(keys))
	for _, k := range levelOrder(keys, configured) {
		in := b.StudentData[k]
		g := seating.LevelGroup{
			Level:     strings.ToUpper(strings.TrimSpace(k)),
			Subject:   strings.TrimSpace(in.Subject),
			Divisions: make([]seating.Division, 0, len(in.Divisions)),
		}
		for _, d := range in.Divisions {
			g.Divisions = append(g.Divisions, seating.Division{
				Name:      strings.TrimSpace(d.Name),
				StartRoll: *d.Start,
				EndRoll:   *d.End,
			})
		}
		groups = append(groups, g)
	}
	return groups
}

// classrooms returns the request's rooms, or nil when it listed none.
func (b seatingBody) classrooms() []seating.Classroom {
	if len(b.Classrooms) == 0 {
		return nil
	}
	out := make([]seating.Classroom, 0, len(b.Classrooms))
	for _, in := range b.Classrooms {
		out = append(out, in.toSeating())
	}
	return out
}

// mode falls back to def when the request omits seating_mode.
func (b seatingBody) mode(def seating.Mode) seating.Mode {
	if b.SeatingMode == "" {
		return def
	}
	return seating.Mode(b.SeatingMode)
}

// registryClassrooms converts stored registry rows into core classrooms.
func registryClassrooms(rows []*model.Classroom) []seating.Classroom {
	out := make([]seating.Classroom, 0, len(rows))
	for _, r := range rows {
		c := seating.Classroom{Name: r.Name, BenchCount: r.BenchCount}
		if r.Supervisor != nil {
			c.Supervisor = *r.Supervisor
		}
		out = append(out, c)
	}
	return out
}
