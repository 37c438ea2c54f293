package handler

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timelazy/timelazy-server/internal/config"
	"github.com/timelazy/timelazy-server/internal/queue"
	"github.com/timelazy/timelazy-server/internal/report"
	"github.com/timelazy/timelazy-server/internal/seating"
)

// xlsxMIME is the content type of exported workbooks.
const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// publishTimeout bounds the background publish of a seating event.
const publishTimeout = 10 * time.Second

// SeatingHandler generates seating plans, ad hoc or from saved exams.
// Events and Cache are optional.
type SeatingHandler struct {
	Classrooms ClassroomStore
	Exams      ExamStore
	Events     EventPublisher
	Cache      CachePurger
	Config     config.SeatingConfig
	Now        func() time.Time
}

// NewSeatingHandler panics when a store is nil.
func NewSeatingHandler(classrooms ClassroomStore, exams ExamStore, events EventPublisher, cache CachePurger, cfg config.SeatingConfig) *SeatingHandler {
	if classrooms == nil || exams == nil {
		panic("nil store passed to NewSeatingHandler")
	}
	return &SeatingHandler{
		Classrooms: classrooms,
		Exams:      exams,
		Events:     events,
		Cache:      cache,
		Config:     cfg,
		Now:        time.Now,
	}
}

// rooms returns the request's classrooms or, when it listed none, the
// admin's stored registry.
func (h *SeatingHandler) rooms(ctx context.Context, admin uint64, body seatingBody) ([]seating.Classroom, error) {
	if rooms := body.classrooms(); rooms != nil {
		return rooms, nil
	}
	rows, err := h.Classrooms.ListByAdmin(ctx, admin)
	if err != nil {
		return nil, err
	}
	return registryClassrooms(rows), nil
}

// request turns validated input into a core request.
func (h *SeatingHandler) request(ctx context.Context, admin uint64, in seatingInput) (seating.Request, error) {
	rooms, err := h.rooms(ctx, admin, in.seatingBody)
	if err != nil {
		return seating.Request{}, err
	}
	return seating.Request{
		ExamDate:   in.ExamDate,
		TimeFrom:   in.ExamTimeFrom,
		TimeTo:     in.ExamTimeTo,
		Mode:       in.mode(h.Config.DefaultMode),
		Classrooms: rooms,
		Levels:     in.levels(h.Config.Levels),
	}, nil
}

// generate runs req under the configured limits. Saved requests carry none.
func (h *SeatingHandler) generate(req seating.Request) (*seating.Plan, error) {
	req.Limits = h.Config.Limits
	return seating.Generate(req)
}

// Check handles POST /v1/seating/check.
func (h *SeatingHandler) Check(c echo.Context) error {
	admin, err := adminID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body seatingBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	rooms, err := h.rooms(c.Request().Context(), admin, body)
	if err != nil {
		return respondError(c, err)
	}
	if err := seating.ValidateClassrooms(rooms); err != nil {
		return respondError(c, err)
	}
	mode := body.mode(h.Config.DefaultMode)
	levels := body.levels(h.Config.Levels)
	if err := h.Config.Limits.Check(rooms, levels); err != nil {
		return respondError(c, err)
	}
	benches := seating.TotalBenches(rooms)
	return c.JSON(http.StatusOK, echo.Map{
		"can_assign": seating.CanAssign(rooms, levels, mode),
		"students":   seating.TotalStudents(levels),
		"benches":    benches,
		"seats":      benches * mode.Multiplier(),
		"mode":       mode,
	})
}

// Generate handles POST /v1/seating/generate.
func (h *SeatingHandler) Generate(c echo.Context) error {
	admin, plan, _, err := h.generateFromBody(c)
	if err != nil {
		return respondError(c, err)
	}
	h.publish(admin, nil, plan)
	return c.JSON(http.StatusOK, plan)
}

// Export handles POST /v1/seating/export and returns the plan as XLSX.
func (h *SeatingHandler) Export(c echo.Context) error {
	admin, plan, hdr, err := h.generateFromBody(c)
	if err != nil {
		return respondError(c, err)
	}
	h.publish(admin, nil, plan)
	return h.sendWorkbook(c, plan, hdr)
}

func (h *SeatingHandler) generateFromBody(c echo.Context) (uint64, *seating.Plan, report.Header, error) {
	admin, err := adminID(c)
	if err != nil {
		return 0, nil, report.Header{}, err
	}
	var in seatingInput
	if err := bindAndValidate(c, &in); err != nil {
		return 0, nil, report.Header{}, err
	}
	req, err := h.request(c.Request().Context(), admin, in)
	if err != nil {
		return 0, nil, report.Header{}, err
	}
	plan, err := h.generate(req)
	if err != nil {
		return 0, nil, report.Header{}, err
	}
	return admin, plan, in.Header, nil
}

func (h *SeatingHandler) sendWorkbook(c echo.Context, plan *seating.Plan, hdr report.Header) error {
	var buf bytes.Buffer
	if err := report.WriteSeating(&buf, plan, hdr); err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="seating-%s.xlsx"`, plan.ExamDate))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

// seatingEvent summarizes plan for the audit trail.
func (h *SeatingHandler) seatingEvent(admin uint64, examID *uint64, plan *seating.Plan) queue.SeatingGeneratedEvent {
	var rooms []string
	seen := map[string]bool{}
	for _, a := range plan.Assignments {
		if !seen[a.Classroom] {
			seen[a.Classroom] = true
			rooms = append(rooms, a.Classroom)
		}
	}
	return queue.SeatingGeneratedEvent{
		ExamID:      examID,
		AdminID:     admin,
		ExamDate:    plan.ExamDate,
		TimeFrom:    plan.TimeFrom,
		TimeTo:      plan.TimeTo,
		Mode:        string(plan.Mode),
		Levels:      plan.Years,
		Classrooms:  rooms,
		Students:    plan.TotalStudents,
		BenchesUsed: plan.BenchesUsed,
		GeneratedAt: h.Now().UTC().Format(time.RFC3339),
	}
}

// publish sends the event in the background. Failures are only logged.
func (h *SeatingHandler) publish(admin uint64, examID *uint64, plan *seating.Plan) {
	if h.Events == nil {
		return
	}
	ev := h.seatingEvent(admin, examID, plan)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := h.Events.PublishSeatingGenerated(ctx, ev); err != nil {
			log.Printf("seating: publish %s event failed: %v", queue.SeatingGeneratedQueue, err)
		}
	}()
}
