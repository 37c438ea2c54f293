package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timelazy/timelazy-server/internal/report"
	"github.com/timelazy/timelazy-server/internal/timetable"
)

// TimetableHandler proxies the external solver and exports its grids.
type TimetableHandler struct {
	Solver Solver
}

// NewTimetableHandler panics on a nil solver.
func NewTimetableHandler(s Solver) *TimetableHandler {
	if s == nil {
		panic("nil solver passed to NewTimetableHandler")
	}
	return &TimetableHandler{Solver: s}
}

// Generate handles POST /v1/timetables/generate.
func (h *TimetableHandler) Generate(c echo.Context) error {
	var req timetable.Request
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	res, err := h.Solver.Generate(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type timetableExport struct {
	report.TimetableMeta
	Timetable timetable.Grid `json:"timetable" validate:"required"`
}

// Export handles POST /v1/timetables/export. The body is a solver reply,
// optionally with the header fields of the solver request.
func (h *TimetableHandler) Export(c echo.Context) error {
	var body timetableExport
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	if err := body.Timetable.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var buf bytes.Buffer
	if err := report.WriteTimetable(&buf, body.Timetable, body.TimetableMeta); err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="timetable.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}
