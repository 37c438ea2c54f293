package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/timelazy/timelazy-server/internal/model"
	"github.com/timelazy/timelazy-server/internal/report"
)

// ExamSeatingPath is the cached seating route of exam id.
func ExamSeatingPath(id uint64) string {
	return fmt.Sprintf("/v1/exams/%d/seating", id)
}

// CreateExam handles POST /v1/exams. The classroom list is frozen at save
// time so later registry edits never change a saved exam's plan. Requests
// that cannot be seated are refused.
func (h *SeatingHandler) CreateExam(c echo.Context) error {
	admin, err := adminID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in examInput
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	req, err := h.request(ctx, admin, in.seatingInput)
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.generate(req); err != nil {
		return respondError(c, err)
	}
	exam := &model.Exam{
		AdminID:     admin,
		Title:       strings.TrimSpace(in.Title),
		Institution: strings.TrimSpace(in.Institution),
		Request:     req,
	}
	if err := h.Exams.Create(ctx, exam); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, exam)
}

// ListExams handles GET /v1/exams.
func (h *SeatingHandler) ListExams(c echo.Context) error {
	admin, err := adminID(c)
	if err != nil {
		return respondError(c, err)
	}
	exams, err := h.Exams.ListByAdmin(c.Request().Context(), admin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, exams)
}

func (h *SeatingHandler) loadExam(c echo.Context) (uint64, *model.Exam, error) {
	admin, err := adminID(c)
	if err != nil {
		return 0, nil, err
	}
	id, ok := pathID(c, "id")
	if !ok {
		return 0, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid exam id")
	}
	exam, err := h.Exams.GetByIDAndAdmin(c.Request().Context(), id, admin)
	if err != nil {
		return 0, nil, err
	}
	return admin, exam, nil
}

// GetExam handles GET /v1/exams/:id.
func (h *SeatingHandler) GetExam(c echo.Context) error {
	_, exam, err := h.loadExam(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, exam)
}

// DeleteExam handles DELETE /v1/exams/:id and drops its cached plan.
func (h *SeatingHandler) DeleteExam(c echo.Context) error {
	admin, err := adminID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exam id"})
	}
	ctx := c.Request().Context()
	if err := h.Exams.DeleteByIDAndAdmin(ctx, id, admin); err != nil {
		return respondError(c, err)
	}
	if h.Cache != nil {
		if err := h.Cache.Purge(ctx, strconv.FormatUint(admin, 10), ExamSeatingPath(id)); err != nil {
			c.Logger().Warnf("exam %d: purge cached seating: %v", id, err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// ExamSeating handles GET /v1/exams/:id/seating by regenerating the plan
// from the saved request.
func (h *SeatingHandler) ExamSeating(c echo.Context) error {
	admin, exam, err := h.loadExam(c)
	if err != nil {
		return respondError(c, err)
	}
	plan, err := h.generate(exam.Request)
	if err != nil {
		return respondError(c, err)
	}
	h.publish(admin, &exam.ID, plan)
	return c.JSON(http.StatusOK, plan)
}

// ExamReport handles GET /v1/exams/:id/report.xlsx.
func (h *SeatingHandler) ExamReport(c echo.Context) error {
	_, exam, err := h.loadExam(c)
	if err != nil {
		return respondError(c, err)
	}
	plan, err := h.generate(exam.Request)
	if err != nil {
		return respondError(c, err)
	}
	return h.sendWorkbook(c, plan, report.Header{Institution: exam.Institution, Examination: exam.Title})
}
