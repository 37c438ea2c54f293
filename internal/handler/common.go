package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/timelazy/timelazy-server/internal/middleware"
	"github.com/timelazy/timelazy-server/internal/repository"
	"github.com/timelazy/timelazy-server/internal/seating"
	"github.com/timelazy/timelazy-server/internal/timetable"
)

var errUnauthorized = errors.New("unauthorized")

// adminID returns the authenticated admin or errUnauthorized.
func adminID(c echo.Context) (uint64, error) {
	id, ok := middleware.AdminID(c)
	if !ok {
		return 0, errUnauthorized
	}
	return id, nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// bindAndValidate decodes the JSON body into dst and runs the validator.
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return errBadBody
	}
	return c.Validate(dst)
}

var errBadBody = errors.New("invalid request body")

// respondError writes the JSON error body for err. Unknown errors are
// logged and reported as 500 without details.
func respondError(c echo.Context, err error) error {
	var (
		capErr  *seating.CapacityError
		limErr  *seating.LimitError
		vErrs   validator.ValidationErrors
		httpErr *echo.HTTPError
	)
	switch {
	case errors.As(err, &vErrs):
		body := echo.Map{"error": "validation failed"}
		if v, ok := c.Echo().Validator.(*Validator); ok {
			body["fields"] = v.fieldErrors(vErrs)
		}
		return c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &capErr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":    capErr.Error(),
			"students": capErr.Students,
			"seats":    capErr.Seats(),
			"benches":  capErr.Benches,
		})
	case errors.As(err, &limErr):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": limErr.Error(),
			"limit": limErr.What,
			"max":   limErr.Max,
		})
	case errors.As(err, &httpErr):
		return c.JSON(httpErr.Code, echo.Map{"error": httpErr.Message})
	case errors.Is(err, errUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, errBadBody),
		errors.Is(err, seating.ErrInvalidBenchCount),
		errors.Is(err, seating.ErrDuplicateClassroom),
		errors.Is(err, seating.ErrInvalidMode):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, seating.ErrNoClassrooms):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrClassroomNotFound),
		errors.Is(err, repository.ErrExamNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, timetable.ErrSolver),
		errors.Is(err, timetable.ErrMalformedGrid):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
