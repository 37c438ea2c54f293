package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timelazy/timelazy-server/internal/model"
)

// ClassroomHandler serves the per-admin classroom registry.
type ClassroomHandler struct {
	Store ClassroomStore
}

// NewClassroomHandler panics on a nil store.
func NewClassroomHandler(store ClassroomStore) *ClassroomHandler {
	if store == nil {
		panic("nil store passed to NewClassroomHandler")
	}
	return &ClassroomHandler{Store: store}
}

type classroomBody struct {
	classroomInput
	Position int `json:"position" validate:"gte=0"`
}

func (b classroomBody) apply(c *model.Classroom) {
	in := b.toSeating()
	c.Name = in.Name
	c.BenchCount = in.BenchCount
	c.Supervisor = nil
	if in.Supervisor != "" {
		c.Supervisor = &in.Supervisor
	}
	if b.Position > 0 {
		c.Position = b.Position
	}
}

// List handles GET /v1/classrooms.
func (h *ClassroomHandler) List(c echo.Context) error {
	admin, err := adminID(c)
	if err != nil {
		return respondError(c, err)
	}
	rooms, err := h.Store.ListByAdmin(c.Request().Context(), admin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}

// Create handles POST /v1/classrooms. Without a position the room goes to
// the end of the registry.
func (h *ClassroomHandler) Create(c echo.Context) error {
	admin, err := adminID(c)
	if err != nil {
		return respondError(c, err)
	}
	var body classroomBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	room := &model.Classroom{AdminID: admin}
	body.apply(room)
	if err := h.Store.Create(c.Request().Context(), room); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// Update handles PUT /v1/classrooms/:id. Omitting position keeps the
// current one.
func (h *ClassroomHandler) Update(c echo.Context) error {
	admin, err := adminID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid classroom id"})
	}
	var body classroomBody
	if err := bindAndValidate(c, &body); err != nil {
		return respondError(c, err)
	}
	ctx := c.Request().Context()
	room, err := h.Store.GetByIDAndAdmin(ctx, id, admin)
	if err != nil {
		return respondError(c, err)
	}
	body.apply(room)
	if err := h.Store.UpdateByIDAndAdmin(ctx, room); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /v1/classrooms/:id.
func (h *ClassroomHandler) Delete(c echo.Context) error {
	admin, err := adminID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid classroom id"})
	}
	if err := h.Store.DeleteByIDAndAdmin(c.Request().Context(), id, admin); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
