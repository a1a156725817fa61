package handlers

import (
	"errors"
	"strconv"

	"parishcare/internal/core/domain"
	"parishcare/internal/core/services"
	"parishcare/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ScheduleHandler handles mass schedule endpoints
type ScheduleHandler struct {
	scheduleService *services.MassScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *services.MassScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// List returns active mass schedules
// @Summary List mass schedules
// @Description List active mass schedules ordered by day and time
// @Tags MassSchedules
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /mass-schedules [get]
func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	schedules, err := h.scheduleService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list mass schedules")
	}

	return response.Success(c, "Mass schedules retrieved successfully", schedules)
}

// ListAll returns every schedule including inactive ones
// @Summary List all mass schedules
// @Description List all mass schedules including inactive ones
// @Tags MassSchedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /mass-schedules/all [get]
func (h *ScheduleHandler) ListAll(c *fiber.Ctx) error {
	schedules, err := h.scheduleService.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list mass schedules")
	}

	return response.Success(c, "Mass schedules retrieved successfully", schedules)
}

// Get returns a single schedule
// @Summary Get mass schedule
// @Tags MassSchedules
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mass-schedules/{id} [get]
func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid schedule ID")
	}

	schedule, err := h.scheduleService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Mass schedule not found")
		}
		return response.InternalServerError(c, "Failed to get mass schedule")
	}

	return response.Success(c, "Mass schedule retrieved successfully", schedule)
}

// Create creates a schedule
// @Summary Create mass schedule
// @Tags MassSchedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MassScheduleInput true "Schedule data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /mass-schedules [post]
func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	var input services.MassScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	schedule, err := h.scheduleService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScheduleSlotTaken):
			return response.Conflict(c, "A mass is already scheduled at this day and time")
		case errors.Is(err, domain.ErrValidation):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create mass schedule")
		}
	}

	return response.Created(c, "Mass schedule created successfully", schedule)
}

// Update updates a schedule
// @Summary Update mass schedule
// @Tags MassSchedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param body body services.MassScheduleInput true "Schedule data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /mass-schedules/{id} [put]
func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid schedule ID")
	}

	var input services.MassScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	schedule, err := h.scheduleService.Update(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Mass schedule not found")
		case errors.Is(err, services.ErrScheduleSlotTaken):
			return response.Conflict(c, "A mass is already scheduled at this day and time")
		case errors.Is(err, domain.ErrValidation):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update mass schedule")
		}
	}

	return response.Success(c, "Mass schedule updated successfully", schedule)
}

// Delete removes a schedule
// @Summary Delete mass schedule
// @Tags MassSchedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mass-schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid schedule ID")
	}

	if err := h.scheduleService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Mass schedule not found")
		}
		return response.InternalServerError(c, "Failed to delete mass schedule")
	}

	return response.Success(c, "Mass schedule deleted successfully", nil)
}
