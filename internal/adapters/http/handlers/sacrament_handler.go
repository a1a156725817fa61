package handlers

import (
	"errors"
	"strconv"

	"parishcare/internal/core/domain"
	"parishcare/internal/core/services"
	"parishcare/internal/pkg/pagination"
	"parishcare/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SacramentHandler handles sacrament appointment endpoints
type SacramentHandler struct {
	sacramentService *services.SacramentService
}

// NewSacramentHandler creates a new sacrament handler
func NewSacramentHandler(sacramentService *services.SacramentService) *SacramentHandler {
	return &SacramentHandler{sacramentService: sacramentService}
}

// Request submits an appointment request
// @Summary Request sacrament appointment
// @Description Request a baptism, wedding, confession or anointing appointment
// @Tags Sacraments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RequestAppointmentInput true "Appointment request"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /sacraments [post]
func (h *SacramentHandler) Request(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.RequestAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	appt, err := h.sacramentService.Request(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSacramentType):
			return response.UnprocessableEntity(c, "Invalid sacrament type")
		case errors.Is(err, services.ErrAppointmentInPast):
			return response.UnprocessableEntity(c, "Appointment date is in the past")
		default:
			return response.InternalServerError(c, "Failed to request appointment")
		}
	}

	return response.Created(c, "Appointment requested successfully", appt)
}

// List returns appointment requests
// @Summary List sacrament appointments
// @Tags Sacraments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /sacraments [get]
func (h *SacramentHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	result, err := h.sacramentService.List(c.Context(), params.Page, params.PerPage, c.Query("status"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list appointments")
	}

	return response.Success(c, "Appointments retrieved successfully", result)
}

// ListMine returns the caller's appointments
// @Summary List own sacrament appointments
// @Tags Sacraments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /sacraments/mine [get]
func (h *SacramentHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	appts, err := h.sacramentService.ListByMember(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list appointments")
	}

	return response.Success(c, "Appointments retrieved successfully", appts)
}

// Get returns a single appointment
// @Summary Get sacrament appointment
// @Tags Sacraments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sacraments/{id} [get]
func (h *SacramentHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	appt, err := h.sacramentService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Appointment not found")
		}
		return response.InternalServerError(c, "Failed to get appointment")
	}

	return response.Success(c, "Appointment retrieved successfully", appt)
}

// Approve approves a pending appointment
// @Summary Approve appointment
// @Description Approve a pending appointment and notify the requester
// @Tags Sacraments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /sacraments/{id}/approve [post]
func (h *SacramentHandler) Approve(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	approverID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	appt, err := h.sacramentService.Approve(c.Context(), uint(id), approverID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrInvalidApptTransition):
			return response.UnprocessableEntity(c, "Only pending appointments can be approved")
		default:
			return response.InternalServerError(c, "Failed to approve appointment")
		}
	}

	return response.Success(c, "Appointment approved successfully", appt)
}

// Complete marks an approved appointment as completed
// @Summary Complete appointment
// @Tags Sacraments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /sacraments/{id}/complete [post]
func (h *SacramentHandler) Complete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	appt, err := h.sacramentService.Complete(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrInvalidApptTransition):
			return response.UnprocessableEntity(c, "Only approved appointments can be completed")
		default:
			return response.InternalServerError(c, "Failed to complete appointment")
		}
	}

	return response.Success(c, "Appointment completed successfully", appt)
}

// Cancel cancels a pending or approved appointment
// @Summary Cancel appointment
// @Tags Sacraments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /sacraments/{id}/cancel [post]
func (h *SacramentHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid appointment ID")
	}

	// Members may only cancel their own appointments
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	if role == "MEMBER" {
		existing, err := h.sacramentService.GetByID(c.Context(), uint(id))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return response.NotFound(c, "Appointment not found")
			}
			return response.InternalServerError(c, "Failed to cancel appointment")
		}
		if existing.UserID != userID {
			return response.Forbidden(c, "Cannot cancel another member's appointment")
		}
	}

	appt, err := h.sacramentService.Cancel(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Appointment not found")
		case errors.Is(err, services.ErrInvalidApptTransition):
			return response.UnprocessableEntity(c, "Completed or cancelled appointments cannot be cancelled")
		default:
			return response.InternalServerError(c, "Failed to cancel appointment")
		}
	}

	return response.Success(c, "Appointment cancelled successfully", appt)
}
