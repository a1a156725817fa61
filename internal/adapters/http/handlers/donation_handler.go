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

// DonationHandler handles donation endpoints
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Record records a donation
// @Summary Record donation
// @Description Record a donation, attributed to a member or anonymous
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DonationInput true "Donation data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /donations [post]
func (h *DonationHandler) Record(c *fiber.Ctx) error {
	recordedBy, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.DonationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Amount <= 0 {
		return response.BadRequest(c, "Amount must be greater than zero")
	}

	donation, err := h.donationService.Record(c.Context(), &input, recordedBy)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrValidation):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to record donation")
		}
	}

	return response.Created(c, "Donation recorded successfully", donation)
}

// List returns donations
// @Summary List donations
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param fund query string false "Filter by fund"
// @Success 200 {object} response.Response
// @Router /donations [get]
func (h *DonationHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	result, err := h.donationService.List(c.Context(), params.Page, params.PerPage, c.Query("fund"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved successfully", result)
}

// Get returns a single donation
// @Summary Get donation
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/{id} [get]
func (h *DonationHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donation ID")
	}

	donation, err := h.donationService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Donation not found")
		}
		return response.InternalServerError(c, "Failed to get donation")
	}

	return response.Success(c, "Donation retrieved successfully", donation)
}

// ListMine returns the caller's donations
// @Summary List own donations
// @Description List donations attributed to the authenticated member
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /donations/mine [get]
func (h *DonationHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	donations, err := h.donationService.ListByMember(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list donations")
	}

	return response.Success(c, "Donations retrieved successfully", donations)
}

// Delete removes a donation record
// @Summary Delete donation
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Donation ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /donations/{id} [delete]
func (h *DonationHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid donation ID")
	}

	if err := h.donationService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Donation not found")
		}
		return response.InternalServerError(c, "Failed to delete donation")
	}

	return response.Success(c, "Donation deleted successfully", nil)
}

// Statistics returns donation totals
// @Summary Donation statistics
// @Description All-time and month-to-date donation totals, broken down by fund
// @Tags Donations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /donations/statistics [get]
func (h *DonationHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.donationService.Statistics(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get donation statistics")
	}

	return response.Success(c, "Donation statistics retrieved", stats)
}
