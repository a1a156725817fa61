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

// FamilyHandler handles family unit endpoints
type FamilyHandler struct {
	familyService *services.FamilyService
}

// NewFamilyHandler creates a new family handler
func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

// AssignMemberRequest represents family membership assignment body
type AssignMemberRequest struct {
	UserID uint `json:"user_id"`
}

// List returns families
// @Summary List families
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /families [get]
func (h *FamilyHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	result, err := h.familyService.List(c.Context(), params.Page, params.PerPage)
	if err != nil {
		return response.InternalServerError(c, "Failed to list families")
	}

	return response.Success(c, "Families retrieved successfully", result)
}

// Get returns a single family with its members
// @Summary Get family
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Family ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /families/{id} [get]
func (h *FamilyHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid family ID")
	}

	family, err := h.familyService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Family not found")
		}
		return response.InternalServerError(c, "Failed to get family")
	}

	return response.Success(c, "Family retrieved successfully", family)
}

// Create creates a family
// @Summary Create family
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.FamilyInput true "Family data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /families [post]
func (h *FamilyHandler) Create(c *fiber.Ctx) error {
	var input services.FamilyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" {
		return response.BadRequest(c, "Family name is required")
	}

	family, err := h.familyService.Create(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create family")
	}

	return response.Created(c, "Family created successfully", family)
}

// Update updates a family
// @Summary Update family
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Family ID"
// @Param body body services.FamilyInput true "Family data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /families/{id} [put]
func (h *FamilyHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid family ID")
	}

	var input services.FamilyInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	family, err := h.familyService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Family not found")
		}
		return response.InternalServerError(c, "Failed to update family")
	}

	return response.Success(c, "Family updated successfully", family)
}

// Delete removes a family
// @Summary Delete family
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Family ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /families/{id} [delete]
func (h *FamilyHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid family ID")
	}

	if err := h.familyService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Family not found")
		}
		return response.InternalServerError(c, "Failed to delete family")
	}

	return response.Success(c, "Family deleted successfully", nil)
}

// AssignMember links a member to a family
// @Summary Assign member to family
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Family ID"
// @Param body body AssignMemberRequest true "Member to assign"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /families/{id}/members [post]
func (h *FamilyHandler) AssignMember(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid family ID")
	}

	var req AssignMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.UserID == 0 {
		return response.BadRequest(c, "User ID is required")
	}

	if err := h.familyService.AssignMember(c.Context(), uint(id), req.UserID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Family not found")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to assign member")
		}
	}

	return response.Success(c, "Member assigned to family successfully", nil)
}

// RemoveMember unlinks a member from their family
// @Summary Remove member from family
// @Tags Families
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Family ID"
// @Param userId path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /families/{id}/members/{userId} [delete]
func (h *FamilyHandler) RemoveMember(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.familyService.RemoveMember(c.Context(), uint(userID)); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to remove member")
	}

	return response.Success(c, "Member removed from family successfully", nil)
}
