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

// AnnouncementHandler handles parish announcement endpoints
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// List returns announcements
// @Summary List announcements
// @Description List announcements; non-staff callers only see published ones
// @Tags Announcements
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	// Staff and admins see drafts too
	role, _ := c.Locals("role").(string)
	publishedOnly := role != "STAFF" && role != "ADMIN"

	params := pagination.GetParams(c)
	result, err := h.announcementService.List(c.Context(), params.Page, params.PerPage, publishedOnly)
	if err != nil {
		return response.InternalServerError(c, "Failed to list announcements")
	}

	return response.Success(c, "Announcements retrieved successfully", result)
}

// Get returns a single announcement
// @Summary Get announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement ID")
	}

	announcement, err := h.announcementService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Announcement not found")
		}
		return response.InternalServerError(c, "Failed to get announcement")
	}

	return response.Success(c, "Announcement retrieved successfully", announcement)
}

// Create creates an announcement
// @Summary Create announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateAnnouncementInput true "Announcement data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	authorID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Title == "" || input.Body == "" {
		return response.BadRequest(c, "Title and body are required")
	}

	announcement, err := h.announcementService.Create(c.Context(), &input, authorID)
	if err != nil {
		return response.InternalServerError(c, "Failed to create announcement")
	}

	return response.Created(c, "Announcement created successfully", announcement)
}

// Update updates an announcement
// @Summary Update announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param body body services.UpdateAnnouncementInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement ID")
	}

	var input services.UpdateAnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	announcement, err := h.announcementService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Announcement not found")
		}
		return response.InternalServerError(c, "Failed to update announcement")
	}

	return response.Success(c, "Announcement updated successfully", announcement)
}

// Delete removes an announcement
// @Summary Delete announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid announcement ID")
	}

	if err := h.announcementService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Announcement not found")
		}
		return response.InternalServerError(c, "Failed to delete announcement")
	}

	return response.Success(c, "Announcement deleted successfully", nil)
}
