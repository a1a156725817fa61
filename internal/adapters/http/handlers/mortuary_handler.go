package handlers

import (
	"errors"
	"strings"

	"parishcare/internal/core/domain"
	"parishcare/internal/core/services"
	"parishcare/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MortuaryHandler handles columbarium rack endpoints
type MortuaryHandler struct {
	mortuaryService *services.MortuaryService
}

// NewMortuaryHandler creates a new mortuary handler
func NewMortuaryHandler(mortuaryService *services.MortuaryService) *MortuaryHandler {
	return &MortuaryHandler{mortuaryService: mortuaryService}
}

// InitializeGridRequest represents grid initialization body
type InitializeGridRequest struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// BulkUpdateRequest represents a bulk rack update body
type BulkUpdateRequest struct {
	Updates []services.BulkUpdateItem `json:"updates"`
}

// rackError maps rack service errors onto HTTP responses
func rackError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrRackNotFound):
		return response.NotFound(c, "Rack not found")
	case errors.Is(err, domain.ErrPositionOccupied):
		return response.Conflict(c, "Position is already occupied by another rack")
	case errors.Is(err, domain.ErrPositionOutside):
		return response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return response.UnprocessableEntity(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// ListRacks returns all racks
// @Summary List racks
// @Description List all columbarium racks
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /mortuary/racks [get]
func (h *MortuaryHandler) ListRacks(c *fiber.Ctx) error {
	racks, err := h.mortuaryService.ListRacks(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list racks")
	}

	return response.Success(c, "Racks retrieved successfully", racks)
}

// GetRack returns a single rack
// @Summary Get rack
// @Description Get a columbarium rack by ID
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rack ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mortuary/racks/{id} [get]
func (h *MortuaryHandler) GetRack(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return response.BadRequest(c, "Rack ID is required")
	}

	rack, err := h.mortuaryService.GetRack(c.Context(), id)
	if err != nil {
		return rackError(c, err, "Failed to get rack")
	}

	return response.Success(c, "Rack retrieved successfully", rack)
}

// GetAvailablePositions returns free grid positions
// @Summary Available positions
// @Description List grid positions not yet taken by any rack
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /mortuary/available-positions [get]
func (h *MortuaryHandler) GetAvailablePositions(c *fiber.Ctx) error {
	positions, err := h.mortuaryService.GetAvailablePositions(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get available positions")
	}

	return response.Success(c, "Available positions retrieved successfully", fiber.Map{
		"count":     len(positions),
		"positions": positions,
	})
}

// Statistics returns rack counts per status
// @Summary Rack statistics
// @Description Rack counts per occupancy status
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /mortuary/statistics [get]
func (h *MortuaryHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.mortuaryService.Statistics(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get rack statistics")
	}

	return response.Success(c, "Rack statistics retrieved successfully", stats)
}

// AddRack creates a rack
// @Summary Add rack
// @Description Add a columbarium rack at a grid position
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AddRackInput true "Rack data"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /mortuary/racks [post]
func (h *MortuaryHandler) AddRack(c *fiber.Ctx) error {
	var input services.AddRackInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	input.ID = strings.TrimSpace(input.ID)
	if input.ID == "" {
		return response.BadRequest(c, "Rack ID is required")
	}

	rack, err := h.mortuaryService.AddRack(c.Context(), &input)
	if err != nil {
		return rackError(c, err, "Failed to add rack")
	}

	return response.Created(c, "Rack added successfully", rack)
}

// UpdateRack updates a rack
// @Summary Update rack
// @Description Update a rack's status, occupant or notes
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rack ID"
// @Param body body services.UpdateRackInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /mortuary/racks/{id} [put]
func (h *MortuaryHandler) UpdateRack(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return response.BadRequest(c, "Rack ID is required")
	}

	var input services.UpdateRackInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	rack, err := h.mortuaryService.UpdateRack(c.Context(), id, &input)
	if err != nil {
		return rackError(c, err, "Failed to update rack")
	}

	return response.Success(c, "Rack updated successfully", rack)
}

// ResetRack frees a rack back to available
// @Summary Reset rack
// @Description Clear occupant and return the rack to available
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rack ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mortuary/racks/{id}/reset [post]
func (h *MortuaryHandler) ResetRack(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return response.BadRequest(c, "Rack ID is required")
	}

	rack, err := h.mortuaryService.ResetRack(c.Context(), id)
	if err != nil {
		return rackError(c, err, "Failed to reset rack")
	}

	return response.Success(c, "Rack reset successfully", rack)
}

// DeleteRack removes a rack
// @Summary Delete rack
// @Description Delete a rack, freeing its grid position
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rack ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /mortuary/racks/{id} [delete]
func (h *MortuaryHandler) DeleteRack(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return response.BadRequest(c, "Rack ID is required")
	}

	if err := h.mortuaryService.DeleteRack(c.Context(), id); err != nil {
		return rackError(c, err, "Failed to delete rack")
	}

	return response.Success(c, "Rack deleted successfully", nil)
}

// BulkUpdate applies per-rack updates best-effort
// @Summary Bulk update racks
// @Description Apply updates to multiple racks, reporting per-rack results
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkUpdateRequest true "Updates"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /mortuary/bulk-update [post]
func (h *MortuaryHandler) BulkUpdate(c *fiber.Ctx) error {
	var req BulkUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(req.Updates) == 0 {
		return response.BadRequest(c, "No updates provided")
	}

	results := h.mortuaryService.BulkUpdate(c.Context(), req.Updates)

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	return response.Success(c, "Bulk update completed", fiber.Map{
		"total":     len(results),
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
		"results":   results,
	})
}

// InitializeGrid fills empty grid positions with available racks
// @Summary Initialize grid
// @Description Create available racks for every free position in the grid
// @Tags Mortuary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body InitializeGridRequest true "Grid dimensions (0 = configured default)"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /mortuary/initialize [post]
func (h *MortuaryHandler) InitializeGrid(c *fiber.Ctx) error {
	var req InitializeGridRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	created, err := h.mortuaryService.Initialize(c.Context(), req.Rows, req.Cols)
	if err != nil {
		return rackError(c, err, "Failed to initialize grid")
	}

	return response.Success(c, "Grid initialized successfully", fiber.Map{
		"created": created,
	})
}
