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

// CertificateHandler handles certificate request endpoints
type CertificateHandler struct {
	certificateService *services.CertificateService
}

// NewCertificateHandler creates a new certificate handler
func NewCertificateHandler(certificateService *services.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

// Request submits a certificate request
// @Summary Request certificate
// @Description Request a baptismal, confirmation, marriage or death certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RequestCertificateInput true "Certificate request"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /certificates [post]
func (h *CertificateHandler) Request(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.RequestCertificateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	cert, err := h.certificateService.Request(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCertType) {
			return response.UnprocessableEntity(c, "Invalid certificate type")
		}
		return response.InternalServerError(c, "Failed to request certificate")
	}

	return response.Created(c, "Certificate requested successfully", cert)
}

// List returns certificate requests
// @Summary List certificates
// @Tags Certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /certificates [get]
func (h *CertificateHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	result, err := h.certificateService.List(c.Context(), params.Page, params.PerPage, c.Query("status"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list certificates")
	}

	return response.Success(c, "Certificates retrieved successfully", result)
}

// ListMine returns the caller's certificate requests
// @Summary List own certificates
// @Tags Certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /certificates/mine [get]
func (h *CertificateHandler) ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	certs, err := h.certificateService.ListByMember(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list certificates")
	}

	return response.Success(c, "Certificates retrieved successfully", certs)
}

// Get returns a single certificate request
// @Summary Get certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /certificates/{id} [get]
func (h *CertificateHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid certificate ID")
	}

	cert, err := h.certificateService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Certificate not found")
		}
		return response.InternalServerError(c, "Failed to get certificate")
	}

	return response.Success(c, "Certificate retrieved successfully", cert)
}

// Advance moves a certificate to its next status
// @Summary Advance certificate
// @Description Advance a certificate along REQUESTED → PROCESSING → READY → RELEASED
// @Tags Certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /certificates/{id}/advance [post]
func (h *CertificateHandler) Advance(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid certificate ID")
	}

	cert, err := h.certificateService.Advance(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Certificate not found")
		case errors.Is(err, services.ErrInvalidCertTransition):
			return response.UnprocessableEntity(c, "Certificate cannot be advanced further")
		default:
			return response.InternalServerError(c, "Failed to advance certificate")
		}
	}

	return response.Success(c, "Certificate advanced successfully", cert)
}

// Delete removes a certificate request
// @Summary Delete certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /certificates/{id} [delete]
func (h *CertificateHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid certificate ID")
	}

	if err := h.certificateService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Certificate not found")
		}
		return response.InternalServerError(c, "Failed to delete certificate")
	}

	return response.Success(c, "Certificate deleted successfully", nil)
}
