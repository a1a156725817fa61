package handlers

import (
	"errors"
	"strconv"
	"time"

	"parishcare/internal/core/domain"
	"parishcare/internal/core/services"
	"parishcare/internal/pkg/pagination"
	"parishcare/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles parishioner management endpoints
type MemberHandler struct {
	memberService     *services.MemberService
	membershipService *services.MembershipService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, membershipService *services.MembershipService) *MemberHandler {
	return &MemberHandler{
		memberService:     memberService,
		membershipService: membershipService,
	}
}

// RecordAttendanceRequest represents manual attendance entry body
type RecordAttendanceRequest struct {
	AttendedAt *time.Time `json:"attended_at"`
	Source     string     `json:"source"`
}

// ListMembers returns a paginated member list
// @Summary List members
// @Description List parishioners with pagination and optional search
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search by name, username or email"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	input := &services.ListMembersInput{
		Page:   params.Page,
		Limit:  params.PerPage,
		Search: c.Query("search"),
	}

	result, err := h.memberService.ListMembers(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", result)
}

// GetMember returns a single member
// @Summary Get member
// @Description Get a parishioner by ID
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) GetMember(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetMemberByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", member)
}

// UpdateMember updates a member's record
// @Summary Update member
// @Description Update a parishioner's profile, role or membership status
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body services.UpdateMemberByAdminInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) UpdateMember(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateMemberByAdminInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.UpdateMemberByAdmin(c.Context(), uint(id), adminID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already in use")
		case errors.Is(err, services.ErrCannotChangeOwnRole):
			return response.Forbidden(c, "Cannot change your own role")
		case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrValidation):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated successfully", member)
}

// DeleteMember removes a member
// @Summary Delete member
// @Description Delete a parishioner account
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	adminID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.memberService.DeleteMember(c.Context(), uint(id), adminID); err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrCannotDeleteSelf):
			return response.Forbidden(c, "Cannot delete your own account")
		default:
			return response.InternalServerError(c, "Failed to delete member")
		}
	}

	return response.Success(c, "Member deleted successfully", nil)
}

// GetMemberAttendance returns a member's attendance history
// @Summary Get member attendance
// @Description List a parishioner's attendance records, most recent first
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param limit query int false "Max records to return"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/attendance [get]
func (h *MemberHandler) GetMemberAttendance(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	records, err := h.memberService.GetMemberAttendance(c.Context(), uint(id), c.QueryInt("limit", 50))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get attendance")
	}

	return response.Success(c, "Attendance retrieved successfully", records)
}

// RecordAttendance records a manual attendance entry
// @Summary Record attendance
// @Description Record an attendance entry for a parishioner
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body RecordAttendanceRequest true "Attendance data"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/attendance [post]
func (h *MemberHandler) RecordAttendance(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	recordedBy, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	attendedAt := time.Now()
	if req.AttendedAt != nil {
		attendedAt = *req.AttendedAt
	}
	source := req.Source
	if source == "" {
		source = domain.AttendanceSourceManual
	}

	if err := h.memberService.RecordAttendance(c.Context(), uint(id), source, nil, attendedAt, recordedBy); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to record attendance")
	}

	return response.Created(c, "Attendance recorded successfully", nil)
}

// RefreshMemberStatus re-evaluates one member's membership status
// @Summary Refresh membership status
// @Description Re-evaluate a parishioner's membership status from attendance data
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/refresh-status [post]
func (h *MemberHandler) RefreshMemberStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	user, changed, err := h.membershipService.RefreshStatus(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to refresh membership status")
	}

	return response.Success(c, "Membership status refreshed", fiber.Map{
		"changed": changed,
		"status":  user.MembershipStatus,
		"user":    user.ToResponse(),
	})
}

// SweepMembershipStatuses re-evaluates every member's status
// @Summary Sweep membership statuses
// @Description Re-evaluate membership status for all parishioners
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /members/sweep [post]
func (h *MemberHandler) SweepMembershipStatuses(c *fiber.Ctx) error {
	result, err := h.membershipService.UpdateAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to run membership sweep")
	}

	return response.Success(c, "Membership sweep completed", result)
}

// MembershipStatistics returns counts per membership status
// @Summary Membership statistics
// @Description Member counts per membership status
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /members/statistics [get]
func (h *MemberHandler) MembershipStatistics(c *fiber.Ctx) error {
	stats, err := h.membershipService.Statistics(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get membership statistics")
	}

	return response.Success(c, "Membership statistics retrieved", stats)
}

// GetProfile returns the authenticated member's profile
// @Summary Get own profile
// @Description Get the authenticated parishioner's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profile [get]
func (h *MemberHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.memberService.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// UpdateProfile updates the authenticated member's profile
// @Summary Update own profile
// @Description Update the authenticated parishioner's contact details
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /profile [put]
func (h *MemberHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.memberService.UpdateProfile(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already in use")
		default:
			return response.InternalServerError(c, "Failed to update profile")
		}
	}

	return response.Success(c, "Profile updated successfully", profile)
}

// ChangePassword changes the authenticated member's password
// @Summary Change password
// @Description Change the authenticated user's password
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Old and new passwords"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /profile/password [put]
func (h *MemberHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.OldPassword == "" || input.NewPassword == "" {
		return response.BadRequest(c, "Old and new passwords are required")
	}

	if err := h.memberService.ChangePassword(c.Context(), userID, &input); err != nil {
		switch {
		case errors.Is(err, services.ErrOldPasswordWrong):
			return response.Unauthorized(c, "Old password is incorrect")
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.BadRequest(c, err.Error())
		}
	}

	return response.Success(c, "Password changed successfully", nil)
}
