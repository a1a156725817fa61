package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parishcare/internal/adapters/persistence/models"
	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/core/domain"
	"parishcare/internal/pkg/password"

	"gorm.io/gorm"
)

// Member service errors
var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrOldPasswordWrong    = errors.New("old password is incorrect")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
)

// MemberService handles parishioner account management
type MemberService struct {
	userRepo       repositories.UserRepository
	attendanceRepo repositories.AttendanceRepository
}

// NewMemberService creates a new member service
func NewMemberService(
	userRepo repositories.UserRepository,
	attendanceRepo repositories.AttendanceRepository,
) *MemberService {
	return &MemberService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
	}
}

// ListMembersInput represents list members input
type ListMembersInput struct {
	Page   int
	Limit  int
	Search string
}

// ListMembersOutput represents list members output
type ListMembersOutput struct {
	Members    []*models.UserResponse `json:"members"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// UpdateMemberByAdminInput represents update member input (for admin)
type UpdateMemberByAdminInput struct {
	Email            *string `json:"email"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Phone            *string `json:"phone"`
	Role             *string `json:"role"`
	MembershipStatus *string `json:"membership_status"`
	IsActive         *bool   `json:"is_active"`
}

// UpdateProfileInput represents update profile input (for self)
type UpdateProfileInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ListMembers lists all members with pagination and search
func (s *MemberService) ListMembers(ctx context.Context, input *ListMembersInput) (*ListMembersOutput, error) {
	// Set defaults
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit

	users, total, err := s.userRepo.List(ctx, offset, input.Limit, input.Search)
	if err != nil {
		return nil, err
	}

	memberResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		memberResponses[i] = user.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListMembersOutput{
		Members:    memberResponses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetMemberByID gets a member by ID
func (s *MemberService) GetMemberByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	return user.ToResponse(), nil
}

// GetMemberAttendance returns a member's recent attendance records
func (s *MemberService) GetMemberAttendance(ctx context.Context, id uint, limit int) ([]*models.AttendanceRecord, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, domain.ErrMemberNotFound
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.attendanceRepo.ListByUser(ctx, id, limit)
}

// UpdateMemberByAdmin updates a member record as admin. A membership
// status set here is an explicit override; the nightly sweep may
// recompute it from attendance signals.
func (s *MemberService) UpdateMemberByAdmin(ctx context.Context, id uint, adminID uint, input *UpdateMemberByAdminInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	// Prevent admin from changing own role
	if id == adminID && input.Role != nil {
		return nil, ErrCannotChangeOwnRole
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, _ := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, fmt.Errorf("%w: invalid role '%s'", domain.ErrValidation, *input.Role)
		}
		user.Role = *input.Role
	}

	if input.MembershipStatus != nil {
		if !domain.ValidMembershipStatus(*input.MembershipStatus) {
			return nil, fmt.Errorf("%w: invalid membership status '%s'", domain.ErrValidation, *input.MembershipStatus)
		}
		user.MembershipStatus = *input.MembershipStatus
	}

	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// DeleteMember deletes a member (soft delete)
func (s *MemberService) DeleteMember(ctx context.Context, id uint, adminID uint) error {
	// Prevent admin from deleting self
	if id == adminID {
		return ErrCannotDeleteSelf
	}

	// Check if member exists
	_, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMemberNotFound
		}
		return err
	}

	return s.userRepo.Delete(ctx, id)
}

// GetProfile gets own profile
func (s *MemberService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	return s.GetMemberByID(ctx, userID)
}

// UpdateProfile updates own profile
func (s *MemberService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, _ := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// ChangePassword changes a member's password
func (s *MemberService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.ErrMemberNotFound
	}

	// Verify old password
	if err := password.Verify(input.OldPassword, user.Password); err != nil {
		return ErrOldPasswordWrong
	}

	// Validate new password
	if err := password.ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	// Hash new password
	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// RecordAttendance writes one attendance record and bumps the member's
// last_attendance when the new record is more recent. This feeds the
// status engine's activity signals.
func (s *MemberService) RecordAttendance(ctx context.Context, userID uint, source string, sourceID *uint, attendedAt time.Time, recordedBy uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.ErrMemberNotFound
	}

	record := &models.AttendanceRecord{
		UserID:     userID,
		Source:     source,
		SourceID:   sourceID,
		AttendedAt: attendedAt,
		RecordedBy: recordedBy,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return err
	}

	if user.LastAttendance == nil || attendedAt.After(*user.LastAttendance) {
		if err := s.userRepo.UpdateLastAttendance(ctx, userID, attendedAt); err != nil {
			return err
		}
	}
	return nil
}
