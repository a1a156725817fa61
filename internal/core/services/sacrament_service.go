package services

import (
	"context"
	"errors"
	"log"
	"time"

	"parishcare/internal/adapters/persistence/models"
	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/core/domain"

	"gorm.io/gorm"
)

// Sacrament appointment errors
var (
	ErrInvalidSacramentType  = errors.New("invalid sacrament type")
	ErrInvalidApptTransition = errors.New("invalid appointment status transition")
	ErrAppointmentInPast     = errors.New("appointment date is in the past")
)

// SacramentService handles sacrament appointment requests
type SacramentService struct {
	sacramentRepo       *repositories.SacramentRepository
	userRepo            repositories.UserRepository
	notificationService *NotificationService
}

// NewSacramentService creates a new sacrament service
func NewSacramentService(
	sacramentRepo *repositories.SacramentRepository,
	userRepo repositories.UserRepository,
	notificationService *NotificationService,
) *SacramentService {
	return &SacramentService{
		sacramentRepo:       sacramentRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// RequestAppointmentInput represents an appointment request payload
type RequestAppointmentInput struct {
	Type     string    `json:"type" validate:"required"`
	ApptDate time.Time `json:"appt_date" validate:"required"`
	ApptTime *string   `json:"appt_time"`
	Location string    `json:"location"`
}

// ListAppointmentsOutput represents list appointments output
type ListAppointmentsOutput struct {
	Appointments []*models.SacramentAppointment `json:"appointments"`
	Total        int64                          `json:"total"`
	Page         int                            `json:"page"`
	Limit        int                            `json:"limit"`
}

func validSacramentType(t string) bool {
	switch t {
	case domain.SacramentBaptism, domain.SacramentWedding, domain.SacramentFuneral, domain.SacramentBlessing:
		return true
	}
	return false
}

// Request files a sacrament appointment request
func (s *SacramentService) Request(ctx context.Context, userID uint, input *RequestAppointmentInput) (*models.SacramentAppointment, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, domain.ErrMemberNotFound
	}
	if !validSacramentType(input.Type) {
		return nil, ErrInvalidSacramentType
	}
	if input.ApptDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, ErrAppointmentInPast
	}

	appt := &models.SacramentAppointment{
		UserID:   userID,
		Type:     input.Type,
		ApptDate: input.ApptDate,
		ApptTime: input.ApptTime,
		Location: input.Location,
		Status:   domain.ApptStatusPending,
	}
	if err := s.sacramentRepo.Create(ctx, appt); err != nil {
		return nil, err
	}

	log.Printf("✅ %s appointment requested by member %d for %s",
		appt.Type, userID, appt.ApptDate.Format("2006-01-02"))
	return appt, nil
}

// GetByID gets an appointment
func (s *SacramentService) GetByID(ctx context.Context, id uint) (*models.SacramentAppointment, error) {
	appt, err := s.sacramentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return appt, nil
}

// List lists appointments, optionally filtered by status
func (s *SacramentService) List(ctx context.Context, page, limit int, status string) (*ListAppointmentsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.sacramentRepo.List(ctx, (page-1)*limit, limit, status)
	if err != nil {
		return nil, err
	}

	return &ListAppointmentsOutput{
		Appointments: items,
		Total:        total,
		Page:         page,
		Limit:        limit,
	}, nil
}

// ListByMember returns one member's appointments
func (s *SacramentService) ListByMember(ctx context.Context, userID uint) ([]*models.SacramentAppointment, error) {
	return s.sacramentRepo.ListByUser(ctx, userID)
}

// Approve approves a pending appointment and emails the member
func (s *SacramentService) Approve(ctx context.Context, id uint, approverID uint) (*models.SacramentAppointment, error) {
	appt, err := s.sacramentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if appt.Status != domain.ApptStatusPending {
		return nil, ErrInvalidApptTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      domain.ApptStatusApproved,
		"approved_by": approverID,
		"approved_at": now,
	}
	if err := s.sacramentRepo.UpdateStatus(ctx, id, updates); err != nil {
		return nil, err
	}

	appt, err = s.sacramentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if member, err := s.userRepo.GetByID(ctx, appt.UserID); err == nil {
		s.notificationService.NotifyAppointmentApproved(appt, member)
	}

	log.Printf("✅ Appointment %d approved by staff %d", id, approverID)
	return appt, nil
}

// Complete marks an approved appointment as held
func (s *SacramentService) Complete(ctx context.Context, id uint) (*models.SacramentAppointment, error) {
	appt, err := s.sacramentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if appt.Status != domain.ApptStatusApproved {
		return nil, ErrInvalidApptTransition
	}

	if err := s.sacramentRepo.UpdateStatus(ctx, id, map[string]interface{}{
		"status": domain.ApptStatusCompleted,
	}); err != nil {
		return nil, err
	}

	log.Printf("✅ Appointment %d completed", id)
	return s.sacramentRepo.GetByID(ctx, id)
}

// Cancel cancels a pending or approved appointment
func (s *SacramentService) Cancel(ctx context.Context, id uint) (*models.SacramentAppointment, error) {
	appt, err := s.sacramentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if appt.Status != domain.ApptStatusPending && appt.Status != domain.ApptStatusApproved {
		return nil, ErrInvalidApptTransition
	}

	if err := s.sacramentRepo.UpdateStatus(ctx, id, map[string]interface{}{
		"status": domain.ApptStatusCancelled,
	}); err != nil {
		return nil, err
	}

	log.Printf("✅ Appointment %d cancelled", id)
	return s.sacramentRepo.GetByID(ctx, id)
}
