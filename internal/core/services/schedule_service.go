package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"parishcare/internal/adapters/persistence/models"
	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/core/domain"

	"gorm.io/gorm"
)

// Schedule errors
var (
	ErrScheduleSlotTaken = errors.New("a mass is already scheduled at this day and time")
)

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// MassScheduleService handles the weekly mass schedule
type MassScheduleService struct {
	scheduleRepo *repositories.MassScheduleRepository
}

// NewMassScheduleService creates a new mass schedule service
func NewMassScheduleService(scheduleRepo *repositories.MassScheduleRepository) *MassScheduleService {
	return &MassScheduleService{scheduleRepo: scheduleRepo}
}

// MassScheduleInput represents a mass schedule create/update payload
type MassScheduleInput struct {
	DayOfWeek int    `json:"day_of_week"` // 0 = Sunday
	StartTime string `json:"start_time" validate:"required"`
	Language  string `json:"language"`
	Celebrant string `json:"celebrant"`
	Location  string `json:"location"`
	IsActive  *bool  `json:"is_active"`
}

func (s *MassScheduleService) validateInput(input *MassScheduleInput) error {
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week must be 0..6", domain.ErrValidation)
	}
	if !timeOfDayPattern.MatchString(input.StartTime) {
		return fmt.Errorf("%w: start_time must be HH:MM", domain.ErrValidation)
	}
	return nil
}

// Create adds a mass to the weekly schedule
func (s *MassScheduleService) Create(ctx context.Context, input *MassScheduleInput) (*models.MassSchedule, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.scheduleRepo.GetByDayAndTime(ctx, input.DayOfWeek, input.StartTime)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrScheduleSlotTaken
	}

	m := &models.MassSchedule{
		DayOfWeek: input.DayOfWeek,
		StartTime: input.StartTime,
		Language:  input.Language,
		Celebrant: input.Celebrant,
		Location:  input.Location,
		IsActive:  true,
	}
	if input.IsActive != nil {
		m.IsActive = *input.IsActive
	}

	if err := s.scheduleRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	log.Printf("✅ Mass schedule created: day %d at %s", m.DayOfWeek, m.StartTime)
	return m, nil
}

// List returns the active weekly schedule
func (s *MassScheduleService) List(ctx context.Context) ([]*models.MassSchedule, error) {
	return s.scheduleRepo.List(ctx)
}

// ListAll returns the full schedule including inactive masses
func (s *MassScheduleService) ListAll(ctx context.Context) ([]*models.MassSchedule, error) {
	return s.scheduleRepo.ListAll(ctx)
}

// GetByID gets one schedule entry
func (s *MassScheduleService) GetByID(ctx context.Context, id uint) (*models.MassSchedule, error) {
	m, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Update updates a schedule entry
func (s *MassScheduleService) Update(ctx context.Context, id uint, input *MassScheduleInput) (*models.MassSchedule, error) {
	m, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	// Moving to another slot must not collide with an existing mass
	if m.DayOfWeek != input.DayOfWeek || m.StartTime != input.StartTime {
		existing, err := s.scheduleRepo.GetByDayAndTime(ctx, input.DayOfWeek, input.StartTime)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != m.ID {
			return nil, ErrScheduleSlotTaken
		}
	}

	m.DayOfWeek = input.DayOfWeek
	m.StartTime = input.StartTime
	m.Language = input.Language
	m.Celebrant = input.Celebrant
	m.Location = input.Location
	if input.IsActive != nil {
		m.IsActive = *input.IsActive
	}

	if err := s.scheduleRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a schedule entry
func (s *MassScheduleService) Delete(ctx context.Context, id uint) error {
	if _, err := s.scheduleRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.scheduleRepo.Delete(ctx, id)
}
