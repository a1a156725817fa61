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

// Event errors
var (
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventFull         = errors.New("event has reached capacity")
	ErrNotRegistered     = errors.New("member is not registered for this event")
)

// EventService handles parish events and their registrations
type EventService struct {
	eventRepo     *repositories.EventRepository
	memberService *MemberService
}

// NewEventService creates a new event service
func NewEventService(eventRepo *repositories.EventRepository, memberService *MemberService) *EventService {
	return &EventService{
		eventRepo:     eventRepo,
		memberService: memberService,
	}
}

// EventInput represents an event create/update payload
type EventInput struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"starts_at" validate:"required"`
	EndsAt      *time.Time `json:"ends_at"` // nil = open-ended
	Capacity    int        `json:"capacity"` // 0 = unlimited
}

// ListEventsOutput represents list events output
type ListEventsOutput struct {
	Events []*models.Event `json:"events"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// Create creates a new event
func (s *EventService) Create(ctx context.Context, input *EventInput, creatorID uint) (*models.Event, error) {
	if input.Title == "" || input.StartsAt.IsZero() {
		return nil, errors.New("title and starts_at are required")
	}
	if input.EndsAt != nil && input.EndsAt.Before(input.StartsAt) {
		return nil, errors.New("ends_at cannot be before starts_at")
	}

	event := &models.Event{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Capacity:    input.Capacity,
		IsActive:    true,
		CreatedBy:   creatorID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	log.Printf("✅ Event created: %s (%s)", event.Title, event.StartsAt.Format("2006-01-02"))
	return event, nil
}

// GetByID gets an event by ID
func (s *EventService) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

// List lists events with pagination
func (s *EventService) List(ctx context.Context, page, limit int, upcomingOnly bool) (*ListEventsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.eventRepo.List(ctx, (page-1)*limit, limit, upcomingOnly)
	if err != nil {
		return nil, err
	}

	return &ListEventsOutput{
		Events: items,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

// Update updates an event
func (s *EventService) Update(ctx context.Context, id uint, input *EventInput) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if input.Title != "" {
		event.Title = input.Title
	}
	event.Description = input.Description
	event.Location = input.Location
	if !input.StartsAt.IsZero() {
		event.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = input.EndsAt
	}
	event.Capacity = input.Capacity

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete deletes an event
func (s *EventService) Delete(ctx context.Context, id uint) error {
	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

// Register signs a member up for an event. Duplicate registrations and
// full events are rejected before anything is written.
func (s *EventService) Register(ctx context.Context, eventID, userID uint) (*models.EventRegistration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	existing, err := s.eventRepo.GetRegistration(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	if event.Capacity > 0 {
		count, err := s.eventRepo.CountRegistrations(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if count >= int64(event.Capacity) {
			return nil, ErrEventFull
		}
	}

	reg := &models.EventRegistration{
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: time.Now(),
	}
	if err := s.eventRepo.CreateRegistration(ctx, reg); err != nil {
		return nil, err
	}

	log.Printf("✅ Member %d registered for event %d", userID, eventID)
	return reg, nil
}

// ListRegistrations returns an event's registrations
func (s *EventService) ListRegistrations(ctx context.Context, eventID uint) ([]*models.EventRegistration, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s.eventRepo.ListRegistrations(ctx, eventID)
}

// MarkAttended records that a registered member showed up. This writes
// an attendance record, which is the signal the membership status
// engine reads.
func (s *EventService) MarkAttended(ctx context.Context, eventID, userID, recordedBy uint) error {
	reg, err := s.eventRepo.GetRegistration(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if reg == nil {
		return ErrNotRegistered
	}

	now := time.Now()
	if err := s.eventRepo.MarkAttended(ctx, reg.ID, now); err != nil {
		return err
	}

	eid := eventID
	return s.memberService.RecordAttendance(ctx, userID, domain.AttendanceSourceEvent, &eid, now, recordedBy)
}
