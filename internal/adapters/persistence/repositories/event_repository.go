package repositories

import (
	"context"
	"time"

	"parishcare/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// EventRepository handles event and registration data access
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID gets an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	return &event, err
}

// List lists events with pagination, soonest first
func (r *EventRepository) List(ctx context.Context, offset, limit int, upcomingOnly bool) ([]*models.Event, int64, error) {
	var events []*models.Event
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Event{}).Where("is_active = ?", true)
	if upcomingOnly {
		query = query.Where("starts_at >= ?", time.Now())
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("starts_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	return events, total, err
}

// CountUpcoming counts active events starting after now
func (r *EventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("is_active = ? AND starts_at >= ?", true, time.Now()).
		Count(&count).Error
	return count, err
}

// Update updates an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete soft deletes an event
func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, id).Error
}

// ============================================================
// Registrations
// ============================================================

// CreateRegistration creates an event registration
func (r *EventRepository) CreateRegistration(ctx context.Context, reg *models.EventRegistration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

// GetRegistration returns a member's registration for an event, nil if none
func (r *EventRepository) GetRegistration(ctx context.Context, eventID, userID uint) (*models.EventRegistration, error) {
	var reg models.EventRegistration
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&reg).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// ListRegistrations lists registrations for an event
func (r *EventRepository) ListRegistrations(ctx context.Context, eventID uint) ([]*models.EventRegistration, error) {
	var regs []*models.EventRegistration
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("registered_at ASC").
		Find(&regs).Error
	return regs, err
}

// CountRegistrations counts registrations for an event
func (r *EventRepository) CountRegistrations(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EventRegistration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// MarkAttended stamps a registration's attended_at
func (r *EventRepository) MarkAttended(ctx context.Context, registrationID uint, attendedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.EventRegistration{}).
		Where("id = ?", registrationID).
		Update("attended_at", attendedAt).Error
}
