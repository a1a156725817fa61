package repositories

import (
	"context"
	"time"

	"parishcare/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SacramentRepository handles sacrament appointment data access
type SacramentRepository struct {
	db *gorm.DB
}

// NewSacramentRepository creates a new sacrament repository
func NewSacramentRepository(db *gorm.DB) *SacramentRepository {
	return &SacramentRepository{db: db}
}

// Create creates a new appointment
func (r *SacramentRepository) Create(ctx context.Context, appt *models.SacramentAppointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

// GetByID gets an appointment by ID
func (r *SacramentRepository) GetByID(ctx context.Context, id uint) (*models.SacramentAppointment, error) {
	var appt models.SacramentAppointment
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Approver").
		First(&appt, id).Error
	return &appt, err
}

// List lists appointments with pagination; status filter optional
func (r *SacramentRepository) List(ctx context.Context, offset, limit int, status string) ([]*models.SacramentAppointment, int64, error) {
	var items []*models.SacramentAppointment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SacramentAppointment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Requester").
		Order("appt_date ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// ListByUser lists a member's appointments
func (r *SacramentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.SacramentAppointment, error) {
	var items []*models.SacramentAppointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("appt_date DESC").
		Find(&items).Error
	return items, err
}

// CountPendingAfter counts pending appointments on or after a date
func (r *SacramentRepository) CountPendingAfter(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SacramentAppointment{}).
		Where("status = ? AND appt_date >= ?", "PENDING", date).
		Count(&count).Error
	return count, err
}

// UpdateStatus applies status and related fields to an appointment
func (r *SacramentRepository) UpdateStatus(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.SacramentAppointment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Update updates an appointment
func (r *SacramentRepository) Update(ctx context.Context, appt *models.SacramentAppointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

// Delete soft deletes an appointment
func (r *SacramentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SacramentAppointment{}, id).Error
}
