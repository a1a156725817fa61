package repositories

import (
	"context"

	"parishcare/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// attendanceRepository implements AttendanceRepository interface
type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create records an attendance entry
func (r *attendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// CountByUser returns how many attendance records a member has, ever
func (r *attendanceRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// LastByUser returns the most recent attendance record for a member
func (r *attendanceRepository) LastByUser(ctx context.Context, userID uint) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("attended_at DESC").
		First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByUser returns recent attendance records for a member
func (r *attendanceRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("attended_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
