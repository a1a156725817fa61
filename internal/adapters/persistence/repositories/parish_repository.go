package repositories

import (
	"context"

	"parishcare/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AnnouncementRepository handles announcement data access
type AnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create creates a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// GetByID gets an announcement by ID
func (r *AnnouncementRepository) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	var a models.Announcement
	err := r.db.WithContext(ctx).Preload("Author").First(&a, id).Error
	return &a, err
}

// List lists announcements with pagination, newest first
func (r *AnnouncementRepository) List(ctx context.Context, offset, limit int, publishedOnly bool) ([]*models.Announcement, int64, error) {
	var items []*models.Announcement
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Announcement{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// Update updates an announcement
func (r *AnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete soft deletes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}

// MassScheduleRepository handles mass schedule data access
type MassScheduleRepository struct {
	db *gorm.DB
}

// NewMassScheduleRepository creates a new mass schedule repository
func NewMassScheduleRepository(db *gorm.DB) *MassScheduleRepository {
	return &MassScheduleRepository{db: db}
}

// Create creates a new mass schedule
func (r *MassScheduleRepository) Create(ctx context.Context, m *models.MassSchedule) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a mass schedule by ID
func (r *MassScheduleRepository) GetByID(ctx context.Context, id uint) (*models.MassSchedule, error) {
	var m models.MassSchedule
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

// List lists active mass schedules ordered by day and time
func (r *MassScheduleRepository) List(ctx context.Context) ([]*models.MassSchedule, error) {
	var items []*models.MassSchedule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("day_of_week ASC, start_time ASC").
		Find(&items).Error
	return items, err
}

// ListAll lists all mass schedules including inactive
func (r *MassScheduleRepository) ListAll(ctx context.Context) ([]*models.MassSchedule, error) {
	var items []*models.MassSchedule
	err := r.db.WithContext(ctx).
		Order("day_of_week ASC, start_time ASC").
		Find(&items).Error
	return items, err
}

// GetByDayAndTime gets a schedule slot, nil when the slot is empty
func (r *MassScheduleRepository) GetByDayAndTime(ctx context.Context, day int, startTime string) (*models.MassSchedule, error) {
	var m models.MassSchedule
	err := r.db.WithContext(ctx).
		Where("day_of_week = ? AND start_time = ?", day, startTime).
		First(&m).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Update updates a mass schedule
func (r *MassScheduleRepository) Update(ctx context.Context, m *models.MassSchedule) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete soft deletes a mass schedule
func (r *MassScheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MassSchedule{}, id).Error
}

// FamilyRepository handles family (household) data access
type FamilyRepository struct {
	db *gorm.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *gorm.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

// Create creates a new family
func (r *FamilyRepository) Create(ctx context.Context, f *models.Family) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// GetByID gets a family by ID with its members
func (r *FamilyRepository) GetByID(ctx context.Context, id uint) (*models.Family, error) {
	var f models.Family
	err := r.db.WithContext(ctx).Preload("Members").First(&f, id).Error
	return &f, err
}

// List lists families with pagination
func (r *FamilyRepository) List(ctx context.Context, offset, limit int) ([]*models.Family, int64, error) {
	var items []*models.Family
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Family{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// Update updates a family
func (r *FamilyRepository) Update(ctx context.Context, f *models.Family) error {
	return r.db.WithContext(ctx).Save(f).Error
}

// Delete soft deletes a family and detaches its members
func (r *FamilyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("family_id = ?", id).
		Update("family_id", nil).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Family{}, id).Error
}

// AssignMember links a user to a family
func (r *FamilyRepository) AssignMember(ctx context.Context, familyID, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("family_id", familyID).Error
}

// RemoveMember unlinks a user from their family
func (r *FamilyRepository) RemoveMember(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("family_id", nil).Error
}
