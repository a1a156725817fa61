package repositories

import (
	"context"
	"errors"

	"parishcare/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MortuaryRepository handles mortuary rack data access
type MortuaryRepository struct {
	db *gorm.DB
}

// NewMortuaryRepository creates a new mortuary repository
func NewMortuaryRepository(db *gorm.DB) *MortuaryRepository {
	return &MortuaryRepository{db: db}
}

// Create creates a new rack. The composite unique index on
// (position_row, position_col) rejects a second rack on the same cell.
func (r *MortuaryRepository) Create(ctx context.Context, rack *models.MortuaryRack) error {
	return r.db.WithContext(ctx).Create(rack).Error
}

// GetByID gets a rack by its human-readable ID
func (r *MortuaryRepository) GetByID(ctx context.Context, id string) (*models.MortuaryRack, error) {
	var rack models.MortuaryRack
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rack).Error
	if err != nil {
		return nil, err
	}
	return &rack, nil
}

// GetByPosition gets the rack at a grid cell, or nil if the cell is empty
func (r *MortuaryRepository) GetByPosition(ctx context.Context, row, col int) (*models.MortuaryRack, error) {
	var rack models.MortuaryRack
	err := r.db.WithContext(ctx).
		Where("position_row = ? AND position_col = ?", row, col).
		First(&rack).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rack, nil
}

// List returns all racks ordered by grid position
func (r *MortuaryRepository) List(ctx context.Context) ([]*models.MortuaryRack, error) {
	var racks []*models.MortuaryRack
	err := r.db.WithContext(ctx).
		Order("position_row ASC, position_col ASC").
		Find(&racks).Error
	return racks, err
}

// ListByStatus returns racks in a given status
func (r *MortuaryRepository) ListByStatus(ctx context.Context, status string) ([]*models.MortuaryRack, error) {
	var racks []*models.MortuaryRack
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("position_row ASC, position_col ASC").
		Find(&racks).Error
	return racks, err
}

// Save persists a full rack record
func (r *MortuaryRepository) Save(ctx context.Context, rack *models.MortuaryRack) error {
	return r.db.WithContext(ctx).Save(rack).Error
}

// UpdateFields applies a partial update to a rack
func (r *MortuaryRepository) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.MortuaryRack{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a rack entirely, freeing its position
func (r *MortuaryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.MortuaryRack{}).Error
}

// CountByStatus returns rack counts grouped by status
func (r *MortuaryRepository) CountByStatus(ctx context.Context) (map[string]int64, int64, error) {
	type Result struct {
		Status string
		Count  int64
	}
	var results []Result

	err := r.db.WithContext(ctx).Model(&models.MortuaryRack{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}

	counts := map[string]int64{
		"available": 0,
		"occupied":  0,
		"reserved":  0,
	}
	var total int64
	for _, res := range results {
		counts[res.Status] = res.Count
		total += res.Count
	}
	return counts, total, nil
}
