package repositories

import (
	"context"
	"time"

	"parishcare/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DonationRepository handles donation data access
type DonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Create creates a new donation
func (r *DonationRepository) Create(ctx context.Context, d *models.Donation) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// GetByID gets a donation by ID
func (r *DonationRepository) GetByID(ctx context.Context, id uint) (*models.Donation, error) {
	var d models.Donation
	err := r.db.WithContext(ctx).Preload("Donor").First(&d, id).Error
	return &d, err
}

// List lists donations with pagination, newest first; fund filter optional
func (r *DonationRepository) List(ctx context.Context, offset, limit int, fund string) ([]*models.Donation, int64, error) {
	var items []*models.Donation
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Donation{})
	if fund != "" {
		query = query.Where("fund = ?", fund)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Donor").
		Order("donated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// ListByUser lists a member's donations
func (r *DonationRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Donation, error) {
	var items []*models.Donation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("donated_at DESC").
		Find(&items).Error
	return items, err
}

// Update updates a donation
func (r *DonationRepository) Update(ctx context.Context, d *models.Donation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// Delete soft deletes a donation
func (r *DonationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Donation{}, id).Error
}

// SumSince returns the donation total recorded on or after a date
func (r *DonationRepository) SumSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("donated_at >= ?", since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// SumByFund returns donation totals grouped by fund
func (r *DonationRepository) SumByFund(ctx context.Context) (map[string]float64, error) {
	type Result struct {
		Fund  string
		Total float64
	}
	var results []Result

	err := r.db.WithContext(ctx).Model(&models.Donation{}).
		Select("fund, COALESCE(SUM(amount), 0) as total").
		Group("fund").
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(results))
	for _, res := range results {
		totals[res.Fund] = res.Total
	}
	return totals, nil
}
