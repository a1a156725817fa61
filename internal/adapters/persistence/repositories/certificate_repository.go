package repositories

import (
	"context"

	"parishcare/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// CertificateRepository handles certificate request data access
type CertificateRepository struct {
	db *gorm.DB
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Create creates a new certificate request
func (r *CertificateRepository) Create(ctx context.Context, c *models.Certificate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID gets a certificate by ID
func (r *CertificateRepository) GetByID(ctx context.Context, id uint) (*models.Certificate, error) {
	var c models.Certificate
	err := r.db.WithContext(ctx).Preload("Requester").First(&c, id).Error
	return &c, err
}

// CountByType counts certificates of a type, used for reference numbering
func (r *CertificateRepository) CountByType(ctx context.Context, certType string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Certificate{}).
		Unscoped().
		Where("type = ?", certType).
		Count(&count).Error
	return count, err
}

// List lists certificates with pagination; status filter optional
func (r *CertificateRepository) List(ctx context.Context, offset, limit int, status string) ([]*models.Certificate, int64, error) {
	var items []*models.Certificate
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Certificate{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Requester").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

// ListByUser lists a member's certificate requests
func (r *CertificateRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Certificate, error) {
	var items []*models.Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Update updates a certificate
func (r *CertificateRepository) Update(ctx context.Context, c *models.Certificate) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete soft deletes a certificate request
func (r *CertificateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Certificate{}, id).Error
}
