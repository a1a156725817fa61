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

// DonationService handles donation records and aggregates
type DonationService struct {
	donationRepo *repositories.DonationRepository
	userRepo     repositories.UserRepository
}

// NewDonationService creates a new donation service
func NewDonationService(donationRepo *repositories.DonationRepository, userRepo repositories.UserRepository) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		userRepo:     userRepo,
	}
}

// DonationInput represents a donation record payload
type DonationInput struct {
	UserID        *uint     `json:"user_id"` // nil for anonymous donors
	DonorName     string    `json:"donor_name"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	Fund          string    `json:"fund"`
	PaymentMethod string    `json:"payment_method"`
	DonatedAt     time.Time `json:"donated_at"`
}

// ListDonationsOutput represents list donations output
type ListDonationsOutput struct {
	Donations []*models.Donation `json:"donations"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

// DonationStats represents aggregate donation figures
type DonationStats struct {
	TotalAllTime float64            `json:"total_all_time"`
	MonthToDate  float64            `json:"month_to_date"`
	ByFund       map[string]float64 `json:"by_fund"`
}

// Record stores one donation
func (s *DonationService) Record(ctx context.Context, input *DonationInput, recordedBy uint) (*models.Donation, error) {
	if input.Amount <= 0 {
		return nil, errors.New("donation amount must be positive")
	}

	donorName := input.DonorName
	if input.UserID != nil {
		user, err := s.userRepo.GetByID(ctx, *input.UserID)
		if err != nil {
			return nil, domain.ErrMemberNotFound
		}
		if donorName == "" {
			donorName = user.FullName()
		}
	}
	if donorName == "" {
		donorName = "Anonymous"
	}

	fund := input.Fund
	if fund == "" {
		fund = "GENERAL"
	}
	donatedAt := input.DonatedAt
	if donatedAt.IsZero() {
		donatedAt = time.Now()
	}

	d := &models.Donation{
		UserID:        input.UserID,
		DonorName:     donorName,
		Amount:        input.Amount,
		Fund:          fund,
		PaymentMethod: input.PaymentMethod,
		DonatedAt:     donatedAt,
		RecordedBy:    recordedBy,
	}
	if err := s.donationRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	log.Printf("✅ Donation recorded: %.2f to %s fund", d.Amount, d.Fund)
	return d, nil
}

// GetByID gets a donation by ID
func (s *DonationService) GetByID(ctx context.Context, id uint) (*models.Donation, error) {
	d, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// List lists donations, optionally filtered by fund
func (s *DonationService) List(ctx context.Context, page, limit int, fund string) (*ListDonationsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.donationRepo.List(ctx, (page-1)*limit, limit, fund)
	if err != nil {
		return nil, err
	}

	return &ListDonationsOutput{
		Donations: items,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

// ListByMember returns one member's donations
func (s *DonationService) ListByMember(ctx context.Context, userID uint) ([]*models.Donation, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, domain.ErrMemberNotFound
	}
	return s.donationRepo.ListByUser(ctx, userID)
}

// Delete removes a mistaken donation record
func (s *DonationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.donationRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.donationRepo.Delete(ctx, id)
}

// Statistics returns aggregate donation figures
func (s *DonationService) Statistics(ctx context.Context) (*DonationStats, error) {
	allTime, err := s.donationRepo.SumSince(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthToDate, err := s.donationRepo.SumSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	byFund, err := s.donationRepo.SumByFund(ctx)
	if err != nil {
		return nil, err
	}

	return &DonationStats{
		TotalAllTime: allTime,
		MonthToDate:  monthToDate,
		ByFund:       byFund,
	}, nil
}
