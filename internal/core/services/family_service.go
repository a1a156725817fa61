package services

import (
	"context"
	"errors"
	"log"

	"parishcare/internal/adapters/persistence/models"
	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/core/domain"

	"gorm.io/gorm"
)

// FamilyService handles household records
type FamilyService struct {
	familyRepo *repositories.FamilyRepository
	userRepo   repositories.UserRepository
}

// NewFamilyService creates a new family service
func NewFamilyService(familyRepo *repositories.FamilyRepository, userRepo repositories.UserRepository) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
		userRepo:   userRepo,
	}
}

// FamilyInput represents a family create/update payload
type FamilyInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ListFamiliesOutput represents list families output
type ListFamiliesOutput struct {
	Families []*models.Family `json:"families"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// Create creates a new family
func (s *FamilyService) Create(ctx context.Context, input *FamilyInput) (*models.Family, error) {
	if input.Name == "" {
		return nil, errors.New("family name is required")
	}

	f := &models.Family{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
	}
	if err := s.familyRepo.Create(ctx, f); err != nil {
		return nil, err
	}

	log.Printf("✅ Family created: %s", f.Name)
	return f, nil
}

// GetByID gets a family with its members
func (s *FamilyService) GetByID(ctx context.Context, id uint) (*models.Family, error) {
	f, err := s.familyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// List lists families with pagination
func (s *FamilyService) List(ctx context.Context, page, limit int) (*ListFamiliesOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.familyRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	return &ListFamiliesOutput{
		Families: items,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// Update updates a family record
func (s *FamilyService) Update(ctx context.Context, id uint, input *FamilyInput) (*models.Family, error) {
	f, err := s.familyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		f.Name = input.Name
	}
	f.Address = input.Address
	f.Phone = input.Phone

	if err := s.familyRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete deletes a family and detaches its members
func (s *FamilyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.familyRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.familyRepo.Delete(ctx, id)
}

// AssignMember links a member to a family
func (s *FamilyService) AssignMember(ctx context.Context, familyID, userID uint) error {
	if _, err := s.familyRepo.GetByID(ctx, familyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return domain.ErrMemberNotFound
	}

	return s.familyRepo.AssignMember(ctx, familyID, userID)
}

// RemoveMember unlinks a member from their family
func (s *FamilyService) RemoveMember(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return domain.ErrMemberNotFound
	}
	return s.familyRepo.RemoveMember(ctx, userID)
}
