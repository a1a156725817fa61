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

// AnnouncementService handles parish announcements
type AnnouncementService struct {
	announcementRepo *repositories.AnnouncementRepository
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcementRepo *repositories.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo}
}

// CreateAnnouncementInput represents create announcement input
type CreateAnnouncementInput struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Category string `json:"category"`
	Publish  bool   `json:"publish"`
}

// UpdateAnnouncementInput represents update announcement input
type UpdateAnnouncementInput struct {
	Title    *string `json:"title"`
	Body     *string `json:"body"`
	Category *string `json:"category"`
	Publish  *bool   `json:"publish"`
}

// ListAnnouncementsOutput represents list announcements output
type ListAnnouncementsOutput struct {
	Announcements []*models.Announcement `json:"announcements"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	Limit         int                    `json:"limit"`
}

// Create creates a new announcement
func (s *AnnouncementService) Create(ctx context.Context, input *CreateAnnouncementInput, authorID uint) (*models.Announcement, error) {
	if input.Title == "" || input.Body == "" {
		return nil, errors.New("title and body are required")
	}

	a := &models.Announcement{
		Title:       input.Title,
		Body:        input.Body,
		Category:    input.Category,
		IsPublished: input.Publish,
		CreatedBy:   authorID,
	}
	if input.Publish {
		now := time.Now()
		a.PublishedAt = &now
	}

	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Printf("✅ Announcement created: %s", a.Title)
	return s.announcementRepo.GetByID(ctx, a.ID)
}

// GetByID gets an announcement by ID
func (s *AnnouncementService) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// List lists announcements. Members see only published ones; staff may
// include drafts.
func (s *AnnouncementService) List(ctx context.Context, page, limit int, publishedOnly bool) (*ListAnnouncementsOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.announcementRepo.List(ctx, (page-1)*limit, limit, publishedOnly)
	if err != nil {
		return nil, err
	}

	return &ListAnnouncementsOutput{
		Announcements: items,
		Total:         total,
		Page:          page,
		Limit:         limit,
	}, nil
}

// Update updates an announcement
func (s *AnnouncementService) Update(ctx context.Context, id uint, input *UpdateAnnouncementInput) (*models.Announcement, error) {
	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		a.Title = *input.Title
	}
	if input.Body != nil {
		a.Body = *input.Body
	}
	if input.Category != nil {
		a.Category = *input.Category
	}
	if input.Publish != nil && *input.Publish != a.IsPublished {
		a.IsPublished = *input.Publish
		if a.IsPublished {
			now := time.Now()
			a.PublishedAt = &now
		} else {
			a.PublishedAt = nil
		}
	}

	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete deletes an announcement
func (s *AnnouncementService) Delete(ctx context.Context, id uint) error {
	if _, err := s.announcementRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.announcementRepo.Delete(ctx, id)
}
