package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"parishcare/internal/adapters/persistence/models"
	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/core/domain"

	"gorm.io/gorm"
)

// Certificate errors
var (
	ErrInvalidCertType       = errors.New("invalid certificate type")
	ErrInvalidCertTransition = errors.New("invalid certificate status transition")
)

// certTransitions is the allowed status flow
var certTransitions = map[string]string{
	domain.CertStatusRequested:  domain.CertStatusProcessing,
	domain.CertStatusProcessing: domain.CertStatusReady,
	domain.CertStatusReady:      domain.CertStatusReleased,
}

// CertificateService handles sacramental certificate requests
type CertificateService struct {
	certRepo            *repositories.CertificateRepository
	userRepo            repositories.UserRepository
	notificationService *NotificationService
}

// NewCertificateService creates a new certificate service
func NewCertificateService(
	certRepo *repositories.CertificateRepository,
	userRepo repositories.UserRepository,
	notificationService *NotificationService,
) *CertificateService {
	return &CertificateService{
		certRepo:            certRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// RequestCertificateInput represents a certificate request payload
type RequestCertificateInput struct {
	Type       string `json:"type" validate:"required"`
	HolderName string `json:"holder_name"`
	Purpose    string `json:"purpose"`
}

// ListCertificatesOutput represents list certificates output
type ListCertificatesOutput struct {
	Certificates []*models.Certificate `json:"certificates"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

func validCertType(t string) bool {
	switch t {
	case domain.CertBaptism, domain.CertConfirmation, domain.CertMarriage, domain.CertDeath:
		return true
	}
	return false
}

// Request files a certificate request for a member and assigns it a
// reference number like BAPTISM-2026-0007
func (s *CertificateService) Request(ctx context.Context, userID uint, input *RequestCertificateInput) (*models.Certificate, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrMemberNotFound
	}
	if !validCertType(input.Type) {
		return nil, ErrInvalidCertType
	}

	holderName := input.HolderName
	if holderName == "" {
		holderName = user.FullName()
	}

	count, err := s.certRepo.CountByType(ctx, input.Type)
	if err != nil {
		return nil, err
	}
	referenceNo := fmt.Sprintf("%s-%d-%04d", input.Type, time.Now().Year(), count+1)

	cert := &models.Certificate{
		ReferenceNo: referenceNo,
		UserID:      userID,
		Type:        input.Type,
		HolderName:  holderName,
		Purpose:     input.Purpose,
		Status:      domain.CertStatusRequested,
	}
	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, err
	}

	log.Printf("✅ Certificate requested: %s by member %d", referenceNo, userID)
	return cert, nil
}

// GetByID gets a certificate request
func (s *CertificateService) GetByID(ctx context.Context, id uint) (*models.Certificate, error) {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return cert, nil
}

// List lists certificate requests, optionally filtered by status
func (s *CertificateService) List(ctx context.Context, page, limit int, status string) (*ListCertificatesOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.certRepo.List(ctx, (page-1)*limit, limit, status)
	if err != nil {
		return nil, err
	}

	return &ListCertificatesOutput{
		Certificates: items,
		Total:        total,
		Page:         page,
		Limit:        limit,
	}, nil
}

// ListByMember returns one member's certificate requests
func (s *CertificateService) ListByMember(ctx context.Context, userID uint) ([]*models.Certificate, error) {
	return s.certRepo.ListByUser(ctx, userID)
}

// Advance moves a certificate to the next status in the flow
// REQUESTED → PROCESSING → READY → RELEASED. The member is emailed
// when their certificate becomes ready.
func (s *CertificateService) Advance(ctx context.Context, id uint) (*models.Certificate, error) {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	next, ok := certTransitions[cert.Status]
	if !ok {
		return nil, ErrInvalidCertTransition
	}

	cert.Status = next
	if next == domain.CertStatusReleased {
		now := time.Now()
		cert.ReleasedAt = &now
	}

	if err := s.certRepo.Update(ctx, cert); err != nil {
		return nil, err
	}

	if next == domain.CertStatusReady {
		if member, err := s.userRepo.GetByID(ctx, cert.UserID); err == nil {
			s.notificationService.NotifyCertificateReady(cert, member)
		}
	}

	log.Printf("✅ Certificate %s moved to %s", cert.ReferenceNo, cert.Status)
	return cert, nil
}

// Delete removes a certificate request
func (s *CertificateService) Delete(ctx context.Context, id uint) error {
	if _, err := s.certRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return s.certRepo.Delete(ctx, id)
}
