package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/config"
	"parishcare/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCertificateFixture(t *testing.T) (*CertificateService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	certRepo := repositories.NewCertificateRepository(db)
	userRepo := repositories.NewUserRepository(db)
	// Empty email config keeps notifications on the console
	notifier := NewNotificationService(config.EmailConfig{})
	return NewCertificateService(certRepo, userRepo, notifier), db
}

func TestRequestCertificateAssignsReference(t *testing.T) {
	svc, db := newCertificateFixture(t)
	ctx := context.Background()
	member := createMember(t, db, "requester", domain.StatusActive, daysAgo(400), daysAgo(10))

	cert, err := svc.Request(ctx, member.ID, &RequestCertificateInput{
		Type:    domain.CertBaptism,
		Purpose: "school enrollment",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CertStatusRequested, cert.Status)
	assert.Equal(t, fmt.Sprintf("%s-%d-0001", domain.CertBaptism, time.Now().Year()), cert.ReferenceNo)
	assert.Equal(t, member.FullName(), cert.HolderName)

	// Second request of the same type gets the next sequence number
	second, err := svc.Request(ctx, member.ID, &RequestCertificateInput{Type: domain.CertBaptism})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s-%d-0002", domain.CertBaptism, time.Now().Year()), second.ReferenceNo)
}

func TestRequestCertificateRejectsUnknownType(t *testing.T) {
	svc, db := newCertificateFixture(t)
	member := createMember(t, db, "requester", domain.StatusActive, daysAgo(400), daysAgo(10))

	_, err := svc.Request(context.Background(), member.ID, &RequestCertificateInput{Type: "DIPLOMA"})
	assert.ErrorIs(t, err, ErrInvalidCertType)
}

func TestAdvanceCertificateWalksTheFlow(t *testing.T) {
	svc, db := newCertificateFixture(t)
	ctx := context.Background()
	member := createMember(t, db, "requester", domain.StatusActive, daysAgo(400), daysAgo(10))

	cert, err := svc.Request(ctx, member.ID, &RequestCertificateInput{Type: domain.CertMarriage})
	require.NoError(t, err)

	for _, want := range []string{
		domain.CertStatusProcessing,
		domain.CertStatusReady,
		domain.CertStatusReleased,
	} {
		cert, err = svc.Advance(ctx, cert.ID)
		require.NoError(t, err)
		assert.Equal(t, want, cert.Status)
	}
	require.NotNil(t, cert.ReleasedAt)

	// Released is terminal
	_, err = svc.Advance(ctx, cert.ID)
	assert.ErrorIs(t, err, ErrInvalidCertTransition)
}

func TestAdvanceCertificateNotFound(t *testing.T) {
	svc, _ := newCertificateFixture(t)

	_, err := svc.Advance(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
