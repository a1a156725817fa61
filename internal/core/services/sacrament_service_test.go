package services

import (
	"context"
	"testing"
	"time"

	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/config"
	"parishcare/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSacramentFixture(t *testing.T) (*SacramentService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	sacramentRepo := repositories.NewSacramentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	notifier := NewNotificationService(config.EmailConfig{})
	return NewSacramentService(sacramentRepo, userRepo, notifier), db
}

func requestAppointment(t *testing.T, svc *SacramentService, userID uint) uint {
	t.Helper()

	appt, err := svc.Request(context.Background(), userID, &RequestAppointmentInput{
		Type:     domain.SacramentBaptism,
		ApptDate: time.Now().AddDate(0, 0, 14),
	})
	require.NoError(t, err)
	require.Equal(t, domain.ApptStatusPending, appt.Status)
	return appt.ID
}

func TestRequestAppointmentValidation(t *testing.T) {
	svc, db := newSacramentFixture(t)
	ctx := context.Background()
	member := createMember(t, db, "appt-member", domain.StatusActive, daysAgo(400), daysAgo(5))

	_, err := svc.Request(ctx, member.ID, &RequestAppointmentInput{
		Type:     "ORDINATION",
		ApptDate: time.Now().AddDate(0, 0, 7),
	})
	assert.ErrorIs(t, err, ErrInvalidSacramentType)

	_, err = svc.Request(ctx, member.ID, &RequestAppointmentInput{
		Type:     domain.SacramentWedding,
		ApptDate: time.Now().AddDate(0, 0, -3),
	})
	assert.ErrorIs(t, err, ErrAppointmentInPast)

	_, err = svc.Request(ctx, 999, &RequestAppointmentInput{
		Type:     domain.SacramentWedding,
		ApptDate: time.Now().AddDate(0, 0, 7),
	})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestApproveThenComplete(t *testing.T) {
	svc, db := newSacramentFixture(t)
	ctx := context.Background()
	member := createMember(t, db, "appt-member", domain.StatusActive, daysAgo(400), daysAgo(5))
	staff := createMember(t, db, "appt-staff", domain.StatusActive, daysAgo(900), daysAgo(1))
	id := requestAppointment(t, svc, member.ID)

	appt, err := svc.Approve(ctx, id, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApptStatusApproved, appt.Status)
	require.NotNil(t, appt.ApprovedBy)
	assert.Equal(t, staff.ID, *appt.ApprovedBy)
	assert.NotNil(t, appt.ApprovedAt)

	// Approving twice is rejected
	_, err = svc.Approve(ctx, id, staff.ID)
	assert.ErrorIs(t, err, ErrInvalidApptTransition)

	appt, err = svc.Complete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ApptStatusCompleted, appt.Status)

	// Completed appointments cannot be cancelled
	_, err = svc.Cancel(ctx, id)
	assert.ErrorIs(t, err, ErrInvalidApptTransition)
}

func TestCompleteRequiresApproval(t *testing.T) {
	svc, db := newSacramentFixture(t)
	member := createMember(t, db, "appt-member", domain.StatusActive, daysAgo(400), daysAgo(5))
	id := requestAppointment(t, svc, member.ID)

	_, err := svc.Complete(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidApptTransition)
}

func TestCancelPendingAppointment(t *testing.T) {
	svc, db := newSacramentFixture(t)
	member := createMember(t, db, "appt-member", domain.StatusActive, daysAgo(400), daysAgo(5))
	id := requestAppointment(t, svc, member.ID)

	appt, err := svc.Cancel(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.ApptStatusCancelled, appt.Status)
}
