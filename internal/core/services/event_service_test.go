package services

import (
	"context"
	"testing"
	"time"

	"parishcare/internal/adapters/persistence/models"
	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEventFixture(t *testing.T) (*EventService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	memberService := NewMemberService(userRepo, attendanceRepo)
	return NewEventService(eventRepo, memberService), db
}

func TestCreateEventOpenEnded(t *testing.T) {
	svc, _ := newEventFixture(t)
	ctx := context.Background()

	event, err := svc.Create(ctx, &EventInput{
		Title:    "Parish Fiesta",
		Location: "Main Hall",
		StartsAt: time.Now().AddDate(0, 0, 7),
	}, 1)
	require.NoError(t, err)
	assert.Nil(t, event.EndsAt)

	stored, err := svc.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.EndsAt)
}

func TestCreateEventWithEndTime(t *testing.T) {
	svc, _ := newEventFixture(t)
	ctx := context.Background()

	starts := time.Now().AddDate(0, 0, 7)
	ends := starts.Add(3 * time.Hour)

	event, err := svc.Create(ctx, &EventInput{
		Title:    "Youth Retreat",
		StartsAt: starts,
		EndsAt:   &ends,
	}, 1)
	require.NoError(t, err)
	require.NotNil(t, event.EndsAt)
	assert.WithinDuration(t, ends, *event.EndsAt, time.Second)
}

func TestCreateEventRejectsEndBeforeStart(t *testing.T) {
	svc, _ := newEventFixture(t)

	starts := time.Now().AddDate(0, 0, 7)
	ends := starts.Add(-time.Hour)

	_, err := svc.Create(context.Background(), &EventInput{
		Title:    "Backwards Event",
		StartsAt: starts,
		EndsAt:   &ends,
	}, 1)
	assert.Error(t, err)
}

func TestUpdateEventEndTime(t *testing.T) {
	svc, _ := newEventFixture(t)
	ctx := context.Background()

	starts := time.Now().AddDate(0, 0, 7)
	event, err := svc.Create(ctx, &EventInput{Title: "Choir Practice", StartsAt: starts}, 1)
	require.NoError(t, err)

	ends := starts.Add(2 * time.Hour)
	updated, err := svc.Update(ctx, event.ID, &EventInput{EndsAt: &ends})
	require.NoError(t, err)
	require.NotNil(t, updated.EndsAt)
	assert.WithinDuration(t, ends, *updated.EndsAt, time.Second)

	// Omitting ends_at on a later update keeps the stored value
	updated, err = svc.Update(ctx, event.ID, &EventInput{Title: "Choir Practice (moved)"})
	require.NoError(t, err)
	require.NotNil(t, updated.EndsAt)
	assert.WithinDuration(t, ends, *updated.EndsAt, time.Second)
}

func TestRegisterEventCapacityAndDuplicates(t *testing.T) {
	svc, db := newEventFixture(t)
	ctx := context.Background()

	u1 := createMember(t, db, "reg1", domain.StatusActive, daysAgo(100), nil)
	u2 := createMember(t, db, "reg2", domain.StatusActive, daysAgo(100), nil)

	event, err := svc.Create(ctx, &EventInput{
		Title:    "Small Group",
		StartsAt: time.Now().AddDate(0, 0, 3),
		Capacity: 1,
	}, 1)
	require.NoError(t, err)

	_, err = svc.Register(ctx, event.ID, u1.ID)
	require.NoError(t, err)

	_, err = svc.Register(ctx, event.ID, u1.ID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	_, err = svc.Register(ctx, event.ID, u2.ID)
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestMarkAttendedWritesAttendanceRecord(t *testing.T) {
	svc, db := newEventFixture(t)
	ctx := context.Background()

	user := createMember(t, db, "attendee", domain.StatusInactive, daysAgo(400), nil)

	event, err := svc.Create(ctx, &EventInput{
		Title:    "Feast Day Mass",
		StartsAt: time.Now(),
	}, 1)
	require.NoError(t, err)

	_, err = svc.Register(ctx, event.ID, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.MarkAttended(ctx, event.ID, user.ID, 1))

	var count int64
	require.NoError(t, db.Model(&models.AttendanceRecord{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Marking someone who never registered fails up front
	other := createMember(t, db, "walkin", domain.StatusActive, daysAgo(100), nil)
	assert.ErrorIs(t, svc.MarkAttended(ctx, event.ID, other.ID, 1), ErrNotRegistered)
}
