package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"parishcare/internal/adapters/persistence/models"
	"parishcare/internal/adapters/persistence/repositories"
	"parishcare/internal/core/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func newMembershipFixture(t *testing.T) (*MembershipService, repositories.UserRepository, repositories.AttendanceRepository, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	return NewMembershipService(userRepo, attendanceRepo), userRepo, attendanceRepo, db
}

func daysAgo(n int) *time.Time {
	d := time.Now().AddDate(0, 0, -n)
	return &d
}

func createMember(t *testing.T, db *gorm.DB, username, status string, membershipDate, lastAttendance *time.Time) *models.User {
	t.Helper()

	user := &models.User{
		Username:         username,
		Email:            username + "@parish.test",
		Password:         "hashed",
		FirstName:        "Test",
		LastName:         "Member",
		Role:             "MEMBER",
		MembershipStatus: status,
		MembershipDate:   membershipDate,
		LastAttendance:   lastAttendance,
		IsActive:         true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func recordAttendance(t *testing.T, db *gorm.DB, userID uint, attendedAt time.Time) {
	t.Helper()

	record := &models.AttendanceRecord{
		UserID:     userID,
		Source:     domain.AttendanceSourceMass,
		AttendedAt: attendedAt,
		RecordedBy: 1,
	}
	require.NoError(t, db.Create(record).Error)
}

func TestUpdateStatusNewMember(t *testing.T) {
	svc, _, _, db := newMembershipFixture(t)
	ctx := context.Background()

	// Joined 10 days ago, never attended anything
	user := createMember(t, db, "newcomer", domain.StatusInactive, daysAgo(10), nil)

	changed, err := svc.UpdateStatus(ctx, user)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusNewMember, user.MembershipStatus)
}

func TestUpdateStatusActiveRegardlessOfHistory(t *testing.T) {
	svc, _, _, db := newMembershipFixture(t)
	ctx := context.Background()

	// Attended 5 days ago; recent attendance always wins
	user := createMember(t, db, "regular", domain.StatusVisitor, daysAgo(400), daysAgo(5))
	recordAttendance(t, db, user.ID, *daysAgo(5))

	changed, err := svc.UpdateStatus(ctx, user)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusActive, user.MembershipStatus)
}

func TestUpdateStatusInactive(t *testing.T) {
	svc, _, _, db := newMembershipFixture(t)
	ctx := context.Background()

	// Last attended 200 days ago with real history behind it
	user := createMember(t, db, "lapsed", domain.StatusActive, daysAgo(400), daysAgo(200))
	recordAttendance(t, db, user.ID, *daysAgo(200))
	recordAttendance(t, db, user.ID, *daysAgo(300))

	changed, err := svc.UpdateStatus(ctx, user)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusInactive, user.MembershipStatus)
}

func TestUpdateStatusVisitor(t *testing.T) {
	svc, _, _, db := newMembershipFixture(t)
	ctx := context.Background()

	// Account registered long ago, never attended, no membership date
	user := createMember(t, db, "onlooker", domain.StatusNewMember, nil, nil)
	require.NoError(t, db.Model(user).Update("created_at", time.Now().AddDate(0, 0, -120)).Error)
	user.CreatedAt = time.Now().AddDate(0, 0, -120)

	changed, err := svc.UpdateStatus(ctx, user)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.StatusVisitor, user.MembershipStatus)
}

func TestUpdateStatusNoWriteWhenUnchanged(t *testing.T) {
	svc, userRepo, _, db := newMembershipFixture(t)
	ctx := context.Background()

	user := createMember(t, db, "steady", domain.StatusActive, daysAgo(400), daysAgo(5))
	recordAttendance(t, db, user.ID, *daysAgo(5))

	changed, err := svc.UpdateStatus(ctx, user)
	require.NoError(t, err)
	assert.False(t, changed)

	stored, err := userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, stored.MembershipStatus)
}

func TestUpdateAllIdempotent(t *testing.T) {
	svc, _, _, db := newMembershipFixture(t)
	ctx := context.Background()

	createMember(t, db, "m1", domain.StatusInactive, daysAgo(10), nil)
	u2 := createMember(t, db, "m2", domain.StatusVisitor, daysAgo(400), daysAgo(5))
	recordAttendance(t, db, u2.ID, *daysAgo(5))
	u3 := createMember(t, db, "m3", domain.StatusActive, daysAgo(400), daysAgo(200))
	recordAttendance(t, db, u3.ID, *daysAgo(200))

	first, err := svc.UpdateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, 3, first.Changed)
	assert.Empty(t, first.Skipped)

	// Nothing new happened, so the second sweep changes nobody
	second, err := svc.UpdateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Total)
	assert.Equal(t, 0, second.Changed)
}

func TestStatisticsSumToTotal(t *testing.T) {
	svc, _, _, db := newMembershipFixture(t)
	ctx := context.Background()

	createMember(t, db, "s1", domain.StatusActive, daysAgo(400), daysAgo(5))
	createMember(t, db, "s2", domain.StatusActive, daysAgo(400), daysAgo(10))
	createMember(t, db, "s3", domain.StatusInactive, daysAgo(400), daysAgo(200))
	createMember(t, db, "s4", domain.StatusVisitor, nil, nil)
	createMember(t, db, "s5", domain.StatusNewMember, daysAgo(10), nil)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, stats.Total, stats.Active+stats.Inactive+stats.Visitor+stats.NewMember)
	assert.Equal(t, int64(2), stats.Active)
	assert.Equal(t, int64(1), stats.NewMember)
}

func TestRefreshStatusNotFound(t *testing.T) {
	svc, _, _, _ := newMembershipFixture(t)

	_, _, err := svc.RefreshStatus(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestRefreshStatusStorageFailureIsNotNotFound(t *testing.T) {
	svc, _, _, db := newMembershipFixture(t)
	user := createMember(t, db, "unreachable", domain.StatusActive, daysAgo(100), daysAgo(5))

	// A dead connection is a storage error, not a missing member
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, _, err = svc.RefreshStatus(context.Background(), user.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestUpdateAllRecordsSkippedMembers(t *testing.T) {
	svc, _, _, db := newMembershipFixture(t)
	ctx := context.Background()

	createMember(t, db, "fine1", domain.StatusInactive, daysAgo(10), nil)
	broken := createMember(t, db, "broken", domain.StatusVisitor, daysAgo(400), daysAgo(5))
	createMember(t, db, "fine2", domain.StatusVisitor, daysAgo(400), daysAgo(5))

	// Make the one member's status write fail while everyone else's
	// succeeds. Bound parameters are not allowed in DDL, so the id is
	// inlined.
	require.NoError(t, db.Exec(fmt.Sprintf(
		`CREATE TRIGGER block_broken BEFORE UPDATE OF membership_status ON users
		 WHEN NEW.id = %d AND NEW.membership_status <> OLD.membership_status
		 BEGIN SELECT RAISE(ABORT, 'status write rejected'); END`, broken.ID)).Error)

	result, err := svc.UpdateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Changed)
	assert.Equal(t, []uint{broken.ID}, result.Skipped)

	// The healthy members were still swept
	var status string
	require.NoError(t, db.Raw("SELECT membership_status FROM users WHERE username = ?", "fine2").Scan(&status).Error)
	assert.Equal(t, domain.StatusActive, status)
}
