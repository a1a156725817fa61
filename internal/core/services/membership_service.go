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

// Status thresholds in days. Confirmed with the parish office:
// a member counts as new for 30 days and as active for 90 days
// after their last recorded attendance.
const (
	NewMemberWindowDays = 30
	ActiveWindowDays    = 90
)

// MembershipService derives and persists membership statuses
// from attendance signals
type MembershipService struct {
	userRepo       repositories.UserRepository
	attendanceRepo repositories.AttendanceRepository
}

// NewMembershipService creates a new membership service
func NewMembershipService(userRepo repositories.UserRepository, attendanceRepo repositories.AttendanceRepository) *MembershipService {
	return &MembershipService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
	}
}

// SweepResult represents the outcome of a full status sweep
type SweepResult struct {
	Total   int    `json:"total"`
	Changed int    `json:"changed"`
	Skipped []uint `json:"skipped,omitempty"`
}

// MembershipStats represents per-status member counts
type MembershipStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inactive"`
	Visitor   int64 `json:"visitor"`
	NewMember int64 `json:"new_member"`
}

// resolveStatus computes the status a member should hold right now.
// Rules are evaluated in precedence order, first match wins:
//  1. no attendance ever, membership started within 30 days → new_member
//  2. attended within the last 90 days → active
//  3. no attendance ever, account older than 30 days → visitor
//  4. attended historically but not recently → inactive
func resolveStatus(user *models.User, attendanceCount int64, now time.Time) string {
	newMemberCutoff := now.AddDate(0, 0, -NewMemberWindowDays)
	activeCutoff := now.AddDate(0, 0, -ActiveWindowDays)

	if attendanceCount == 0 && user.MembershipDate != nil && user.MembershipDate.After(newMemberCutoff) {
		return domain.StatusNewMember
	}
	if user.LastAttendance != nil && user.LastAttendance.After(activeCutoff) {
		return domain.StatusActive
	}
	if attendanceCount == 0 && user.CreatedAt.Before(newMemberCutoff) {
		return domain.StatusVisitor
	}
	return domain.StatusInactive
}

// UpdateStatus recomputes one member's status and writes it only if it
// changed. The write touches the single membership_status column.
func (s *MembershipService) UpdateStatus(ctx context.Context, user *models.User) (bool, error) {
	count, err := s.attendanceRepo.CountByUser(ctx, user.ID)
	if err != nil {
		return false, err
	}

	newStatus := resolveStatus(user, count, time.Now())
	if newStatus == user.MembershipStatus {
		return false, nil
	}

	if err := s.userRepo.UpdateMembershipStatus(ctx, user.ID, newStatus); err != nil {
		return false, err
	}

	user.MembershipStatus = newStatus
	return true, nil
}

// RefreshStatus loads a member and recomputes their status on demand
func (s *MembershipService) RefreshStatus(ctx context.Context, userID uint) (*models.User, bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, domain.ErrMemberNotFound
		}
		return nil, false, err
	}

	changed, err := s.UpdateStatus(ctx, user)
	if err != nil {
		return nil, false, err
	}
	return user, changed, nil
}

// UpdateAll sweeps every member sequentially. A single member's failure
// is logged and recorded, never aborts the sweep. Re-running with no new
// activity changes nothing (idempotent).
func (s *MembershipService) UpdateAll(ctx context.Context) (*SweepResult, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Total: len(users)}
	for _, user := range users {
		changed, err := s.UpdateStatus(ctx, user)
		if err != nil {
			log.Printf("⚠️ Membership sweep: skipping member %d: %v", user.ID, err)
			result.Skipped = append(result.Skipped, user.ID)
			continue
		}
		if changed {
			result.Changed++
		}
	}

	log.Printf("✅ Membership sweep completed: %d members, %d changed, %d skipped",
		result.Total, result.Changed, len(result.Skipped))
	return result, nil
}

// Statistics returns per-status member counts. Counts always sum to total.
func (s *MembershipService) Statistics(ctx context.Context) (*MembershipStats, error) {
	counts, total, err := s.userRepo.CountByMembershipStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &MembershipStats{
		Total:     total,
		Active:    counts[domain.StatusActive],
		Inactive:  counts[domain.StatusInactive],
		Visitor:   counts[domain.StatusVisitor],
		NewMember: counts[domain.StatusNewMember],
	}, nil
}
