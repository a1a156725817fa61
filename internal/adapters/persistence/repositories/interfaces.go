package repositories

import (
	"context"
	"time"

	"parishcare/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateMembershipStatus(ctx context.Context, id uint, status string) error
	UpdateLastAttendance(ctx context.Context, id uint, attendedAt time.Time) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int, search string) ([]*models.User, int64, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	CountByMembershipStatus(ctx context.Context) (map[string]int64, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	GetByUserID(ctx context.Context, userID uint) ([]*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// AttendanceRepository defines attendance repository interface.
// The membership status engine reads its activity signals here.
type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	LastByUser(ctx context.Context, userID uint) (*models.AttendanceRecord, error)
	ListByUser(ctx context.Context, userID uint, limit int) ([]*models.AttendanceRecord, error)
}
