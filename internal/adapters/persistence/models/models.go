package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & Membership Tables
// ============================================================

// User represents users table (a registered parishioner)
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Username         string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email            string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password         string         `gorm:"size:255;not null" json:"-"`
	FirstName        string         `gorm:"size:100;not null" json:"first_name"`
	LastName         string         `gorm:"size:100;not null" json:"last_name"`
	Phone            string         `gorm:"size:20" json:"phone"`
	Role             string         `gorm:"size:20;default:'MEMBER'" json:"role"`
	MembershipStatus string         `gorm:"size:20;not null;default:'new_member';index" json:"membership_status"`
	MembershipDate   *time.Time     `gorm:"type:date" json:"membership_date"`
	LastAttendance   *time.Time     `gorm:"type:date" json:"last_attendance"`
	FamilyID         *uint          `gorm:"index" json:"family_id"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Family *Family `gorm:"foreignKey:FamilyID" json:"family,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID               uint       `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Phone            string     `json:"phone,omitempty"`
	Role             string     `json:"role"`
	MembershipStatus string     `json:"membership_status"`
	MembershipDate   *time.Time `json:"membership_date"`
	LastAttendance   *time.Time `json:"last_attendance"`
	FamilyID         *uint      `json:"family_id,omitempty"`
	FamilyName       string     `json:"family_name,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	resp := &UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		Role:             u.Role,
		MembershipStatus: u.MembershipStatus,
		MembershipDate:   u.MembershipDate,
		LastAttendance:   u.LastAttendance,
		FamilyID:         u.FamilyID,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
	}

	if u.Family != nil {
		resp.FamilyName = u.Family.Name
	}

	return resp
}

// FullName returns the member's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// Family represents families table (a parish household)
type Family struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	Phone     string         `gorm:"size:20" json:"phone"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members []User `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
}

func (Family) TableName() string {
	return "families"
}

// AttendanceRecord represents attendance_records table.
// One row per member per attended mass or event; the membership status
// engine reads these as its activity signal.
type AttendanceRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Source     string    `gorm:"size:10;not null" json:"source"`
	SourceID   *uint     `json:"source_id"`
	AttendedAt time.Time `gorm:"type:date;not null;index" json:"attended_at"`
	RecordedBy uint      `gorm:"not null" json:"recorded_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth & membership
		&Family{},
		&User{},
		&RefreshToken{},
		&AttendanceRecord{},
		// Parish content
		&Announcement{},
		&MassSchedule{},
		&Event{},
		&EventRegistration{},
		&Donation{},
		&Certificate{},
		&SacramentAppointment{},
		// Mortuary
		&MortuaryRack{},
	)
}
