package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Parish Content Tables
// ============================================================

// Announcement represents announcements table
type Announcement struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	Category    string         `gorm:"size:50;default:'GENERAL'" json:"category"`
	IsPublished bool           `gorm:"default:false;index" json:"is_published"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author *User `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}

// MassSchedule represents mass_schedules table (weekly recurring masses)
type MassSchedule struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	DayOfWeek int            `gorm:"not null" json:"day_of_week"` // 0=Sunday..6=Saturday
	StartTime string         `gorm:"size:10;not null" json:"start_time"`
	Language  string         `gorm:"size:30;default:'English'" json:"language"`
	Celebrant string         `gorm:"size:100" json:"celebrant"`
	Location  string         `gorm:"size:100;default:'Main Church'" json:"location"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MassSchedule) TableName() string {
	return "mass_schedules"
}

// Event represents events table (parish activities members can register for)
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"size:200" json:"location"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time     `json:"ends_at"`
	Capacity    int            `gorm:"default:0" json:"capacity"` // 0 = unlimited
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Registrations []EventRegistration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// EventRegistration represents event_registrations table
type EventRegistration struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EventID      uint       `gorm:"not null;index;uniqueIndex:idx_event_user" json:"event_id"`
	UserID       uint       `gorm:"not null;index;uniqueIndex:idx_event_user" json:"user_id"`
	RegisteredAt time.Time  `gorm:"not null" json:"registered_at"`
	AttendedAt   *time.Time `json:"attended_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (EventRegistration) TableName() string {
	return "event_registrations"
}

// Donation represents donations table
type Donation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        *uint          `gorm:"index" json:"user_id"` // nil = anonymous/walk-in donor
	DonorName     string         `gorm:"size:100" json:"donor_name"`
	Amount        float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	Fund          string         `gorm:"size:50;default:'GENERAL';index" json:"fund"`
	PaymentMethod string         `gorm:"size:20;default:'CASH'" json:"payment_method"`
	DonatedAt     time.Time      `gorm:"type:date;not null;index" json:"donated_at"`
	Remark        string         `gorm:"type:text" json:"remark"`
	RecordedBy    uint           `gorm:"not null" json:"recorded_by"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Donor *User `gorm:"foreignKey:UserID" json:"donor,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

// Certificate represents certificates table (sacramental certificate requests)
type Certificate struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ReferenceNo string         `gorm:"size:30;uniqueIndex;not null" json:"reference_no"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Type        string         `gorm:"size:20;not null" json:"type"`
	HolderName  string         `gorm:"size:100;not null" json:"holder_name"`
	Purpose     string         `gorm:"size:200" json:"purpose"`
	Status      string         `gorm:"size:20;not null;default:'REQUESTED';index" json:"status"`
	ReleasedAt  *time.Time     `json:"released_at"`
	Remark      string         `gorm:"type:text" json:"remark"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Requester *User `gorm:"foreignKey:UserID" json:"requester,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}

// SacramentAppointment represents sacrament_appointments table
type SacramentAppointment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Type       string         `gorm:"size:20;not null" json:"type"`
	ApptDate   time.Time      `gorm:"type:date;not null;index" json:"appt_date"`
	ApptTime   *string        `gorm:"size:10" json:"appt_time"`
	Location   string         `gorm:"size:200;default:'Main Church'" json:"location"`
	Status     string         `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	ApprovedBy *uint          `json:"approved_by"`
	ApprovedAt *time.Time     `json:"approved_at"`
	Remark     string         `gorm:"type:text" json:"remark"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Requester *User `gorm:"foreignKey:UserID" json:"requester,omitempty"`
	Approver  *User `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (SacramentAppointment) TableName() string {
	return "sacrament_appointments"
}

// ============================================================
// Mortuary Rack Table
// ============================================================

// MortuaryRack represents mortuary_racks table.
// One row per addressable slot in the columbarium grid. The composite
// unique index on (position_row, position_col) is the storage-level
// guard against two racks sharing a cell.
type MortuaryRack struct {
	ID           string     `gorm:"primaryKey;size:10" json:"id"` // human-readable, e.g. "A1"
	Status       string     `gorm:"size:15;not null;default:'available';index" json:"status"`
	Occupant     *string    `gorm:"size:100" json:"occupant"`
	DateOccupied *time.Time `gorm:"type:date" json:"date_occupied"`
	PositionRow  int        `gorm:"not null;uniqueIndex:idx_rack_position" json:"position_row"`
	PositionCol  int        `gorm:"not null;uniqueIndex:idx_rack_position" json:"position_col"`
	Notes        string     `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MortuaryRack) TableName() string {
	return "mortuary_racks"
}

// IsAvailable reports whether the rack is free
func (r *MortuaryRack) IsAvailable() bool {
	return r.Status == "available"
}
