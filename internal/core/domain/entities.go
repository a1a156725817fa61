package domain

// Role represents user role in the system
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleStaff  Role = "STAFF"
	RoleAdmin  Role = "ADMIN"
)

// MembershipStatus values for users.membership_status.
// A member always holds exactly one of these.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusVisitor   = "visitor"
	StatusNewMember = "new_member"
)

// RackStatus values for mortuary_racks.status
const (
	RackAvailable = "available"
	RackOccupied  = "occupied"
	RackReserved  = "reserved"
)

// Attendance sources for attendance_records.source
const (
	AttendanceSourceMass   = "MASS"
	AttendanceSourceEvent  = "EVENT"
	AttendanceSourceManual = "MANUAL"
)

// Certificate types
const (
	CertBaptism      = "BAPTISM"
	CertConfirmation = "CONFIRMATION"
	CertMarriage     = "MARRIAGE"
	CertDeath        = "DEATH"
)

// Certificate request statuses
const (
	CertStatusRequested  = "REQUESTED"
	CertStatusProcessing = "PROCESSING"
	CertStatusReady      = "READY"
	CertStatusReleased   = "RELEASED"
)

// Sacrament appointment types
const (
	SacramentBaptism  = "BAPTISM"
	SacramentWedding  = "WEDDING"
	SacramentFuneral  = "FUNERAL"
	SacramentBlessing = "BLESSING"
)

// Sacrament appointment statuses
const (
	ApptStatusPending   = "PENDING"
	ApptStatusApproved  = "APPROVED"
	ApptStatusCompleted = "COMPLETED"
	ApptStatusCancelled = "CANCELLED"
)

// ValidRole reports whether s is a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleMember, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// ValidMembershipStatus reports whether s is one of the four membership states.
func ValidMembershipStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusVisitor, StatusNewMember:
		return true
	}
	return false
}

// ValidRackStatus reports whether s is a known rack status.
func ValidRackStatus(s string) bool {
	switch s {
	case RackAvailable, RackOccupied, RackReserved:
		return true
	}
	return false
}
