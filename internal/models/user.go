package models

import "strings"

// Role distinguishes the two roster screens.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleLecturer Role = "LECTURER"
)

// UserRecord is a read-through copy of an account row as the admin API
// returns it. Field names on the wire follow the upstream contract verbatim.
type UserRecord struct {
	UserID      string `json:"user_Id"`
	FirstName   string `json:"f_name"`
	LastName    string `json:"l_name,omitempty"`
	Email       string `json:"email"`
	NationalID  string `json:"NIC"`
	Contact     string `json:"contact"`
	DateOfBirth string `json:"DOB,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        Role   `json:"role,omitempty"`
	StudentID   string `json:"student_Id,omitempty"`
	LecturerID  string `json:"lecturer_Id,omitempty"`
	StatusRaw   string `json:"status,omitempty"`

	// IsActive is derived from StatusRaw by roster.Normalize and is never
	// mutated independently of it.
	IsActive bool `json:"-"`
}

// RoleSpecificID returns the student or lecturer number, whichever is set.
func (u UserRecord) RoleSpecificID() string {
	if u.LecturerID != "" {
		return u.LecturerID
	}
	return u.StudentID
}

// ActiveStatus reports whether a raw server status string means active.
// Present defines whether the status field existed at all; absent statuses
// are resolved by the caller's missing-status policy.
func ActiveStatus(raw string) (active bool, present bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false, false
	}
	return strings.ToUpper(trimmed) == "ACTIVE", true
}
