package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is a practitioner login. Usernames are unique across the
// instance. IsApproved gates login when the manual approval workflow is
// configured.
type Account struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Username         string     `db:"username" json:"username"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	ClinicName       string     `db:"clinic_name" json:"clinic_name"`
	PractitionerName string     `db:"practitioner_name" json:"practitioner_name"`
	LicenseNo        string     `db:"license_no" json:"license_no"`
	IsAdmin          bool       `db:"is_admin" json:"is_admin"`
	IsApproved       bool       `db:"is_approved" json:"is_approved"`
	ApprovedAt       *time.Time `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy       *uuid.UUID `db:"approved_by" json:"approved_by,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// Session is the result of a successful register or login.
type Session struct {
	Account *Account `json:"account"`
	Token   string   `json:"token"`
}
