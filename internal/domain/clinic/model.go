package clinic

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the clinic letterhead data printed on charts. At most one
// profile exists per account; saves are upserts keyed by account id.
type Profile struct {
	ID               uuid.UUID `db:"id" json:"id"`
	AccountID        uuid.UUID `db:"account_id" json:"account_id"`
	ClinicName       string    `db:"clinic_name" json:"clinic_name"`
	Logo             string    `db:"logo" json:"logo"` // base64-encoded image
	PractitionerName string    `db:"practitioner_name" json:"practitioner_name"`
	LicenseNo        string    `db:"license_no" json:"license_no"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
