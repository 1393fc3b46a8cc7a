package snapshot

import (
	"time"

	"github.com/google/uuid"

	"github.com/acuchart/acuchart/internal/domain/chart"
	"github.com/acuchart/acuchart/internal/domain/clinic"
)

// SchemaVersion tags exported snapshots so a future format change can be
// detected on import.
const SchemaVersion = 1

// Snapshot is the portable dump of one account's data: every chart plus
// the clinic profile, if one was saved.
type Snapshot struct {
	SchemaVersion int             `json:"schema_version"`
	AccountID     uuid.UUID       `json:"account_id"`
	ExportedAt    time.Time       `json:"exported_at"`
	Charts        []*chart.Chart  `json:"charts"`
	ClinicProfile *clinic.Profile `json:"clinic_profile,omitempty"`
}
