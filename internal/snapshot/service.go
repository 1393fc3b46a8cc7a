package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acuchart/acuchart/internal/domain/chart"
	"github.com/acuchart/acuchart/internal/domain/clinic"
)

var ErrUnsupportedSchema = errors.New("unsupported snapshot schema version")

// ChartStore is the slice of the chart service the snapshot needs.
type ChartStore interface {
	List(ctx context.Context, accountID uuid.UUID) ([]*chart.Chart, error)
	Save(ctx context.Context, accountID uuid.UUID, ch *chart.Chart, expectedVersion int) error
	Delete(ctx context.Context, accountID uuid.UUID, fileNo string) error
}

// ProfileStore is the slice of the clinic service the snapshot needs.
type ProfileStore interface {
	Get(ctx context.Context, accountID uuid.UUID) (*clinic.Profile, error)
	Save(ctx context.Context, accountID uuid.UUID, p *clinic.Profile) error
}

// ImportReport summarizes what an import did. Charts that could not be
// applied are listed with the reason instead of failing the whole run.
type ImportReport struct {
	Imported int            `json:"imported"`
	Purged   int            `json:"purged"`
	Skipped  []SkippedChart `json:"skipped,omitempty"`
}

type SkippedChart struct {
	FileNo string `json:"file_no"`
	Reason string `json:"reason"`
}

type Service struct {
	charts   ChartStore
	profiles ProfileStore
}

func NewService(charts ChartStore, profiles ProfileStore) *Service {
	return &Service{charts: charts, profiles: profiles}
}

// Export collects the account's charts and clinic profile into a single
// snapshot document.
func (s *Service) Export(ctx context.Context, accountID uuid.UUID) (*Snapshot, error) {
	charts, err := s.charts.List(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("export charts: %w", err)
	}

	snap := &Snapshot{
		SchemaVersion: SchemaVersion,
		AccountID:     accountID,
		ExportedAt:    time.Now().UTC(),
		Charts:        charts,
	}

	profile, err := s.profiles.Get(ctx, accountID)
	switch {
	case err == nil:
		snap.ClinicProfile = profile
	case errors.Is(err, clinic.ErrNotFound):
		// no profile saved yet, export charts alone
	default:
		return nil, fmt.Errorf("export profile: %w", err)
	}

	return snap, nil
}

// Import applies a snapshot to the account. By default the import is
// additive: each chart upserts by file number and existing charts the
// snapshot does not mention are untouched. With purge set, every chart
// already stored is deleted first.
//
// Charts in the snapshot are re-keyed to the importing account, so a
// snapshot exported elsewhere can be restored under a different login.
func (s *Service) Import(ctx context.Context, accountID uuid.UUID, snap *Snapshot, purge bool) (*ImportReport, error) {
	if snap.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, snap.SchemaVersion)
	}

	report := &ImportReport{}

	if purge {
		existing, err := s.charts.List(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("purge: %w", err)
		}
		for _, ch := range existing {
			if err := s.charts.Delete(ctx, accountID, ch.FileNo); err != nil {
				return nil, fmt.Errorf("purge %s: %w", ch.FileNo, err)
			}
			report.Purged++
		}
	}

	for _, ch := range snap.Charts {
		in := *ch
		in.ID = uuid.Nil
		in.Version = 0
		if err := s.charts.Save(ctx, accountID, &in, 0); err != nil {
			report.Skipped = append(report.Skipped, SkippedChart{
				FileNo: ch.FileNo,
				Reason: err.Error(),
			})
			continue
		}
		report.Imported++
	}

	if snap.ClinicProfile != nil {
		p := *snap.ClinicProfile
		p.ID = uuid.Nil
		if err := s.profiles.Save(ctx, accountID, &p); err != nil {
			return nil, fmt.Errorf("import profile: %w", err)
		}
	}

	return report, nil
}
