package chart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("chart not found")
	ErrConflict           = errors.New("chart was modified by another save")
	ErrChartTypeImmutable = errors.New("chart type cannot change after creation")
)

// ValidationError lists the required fields missing from a save attempt.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

type Service struct {
	repo ChartRepository
}

func NewService(repo ChartRepository) *Service {
	return &Service{repo: repo}
}

// Save validates and upserts a chart under (accountID, fileNo). The
// multi-select sets are normalized to their exclusivity rules and the CPT
// list is re-derived from the visit type and selected adjunct treatment
// before the write. expectedVersion carries the version the caller loaded
// (zero for a blind save); a stale version fails with ErrConflict and the
// store is left untouched.
func (s *Service) Save(ctx context.Context, accountID uuid.UUID, ch *Chart, expectedVersion int) error {
	if err := validate(ch); err != nil {
		return err
	}
	if ch.ChartType != TypeNew && ch.ChartType != TypeFollowUp {
		return fmt.Errorf("unknown chart type %q", ch.ChartType)
	}

	ch.AccountID = accountID
	NormalizeData(&ch.Data)
	ch.Data.Diagnosis.CPT = DeriveCPT(ch.ChartType, ch.Data.Diagnosis.SelectedTreatment, ch.Data.Diagnosis.CPT)

	return s.repo.Upsert(ctx, ch, expectedVersion)
}

func (s *Service) Get(ctx context.Context, accountID uuid.UUID, fileNo string) (*Chart, error) {
	if fileNo == "" {
		return nil, ErrNotFound
	}
	return s.repo.GetByFileNo(ctx, accountID, fileNo)
}

// List returns the account's charts, most recently updated first.
func (s *Service) List(ctx context.Context, accountID uuid.UUID) ([]*Chart, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

func (s *Service) Delete(ctx context.Context, accountID uuid.UUID, fileNo string) error {
	return s.repo.Delete(ctx, accountID, fileNo)
}

func validate(ch *Chart) error {
	var missing []string
	if strings.TrimSpace(ch.FileNo) == "" {
		missing = append(missing, "file_no")
	}
	if ch.Data.Sex == "" {
		missing = append(missing, "sex")
	}
	if strings.TrimSpace(ch.Data.Age) == "" {
		missing = append(missing, "age")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
