package chart

import (
	"context"

	"github.com/google/uuid"
)

type ChartRepository interface {
	// Upsert inserts the chart or replaces the payload of the existing
	// row with the same (accountID, fileNo), preserving id and
	// created_at and bumping version. When expectedVersion is non-zero
	// and the stored row has moved past it, the write fails with
	// ErrConflict.
	Upsert(ctx context.Context, ch *Chart, expectedVersion int) error
	GetByFileNo(ctx context.Context, accountID uuid.UUID, fileNo string) (*Chart, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Chart, error)
	Delete(ctx context.Context, accountID uuid.UUID, fileNo string) error
}
