package clinic

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository stores one profile per account. Account deletion
// removes the profile through the schema's cascade, so no delete is
// exposed here.
type ProfileRepository interface {
	Upsert(ctx context.Context, p *Profile) error
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*Profile, error)
}
