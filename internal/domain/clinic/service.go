package clinic

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("clinic profile not found")

type Service struct {
	repo ProfileRepository
}

func NewService(repo ProfileRepository) *Service {
	return &Service{repo: repo}
}

// Save upserts the account's profile. The account id always comes from
// the session, never from the payload.
func (s *Service) Save(ctx context.Context, accountID uuid.UUID, p *Profile) error {
	p.AccountID = accountID
	return s.repo.Upsert(ctx, p)
}

func (s *Service) Get(ctx context.Context, accountID uuid.UUID) (*Profile, error) {
	return s.repo.GetByAccount(ctx, accountID)
}
