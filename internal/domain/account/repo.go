package account

import (
	"context"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Account, error)
	ListPending(ctx context.Context) ([]*Account, error)
}
