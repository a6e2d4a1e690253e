package posting

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job posting not found")

type Repository interface {
	Create(ctx context.Context, p Posting) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (Posting, error)
	List(ctx context.Context) ([]Posting, error)
	ListOpen(ctx context.Context, now time.Time) ([]Posting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
