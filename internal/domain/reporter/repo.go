package reporter

import (
	"context"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

// ErrNotFound is returned when no reporter matches the lookup.
var ErrNotFound = domainerr.New(domainerr.KindNotFound, "reporter not found")

type Repository interface {
	Create(ctx context.Context, r *Reporter) error
	Update(ctx context.Context, r *Reporter) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reporter, error)
	GetByEmail(ctx context.Context, email string) (*Reporter, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Reporter, int, error)
}
