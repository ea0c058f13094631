package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

// ErrNotFound is returned when no patient matches the lookup.
var ErrNotFound = domainerr.New(domainerr.KindNotFound, "patient not found")

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListByReport(ctx context.Context, reportID uuid.UUID) ([]*Patient, error)
}
