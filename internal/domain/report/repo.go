package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

var ErrNotFound = domainerr.New(domainerr.KindNotFound, "report not found")

type Repository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	Update(ctx context.Context, r *Report) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Report, int, error)
	Search(ctx context.Context, f SearchFilter, limit, offset int) ([]*Report, int, error)
	ReplacePatients(ctx context.Context, reportID uuid.UUID, patientIDs []uuid.UUID) error
}
