package disease

import (
	"context"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

var ErrNotFound = domainerr.New(domainerr.KindNotFound, "no disease recorded for this report")

type Repository interface {
	Create(ctx context.Context, d *Disease) error
	GetByReport(ctx context.Context, reportID uuid.UUID) (*Disease, error)
	DeleteByReport(ctx context.Context, reportID uuid.UUID) error
}
