package audit

import (
	"context"
	"time"
)

// Filter narrows audit log queries by time range.
type Filter struct {
	Start *time.Time
	End   *time.Time
}

type Repository interface {
	Create(ctx context.Context, l *Log) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Log, int, error)
}
