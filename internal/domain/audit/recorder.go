package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Recorder persists audit entries for domain mutations. Recording is best
// effort: failures are logged, never returned, so audit trouble cannot fail
// the mutation it describes. Callers record after their transaction commits.
type Recorder struct {
	repo Repository
	log  zerolog.Logger
}

func NewRecorder(repo Repository, log zerolog.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

func (r *Recorder) Record(ctx context.Context, userID *uuid.UUID, action Action, entityType string, entityID *uuid.UUID, changes interface{}) {
	var raw json.RawMessage
	if changes != nil {
		b, err := json.Marshal(changes)
		if err != nil {
			r.log.Error().Err(err).Str("entity_type", entityType).Msg("failed to marshal audit changes")
		} else {
			raw = b
		}
	}

	entry := &Log{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    raw,
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		r.log.Error().Err(err).
			Str("action", string(action)).
			Str("entity_type", entityType).
			Msg("failed to record audit log")
	}
}
