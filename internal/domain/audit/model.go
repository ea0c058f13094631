package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action identifies what happened to an entity.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionExport Action = "EXPORT"
)

// Log maps to the audit_logs table. Rows are append-only; user_id is kept
// nullable so trails survive account deletion.
type Log struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	Timestamp  time.Time       `db:"timestamp" json:"timestamp"`
	UserID     *uuid.UUID      `db:"user_id" json:"user_id,omitempty"`
	Action     Action          `db:"action" json:"action"`
	EntityType string          `db:"entity_type" json:"entity_type"`
	EntityID   *uuid.UUID      `db:"entity_id" json:"entity_id,omitempty"`
	Changes    json.RawMessage `db:"changes" json:"changes,omitempty"`
}
