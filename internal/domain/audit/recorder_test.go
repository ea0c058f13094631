package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type mockRepo struct {
	logs    []*Log
	failing bool
}

func (m *mockRepo) Create(_ context.Context, l *Log) error {
	if m.failing {
		return fmt.Errorf("insert failed")
	}
	l.ID = uuid.New()
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]*Log, int, error) {
	return m.logs, len(m.logs), nil
}

func TestRecorderPersistsEntry(t *testing.T) {
	repo := &mockRepo{}
	rec := NewRecorder(repo, zerolog.Nop())
	userID := uuid.New()
	entityID := uuid.New()

	rec.Record(context.Background(), &userID, ActionCreate, "Report", &entityID, map[string]string{"status": "Draft"})

	if len(repo.logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(repo.logs))
	}
	l := repo.logs[0]
	if l.Action != ActionCreate || l.EntityType != "Report" {
		t.Errorf("unexpected entry: %+v", l)
	}
	var changes map[string]string
	if err := json.Unmarshal(l.Changes, &changes); err != nil {
		t.Fatalf("changes should be valid JSON: %v", err)
	}
	if changes["status"] != "Draft" {
		t.Errorf("expected status change recorded, got %v", changes)
	}
}

func TestRecorderAllowsNilUserAndEntity(t *testing.T) {
	repo := &mockRepo{}
	rec := NewRecorder(repo, zerolog.Nop())

	rec.Record(context.Background(), nil, ActionExport, "Report", nil, nil)

	if len(repo.logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(repo.logs))
	}
	if repo.logs[0].UserID != nil || repo.logs[0].EntityID != nil {
		t.Error("expected nil user and entity ids to be preserved")
	}
}

func TestRecorderSwallowsRepoFailure(t *testing.T) {
	repo := &mockRepo{failing: true}
	rec := NewRecorder(repo, zerolog.Nop())

	// Must not panic or propagate the error.
	rec.Record(context.Background(), nil, ActionDelete, "Report", nil, nil)
}
