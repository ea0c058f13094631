package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wpnicholson/disease-outbreak/internal/domain/audit"
	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*Patient, error) {
	var out []*Patient
	for _, id := range ids {
		if p, ok := m.patients[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var out []*Patient
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByReport(_ context.Context, _ uuid.UUID) ([]*Patient, error) {
	return nil, nil
}

type mockAuditRepo struct {
	logs []*audit.Log
}

func (m *mockAuditRepo) Create(_ context.Context, l *audit.Log) error {
	m.logs = append(m.logs, l)
	return nil
}

func (m *mockAuditRepo) List(_ context.Context, _ audit.Filter, _, _ int) ([]*audit.Log, int, error) {
	return m.logs, len(m.logs), nil
}

func newTestService() (*Service, *mockRepo, *mockAuditRepo) {
	repo := newMockRepo()
	ar := &mockAuditRepo{}
	rec := audit.NewRecorder(ar, zerolog.Nop())
	return NewService(repo, rec), repo, ar
}

func validPatient() *Patient {
	return &Patient{
		FirstName:           "Jane",
		LastName:            "Doe",
		DateOfBirth:         time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
		Gender:              "Female",
		MedicalRecordNumber: "MRN-0042",
	}
}

func TestCreatePatient(t *testing.T) {
	svc, repo, ar := newTestService()

	p := validPatient()
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected patient ID to be set")
	}
	if _, ok := repo.patients[p.ID]; !ok {
		t.Error("patient not persisted")
	}
	if len(ar.logs) != 1 || ar.logs[0].Action != audit.ActionCreate {
		t.Errorf("expected one CREATE audit log, got %+v", ar.logs)
	}
}

func TestCreatePatientValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*Patient)
	}{
		{"missing first name", func(p *Patient) { p.FirstName = "" }},
		{"missing last name", func(p *Patient) { p.LastName = "" }},
		{"invalid gender", func(p *Patient) { p.Gender = "unknown" }},
		{"missing mrn", func(p *Patient) { p.MedicalRecordNumber = "" }},
		{"missing dob", func(p *Patient) { p.DateOfBirth = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPatient()
			tc.mutate(p)
			err := svc.CreatePatient(context.Background(), p)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !domainerr.IsKind(err, domainerr.KindValidation) {
				t.Errorf("expected KindValidation, got %v", err)
			}
		})
	}
}

func TestCreatePatientFutureDOB(t *testing.T) {
	svc, _, _ := newTestService()

	p := validPatient()
	p.DateOfBirth = time.Now().AddDate(1, 0, 0)
	err := svc.CreatePatient(context.Background(), p)
	if err == nil {
		t.Fatal("expected error for future date of birth")
	}
	if !domainerr.IsKind(err, domainerr.KindInvalidDate) {
		t.Errorf("expected KindInvalidDate, got %v", err)
	}
}

func TestDeletePatient(t *testing.T) {
	svc, repo, ar := newTestService()

	p := validPatient()
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if err := svc.DeletePatient(context.Background(), p.ID); err != nil {
		t.Fatalf("DeletePatient: %v", err)
	}
	if _, ok := repo.patients[p.ID]; ok {
		t.Error("patient still present after delete")
	}
	if len(ar.logs) != 2 || ar.logs[1].Action != audit.ActionDelete {
		t.Errorf("expected DELETE audit log, got %+v", ar.logs)
	}
}

func TestDeletePatientNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.DeletePatient(context.Background(), uuid.New())
	if !domainerr.IsKind(err, domainerr.KindNotFound) {
		t.Errorf("expected KindNotFound, got %v", err)
	}
}
