package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/wpnicholson/disease-outbreak/internal/domain/audit"
	"github.com/wpnicholson/disease-outbreak/internal/domain/rules"
	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

type Service struct {
	repo  Repository
	audit *audit.Recorder
}

func NewService(repo Repository, rec *audit.Recorder) *Service {
	return &Service{repo: repo, audit: rec}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.FirstName == "" {
		return domainerr.New(domainerr.KindValidation, "first_name is required")
	}
	if p.LastName == "" {
		return domainerr.New(domainerr.KindValidation, "last_name is required")
	}
	if !validGenders[p.Gender] {
		return domainerr.Newf(domainerr.KindValidation, "invalid gender: %s", p.Gender)
	}
	if p.MedicalRecordNumber == "" {
		return domainerr.New(domainerr.KindValidation, "medical_record_number is required")
	}
	if p.DateOfBirth.IsZero() {
		return domainerr.New(domainerr.KindValidation, "date_of_birth is required")
	}
	if err := rules.NoFutureDate("date_of_birth", p.DateOfBirth); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID(ctx), audit.ActionCreate, "Patient", &p.ID,
		map[string]interface{}{"medical_record_number": p.MedicalRecordNumber})
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// DeletePatient removes the patient. Link rows to reports go with it; the
// reports themselves are untouched.
func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, actorID(ctx), audit.ActionDelete, "Patient", &p.ID, nil)
	return nil
}

func actorID(ctx context.Context) *uuid.UUID {
	id, err := uuid.Parse(auth.UserIDFromContext(ctx))
	if err != nil {
		return nil
	}
	return &id
}
