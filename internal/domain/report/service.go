package report

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wpnicholson/disease-outbreak/internal/domain/audit"
	"github.com/wpnicholson/disease-outbreak/internal/domain/disease"
	"github.com/wpnicholson/disease-outbreak/internal/domain/patient"
	"github.com/wpnicholson/disease-outbreak/internal/domain/reporter"
	"github.com/wpnicholson/disease-outbreak/internal/domain/rules"
	"github.com/wpnicholson/disease-outbreak/internal/platform/auth"
	"github.com/wpnicholson/disease-outbreak/internal/platform/db"
	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

// Service coordinates the report lifecycle across the report, reporter,
// patient and disease stores. Multi-table mutations run in one transaction;
// audit entries are recorded after the transaction commits.
type Service struct {
	pool      *pgxpool.Pool
	reports   Repository
	reporters reporter.Repository
	patients  patient.Repository
	diseases  disease.Repository
	audit     *audit.Recorder
}

func NewService(
	pool *pgxpool.Pool,
	reports Repository,
	reporters reporter.Repository,
	patients patient.Repository,
	diseases disease.Repository,
	rec *audit.Recorder,
) *Service {
	return &Service{
		pool:      pool,
		reports:   reports,
		reporters: reporters,
		patients:  patients,
		diseases:  diseases,
		audit:     rec,
	}
}

// inTx runs fn in a transaction when a pool is present. Unit tests wire the
// service with in-memory repositories and no pool.
func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.pool == nil {
		return fn(ctx)
	}
	return db.InTx(ctx, s.pool, fn)
}

func actorID(ctx context.Context) *uuid.UUID {
	id, err := uuid.Parse(auth.UserIDFromContext(ctx))
	if err != nil {
		return nil
	}
	return &id
}

func (s *Service) CreateReport(ctx context.Context) (*Report, error) {
	rep := &Report{
		Status:    StatusDraft,
		CreatedBy: actorID(ctx),
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID(ctx), audit.ActionCreate, "Report", &rep.ID, nil)
	return rep, nil
}

func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*Aggregate, error) {
	rep, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, rep)
}

func (s *Service) ListReports(ctx context.Context, limit, offset int) ([]*Aggregate, int, error) {
	reps, total, err := s.reports.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	aggs, err := s.assembleAll(ctx, reps)
	if err != nil {
		return nil, 0, err
	}
	return aggs, total, nil
}

func (s *Service) Search(ctx context.Context, f SearchFilter, limit, offset int) ([]*Aggregate, int, error) {
	if f.Status != nil && !validStatuses[*f.Status] {
		return nil, 0, domainerr.Newf(domainerr.KindValidation, "invalid status: %s", *f.Status)
	}
	reps, total, err := s.reports.Search(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	aggs, err := s.assembleAll(ctx, reps)
	if err != nil {
		return nil, 0, err
	}
	return aggs, total, nil
}

// UpdateReportStatus moves a draft report to a new lifecycle state. Reports
// that have left draft are frozen.
func (s *Service) UpdateReportStatus(ctx context.Context, id uuid.UUID, status Status) (*Report, error) {
	if !validStatuses[status] {
		return nil, domainerr.Newf(domainerr.KindValidation, "invalid status: %s", status)
	}

	var rep *Report
	err := s.inTx(ctx, func(ctx context.Context) error {
		var err error
		rep, err = s.reports.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !rep.CanMutate() {
			return domainerr.New(domainerr.KindInvalidState, "only draft reports can be edited")
		}
		rep.Status = status
		return s.reports.Update(ctx, rep)
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID(ctx), audit.ActionUpdate, "Report", &rep.ID,
		map[string]interface{}{"status": rep.Status})
	return rep, nil
}

func (s *Service) DeleteReport(ctx context.Context, id uuid.UUID) error {
	err := s.inTx(ctx, func(ctx context.Context) error {
		rep, err := s.reports.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !rep.CanMutate() {
			return domainerr.New(domainerr.KindInvalidState, "only draft reports can be deleted")
		}
		return s.reports.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.audit.Record(ctx, actorID(ctx), audit.ActionDelete, "Report", &id, nil)
	return nil
}

// SubmitReport moves a complete draft to Submitted. A report is complete when
// it has a reporter, at least one patient and a disease.
func (s *Service) SubmitReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	var rep *Report
	err := s.inTx(ctx, func(ctx context.Context) error {
		var err error
		rep, err = s.reports.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if rep.Status != StatusDraft {
			return domainerr.New(domainerr.KindInvalidState, "only draft reports can be submitted")
		}
		missing, err := s.missingForSubmit(ctx, rep)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return domainerr.Newf(domainerr.KindIncompleteAggregate,
				"report cannot be submitted, missing: %s", strings.Join(missing, ", "))
		}
		rep.Status = StatusSubmitted
		return s.reports.Update(ctx, rep)
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID(ctx), audit.ActionUpdate, "Report", &rep.ID,
		map[string]interface{}{"status": StatusSubmitted})
	return rep, nil
}

func (s *Service) missingForSubmit(ctx context.Context, rep *Report) ([]string, error) {
	var missing []string
	if rep.ReporterID == nil {
		missing = append(missing, "reporter")
	}
	pats, err := s.patients.ListByReport(ctx, rep.ID)
	if err != nil {
		return nil, err
	}
	if len(pats) == 0 {
		missing = append(missing, "patients")
	}
	if _, err := s.diseases.GetByReport(ctx, rep.ID); err != nil {
		if !errors.Is(err, disease.ErrNotFound) {
			return nil, err
		}
		missing = append(missing, "disease")
	}
	return missing, nil
}

// AttachReporter sets the report's reporter. Reporters are keyed by email: a
// known email updates that reporter's details in place, a new email creates a
// reporter row.
func (s *Service) AttachReporter(ctx context.Context, reportID uuid.UUID, in *reporter.Reporter) (*reporter.Reporter, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var (
		rec     *reporter.Reporter
		created bool
	)
	err := s.inTx(ctx, func(ctx context.Context) error {
		rep, err := s.reports.GetByID(ctx, reportID)
		if err != nil {
			return err
		}
		if !rep.CanMutate() {
			return domainerr.New(domainerr.KindInvalidState, "only draft reports can be edited")
		}

		existing, err := s.reporters.GetByEmail(ctx, in.Email)
		switch {
		case err == nil:
			in.ID = existing.ID
			in.RegistrationDate = existing.RegistrationDate
			if err := s.reporters.Update(ctx, in); err != nil {
				return err
			}
		case errors.Is(err, reporter.ErrNotFound):
			created = true
			if err := s.reporters.Create(ctx, in); err != nil {
				return err
			}
		default:
			return err
		}
		rec = in

		rep.ReporterID = &rec.ID
		return s.reports.Update(ctx, rep)
	})
	if err != nil {
		return nil, err
	}

	action := audit.ActionUpdate
	if created {
		action = audit.ActionCreate
	}
	s.audit.Record(ctx, actorID(ctx), action, "Reporter", &rec.ID,
		map[string]interface{}{"report_id": reportID})
	return rec, nil
}

func (s *Service) GetReporterForReport(ctx context.Context, reportID uuid.UUID) (*reporter.Reporter, error) {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rep.ReporterID == nil {
		return nil, domainerr.New(domainerr.KindNotFound, "no reporter assigned to this report")
	}
	return s.reporters.GetByID(ctx, *rep.ReporterID)
}

// ReplacePatients swaps the report's full patient set. Passing an empty list
// clears it.
func (s *Service) ReplacePatients(ctx context.Context, reportID uuid.UUID, patientIDs []uuid.UUID) ([]*patient.Patient, error) {
	ids := dedupe(patientIDs)

	var pats []*patient.Patient
	err := s.inTx(ctx, func(ctx context.Context) error {
		rep, err := s.reports.GetByID(ctx, reportID)
		if err != nil {
			return err
		}
		if !rep.CanMutate() {
			return domainerr.New(domainerr.KindInvalidState, "only draft reports can be edited")
		}
		if len(ids) > 0 {
			if err := rules.RequireAssociation(rep.ReporterID != nil,
				"a reporter must be assigned before patients can be added"); err != nil {
				return err
			}
			found, err := s.patients.GetByIDs(ctx, ids)
			if err != nil {
				return err
			}
			if len(found) != len(ids) {
				return domainerr.New(domainerr.KindNotFound, "one or more patients not found")
			}
			pats = found
		}
		return s.reports.ReplacePatients(ctx, reportID, ids)
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actorID(ctx), audit.ActionUpdate, "Report", &reportID,
		map[string]interface{}{"patient_ids": ids})
	return pats, nil
}

func (s *Service) GetPatientsForReport(ctx context.Context, reportID uuid.UUID) ([]*patient.Patient, error) {
	if _, err := s.reports.GetByID(ctx, reportID); err != nil {
		return nil, err
	}
	return s.patients.ListByReport(ctx, reportID)
}

// AttachDisease records the disease for a report, replacing any previous
// record. The detection date may not precede any linked patient's birth date.
func (s *Service) AttachDisease(ctx context.Context, reportID uuid.UUID, d *disease.Disease) (*disease.Disease, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := rules.NoFutureDate("date_detected", d.DateDetected); err != nil {
		return nil, err
	}

	var replaced bool
	err := s.inTx(ctx, func(ctx context.Context) error {
		rep, err := s.reports.GetByID(ctx, reportID)
		if err != nil {
			return err
		}
		if !rep.CanMutate() {
			return domainerr.New(domainerr.KindInvalidState, "only draft reports can be edited")
		}

		pats, err := s.patients.ListByReport(ctx, reportID)
		if err != nil {
			return err
		}
		if err := rules.RequireAssociation(len(pats) > 0,
			"at least one patient must be linked before a disease can be recorded"); err != nil {
			return err
		}
		for _, p := range pats {
			if err := rules.NotBefore("date_detected", d.DateDetected,
				"patient date_of_birth", p.DateOfBirth); err != nil {
				return err
			}
		}

		switch _, err := s.diseases.GetByReport(ctx, reportID); {
		case err == nil:
			replaced = true
			if err := s.diseases.DeleteByReport(ctx, reportID); err != nil {
				return err
			}
		case !errors.Is(err, disease.ErrNotFound):
			return err
		}

		d.ReportID = reportID
		return s.diseases.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	action := audit.ActionCreate
	if replaced {
		action = audit.ActionUpdate
	}
	s.audit.Record(ctx, actorID(ctx), action, "Disease", &d.ID,
		map[string]interface{}{"report_id": reportID, "disease_name": d.DiseaseName})
	return d, nil
}

func (s *Service) GetDiseaseForReport(ctx context.Context, reportID uuid.UUID) (*disease.Disease, error) {
	if _, err := s.reports.GetByID(ctx, reportID); err != nil {
		return nil, err
	}
	return s.diseases.GetByReport(ctx, reportID)
}

func (s *Service) DetachDisease(ctx context.Context, reportID uuid.UUID) error {
	err := s.inTx(ctx, func(ctx context.Context) error {
		rep, err := s.reports.GetByID(ctx, reportID)
		if err != nil {
			return err
		}
		if !rep.CanMutate() {
			return domainerr.New(domainerr.KindInvalidState, "only draft reports can be edited")
		}
		if _, err := s.diseases.GetByReport(ctx, reportID); err != nil {
			return err
		}
		return s.diseases.DeleteByReport(ctx, reportID)
	})
	if err != nil {
		return err
	}
	s.audit.Record(ctx, actorID(ctx), audit.ActionDelete, "Disease", nil,
		map[string]interface{}{"report_id": reportID})
	return nil
}

func (s *Service) assemble(ctx context.Context, rep *Report) (*Aggregate, error) {
	agg := &Aggregate{Report: rep, Patients: []*patient.Patient{}}

	if rep.ReporterID != nil {
		rec, err := s.reporters.GetByID(ctx, *rep.ReporterID)
		if err != nil && !errors.Is(err, reporter.ErrNotFound) {
			return nil, err
		}
		agg.Reporter = rec
	}

	pats, err := s.patients.ListByReport(ctx, rep.ID)
	if err != nil {
		return nil, err
	}
	if pats != nil {
		agg.Patients = pats
	}

	d, err := s.diseases.GetByReport(ctx, rep.ID)
	if err != nil && !errors.Is(err, disease.ErrNotFound) {
		return nil, err
	}
	agg.Disease = d

	return agg, nil
}

func (s *Service) assembleAll(ctx context.Context, reps []*Report) ([]*Aggregate, error) {
	aggs := make([]*Aggregate, 0, len(reps))
	for _, rep := range reps {
		agg, err := s.assemble(ctx, rep)
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
