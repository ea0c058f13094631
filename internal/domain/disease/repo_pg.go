package disease

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wpnicholson/disease-outbreak/internal/platform/db"
	"github.com/wpnicholson/disease-outbreak/pkg/domainerr"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const diseaseCols = `id, report_id, disease_name, disease_category, date_detected,
	symptoms, severity_level, treatment_status, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, d *Disease) error {
	d.ID = uuid.New()
	if d.Symptoms == nil {
		d.Symptoms = []string{}
	}
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO diseases (
			id, report_id, disease_name, disease_category, date_detected,
			symptoms, severity_level, treatment_status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		d.ID, d.ReportID, d.DiseaseName, d.DiseaseCategory, d.DateDetected,
		d.Symptoms, d.SeverityLevel, d.TreatmentStatus,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainerr.New(domainerr.KindConflict, "report already has a disease recorded")
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByReport(ctx context.Context, reportID uuid.UUID) (*Disease, error) {
	var d Disease
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+diseaseCols+` FROM diseases WHERE report_id = $1`, reportID,
	).Scan(
		&d.ID, &d.ReportID, &d.DiseaseName, &d.DiseaseCategory, &d.DateDetected,
		&d.Symptoms, &d.SeverityLevel, &d.TreatmentStatus, &d.CreatedAt, &d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) DeleteByReport(ctx context.Context, reportID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM diseases WHERE report_id = $1`, reportID)
	return err
}
