package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wpnicholson/disease-outbreak/internal/platform/db"
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

const repCols = `id, status, created_by, reporter_id, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rep *Report) error {
	rep.ID = uuid.New()
	if rep.Status == "" {
		rep.Status = StatusDraft
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO reports (id, status, created_by, reporter_id)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at`,
		rep.ID, rep.Status, rep.CreatedBy, rep.ReporterID,
	).Scan(&rep.CreatedAt, &rep.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	return scanReport(r.conn(ctx).QueryRow(ctx, `SELECT `+repCols+` FROM reports WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rep *Report) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE reports
		SET status = $2, reporter_id = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		rep.ID, rep.Status, rep.ReporterID,
	).Scan(&rep.UpdatedAt)
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Report, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM reports`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+repCols+` FROM reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reps, err := collectReports(rows)
	if err != nil {
		return nil, 0, err
	}
	return reps, total, nil
}

// Search filters across reports and their linked disease and reporter rows.
// Name filters are case-insensitive substring matches.
func (r *repoPG) Search(ctx context.Context, f SearchFilter, limit, offset int) ([]*Report, int, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != nil {
		where = append(where, `r.status = `+arg(*f.Status))
	}
	if f.DiseaseName != "" {
		where = append(where, `d.disease_name ILIKE `+arg("%"+f.DiseaseName+"%"))
	}
	if f.HospitalName != "" {
		where = append(where, `rp.hospital_name ILIKE `+arg("%"+f.HospitalName+"%"))
	}

	base := `
		FROM reports r
		LEFT JOIN diseases d ON d.report_id = r.id
		LEFT JOIN reporters rp ON rp.id = r.reporter_id`
	if len(where) > 0 {
		base += ` WHERE ` + strings.Join(where, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT r.id, r.status, r.created_by, r.reporter_id, r.created_at, r.updated_at` +
		base +
		fmt.Sprintf(` ORDER BY r.created_at DESC LIMIT %s OFFSET %s`, arg(limit), arg(offset))
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reps, err := collectReports(rows)
	if err != nil {
		return nil, 0, err
	}
	return reps, total, nil
}

// ReplacePatients swaps the full set of patient links for a report.
func (r *repoPG) ReplacePatients(ctx context.Context, reportID uuid.UUID, patientIDs []uuid.UUID) error {
	q := r.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM report_patients WHERE report_id = $1`, reportID); err != nil {
		return err
	}
	for _, pid := range patientIDs {
		if _, err := q.Exec(ctx,
			`INSERT INTO report_patients (report_id, patient_id) VALUES ($1, $2)`,
			reportID, pid); err != nil {
			return err
		}
	}
	return nil
}

func scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	err := row.Scan(&rep.ID, &rep.Status, &rep.CreatedBy, &rep.ReporterID, &rep.CreatedAt, &rep.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func collectReports(rows pgx.Rows) ([]*Report, error) {
	var reps []*Report
	for rows.Next() {
		var rep Report
		if err := rows.Scan(&rep.ID, &rep.Status, &rep.CreatedBy, &rep.ReporterID, &rep.CreatedAt, &rep.UpdatedAt); err != nil {
			return nil, err
		}
		reps = append(reps, &rep)
	}
	return reps, nil
}
