package reporter

import (
	"context"
	"errors"
	"time"

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

const reporterCols = `id, first_name, last_name, email, job_title, phone_number,
	hospital_name, hospital_address, registration_date`

func (r *repoPG) Create(ctx context.Context, rep *Reporter) error {
	rep.ID = uuid.New()
	rep.RegistrationDate = time.Now().UTC()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO reporters (
			id, first_name, last_name, email, job_title, phone_number,
			hospital_name, hospital_address, registration_date
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rep.ID, rep.FirstName, rep.LastName, rep.Email, rep.JobTitle, rep.PhoneNumber,
		rep.HospitalName, rep.HospitalAddress, rep.RegistrationDate,
	)
	return mapUniqueViolation(err)
}

func (r *repoPG) Update(ctx context.Context, rep *Reporter) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE reporters SET
			first_name=$2, last_name=$3, email=$4, job_title=$5, phone_number=$6,
			hospital_name=$7, hospital_address=$8
		WHERE id = $1`,
		rep.ID, rep.FirstName, rep.LastName, rep.Email, rep.JobTitle, rep.PhoneNumber,
		rep.HospitalName, rep.HospitalAddress,
	)
	return mapUniqueViolation(err)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Reporter, error) {
	return scanReporter(r.conn(ctx).QueryRow(ctx, `SELECT `+reporterCols+` FROM reporters WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Reporter, error) {
	return scanReporter(r.conn(ctx).QueryRow(ctx, `SELECT `+reporterCols+` FROM reporters WHERE email = $1`, email))
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM reporters WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Reporter, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM reporters`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+reporterCols+` FROM reporters ORDER BY registration_date DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reps []*Reporter
	for rows.Next() {
		var rep Reporter
		if err := rows.Scan(
			&rep.ID, &rep.FirstName, &rep.LastName, &rep.Email, &rep.JobTitle, &rep.PhoneNumber,
			&rep.HospitalName, &rep.HospitalAddress, &rep.RegistrationDate,
		); err != nil {
			return nil, 0, err
		}
		reps = append(reps, &rep)
	}
	return reps, total, nil
}

func scanReporter(row pgx.Row) (*Reporter, error) {
	var rep Reporter
	err := row.Scan(
		&rep.ID, &rep.FirstName, &rep.LastName, &rep.Email, &rep.JobTitle, &rep.PhoneNumber,
		&rep.HospitalName, &rep.HospitalAddress, &rep.RegistrationDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domainerr.New(domainerr.KindConflict, "a reporter with this email already exists")
	}
	return err
}
