package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-tracker/internal/domain"
)

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository returns a Postgres-backed implementation.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, owner_id, company, role, status, job_url, resume_version, notes, applied_at, updated_at`

func (r *applicationRepository) ListAll(ctx context.Context, ownerID string) ([]domain.Application, error) {
	if !ValidID(ownerID) {
		return []domain.Application{}, nil
	}
	query := `SELECT ` + applicationColumns + `
        FROM job_applications WHERE owner_id=$1
        ORDER BY applied_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *app)
	}
	return result, rows.Err()
}

func (r *applicationRepository) GetOne(ctx context.Context, ownerID, id string) (*domain.Application, error) {
	if !ValidID(ownerID) || !ValidID(id) {
		return nil, ErrNotFound
	}
	query := `SELECT ` + applicationColumns + `
        FROM job_applications WHERE id=$1 AND owner_id=$2`
	app, err := scanApplication(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *applicationRepository) Insert(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO job_applications (id, owner_id, company, role, status, job_url, resume_version, notes, applied_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	id := NewID()
	if _, err := r.pool.Exec(ctx, query,
		id,
		app.OwnerID,
		app.Company,
		app.Role,
		string(app.Status),
		app.JobURL,
		app.ResumeVersion,
		app.Notes,
		app.AppliedAt,
		app.UpdatedAt,
	); err != nil {
		return err
	}
	app.ID = id
	// timestamptz keeps microseconds.
	app.AppliedAt = app.AppliedAt.Truncate(time.Microsecond)
	app.UpdatedAt = app.UpdatedAt.Truncate(time.Microsecond)
	return nil
}

func (r *applicationRepository) Replace(ctx context.Context, app *domain.Application) error {
	if !ValidID(app.ID) || !ValidID(app.OwnerID) {
		return ErrNotFound
	}
	const query = `
        UPDATE job_applications SET company=$1, role=$2, status=$3, job_url=$4, resume_version=$5, notes=$6, updated_at=$7
        WHERE id=$8 AND owner_id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		app.Company,
		app.Role,
		string(app.Status),
		app.JobURL,
		app.ResumeVersion,
		app.Notes,
		app.UpdatedAt,
		app.ID,
		app.OwnerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	app.UpdatedAt = app.UpdatedAt.Truncate(time.Microsecond)
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, ownerID, id string) error {
	if !ValidID(ownerID) || !ValidID(id) {
		return ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM job_applications WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		app    domain.Application
		status string
	)
	if err := row.Scan(
		&app.ID,
		&app.OwnerID,
		&app.Company,
		&app.Role,
		&status,
		&app.JobURL,
		&app.ResumeVersion,
		&app.Notes,
		&app.AppliedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	app.Status = domain.Status(status)
	return &app, nil
}
