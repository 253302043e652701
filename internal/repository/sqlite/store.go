// Package sqlite provides an embedded SQLite store for accounts and
// applications, used for single-user deployments and tests.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/spec-kit/job-tracker/internal/domain"
	"github.com/spec-kit/job-tracker/internal/repository"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store persists accounts and applications in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var (
	_ repository.ApplicationRepository = (*Store)(nil)
	_ repository.UserRepository        = (*Store)(nil)
)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations. ":memory:" opens
// a private in-memory database.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database handle.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

func applyMigrations(sqlDB *sql.DB) error {
	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		var count int
		if err := sqlDB.QueryRow(`SELECT COUNT(1) FROM schema_migrations WHERE name = ?`, name).Scan(&count); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}
		content, err := fs.ReadFile(migrationFS, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := sqlDB.Exec(string(content)); err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
		if _, err := sqlDB.Exec(`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`, name, toMillis(time.Now())); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}

const applicationColumns = `id, owner_id, company, role, status, job_url, resume_version, notes, applied_at, updated_at`

// ListAll returns the owner's applications in insertion order.
func (s *Store) ListAll(ctx context.Context, ownerID string) ([]domain.Application, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE owner_id = ? ORDER BY seq ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
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

// GetOne returns one application of the owner.
func (s *Store) GetOne(ctx context.Context, ownerID, id string) (*domain.Application, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE id = ? AND owner_id = ?`, id, ownerID)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Insert stores a new application and assigns its ID.
func (s *Store) Insert(ctx context.Context, app *domain.Application) error {
	id := repository.NewID()
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO job_applications (`+applicationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		app.OwnerID,
		app.Company,
		app.Role,
		string(app.Status),
		app.JobURL,
		app.ResumeVersion,
		app.Notes,
		toMillis(app.AppliedAt),
		toMillis(app.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	app.ID = id
	app.AppliedAt = fromMillis(toMillis(app.AppliedAt))
	app.UpdatedAt = fromMillis(toMillis(app.UpdatedAt))
	return nil
}

// Replace overwrites the mutable fields of an existing application.
func (s *Store) Replace(ctx context.Context, app *domain.Application) error {
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE job_applications
		 SET company = ?, role = ?, status = ?, job_url = ?, resume_version = ?, notes = ?, updated_at = ?
		 WHERE id = ? AND owner_id = ?`,
		app.Company,
		app.Role,
		string(app.Status),
		app.JobURL,
		app.ResumeVersion,
		app.Notes,
		toMillis(app.UpdatedAt),
		app.ID,
		app.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	app.UpdatedAt = fromMillis(toMillis(app.UpdatedAt))
	return nil
}

// Delete removes one application of the owner.
func (s *Store) Delete(ctx context.Context, ownerID, id string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM job_applications WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return expectOneRow(res)
}

// Create stores a new account and assigns its ID.
func (s *Store) Create(ctx context.Context, user *domain.User) error {
	id := repository.NewID()
	now := time.Now().UTC().Truncate(time.Millisecond)
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, user.Name, user.Email, user.PasswordHash, toMillis(now), toMillis(now),
	)
	if isConstraintUnique(err) {
		return repository.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByID loads an account by id.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.fetchUser(ctx, `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = ?`, id)
}

// GetByEmail loads an account by email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.fetchUser(ctx, `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?`, email)
}

func (s *Store) fetchUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		user               domain.User
		createdAt, updated int64
	)
	err := s.sqlDB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updated)
	return &user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var (
		app                  domain.Application
		status               string
		appliedAt, updatedAt int64
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
		&appliedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	app.Status = domain.Status(status)
	app.AppliedAt = fromMillis(appliedAt)
	app.UpdatedAt = fromMillis(updatedAt)
	return &app, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func isConstraintUnique(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
}
