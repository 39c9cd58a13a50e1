package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/netooze/jobapi/internal/api/domain"
	"github.com/netooze/jobapi/internal/api/model"
	"github.com/netooze/jobapi/shared/postgresql"
)

// pqUniqueViolation is the postgres error code for unique constraint failures
const pqUniqueViolation = "23505"

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// EnsureSchema creates the tables if they do not exist yet. Called once at
// API startup, before the first request is served.
func (s *Storage) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS jobs (
			user_name  TEXT        NOT NULL,
			id         BIGINT      NOT NULL,
			client     TEXT        NOT NULL,
			host       TEXT        NOT NULL,
			descr      TEXT        NOT NULL,
			query      JSONB       NOT NULL,
			status     TEXT        NOT NULL,
			options    JSONB       NOT NULL DEFAULT '{}',
			notes      TEXT        NOT NULL DEFAULT '',
			priority   INT         NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_name, id)
		);

		CREATE INDEX IF NOT EXISTS jobs_user_status_idx ON jobs (user_name, status);

		CREATE TABLE IF NOT EXISTS files (
			hash         TEXT        PRIMARY KEY,
			name         TEXT        NOT NULL,
			content_type TEXT        NOT NULL,
			size         BIGINT      NOT NULL,
			path         TEXT        NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

// NextID returns max(id)+1 for the user's collection. Two concurrent
// creations can compute the same value; CreateJob surfaces that as
// domain.ErrDuplicateJob via the unique constraint so the caller can retry.
func (s *Storage) NextID(ctx context.Context, user string) (int64, error) {
	var next int64
	query := `SELECT COALESCE(MAX(id), 0) + 1 FROM jobs WHERE user_name = $1`

	if err := s.db.GetContext(ctx, &next, query, user); err != nil {
		return 0, fmt.Errorf("failed to compute next job id: %w", err)
	}

	return next, nil
}

func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			user_name, id, client, host, descr,
			query, status, options, notes, priority, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.User,
		job.ID,
		job.Client,
		job.Host,
		job.Desc,
		[]byte(job.Query),
		job.Status,
		[]byte(job.Options),
		job.Notes,
		job.Priority,
		job.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.ErrDuplicateJob
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (s *Storage) ListJobs(ctx context.Context, user string) ([]model.Job, error) {
	query := `
		SELECT user_name, id, client, host, descr,
		       query, status, options, notes, priority, created_at
		FROM jobs
		WHERE user_name = $1
		ORDER BY id DESC
	`

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, user); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

func (s *Storage) ListJobsByStatus(ctx context.Context, user, status string) ([]model.Job, error) {
	query := `
		SELECT user_name, id, client, host, descr,
		       query, status, options, notes, priority, created_at
		FROM jobs
		WHERE user_name = $1 AND status = $2
		ORDER BY id DESC
	`

	var jobs []model.Job
	if err := s.db.SelectContext(ctx, &jobs, query, user, status); err != nil {
		return nil, fmt.Errorf("failed to list jobs by status: %w", err)
	}

	return jobs, nil
}

func (s *Storage) GetJob(ctx context.Context, user string, id int64) (*model.Job, error) {
	query := `
		SELECT user_name, id, client, host, descr,
		       query, status, options, notes, priority, created_at
		FROM jobs
		WHERE user_name = $1 AND id = $2
	`

	var job model.Job
	err := s.db.GetContext(ctx, &job, query, user, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

func (s *Storage) DeleteJob(ctx context.Context, user string, id int64) error {
	query := `DELETE FROM jobs WHERE user_name = $1 AND id = $2`

	result, err := s.db.ExecContext(ctx, query, user, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}
