package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/netooze/jobapi/internal/worker/domain"
	"github.com/netooze/jobapi/internal/workitem"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// ClaimJob attempts to move a job from queued to processing. The status
// predicate makes the claim idempotent under duplicate deliveries.
func (s *Storage) ClaimJob(ctx context.Context, user string, id int64) (*domain.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1
		WHERE user_name = $2
		  AND id = $3
		  AND status = $4
		RETURNING client, descr, priority
	`

	job := domain.Job{User: user, ID: id}
	err := s.db.QueryRowContext(ctx, query, domain.StatusProcessing, user, id, domain.StatusQueued).Scan(
		&job.Client,
		&job.Desc,
		&job.Priority,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("Failed to claim job - already claimed or not found",
				slog.String("user", user),
				slog.Int64("id", id),
			)
			return nil, domain.ErrJobAlreadyClaimed
		}
		return nil, fmt.Errorf("failed to claim job: %w", err)
	}

	s.logger.Info("Job claimed",
		slog.String("user", user),
		slog.Int64("id", id),
	)

	return &job, nil
}

// FinishJob moves a processing job to finished.
func (s *Storage) FinishJob(ctx context.Context, user string, id int64) error {
	query := `
		UPDATE jobs
		SET status = $1
		WHERE user_name = $2
		  AND id = $3
		  AND status = $4
	`

	result, err := s.db.ExecContext(ctx, query, domain.StatusFinished, user, id, domain.StatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to finish job: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected == 0 {
		s.logger.Warn("Finish update affected no rows (job may have been deleted)",
			slog.String("user", user),
			slog.Int64("id", id),
		)
	}

	return nil
}

// ListStuckQueued returns work items for jobs that have sat in queued state
// longer than maxAge. These are candidates for re-publishing: either the
// original publish failed after the store write, or the queue lost them.
func (s *Storage) ListStuckQueued(ctx context.Context, maxAge time.Duration, limit int) ([]workitem.Item, error) {
	query := `
		SELECT user_name, id
		FROM jobs
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at
		LIMIT $3
	`

	cutoff := time.Now().UTC().Add(-maxAge)

	rows, err := s.db.QueryContext(ctx, query, domain.StatusQueued, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stuck queued jobs: %w", err)
	}
	defer rows.Close()

	var items []workitem.Item
	for rows.Next() {
		var item workitem.Item
		if err := rows.Scan(&item.User, &item.JobID); err != nil {
			return nil, fmt.Errorf("failed to scan stuck job row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stuck job rows: %w", err)
	}

	return items, nil
}
