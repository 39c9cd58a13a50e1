package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/netooze/jobapi/internal/worker/domain"
	"github.com/netooze/jobapi/shared/metrics"
)

// processJob drives one work item: claim the job, run it, mark it finished.
func (w *Worker) processJob(ctx context.Context, msg *domain.JobMessage) error {
	user, id := msg.Item.User, msg.Item.JobID

	w.logger.Info("Processing job",
		slog.String("user", user),
		slog.Int64("id", id),
		slog.String("worker_id", w.workerID),
	)

	job, err := w.storage.ClaimJob(ctx, user, id)
	if err != nil {
		if errors.Is(err, domain.ErrJobAlreadyClaimed) {
			return err
		}
		return fmt.Errorf("failed to claim job: %w", err)
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	if err := w.executeJob(jobCtx, job); err != nil {
		metrics.JobsProcessed.WithLabelValues("failed").Inc()
		w.logger.Error("Job execution failed",
			slog.String("user", user),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return fmt.Errorf("job execution failed: %w", err)
	}

	if err := w.storage.FinishJob(ctx, user, id); err != nil {
		metrics.JobsProcessed.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to finish job: %w", err)
	}

	metrics.JobsProcessed.WithLabelValues("finished").Inc()
	w.logger.Info("Job finished",
		slog.String("user", user),
		slog.Int64("id", id),
	)

	return nil
}

// executeJob runs the job body. The stored query is opaque to the service;
// the execution here stands in for the downstream engine that interprets it.
func (w *Worker) executeJob(ctx context.Context, job *domain.Job) error {
	select {
	case <-time.After(2 * time.Second):
		return nil
	case <-ctx.Done():
		return fmt.Errorf("job execution canceled: %w", ctx.Err())
	}
}
