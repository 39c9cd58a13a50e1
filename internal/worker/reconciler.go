package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/netooze/jobapi/internal/workitem"
	"github.com/netooze/jobapi/shared/metrics"
)

// reconcileBatchSize caps how many stuck jobs one sweep re-publishes.
const reconcileBatchSize = 100

// startReconciler periodically re-publishes jobs that have sat in queued
// state longer than the configured age. A job ends up there when its publish
// failed after the store write; the API surfaces that as a 502 but does not
// roll the row back. Re-publishing is safe because the claim is idempotent:
// duplicate deliveries are acked and dropped.
func (w *Worker) startReconciler(ctx context.Context) {
	ticker := time.NewTicker(w.reconcileInterval)
	defer ticker.Stop()

	w.logger.Info("Reconciler started",
		slog.Duration("interval", w.reconcileInterval),
		slog.Duration("age", w.reconcileAge),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Reconciler stopped")
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.reconcileOnce(ctx)
		}
	}
}

func (w *Worker) reconcileOnce(ctx context.Context) {
	items, err := w.storage.ListStuckQueued(ctx, w.reconcileAge, reconcileBatchSize)
	if err != nil {
		w.logger.Error("Failed to list stuck queued jobs",
			slog.Any("error", err),
		)
		return
	}

	for _, item := range items {
		body := workitem.Format(item.User, item.JobID)
		if err := w.rabbitClient.Publish(ctx, []byte(body), "text/plain"); err != nil {
			w.logger.Error("Failed to re-publish work item",
				slog.String("work_item", body),
				slog.Any("error", err),
			)
			return
		}

		metrics.JobsRepublished.Inc()
		w.logger.Info("Re-published stuck work item",
			slog.String("work_item", body),
		)
	}
}
