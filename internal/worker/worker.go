package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/netooze/jobapi/internal/worker/domain"
	"github.com/netooze/jobapi/internal/worker/storage"
	"github.com/netooze/jobapi/shared/postgresql"
	"github.com/netooze/jobapi/shared/rabbitmq"
)

// ErrDeliveriesClosed is returned by Start when the broker closes the
// delivery channel while the worker is still supposed to be running.
var ErrDeliveriesClosed = errors.New("rabbitmq delivery channel closed")

// Config holds worker configuration
type Config struct {
	Logger            *slog.Logger
	DBClient          *postgresql.Client
	RabbitClient      *rabbitmq.Client
	Concurrency       int
	PrefetchCount     int
	JobTimeout        time.Duration
	ReconcileInterval time.Duration
	ReconcileAge      time.Duration
}

// Worker consumes work items and drives jobs queued -> processing -> finished
type Worker struct {
	logger            *slog.Logger
	rabbitClient      *rabbitmq.Client
	storage           *storage.Storage
	workerID          string
	concurrency       int
	prefetchCount     int
	jobTimeout        time.Duration
	reconcileInterval time.Duration
	reconcileAge      time.Duration
	jobsChan          chan *domain.JobMessage
	wg                sync.WaitGroup
	stopChan          chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:            cfg.Logger,
		rabbitClient:      cfg.RabbitClient,
		storage:           storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		workerID:          "worker-" + uuid.NewString(),
		concurrency:       cfg.Concurrency,
		prefetchCount:     cfg.PrefetchCount,
		jobTimeout:        cfg.JobTimeout,
		reconcileInterval: cfg.ReconcileInterval,
		reconcileAge:      cfg.ReconcileAge,
		jobsChan:          make(chan *domain.JobMessage, cfg.Concurrency),
		stopChan:          make(chan struct{}),
	}
}

// Start begins consuming and processing jobs. It blocks until the context is
// canceled (returning nil) or the broker closes the delivery channel
// (returning ErrDeliveriesClosed, so the service exits instead of idling).
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("job_timeout", w.jobTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return err
	}

	w.spawnWorkerPool(ctx)

	go w.startReconciler(ctx)

	return w.startMessageDispatcher(ctx, deliveries)
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...",
		slog.String("worker_id", w.workerID),
	)
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
