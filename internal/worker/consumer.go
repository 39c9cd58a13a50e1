package worker

import (
	"context"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/netooze/jobapi/internal/worker/domain"
	"github.com/netooze/jobapi/internal/workitem"
)

// setupConsumer sets up the RabbitMQ consumer with QoS and returns the
// delivery channel
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := w.rabbitClient.GetChannel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	if err := channel.Qos(w.prefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := w.rabbitClient.Consume(w.workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_tag", w.workerID),
		slog.Int("prefetch_count", w.prefetchCount),
	)

	return deliveries, nil
}

// startMessageDispatcher listens to RabbitMQ deliveries and dispatches parsed
// work items to the worker pool. Returns ErrDeliveriesClosed when the broker
// closes the delivery channel, nil on a normal shutdown.
func (w *Worker) startMessageDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return nil

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return ErrDeliveriesClosed
			}

			item, err := workitem.Parse(string(delivery.Body))
			if err != nil {
				w.logger.Error("Failed to parse work item",
					slog.String("body", string(delivery.Body)),
					slog.Any("error", err),
				)
				// Malformed messages are dropped, not requeued.
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK malformed message",
						slog.Any("error", nackErr),
					)
				}
				continue
			}

			jobMsg := &domain.JobMessage{
				Item:        item,
				DeliveryTag: delivery.DeliveryTag,
			}

			select {
			case w.jobsChan <- jobMsg:
				w.logger.Debug("Work item dispatched to worker pool",
					slog.String("user", item.User),
					slog.Int64("id", item.JobID),
				)
			case <-ctx.Done():
				w.logger.Info("Message dispatcher stopped while dispatching")
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					w.logger.Error("Failed to NACK message on shutdown",
						slog.Any("error", nackErr),
					)
				}
				return nil
			}
		}
	}
}
