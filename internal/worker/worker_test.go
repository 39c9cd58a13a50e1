package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netooze/jobapi/internal/worker/domain"
)

func testWorker() *Worker {
	return &Worker{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		workerID: "worker-test",
		jobsChan: make(chan *domain.JobMessage, 1),
		stopChan: make(chan struct{}),
	}
}

func TestDispatcherReportsClosedDeliveries(t *testing.T) {
	w := testWorker()

	deliveries := make(chan amqp.Delivery)
	close(deliveries)

	err := w.startMessageDispatcher(context.Background(), deliveries)
	require.ErrorIs(t, err, ErrDeliveriesClosed)
}

func TestDispatcherStopsCleanOnCancel(t *testing.T) {
	w := testWorker()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.startMessageDispatcher(ctx, make(chan amqp.Delivery))
	require.NoError(t, err)
}

func TestDispatcherDropsMalformedAndKeepsGoing(t *testing.T) {
	w := testWorker()

	deliveries := make(chan amqp.Delivery, 2)
	deliveries <- amqp.Delivery{Body: []byte("not a work item")}
	close(deliveries)

	err := w.startMessageDispatcher(context.Background(), deliveries)
	require.ErrorIs(t, err, ErrDeliveriesClosed)
	assert.Empty(t, w.jobsChan)
}
