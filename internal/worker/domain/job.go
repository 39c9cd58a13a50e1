package domain

import "github.com/netooze/jobapi/internal/workitem"

// Job status values, mirrored from the API side. The worker only ever moves
// a job queued -> processing -> finished.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusFinished   = "finished"
)

// Job is the slice of the stored job the worker needs while processing.
type Job struct {
	User     string
	ID       int64
	Client   string
	Desc     string
	Priority int
}

// JobMessage pairs a parsed work item with its delivery tag for ACK/NACK.
type JobMessage struct {
	Item        workitem.Item
	DeliveryTag uint64
}
