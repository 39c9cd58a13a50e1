package handler

import (
	"context"
	"log/slog"

	"github.com/netooze/jobapi/internal/api/model"
	"github.com/netooze/jobapi/internal/config"
)

// JobStore is the per-user job collection contract the handlers need.
// *storage.Storage satisfies it; tests substitute an in-memory fake.
type JobStore interface {
	NextID(ctx context.Context, user string) (int64, error)
	CreateJob(ctx context.Context, job *model.Job) error
	ListJobs(ctx context.Context, user string) ([]model.Job, error)
	ListJobsByStatus(ctx context.Context, user, status string) ([]model.Job, error)
	GetJob(ctx context.Context, user string, id int64) (*model.Job, error)
	DeleteJob(ctx context.Context, user string, id int64) error
}

// FileStore is the uploaded-file metadata contract.
type FileStore interface {
	CreateFile(ctx context.Context, file *model.File) error
	GetFile(ctx context.Context, hash string) (*model.File, error)
}

// Publisher hands work items to the queue. The publish is awaited before the
// HTTP response is written.
type Publisher interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Jobs      JobStore
	Files     FileStore
	Publisher Publisher
	FilesCfg  config.FilesConfig
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger    *slog.Logger
	store     JobStore
	publisher Publisher
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:    deps.Logger,
		store:     deps.Jobs,
		publisher: deps.Publisher,
	}
}

// FileHandler handles the file upload surface
type FileHandler struct {
	logger *slog.Logger
	store  FileStore
	cfg    config.FilesConfig
}

// NewFileHandler creates a new FileHandler instance
func NewFileHandler(deps *Dependencies) *FileHandler {
	return &FileHandler{
		logger: deps.Logger,
		store:  deps.Files,
		cfg:    deps.FilesCfg,
	}
}
