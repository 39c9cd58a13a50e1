package handler_test

import (
	"context"
	"errors"
	"sort"

	"github.com/netooze/jobapi/internal/api/domain"
	"github.com/netooze/jobapi/internal/api/model"
)

var errStoreDown = errors.New("store connection refused")

// fakeStore is an in-memory stand-in for storage.Storage.
type fakeStore struct {
	jobs  map[string]map[int64]model.Job
	files map[string]model.File

	// nextIDQueue overrides NextID results to simulate creation races.
	nextIDQueue []int64

	failNextID     bool
	failCreate     bool
	failList       bool
	failGet        bool
	failDelete     bool
	failCreateFile bool
	failGetFile    bool

	// vanishOnDelete simulates the job disappearing between the lookup and
	// the delete.
	vanishOnDelete bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		jobs:  make(map[string]map[int64]model.Job),
		files: make(map[string]model.File),
	}
}

func (f *fakeStore) NextID(ctx context.Context, user string) (int64, error) {
	if f.failNextID {
		return 0, errStoreDown
	}
	if len(f.nextIDQueue) > 0 {
		id := f.nextIDQueue[0]
		f.nextIDQueue = f.nextIDQueue[1:]
		return id, nil
	}
	var max int64
	for id := range f.jobs[user] {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}

func (f *fakeStore) CreateJob(ctx context.Context, job *model.Job) error {
	if f.failCreate {
		return errStoreDown
	}
	if _, ok := f.jobs[job.User][job.ID]; ok {
		return domain.ErrDuplicateJob
	}
	if f.jobs[job.User] == nil {
		f.jobs[job.User] = make(map[int64]model.Job)
	}
	f.jobs[job.User][job.ID] = *job
	return nil
}

func (f *fakeStore) ListJobs(ctx context.Context, user string) ([]model.Job, error) {
	if f.failList {
		return nil, errStoreDown
	}
	var out []model.Job
	for _, job := range f.jobs[user] {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) ListJobsByStatus(ctx context.Context, user, status string) ([]model.Job, error) {
	if f.failList {
		return nil, errStoreDown
	}
	var out []model.Job
	for _, job := range f.jobs[user] {
		if job.Status == status {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) GetJob(ctx context.Context, user string, id int64) (*model.Job, error) {
	if f.failGet {
		return nil, errStoreDown
	}
	job, ok := f.jobs[user][id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &job, nil
}

func (f *fakeStore) DeleteJob(ctx context.Context, user string, id int64) error {
	if f.failDelete {
		return errStoreDown
	}
	if f.vanishOnDelete {
		return domain.ErrJobNotFound
	}
	if _, ok := f.jobs[user][id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(f.jobs[user], id)
	return nil
}

func (f *fakeStore) setStatus(user string, id int64, status string) {
	job := f.jobs[user][id]
	job.Status = status
	f.jobs[user][id] = job
}

func (f *fakeStore) CreateFile(ctx context.Context, file *model.File) error {
	if f.failCreateFile {
		return errStoreDown
	}
	if _, ok := f.files[file.Hash]; ok {
		return domain.ErrDuplicateFile
	}
	f.files[file.Hash] = *file
	return nil
}

func (f *fakeStore) GetFile(ctx context.Context, hash string) (*model.File, error) {
	if f.failGetFile {
		return nil, errStoreDown
	}
	file, ok := f.files[hash]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	return &file, nil
}

// fakePublisher records published work items and can be made to fail.
type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, body []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, string(body))
	return nil
}
