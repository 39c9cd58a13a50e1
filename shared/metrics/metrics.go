package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// JobsSubmitted counts jobs accepted by the create endpoint.
	JobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobapi_jobs_submitted_total",
		Help: "Total number of jobs accepted for processing",
	})

	// JobsDeleted counts jobs removed via the delete endpoint.
	JobsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobapi_jobs_deleted_total",
		Help: "Total number of jobs deleted",
	})

	// PublishFailures counts queue publishes that failed after the job row
	// was already written. These jobs stay queued until re-published.
	PublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobapi_publish_failures_total",
		Help: "Total number of queue publish failures after a store write",
	})

	// FilesUploaded counts accepted file uploads.
	FilesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobapi_files_uploaded_total",
		Help: "Total number of files accepted for parsing",
	})

	// JobsProcessed counts jobs finished by the worker, by result.
	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobapi_jobs_processed_total",
		Help: "Total number of jobs processed by the worker",
	}, []string{"result"})

	// JobsRepublished counts queued jobs re-published by the reconciler.
	JobsRepublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobapi_jobs_republished_total",
		Help: "Total number of stuck queued jobs re-published",
	})
)

// Handler returns the prometheus exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
