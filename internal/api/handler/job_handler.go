package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/netooze/jobapi/internal/api/domain"
	"github.com/netooze/jobapi/internal/api/dto"
	"github.com/netooze/jobapi/internal/api/model"
	"github.com/netooze/jobapi/internal/token"
	"github.com/netooze/jobapi/internal/workitem"
	"github.com/netooze/jobapi/shared/metrics"
)

// createMaxAttempts bounds the retry loop when two creations for the same
// user race to the same next id.
const createMaxAttempts = 3

// CreateJob handles POST /v1/jobs/:user
// Stores the job as queued, then publishes the work item. A publish failure
// after the store write answers 502 and leaves the row queued; the worker's
// reconciler re-publishes it later.
func (h *JobHandler) CreateJob(c *gin.Context) {
	user := c.Param("user")

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(c, http.StatusUnprocessableEntity,
				fmt.Sprintf("missing required field: %s", strings.ToLower(verrs[0].Field())))
			return
		}
		writeError(c, http.StatusUnprocessableEntity, "malformed job payload")
		return
	}

	options := req.Options
	if len(options) == 0 {
		options = json.RawMessage(`{}`)
	}

	job := &model.Job{
		User:      user,
		Client:    req.Client,
		Host:      req.Host,
		Desc:      req.Desc,
		Query:     req.Query,
		Status:    domain.StatusQueued,
		Options:   options,
		Notes:     req.Notes,
		Priority:  req.Priority,
		CreatedAt: time.Now().UTC(),
	}

	created := false
	for attempt := 1; attempt <= createMaxAttempts; attempt++ {
		id, err := h.store.NextID(c.Request.Context(), user)
		if err != nil {
			h.logger.Error("Failed to compute next job id",
				slog.String("user", user),
				slog.Any("error", err),
			)
			writeError(c, http.StatusServiceUnavailable, "job store unavailable")
			return
		}

		job.ID = id
		err = h.store.CreateJob(c.Request.Context(), job)
		if err == nil {
			created = true
			break
		}

		if errors.Is(err, domain.ErrDuplicateJob) {
			// A concurrent creation took the id; recompute and retry.
			h.logger.Warn("Job id taken, retrying",
				slog.String("user", user),
				slog.Int64("id", id),
				slog.Int("attempt", attempt),
			)
			continue
		}

		h.logger.Error("Failed to create job",
			slog.String("user", user),
			slog.Any("error", err),
		)
		writeError(c, http.StatusServiceUnavailable, "job store unavailable")
		return
	}

	if !created {
		writeError(c, http.StatusServiceUnavailable, "could not assign a job id")
		return
	}

	item := workitem.Format(user, job.ID)
	if err := h.publisher.Publish(c.Request.Context(), []byte(item), "text/plain"); err != nil {
		metrics.PublishFailures.Inc()
		h.logger.Error("Failed to publish work item, job remains queued",
			slog.String("work_item", item),
			slog.Any("error", err),
		)
		writeError(c, http.StatusBadGateway, "job stored but could not be enqueued")
		return
	}

	metrics.JobsSubmitted.Inc()
	h.logger.Info("Job created",
		slog.String("user", user),
		slog.Int64("id", job.ID),
	)

	c.JSON(http.StatusCreated, dto.CreateJobResponse{
		ID:     token.Encode(user, job.ID),
		Desc:   job.Desc,
		Status: job.Status,
	})
}

// ListJobs handles GET /v1/jobs/:user
// Returns every job for the user, keyed by token.
func (h *JobHandler) ListJobs(c *gin.Context) {
	user := c.Param("user")

	jobs, err := h.store.ListJobs(c.Request.Context(), user)
	if err != nil {
		h.logger.Error("Failed to list jobs",
			slog.String("user", user),
			slog.Any("error", err),
		)
		writeError(c, http.StatusServiceUnavailable, "job store unavailable")
		return
	}

	c.JSON(http.StatusOK, jobMap(user, jobs))
}

// GetJobs handles GET /v1/jobs/:user/:filter
// The filter segment is a status literal (case-insensitive) or an id token.
func (h *JobHandler) GetJobs(c *gin.Context) {
	user := c.Param("user")
	filter := c.Param("filter")

	if status, ok := domain.NormalizeStatus(filter); ok {
		jobs, err := h.store.ListJobsByStatus(c.Request.Context(), user, status)
		if err != nil {
			h.logger.Error("Failed to list jobs by status",
				slog.String("user", user),
				slog.String("status", status),
				slog.Any("error", err),
			)
			writeError(c, http.StatusServiceUnavailable, "job store unavailable")
			return
		}

		if len(jobs) == 0 {
			writeError(c, http.StatusNotFound, fmt.Sprintf("no jobs with status %s", status))
			return
		}

		c.JSON(http.StatusOK, jobMap(user, jobs))
		return
	}

	id, err := token.Decode(user, filter)
	if err != nil {
		writeError(c, http.StatusNotFound, "no job found for id")
		return
	}

	job, err := h.store.GetJob(c.Request.Context(), user, id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			writeError(c, http.StatusNotFound, "no job found for id")
			return
		}
		h.logger.Error("Failed to get job",
			slog.String("user", user),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		writeError(c, http.StatusServiceUnavailable, "job store unavailable")
		return
	}

	c.JSON(http.StatusOK, toDTO(user, job))
}

// DeleteJob handles DELETE /v1/jobs/:user/:filter
func (h *JobHandler) DeleteJob(c *gin.Context) {
	user := c.Param("user")

	id, err := token.Decode(user, c.Param("filter"))
	if err != nil {
		writeError(c, http.StatusNotFound, "no job found for id")
		return
	}

	if _, err := h.store.GetJob(c.Request.Context(), user, id); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			writeError(c, http.StatusNotFound, "no job found for id")
			return
		}
		h.logger.Error("Failed to look up job before delete",
			slog.String("user", user),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		writeError(c, http.StatusServiceUnavailable, "job store unavailable")
		return
	}

	if err := h.store.DeleteJob(c.Request.Context(), user, id); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			// The job was visible a moment ago; someone else deleted it first.
			writeError(c, http.StatusBadGateway, "job disappeared during delete")
			return
		}
		h.logger.Error("Failed to delete job",
			slog.String("user", user),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		writeError(c, http.StatusServiceUnavailable, "job store unavailable")
		return
	}

	metrics.JobsDeleted.Inc()
	h.logger.Info("Job deleted",
		slog.String("user", user),
		slog.Int64("id", id),
	)

	c.Status(http.StatusOK)
}

// GetData handles GET /v1/data/:id
// Reserved endpoint; intentionally unimplemented.
func (h *JobHandler) GetData(c *gin.Context) {
	writeError(c, http.StatusNotImplemented, "not implemented")
}

func jobMap(user string, jobs []model.Job) map[string]dto.JobDTO {
	out := make(map[string]dto.JobDTO, len(jobs))
	for i := range jobs {
		d := toDTO(user, &jobs[i])
		out[d.ID] = d
	}
	return out
}

func toDTO(user string, job *model.Job) dto.JobDTO {
	return dto.JobDTO{
		ID:        token.Encode(user, job.ID),
		User:      job.User,
		Client:    job.Client,
		Host:      job.Host,
		Desc:      job.Desc,
		Query:     job.Query,
		Status:    job.Status,
		Options:   job.Options,
		Notes:     job.Notes,
		Priority:  job.Priority,
		Timestamp: job.CreatedAt.Format(time.RFC3339),
	}
}
