package dto

import "encoding/json"

type CreateJobRequest struct {
	Client   string          `json:"client" binding:"required"`
	Host     string          `json:"host" binding:"required"`
	Desc     string          `json:"desc" binding:"required"`
	Query    json.RawMessage `json:"query" binding:"required"`
	Options  json.RawMessage `json:"options"`
	Notes    string          `json:"notes"`
	Priority int             `json:"priority"`
}

type CreateJobResponse struct {
	ID     string `json:"id"`
	Desc   string `json:"desc"`
	Status string `json:"status"`
}

type JobDTO struct {
	ID        string          `json:"id"`
	User      string          `json:"user"`
	Client    string          `json:"client"`
	Host      string          `json:"host"`
	Desc      string          `json:"desc"`
	Query     json.RawMessage `json:"query"`
	Status    string          `json:"status"`
	Options   json.RawMessage `json:"options"`
	Notes     string          `json:"notes"`
	Priority  int             `json:"priority"`
	Timestamp string          `json:"timestamp"`
}

type FileDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ErrorResponse is the envelope used on every error path. The HTTP status
// code mirrors Error.Code.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Href    string `json:"href,omitempty"`
}
