package model

import (
	"encoding/json"
	"time"
)

// Job is the stored form of a submitted job. Query and Options are opaque
// JSON blobs kept verbatim; the service never interprets their shape.
type Job struct {
	ID        int64           `db:"id"`
	User      string          `db:"user_name"`
	Client    string          `db:"client"`
	Host      string          `db:"host"`
	Desc      string          `db:"descr"`
	Query     json.RawMessage `db:"query"`
	Status    string          `db:"status"`
	Options   json.RawMessage `db:"options"`
	Notes     string          `db:"notes"`
	Priority  int             `db:"priority"`
	CreatedAt time.Time       `db:"created_at"`
}

// File is the stored metadata of an uploaded document, keyed by the sha256
// hash of its bytes.
type File struct {
	Hash        string    `db:"hash"`
	Name        string    `db:"name"`
	ContentType string    `db:"content_type"`
	Size        int64     `db:"size"`
	Path        string    `db:"path"`
	CreatedAt   time.Time `db:"created_at"`
}
