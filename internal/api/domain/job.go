package domain

import "strings"

// Job status values. Stored lower-case; input filters match
// case-insensitively. The API only ever writes StatusQueued; the worker
// drives the later transitions.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusFinished   = "finished"
)

// NormalizeStatus reports whether s names a known status, and if so returns
// the canonical lower-case form.
func NormalizeStatus(s string) (string, bool) {
	for _, known := range []string{StatusQueued, StatusProcessing, StatusFinished} {
		if strings.EqualFold(s, known) {
			return known, true
		}
	}
	return "", false
}
