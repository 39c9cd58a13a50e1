package domain

import "errors"

var (
	// ErrJobAlreadyClaimed is returned when the job is not in queued state,
	// either because another worker took it or because the work item is a
	// duplicate delivery (the reconciler can re-publish items still in
	// flight). Such messages are acknowledged and dropped.
	ErrJobAlreadyClaimed = errors.New("job already claimed or not queued")
)
