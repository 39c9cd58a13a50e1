package domain

import "errors"

var (
	// ErrJobNotFound is returned when a job cannot be found in the store
	ErrJobNotFound = errors.New("job not found")

	// ErrDuplicateJob is returned when a job id is already taken for the
	// user, which happens when two creations race on the same next id
	ErrDuplicateJob = errors.New("duplicate job id")

	// ErrFileNotFound is returned when no uploaded file matches the hash
	ErrFileNotFound = errors.New("file not found")

	// ErrDuplicateFile is returned when identical content was already uploaded
	ErrDuplicateFile = errors.New("duplicate file")
)
