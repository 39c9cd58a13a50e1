// Package workitem defines the compact "{user}:{id}" message handed from the
// API to the worker over the queue.
package workitem

import (
	"fmt"
	"strconv"
	"strings"
)

// Item identifies one queued job.
type Item struct {
	User  string
	JobID int64
}

// Format renders the wire form of a work item.
func Format(user string, jobID int64) string {
	return fmt.Sprintf("%s:%d", user, jobID)
}

// Parse reads the wire form back. The id is everything after the last colon,
// so user names containing colons survive the round trip.
func Parse(s string) (Item, error) {
	idx := strings.LastIndex(s, ":")
	if idx <= 0 {
		return Item{}, fmt.Errorf("malformed work item %q", s)
	}

	id, err := strconv.ParseInt(s[idx+1:], 10, 64)
	if err != nil || id < 0 {
		return Item{}, fmt.Errorf("malformed work item id in %q", s)
	}

	return Item{User: s[:idx], JobID: id}, nil
}
