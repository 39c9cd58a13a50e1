package workitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatParse(t *testing.T) {
	tests := []struct {
		name  string
		user  string
		jobID int64
		wire  string
	}{
		{"simple", "alice", 1, "alice:1"},
		{"large id", "bob", 1000000, "bob:1000000"},
		{"user with colon", "acme:ops", 7, "acme:ops:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire := Format(tt.user, tt.jobID)
			assert.Equal(t, tt.wire, wire)

			item, err := Parse(wire)
			require.NoError(t, err)
			assert.Equal(t, tt.user, item.User)
			assert.Equal(t, tt.jobID, item.JobID)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		wire string
	}{
		{"empty", ""},
		{"no colon", "alice"},
		{"empty user", ":5"},
		{"non-numeric id", "alice:abc"},
		{"negative id", "alice:-1"},
		{"trailing colon", "alice:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.wire)
			require.Error(t, err)
		})
	}
}
