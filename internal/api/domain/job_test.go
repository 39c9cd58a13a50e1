package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"queued", StatusQueued, true},
		{"QUEUED", StatusQueued, true},
		{"Processing", StatusProcessing, true},
		{"finished", StatusFinished, true},
		{"FiNiShEd", StatusFinished, true},
		{"done", "", false},
		{"", "", false},
		{"queued ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeStatus(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
