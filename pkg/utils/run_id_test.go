package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var runIDPattern = regexp.MustCompile(`^[a-z]+-[0-9a-f]{8}$`)

func TestGenerateRunID(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		prefix    string
	}{
		{"resolve", "resolve", "resolve-"},
		{"normalized", "  Check ", "check-"},
		{"empty operation", "", "run-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := GenerateRunID(tt.operation)

			assert.Regexp(t, runIDPattern, id)
			assert.Equal(t, tt.prefix, id[:len(tt.prefix)])
		})
	}
}

func TestGenerateRunID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRunID("resolve")
		assert.False(t, seen[id], "duplicate run ID %s", id)
		seen[id] = true
	}
}
