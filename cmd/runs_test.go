package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gridline-labs/gridline/internal/store"
)

func TestFormatRunsList(t *testing.T) {
	t.Parallel()

	runs := []store.RunRecord{
		{
			ID:        "run-1",
			GameID:    "2025-W10-ATL-NO",
			Model:     "claude-sonnet-4-5-20250929",
			CreatedAt: time.Date(2025, 11, 9, 18, 0, 0, 0, time.UTC),
		},
		{
			ID:        "run-2",
			GameID:    "2025-W10-KC-BUF",
			Model:     "fallback",
			CreatedAt: time.Date(2025, 11, 9, 19, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	out := buf.String()
	assert.Contains(t, out, "RUN ID")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "2025-W10-KC-BUF")
	assert.Contains(t, out, "2025-11-09T18:00:00Z")
}

func TestCommandsRegistered(t *testing.T) {
	t.Parallel()

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["analyze"])
	assert.True(t, names["serve"])
	assert.True(t, names["runs"])
}
