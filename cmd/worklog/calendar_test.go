package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/worklog-go/tracker"
)

func TestRenderCalendarAt(t *testing.T) {
	t.Parallel()

	// a Saturday, so every weekday row has the same number of cells
	end := time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)
	out := renderCalendarAt([]tracker.CalendarCell{
		{Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), Count: 12, Level: 4},
	}, end)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "Sun"))
	assert.True(t, strings.HasPrefix(lines[6], "Sat"))
	for _, line := range lines[:7] {
		assert.Equal(t, calendarWeeks, strings.Count(line, "■"), line)
	}
	assert.Contains(t, lines[7], "Less")
	assert.Contains(t, lines[7], "More")
}
