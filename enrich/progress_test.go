package enrich

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_ReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 25)
	tracker.Start()

	tracker.Update(10)
	assert.Empty(t, buf.String(), "below interval, nothing reported yet")

	tracker.Update(30)
	assert.Contains(t, buf.String(), "30/100")

	tracker.Finish()
	assert.Contains(t, buf.String(), "100/100")
	assert.Contains(t, buf.String(), "100.0%")
}

func TestProgressTracker_Increment(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 5)
	tracker.Start()

	tracker.Increment(3)
	tracker.Increment(3)
	assert.Contains(t, buf.String(), "6/10")

	// Increments cap at total
	tracker.Increment(100)
	assert.Contains(t, buf.String(), "10/10")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Update(5)
	tracker.Finish()
	assert.Empty(t, buf.String(), "tracker is inert before Start")
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}
