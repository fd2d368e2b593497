package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"highscores/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	l, err := CreateLogger(&out, config.BucketConfiguration{})
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	return l, &out
}

func TestLoggerWritesBothOutputs(t *testing.T) {
	l, out := newTestLogger(t)

	l.Infof("fetched %d high scores for country code %s", 3, "US")
	l.Errorf("boom: %v", "db down")

	contents, err := l.Contents()
	require.NoError(t, err)

	assert.Equal(t, out.String(), contents)

	lines := strings.Split(strings.TrimSpace(contents), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[INFO]"))
	assert.Contains(t, lines[0], "fetched 3 high scores for country code US")
	assert.True(t, strings.HasPrefix(lines[1], "[ERROR]"))
	assert.Contains(t, lines[1], "boom: db down")
}

func TestFlushWithoutBucketCleansFile(t *testing.T) {
	l, out := newTestLogger(t)

	l.Infof("first invocation")
	require.NoError(t, l.Flush(context.Background()))

	contents, err := l.Contents()
	require.NoError(t, err)
	assert.Empty(t, contents)

	// The stream keeps everything.
	assert.Contains(t, out.String(), "first invocation")

	l.Infof("second invocation")
	contents, err = l.Contents()
	require.NoError(t, err)
	assert.Contains(t, contents, "second invocation")
	assert.NotContains(t, contents, "first invocation")
}

func TestObjectKey(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	first := ObjectKey(now)
	second := ObjectKey(now)

	assert.True(t, strings.HasPrefix(first, "logs/leaderboard/2024-01-15/"))
	assert.True(t, strings.HasSuffix(first, ".log"))
	assert.NotEqual(t, first, second)
}
