package stdout

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(i int64) *int64 {
	return &i
}

func TestRendersTable(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	require.NoError(t, w.Flush(context.Background()))
	assert.Empty(t, buf.String(), "no table without samples")

	w.EmitGauge("jenkins.executors.total", int64Ptr(10))
	w.EmitTiming("jenkins.jobs.deploy.duration", nil)
	w.EmitTiming("jenkins.jobs.deploy.queue.delay", int64Ptr(1500))
	require.NoError(t, w.Flush(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "KIND")

	lines := strings.Split(out, "\n")
	var rows []string
	for _, l := range lines {
		if strings.Contains(l, "jenkins.") {
			rows = append(rows, strings.Join(strings.Fields(strings.ReplaceAll(l, "|", " ")), " "))
		}
	}
	assert.Equal(t, []string{
		"jenkins.executors.total 10 gauge",
		"jenkins.jobs.deploy.duration null timing",
		"jenkins.jobs.deploy.queue.delay 1500 timing",
	}, rows)

	buf.Reset()
	require.NoError(t, w.Flush(context.Background()))
	assert.Empty(t, buf.String(), "buffer is cleared after a flush")
}
