package statsd

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsDMetric struct {
	name       string
	metricType string
	value      float64
}

// parseMetrics parses `name:value|type[|@rate]` lines
func parseMetrics(raw []string) []statsDMetric {
	var metrics []statsDMetric
	for _, m := range raw {
		colonIdx := strings.LastIndex(m, ":")
		pipeIdx := strings.Index(m, "|")
		if colonIdx < 0 || pipeIdx < colonIdx {
			continue
		}
		metricType := m[pipeIdx+1:]
		if i := strings.Index(metricType, "|"); i >= 0 {
			metricType = metricType[:i]
		}
		value, err := strconv.ParseFloat(m[colonIdx+1:pipeIdx], 64)
		if err != nil {
			continue
		}
		metrics = append(metrics, statsDMetric{name: m[:colonIdx], metricType: metricType, value: value})
	}
	return metrics
}

func listen(t *testing.T) (*net.UDPConn, uint16) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1")})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, uint16(conn.LocalAddr().(*net.UDPAddr).Port)
}

func readLines(t *testing.T, conn *net.UDPConn, want int) []string {
	var lines []string
	buf := make([]byte, 65536)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for len(lines) < want {
		n, _, err := conn.ReadFromUDP(buf)
		require.NoError(t, err)
		for _, l := range strings.Split(string(buf[:n]), "\n") {
			if l != "" {
				lines = append(lines, l)
			}
		}
	}
	return lines
}

func int64Ptr(i int64) *int64 {
	return &i
}

func TestWriterSendsGaugesAndTimings(t *testing.T) {
	conn, port := listen(t)

	w, err := New("127.0.0.1", port)
	require.NoError(t, err)
	defer w.Close()

	w.EmitGauge("jenkins.executors.total", int64Ptr(10))
	w.EmitGauge("jenkins.skipped", nil)
	w.EmitTiming("jenkins.jobs.build.duration", nil)
	w.EmitTiming("jenkins.jobs.build.queue.delay", int64Ptr(1500))
	w.EmitGauge("jenkins.executors.free", int64Ptr(-2))
	require.NoError(t, w.Flush(context.Background()))

	metrics := parseMetrics(readLines(t, conn, 4))
	assert.Equal(t, []statsDMetric{
		{"jenkins.executors.total", "g", 10},
		{"jenkins.jobs.build.queue.delay", "ms", 1500},
		{"jenkins.executors.free", "g", 0},
		{"jenkins.executors.free", "g", -2},
	}, metrics)
}
