package jenkins

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalfx/jenkins-metrics/pkg/core/config"
	"github.com/signalfx/jenkins-metrics/pkg/monitors/types"
	"github.com/signalfx/jenkins-metrics/pkg/utils"
)

// recordingWriter keeps everything it is sent in memory
type recordingWriter struct {
	pending []types.Sample
	flushed []types.Sample
	flushes int
}

func (w *recordingWriter) EmitGauge(name string, value *int64) {
	s := types.Sample{Name: name, Value: value, Kind: types.Gauge}
	w.pending = append(w.pending, s)
}

func (w *recordingWriter) EmitTiming(name string, value *int64) {
	w.pending = append(w.pending, types.NewTiming(name, value))
}

func (w *recordingWriter) Flush(ctx context.Context) error {
	w.flushes++
	w.flushed = append(w.flushed, w.pending...)
	w.pending = nil
	return nil
}

func (w *recordingWriter) Close() error {
	return nil
}

func (w *recordingWriter) value(t *testing.T, name string) *int64 {
	t.Helper()
	for _, s := range w.flushed {
		if s.Name == name {
			return s.Value
		}
	}
	t.Fatalf("no sample named %s was flushed", name)
	return nil
}

func fakeJenkins(t *testing.T, inQueueSince int64) *httptest.Server {
	mux := http.NewServeMux()
	respond := func(path, body string) {
		mux.HandleFunc(path, func(rw http.ResponseWriter, r *http.Request) {
			rw.Header().Set("Content-Type", "application/json")
			fmt.Fprint(rw, body)
		})
	}

	respond("/computer/api/json", `{
		"busyExecutors": 3,
		"totalExecutors": 10,
		"computer": [
			{"displayName": "master", "offline": false},
			{"displayName": "agent-1", "offline": true}
		]
	}`)
	respond("/queue/api/json", fmt.Sprintf(`{"items": [
		{"task": {"name": "deploy"}, "inQueueSince": %d},
		{"task": {"name": "other"}, "inQueueSince": 1}
	]}`, inQueueSince))
	respond("/view/All/timeline/data", `{"events": [{"title": "deploy #1"}, {"title": "deploy #2"}]}`)
	respond("/label/linux/api/json", `{
		"busyExecutors": 1,
		"totalExecutors": 4,
		"tiedJobs": [{"name": "deploy"}],
		"nodes": [{"nodeName": "agent-1"}, {"nodeName": "agent-2"}]
	}`)
	respond("/job/deploy/lastSuccessfulBuild/api/json", `{"duration": 61000}`)
	respond("/view/main/api/json", `{"jobs": [
		{"name": "deploy", "color": "blue"},
		{"name": "test", "color": "red"}
	]}`)

	return httptest.NewServer(mux)
}

func newMonitor(t *testing.T, jenkinsURL string) (*Monitor, *recordingWriter) {
	out := &recordingWriter{}
	m := &Monitor{Output: out}
	require.NoError(t, m.Configure(&config.Config{
		JenkinsURL:   jenkinsURL,
		Labels:       []string{"linux"},
		Jobs:         []string{"deploy"},
		View:         "main",
		MonitorNodes: true,
		TimelineView: "All",
	}))
	return m, out
}

func TestCollect(t *testing.T) {
	now := time.Now()
	server := fakeJenkins(t, utils.TimeToMillis(now.Add(-2*time.Second)))
	defer server.Close()

	m, out := newMonitor(t, server.URL+"/")
	require.NoError(t, m.Collect(context.Background()))

	assert.Equal(t, 1, out.flushes)
	assert.Len(t, out.flushed, 22)

	expected := map[string]int64{
		"jenkins.executors.total":                   10,
		"jenkins.executors.busy":                    3,
		"jenkins.executors.free":                    7,
		"jenkins.nodes.total":                       2,
		"jenkins.nodes.offline":                     1,
		"jenkins.nodes.online":                      1,
		"jenkins.queue.size":                        2,
		"jenkins.builds.started_builds_last_minute": 2,
		"jenkins.builds.started_builds_last_hour":   2,
		"jenkins.labels.linux.jobs.tiedJobs":        1,
		"jenkins.labels.linux.nodes.total":          2,
		"jenkins.labels.linux.executors.total":      4,
		"jenkins.labels.linux.executors.busy":       1,
		"jenkins.labels.linux.executors.free":       3,
		"jenkins.labels.linux.executors.offline":    1,
		"jenkins.jobs.deploy.queue.size":            1,
		"jenkins.jobs.deploy.duration":              61000,
		"jenkins.view.main.total":                   2,
		"jenkins.view.main.ok":                      1,
		"jenkins.view.main.fail":                    1,
		"jenkins.view.main.warn":                    0,
	}
	for name, want := range expected {
		v := out.value(t, name)
		require.NotNil(t, v, name)
		assert.Equal(t, want, *v, name)
	}

	delay := out.value(t, "jenkins.jobs.deploy.queue.delay")
	require.NotNil(t, delay)
	assert.GreaterOrEqual(t, *delay, int64(2000))
	assert.Less(t, *delay, int64(60000))
}

func TestCollectUnreachableJenkins(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	m, out := newMonitor(t, server.URL)
	require.NoError(t, m.Collect(context.Background()))

	assert.Equal(t, 1, out.flushes)
	assert.Len(t, out.flushed, 22)
	for _, s := range out.flushed {
		if s.Name == "jenkins.jobs.deploy.duration" {
			assert.Nil(t, s.Value)
			continue
		}
		require.NotNil(t, s.Value, s.Name)
		assert.Equal(t, int64(0), *s.Value, s.Name)
	}
}

func TestCollectCancelledDoesNotFlush(t *testing.T) {
	server := fakeJenkins(t, 0)
	defer server.Close()

	m, out := newMonitor(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Equal(t, context.Canceled, m.Collect(ctx))
	assert.Equal(t, 0, out.flushes)
	assert.Empty(t, out.pending)
}

func TestConfigureRejectsBadURL(t *testing.T) {
	m := &Monitor{Output: &recordingWriter{}}
	require.Error(t, m.Configure(&config.Config{JenkinsURL: "jenkins.local"}))
}
