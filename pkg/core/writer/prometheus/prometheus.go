// Package prometheus pushes samples to a Prometheus Pushgateway.
package prometheus

import (
	"context"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithFields(log.Fields{"sink": "prometheus"})

// Writer collects samples of one pass into a registry and pushes the whole
// registry to the gateway on Flush.  Gauges become prometheus gauges and
// timings become summaries.
type Writer struct {
	url string
	job string

	registry *prometheus.Registry
	gauges   map[string]prometheus.Gauge
	timings  map[string]prometheus.Summary
}

// New creates a writer for the given gateway url and job name
func New(url string, job string) *Writer {
	w := &Writer{
		url: url,
		job: job,
	}
	w.reset()
	return w
}

func (w *Writer) reset() {
	w.registry = prometheus.NewRegistry()
	w.gauges = map[string]prometheus.Gauge{}
	w.timings = map[string]prometheus.Summary{}
}

// SanitizeName maps a dotted metric name to a valid prometheus metric name
func SanitizeName(name string) string {
	out := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ':') {
			return r
		}
		return '_'
	}, name)

	if out == "" || unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

// EmitGauge sets the gauge for name, registering it on first use
func (w *Writer) EmitGauge(name string, value *int64) {
	if value == nil {
		return
	}
	promName := SanitizeName(name)

	g, ok := w.gauges[promName]
	if !ok {
		g = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: promName,
			Help: name,
		})
		if !w.register(promName, g) {
			return
		}
		w.gauges[promName] = g
	}
	g.Set(float64(*value))
}

// EmitTiming records an observation in the summary for name
func (w *Writer) EmitTiming(name string, value *int64) {
	if value == nil {
		return
	}
	promName := SanitizeName(name)

	s, ok := w.timings[promName]
	if !ok {
		s = prometheus.NewSummary(prometheus.SummaryOpts{
			Name: promName,
			Help: name + " (milliseconds)",
		})
		if !w.register(promName, s) {
			return
		}
		w.timings[promName] = s
	}
	s.Observe(float64(*value))
}

func (w *Writer) register(name string, c prometheus.Collector) bool {
	if err := w.registry.Register(c); err != nil {
		logger.WithError(err).WithField("metric", name).Warn("Dropping metric that conflicts with another sanitized name")
		return false
	}
	return true
}

// Flush pushes everything collected since the last flush and starts a new
// registry.  The push replaces all metrics of the job on the gateway.
func (w *Writer) Flush(ctx context.Context) error {
	if len(w.gauges)+len(w.timings) == 0 {
		return nil
	}
	defer w.reset()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := push.New(w.url, w.job).Gatherer(w.registry).Push(); err != nil {
		return errors.Wrapf(err, "could not push metrics to %s", w.url)
	}
	logger.Debugf("Pushed %d metrics", len(w.gauges)+len(w.timings))
	return nil
}

// Close does nothing
func (w *Writer) Close() error {
	return nil
}
