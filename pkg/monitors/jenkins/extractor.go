package jenkins

import (
	"context"
	"strings"
	"time"

	set "gopkg.in/fatih/set.v0"

	"github.com/signalfx/jenkins-metrics/pkg/monitors/jenkins/client"
	"github.com/signalfx/jenkins-metrics/pkg/monitors/types"
)

// API is the part of the Jenkins client that the extractor reads from.  Every
// method returns an empty record instead of failing.
type API interface {
	Computers(ctx context.Context) client.ComputerSet
	Queue(ctx context.Context) client.Queue
	Timeline(ctx context.Context, view string, from, to int64) client.Timeline
	Label(ctx context.Context, label string) client.Label
	LastSuccessfulBuild(ctx context.Context, job string) client.Build
	View(ctx context.Context, view string) client.View
}

var _ API = &client.Client{}

// ExtractorConfig selects which sections are extracted and how they are named
type ExtractorConfig struct {
	// Prepended to every metric name, joined with a dot.  May be empty.
	Prefix string
	// Node labels to report executor and node stats for
	Labels []string
	// Job full names to report queue and duration stats for
	Jobs []string
	// View to report job health for, skipped if empty
	View string
	// Whether to report node totals (total, online, offline)
	MonitorNodes bool
	// View whose timeline is used to count started builds, e.g. "All"
	TimelineView string
}

// Extractor turns Jenkins API documents into a flat list of samples.  It holds
// no state between passes.
type Extractor struct {
	api  API
	conf ExtractorConfig
	now  func() time.Time
}

// NewExtractor makes an extractor reading from api.  conf is used as is, the
// defaults come from the tool's config.
func NewExtractor(api API, conf ExtractorConfig) *Extractor {
	return &Extractor{
		api:  api,
		conf: conf,
		now:  time.Now,
	}
}

// pass holds what one extraction run has fetched so far
type pass struct {
	*Extractor
	ctx          context.Context
	samples      []types.Sample
	offlineNodes *set.SetNonTS
	queue        client.Queue
}

// Extract runs every section in a fixed order and returns the samples.  A
// section whose data could not be fetched reports zero values; it never stops
// the sections after it.
func (e *Extractor) Extract(ctx context.Context) []types.Sample {
	p := &pass{
		Extractor: e,
		ctx:       ctx,
	}

	p.executorMetrics()
	p.queueMetrics()
	p.timelineMetrics()
	for _, label := range e.conf.Labels {
		p.labelMetrics(label)
	}
	for _, job := range e.conf.Jobs {
		p.jobMetrics(job)
	}
	if e.conf.View != "" {
		p.viewMetrics(e.conf.View)
	}

	return p.samples
}

// metricName joins the prefix and path parts with dots.  Parts are not
// escaped, so identifiers containing dots produce deeper names.
func (e *Extractor) metricName(parts ...string) string {
	if e.conf.Prefix != "" {
		parts = append([]string{e.conf.Prefix}, parts...)
	}
	return strings.Join(parts, ".")
}

func (p *pass) gauge(value int64, parts ...string) {
	p.samples = append(p.samples, types.NewGauge(p.metricName(parts...), value))
}

func (p *pass) timing(value *int64, parts ...string) {
	p.samples = append(p.samples, types.NewTiming(p.metricName(parts...), value))
}
