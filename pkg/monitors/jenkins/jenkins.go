package jenkins

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/signalfx/jenkins-metrics/pkg/core/config"
	"github.com/signalfx/jenkins-metrics/pkg/core/writer"
	"github.com/signalfx/jenkins-metrics/pkg/monitors/jenkins/client"
	"github.com/signalfx/jenkins-metrics/pkg/monitors/types"
)

var logger = log.WithFields(log.Fields{"monitorType": monitorType})

// Monitor polls a Jenkins server and sends what it finds to Output
type Monitor struct {
	Output    writer.Writer
	extractor *Extractor
}

// Configure sets up the Jenkins client and the extractor.  Nothing is fetched
// until Collect is called.
func (m *Monitor) Configure(conf *config.Config) error {
	httpClient, err := conf.HTTPConfig.Build()
	if err != nil {
		return err
	}

	api, err := client.NewClient(conf.JenkinsURL, httpClient)
	if err != nil {
		return err
	}

	m.extractor = NewExtractor(api, ExtractorConfig{
		Prefix:       conf.MetricPrefix(),
		Labels:       conf.Labels,
		Jobs:         conf.Jobs,
		View:         conf.View,
		MonitorNodes: conf.MonitorNodes,
		TimelineView: conf.TimelineView,
	})
	return nil
}

// Collect runs a single polling pass and flushes the output.  Fetch failures
// only zero out the affected metrics, so the returned error is either from
// the output or the context.
func (m *Monitor) Collect(ctx context.Context) error {
	samples := m.extractor.Extract(ctx)
	if err := ctx.Err(); err != nil {
		logger.Debug("Pass interrupted, not sending metrics")
		return err
	}

	types.Forward(samples, m.Output)
	if err := m.Output.Flush(ctx); err != nil {
		return err
	}

	logger.Debugf("Sent %d metrics", len(samples))
	return nil
}
