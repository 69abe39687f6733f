// Package config holds the configuration of the tool along with the logic to
// load it from YAML and validate it.
package config

import (
	"net/url"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/signalfx/jenkins-metrics/pkg/core/common/httpclient"
	"github.com/signalfx/jenkins-metrics/pkg/core/config/validation"
)

// Sink types
const (
	SinkStatsD     = "statsd"
	SinkSignalFx   = "signalfx"
	SinkPrometheus = "prometheus"
	SinkStdout     = "stdout"
)

// Config is the top level config of the tool
type Config struct {
	// Credentials, timeout and TLS options used to talk to Jenkins
	httpclient.HTTPConfig `yaml:",inline"`

	// Base url of the Jenkins server (e.g. `http://jenkins.example.com`)
	JenkinsURL string `yaml:"jenkinsURL" validate:"required"`
	// Prefix prepended to every metric name, `jenkins` if not set.  An empty
	// string gives unprefixed names.
	Prefix *string `yaml:"prefix"`
	// Node labels to report executor and node stats for.  The label is used
	// verbatim in metric names.
	Labels []string `yaml:"labels"`
	// Jobs to report queue and last successful build stats for.  Jobs in
	// folders are given as `folder/job`.
	Jobs []string `yaml:"jobs"`
	// View to report job health (ok/fail/warn) for
	View string `yaml:"view"`
	// Whether to report node totals (total, online, offline)
	MonitorNodes bool `yaml:"monitorNodes"`
	// View whose timeline is used to count started builds
	TimelineView string `yaml:"timelineView" default:"All"`

	// How often to poll Jenkins.  If neither this nor `schedule` is set the
	// tool polls once and exits.
	IntervalSeconds int `yaml:"intervalSeconds" validate:"min=0"`
	// Cron expression (e.g. `*/5 * * * *` or `@every 1m`) to poll on,
	// instead of `intervalSeconds`
	Schedule string `yaml:"schedule"`

	// Where to send the metrics
	Sink SinkConfig `yaml:"sink"`
	// Log output configuration
	Logging LogConfig `yaml:"logging"`
}

// SinkConfig selects and configures the metrics backend
type SinkConfig struct {
	// One of `statsd`, `signalfx`, `prometheus` or `stdout`
	Type string `yaml:"type" default:"statsd" validate:"oneof=statsd signalfx prometheus stdout"`

	StatsDHost string `yaml:"statsdHost" default:"127.0.0.1"`
	StatsDPort uint16 `yaml:"statsdPort" default:"8125"`

	// Access token of the SignalFx org, required for the `signalfx` sink
	SignalFxAccessToken string `yaml:"signalFxAccessToken" neverLog:"true"`
	// Base url of the SignalFx ingest API
	IngestURL string `yaml:"ingestURL" default:"https://ingest.signalfx.com"`

	// Url of the Prometheus Pushgateway, required for the `prometheus` sink
	PushGatewayURL string `yaml:"pushGatewayURL"`
	// Job label the metrics are pushed under
	PushGatewayJob string `yaml:"pushGatewayJob" default:"jenkins"`
}

// DefaultPrefix is the metric prefix used when none is configured
const DefaultPrefix = "jenkins"

// MetricPrefix returns the configured prefix, which may be empty
func (c *Config) MetricPrefix() string {
	if c.Prefix == nil {
		return DefaultPrefix
	}
	return *c.Prefix
}

// Validate checks the config for correctness, including the rules that span
// several fields
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	u, err := url.Parse(c.JenkinsURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Errorf("jenkinsURL %q must be an absolute url like http://jenkins.example.com", c.JenkinsURL)
	}

	if c.IntervalSeconds > 0 && c.Schedule != "" {
		return errors.New("only one of intervalSeconds and schedule may be set")
	}

	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return errors.Wrapf(err, "invalid schedule %q", c.Schedule)
		}
	}

	return validation.ValidateCustomConfig(&c.Sink)
}

// Validate checks that the options required by the selected sink are set
func (sc *SinkConfig) Validate() error {
	switch sc.Type {
	case SinkSignalFx:
		if sc.SignalFxAccessToken == "" {
			return errors.New("sink.signalFxAccessToken is required for the signalfx sink")
		}
		if _, err := url.Parse(sc.IngestURL); err != nil {
			return errors.Wrapf(err, "invalid sink.ingestURL %q", sc.IngestURL)
		}
	case SinkPrometheus:
		if sc.PushGatewayURL == "" {
			return errors.New("sink.pushGatewayURL is required for the prometheus sink")
		}
	}
	return nil
}
