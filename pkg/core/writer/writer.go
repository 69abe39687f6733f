// Package writer holds the backends that samples are forwarded to.
package writer

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/signalfx/jenkins-metrics/pkg/core/config"
	"github.com/signalfx/jenkins-metrics/pkg/core/writer/prometheus"
	"github.com/signalfx/jenkins-metrics/pkg/core/writer/signalfx"
	"github.com/signalfx/jenkins-metrics/pkg/core/writer/statsd"
	"github.com/signalfx/jenkins-metrics/pkg/core/writer/stdout"
	"github.com/signalfx/jenkins-metrics/pkg/monitors/types"
)

// Writer is a Sink that may buffer samples until Flush is called
type Writer interface {
	types.Sink
	// Flush sends anything buffered since the last flush
	Flush(ctx context.Context) error
	Close() error
}

var (
	_ Writer = &statsd.Writer{}
	_ Writer = &signalfx.Writer{}
	_ Writer = &prometheus.Writer{}
	_ Writer = &stdout.Writer{}
)

// New creates the writer selected by conf.Type
func New(conf *config.SinkConfig) (Writer, error) {
	switch conf.Type {
	case config.SinkStatsD, "":
		return statsd.New(conf.StatsDHost, conf.StatsDPort)
	case config.SinkSignalFx:
		return signalfx.New(conf.SignalFxAccessToken, conf.IngestURL)
	case config.SinkPrometheus:
		return prometheus.New(conf.PushGatewayURL, conf.PushGatewayJob), nil
	case config.SinkStdout:
		return stdout.New(os.Stdout), nil
	default:
		return nil, errors.Errorf("unknown sink type %q", conf.Type)
	}
}
