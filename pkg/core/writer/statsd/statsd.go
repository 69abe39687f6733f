// Package statsd sends samples to a local statsd daemon over UDP.
package statsd

import (
	"context"
	"net"
	"strconv"

	"github.com/cactus/go-statsd-client/v5/statsd"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var logger = log.WithFields(log.Fields{"sink": "statsd"})

// Writer emits each sample as soon as it is received.  Gauges are sent with
// the `g` type and timings with the `ms` type.
type Writer struct {
	client statsd.Statter
}

// New creates a writer sending to host:port
func New(host string, port uint16) (*Writer, error) {
	client, err := statsd.NewClientWithConfig(&statsd.ClientConfig{
		Address: net.JoinHostPort(host, strconv.Itoa(int(port))),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create statsd client")
	}
	return &Writer{client: client}, nil
}

// EmitGauge sends a gauge.  In the statsd protocol a signed gauge value is a
// delta, so negative values are sent as a reset to zero followed by the delta.
func (w *Writer) EmitGauge(name string, value *int64) {
	if value == nil {
		logger.Debugf("Skipping gauge %s with no value", name)
		return
	}

	var err error
	if *value < 0 {
		if err = w.client.Gauge(name, 0, 1.0); err == nil {
			err = w.client.GaugeDelta(name, *value, 1.0)
		}
	} else {
		err = w.client.Gauge(name, *value, 1.0)
	}
	if err != nil {
		logger.WithError(err).Errorf("Failed to send gauge %s", name)
	}
}

// EmitTiming sends a timing in milliseconds
func (w *Writer) EmitTiming(name string, value *int64) {
	if value == nil {
		logger.Debugf("Skipping timing %s with no value", name)
		return
	}
	if err := w.client.Timing(name, *value, 1.0); err != nil {
		logger.WithError(err).Errorf("Failed to send timing %s", name)
	}
}

// Flush is a no-op, every sample has already been sent
func (w *Writer) Flush(ctx context.Context) error {
	return nil
}

// Close closes the UDP socket
func (w *Writer) Close() error {
	return w.client.Close()
}
