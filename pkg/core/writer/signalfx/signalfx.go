// Package signalfx sends samples to the SignalFx ingest API.
package signalfx

import (
	"context"
	"net/url"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/signalfx/golib/v3/datapoint"
	"github.com/signalfx/golib/v3/sfxclient"
	log "github.com/sirupsen/logrus"
)

const datapointPath = "v2/datapoint"

// KindDimension marks datapoints that carry a timing.  SignalFx has no timing
// type, so timings are sent as gauges with this dimension set to "timing".
const KindDimension = "metric_kind"

var logger = log.WithFields(log.Fields{"sink": "signalfx"})

// Writer buffers datapoints and sends them all on Flush
type Writer struct {
	client *sfxclient.HTTPSink
	dps    []*datapoint.Datapoint
	now    func() time.Time
}

// New creates a writer that sends to the datapoint endpoint under ingestURL
func New(accessToken string, ingestURL string) (*Writer, error) {
	endpoint, err := datapointEndpoint(ingestURL)
	if err != nil {
		return nil, err
	}

	client := sfxclient.NewHTTPSink()
	client.AuthToken = accessToken
	client.DatapointEndpoint = endpoint

	return &Writer{
		client: client,
		now:    time.Now,
	}, nil
}

func datapointEndpoint(ingestURL string) (string, error) {
	u, err := url.Parse(ingestURL)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse ingest url %s", ingestURL)
	}
	u.Path = path.Join("/", u.Path, datapointPath)
	return u.String(), nil
}

// EmitGauge buffers a gauge datapoint
func (w *Writer) EmitGauge(name string, value *int64) {
	w.add(name, nil, value)
}

// EmitTiming buffers a gauge datapoint marked as a timing
func (w *Writer) EmitTiming(name string, value *int64) {
	w.add(name, map[string]string{KindDimension: "timing"}, value)
}

func (w *Writer) add(name string, dims map[string]string, value *int64) {
	if value == nil {
		logger.Debugf("Skipping %s with no value", name)
		return
	}
	w.dps = append(w.dps, datapoint.New(name, dims, datapoint.NewIntValue(*value), datapoint.Gauge, w.now()))
}

// Flush sends the buffered datapoints.  The buffer is cleared even if the
// send fails since there are no retries.
func (w *Writer) Flush(ctx context.Context) error {
	if len(w.dps) == 0 {
		return nil
	}

	dps := w.dps
	w.dps = nil

	if err := w.client.AddDatapoints(ctx, dps); err != nil {
		return errors.Wrapf(err, "could not send %d datapoints to SignalFx", len(dps))
	}
	logger.Debugf("Sent %d datapoints", len(dps))
	return nil
}

// Close does nothing, the HTTP sink holds no open resources
func (w *Writer) Close() error {
	return nil
}
