// Package stdout prints samples as a table, mostly for trying out a config
// against a live Jenkins without a metrics backend.
package stdout

import (
	"context"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/signalfx/jenkins-metrics/pkg/monitors/types"
)

// Writer buffers the samples of a pass and renders them on Flush
type Writer struct {
	out     io.Writer
	samples []types.Sample
}

// New creates a writer printing to out
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// EmitGauge buffers a gauge
func (w *Writer) EmitGauge(name string, value *int64) {
	if value == nil {
		w.samples = append(w.samples, types.Sample{Name: name, Kind: types.Gauge})
		return
	}
	w.samples = append(w.samples, types.NewGauge(name, *value))
}

// EmitTiming buffers a timing, including ones with no value
func (w *Writer) EmitTiming(name string, value *int64) {
	w.samples = append(w.samples, types.NewTiming(name, value))
}

// Flush renders the buffered samples in emission order
func (w *Writer) Flush(ctx context.Context) error {
	if len(w.samples) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w.out)
	table.SetHeader([]string{"Name", "Value", "Kind"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, s := range w.samples {
		table.Append([]string{s.Name, s.ValueString(), s.Kind.String()})
	}
	table.Render()

	w.samples = nil
	return nil
}

// Close does nothing
func (w *Writer) Close() error {
	return nil
}
