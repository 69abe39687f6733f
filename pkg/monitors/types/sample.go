package types

import (
	"fmt"
	"strconv"
)

// Kind distinguishes level-style metrics from measured latencies.  Backends
// that know about the difference (statsd, Prometheus) aggregate them
// differently.
type Kind int

const (
	// Gauge is a point-in-time level, e.g. a count of queued items
	Gauge Kind = iota
	// Timing is a measured duration in milliseconds
	Timing
)

func (k Kind) String() string {
	switch k {
	case Gauge:
		return "gauge"
	case Timing:
		return "timing"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

// Sample is a single named value produced by a polling pass.  A nil Value
// means the source had no value for it (e.g. a job that never succeeded has
// no last successful build duration).
type Sample struct {
	Name  string
	Value *int64
	Kind  Kind
}

// NewGauge makes a gauge sample
func NewGauge(name string, value int64) Sample {
	return Sample{Name: name, Value: &value, Kind: Gauge}
}

// NewTiming makes a timing sample.  value may be nil.
func NewTiming(name string, value *int64) Sample {
	if value != nil {
		v := *value
		value = &v
	}
	return Sample{Name: name, Value: value, Kind: Timing}
}

// ValueString renders the value, or "null" when there is none
func (s Sample) ValueString() string {
	if s.Value == nil {
		return "null"
	}
	return strconv.FormatInt(*s.Value, 10)
}

func (s Sample) String() string {
	return fmt.Sprintf("%s: %s (%s)", s.Name, s.ValueString(), s.Kind)
}
