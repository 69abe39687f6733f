package types

// Sink is what a polling pass emits its samples to.  Implementations decide
// how a nil value is represented on the wire; most backends simply skip it.
type Sink interface {
	EmitGauge(name string, value *int64)
	EmitTiming(name string, value *int64)
}

// Forward sends each sample to the sink method matching its kind, in order.
func Forward(samples []Sample, sink Sink) {
	for _, s := range samples {
		switch s.Kind {
		case Timing:
			sink.EmitTiming(s.Name, s.Value)
		default:
			sink.EmitGauge(s.Name, s.Value)
		}
	}
}
