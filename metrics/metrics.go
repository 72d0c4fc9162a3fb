package metrics

// Factory creates the metrics a component reports. Metric names are
// <namespace>_<subsystem>_<name>, where the namespace is fixed by the factory.
type Factory interface {
	NewCounter(opts Opts) Counter
	NewCounterVec(opts Opts, labelNames []string) Vec[Counter]
	NewGauge(opts Opts) Gauge
	NewGaugeVec(opts Opts, labelNames []string) Vec[Gauge]
	NewHistogram(opts Opts) Histogram
	NewHistogramVec(opts Opts, labelNames []string) Vec[Histogram]
}

type Counter interface {
	Inc()
	Add(float64)
}

type Gauge interface {
	Set(float64)
	Inc()
	Dec()
}

type Histogram interface {
	Observe(float64)
}

type Vec[T any] interface {
	WithLabelValues(lvs ...string) T
}

// labelled adapts a label lookup function to Vec.
type labelled[T any] func(lvs ...string) T

func (l labelled[T]) WithLabelValues(lvs ...string) T {
	return l(lvs...)
}

type Opts struct {
	Subsystem string
	Name      string
	Help      string

	// Buckets is only used by histograms. The prometheus defaults apply when empty.
	Buckets []float64
}

// NoopFactory returns metrics factory without any collection.
func NoopFactory() Factory {
	return noopFactory{}
}
