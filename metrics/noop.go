package metrics

type noopFactory struct{}

func (noopFactory) NewCounter(Opts) Counter { return noop{} }
func (noopFactory) NewGauge(Opts) Gauge     { return noop{} }
func (noopFactory) NewHistogram(Opts) Histogram {
	return noop{}
}

func (noopFactory) NewCounterVec(Opts, []string) Vec[Counter] {
	return labelled[Counter](func(...string) Counter { return noop{} })
}

func (noopFactory) NewGaugeVec(Opts, []string) Vec[Gauge] {
	return labelled[Gauge](func(...string) Gauge { return noop{} })
}

func (noopFactory) NewHistogramVec(Opts, []string) Vec[Histogram] {
	return labelled[Histogram](func(...string) Histogram { return noop{} })
}

// noop is a Counter, Gauge and Histogram dropping every update.
type noop struct{}

func (noop) Inc()            {}
func (noop) Dec()            {}
func (noop) Add(float64)     {}
func (noop) Set(float64)     {}
func (noop) Observe(float64) {}
