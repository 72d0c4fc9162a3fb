package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRegistry returns a registry collecting build and Go runtime metrics.
func PrometheusRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewBuildInfoCollector())
	registry.MustRegister(collectors.NewGoCollector())
	return registry
}

// PrometheusHandler serves the metrics of registry.
func PrometheusHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// PrometheusFactory returns a factory registering its metrics with registry under namespace.
// Registering the same metric twice panics.
func PrometheusFactory(registry *prometheus.Registry, namespace string) Factory {
	return &prometheusFactory{factory: promauto.With(registry), namespace: namespace}
}

type prometheusFactory struct {
	factory   promauto.Factory
	namespace string
}

func (f *prometheusFactory) counterOpts(opts Opts) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: f.namespace, Subsystem: opts.Subsystem, Name: opts.Name, Help: opts.Help}
}

func (f *prometheusFactory) gaugeOpts(opts Opts) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: f.namespace, Subsystem: opts.Subsystem, Name: opts.Name, Help: opts.Help}
}

func (f *prometheusFactory) histogramOpts(opts Opts) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: f.namespace,
		Subsystem: opts.Subsystem,
		Name:      opts.Name,
		Help:      opts.Help,
		Buckets:   opts.Buckets,
	}
}

func (f *prometheusFactory) NewCounter(opts Opts) Counter {
	return f.factory.NewCounter(f.counterOpts(opts))
}

func (f *prometheusFactory) NewCounterVec(opts Opts, labelNames []string) Vec[Counter] {
	vec := f.factory.NewCounterVec(f.counterOpts(opts), labelNames)
	return labelled[Counter](func(lvs ...string) Counter { return vec.WithLabelValues(lvs...) })
}

func (f *prometheusFactory) NewGauge(opts Opts) Gauge {
	return f.factory.NewGauge(f.gaugeOpts(opts))
}

func (f *prometheusFactory) NewGaugeVec(opts Opts, labelNames []string) Vec[Gauge] {
	vec := f.factory.NewGaugeVec(f.gaugeOpts(opts), labelNames)
	return labelled[Gauge](func(lvs ...string) Gauge { return vec.WithLabelValues(lvs...) })
}

func (f *prometheusFactory) NewHistogram(opts Opts) Histogram {
	return f.factory.NewHistogram(f.histogramOpts(opts))
}

func (f *prometheusFactory) NewHistogramVec(opts Opts, labelNames []string) Vec[Histogram] {
	vec := f.factory.NewHistogramVec(f.histogramOpts(opts), labelNames)
	return labelled[Histogram](func(lvs ...string) Histogram { return vec.WithLabelValues(lvs...) })
}
